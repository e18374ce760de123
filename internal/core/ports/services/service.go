package services

// ServiceProvider bundles the service facades handed to the HTTP layer.
type ServiceProvider struct {
	Posting PostingSvcFacade
	Chart   ChartSvcFacade
}
