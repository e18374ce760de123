package repositories

// RepositoryProvider bundles every repository facade the services need.
type RepositoryProvider struct {
	EntryRepo    EntryRepositoryFacade
	AccountRepo  AccountRepositoryFacade
	TemplateRepo TemplateRepositoryFacade
}
