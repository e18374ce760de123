package middleware

// contextKey is a private type so context values set here cannot collide
// with keys from other packages.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	callerIDKey  = contextKey("callerID")
)
