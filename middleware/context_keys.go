package middleware

const (
	// UserIDKey is the gin context key holding the authenticated user's id.
	UserIDKey = "user_id"
	// RequestIDKey is the gin context key holding the request id.
	RequestIDKey = "request_id"
)
