package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// HTTP Headers
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"
	HeaderXClientID     = "X-Client-ID"
	HeaderXSessionID    = "X-Session-ID"
	HeaderUserAgent     = "User-Agent"

	// Context keys
	ContextKeyUserID    = "user_id"
	ContextKeyUserRole  = "user_role"
	ContextKeySessionID = "session_id"
	ContextKeyRequestID = "request_id"
	ContextKeyUserEmail = "user_email"
	ContextKeyUserName  = "user_name"

	// DefaultClientID is the cache slot used when the client sends no X-Client-ID.
	DefaultClientID = "default"

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgUnauthorized        = "Unauthorized access"
	ErrMsgForbidden           = "Access forbidden"
)
