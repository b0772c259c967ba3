package constants

const (
	// HTTP headers
	HeaderContentType    = "Content-Type"
	HeaderOrigin         = "Origin"
	HeaderXRequestID     = "X-Request-ID"
	HeaderXForwardedFor  = "X-Forwarded-For"
	HeaderXForwardedHost = "X-Forwarded-Host"
	HeaderXForwardedProt = "X-Forwarded-Proto"
	HeaderRetryAfter     = "Retry-After"

	ContentTypeJSON = "application/json"

	// Context keys
	ContextKeySession   = "session"
	ContextKeyRequestID = "request_id"

	// APIPrefix is the mount point of the JSON API.
	APIPrefix = "/api"

	// HealthPath is excluded from request logging.
	HealthPath = "/healthz"

	// MaxJSONBodyBytes caps request bodies on the API.
	MaxJSONBodyBytes = 1 << 20
)
