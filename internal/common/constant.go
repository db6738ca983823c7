package common

const (
	// AuthorizationHeaderName carries the bearer token on gated requests.
	AuthorizationHeaderName = "Authorization"

	// BearerScheme is the only accepted authorization scheme.
	BearerScheme = "Bearer"

	// TokenType is returned alongside issued access tokens.
	TokenType = "bearer"

	// RequestIDHeaderName is echoed on every response.
	RequestIDHeaderName = "X-Request-ID"
)
