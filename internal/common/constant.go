package common

const (
	// AuthorizationHeaderName is the gRPC metadata key carrying the bearer token.
	AuthorizationHeaderName = "authorization"

	// BearerPrefix precedes the token in the authorization header value.
	BearerPrefix = "Bearer "
)
