package config

// Configuration key constants to prevent typos and enable autocomplete
const (
	// Generator configuration
	KeyRouteTarget = "ROUTE_TARGET" // Route file written by `routegen write`

	// Proxy configuration
	KeyAPIURL          = "API_URL"
	KeyListenAddr      = "LISTEN_ADDR"
	KeySessionCookie   = "SESSION_COOKIE"
	KeyAllowedOrigins  = "ALLOWED_ORIGINS"
	KeyUpstreamTimeout = "UPSTREAM_TIMEOUT"
)

// Default values for configuration keys
var Defaults = map[string]string{
	KeyAPIURL:          "http://localhost:1337",
	KeyListenAddr:      ":3000",
	KeySessionCookie:   "next-auth.session-token",
	KeyUpstreamTimeout: "15s",
}

// KnownKeys lists every key the settings file understands, in display order.
var KnownKeys = []string{
	KeyRouteTarget,
	KeyAPIURL,
	KeyListenAddr,
	KeySessionCookie,
	KeyAllowedOrigins,
	KeyUpstreamTimeout,
}

// IsKnownKey reports whether key is one of KnownKeys
func IsKnownKey(key string) bool {
	for _, k := range KnownKeys {
		if k == key {
			return true
		}
	}
	return false
}
