package constants

import "time"

const (
	// DefaultHTTPPort is the only port the prober connects to unless overridden.
	DefaultHTTPPort = 80
	// DefaultProbeTimeout bounds the dial, write and read of a single probe.
	DefaultProbeTimeout = 10 * time.Second
	// DefaultDNSTimeout bounds each individual DNS query.
	DefaultDNSTimeout = 5 * time.Second
	// MaxResponseBytes caps how much of a response is read into memory.
	MaxResponseBytes int64 = 1 << 20
)

// RootPath is probed for the exposed-information check.
const RootPath = "/"

// SensitiveInfoPattern matches credential-like tokens anywhere in a response.
const SensitiveInfoPattern = `(?i)(api[_-]?key|password|secret|token)`

// AdminMarker is the literal that makes a plain 200 response look like an admin page.
const AdminMarker = "admin"

// DefaultAdminPaths returns a fresh copy of the admin paths probed by default.
func DefaultAdminPaths() []string {
	return []string{"/admin", "/dashboard", "/login", "/wp-admin"}
}

// DefaultCredentialTokens returns the case-sensitive tokens used by the admin classifier.
func DefaultCredentialTokens() []string {
	return []string{"api_key", "password"}
}
