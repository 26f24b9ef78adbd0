package domain

const unknownDescription = "Unknown"

// CommentBackend identifies where comments are kept.
type CommentBackend string

// Available comment backends.
const (
	// CommentBackendMemory keeps comments for the life of the process.
	CommentBackendMemory CommentBackend = "memory"

	// CommentBackendSQLite persists comments to a local database.
	CommentBackendSQLite CommentBackend = "sqlite"
)

// IsValid returns true if the backend is recognised.
func (b CommentBackend) IsValid() bool {
	switch b {
	case CommentBackendMemory, CommentBackendSQLite:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b CommentBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b CommentBackend) Description() string {
	switch b {
	case CommentBackendMemory:
		return "Memory (lost on exit)"
	case CommentBackendSQLite:
		return "SQLite (persisted locally)"
	default:
		return unknownDescription
	}
}

// AllCommentBackends returns all available comment backends.
func AllCommentBackends() []CommentBackend {
	return []CommentBackend{
		CommentBackendMemory,
		CommentBackendSQLite,
	}
}

// Default values for AppSettings.
const (
	DefaultBaseURL           = "http://localhost:3000"
	DefaultTimeoutSeconds    = 15
	DefaultRequestsPerSecond = 5.0
)

// APISettings holds remote recipe service configuration.
type APISettings struct {
	// BaseURL is the service root; recipes live under {BaseURL}/recipes.
	BaseURL string

	// TimeoutSeconds bounds every request.
	TimeoutSeconds int

	// RequestsPerSecond throttles outgoing requests.
	RequestsPerSecond float64
}

// CommentSettings holds comment storage configuration.
type CommentSettings struct {
	// Backend selects the comment store.
	Backend CommentBackend
}

// AppSettings holds all application settings.
type AppSettings struct {
	// API holds remote recipe service settings.
	API APISettings

	// Comments holds comment storage settings.
	Comments CommentSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// Comments stay in memory unless the user opts in to SQLite.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		API: APISettings{
			BaseURL:           DefaultBaseURL,
			TimeoutSeconds:    DefaultTimeoutSeconds,
			RequestsPerSecond: DefaultRequestsPerSecond,
		},
		Comments: CommentSettings{
			Backend: CommentBackendMemory,
		},
	}
}
