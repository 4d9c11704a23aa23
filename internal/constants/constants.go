package constants

// Context keys
const (
	ContextKeyUser = "currentUser"
)

// Validation limits
const (
	MinPasswordLength = 8
	MaxPageSize       = 100
	DefaultPageSize   = 20
)
