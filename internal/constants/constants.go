package constants

// Pagination limits
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 50
)

// Context keys set by middleware and read by handlers
const (
	ContextKeyUserID = "user_id"
	ContextKeyUser   = "user"
)

// Password policy
const MinPasswordLength = 6

// Task requirement bounds
const (
	MinRequiredFiles = 1
	MaxAllowedFiles  = 10
)
