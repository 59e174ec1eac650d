package config

// Default configuration values
const (
	DefaultPort           = 8080
	DefaultStoreTimeoutMs = 3000

	// Case opening is capped much tighter than general reads
	DefaultOpenWindowSeconds = 60
	DefaultOpenCeiling       = 30
	DefaultReadWindowSeconds = 60
	DefaultReadCeiling       = 300

	// Bound on distinct (subject, action) windows held in memory
	DefaultLimiterCacheSize = 10000
)
