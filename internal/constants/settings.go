package constants

const (
	// General Settings
	SettingAPIURL   = "api_url"
	SettingTimezone = "timezone"

	// Default Settings Values
	DefaultAPIURL   = "http://localhost:5000/api"
	DefaultTimezone = "Local" // Use system local timezone by default

	// API client
	DefaultRequestTimeoutSec = 15
)
