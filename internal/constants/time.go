package constants

const (
	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimestampFormat is how task times are stored
	TimestampFormat = "2006-01-02T15:04:05.999999999Z07:00"

	// DisplayTimeFormat is how task times are shown to the user
	DisplayTimeFormat = "2006-01-02 15:04"
)
