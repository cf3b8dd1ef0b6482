package constants

// SortMode orders goals in listings
type SortMode string

const (
	SortNone                  SortMode = "none"
	SortName                  SortMode = "name"
	SortElapsedTime           SortMode = "elapsed-time"
	SortElapsedToDesiredRatio SortMode = "elapsed-to-desired-ratio"

	// Default Settings Values
	DefaultSettingsName             = DisplayName
	DefaultSize                     = "medium"
	DefaultTheme                    = "default"
	DefaultSort                     = SortNone
	DefaultElapsedToDesiredRatioMin = 50
)

// Sizes lists the accepted display sizes
var Sizes = []string{"small", "medium", "large"}

// SortModes lists the accepted sort modes
var SortModes = []SortMode{SortNone, SortName, SortElapsedTime, SortElapsedToDesiredRatio}
