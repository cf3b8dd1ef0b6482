package models

import (
	"fmt"
	"strconv"

	"github.com/DEVBOX10/Ididit/internal/constants"
)

// Settings keys as stored in the settings table
const (
	SettingName                             = "name"
	SettingSize                             = "size"
	SettingTheme                            = "theme"
	SettingSort                             = "sort"
	SettingElapsedToDesiredRatioMin         = "elapsed_to_desired_ratio_min"
	SettingShowElapsedToDesiredRatioOverMin = "show_elapsed_to_desired_ratio_over_min"
	SettingShowOnlyRepeating                = "show_only_repeating"
	SettingShowOnlyAsap                     = "show_only_asap"
	SettingAlsoShowCompletedAsap            = "also_show_completed_asap"
)

// SettingKeys lists every settings key in display order
var SettingKeys = []string{
	SettingName,
	SettingSize,
	SettingTheme,
	SettingSort,
	SettingElapsedToDesiredRatioMin,
	SettingShowElapsedToDesiredRatioOverMin,
	SettingShowOnlyRepeating,
	SettingShowOnlyAsap,
	SettingAlsoShowCompletedAsap,
}

// Settings is the per-profile display configuration
type Settings struct {
	Name                             string             `json:"name" yaml:"name"`
	Size                             string             `json:"size" yaml:"size"`
	Theme                            string             `json:"theme" yaml:"theme"`
	Sort                             constants.SortMode `json:"sort" yaml:"sort"`
	ElapsedToDesiredRatioMin         int64              `json:"elapsed_to_desired_ratio_min" yaml:"elapsed_to_desired_ratio_min"`
	ShowElapsedToDesiredRatioOverMin bool               `json:"show_elapsed_to_desired_ratio_over_min" yaml:"show_elapsed_to_desired_ratio_over_min"`
	ShowOnlyRepeating                bool               `json:"show_only_repeating" yaml:"show_only_repeating"`
	ShowOnlyAsap                     bool               `json:"show_only_asap" yaml:"show_only_asap"`
	AlsoShowCompletedAsap            bool               `json:"also_show_completed_asap" yaml:"also_show_completed_asap"`
}

// DefaultSettings returns the settings a fresh store starts with
func DefaultSettings() Settings {
	return Settings{
		Name:                     constants.DefaultSettingsName,
		Size:                     constants.DefaultSize,
		Theme:                    constants.DefaultTheme,
		Sort:                     constants.DefaultSort,
		ElapsedToDesiredRatioMin: constants.DefaultElapsedToDesiredRatioMin,
	}
}

// MapToSettings converts stored key/value pairs to Settings. Missing keys keep
// their default value.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := DefaultSettings()
	for key, value := range data {
		if err := settings.Set(key, value); err != nil {
			return Settings{}, err
		}
	}
	return settings, nil
}

// SettingsToMap is the inverse of MapToSettings
func SettingsToMap(s Settings) map[string]string {
	return map[string]string{
		SettingName:                             s.Name,
		SettingSize:                             s.Size,
		SettingTheme:                            s.Theme,
		SettingSort:                             string(s.Sort),
		SettingElapsedToDesiredRatioMin:         strconv.FormatInt(s.ElapsedToDesiredRatioMin, 10),
		SettingShowElapsedToDesiredRatioOverMin: strconv.FormatBool(s.ShowElapsedToDesiredRatioOverMin),
		SettingShowOnlyRepeating:                strconv.FormatBool(s.ShowOnlyRepeating),
		SettingShowOnlyAsap:                     strconv.FormatBool(s.ShowOnlyAsap),
		SettingAlsoShowCompletedAsap:            strconv.FormatBool(s.AlsoShowCompletedAsap),
	}
}

// Set assigns one setting from its string form
func (s *Settings) Set(key, value string) error {
	switch key {
	case SettingName:
		s.Name = value
	case SettingSize:
		if !validSize(value) {
			return fmt.Errorf("invalid size %q (want one of %v)", value, constants.Sizes)
		}
		s.Size = value
	case SettingTheme:
		s.Theme = value
	case SettingSort:
		mode := constants.SortMode(value)
		if !validSort(mode) {
			return fmt.Errorf("invalid sort %q (want one of %v)", value, constants.SortModes)
		}
		s.Sort = mode
	case SettingElapsedToDesiredRatioMin:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", key, err)
		}
		s.ElapsedToDesiredRatioMin = n
	case SettingShowElapsedToDesiredRatioOverMin:
		return parseBool(key, value, &s.ShowElapsedToDesiredRatioOverMin)
	case SettingShowOnlyRepeating:
		return parseBool(key, value, &s.ShowOnlyRepeating)
	case SettingShowOnlyAsap:
		return parseBool(key, value, &s.ShowOnlyAsap)
	case SettingAlsoShowCompletedAsap:
		return parseBool(key, value, &s.AlsoShowCompletedAsap)
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	return nil
}

func parseBool(key, value string, dst *bool) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", key, err)
	}
	*dst = b
	return nil
}

func validSize(size string) bool {
	for _, s := range constants.Sizes {
		if s == size {
			return true
		}
	}
	return false
}

func validSort(mode constants.SortMode) bool {
	for _, m := range constants.SortModes {
		if m == mode {
			return true
		}
	}
	return false
}
