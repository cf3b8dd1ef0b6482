package tui

import (
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/DEVBOX10/Ididit/internal/constants"
	"github.com/DEVBOX10/Ididit/internal/models"
)

func requireName(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("name must not be empty")
	}
	return nil
}

// NewNameForm asks for a single name, used for every add and rename
func NewNameForm(title string, fm *NameFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Value(&fm.Name).
				Validate(requireName),
		),
	)
}

func NewSettingsForm(fm *SettingsFormModel) *huh.Form {
	sizes := make([]huh.Option[string], len(constants.Sizes))
	for i, s := range constants.Sizes {
		sizes[i] = huh.NewOption(s, s)
	}
	sorts := make([]huh.Option[constants.SortMode], len(constants.SortModes))
	for i, s := range constants.SortModes {
		sorts[i] = huh.NewOption(string(s), s)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&fm.Name),
			huh.NewSelect[string]().
				Title("Size").
				Options(sizes...).
				Value(&fm.Size),
			huh.NewInput().
				Title("Theme").
				Value(&fm.Theme),
			huh.NewSelect[constants.SortMode]().
				Title("Sort goals by").
				Options(sorts...).
				Value(&fm.Sort),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Elapsed to desired ratio minimum (%)").
				Value(&fm.ElapsedToDesiredRatioMin).
				Validate(func(s string) error {
					_, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
					return err
				}),
			huh.NewConfirm().
				Title("Show ratio only over minimum?").
				Value(&fm.ShowElapsedToDesiredRatioOverMin),
			huh.NewConfirm().
				Title("Show only repeating goals?").
				Value(&fm.ShowOnlyRepeating),
			huh.NewConfirm().
				Title("Show only ASAP goals?").
				Value(&fm.ShowOnlyAsap),
			huh.NewConfirm().
				Title("Also show completed ASAP goals?").
				Value(&fm.AlsoShowCompletedAsap),
		),
	)
}

func settingsFormFrom(s models.Settings) *SettingsFormModel {
	return &SettingsFormModel{
		Name:                             s.Name,
		Size:                             s.Size,
		Theme:                            s.Theme,
		Sort:                             s.Sort,
		ElapsedToDesiredRatioMin:         strconv.FormatInt(s.ElapsedToDesiredRatioMin, 10),
		ShowElapsedToDesiredRatioOverMin: s.ShowElapsedToDesiredRatioOverMin,
		ShowOnlyRepeating:                s.ShowOnlyRepeating,
		ShowOnlyAsap:                     s.ShowOnlyAsap,
		AlsoShowCompletedAsap:            s.AlsoShowCompletedAsap,
	}
}

// Settings converts the form back, going through Settings.Set so the same
// validation applies as on the command line.
func (fm *SettingsFormModel) Settings(base models.Settings) (models.Settings, error) {
	s := base
	values := map[string]string{
		models.SettingName:                             fm.Name,
		models.SettingSize:                             fm.Size,
		models.SettingTheme:                            fm.Theme,
		models.SettingSort:                             string(fm.Sort),
		models.SettingElapsedToDesiredRatioMin:         strings.TrimSpace(fm.ElapsedToDesiredRatioMin),
		models.SettingShowElapsedToDesiredRatioOverMin: strconv.FormatBool(fm.ShowElapsedToDesiredRatioOverMin),
		models.SettingShowOnlyRepeating:                strconv.FormatBool(fm.ShowOnlyRepeating),
		models.SettingShowOnlyAsap:                     strconv.FormatBool(fm.ShowOnlyAsap),
		models.SettingAlsoShowCompletedAsap:            strconv.FormatBool(fm.AlsoShowCompletedAsap),
	}
	for _, key := range models.SettingKeys {
		if err := s.Set(key, values[key]); err != nil {
			return base, err
		}
	}
	return s, nil
}
