package model_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/mindfeed-app/mindfeed/pkg/model"
)

func TestLoadProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	data := `display_name: Dana
categories:
  - science
  - "custom:urban beekeeping"
daily_learning_minutes: 7
`
	gt.NoError(t, os.WriteFile(path, []byte(data), 0644))

	profile, err := model.LoadProfile(path)
	gt.NoError(t, err)
	gt.Equal(t, profile.DisplayName, "Dana")
	gt.A(t, profile.Categories).Length(2)
	gt.Equal(t, profile.DailyLearningMinutes, 7)
}

func TestLoadProfileMissingFile(t *testing.T) {
	_, err := model.LoadProfile(filepath.Join(t.TempDir(), "nope.yaml"))
	gt.Error(t, err)
}

func TestLoadProfileInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	gt.NoError(t, os.WriteFile(path, []byte("categories: [unclosed"), 0644))

	_, err := model.LoadProfile(path)
	gt.Error(t, err)
}

func TestLoadProfileInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	data := `display_name: Dana
categories:
  - science
daily_learning_minutes: 0
`
	gt.NoError(t, os.WriteFile(path, []byte(data), 0644))

	_, err := model.LoadProfile(path)
	gt.Error(t, err)
}

func TestProfileValidateNoCategories(t *testing.T) {
	profile := &model.Profile{
		DisplayName:          "Dana",
		DailyLearningMinutes: 5,
	}
	gt.Error(t, profile.Validate())
}
