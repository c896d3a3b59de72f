package model

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"gopkg.in/yaml.v3"
)

// Profile holds the user's learning preferences. It is the client-side
// counterpart of the onboarding data and personalizes every content request.
type Profile struct {
	DisplayName          string   `yaml:"display_name"`
	Categories           []string `yaml:"categories"`
	DailyLearningMinutes int      `yaml:"daily_learning_minutes"`
}

// Validate checks the profile fields
func (p *Profile) Validate() error {
	if len(p.Categories) == 0 {
		return goerr.New("profile has no interest categories")
	}
	for _, c := range p.Categories {
		if err := ValidateCategory(c); err != nil {
			return err
		}
	}
	if p.DailyLearningMinutes <= 0 {
		return goerr.New("daily learning minutes must be positive",
			goerr.V("minutes", p.DailyLearningMinutes))
	}
	return nil
}

// LoadProfile reads and validates a profile from a YAML file
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read profile file", goerr.V("path", path))
	}

	var profile Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, goerr.Wrap(err, "failed to parse profile file", goerr.V("path", path))
	}

	if err := profile.Validate(); err != nil {
		return nil, err
	}

	return &profile, nil
}
