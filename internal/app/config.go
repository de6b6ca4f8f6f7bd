package app

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Home        string // state directory, e.g. $HOME/.sealchat
	Verbose     bool   // debug logging to stderr
	DisplayName string // overrides the profile's display_name when set
}

// DefaultHome returns the default state directory, ~/.sealchat.
func DefaultHome() (string, error) {
	dir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ".sealchat"), nil
}

// Profile is the optional per-home YAML file with display preferences.
// Nothing in it is secret; key material lives only in the store.
type Profile struct {
	DisplayName string `yaml:"display_name"`
}

// LoadProfile reads <home>/config.yaml. A missing or unparsable profile is
// an empty profile, never an error.
func LoadProfile(home string) Profile {
	var p Profile
	data, err := os.ReadFile(filepath.Join(home, "config.yaml"))
	if err != nil {
		return p
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}
	}
	return p
}
