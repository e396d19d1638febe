package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ProfilesConfig holds all named environment profiles and tracks which one
// is active.
type ProfilesConfig struct {
	Active   string             `toml:"active"`
	Profiles map[string]Profile `toml:"profiles"`
}

// Profile is a named environment: which database to resolve against, which
// event bus to use, and how to derive avatar URLs.
type Profile struct {
	DatabaseURL string `toml:"database_url"`
	NATSURL     string `toml:"nats_url,omitempty"`
	PublicURL   string `toml:"public_url,omitempty"`
	AdminUserID string `toml:"admin_user_id,omitempty"`
}

func profilesConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".local", "state", "tzurot")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return filepath.Join(dir, "profiles.toml"), nil
}

func loadProfilesConfig() (ProfilesConfig, error) {
	path, err := profilesConfigPath()
	if err != nil {
		return ProfilesConfig{}, err
	}
	var pc ProfilesConfig
	if _, err := toml.DecodeFile(path, &pc); err != nil {
		if os.IsNotExist(err) {
			return ProfilesConfig{Profiles: map[string]Profile{}}, nil
		}
		return ProfilesConfig{}, err
	}
	if pc.Profiles == nil {
		pc.Profiles = map[string]Profile{}
	}
	return pc, nil
}

func saveProfilesConfig(pc ProfilesConfig) error {
	path, err := profilesConfigPath()
	if err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(pc)
}

// applyProfileEnv overlays the selected profile (or the active one when
// name is empty) onto the environment. Explicit environment variables win
// over profile values, so TZUROT_* overrides still work per invocation.
func applyProfileEnv(name string) error {
	pc, err := loadProfilesConfig()
	if err != nil {
		return err
	}
	if name == "" {
		name = pc.Active
	}
	if name == "" {
		return nil
	}
	p, ok := pc.Profiles[name]
	if !ok {
		return fmt.Errorf("profile %q not found", name)
	}

	overlay := map[string]string{
		"TZUROT_DATABASE_URL":  p.DatabaseURL,
		"TZUROT_NATS_URL":      p.NATSURL,
		"TZUROT_PUBLIC_URL":    p.PublicURL,
		"TZUROT_ADMIN_USER_ID": p.AdminUserID,
	}
	for key, val := range overlay {
		if val != "" && os.Getenv(key) == "" {
			if err := os.Setenv(key, val); err != nil {
				return err
			}
		}
	}
	return nil
}

// natsURL returns the event bus URL after profile overlay, for commands
// that talk to NATS without opening the database.
func natsURL() string {
	return os.Getenv("TZUROT_NATS_URL")
}
