package config

import (
	"fmt"
	"os"
	"path"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/phytec-labs/elements/log"
)

// Settings are the tool-level preferences, as opposed to the SDK environment
// resolved by Resolver.
type Settings struct {
	// ManifestURL is the repo manifest the SDK is initialised from.
	ManifestURL string
	// RepoLauncherURL is where the repo launcher script is downloaded from.
	RepoLauncherURL string
	// FlashHold is how long a flash-to-memory debugger session is kept alive.
	FlashHold time.Duration
	// OpenocdDir is the openocd checkout, relative to the SDK base.
	OpenocdDir string
}

const (
	configFileName = "config"
	envPrefix      = "ELEMENTS"
)

var settings *Settings

func setDefaults(v *viper.Viper) {
	v.SetDefault("manifest_url", "https://github.com/phytec-labs/elements-manifest.git")
	v.SetDefault("repo_launcher_url", "https://storage.googleapis.com/git-repo-downloads/repo-1")
	v.SetDefault("flash_hold", 15*time.Second)
	v.SetDefault("openocd_dir", "openocd")
}

func getConfigDir() (string, error) {
	if configDir, ok := os.LookupEnv("ELEMENTS_CONFIG_DIR"); ok {
		return configDir, nil
	}

	if xdgConfigHome, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok {
		return path.Join(xdgConfigHome, "elements"), nil
	}

	homeDir, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("unable to locate the configuration directory: %s", err)
	}
	return path.Join(homeDir, ".config", "elements"), nil
}

func loadSettings() Settings {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	configDir, err := getConfigDir()
	if err != nil {
		log.Debug("Unable to find elements config directory. Using default settings\n")
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(configDir)
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); ok {
				log.Debug("No configuration file in `%s`. Using default settings\n", configDir)
			} else {
				log.Warning("Error reading configuration in `%s`: `%s`. Using default settings\n", configDir, err)
			}
		} else {
			log.Debug("Loaded configuration from `%s`\n", v.ConfigFileUsed())
		}
	}

	s := Settings{
		ManifestURL:     v.GetString("manifest_url"),
		RepoLauncherURL: v.GetString("repo_launcher_url"),
		FlashHold:       v.GetDuration("flash_hold"),
		OpenocdDir:      v.GetString("openocd_dir"),
	}
	log.Debug("Running with settings: %+v\n", s)
	return s
}

// GetSettings loads the settings on first use.
func GetSettings() Settings {
	if settings == nil {
		loaded := loadSettings()
		settings = &loaded
	}
	return *settings
}
