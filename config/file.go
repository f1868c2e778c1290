package config

import (
	"os"

	"github.com/pelletier/go-toml/v2"
)

// FileConfig holds the optional TOML configuration file. Environment
// variables take precedence over file values.
type FileConfig struct {
	DBFolder  string `toml:"dbFolder"`
	LogFolder string `toml:"logFolder"`
}

var fileConfig FileConfig

func configFilePath() string {
	if p := os.Getenv("LABSTOCK_CONFIG"); p != "" {
		return p
	}
	return "labstock.toml"
}

// LoadFile reads the TOML configuration file if one exists. A missing file is
// not an error.
func LoadFile() error {
	data, err := os.ReadFile(configFilePath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return toml.Unmarshal(data, &fileConfig)
}
