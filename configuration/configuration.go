/*
 * Autogram SDK for Go
 * Copyright (C) 2023. Slovensko.Digital
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 */

package configuration

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// SDKConfiguration holds every tunable of the SDK: where the relay and the
// desktop application live and where the device identity is persisted.
type SDKConfiguration struct {
	RelayBaseURL        string `mapstructure:"relay_base_url"`
	DesktopProtocol     string `mapstructure:"desktop_protocol"`
	DesktopHost         string `mapstructure:"desktop_host"`
	DesktopPort         int    `mapstructure:"desktop_port"`
	KeyStorePath        string `mapstructure:"key_store_path"`
	PollIntervalSeconds int    `mapstructure:"poll_interval_seconds"`
}

// Default config instance
var config *SDKConfiguration

// GetInstance returns the initialized config object. If there is no
// initialized object, it returns an error.
func GetInstance() (*SDKConfiguration, error) {
	if config == nil {
		return nil, errors.New("cannot get instance of uninitialized config")
	}
	return config, nil
}

// Initialize is the default way of initializing the config. It sets the
// global config variable so the whole application sees the same instance.
func Initialize(path, filename string) (err error) {
	config, err = LoadConfigFromFile(path, filename)
	return
}

// InitializeDefaults sets the global config to the built-in defaults without
// touching the filesystem.
func InitializeDefaults() {
	config = &SDKConfiguration{}
	config.SetDefaults()
}

func LoadConfigFromFile(path, filename string) (*SDKConfiguration, error) {
	config := SDKConfiguration{}
	config.SetDefaults()
	if err := config.LoadFromFile(path, filename); err != nil {
		return nil, err
	}
	return &config, nil
}

func (config *SDKConfiguration) LoadFromFile(path, filename string) error {
	logrus.Infof("Loading config from %s/%s.yaml", path, filename)
	viper.AddConfigPath(path)
	viper.SetConfigName(filename)
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		return err
	}

	if err := viper.Unmarshal(&config); err != nil {
		return err
	}
	return nil
}

func (config *SDKConfiguration) SetDefaults() {
	config.RelayBaseURL = "https://autogram.slovensko.digital/api/v1"
	config.DesktopProtocol = "http"
	config.DesktopHost = "localhost"
	config.DesktopPort = 37200
	config.KeyStorePath = defaultKeyStorePath()
	config.PollIntervalSeconds = 1
}

func defaultKeyStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "autogram-identity.json"
	}
	return filepath.Join(home, ".autogram", "identity.json")
}
