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

package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/slovensko-digital/autogram-go/configuration"
)

var configPath string
var configName string

var rootCmd = &cobra.Command{
	Use:   "autogram-sdk",
	Short: "Sign documents with the Autogram desktop or mobile application",
	Long: `Command line companion of the Autogram SDK. It drives the same
signing flows a host application would: pick desktop or mobile, hand the
document over and wait for the signature.`,
}

// InitConfig loads the configuration file when one was pointed at, and falls
// back to built-in defaults otherwise.
func InitConfig(cmd *cobra.Command, args []string) {
	if configPath == "" {
		configuration.InitializeDefaults()
		return
	}
	if err := configuration.Initialize(configPath, configName); err != nil {
		logrus.WithError(err).Panicf("Could not load configuration from %s", configPath)
	}
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config-path", "", "directory holding the configuration file")
	rootCmd.PersistentFlags().StringVar(&configName, "config-name", "autogram", "configuration file name without extension")
}
