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
	"context"
	"encoding/base64"
	"io/ioutil"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/slovensko-digital/autogram-go/configuration"
	"github.com/slovensko-digital/autogram-go/pkg"
	"github.com/slovensko-digital/autogram-go/pkg/selector"
	"github.com/slovensko-digital/autogram-go/pkg/services"
	"github.com/slovensko-digital/autogram-go/pkg/services/desktop"
	"github.com/slovensko-digital/autogram-go/pkg/services/mobile"
	"github.com/slovensko-digital/autogram-go/pkg/simulator"
	"github.com/slovensko-digital/autogram-go/pkg/storage"
)

var (
	signMimeType   string
	signLevel      string
	signContainer  string
	signOutput     string
	signDeviceLink bool
	signSimulate   bool
)

var signCmd = &cobra.Command{
	Use:              "sign [file]",
	Short:            "Sign a document",
	Long:             `Sign a document with the Autogram desktop application or through the mobile relay.`,
	Args:             cobra.ExactArgs(1),
	PersistentPreRun: InitConfig,
	RunE: func(cmd *cobra.Command, args []string) error {
		appConfig, err := configuration.GetInstance()
		if err != nil {
			return err
		}

		raw, err := ioutil.ReadFile(args[0])
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		go func() {
			<-stop
			cancel()
		}()

		relayURL := appConfig.RelayBaseURL
		if signSimulate {
			simulation := simulator.New()
			simulation.SignAfterPolls = 3
			simulation.SignerName = "Simulated signer"
			if relayURL, err = simulation.Start(); err != nil {
				return err
			}
			defer simulation.Stop()
			logrus.Infof("relay simulation running at %s", relayURL)
		}

		store, err := storage.NewFileStore(appConfig.KeyStorePath)
		if err != nil {
			return err
		}

		relayClient := mobile.NewClient(relayURL)
		identity := mobile.NewIdentity(relayClient, store)
		integration := mobile.NewIntegration(relayClient, identity, mobile.IntegrationConfig{
			PollInterval: time.Duration(appConfig.PollIntervalSeconds) * time.Second,
		})
		desktopClient := desktop.New(desktop.Config{
			Protocol: appConfig.DesktopProtocol,
			Host:     appConfig.DesktopHost,
			Port:     appConfig.DesktopPort,
		})

		client, err := pkg.NewCombinedClient(selector.NewTerminal(), desktopClient, integration, nil)
		if err != nil {
			return err
		}
		client.SetDeviceLink(signDeviceLink)

		signed, err := client.Sign(ctx,
			services.Document{
				Filename: filepath.Base(args[0]),
				Content:  base64.StdEncoding.EncodeToString(raw),
			},
			services.SignatureParameters{
				Level:     signLevel,
				Container: signContainer,
			},
			signMimeType,
			false,
		)
		if err != nil {
			return err
		}

		logrus.Infof("signed by %s (issued by %s)", signed.SignedBy, signed.IssuedBy)

		content, err := base64.StdEncoding.DecodeString(signed.Content)
		if err != nil {
			return err
		}
		output := signOutput
		if output == "" {
			output = args[0] + ".asice"
		}
		if err := ioutil.WriteFile(output, content, 0644); err != nil {
			return err
		}
		logrus.Infof("signed document written to %s", output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(signCmd)
	signCmd.Flags().StringVar(&signMimeType, "mime-type", "application/octet-stream", "mime type of the input document")
	signCmd.Flags().StringVar(&signLevel, "level", "XAdES_BASELINE_B", "signature level")
	signCmd.Flags().StringVar(&signContainer, "container", "ASiC_E", "container type")
	signCmd.Flags().StringVarP(&signOutput, "output", "o", "", "where to write the signed document (default: input + .asice)")
	signCmd.Flags().BoolVar(&signDeviceLink, "device-link", false, "offer the scanning phone to link itself to this integration")
	signCmd.Flags().BoolVar(&signSimulate, "simulate", false, "sign against an in-process relay simulation instead of the real relay")
}
