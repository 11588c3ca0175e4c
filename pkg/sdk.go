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

package pkg

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/slovensko-digital/autogram-go/logging"
	"github.com/slovensko-digital/autogram-go/pkg/services"
)

// Fallback display strings used when the relay reports no signer identity.
const (
	FallbackSignedBy = "Používateľ Autogramu"
	FallbackIssuedBy = "(neznámy)"
)

const (
	desktopProbeInterval = 100 * time.Millisecond
	desktopProbeAttempts = 5
)

// SignClient is the facade the host application talks to.
type SignClient interface {
	Sign(ctx context.Context, document services.Document, parameters services.SignatureParameters, payloadMimeType string, decodeBase64 bool) (*services.SignedObject, error)
}

// CombinedClient combines the desktop and mobile signing channels behind a
// selector UI. All collaborators are injected; the client holds no global
// state beyond the signature bookkeeping of one instance.
//
// A CombinedClient runs one signing flow at a time: callers serialize Sign.
type CombinedClient struct {
	ui      services.MethodSelector
	desktop services.DesktopClient
	mobile  services.MobileIntegration

	openURL          func(url string) error
	enableDeviceLink bool

	mu                            sync.Mutex
	signatureIndex                int
	signerIdentificationListeners []func()
	resetSignRequestCallback      func()
}

// NewCombinedClient wires a client from already constructed collaborators.
// resetSignRequestCallback may be nil; when set it is invoked now and on
// every ResetSignRequest.
func NewCombinedClient(ui services.MethodSelector, desktopClient services.DesktopClient, mobileIntegration services.MobileIntegration, resetSignRequestCallback func()) (*CombinedClient, error) {
	client := &CombinedClient{
		ui:                       ui,
		desktop:                  desktopClient,
		mobile:                   mobileIntegration,
		signatureIndex:           1,
		resetSignRequestCallback: resetSignRequestCallback,
		openURL: func(url string) error {
			logging.Log().WithField("url", url).Info("open this URL to launch the desktop app")
			return nil
		},
	}

	if err := mobileIntegration.Init(); err != nil {
		return nil, err
	}
	client.ResetSignRequest()

	return client, nil
}

// SetURLOpener replaces how desktop launch URLs are opened. The default only
// logs the URL; hosts with a browser or shell at hand install their own.
func (c *CombinedClient) SetURLOpener(opener func(url string) error) {
	c.openURL = opener
}

// SetDeviceLink controls whether the QR hand-off also offers the phone to
// register itself as a linked device.
func (c *CombinedClient) SetDeviceLink(enabled bool) {
	c.enableDeviceLink = enabled
}

// Sign runs one signing flow: ask the user for a channel, drive it to
// completion and return the normalized signed document. With decodeBase64 the
// returned content is decoded, otherwise it stays base64 as received.
func (c *CombinedClient) Sign(ctx context.Context, document services.Document, parameters services.SignatureParameters, payloadMimeType string, decodeBase64 bool) (*services.SignedObject, error) {
	signed, err := c.signBasedOnUserChoice(ctx, document, parameters, payloadMimeType)
	if err != nil {
		return nil, err
	}

	if decodeBase64 {
		content, err := base64.StdEncoding.DecodeString(signed.Content)
		if err != nil {
			return nil, fmt.Errorf("could not decode signed content: %w", err)
		}
		signed.Content = string(content)
	}
	return signed, nil
}

func (c *CombinedClient) signBasedOnUserChoice(ctx context.Context, document services.Document, parameters services.SignatureParameters, payloadMimeType string) (*services.SignedObject, error) {
	method, err := c.ui.StartSigning(ctx)
	if err != nil {
		return nil, err
	}

	switch method {
	case services.MethodReader:
		flowCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		c.ui.ShowDesktopSigning(flowCtx)
		c.launchDesktop(flowCtx)
		return c.signatureFromDesktop(ctx, document, parameters, payloadMimeType)
	case services.MethodMobile:
		return c.signatureFromMobile(ctx, document, parameters, payloadMimeType)
	default:
		logging.Log().WithField("method", method).Error("selector returned an unknown signing method")
		return nil, services.ErrInvalidSigningMethod
	}
}

// launchDesktop probes the desktop app and, when it is not running, opens the
// launch URL and re-polls its status a bounded number of times. Failures are
// logged only; the subsequent sign call surfaces the real error.
func (c *CombinedClient) launchDesktop(ctx context.Context) {
	info, err := c.desktop.Info(ctx)
	if err == nil && info.Status == services.StatusReady {
		logging.Log().Infof("Autogram %s is ready", info.Version)
		return
	}
	if err == nil {
		err = fmt.Errorf("desktop app status is %q", info.Status)
	}
	logging.Log().WithError(err).Info("desktop app not ready, launching")

	url := c.desktop.LaunchURL()
	if openErr := c.openURL(url); openErr != nil {
		logging.Log().WithError(openErr).Warn("could not open desktop launch URL")
	}

	info, err = c.desktop.WaitForStatus(ctx, services.StatusReady, desktopProbeInterval, desktopProbeAttempts)
	if err != nil {
		logging.Log().WithError(err).Warn("waiting for the desktop app failed")
		return
	}
	logging.Log().Infof("Autogram %s is ready", info.Version)
}

func (c *CombinedClient) signatureFromDesktop(ctx context.Context, document services.Document, parameters services.SignatureParameters, payloadMimeType string) (*services.SignedObject, error) {
	signed, err := c.desktop.Sign(ctx, document, parameters, payloadMimeType)
	if err != nil {
		if errors.Is(err, services.ErrUserCancelled) {
			logging.Log().Info("user cancelled the desktop signing request")
			return nil, services.ErrUserCancelled
		}
		return nil, err
	}

	c.completeSignature()
	c.ui.Hide()
	c.ui.Reset()
	return signed, nil
}

func (c *CombinedClient) signatureFromMobile(ctx context.Context, document services.Document, parameters services.SignatureParameters, payloadMimeType string) (*services.SignedObject, error) {
	parameters.Container = normalizeContainer(parameters.Container)

	if err := c.mobile.LoadOrRegister(ctx); err != nil {
		return nil, err
	}
	if err := c.mobile.AddDocument(ctx, services.DocumentToSign{
		Document:        document,
		Parameters:      parameters,
		PayloadMimeType: payloadMimeType,
	}); err != nil {
		return nil, err
	}

	url, err := c.mobile.QrCodeURL(c.enableDeviceLink)
	if err != nil {
		return nil, err
	}

	flowCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	c.ui.ShowQRCode(flowCtx, url)

	signed, err := c.mobile.WaitForSignature(flowCtx)
	if err != nil {
		return nil, err
	}

	c.completeSignature()
	c.ui.Hide()
	c.mobile.Reset()
	c.ui.Reset()

	return normalizeSignedDocument(signed), nil
}

// completeSignature runs the bookkeeping of one finished signature: fire the
// signer identification listeners exactly once, then advance the index.
func (c *CombinedClient) completeSignature() {
	c.mu.Lock()
	listeners := c.signerIdentificationListeners
	c.signerIdentificationListeners = nil
	c.signatureIndex++
	c.mu.Unlock()

	for _, listener := range listeners {
		listener()
	}
}

// AddSignerIdentificationListener registers a callback fired once after the
// next completed signature.
func (c *CombinedClient) AddSignerIdentificationListener(listener func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.signerIdentificationListeners = append(c.signerIdentificationListeners, listener)
}

// ResetSignRequest clears the signer identification listeners and notifies
// the host through the reset callback.
func (c *CombinedClient) ResetSignRequest() {
	c.mu.Lock()
	c.signerIdentificationListeners = nil
	callback := c.resetSignRequestCallback
	c.mu.Unlock()

	if callback != nil {
		callback()
	}
}

// SetResetSignRequestCallback installs the host's reset callback.
func (c *CombinedClient) SetResetSignRequestCallback(callback func()) error {
	if callback == nil {
		return fmt.Errorf("callback must not be nil")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.resetSignRequestCallback != nil {
		logging.Log().Warn("resetSignRequestCallback already set")
	}
	c.resetSignRequestCallback = callback
	return nil
}

// SignatureIndex returns the monotonically increasing signature counter,
// starting at 1 and incremented after each completed signature.
func (c *CombinedClient) SignatureIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.signatureIndex
}

// normalizeSignedDocument strips the relay envelope down to the uniform
// result, picking the last signer and substituting the documented fallback
// display strings when the relay reports none.
func normalizeSignedDocument(signed *services.SignedDocument) *services.SignedObject {
	result := &services.SignedObject{
		Content:  signed.Content,
		SignedBy: FallbackSignedBy,
		IssuedBy: FallbackIssuedBy,
	}
	if len(signed.Signers) > 0 {
		last := signed.Signers[len(signed.Signers)-1]
		if last.SignedBy != "" {
			result.SignedBy = last.SignedBy
		}
		if last.IssuedBy != "" {
			result.IssuedBy = last.IssuedBy
		}
	}
	return result
}

// normalizeContainer maps the desktop container spelling to the relay's
func normalizeContainer(container string) string {
	switch container {
	case "":
		return ""
	case "ASiC_E", "ASiC-E":
		return "ASiC-E"
	default:
		return "ASiC-S"
	}
}
