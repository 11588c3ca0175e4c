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

package desktop

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"time"

	"github.com/slovensko-digital/autogram-go/logging"
	"github.com/slovensko-digital/autogram-go/pkg/services"
)

// Config describes how to reach the local desktop application. Hosts that
// cannot use plain http on localhost (Safari-style restrictions in the
// original extension) configure the https loopback host instead.
type Config struct {
	Protocol       string
	Host           string
	Port           int
	RequestsOrigin string
}

const (
	// DefaultPort is the port the desktop application listens on
	DefaultPort = 37200

	// userCancelledCode is the desktop app's error code for a dismissed dialog
	userCancelledCode = "USER_CANCELLED_SIGNING"
)

func (c Config) withDefaults() Config {
	if c.Protocol == "" {
		c.Protocol = "http"
	}
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.RequestsOrigin == "" {
		c.RequestsOrigin = "*"
	}
	return c
}

// Client is a thin REST wrapper around the desktop application. Probes must
// fail fast when the app is not running, so it deliberately uses a plain
// http client with a short timeout and no retries.
type Client struct {
	baseURL string
	origin  string
	http    *http.Client
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// New returns a desktop client for the given configuration.
func New(config Config) *Client {
	config = config.withDefaults()
	return &Client{
		baseURL: fmt.Sprintf("%s://%s:%d", config.Protocol, config.Host, config.Port),
		origin:  config.RequestsOrigin,
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

// Info probes the desktop application's status endpoint.
func (c *Client) Info(ctx context.Context) (*services.ServerInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/info", nil)
	if err != nil {
		return nil, err
	}
	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("desktop app unreachable: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("desktop app returned status %s", res.Status)
	}
	info := &services.ServerInfo{}
	if err := json.NewDecoder(res.Body).Decode(info); err != nil {
		return nil, fmt.Errorf("could not parse desktop info: %w", err)
	}
	return info, nil
}

// LaunchURL returns the custom-scheme URL that starts the desktop app and
// makes it listen for this client.
func (c *Client) LaunchURL() string {
	params := url.Values{}
	params.Set("origin", c.origin)
	return "autogram://go?" + params.Encode()
}

// WaitForStatus polls Info until the app reports the wanted status, for at
// most maxAttempts probes spaced by interval.
func (c *Client) WaitForStatus(ctx context.Context, status string, interval time.Duration, maxAttempts int) (*services.ServerInfo, error) {
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %s", services.ErrAborted, ctx.Err())
			case <-time.After(interval):
			}
		}

		info, err := c.Info(ctx)
		if err != nil {
			lastErr = err
			continue
		}
		if info.Status == status {
			return info, nil
		}
		lastErr = fmt.Errorf("desktop app status is %q, waiting for %q", info.Status, status)
	}
	return nil, fmt.Errorf("desktop app did not reach status %q: %w", status, lastErr)
}

// Sign asks the desktop application to sign the document. A dialog dismissed
// by the user maps to ErrUserCancelled so callers can special-case it.
func (c *Client) Sign(ctx context.Context, document services.Document, parameters services.SignatureParameters, payloadMimeType string) (*services.SignedObject, error) {
	body, err := json.Marshal(services.DocumentToSign{
		Document:        document,
		Parameters:      parameters,
		PayloadMimeType: payloadMimeType,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/sign", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	// Signing waits on a human; no client timeout applies here.
	res, err := (&http.Client{}).Do(req)
	if err != nil {
		return nil, fmt.Errorf("desktop sign request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, c.signError(res)
	}

	signed := &services.SignedObject{}
	if err := json.NewDecoder(res.Body).Decode(signed); err != nil {
		return nil, fmt.Errorf("could not parse desktop sign response: %w", err)
	}
	logging.Log().Debug("desktop signature received")
	return signed, nil
}

func (c *Client) signError(res *http.Response) error {
	desktopErr := apiError{}
	body, err := ioutil.ReadAll(res.Body)
	if err == nil && json.Unmarshal(body, &desktopErr) == nil && desktopErr.Code != "" {
		if desktopErr.Code == userCancelledCode {
			return services.ErrUserCancelled
		}
		return fmt.Errorf("desktop app error %s: %s", desktopErr.Code, desktopErr.Message)
	}
	return fmt.Errorf("desktop app returned status %s", res.Status)
}
