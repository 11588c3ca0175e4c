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

package mobile

import (
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/slovensko-digital/autogram-go/logging"
	"github.com/slovensko-digital/autogram-go/pkg/services"
)

// DefaultBaseURL points at the production Autogram v mobile relay
const DefaultBaseURL = "https://autogram.slovensko.digital/api/v1"

// Client is a stateless wrapper around the mobile relay's REST endpoints.
// Transient transport failures are retried with a small bounded backoff;
// relay-level errors (4xx/413/...) surface as *services.APIError without retry.
type Client struct {
	baseURL string
	http    *retryablehttp.Client
}

// NewClient returns a relay client for the given base URL, falling back to
// DefaultBaseURL when empty.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := retryablehttp.NewClient()
	httpClient.RetryMax = 3
	httpClient.RetryWaitMin = 250 * time.Millisecond
	httpClient.RetryWaitMax = 2 * time.Second
	httpClient.Logger = nil

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// RegisterIntegration registers this device's public key with the relay and
// returns the integration guid the relay assigned.
func (c *Client) RegisterIntegration(ctx context.Context, request RegisterIntegrationRequest) (string, error) {
	logging.Log().WithField("platform", request.Platform).Debug("registering integration")

	res, err := c.doJSON(ctx, http.MethodPost, "/integrations", request, nil)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if !statusOK(res.StatusCode) {
		return "", c.apiError(res)
	}

	response := registerIntegrationResponse{}
	if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("could not parse registration response: %w", err)
	}
	if response.Guid == "" {
		return "", fmt.Errorf("registration response is missing the integration guid")
	}

	logging.Log().WithField("guid", response.Guid).Info("integration registered")
	return response.Guid, nil
}

// PostDocuments submits a document for mobile signing. The bearer token and
// the per-document encryption key are required; their absence fails before
// any network I/O.
func (c *Client) PostDocuments(ctx context.Context, document services.DocumentToSign, bearerToken, encryptionKey string) (*DocumentHandle, error) {
	if encryptionKey == "" {
		return nil, services.ErrEncryptionKeyMissing
	}
	if bearerToken == "" {
		return nil, services.ErrBearerTokenMissing
	}

	headers := map[string]string{
		"Authorization":    "Bearer " + bearerToken,
		"X-Encryption-Key": encryptionKey,
	}
	res, err := c.doJSON(ctx, http.MethodPost, "/documents", document, headers)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if !statusOK(res.StatusCode) {
		return nil, c.apiError(res)
	}

	response := postDocumentsResponse{}
	if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("could not parse document response: %w", err)
	}
	if response.Guid == "" {
		return nil, fmt.Errorf("document response is missing the document guid")
	}

	handle := &DocumentHandle{
		Guid:          response.Guid,
		EncryptionKey: encryptionKey,
		LastModified:  res.Header.Get("Last-Modified"),
	}
	logging.Log().WithField("guid", handle.Guid).Debug("document submitted")
	return handle, nil
}

// SignRequest notifies the relay that a signature is requested for the given
// document. The relay processes the request asynchronously; callers poll
// GetDocument for the actual outcome.
func (c *Client) SignRequest(ctx context.Context, documentGuid, encryptionKey, bearerToken string) error {
	if bearerToken == "" {
		return services.ErrBearerTokenMissing
	}

	body := signRequestBody{
		DocumentGuid:          documentGuid,
		DocumentEncryptionKey: encryptionKey,
	}
	headers := map[string]string{"Authorization": "Bearer " + bearerToken}
	res, err := c.doJSON(ctx, http.MethodPost, "/sign-request", body, headers)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if !statusOK(res.StatusCode) {
		return c.apiError(res)
	}
	return nil
}

// GetDocument performs one conditional poll. A relay answer of 304 Not
// Modified maps to StatusPending; 200 returns the signed document.
func (c *Client) GetDocument(ctx context.Context, guid, encryptionKey, lastModified string) (*GetDocumentResult, error) {
	if encryptionKey == "" {
		return nil, services.ErrEncryptionKeyMissing
	}

	headers := map[string]string{
		"Accept":           "application/json",
		"X-Encryption-Key": encryptionKey,
	}
	if lastModified != "" {
		headers["If-Modified-Since"] = lastModified
	}
	res, err := c.doJSON(ctx, http.MethodGet, "/documents/"+url.PathEscape(guid), nil, headers)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotModified {
		return &GetDocumentResult{Status: StatusPending}, nil
	}
	if !statusOK(res.StatusCode) {
		return nil, c.apiError(res)
	}

	document := &services.SignedDocument{}
	if err := json.NewDecoder(res.Body).Decode(document); err != nil {
		return nil, fmt.Errorf("could not parse signed document: %w", err)
	}
	if document.Content == "" || document.MimeType == "" {
		return nil, fmt.Errorf("signed document response is incomplete")
	}

	return &GetDocumentResult{Status: StatusSigned, Document: document}, nil
}

// GetIntegrationDevices lists the mobile devices linked to this integration.
func (c *Client) GetIntegrationDevices(ctx context.Context) ([]IntegrationDevice, error) {
	res, err := c.doJSON(ctx, http.MethodGet, "/integration-devices", nil, nil)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if !statusOK(res.StatusCode) {
		return nil, c.apiError(res)
	}

	var devices []IntegrationDevice
	if err := json.NewDecoder(res.Body).Decode(&devices); err != nil {
		return nil, fmt.Errorf("could not parse integration devices: %w", err)
	}
	return devices, nil
}

// QrCodeURL builds the hand-off URL rendered as a QR code. Pure string
// construction, nothing is fetched. The integration token is only embedded
// when the user opted to link the mobile device to this integration.
func (c *Client) QrCodeURL(documentGuid, encryptionKey, integrationToken string) string {
	params := url.Values{}
	params.Set("guid", documentGuid)
	params.Set("key", encryptionKey)
	if integrationToken != "" {
		params.Set("integration", integrationToken)
	}
	return c.baseURL + "/qr-code?" + params.Encode()
}

func (c *Client) doJSON(ctx context.Context, method, path string, body interface{}, headers map[string]string) (*http.Response, error) {
	var rawBody interface{}
	if body != nil {
		marshalled, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		rawBody = marshalled
	}

	req, err := retryablehttp.NewRequest(method, c.baseURL+path, rawBody)
	if err != nil {
		return nil, err
	}
	req.Request = req.Request.WithContext(ctx)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("relay request %s %s failed: %w", method, path, err)
	}
	return res, nil
}

// apiError drains the response body into a structured APIError. Malformed
// error bodies still produce an APIError carrying the HTTP status.
func (c *Client) apiError(res *http.Response) error {
	apiErr := &services.APIError{StatusCode: res.StatusCode}
	body, err := ioutil.ReadAll(res.Body)
	if err == nil && json.Unmarshal(body, apiErr) == nil && apiErr.Code != "" {
		logging.Log().WithField("code", apiErr.Code).Error("relay returned an error")
		return apiErr
	}
	apiErr.Code = "UNEXPECTED_RESPONSE"
	apiErr.Message = fmt.Sprintf("relay returned status %s", res.Status)
	return apiErr
}

func statusOK(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}
