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
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slovensko-digital/autogram-go/pkg/services"
)

func testDocument() services.DocumentToSign {
	return services.DocumentToSign{
		Document:        services.Document{Filename: "a.txt", Content: "aGVsbG8="},
		Parameters:      services.SignatureParameters{Level: "XAdES_BASELINE_B", Container: "ASiC-E"},
		PayloadMimeType: "text/plain",
	}
}

func TestClient_RegisterIntegration(t *testing.T) {
	t.Run("ok - guid returned", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/integrations", r.URL.Path)

			request := RegisterIntegrationRequest{}
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&request))
			assert.Equal(t, "sdk", request.Platform)
			assert.Contains(t, request.PublicKey, "BEGIN PUBLIC KEY")

			json.NewEncoder(w).Encode(map[string]string{"guid": "dev-123"})
		}))
		defer server.Close()

		client := NewClient(server.URL)
		guid, err := client.RegisterIntegration(context.Background(), RegisterIntegrationRequest{
			Platform:    "sdk",
			DisplayName: "Autogram SDK",
			PublicKey:   "-----BEGIN PUBLIC KEY-----\nAAAA\n-----END PUBLIC KEY-----\n",
		})

		assert.NoError(t, err)
		assert.Equal(t, "dev-123", guid)
	})

	t.Run("error - relay rejects registration", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"code": "PUBLIC_KEY_MISSING", "message": "publicKey is required"})
		}))
		defer server.Close()

		client := NewClient(server.URL)
		_, err := client.RegisterIntegration(context.Background(), RegisterIntegrationRequest{})

		var apiErr *services.APIError
		if assert.Error(t, err) && assert.ErrorAs(t, err, &apiErr) {
			assert.Equal(t, "PUBLIC_KEY_MISSING", apiErr.Code)
			assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		}
	})

	t.Run("error - guid missing from response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]string{})
		}))
		defer server.Close()

		client := NewClient(server.URL)
		_, err := client.RegisterIntegration(context.Background(), RegisterIntegrationRequest{})

		assert.Error(t, err)
	})
}

func TestClient_PostDocuments(t *testing.T) {
	t.Run("ok - handle carries guid, key and last-modified", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/documents", r.URL.Path)
			assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
			assert.Equal(t, "key-1", r.Header.Get("X-Encryption-Key"))

			w.Header().Set("Last-Modified", "T0")
			json.NewEncoder(w).Encode(map[string]string{"guid": "doc-456"})
		}))
		defer server.Close()

		client := NewClient(server.URL)
		handle, err := client.PostDocuments(context.Background(), testDocument(), "token-1", "key-1")

		assert.NoError(t, err)
		assert.Equal(t, "doc-456", handle.Guid)
		assert.Equal(t, "key-1", handle.EncryptionKey)
		assert.Equal(t, "T0", handle.LastModified)
	})

	t.Run("error - empty encryption key fails before any network call", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
		}))
		defer server.Close()

		client := NewClient(server.URL)
		_, err := client.PostDocuments(context.Background(), testDocument(), "token-1", "")

		assert.True(t, errors.Is(err, services.ErrEncryptionKeyMissing))
		assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
	})

	t.Run("error - empty bearer token fails before any network call", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
		}))
		defer server.Close()

		client := NewClient(server.URL)
		_, err := client.PostDocuments(context.Background(), testDocument(), "", "key-1")

		assert.True(t, errors.Is(err, services.ErrBearerTokenMissing))
		assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
	})
}

func TestClient_GetDocument(t *testing.T) {
	t.Run("ok - 304 maps to pending", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/documents/doc-456", r.URL.Path)
			assert.Equal(t, "key-1", r.Header.Get("X-Encryption-Key"))
			assert.Equal(t, "T0", r.Header.Get("If-Modified-Since"))
			w.WriteHeader(http.StatusNotModified)
		}))
		defer server.Close()

		client := NewClient(server.URL)
		result, err := client.GetDocument(context.Background(), "doc-456", "key-1", "T0")

		assert.NoError(t, err)
		assert.Equal(t, StatusPending, result.Status)
		assert.Nil(t, result.Document)
	})

	t.Run("ok - 200 returns the signed document", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(services.SignedDocument{
				Filename: "a.txt",
				MimeType: "text/plain",
				Content:  "aGVsbG8=",
				Signers:  []services.Signer{{SignedBy: "Jane"}},
			})
		}))
		defer server.Close()

		client := NewClient(server.URL)
		result, err := client.GetDocument(context.Background(), "doc-456", "key-1", "T0")

		assert.NoError(t, err)
		assert.Equal(t, StatusSigned, result.Status)
		assert.Equal(t, "aGVsbG8=", result.Document.Content)
		assert.Equal(t, "Jane", result.Document.Signers[0].SignedBy)
	})

	t.Run("error - relay error is structured", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"code": "DOCUMENT_NOT_FOUND", "message": "unknown document guid"})
		}))
		defer server.Close()

		client := NewClient(server.URL)
		_, err := client.GetDocument(context.Background(), "doc-456", "key-1", "")

		var apiErr *services.APIError
		if assert.ErrorAs(t, err, &apiErr) {
			assert.Equal(t, "DOCUMENT_NOT_FOUND", apiErr.Code)
		}
	})

	t.Run("error - incomplete signed document", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]string{"filename": "a.txt"})
		}))
		defer server.Close()

		client := NewClient(server.URL)
		_, err := client.GetDocument(context.Background(), "doc-456", "key-1", "")

		assert.Error(t, err)
	})

	t.Run("error - empty encryption key fails before any network call", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
		}))
		defer server.Close()

		client := NewClient(server.URL)
		_, err := client.GetDocument(context.Background(), "doc-456", "", "")

		assert.True(t, errors.Is(err, services.ErrEncryptionKeyMissing))
		assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
	})
}

func TestClient_SignRequest(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/sign-request", r.URL.Path)
			assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))

			body := signRequestBody{}
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "doc-456", body.DocumentGuid)
			assert.Equal(t, "key-1", body.DocumentEncryptionKey)

			json.NewEncoder(w).Encode(map[string]string{})
		}))
		defer server.Close()

		client := NewClient(server.URL)
		assert.NoError(t, client.SignRequest(context.Background(), "doc-456", "key-1", "token-1"))
	})

	t.Run("error - missing bearer token fails before any network call", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
		}))
		defer server.Close()

		client := NewClient(server.URL)
		err := client.SignRequest(context.Background(), "doc-456", "key-1", "")

		assert.True(t, errors.Is(err, services.ErrBearerTokenMissing))
		assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
	})
}

func TestClient_QrCodeURL(t *testing.T) {
	client := NewClient("https://relay.example/api/v1")

	t.Run("without integration token", func(t *testing.T) {
		url := client.QrCodeURL("doc-456", "key-1", "")
		assert.Equal(t, "https://relay.example/api/v1/qr-code?guid=doc-456&key=key-1", url)
	})

	t.Run("with integration token", func(t *testing.T) {
		url := client.QrCodeURL("doc-456", "key-1", "jwt-1")
		assert.Equal(t, "https://relay.example/api/v1/qr-code?guid=doc-456&integration=jwt-1&key=key-1", url)
	})
}

func TestClient_GetIntegrationDevices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/integration-devices", r.URL.Path)
		json.NewEncoder(w).Encode([]IntegrationDevice{{DeviceID: "device-1", Platform: "ios", DisplayName: "Phone"}})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	devices, err := client.GetIntegrationDevices(context.Background())

	assert.NoError(t, err)
	if assert.Len(t, devices, 1) {
		assert.Equal(t, "device-1", devices[0].DeviceID)
	}
}
