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
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"

	"github.com/slovensko-digital/autogram-go/pkg/services"
)

// memoryStore is an in-memory KeyStore for tests
type memoryStore struct {
	values map[string]string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: map[string]string{}}
}

func (s *memoryStore) Get(key string) (string, bool, error) {
	value, ok := s.values[key]
	return value, ok, nil
}

func (s *memoryStore) Set(key, value string) error {
	s.values[key] = value
	return nil
}

func registrationServer(t *testing.T, guid string, registrations *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/integrations" {
			t.Errorf("unexpected call to %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		atomic.AddInt32(registrations, 1)
		json.NewEncoder(w).Encode(map[string]string{"guid": guid})
	}))
}

func TestIdentity_LoadOrRegister(t *testing.T) {
	t.Run("ok - registers once and persists both halves", func(t *testing.T) {
		var registrations int32
		server := registrationServer(t, "dev-123", &registrations)
		defer server.Close()

		store := newMemoryStore()
		identity := NewIdentity(NewClient(server.URL), store)

		assert.NoError(t, identity.LoadOrRegister(context.Background()))
		assert.Equal(t, "dev-123", identity.Guid())
		assert.Equal(t, int32(1), atomic.LoadInt32(&registrations))

		_, hasKey, _ := store.Get(services.KeyPairStorageKey)
		_, hasGuid, _ := store.Get(services.IntegrationGuidStorageKey)
		assert.True(t, hasKey)
		assert.True(t, hasGuid)
	})

	t.Run("ok - second call reuses the persisted identity without a network call", func(t *testing.T) {
		var registrations int32
		server := registrationServer(t, "dev-123", &registrations)
		defer server.Close()

		store := newMemoryStore()
		identity := NewIdentity(NewClient(server.URL), store)
		assert.NoError(t, identity.LoadOrRegister(context.Background()))

		// a fresh manager on the same store simulates the next session
		identity2 := NewIdentity(NewClient(server.URL), store)
		assert.NoError(t, identity2.LoadOrRegister(context.Background()))

		assert.Equal(t, "dev-123", identity2.Guid())
		assert.Equal(t, int32(1), atomic.LoadInt32(&registrations))
	})

	t.Run("ok - a key pair without a guid is re-registered", func(t *testing.T) {
		var registrations int32
		server := registrationServer(t, "dev-456", &registrations)
		defer server.Close()

		store := newMemoryStore()
		identity := NewIdentity(NewClient(server.URL), store)
		assert.NoError(t, identity.LoadOrRegister(context.Background()))
		assert.Equal(t, int32(1), atomic.LoadInt32(&registrations))

		// drop one half of the identity
		delete(store.values, services.IntegrationGuidStorageKey)

		identity2 := NewIdentity(NewClient(server.URL), store)
		assert.NoError(t, identity2.LoadOrRegister(context.Background()))
		assert.Equal(t, "dev-456", identity2.Guid())
		assert.Equal(t, int32(2), atomic.LoadInt32(&registrations))
	})

	t.Run("ok - corrupted stored key pair triggers re-registration", func(t *testing.T) {
		var registrations int32
		server := registrationServer(t, "dev-789", &registrations)
		defer server.Close()

		store := newMemoryStore()
		store.values[services.KeyPairStorageKey] = "not a pem"
		store.values[services.IntegrationGuidStorageKey] = "dev-old"

		identity := NewIdentity(NewClient(server.URL), store)
		assert.NoError(t, identity.LoadOrRegister(context.Background()))
		assert.Equal(t, "dev-789", identity.Guid())
		assert.Equal(t, int32(1), atomic.LoadInt32(&registrations))
	})

	t.Run("error - relay rejects registration", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"code": "NOPE", "message": "rejected"})
		}))
		defer server.Close()

		identity := NewIdentity(NewClient(server.URL), newMemoryStore())
		err := identity.LoadOrRegister(context.Background())

		assert.True(t, errors.Is(err, services.ErrRegistrationFailed))
	})
}

func TestIdentity_BearerToken(t *testing.T) {
	newRegisteredIdentity := func(t *testing.T) *Identity {
		t.Helper()
		var registrations int32
		server := registrationServer(t, "dev-123", &registrations)
		defer server.Close()

		identity := NewIdentity(NewClient(server.URL), newMemoryStore())
		if err := identity.LoadOrRegister(context.Background()); err != nil {
			t.Fatal(err)
		}
		return identity
	}

	parseClaims := func(t *testing.T, identity *Identity, token string) *jwt.StandardClaims {
		t.Helper()
		claims := &jwt.StandardClaims{}
		parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
			return &identity.keyPair.PublicKey, nil
		})
		if err != nil {
			t.Fatal(err)
		}
		assert.True(t, parsed.Valid)
		assert.Equal(t, jwt.SigningMethodES256.Name, parsed.Method.Alg())
		return claims
	}

	t.Run("ok - tokens are fresh per mint", func(t *testing.T) {
		identity := newRegisteredIdentity(t)

		token1, err := identity.BearerToken(false)
		assert.NoError(t, err)
		token2, err := identity.BearerToken(false)
		assert.NoError(t, err)
		assert.NotEqual(t, token1, token2)

		claims1 := parseClaims(t, identity, token1)
		claims2 := parseClaims(t, identity, token2)
		assert.NotEqual(t, claims1.Id, claims2.Id)
		assert.Equal(t, "dev-123", claims1.Subject)
		assert.Empty(t, claims1.Audience)

		expiresIn := time.Unix(claims1.ExpiresAt, 0).Sub(time.Now())
		assert.True(t, expiresIn > 4*time.Minute+30*time.Second, "expiry should be ~5 minutes out")
		assert.True(t, expiresIn <= 5*time.Minute, "expiry should be ~5 minutes out")
	})

	t.Run("ok - device audience on request", func(t *testing.T) {
		identity := newRegisteredIdentity(t)

		token, err := identity.BearerToken(true)
		assert.NoError(t, err)

		claims := parseClaims(t, identity, token)
		assert.Equal(t, DeviceAudience, claims.Audience)
	})

	t.Run("error - identity not loaded", func(t *testing.T) {
		identity := NewIdentity(NewClient("http://localhost:1"), newMemoryStore())

		_, err := identity.BearerToken(false)

		assert.True(t, errors.Is(err, services.ErrIdentityMissing))
	})
}
