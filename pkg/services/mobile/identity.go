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
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"

	"github.com/slovensko-digital/autogram-go/logging"
	"github.com/slovensko-digital/autogram-go/pkg/services"
)

const (
	// DefaultPlatform is reported to the relay during registration
	DefaultPlatform = "sdk"
	// DefaultDisplayName is shown on linked mobile devices
	DefaultDisplayName = "Autogram SDK"

	// DeviceAudience marks bearer tokens that also allow device linking
	DeviceAudience = "device"

	bearerTokenValidity = 5 * time.Minute
	ecPrivateKeyPEMType = "EC PRIVATE KEY"
	publicKeyPEMType    = "PUBLIC KEY"
)

// Identity owns the device key pair and its registration with the relay.
// The private key never leaves the device; the relay only ever sees the
// public half, handed over once during registration.
type Identity struct {
	client      *Client
	store       services.KeyStore
	platform    string
	displayName string

	keyPair         *ecdsa.PrivateKey
	integrationGuid string
}

// NewIdentity returns an identity manager persisting through the given store.
func NewIdentity(client *Client, store services.KeyStore) *Identity {
	return &Identity{
		client:      client,
		store:       store,
		platform:    DefaultPlatform,
		displayName: DefaultDisplayName,
	}
}

// SetRegistrationInfo overrides the platform and display name reported to the
// relay on first registration.
func (i *Identity) SetRegistrationInfo(platform, displayName string) {
	if platform != "" {
		i.platform = platform
	}
	if displayName != "" {
		i.displayName = displayName
	}
}

// Guid returns the integration guid assigned by the relay, empty before
// LoadOrRegister succeeded.
func (i *Identity) Guid() string {
	return i.integrationGuid
}

// LoadOrRegister loads the persisted key pair and integration guid, and
// registers a fresh identity with the relay when either half is missing.
// A second call with a persisted identity performs no network call.
func (i *Identity) LoadOrRegister(ctx context.Context) error {
	keyPair, err := i.keyPairFromStore()
	if err != nil {
		return err
	}
	guid, err := i.guidFromStore()
	if err != nil {
		return err
	}

	i.keyPair = keyPair
	i.integrationGuid = guid

	// Both halves or neither: a key pair without a registration (or the
	// other way round) is an inconsistent session and must be redone.
	if i.keyPair == nil || i.integrationGuid == "" {
		if err := i.register(ctx); err != nil {
			return err
		}
	}

	logging.Log().WithField("guid", i.integrationGuid).Debug("integration identity loaded")
	return nil
}

// BearerToken mints a short-lived ES256 token proving device identity.
// Tokens are never cached: every relay call gets a fresh one with a unique
// jti, expiring 5 minutes from now. With withDevice set, the token also
// carries the device audience so a scanning phone may link itself.
func (i *Identity) BearerToken(withDevice bool) (string, error) {
	if i.keyPair == nil || i.integrationGuid == "" {
		return "", services.ErrIdentityMissing
	}

	jti, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}

	claims := jwt.StandardClaims{
		Subject:   i.integrationGuid,
		Id:        jti.String(),
		ExpiresAt: time.Now().Add(bearerTokenValidity).Unix(),
	}
	if withDevice {
		claims.Audience = DeviceAudience
	}

	return jwt.NewWithClaims(jwt.SigningMethodES256, claims).SignedString(i.keyPair)
}

// PublicKeyPEM exports the public key in PEM wrapped SPKI form, the shape the
// relay expects during registration.
func (i *Identity) PublicKeyPEM() (string, error) {
	if i.keyPair == nil {
		return "", services.ErrIdentityMissing
	}
	der, err := x509.MarshalPKIXPublicKey(&i.keyPair.PublicKey)
	if err != nil {
		return "", err
	}
	return string(pem.EncodeToMemory(&pem.Block{Type: publicKeyPEMType, Bytes: der})), nil
}

func (i *Identity) register(ctx context.Context) error {
	if err := i.generateKeyPair(); err != nil {
		return err
	}

	publicKey, err := i.PublicKeyPEM()
	if err != nil {
		return err
	}

	logging.Log().Info("registering integration with the relay")
	guid, err := i.client.RegisterIntegration(ctx, RegisterIntegrationRequest{
		Platform:    i.platform,
		DisplayName: i.displayName,
		PublicKey:   publicKey,
	})
	if err != nil {
		return fmt.Errorf("%w: %s", services.ErrRegistrationFailed, err)
	}

	if err := i.store.Set(services.IntegrationGuidStorageKey, guid); err != nil {
		return err
	}
	i.integrationGuid = guid
	return nil
}

func (i *Identity) generateKeyPair() error {
	logging.Log().Info("generating integration key pair")
	keyPair, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return fmt.Errorf("%w: %s", services.ErrKeyUnavailable, err)
	}

	der, err := x509.MarshalECPrivateKey(keyPair)
	if err != nil {
		return fmt.Errorf("%w: %s", services.ErrKeyUnavailable, err)
	}
	encoded := pem.EncodeToMemory(&pem.Block{Type: ecPrivateKeyPEMType, Bytes: der})
	if err := i.store.Set(services.KeyPairStorageKey, string(encoded)); err != nil {
		return err
	}

	i.keyPair = keyPair
	return nil
}

func (i *Identity) keyPairFromStore() (*ecdsa.PrivateKey, error) {
	encoded, ok, err := i.store.Get(services.KeyPairStorageKey)
	if err != nil {
		return nil, err
	}
	if !ok || encoded == "" {
		return nil, nil
	}

	block, _ := pem.Decode([]byte(encoded))
	if block == nil || block.Type != ecPrivateKeyPEMType {
		// a corrupted store entry is treated as absent so registration is redone
		logging.Log().Warn("stored key pair is not valid PEM, re-registering")
		return nil, nil
	}
	keyPair, err := x509.ParseECPrivateKey(block.Bytes)
	if err != nil {
		logging.Log().WithError(err).Warn("stored key pair could not be parsed, re-registering")
		return nil, nil
	}
	return keyPair, nil
}

func (i *Identity) guidFromStore() (string, error) {
	guid, ok, err := i.store.Get(services.IntegrationGuidStorageKey)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}
	return guid, nil
}
