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
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"sync"
	"time"

	"github.com/slovensko-digital/autogram-go/logging"
	"github.com/slovensko-digital/autogram-go/pkg/services"
)

const (
	// DefaultPollInterval is the fixed delay between document polls
	DefaultPollInterval = time.Second
	// DefaultSignatureTimeout bounds how long a signature may be awaited
	// before the session aborts on its own (abandoned tab protection)
	DefaultSignatureTimeout = 2 * time.Hour

	documentKeyLength = 32 // AES-256
)

// IntegrationConfig tunes the session timing. The zero value selects the
// production defaults.
type IntegrationConfig struct {
	PollInterval     time.Duration
	SignatureTimeout time.Duration
}

func (c IntegrationConfig) withDefaults() IntegrationConfig {
	if c.PollInterval <= 0 {
		c.PollInterval = DefaultPollInterval
	}
	if c.SignatureTimeout <= 0 {
		c.SignatureTimeout = DefaultSignatureTimeout
	}
	return c
}

// Integration drives the mobile signing lifecycle: submit a document, hand
// out the QR url and poll the relay until the document is signed or the wait
// is cancelled. At most one document is in flight per instance; a second
// AddDocument is rejected with ErrDocumentPending until Reset is called.
type Integration struct {
	client   *Client
	identity *Identity
	config   IntegrationConfig

	mu       sync.Mutex
	document *DocumentHandle
	cancel   context.CancelFunc
}

// NewIntegration wires a session from an already constructed relay client and
// identity manager.
func NewIntegration(client *Client, identity *Identity, config IntegrationConfig) *Integration {
	return &Integration{
		client:   client,
		identity: identity,
		config:   config.withDefaults(),
	}
}

// Init satisfies the stateful channel contract; there is nothing to set up.
func (s *Integration) Init() error {
	return nil
}

// LoadOrRegister ensures the device identity exists, registering on first use.
func (s *Integration) LoadOrRegister(ctx context.Context) error {
	return s.identity.LoadOrRegister(ctx)
}

// AddDocument generates a fresh per-document encryption key and submits the
// document to the relay. The resulting handle stays owned by this session.
func (s *Integration) AddDocument(ctx context.Context, document services.DocumentToSign) error {
	s.mu.Lock()
	if s.document != nil {
		s.mu.Unlock()
		return services.ErrDocumentPending
	}
	s.mu.Unlock()

	encryptionKey, err := newDocumentKey()
	if err != nil {
		return err
	}
	token, err := s.identity.BearerToken(false)
	if err != nil {
		return err
	}

	handle, err := s.client.PostDocuments(ctx, document, token, encryptionKey)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.document = handle
	s.mu.Unlock()
	return nil
}

// QrCodeURL returns the hand-off URL for the document in flight. With
// enableDeviceLink the embedded token carries the device audience, letting
// the scanning phone register itself as a linked device.
func (s *Integration) QrCodeURL(enableDeviceLink bool) (string, error) {
	s.mu.Lock()
	handle := s.document
	s.mu.Unlock()

	if handle == nil || handle.Guid == "" || handle.EncryptionKey == "" {
		return "", services.ErrDocumentMissing
	}

	integrationToken := ""
	if enableDeviceLink {
		token, err := s.identity.BearerToken(true)
		if err != nil {
			return "", err
		}
		integrationToken = token
	}

	return s.client.QrCodeURL(handle.Guid, handle.EncryptionKey, integrationToken), nil
}

// WaitForSignature fires one sign request and then polls the relay at the
// configured interval until the document is signed, the context is cancelled
// or the signature timeout elapses. Cancellation wins over a racing poll: a
// signed result arriving after the context ended is discarded.
func (s *Integration) WaitForSignature(ctx context.Context) (*services.SignedDocument, error) {
	s.mu.Lock()
	handle := s.document
	s.mu.Unlock()

	if !handle.complete() {
		return nil, services.ErrDocumentMissing
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.SignatureTimeout)
	defer cancel()
	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()

	token, err := s.identity.BearerToken(false)
	if err != nil {
		return nil, err
	}
	// The relay treats the sign request as a nudge and the poll below
	// re-derives all state, so a failed nudge only delays the signature.
	if err := s.client.SignRequest(ctx, handle.Guid, handle.EncryptionKey, token); err != nil {
		if ctx.Err() != nil {
			return nil, abortedError(ctx)
		}
		logging.Log().WithError(err).Warn("sign request failed, continuing to poll")
	}

	logging.Log().WithField("guid", handle.Guid).Debug("waiting for signature")
	for {
		if ctx.Err() != nil {
			return nil, abortedError(ctx)
		}

		result, err := s.client.GetDocument(ctx, handle.Guid, handle.EncryptionKey, handle.LastModified)
		if err != nil {
			if ctx.Err() != nil {
				return nil, abortedError(ctx)
			}
			return nil, err
		}
		if result.Status == StatusSigned {
			if ctx.Err() != nil {
				return nil, abortedError(ctx)
			}
			logging.Log().WithField("guid", handle.Guid).Info("document signed")
			return result.Document, nil
		}

		select {
		case <-ctx.Done():
			return nil, abortedError(ctx)
		case <-time.After(s.config.PollInterval):
		}
	}
}

// Abort cancels an outstanding WaitForSignature, if any.
func (s *Integration) Abort() {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Reset drops the document in flight so a new one can be added.
func (s *Integration) Reset() {
	s.mu.Lock()
	s.document = nil
	s.cancel = nil
	s.mu.Unlock()
}

func abortedError(ctx context.Context) error {
	return fmt.Errorf("%w: %s", services.ErrAborted, ctx.Err())
}

// newDocumentKey draws a fresh AES-256 key, base64 encoded for the wire
func newDocumentKey() (string, error) {
	key := make([]byte, documentKeyLength)
	if _, err := rand.Read(key); err != nil {
		return "", fmt.Errorf("%w: %s", services.ErrKeyUnavailable, err)
	}
	return base64.StdEncoding.EncodeToString(key), nil
}
