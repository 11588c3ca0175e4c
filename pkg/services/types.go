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

package services

import (
	"errors"
	"fmt"
)

// SigningMethod is the channel chosen by the user.
type SigningMethod string

const (
	// MethodReader signs through the local desktop application
	MethodReader SigningMethod = "reader"
	// MethodMobile signs through the mobile relay and a phone app
	MethodMobile SigningMethod = "mobile"
)

// ErrIdentityMissing is returned when an operation requires a registered
// device identity and none is loaded. Call LoadOrRegister first.
var ErrIdentityMissing = errors.New("integration key pair or guid missing")

// ErrRegistrationFailed is returned when the relay rejected the device registration
var ErrRegistrationFailed = errors.New("integration registration failed")

// ErrKeyUnavailable is returned when no usable key material can be produced
var ErrKeyUnavailable = errors.New("key material unavailable")

// ErrDocumentMissing is returned when a session operation requires a
// submitted document and there is none.
var ErrDocumentMissing = errors.New("document guid, key or last-modified missing")

// ErrDocumentPending is returned by AddDocument while a previous document is
// still awaiting its signature.
var ErrDocumentPending = errors.New("another document is awaiting signature")

// ErrEncryptionKeyMissing is raised before any network call when a document
// operation lacks its encryption key.
var ErrEncryptionKeyMissing = errors.New("document encryption key missing")

// ErrBearerTokenMissing is raised before any network call when an authorized
// relay operation lacks its bearer token.
var ErrBearerTokenMissing = errors.New("bearer token missing")

// ErrAborted is returned when the signature wait was cancelled, either by the
// user or by the wall-clock ceiling.
var ErrAborted = errors.New("waiting for signature aborted")

// ErrUserCancelled is returned when the user dismissed the signing flow
var ErrUserCancelled = errors.New("user cancelled signing")

// ErrInvalidSigningMethod is returned when the selector reports a method the
// orchestrator does not know. Fatal, never retried.
var ErrInvalidSigningMethod = errors.New("invalid signing method")

// APIError is a structured error returned by the mobile relay.
type APIError struct {
	StatusCode int
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("relay error %s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("relay error %s: %s", e.Code, e.Message)
}

// Document is the input document handed to either signing channel.
type Document struct {
	Filename string `json:"filename,omitempty"`
	// Content is the base64 encoded document body
	Content string `json:"content"`
}

// SignatureParameters describe how the document should be signed.
type SignatureParameters struct {
	Level      string `json:"level,omitempty"`
	Container  string `json:"container,omitempty"`
	Identifier string `json:"identifier,omitempty"`
}

// DocumentToSign is the envelope submitted to the mobile relay.
type DocumentToSign struct {
	Document        Document            `json:"document"`
	Parameters      SignatureParameters `json:"parameters"`
	PayloadMimeType string              `json:"payloadMimeType"`
}

// Signer identifies one signature present on a signed document.
type Signer struct {
	SignedBy string `json:"signedBy,omitempty"`
	IssuedBy string `json:"issuedBy,omitempty"`
}

// SignedDocument is the relay's signed-document envelope.
type SignedDocument struct {
	Filename string   `json:"filename"`
	MimeType string   `json:"mimeType"`
	Content  string   `json:"content"`
	Signers  []Signer `json:"signers,omitempty"`
}

// SignedObject is the normalized result returned to the caller, independent
// of the channel that produced it.
type SignedObject struct {
	Content  string `json:"content"`
	SignedBy string `json:"signedBy"`
	IssuedBy string `json:"issuedBy"`
}

// ServerInfo is the desktop application's status report.
type ServerInfo struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// StatusReady is the desktop status that allows signing to proceed
const StatusReady = "READY"
