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

import "github.com/slovensko-digital/autogram-go/pkg/services"

// DocumentHandle is the session's record of the document currently submitted
// to the relay. EncryptionKey is the base64 encoded per-document AES-256 key;
// LastModified is the relay's freshness token used for conditional polling.
type DocumentHandle struct {
	Guid          string
	EncryptionKey string
	LastModified  string
}

// complete reports whether the handle carries everything a poll needs
func (d *DocumentHandle) complete() bool {
	return d != nil && d.Guid != "" && d.EncryptionKey != "" && d.LastModified != ""
}

// RegisterIntegrationRequest is the device registration envelope.
type RegisterIntegrationRequest struct {
	Platform    string `json:"platform"`
	DisplayName string `json:"displayName"`
	PublicKey   string `json:"publicKey"`
}

// IntegrationDevice describes a mobile device linked to this integration.
type IntegrationDevice struct {
	DeviceID    string `json:"deviceId"`
	Platform    string `json:"platform"`
	DisplayName string `json:"displayName"`
}

type registerIntegrationResponse struct {
	Guid string `json:"guid"`
}

type postDocumentsResponse struct {
	Guid string `json:"guid"`
}

type signRequestBody struct {
	DocumentGuid          string `json:"documentGuid"`
	DocumentEncryptionKey string `json:"documentEncryptionKey"`
}

// Document poll outcomes.
const (
	// StatusPending means the relay reported no change since LastModified
	StatusPending = "pending"
	// StatusSigned means the relay returned the signed document
	StatusSigned = "signed"
)

// GetDocumentResult is the outcome of a single poll.
type GetDocumentResult struct {
	Status   string
	Document *services.SignedDocument
}
