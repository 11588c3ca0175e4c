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
	"context"
	"time"
)

// KeyStore is the persistent key-value collaborator used to keep the device
// identity across sessions. Implementations must tolerate concurrent use from
// a single browser-context equivalent: one writer, occasional readers.
type KeyStore interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Storage keys used by the mobile integration.
const (
	KeyPairStorageKey         = "keyPair"
	IntegrationGuidStorageKey = "integrationGuid"
)

// MethodSelector is the UI collaborator that lets the user pick a signing
// channel and renders the hand-off screens. StartSigning suspends until the
// user acts; a cancelled dialog is reported as ErrUserCancelled.
type MethodSelector interface {
	StartSigning(ctx context.Context) (SigningMethod, error)
	ShowQRCode(ctx context.Context, url string)
	ShowDesktopSigning(ctx context.Context)
	Hide()
	Reset()
}

// DesktopClient is the local desktop application collaborator. The desktop
// app exposes a plain REST interface on localhost; there is no stateful
// protocol beyond "probe, else launch, then poll status".
type DesktopClient interface {
	Info(ctx context.Context) (*ServerInfo, error)
	LaunchURL() string
	WaitForStatus(ctx context.Context, status string, interval time.Duration, maxAttempts int) (*ServerInfo, error)
	Sign(ctx context.Context, document Document, parameters SignatureParameters, payloadMimeType string) (*SignedObject, error)
}

// MobileIntegration is the stateful mobile signing channel. Exactly one
// document may be in flight per integration instance; AddDocument must have
// completed before QrCodeURL or WaitForSignature are used.
type MobileIntegration interface {
	Init() error
	LoadOrRegister(ctx context.Context) error
	AddDocument(ctx context.Context, document DocumentToSign) error
	QrCodeURL(enableDeviceLink bool) (string, error)
	WaitForSignature(ctx context.Context) (*SignedDocument, error)
	Abort()
	Reset()
}
