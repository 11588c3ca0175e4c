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

// Package simulator implements the mobile relay wire protocol in process.
// It stands in for the real relay in integration tests and in the demo
// command, signing documents by itself instead of handing them to a phone.
package simulator

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/slovensko-digital/autogram-go/logging"
	"github.com/slovensko-digital/autogram-go/pkg/services"
)

// Simulation is an in-process mobile relay.
type Simulation struct {
	// SignAfterPolls makes the simulation sign a document on its own after
	// it has been polled that many times. Zero keeps documents pending
	// until CompleteSigning is called.
	SignAfterPolls int
	// SignerName is reported on self-signed documents; empty leaves the
	// signer list's entries blank so clients exercise their fallbacks.
	SignerName string
	// IssuerName is reported alongside SignerName when set
	IssuerName string

	echo     *echo.Echo
	server   *http.Server
	listener net.Listener

	mu           sync.Mutex
	integrations map[string]string
	documents    map[string]*relayDocument
}

type relayDocument struct {
	submitted     services.DocumentToSign
	encryptionKey string
	lastModified  string
	polls         int
	signed        *services.SignedDocument
}

type guidResponse struct {
	Guid string `json:"guid"`
}

type relayError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// New returns an idle simulation; mount Handler or call Start to serve it.
func New() *Simulation {
	s := &Simulation{
		integrations: map[string]string{},
		documents:    map[string]*relayDocument{},
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.POST("/integrations", s.registerIntegration)
	e.GET("/integration-devices", s.listDevices)
	e.POST("/documents", s.postDocument)
	e.GET("/documents/:guid", s.getDocument)
	e.POST("/sign-request", s.signRequest)
	s.echo = e

	return s
}

// Handler exposes the simulation as an http.Handler.
func (s *Simulation) Handler() http.Handler {
	return s.echo
}

// Start serves the simulation on a random localhost port and returns its
// base URL.
func (s *Simulation) Start() (string, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", err
	}
	s.listener = listener
	s.server = &http.Server{Handler: s.echo}
	go func() {
		if err := s.server.Serve(listener); err != http.ErrServerClosed {
			logging.Log().WithError(err).Debug("relay simulation stopped")
		}
	}()

	return "http://" + listener.Addr().String(), nil
}

// Stop shuts the simulation down.
func (s *Simulation) Stop() error {
	if s.server == nil {
		return nil
	}
	return s.server.Close()
}

// CompleteSigning signs a pending document with the given signers, as a
// phone would after scanning the QR code.
func (s *Simulation) CompleteSigning(documentGuid string, signers []services.Signer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	document, ok := s.documents[documentGuid]
	if !ok {
		return services.ErrDocumentMissing
	}
	s.signLocked(document, signers)
	return nil
}

func (s *Simulation) registerIntegration(c echo.Context) error {
	request := struct {
		Platform    string `json:"platform"`
		DisplayName string `json:"displayName"`
		PublicKey   string `json:"publicKey"`
	}{}
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, relayError{Code: "INVALID_BODY", Message: "could not parse request body"})
	}
	if request.PublicKey == "" {
		return c.JSON(http.StatusBadRequest, relayError{Code: "PUBLIC_KEY_MISSING", Message: "publicKey is required"})
	}

	guid := uuid.New().String()
	s.mu.Lock()
	s.integrations[guid] = request.PublicKey
	s.mu.Unlock()

	return c.JSON(http.StatusOK, guidResponse{Guid: guid})
}

func (s *Simulation) listDevices(c echo.Context) error {
	return c.JSON(http.StatusOK, []interface{}{})
}

func (s *Simulation) postDocument(c echo.Context) error {
	if ok, err := s.requireBearer(c); !ok {
		return err
	}
	encryptionKey := c.Request().Header.Get("X-Encryption-Key")
	if encryptionKey == "" {
		return c.JSON(http.StatusBadRequest, relayError{Code: "ENCRYPTION_KEY_MISSING", Message: "X-Encryption-Key is required"})
	}

	submitted := services.DocumentToSign{}
	if err := c.Bind(&submitted); err != nil {
		return c.JSON(http.StatusBadRequest, relayError{Code: "INVALID_BODY", Message: "could not parse request body"})
	}

	guid := uuid.New().String()
	lastModified := time.Now().UTC().Format(http.TimeFormat)
	s.mu.Lock()
	s.documents[guid] = &relayDocument{
		submitted:     submitted,
		encryptionKey: encryptionKey,
		lastModified:  lastModified,
	}
	s.mu.Unlock()

	c.Response().Header().Set("Last-Modified", lastModified)
	return c.JSON(http.StatusOK, guidResponse{Guid: guid})
}

func (s *Simulation) signRequest(c echo.Context) error {
	if ok, err := s.requireBearer(c); !ok {
		return err
	}
	request := struct {
		DocumentGuid string `json:"documentGuid"`
	}{}
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, relayError{Code: "INVALID_BODY", Message: "could not parse request body"})
	}

	s.mu.Lock()
	_, ok := s.documents[request.DocumentGuid]
	s.mu.Unlock()
	if !ok {
		return c.JSON(http.StatusNotFound, relayError{Code: "DOCUMENT_NOT_FOUND", Message: "unknown document guid"})
	}
	return c.JSON(http.StatusOK, map[string]string{})
}

func (s *Simulation) getDocument(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	document, ok := s.documents[c.Param("guid")]
	if !ok {
		return c.JSON(http.StatusNotFound, relayError{Code: "DOCUMENT_NOT_FOUND", Message: "unknown document guid"})
	}

	if document.signed == nil {
		document.polls++
		if s.SignAfterPolls > 0 && document.polls >= s.SignAfterPolls {
			var signers []services.Signer
			if s.SignerName != "" || s.IssuerName != "" {
				signers = []services.Signer{{SignedBy: s.SignerName, IssuedBy: s.IssuerName}}
			}
			s.signLocked(document, signers)
		}
	}

	if document.signed == nil {
		return c.NoContent(http.StatusNotModified)
	}
	return c.JSON(http.StatusOK, document.signed)
}

// requireBearer writes a 401 and reports false when the request carries no
// bearer token.
func (s *Simulation) requireBearer(c echo.Context) (bool, error) {
	authorization := c.Request().Header.Get(echo.HeaderAuthorization)
	if !strings.HasPrefix(authorization, "Bearer ") || len(authorization) <= len("Bearer ") {
		return false, c.JSON(http.StatusUnauthorized, relayError{Code: "UNAUTHORIZED", Message: "bearer token missing"})
	}
	return true, nil
}

func (s *Simulation) signLocked(document *relayDocument, signers []services.Signer) {
	filename := document.submitted.Document.Filename
	if filename == "" {
		filename = "document"
	}
	mimeType := document.submitted.PayloadMimeType
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	document.signed = &services.SignedDocument{
		Filename: filename,
		MimeType: mimeType,
		Content:  document.submitted.Document.Content,
		Signers:  signers,
	}
	document.lastModified = time.Now().UTC().Format(http.TimeFormat)
}
