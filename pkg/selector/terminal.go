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

// Package selector provides a terminal implementation of the method selector
// used by the demo command. Host applications embed their own UI behind the
// services.MethodSelector interface instead.
package selector

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mdp/qrterminal/v3"

	"github.com/slovensko-digital/autogram-go/pkg/services"
)

// Terminal asks for the signing method on standard input and renders the
// QR hand-off with qrterminal.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
}

// NewTerminal returns a selector bound to stdin/stdout.
func NewTerminal() *Terminal {
	return &Terminal{
		in:  bufio.NewReader(os.Stdin),
		out: os.Stdout,
	}
}

// NewTerminalWithIO returns a selector bound to the given streams.
func NewTerminalWithIO(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// StartSigning prompts until the user picks a channel or cancels.
func (t *Terminal) StartSigning(ctx context.Context) (services.SigningMethod, error) {
	fmt.Fprintln(t.out, "How do you want to sign the document?")
	fmt.Fprintln(t.out, "  1) Autogram desktop application")
	fmt.Fprintln(t.out, "  2) Autogram v mobile (QR code)")
	fmt.Fprintln(t.out, "  q) cancel")

	for {
		if ctx.Err() != nil {
			return "", services.ErrUserCancelled
		}
		fmt.Fprint(t.out, "> ")

		line, err := t.in.ReadString('\n')
		if err != nil {
			return "", services.ErrUserCancelled
		}
		switch strings.TrimSpace(line) {
		case "1":
			return services.MethodReader, nil
		case "2":
			return services.MethodMobile, nil
		case "q", "Q":
			return "", services.ErrUserCancelled
		default:
			fmt.Fprintln(t.out, "please answer 1, 2 or q")
		}
	}
}

// ShowQRCode renders the hand-off URL as a scannable QR code.
func (t *Terminal) ShowQRCode(ctx context.Context, url string) {
	fmt.Fprintln(t.out, "Scan this code with the Autogram v mobile app:")
	qrterminal.GenerateWithConfig(url, qrterminal.Config{
		Level:     qrterminal.L,
		Writer:    t.out,
		BlackChar: qrterminal.BLACK,
		WhiteChar: qrterminal.WHITE,
		QuietZone: 1,
	})
	fmt.Fprintln(t.out, url)
}

// ShowDesktopSigning announces the desktop hand-off.
func (t *Terminal) ShowDesktopSigning(ctx context.Context) {
	fmt.Fprintln(t.out, "Continue in the Autogram desktop application...")
}

// Hide satisfies the selector contract; a terminal has nothing to hide.
func (t *Terminal) Hide() {}

// Reset satisfies the selector contract.
func (t *Terminal) Reset() {}
