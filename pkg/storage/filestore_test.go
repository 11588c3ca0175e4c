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

package storage

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testStorePath(t *testing.T) (string, func()) {
	dir, err := ioutil.TempDir("", "autogram-store")
	if err != nil {
		t.Fatal(err)
	}
	return filepath.Join(dir, "nested", "identity.json"), func() { os.RemoveAll(dir) }
}

func TestFileStore(t *testing.T) {
	t.Run("ok - get after set", func(t *testing.T) {
		path, cleanup := testStorePath(t)
		defer cleanup()

		store, err := NewFileStore(path)
		if !assert.NoError(t, err) {
			return
		}

		assert.NoError(t, store.Set("keyPair", "pem-data"))

		value, ok, err := store.Get("keyPair")
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "pem-data", value)
	})

	t.Run("ok - missing key", func(t *testing.T) {
		path, cleanup := testStorePath(t)
		defer cleanup()

		store, err := NewFileStore(path)
		if !assert.NoError(t, err) {
			return
		}

		_, ok, err := store.Get("integrationGuid")
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("ok - values survive reopening", func(t *testing.T) {
		path, cleanup := testStorePath(t)
		defer cleanup()

		store, err := NewFileStore(path)
		if !assert.NoError(t, err) {
			return
		}
		assert.NoError(t, store.Set("keyPair", "pem-data"))
		assert.NoError(t, store.Set("integrationGuid", "dev-123"))

		reopened, err := NewFileStore(path)
		if !assert.NoError(t, err) {
			return
		}
		value, ok, err := reopened.Get("integrationGuid")
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "dev-123", value)
	})

	t.Run("ok - store file is owner-only", func(t *testing.T) {
		path, cleanup := testStorePath(t)
		defer cleanup()

		store, err := NewFileStore(path)
		if !assert.NoError(t, err) {
			return
		}
		assert.NoError(t, store.Set("keyPair", "pem-data"))

		info, err := os.Stat(path)
		if !assert.NoError(t, err) {
			return
		}
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	})

	t.Run("error - corrupted store file", func(t *testing.T) {
		path, cleanup := testStorePath(t)
		defer cleanup()

		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			t.Fatal(err)
		}
		if err := ioutil.WriteFile(path, []byte("not json"), 0600); err != nil {
			t.Fatal(err)
		}

		_, err := NewFileStore(path)
		assert.Error(t, err)
	})
}
