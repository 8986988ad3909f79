// seehuhn.de/go/vectorlab - layered parametric pattern rendering
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/vectorlab/pattern"
	"seehuhn.de/go/vectorlab/scene"
)

func openTest(t *testing.T) *Library {
	t.Helper()
	lib, err := Open(filepath.Join(t.TempDir(), "lib", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { lib.Close() })

	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	lib.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return lib
}

func TestCreateAndClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	lib, err := Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, lib.Close())

	_, err = os.Stat(dbPath)
	assert.NoError(t, err)

	// reopening an existing library works
	lib, err = Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, lib.Close())
}

func TestSaveLoad(t *testing.T) {
	ctx := context.Background()
	lib := openTest(t)

	d := scene.New()
	d.Width = 640
	l := pattern.DefaultLayer()
	l.Pattern = pattern.Circles
	d.AddLayer(l)

	require.NoError(t, lib.Save(ctx, "rings", d))
	back, err := lib.Load(ctx, "rings")
	require.NoError(t, err)
	assert.Equal(t, 640, back.Width)
	require.Len(t, back.Layers, 2)
	assert.Equal(t, pattern.Circles, back.Layers[1].Pattern)
	assert.Equal(t, d.Active, back.Active)
}

func TestSaveReplaces(t *testing.T) {
	ctx := context.Background()
	lib := openTest(t)

	d := scene.New()
	require.NoError(t, lib.Save(ctx, "a", d))
	d.Height = 300
	require.NoError(t, lib.Save(ctx, "a", d))

	list, err := lib.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 300, list[0].Height)

	assert.Error(t, lib.Save(ctx, "", d))
}

func TestList(t *testing.T) {
	ctx := context.Background()
	lib := openTest(t)

	list, err := lib.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	for _, name := range []string{"zebra", "alpha", "mid"} {
		require.NoError(t, lib.Save(ctx, name, scene.New()))
	}
	list, err = lib.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "alpha", list[0].Name)
	assert.Equal(t, "mid", list[1].Name)
	assert.Equal(t, "zebra", list[2].Name)
	assert.Equal(t, 1, list[0].Layers)
	assert.Equal(t, 800, list[0].Width)
	assert.True(t, list[0].Saved.After(list[2].Saved), "alpha was saved after zebra")
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	lib := openTest(t)

	require.NoError(t, lib.Save(ctx, "x", scene.New()))
	require.NoError(t, lib.Delete(ctx, "x"))

	_, err := lib.Load(ctx, "x")
	assert.True(t, errors.Is(err, ErrNotFound))
	err = lib.Delete(ctx, "x")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestAutosave(t *testing.T) {
	ctx := context.Background()
	lib := openTest(t)

	_, _, err := lib.LoadAutosave(ctx)
	assert.True(t, errors.Is(err, ErrNotFound))

	d := scene.New()
	require.NoError(t, lib.Autosave(ctx, d))
	d.Width = 123
	require.NoError(t, lib.Autosave(ctx, d))

	back, saved, err := lib.LoadAutosave(ctx)
	require.NoError(t, err)
	assert.Equal(t, 123, back.Width)
	assert.Equal(t, time.Date(2026, 3, 1, 12, 0, 2, 0, time.UTC), saved.UTC())

	// the autosave slot is not listed as a project
	list, err := lib.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
