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

package preview

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/vectorlab/scene"
)

func smallDoc() *scene.Document {
	d := scene.New()
	d.SetSize(32, 24)
	return d
}

func dial(t *testing.T, srv *httptest.Server, path string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + path
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, msg string) Reply {
	t.Helper()
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(msg)))
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var rep Reply
	require.NoError(t, json.Unmarshal(data, &rep))
	return rep
}

func TestApply(t *testing.T) {
	s := New(smallDoc(), 10)
	id := s.Document().Active

	require.NoError(t, s.Apply(Control{Op: "patch", Layer: id, Set: json.RawMessage(`{"count":7}`)}))
	require.NoError(t, s.Apply(Control{Op: "add"}))
	d := s.Document()
	require.Len(t, d.Layers, 2)
	assert.Equal(t, 7, d.Layers[0].Count)
	assert.Equal(t, d.Layers[1].ID, d.Active)

	require.NoError(t, s.Apply(Control{Op: "move", Layer: id, To: 1}))
	assert.Equal(t, id, s.Document().Layers[1].ID)

	require.NoError(t, s.Apply(Control{Op: "toggle", Layer: id}))
	assert.False(t, s.Document().Layers[1].Visible)

	require.NoError(t, s.Apply(Control{Op: "resize", Width: 100, Height: 50}))
	d = s.Document()
	assert.Equal(t, 100, d.Width)
	assert.Equal(t, 50, d.Height)

	assert.ErrorIs(t, s.Apply(Control{Op: "remove", Layer: 999}), scene.ErrNoLayer)
	assert.ErrorIs(t, s.Apply(Control{Op: "spin"}), errUnknownOp)
}

func TestApplyRejectsInvalid(t *testing.T) {
	s := New(smallDoc(), 10)
	id := s.Document().Active
	before := s.Document()

	err := s.Apply(Control{Op: "patch", Layer: id, Set: json.RawMessage(`{"pattern":"spiral"}`)})
	assert.Error(t, err)
	err = s.Apply(Control{Op: "add", Set: json.RawMessage(`{"pattern":"spiral"}`)})
	assert.Error(t, err)
	err = s.Apply(Control{Op: "add", Set: json.RawMessage(`{"count":2000000000}`)})
	assert.Error(t, err)
	err = s.Apply(Control{Op: "background", Set: json.RawMessage(`{"mode":"plaid","colors":["#ff0000"]}`)})
	assert.Error(t, err)

	after := s.Document()
	assert.Equal(t, before.Layers, after.Layers)
	assert.Equal(t, before.Background, after.Background)
}

func TestOnChange(t *testing.T) {
	s := New(smallDoc(), 10)
	var calls int
	s.OnChange = func(d *scene.Document) {
		calls++
		assert.Len(t, d.Layers, 2)
	}
	require.NoError(t, s.Apply(Control{Op: "add"}))
	assert.Error(t, s.Apply(Control{Op: "select", Layer: 999}))
	assert.Equal(t, 1, calls)
}

func TestControlSocket(t *testing.T) {
	s := New(smallDoc(), 10)
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()
	conn := dial(t, srv, "/control")

	rep := send(t, conn, `{"op":"duplicate","layer":1}`)
	assert.True(t, rep.OK)
	require.Len(t, rep.Layers, 2)
	assert.Equal(t, rep.Layers[1].ID, rep.Active)

	rep = send(t, conn, `{"op":"select","layer":1}`)
	assert.True(t, rep.OK)
	assert.Equal(t, 1, rep.Active)

	rep = send(t, conn, `not json`)
	assert.False(t, rep.OK)
	assert.Contains(t, rep.Error, "malformed")
	assert.Len(t, rep.Layers, 2)
}

func TestFrames(t *testing.T) {
	s := New(smallDoc(), 50)
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()
	conn := dial(t, srv, "/frames")

	// wait for the client to be registered before starting the loop
	require.Eventually(t, func() bool {
		s.cmu.Lock()
		defer s.cmu.Unlock()
		return len(s.clients) == 1
	}, 5*time.Second, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- s.Run(ctx) }()

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	typ, data, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, websocket.BinaryMessage, typ)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestHealthAndProject(t *testing.T) {
	s := New(smallDoc(), 25)
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	var health map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	resp.Body.Close()
	assert.Equal(t, 25.0, health["fps"])
	assert.Equal(t, 1.0, health["layers"])

	resp, err = http.Get(srv.URL + "/project")
	require.NoError(t, err)
	d, err := scene.Decode(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, 32, d.Width)
	assert.Equal(t, 24, d.Height)
}
