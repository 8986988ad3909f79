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

// Package preview serves live renderings of a document over websockets.
//
// Frames are sent as binary PNG messages on /frames.  Edits arrive as
// JSON messages on /control, and every edit is answered with the new
// document state.
package preview

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"seehuhn.de/go/vectorlab/internal/vlog"
	"seehuhn.de/go/vectorlab/pattern"
	"seehuhn.de/go/vectorlab/raster"
	"seehuhn.de/go/vectorlab/scene"
)

const writeTimeout = 200 * time.Millisecond

// Server owns a document and renders it at a fixed frame rate.
type Server struct {
	FPS      int
	Density  int
	Flatness float64

	// OnChange, if set, is called with a copy of the document after
	// every successful edit.
	OnChange func(d *scene.Document)

	mu      sync.RWMutex
	doc     *scene.Document
	frameID uint64
	start   time.Time

	cmu     sync.Mutex
	clients map[*websocket.Conn]bool

	upgrader websocket.Upgrader
}

// New returns a server for a copy of d.
func New(d *scene.Document, fps int) *Server {
	return &Server{
		FPS:      max(fps, 1),
		Density:  1,
		Flatness: raster.DefaultFlatness,
		doc:      d.Clone(),
		start:    time.Now(),
		clients:  map[*websocket.Conn]bool{},
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Handler returns the HTTP routes of the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/frames", s.HandleFrames)
	mux.HandleFunc("/control", s.HandleControl)
	mux.HandleFunc("/health", s.HandleHealth)
	mux.HandleFunc("/project", s.HandleProject)
	return mux
}

// Document returns a copy of the current document.
func (s *Server) Document() *scene.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Clone()
}

// Run renders and broadcasts frames until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(max(1, s.FPS)))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.closeClients()
			return ctx.Err()
		case <-ticker.C:
		}

		png, err := s.renderFrame(time.Since(s.start).Seconds())
		if err != nil {
			vlog.L().Warn().Err(err).Msg("preview: render failed")
			continue
		}
		s.broadcast(png)
	}
}

// renderFrame draws the document at time t and returns the PNG data.
func (s *Server) renderFrame(t float64) ([]byte, error) {
	s.mu.Lock()
	s.frameID++
	s.mu.Unlock()

	s.mu.RLock()
	im := raster.NewImage(s.doc.Width, s.doc.Height, s.Density)
	im.SetFlatness(s.Flatness)
	scene.RenderFrame(im, s.doc, t)
	s.mu.RUnlock()

	buf := &bytes.Buffer{}
	if err := im.EncodePNG(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Server) broadcast(png []byte) {
	s.cmu.Lock()
	defer s.cmu.Unlock()
	for c := range s.clients {
		c.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.WriteMessage(websocket.BinaryMessage, png); err != nil {
			vlog.L().Debug().Err(err).Msg("write frame")
		}
	}
}

func (s *Server) closeClients() {
	s.cmu.Lock()
	defer s.cmu.Unlock()
	for c := range s.clients {
		c.Close()
		delete(s.clients, c)
	}
}

// HandleFrames registers a frame subscriber.
func (s *Server) HandleFrames(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.cmu.Lock()
	s.clients[conn] = true
	s.cmu.Unlock()

	go func() {
		defer func() {
			s.cmu.Lock()
			delete(s.clients, conn)
			s.cmu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Control is an edit request received on /control.
type Control struct {
	Op    string          `json:"op"`
	Layer int             `json:"layer,omitempty"`
	Set   json.RawMessage `json:"set,omitempty"`

	// To is the target stack position for "move".
	To int `json:"to,omitempty"`

	// Width and Height are used by "resize".
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`
}

// Reply is sent back for every control message.
type Reply struct {
	OK     bool   `json:"ok"`
	Error  string `json:"error,omitempty"`
	Active int    `json:"active"`
	Layers []Info `json:"layers"`
}

// Info summarises one layer.
type Info struct {
	ID      int          `json:"id"`
	Name    string       `json:"name"`
	Visible bool         `json:"visible"`
	Pattern pattern.Kind `json:"pattern"`
}

// HandleControl reads edit requests until the connection is closed.
func (s *Server) HandleControl(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var msg Control
		if err := json.Unmarshal(data, &msg); err != nil {
			err = fmt.Errorf("malformed control message: %w", err)
			s.reply(conn, err)
			continue
		}
		err = s.Apply(msg)
		if err != nil {
			vlog.L().Info().Err(err).Str("op", msg.Op).Msg("control rejected")
		}
		s.reply(conn, err)
	}
}

func (s *Server) reply(conn *websocket.Conn, err error) {
	s.mu.RLock()
	rep := Reply{OK: err == nil, Active: s.doc.Active}
	for _, l := range s.doc.Layers {
		rep.Layers = append(rep.Layers, Info{ID: l.ID, Name: l.Name, Visible: l.Visible, Pattern: l.Pattern})
	}
	s.mu.RUnlock()
	if err != nil {
		rep.Error = err.Error()
	}
	b, _ := json.Marshal(rep)
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	_ = conn.WriteMessage(websocket.TextMessage, b)
}

var errUnknownOp = errors.New("unknown operation")

// Apply performs an edit on the document.
func (s *Server) Apply(msg Control) error {
	s.mu.Lock()
	err := s.apply(msg)
	var snapshot *scene.Document
	if err == nil && s.OnChange != nil {
		snapshot = s.doc.Clone()
	}
	s.mu.Unlock()

	if snapshot != nil {
		s.OnChange(snapshot)
	}
	return err
}

func (s *Server) apply(msg Control) error {
	d := s.doc
	switch msg.Op {
	case "patch":
		l, err := d.LoadLayer(msg.Layer)
		if err != nil {
			return err
		}
		if err := scene.Patch(&l, msg.Set); err != nil {
			return err
		}
		if err := l.Validate(); err != nil {
			return err
		}
		return d.CommitLayer(msg.Layer, l)
	case "select":
		return d.SelectLayer(msg.Layer)
	case "add":
		l := pattern.DefaultLayer()
		if len(msg.Set) > 0 {
			if err := scene.Patch(&l, msg.Set); err != nil {
				return err
			}
		}
		if err := l.Validate(); err != nil {
			return err
		}
		d.AddLayer(l)
		return nil
	case "remove":
		return d.RemoveLayer(msg.Layer)
	case "duplicate":
		_, err := d.DuplicateLayer(msg.Layer)
		return err
	case "move":
		for i, l := range d.Layers {
			if l.ID == msg.Layer {
				return d.MoveLayer(i, msg.To)
			}
		}
		return fmt.Errorf("layer %d: %w", msg.Layer, scene.ErrNoLayer)
	case "toggle":
		return d.ToggleVisible(msg.Layer)
	case "background":
		bg := d.Background
		bg.Colors = slices.Clone(bg.Colors)
		if err := json.Unmarshal(msg.Set, &bg); err != nil {
			return fmt.Errorf("background: %w", err)
		}
		if err := bg.Validate(); err != nil {
			return err
		}
		bg.Normalize()
		d.Background = bg
		return nil
	case "resize":
		d.SetSize(msg.Width, msg.Height)
		return nil
	}
	return fmt.Errorf("%q: %w", msg.Op, errUnknownOp)
}

// HandleHealth reports the state of the render loop.
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	resp := map[string]any{
		"frame_id": s.frameID,
		"uptime_s": time.Since(s.start).Seconds(),
		"layers":   len(s.doc.Layers),
		"fps":      s.FPS,
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// HandleProject returns the document as project JSON.
func (s *Server) HandleProject(w http.ResponseWriter, r *http.Request) {
	d := s.Document()
	w.Header().Set("Content-Type", "application/json")
	if err := scene.Encode(w, d); err != nil {
		vlog.L().Warn().Err(err).Msg("preview: encode project")
	}
}
