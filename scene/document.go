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

// Package scene holds a stack of pattern layers together with the canvas
// settings, and renders complete frames.
//
// A [Document] is a plain value without any hidden state besides the
// counter used to allocate layer IDs.  Hosts which share a document
// between goroutines must provide their own locking.
package scene

import (
	"errors"
	"fmt"
	"slices"

	"seehuhn.de/go/vectorlab/pattern"
)

// Canvas size limits.
const (
	MinSize = 1
	MaxSize = 4000
)

// Errors returned by the document operations.
var (
	ErrNoLayer   = errors.New("no such layer")
	ErrLastLayer = errors.New("cannot remove the last layer")
	ErrBadIndex  = errors.New("layer index out of range")
)

// Document is a stack of layers drawn on a background.
type Document struct {
	Width, Height int
	Background    Background

	// Layers is drawn from first to last, so that the last layer ends up
	// on top.
	Layers []pattern.Layer

	// Active is the ID of the layer being edited.
	Active int

	nextID int
}

// New returns a document with a single default layer on an 800×800
// canvas.
func New() *Document {
	d := &Document{
		Width:      800,
		Height:     800,
		Background: DefaultBackground(),
		nextID:     1,
	}
	d.AddLayer(pattern.DefaultLayer())
	return d
}

// SetSize changes the canvas size.  Both dimensions are clamped to
// [MinSize, MaxSize].
func (d *Document) SetSize(w, h int) {
	d.Width = clampSize(w)
	d.Height = clampSize(h)
}

func clampSize(x int) int {
	return min(max(x, MinSize), MaxSize)
}

func (d *Document) index(id int) int {
	return slices.IndexFunc(d.Layers, func(l pattern.Layer) bool {
		return l.ID == id
	})
}

func (d *Document) allocID() int {
	if d.nextID <= 0 {
		d.resyncIDs()
	}
	id := d.nextID
	d.nextID++
	return id
}

// resyncIDs makes sure that new IDs do not collide with existing ones.
func (d *Document) resyncIDs() {
	next := 1
	for _, l := range d.Layers {
		next = max(next, l.ID+1)
	}
	d.nextID = max(d.nextID, next)
}

// LoadLayer returns a copy of the layer with the given ID.  Changes to
// the copy take effect once they are written back with [Document.CommitLayer].
func (d *Document) LoadLayer(id int) (pattern.Layer, error) {
	i := d.index(id)
	if i < 0 {
		return pattern.Layer{}, fmt.Errorf("layer %d: %w", id, ErrNoLayer)
	}
	return d.Layers[i].Clone(), nil
}

// CommitLayer replaces the layer with the given ID.  The ID of l is
// ignored.
func (d *Document) CommitLayer(id int, l pattern.Layer) error {
	i := d.index(id)
	if i < 0 {
		return fmt.Errorf("layer %d: %w", id, ErrNoLayer)
	}
	l = l.Clone()
	l.ID = id
	d.Layers[i] = l
	return nil
}

// ActiveLayer returns a copy of the layer being edited.
func (d *Document) ActiveLayer() (pattern.Layer, error) {
	return d.LoadLayer(d.Active)
}

// AddLayer appends a copy of l on top of the stack, gives it a fresh ID
// and makes it the active layer.  An empty or default name is replaced
// by "Layer n", where n is the new stack height.  The new ID is returned.
func (d *Document) AddLayer(l pattern.Layer) int {
	d.resyncIDs()
	l = l.Clone()
	l.ID = d.allocID()
	if l.Name == "" || l.Name == pattern.DefaultLayer().Name {
		l.Name = fmt.Sprintf("Layer %d", len(d.Layers)+1)
	}
	d.Layers = append(d.Layers, l)
	d.Active = l.ID
	return l.ID
}

// RemoveLayer deletes the layer with the given ID.  The last remaining
// layer cannot be removed.  If the active layer is removed, its
// neighbour becomes active.
func (d *Document) RemoveLayer(id int) error {
	i := d.index(id)
	if i < 0 {
		return fmt.Errorf("layer %d: %w", id, ErrNoLayer)
	}
	if len(d.Layers) <= 1 {
		return ErrLastLayer
	}
	d.Layers = slices.Delete(d.Layers, i, i+1)
	if d.Active == id {
		d.Active = d.Layers[min(i, len(d.Layers)-1)].ID
	}
	return nil
}

// MoveLayer moves the layer at stack position from to position to.
func (d *Document) MoveLayer(from, to int) error {
	n := len(d.Layers)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("move %d -> %d with %d layers: %w", from, to, n, ErrBadIndex)
	}
	l := d.Layers[from]
	d.Layers = slices.Delete(d.Layers, from, from+1)
	d.Layers = slices.Insert(d.Layers, to, l)
	return nil
}

// DuplicateLayer inserts a copy of the layer with the given ID directly
// above it.  The copy becomes the active layer and its ID is returned.
func (d *Document) DuplicateLayer(id int) (int, error) {
	i := d.index(id)
	if i < 0 {
		return 0, fmt.Errorf("layer %d: %w", id, ErrNoLayer)
	}
	d.resyncIDs()
	l := d.Layers[i].Clone()
	l.ID = d.allocID()
	l.Name += " (copy)"
	d.Layers = slices.Insert(d.Layers, i+1, l)
	d.Active = l.ID
	return l.ID, nil
}

// ToggleVisible flips the visibility of a layer.
func (d *Document) ToggleVisible(id int) error {
	i := d.index(id)
	if i < 0 {
		return fmt.Errorf("layer %d: %w", id, ErrNoLayer)
	}
	d.Layers[i].Visible = !d.Layers[i].Visible
	return nil
}

// SelectLayer makes the layer with the given ID the active layer.
func (d *Document) SelectLayer(id int) error {
	if d.index(id) < 0 {
		return fmt.Errorf("layer %d: %w", id, ErrNoLayer)
	}
	d.Active = id
	return nil
}

// SelectOffset moves the selection by delta positions in the stack,
// wrapping around at the ends.
func (d *Document) SelectOffset(delta int) {
	n := len(d.Layers)
	if n == 0 {
		return
	}
	i := max(d.index(d.Active), 0)
	i = ((i+delta)%n + n) % n
	d.Active = d.Layers[i].ID
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	res := *d
	res.Background.Colors = slices.Clone(d.Background.Colors)
	res.Layers = make([]pattern.Layer, len(d.Layers))
	for i, l := range d.Layers {
		res.Layers[i] = l.Clone()
	}
	return &res
}

// Validate reports all problems with the document.
func (d *Document) Validate() error {
	var errs []error
	if d.Width < MinSize || d.Width > MaxSize || d.Height < MinSize || d.Height > MaxSize {
		errs = append(errs, fmt.Errorf("canvas size %dx%d out of range", d.Width, d.Height))
	}
	if err := d.Background.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(d.Layers) == 0 {
		errs = append(errs, errors.New("document has no layers"))
	}
	seen := make(map[int]bool)
	for i := range d.Layers {
		l := &d.Layers[i]
		if seen[l.ID] {
			errs = append(errs, fmt.Errorf("duplicate layer ID %d", l.ID))
		}
		seen[l.ID] = true
		if err := l.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(d.Layers) > 0 && d.index(d.Active) < 0 {
		errs = append(errs, fmt.Errorf("active layer %d: %w", d.Active, ErrNoLayer))
	}
	return errors.Join(errs...)
}

// Normalize repairs everything [Document.Validate] would complain about.
func (d *Document) Normalize() {
	d.SetSize(d.Width, d.Height)
	d.Background.Normalize()
	if len(d.Layers) == 0 {
		d.Layers = append(d.Layers, pattern.DefaultLayer())
	}
	seen := make(map[int]bool)
	for i := range d.Layers {
		l := &d.Layers[i]
		if l.ID <= 0 || seen[l.ID] {
			l.ID = 0
		}
		seen[l.ID] = true
		l.Normalize()
	}
	d.nextID = 0
	d.resyncIDs()
	for i := range d.Layers {
		if d.Layers[i].ID == 0 {
			d.Layers[i].ID = d.allocID()
		}
	}
	if d.index(d.Active) < 0 {
		d.Active = d.Layers[len(d.Layers)-1].ID
	}
}
