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

package scene

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"seehuhn.de/go/vectorlab/internal/vlog"
	"seehuhn.de/go/vectorlab/pattern"
)

// FormatVersion is written into every project file.  When reading, the
// version is advisory.
const FormatVersion = "2.0"

type resolution struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type global struct {
	Background Background `json:"background"`
}

type projectFile struct {
	Version    string            `json:"version"`
	Timestamp  int64             `json:"timestamp,omitempty"`
	Resolution resolution        `json:"resolution"`
	Global     global            `json:"global"`
	Layers     []json.RawMessage `json:"layers"`
	Active     int               `json:"active"`
}

// MarshalJSON implements the [json.Marshaler] interface.
func (d *Document) MarshalJSON() ([]byte, error) {
	pf := projectFile{
		Version:    FormatVersion,
		Timestamp:  time.Now().UnixMilli(),
		Resolution: resolution{d.Width, d.Height},
		Global:     global{Background: d.Background},
		Active:     d.Active,
	}
	for i := range d.Layers {
		raw, err := json.Marshal(&d.Layers[i])
		if err != nil {
			return nil, err
		}
		pf.Layers = append(pf.Layers, raw)
	}
	return json.Marshal(pf)
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
//
// Fields missing from the input take their default values.  This holds
// for every layer individually, so that project files written by older
// versions remain readable.
func (d *Document) UnmarshalJSON(data []byte) error {
	pf := projectFile{
		Resolution: resolution{800, 800},
		Global:     global{Background: DefaultBackground()},
	}
	if err := json.Unmarshal(data, &pf); err != nil {
		return err
	}
	if pf.Version != "" && !strings.HasPrefix(pf.Version, "2.") {
		vlog.L().Warn().Str("version", pf.Version).Msg("unexpected project version")
	}

	layers := make([]pattern.Layer, 0, len(pf.Layers))
	for i, raw := range pf.Layers {
		l := pattern.DefaultLayer()
		if err := json.Unmarshal(raw, &l); err != nil {
			return fmt.Errorf("layer %d: %w", i, err)
		}
		layers = append(layers, l)
	}

	*d = Document{
		Width:      pf.Resolution.Width,
		Height:     pf.Resolution.Height,
		Background: pf.Global.Background,
		Layers:     layers,
		Active:     pf.Active,
	}
	d.resyncIDs()
	return nil
}

// Decode reads a project and repairs any invalid settings.  Problems
// found are logged.
func Decode(r io.Reader) (*Document, error) {
	d := &Document{}
	if err := json.NewDecoder(r).Decode(d); err != nil {
		return nil, fmt.Errorf("decode project: %w", err)
	}
	if err := d.Validate(); err != nil {
		vlog.L().Warn().Err(err).Msg("repairing project")
		d.Normalize()
	}
	return d, nil
}

// Encode writes the project as indented JSON.
func Encode(w io.Writer, d *Document) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode project: %w", err)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return fmt.Errorf("encode project: %w", err)
	}
	buf.WriteByte('\n')
	_, err = buf.WriteTo(w)
	return err
}

// ReadFile reads a project file.
func ReadFile(name string) (*Document, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	d, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return d, nil
}

// WriteFile writes a project file.
func WriteFile(name string, d *Document) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return Encode(f, d)
}
