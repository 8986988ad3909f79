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

// Package vlog holds the logger shared by the library packages.
//
// By default nothing is logged.  Commands install their logger with
// [Set].
package vlog

import (
	"sync/atomic"

	"github.com/rs/zerolog"
)

var current atomic.Pointer[zerolog.Logger]

func init() {
	nop := zerolog.Nop()
	current.Store(&nop)
}

// Set installs l as the logger for all library packages.  Passing nil
// restores the silent default.  Set is safe for concurrent use.
func Set(l *zerolog.Logger) {
	if l == nil {
		nop := zerolog.Nop()
		l = &nop
	}
	current.Store(l)
}

// L returns the current logger.
func L() *zerolog.Logger {
	return current.Load()
}
