// seehuhn.de/go/markup - annotation overlays for rendered documents
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

// Package capture turns user input into annotations.
//
// [SelectionCapture] creates highlights from completed text selections,
// and [RectangleCapture] implements the drag gesture which draws
// rectangle annotations.  Both write to an annotation store and then ask
// a [Syncer] to redraw the affected page.
package capture

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"seehuhn.de/go/markup/annotation"
	"seehuhn.de/go/markup/internal/logging"
	"seehuhn.de/go/markup/palette"
)

// Tool is an annotation tool.
type Tool int

// These are the available tools.
const (
	Cursor Tool = iota
	Brush
	Rectangle
)

func (t Tool) String() string {
	switch t {
	case Cursor:
		return "cursor"
	case Brush:
		return "brush"
	case Rectangle:
		return "rectangle"
	default:
		return fmt.Sprintf("Tool(%d)", int(t))
	}
}

// ErrUnknownTool is returned by [ParseTool] for unknown tool names.
var ErrUnknownTool = errors.New("capture: unknown tool")

// ParseTool converts a tool name to a Tool.
func ParseTool(s string) (Tool, error) {
	for _, t := range []Tool{Cursor, Brush, Rectangle} {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownTool, s)
}

// Tools holds the active tool and colour.  The zero value is not usable;
// use [NewTools].
type Tools struct {
	mu    sync.Mutex
	tool  Tool
	color string
}

// NewTools returns the initial tool state: the cursor tool and the given
// colour.  If color cannot be parsed, the first palette swatch is used.
func NewTools(color string) *Tools {
	if _, err := palette.Parse(color); err != nil {
		color = palette.Swatches[0]
	}
	return &Tools{tool: Cursor, color: color}
}

// Tool returns the active tool.
func (t *Tools) Tool() Tool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tool
}

// SetTool changes the active tool.
func (t *Tools) SetTool(tool Tool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.tool = tool
}

// Color returns the active colour.
func (t *Tools) Color() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.color
}

// SetColor changes the active colour.
func (t *Tools) SetColor(c string) error {
	if _, err := palette.Parse(c); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.color = c
	return nil
}

// Syncer redraws the overlay of a page after the store has changed.
type Syncer interface {
	SyncPage(page int)
}

// Env holds the collaborators shared by the capture components.
type Env struct {
	Store  *annotation.Store
	Tools  *Tools
	Syncer Syncer

	// Logger receives debug messages for dropped input and info messages
	// for created annotations.  Nil disables logging.
	Logger *slog.Logger

	// Now returns the current time.  Nil means [time.Now].
	Now func() time.Time
}

func (e *Env) logger() *slog.Logger {
	return logging.Or(e.Logger)
}

func (e *Env) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

func (e *Env) sync(page int) {
	if e.Syncer != nil {
		e.Syncer.SyncPage(page)
	}
}
