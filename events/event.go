// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package events defines the pointer events consumed by
// interactive scene elements, and the listener lists that
// dispatch them.
package events

import (
	"fmt"
	"time"

	"github.com/xyzgallery/frames/math32"
)

// Event is the interface for pointer events.
type Event interface {
	fmt.Stringer

	// Type returns the type of event.
	Type() Types

	// Time returns the time at which the event was generated.
	Time() time.Time

	// IsHandled returns whether this event has already been processed.
	IsHandled() bool

	// SetHandled marks the event as having been processed,
	// which stops it from propagating to further listeners or to
	// other elements under the pointer.
	SetHandled()
}

// Base is the base type for events.
type Base struct {

	// Typ is the type of event.
	Typ Types

	// GenTime is the time when the event was generated.
	GenTime time.Time

	// Handled is whether the event has been handled.
	Handled bool
}

func (ev *Base) Type() Types {
	return ev.Typ
}

func (ev *Base) Time() time.Time {
	return ev.GenTime
}

func (ev *Base) IsHandled() bool {
	return ev.Handled
}

func (ev *Base) SetHandled() {
	ev.Handled = true
}

func (ev *Base) String() string {
	return fmt.Sprintf("%v{Time: %v, Handled: %v}", ev.Typ, ev.GenTime.Format("04:05"), ev.Handled)
}

// Buttons is a mouse button.
type Buttons int32

const (
	NoButton Buttons = iota
	Left
	Middle
	Right
)

// Pointer is a pointer event on a 3D element, carrying the
// world-space point where the pointer ray hit the element.
type Pointer struct {
	Base

	// Button is the mouse button involved, if any.
	Button Buttons

	// Where is the world-space intersection point of the pointer ray.
	Where math32.Vector3
}

// NewPointer returns a new pointer event of the given type.
func NewPointer(typ Types, but Buttons, where math32.Vector3) *Pointer {
	ev := &Pointer{}
	ev.Typ = typ
	ev.GenTime = time.Now()
	ev.Button = but
	ev.Where = where
	return ev
}

func (ev *Pointer) String() string {
	return fmt.Sprintf("%v{Button: %v, Where: %v, Handled: %v}", ev.Typ, ev.Button, ev.Where, ev.Handled)
}
