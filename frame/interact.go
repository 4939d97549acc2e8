// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frame

import (
	"log/slog"

	"github.com/xyzgallery/frames/events"
)

// Controller handles the pointer events on a frame: it owns the
// hover state and reports clicks as toggle requests. Hover is never
// reported while the frame is active.
type Controller struct {

	// ID is the frame id passed to OnToggle.
	ID string

	// OnToggle is called on click with the frame id. The owner of the
	// active state decides what to do with it.
	OnToggle func(id string)

	// Active returns the active state held by the owner. If it is nil,
	// the state of the last [Controller.Sync] is used.
	Active func() bool

	active  bool
	hovered bool
}

// IsActive returns the current active state.
func (ct *Controller) IsActive() bool {
	if ct.Active != nil {
		return ct.Active()
	}
	return ct.active
}

// Hovered returns whether the pointer is over the frame and the
// frame is not active.
func (ct *Controller) Hovered() bool {
	if ct.hovered && ct.IsActive() {
		ct.hovered = false
	}
	return ct.hovered
}

// Sync records the active state for controllers without an Active
// function, clearing hover when the frame is active.
func (ct *Controller) Sync(active bool) {
	ct.active = active
	if ct.IsActive() {
		ct.hovered = false
	}
}

// PointerEnter sets hover unless the frame is active, either by the
// given state or by the owner's.
func (ct *Controller) PointerEnter(ev events.Event, active bool) {
	ev.SetHandled()
	if active || ct.IsActive() {
		ct.hovered = false
		return
	}
	ct.hovered = true
}

// PointerLeave clears hover.
func (ct *Controller) PointerLeave(ev events.Event) {
	ev.SetHandled()
	ct.hovered = false
}

// Click requests a toggle of the active state.
func (ct *Controller) Click(ev events.Event) {
	ev.SetHandled()
	slog.Debug("frame: toggle", "id", ct.ID, "active", ct.IsActive())
	if ct.OnToggle != nil {
		ct.OnToggle(ct.ID)
	}
	if ct.IsActive() {
		ct.hovered = false
	}
}

// Listen adds the controller handlers to the given listeners.
func (ct *Controller) Listen(ls *events.Listeners) {
	ls.Add(events.MouseEnter, func(ev events.Event) {
		ct.PointerEnter(ev, false)
	})
	ls.Add(events.MouseLeave, ct.PointerLeave)
	ls.Add(events.Click, ct.Click)
}
