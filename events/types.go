// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import "fmt"

// Types determines the type of pointer event delivered to a
// frame's hit region.
type Types int32

const (
	// zero value is an unknown type
	UnknownType Types = iota

	// MouseEnter is when the pointer enters the hit region of an element.
	// It is used for setting the Hover state.
	MouseEnter

	// MouseLeave is when the pointer leaves the hit region of an element
	// that previously had a MouseEnter event triggered.
	MouseLeave

	// Click represents a MouseDown followed by MouseUp in sequence on the
	// same element, with the same button.
	Click
)

var typeNames = [...]string{"UnknownType", "MouseEnter", "MouseLeave", "Click"}

func (tp Types) String() string {
	if tp < 0 || int(tp) >= len(typeNames) {
		return fmt.Sprintf("Types(%d)", int32(tp))
	}
	return typeNames[tp]
}
