// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import (
	"periph.io/x/conn/v3/display"
)

// Turn the display backlight on or off. The backpack switches the backlight
// with a single expander pin, so any intensity above zero is full on.
//
// The setting is applied right away with EN low, and carried by every later
// transfer. It is kept only if that write succeeds.
func (d *Dev) Backlight(intensity display.Intensity) error {
	prev := d.backlight
	d.backlight = intensity > 0
	if err := d.send([]byte{d.control(modeCommand)}); err != nil {
		d.backlight = prev
		return err
	}
	return nil
}
