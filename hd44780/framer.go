// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import "fmt"

// Expander pin assignment of the common PCF8574 backpack:
//
//	| D7 | D6 | D5 | D4 | BL | EN | RW | RS |
//
// RW is never driven high. The driver is write-only.
const (
	pinRS byte = 1 << 0
	pinRW byte = 1 << 1
	pinEN byte = 1 << 2
	pinBL byte = 1 << 3
)

type writeMode bool

const (
	modeCommand writeMode = false
	modeData    writeMode = true
)

// frameNibble returns the two expander states that latch the low nibble of n
// on D7-D4: EN high, then EN low with data held.
func frameNibble(n, control byte) [2]byte {
	data := (n << 4) & 0xf0
	control &^= pinRW | pinEN
	return [2]byte{data | control | pinEN, data | control}
}

// frameByte returns the four expander states that latch b in 4-bit mode, high
// nibble first.
func frameByte(b, control byte) [4]byte {
	hi := frameNibble(b>>4, control)
	lo := frameNibble(b, control)
	return [4]byte{hi[0], hi[1], lo[0], lo[1]}
}

// control returns the fixed control lines for a transfer in mode.
func (d *Dev) control(mode writeMode) byte {
	var c byte
	if d.backlight {
		c |= pinBL
	}
	if mode == modeData {
		c |= pinRS
	}
	return c
}

// send hands one frame to the transport.
func (d *Dev) send(p []byte) error {
	if _, err := d.t.Write(p); err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	return nil
}

// sendNibble is only used by the initialization handshake, while the
// controller may still be in 8-bit mode.
func (d *Dev) sendNibble(n byte) error {
	f := frameNibble(n, d.control(modeCommand))
	return d.send(f[:])
}

func (d *Dev) sendCommand(c Command) error {
	f := frameByte(byte(c), d.control(modeCommand))
	return d.send(f[:])
}

func (d *Dev) sendData(b byte) error {
	f := frameByte(b, d.control(modeData))
	return d.send(f[:])
}
