// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package lcdsim emulates a 16x2 HD44780 LCD behind a PCF8574 backpack.
//
// A Panel accepts the same expander byte stream a real backpack does, decodes
// the enable strobes and runs the controller instructions against its own
// DDRAM. It can stand in for the bus while developing, and lets tests check
// what a real display would show.
//
// Console and Panel.Image render the panel, to a terminal or to an image.
package lcdsim

import (
	"errors"
	"fmt"
	"strings"
)

// Expander pins, see package hd44780.
const (
	pinRS byte = 1 << 0
	pinRW byte = 1 << 1
	pinEN byte = 1 << 2
	pinBL byte = 1 << 3
)

const (
	// Rows and Cols are the visible size of the panel.
	Rows = 2
	Cols = 16

	// lineLength is the DDRAM size of one line in 2-line mode.
	lineLength = 40
	// line1 is the DDRAM address of the second line.
	line1 = 0x40
)

var (
	// ErrAbsent is returned by Probe when Opts.Absent is set.
	ErrAbsent = errors.New("lcdsim: no device at address")
	// ErrBusFault is returned by writes failing because of Opts.FailAfter.
	ErrBusFault = errors.New("lcdsim: bus fault")
)

// Opts configures faults of the emulated bus.
type Opts struct {
	// Absent makes Probe fail as if nothing acknowledged the address.
	Absent bool
	// FailAfter makes every write after the first FailAfter writes fail.
	// Zero disables.
	FailAfter int
}

// Panel is an emulated PCF8574 + HD44780 pair. It implements the transport
// expected by hd44780.New.
type Panel struct {
	opts Opts

	writes  [][]byte
	attempt int
	probes  int

	port byte
	// fourBit is set once a function set selects the 4-bit interface.
	fourBit bool
	// pending holds the high nibble of a 4-bit transfer.
	pending    bool
	hi         byte
	twoLines   bool
	increment  bool
	autoShift  bool
	on         bool
	cursor     bool
	blink      bool
	addr       byte
	shift      int
	ddram      [Rows][lineLength]byte
	dataWrites int
}

// New returns a powered on panel: 8-bit interface, display off, DDRAM blank,
// all expander pins high. opts may be nil.
func New(opts *Opts) *Panel {
	p := &Panel{port: 0xff, increment: true}
	if opts != nil {
		p.opts = *opts
	}
	p.blank()
	return p
}

func (p *Panel) blank() {
	for r := range p.ddram {
		for c := range p.ddram[r] {
			p.ddram[r][c] = ' '
		}
	}
}

// Probe implements the presence check.
func (p *Panel) Probe(retries int) error {
	p.probes++
	if p.opts.Absent {
		return fmt.Errorf("%w after %d attempts", ErrAbsent, retries)
	}
	return nil
}

// Write latches each byte of b on the expander pins in turn.
func (p *Panel) Write(b []byte) (int, error) {
	p.attempt++
	if p.opts.FailAfter > 0 && p.attempt > p.opts.FailAfter {
		return 0, fmt.Errorf("%w on write %d", ErrBusFault, p.attempt)
	}
	p.writes = append(p.writes, append([]byte(nil), b...))
	for _, v := range b {
		p.latch(v)
	}
	return len(b), nil
}

func (p *Panel) String() string {
	return "lcdsim"
}

// latch applies a new expander state. The controller samples D7-D4 and RS on
// the falling edge of EN.
func (p *Panel) latch(v byte) {
	prev := p.port
	p.port = v
	if prev&pinEN == 0 || v&pinEN != 0 || v&pinRW != 0 {
		return
	}
	nibble := v >> 4
	rs := v&pinRS != 0
	if !p.fourBit {
		// Only D7-D4 are wired; D3-D0 read as zero.
		p.execute(nibble<<4, rs)
		return
	}
	if !p.pending {
		p.hi = nibble
		p.pending = true
		return
	}
	p.pending = false
	p.execute(p.hi<<4|nibble, rs)
}

func (p *Panel) execute(b byte, rs bool) {
	if rs {
		p.writeData(b)
		return
	}
	switch {
	case b&0x80 != 0:
		p.addr = b & 0x7f
	case b&0x40 != 0:
		// CGRAM address, custom characters are not emulated.
	case b&0x20 != 0:
		p.fourBit = b&0x10 == 0
		p.twoLines = b&0x08 != 0
		p.pending = false
	case b&0x10 != 0:
		right := b&0x04 != 0
		if b&0x08 != 0 {
			p.shiftDisplay(right)
		} else {
			p.moveAddr(right)
		}
	case b&0x08 != 0:
		p.on = b&0x04 != 0
		p.cursor = b&0x02 != 0
		p.blink = b&0x01 != 0
	case b&0x04 != 0:
		p.increment = b&0x02 != 0
		p.autoShift = b&0x01 != 0
	case b&0x02 != 0:
		p.addr = 0
		p.shift = 0
	case b&0x01 != 0:
		p.blank()
		p.addr = 0
		p.shift = 0
		p.increment = true
	}
}

func (p *Panel) writeData(b byte) {
	row, col := p.cell(p.addr)
	p.ddram[row][col] = b
	p.dataWrites++
	p.moveAddr(p.increment)
	if p.autoShift {
		// The display follows the cursor: shift left while incrementing.
		p.shiftDisplay(!p.increment)
	}
}

// cell maps a DDRAM address to a line and offset.
func (p *Panel) cell(addr byte) (int, int) {
	row := 0
	if p.twoLines && addr >= line1 {
		row = 1
		addr -= line1
	}
	return row, int(addr) % lineLength
}

// moveAddr steps the address counter, wrapping from the end of one line to
// the start of the other.
func (p *Panel) moveAddr(forward bool) {
	row, col := p.cell(p.addr)
	if forward {
		col++
		if col == lineLength {
			col = 0
			row = (row + 1) % Rows
		}
	} else {
		col--
		if col < 0 {
			col = lineLength - 1
			row = (row + 1) % Rows
		}
	}
	if !p.twoLines {
		row = 0
	}
	p.addr = byte(row*line1 + col)
}

func (p *Panel) shiftDisplay(right bool) {
	if right {
		p.shift = (p.shift + 1) % lineLength
	} else {
		p.shift = (p.shift + lineLength - 1) % lineLength
	}
}

// Lines returns what the panel shows, one string of Cols bytes per row. A
// display that is off shows blanks.
func (p *Panel) Lines() [Rows]string {
	var out [Rows]string
	for r := range out {
		if !p.on {
			out[r] = strings.Repeat(" ", Cols)
			continue
		}
		line := make([]byte, Cols)
		for c := range line {
			line[c] = p.ddram[r][(c-p.shift+lineLength)%lineLength]
		}
		out[r] = string(line)
	}
	return out
}

// Line returns the content of DDRAM line row, including the part outside of
// the visible window.
func (p *Panel) Line(row int) string {
	return string(p.ddram[row][:])
}

// Cursor returns the zero based line and offset of the address counter.
func (p *Panel) Cursor() (row, col int) {
	return p.cell(p.addr)
}

// CursorMode returns whether the underline and blinking cursors are on.
func (p *Panel) CursorMode() (underline, blink bool) {
	return p.cursor, p.blink
}

// DisplayOn reports the display on/off bit.
func (p *Panel) DisplayOn() bool {
	return p.on
}

// Backlight reports the state of the backlight pin.
func (p *Panel) Backlight() bool {
	return p.port&pinBL != 0
}

// FourBit reports whether the controller is in 4-bit interface mode.
func (p *Panel) FourBit() bool {
	return p.fourBit
}

// Shift returns the display shift in cells, to the right.
func (p *Panel) Shift() int {
	return p.shift
}

// Writes returns every successful write, in order.
func (p *Panel) Writes() [][]byte {
	return p.writes
}

// DataWrites is the number of characters written to DDRAM.
func (p *Panel) DataWrites() int {
	return p.dataWrites
}

// Probes is the number of Probe calls.
func (p *Panel) Probes() int {
	return p.probes
}

// Reset forgets the recorded writes and restarts the FailAfter count. The
// controller state is kept.
func (p *Panel) Reset() {
	p.writes = nil
	p.attempt = 0
	p.dataWrites = 0
}
