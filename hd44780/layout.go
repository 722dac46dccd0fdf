// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import (
	"fmt"
	"time"
)

const (
	rowCount = 2
	colCount = 16

	// maxScreenText is the number of bytes of text Print looks at.
	maxScreenText = rowCount * colCount

	// delayCharacter precedes every character written by Print.
	delayCharacter = time.Millisecond
)

// Position is a character cell on the panel. Row and Col are zero based.
type Position struct {
	Row int
	Col int
}

// Valid reports whether p is one of the 32 cells of the panel.
func (p Position) Valid() bool {
	return p.Row >= 0 && p.Row < rowCount && p.Col >= 0 && p.Col < colCount
}

// address returns the DDRAM address of p. Row 1 starts at 0x40.
func (p Position) address() byte {
	return byte(p.Row&0x01)<<6 | byte(p.Col&0x0f)
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// screenText is text laid out on the two rows of the panel.
type screenText struct {
	rows [rowCount][]byte
	// wrapped is set when the cursor has to jump to the start of row 1,
	// either on a newline or after the 16th byte.
	wrapped bool
}

// layoutScreen splits text over both rows. Only the first 32 bytes are
// considered. The first newline on row 0 moves to row 1 and is not printed;
// without one, the 17th byte starts row 1. Later newlines are dropped. Row 1
// keeps every remaining byte, so it may run past column 15 into the part of
// DDRAM that is only visible after scrolling.
func layoutScreen(text string) screenText {
	var s screenText
	row := 0
	for ix := 0; ix < len(text) && ix < maxScreenText; ix++ {
		c := text[ix]
		if c == '\n' {
			if row == 0 {
				row = 1
				s.wrapped = true
			}
			continue
		}
		if row == 0 && ix == colCount {
			row = 1
			s.wrapped = true
		}
		s.rows[row] = append(s.rows[row], c)
	}
	return s
}

// renderRow returns the 16 cells of a row showing text, truncated or padded
// with spaces.
func renderRow(text string) [colCount]byte {
	var r [colCount]byte
	n := copy(r[:], text)
	for ix := n; ix < colCount; ix++ {
		r[ix] = ' '
	}
	return r
}

// SetPosition moves the cursor to the zero based row and col. Out of range
// values return ErrInvalidPosition without touching the bus.
func (d *Dev) SetPosition(row, col int) error {
	p := Position{Row: row, Col: col}
	if !p.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidPosition, p)
	}
	return d.sendCommand(SetDDRAMAddress(p))
}

// PrintChar writes c at the cursor. The controller advances the cursor
// according to the entry mode.
func (d *Dev) PrintChar(c byte) error {
	return d.sendData(c)
}

// Print clears the display and writes text from the top left cell. A newline
// or the 17th byte continues on the second row. At most 32 bytes of text are
// looked at. After an early newline the second row gets more than 16 of them;
// the extra bytes land in DDRAM past the window and show up when scrolling.
// Text is sent byte for byte; the controller's character ROM decides the
// glyphs.
func (d *Dev) Print(text string) error {
	s := layoutScreen(text)
	if err := d.Clear(); err != nil {
		return err
	}
	if err := d.SetPosition(0, 0); err != nil {
		return err
	}
	if err := d.printCells(s.rows[0]); err != nil {
		return err
	}
	if !s.wrapped {
		return nil
	}
	if err := d.SetPosition(1, 0); err != nil {
		return err
	}
	return d.printCells(s.rows[1])
}

func (d *Dev) printCells(cells []byte) error {
	for _, c := range cells {
		d.sleep(delayCharacter)
		if err := d.sendData(c); err != nil {
			return err
		}
	}
	return nil
}

// PrintRow overwrites a whole row with text, truncated to 16 bytes and
// padded with spaces, so nothing of a previous longer text remains. The other
// row is left alone.
func (d *Dev) PrintRow(row int, text string) error {
	if row < 0 || row >= rowCount {
		return fmt.Errorf("%w: row %d", ErrInvalidPosition, row)
	}
	if err := d.SetPosition(row, 0); err != nil {
		return err
	}
	for _, c := range renderRow(text) {
		if err := d.sendData(c); err != nil {
			return err
		}
	}
	return nil
}
