// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

// Command is an HD44780 instruction byte. It is built by OR-ing an
// instruction family with its option flags.
type Command byte

// Instruction families.
const (
	cmdClear       Command = 0x01
	cmdHome        Command = 0x02
	cmdEntryMode   Command = 0x04
	cmdOnOff       Command = 0x08
	cmdShift       Command = 0x10
	cmdFunctionSet Command = 0x20
	cmdSetDDRAM    Command = 0x80
)

// Option flags, grouped by family.
const (
	entryIncrement Command = 0x02
	entryShift     Command = 0x01

	onOffDisplay Command = 0x04
	onOffCursor  Command = 0x02
	onOffBlink   Command = 0x01

	shiftDisplay Command = 0x08
	shiftRight   Command = 0x04

	function8Bit   Command = 0x10
	function2Lines Command = 0x08
	function5x10   Command = 0x04
)

// ClearDisplay blanks DDRAM and returns the cursor to address 0.
func ClearDisplay() Command {
	return cmdClear
}

// ReturnHome moves the cursor to address 0 and undoes any display shift.
func ReturnHome() Command {
	return cmdHome
}

// EntryMode sets whether the address counter increments or decrements after
// each data write, and whether the display shifts along with it.
func EntryMode(increment, shift bool) Command {
	c := cmdEntryMode
	if increment {
		c |= entryIncrement
	}
	if shift {
		c |= entryShift
	}
	return c
}

// OnOffControl turns the display, the underline cursor and the blinking block
// on or off.
func OnOffControl(display, cursor, blink bool) Command {
	c := cmdOnOff
	if display {
		c |= onOffDisplay
	}
	if cursor {
		c |= onOffCursor
	}
	if blink {
		c |= onOffBlink
	}
	return c
}

// Shift moves either the whole display or only the cursor by one position.
// right selects the direction of the move.
func Shift(display, right bool) Command {
	c := cmdShift
	if display {
		c |= shiftDisplay
	}
	if right {
		c |= shiftRight
	}
	return c
}

// FunctionSet selects the interface width, the number of display lines and
// the font.
func FunctionSet(eightBit, twoLines, font5x10 bool) Command {
	c := cmdFunctionSet
	if eightBit {
		c |= function8Bit
	}
	if twoLines {
		c |= function2Lines
	}
	if font5x10 {
		c |= function5x10
	}
	return c
}

// SetDDRAMAddress moves the cursor to p. p is not validated; the row and
// column are masked into the 7 bit address.
func SetDDRAMAddress(p Position) Command {
	return cmdSetDDRAM | Command(p.address())
}
