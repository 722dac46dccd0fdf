// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package hd44780 controls a 16x2 character LCD built on the Hitachi HD44780
// chipset, wired in 4-bit mode behind an 8-bit I²C port expander such as the
// PCF8574 found on most LCD1602 backpacks.
//
// The expander pins carry D7-D4 on bits 7-4 and the backlight, enable,
// read/write and register select lines on bits 3-0. Every byte sent to the
// controller is split in two nibbles, each latched by an enable pulse, and the
// control lines are repeated in every expander write.
//
// The bus itself is reached through a Transport. The pcf857x package provides
// one for periph.io and TinyGo buses.
//
// # Datasheet
//
// https://www.sparkfun.com/datasheets/LCD/HD44780.pdf
package hd44780

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
)

const (
	packageName = "hd44780"

	// DefaultAddress is the usual address of a PCF8574 LCD backpack with
	// A0-A2 left open.
	DefaultAddress uint16 = 0x27

	// delayCommand follows clear and home, which take 1.52ms to execute.
	delayCommand = 2 * time.Millisecond

	// delayScroll precedes every step of a scroll.
	delayScroll = time.Millisecond
)

var (
	// ErrDeviceNotFound is returned by New when the expander does not answer.
	ErrDeviceNotFound = errors.New("hd44780: device not found")
	// ErrTransport wraps any failed bus write.
	ErrTransport = errors.New("hd44780: transport failure")
	// ErrInitialization is returned by New when the power-on sequence could
	// not be sent. The underlying ErrTransport is wrapped as well.
	ErrInitialization = errors.New("hd44780: initialization failed")
	// ErrInvalidPosition is returned for cells outside of the 2x16 panel.
	ErrInvalidPosition = errors.New("hd44780: invalid position")

	ErrNotImplemented = fmt.Errorf("%s: %w", packageName, display.ErrNotImplemented)
)

// Transport is the bus side of the display, typically a *pcf857x.Dev.
type Transport interface {
	// Write clocks each byte of p out on the expander pins, in order, as one
	// bus transaction.
	io.Writer
	// Probe returns nil if the expander answers within retries attempts.
	Probe(retries int) error
	fmt.Stringer
}

// Opts holds the configuration of the display.
type Opts struct {
	// ShowCursor shows the underline cursor after initialization.
	ShowCursor bool
	// BlinkCursor shows the blinking block cursor after initialization.
	BlinkCursor bool
	// NoBacklight keeps the backlight off.
	NoBacklight bool
	// ProbeRetries is how many times the expander is probed before giving up.
	ProbeRetries int
	// Sleep is used for every delay the controller needs. Defaults to
	// time.Sleep.
	Sleep func(time.Duration)
	// Logger receives debug records of the initialization sequence. nil
	// disables logging.
	Logger *slog.Logger
}

// DefaultOpts is the recommended default options.
var DefaultOpts = Opts{
	ProbeRetries: 5,
}

// Dev is a 16x2 HD44780 display. It is created initialized by New and is not
// safe for concurrent use.
//
// Implements periph.io/x/conn/v3/display.TextDisplay and
// display.DisplayBacklight.
type Dev struct {
	t     Transport
	sleep func(time.Duration)
	log   *slog.Logger

	on        bool
	cursor    bool
	blink     bool
	backlight bool
}

// New probes the expander behind t and runs the HD44780 power-on sequence.
// It returns a ready display, or an error wrapping ErrDeviceNotFound or
// ErrInitialization; no display is returned on error.
func New(t Transport, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	d := &Dev{
		t:         t,
		sleep:     opts.Sleep,
		log:       opts.Logger,
		on:        true,
		cursor:    opts.ShowCursor,
		blink:     opts.BlinkCursor,
		backlight: !opts.NoBacklight,
	}
	if d.sleep == nil {
		d.sleep = time.Sleep
	}
	if d.log == nil {
		d.log = slog.New(slog.DiscardHandler)
	}
	retries := opts.ProbeRetries
	if retries <= 0 {
		retries = DefaultOpts.ProbeRetries
	}
	if err := t.Probe(retries); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDeviceNotFound, t, err)
	}
	if err := d.init(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInitialization, err)
	}
	return d, nil
}

// init is the 4-bit startup sequence of the HD44780U datasheet. The
// controller may be in 8-bit mode, or halfway through a 4-bit transfer, so
// three single 0x3 nibbles force 8-bit mode before 0x2 switches to 4-bit.
func (d *Dev) init() error {
	d.sleep(45 * time.Millisecond)
	for _, step := range []struct {
		nibble byte
		pause  time.Duration
	}{
		{0x03, 5 * time.Millisecond},
		{0x03, time.Millisecond},
		{0x03, time.Millisecond},
		{0x02, time.Millisecond},
	} {
		d.log.Debug("hd44780: init nibble", "nibble", step.nibble)
		if err := d.sendNibble(step.nibble); err != nil {
			return err
		}
		d.sleep(step.pause)
	}
	cmds := []Command{
		FunctionSet(false, true, false),
		onOffCommand(d.on, d.cursor, d.blink),
		ClearDisplay(),
		EntryMode(true, false),
	}
	for ix, c := range cmds {
		if ix > 0 {
			d.sleep(time.Millisecond)
		}
		d.log.Debug("hd44780: init command", "command", fmt.Sprintf("0x%02x", byte(c)))
		if err := d.sendCommand(c); err != nil {
			return err
		}
	}
	return nil
}

// onOffCommand encodes a display state. The cursor is never shown while the
// display is off.
func onOffCommand(on, cursor, blink bool) Command {
	return OnOffControl(on, on && cursor, on && blink)
}

// setOnOff sends a display state and keeps it once the controller has it. A
// failed write leaves the previous state in place.
func (d *Dev) setOnOff(on, cursor, blink bool) error {
	if err := d.sendCommand(onOffCommand(on, cursor, blink)); err != nil {
		return err
	}
	d.on, d.cursor, d.blink = on, cursor, blink
	return nil
}

// Clears the screen and moves the cursor to the first position.
func (d *Dev) Clear() error {
	err := d.sendCommand(ClearDisplay())
	d.sleep(delayCommand)
	return err
}

// Move the cursor home and undo any scrolling.
func (d *Dev) Home() error {
	err := d.sendCommand(ReturnHome())
	d.sleep(delayCommand)
	return err
}

// TurnOn turns the display on with the cursor it had before TurnOff.
func (d *Dev) TurnOn() error {
	return d.setOnOff(true, d.cursor, d.blink)
}

// TurnOff blanks the display. DDRAM and the cursor settings are kept for the
// next TurnOn.
func (d *Dev) TurnOff() error {
	return d.setOnOff(false, d.cursor, d.blink)
}

// SetCursor remembers the cursor settings and applies them, turning the
// display on.
func (d *Dev) SetCursor(visible, blinking bool) error {
	return d.setOnOff(true, visible, blinking)
}

// ScrollLeft moves the view over DDRAM steps positions to the left, so the
// content moves right. It stops at the first failing step.
func (d *Dev) ScrollLeft(steps int) error {
	return d.scroll(steps, true)
}

// ScrollRight moves the view over DDRAM steps positions to the right, so the
// content moves left. It stops at the first failing step.
func (d *Dev) ScrollRight(steps int) error {
	return d.scroll(steps, false)
}

func (d *Dev) scroll(steps int, right bool) error {
	for ix := range steps {
		d.sleep(delayScroll)
		if err := d.sendCommand(Shift(true, right)); err != nil {
			return fmt.Errorf("%s: scroll step %d of %d: %w", packageName, ix+1, steps, err)
		}
	}
	return nil
}

// AutoScroll makes the display shift with every character written, so the
// cursor appears to stay put.
func (d *Dev) AutoScroll(enabled bool) error {
	return d.sendCommand(EntryMode(true, enabled))
}

// Return the number of columns the display supports
func (d *Dev) Cols() int {
	return colCount
}

// Set the cursor mode. You can pass multiple arguments.
// Cursor(CursorOff, CursorUnderline)
func (d *Dev) Cursor(modes ...display.CursorMode) error {
	cursor, blink := false, false
	for _, mode := range modes {
		switch mode {
		case display.CursorOff:
			cursor, blink = false, false
		case display.CursorUnderline:
			cursor = true
		case display.CursorBlock, display.CursorBlink:
			blink = true
		default:
			return fmt.Errorf("%s: unexpected cursor: %d", packageName, mode)
		}
	}
	return d.setOnOff(d.on, cursor, blink)
}

// Turn the display on / off
func (d *Dev) Display(on bool) error {
	if on {
		return d.TurnOn()
	}
	return d.TurnOff()
}

// Return the min column position.
func (d *Dev) MinCol() int {
	return 1
}

// Return the min row position.
func (d *Dev) MinRow() int {
	return 1
}

// Move the cursor forward or backward.
func (d *Dev) Move(dir display.CursorDirection) error {
	switch dir {
	case display.Backward:
		return d.sendCommand(Shift(false, false))
	case display.Forward:
		return d.sendCommand(Shift(false, true))
	default:
		return ErrNotImplemented
	}
}

// Move the cursor to arbitrary position. row and col are one based.
func (d *Dev) MoveTo(row, col int) error {
	return d.SetPosition(row-d.MinRow(), col-d.MinCol())
}

// Return the number of rows the display supports.
func (d *Dev) Rows() int {
	return rowCount
}

// Return info about the display.
func (d *Dev) String() string {
	return fmt.Sprintf("HD44780::%s - Rows: %d, Cols: %d", d.t, rowCount, colCount)
}

// Write a set of bytes to the display at the cursor.
func (d *Dev) Write(p []byte) (n int, err error) {
	for _, c := range p {
		if err = d.sendData(c); err != nil {
			return
		}
		n++
	}
	return
}

// Write a string output to the display.
func (d *Dev) WriteString(text string) (int, error) {
	return d.Write([]byte(text))
}

// Halt clears the display, turns the backlight off, and turns the display off.
// The transport is left open.
func (d *Dev) Halt() error {
	err := errors.Join(d.Clear(), d.Backlight(0), d.TurnOff())
	if err != nil {
		d.log.Warn("hd44780: halt", "err", err)
	}
	return err
}

var _ display.TextDisplay = &Dev{}
var _ display.DisplayBacklight = &Dev{}
var _ conn.Resource = &Dev{}
