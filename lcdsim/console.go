// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcdsim

import (
	"bytes"
	"image/color"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3"
)

var (
	backlightOn  = color.NRGBA{0x9a, 0xcd, 0x32, 0xff}
	backlightOff = color.NRGBA{0x2f, 0x33, 0x2f, 0xff}
)

func bezel(on bool) color.NRGBA {
	if on {
		return backlightOn
	}
	return backlightOff
}

// Console draws a Panel on a terminal using ANSI color codes. The bezel shows
// the backlight color and the two rows are redrawn in place on every Draw.
type Console struct {
	w       io.Writer
	palette ansi256.Palette
	drawn   bool

	buf bytes.Buffer
}

// NewConsole returns a Console writing to w, or to stdout when w is nil.
// palette may be nil to use ansi256.Default.
func NewConsole(w io.Writer, palette *ansi256.Palette) *Console {
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	if palette == nil {
		palette = ansi256.Default
	}
	return &Console{w: w, palette: *palette}
}

func (c *Console) String() string {
	return "lcdsim.Console"
}

// Halt implements conn.Resource.
//
// It resets the terminal attributes so the console is not left colored.
func (c *Console) Halt() error {
	_, err := c.w.Write([]byte("\033[0m\n"))
	return err
}

// Draw renders what p shows.
func (c *Console) Draw(p *Panel) error {
	// This code is designed to minimize the amount of memory allocated per call.
	c.buf.Reset()
	if c.drawn {
		// Back to the top bezel.
		_, _ = c.buf.WriteString("\033[4A")
	}
	block := c.palette.Block(bezel(p.Backlight()))
	c.bezelLine(block)
	for _, line := range p.Lines() {
		_, _ = c.buf.WriteString("\r")
		_, _ = c.buf.WriteString(block)
		_, _ = c.buf.WriteString("\033[0m")
		for ix := range len(line) {
			ch := line[ix]
			if ch < 0x20 || ch > 0x7e {
				ch = '?'
			}
			_ = c.buf.WriteByte(ch)
		}
		_, _ = c.buf.WriteString(block)
		_, _ = c.buf.WriteString("\033[0m\n")
	}
	c.bezelLine(block)
	c.drawn = true
	_, err := c.buf.WriteTo(c.w)
	return err
}

func (c *Console) bezelLine(block string) {
	_, _ = c.buf.WriteString("\r")
	for range Cols + 2 {
		_, _ = c.buf.WriteString(block)
	}
	_, _ = c.buf.WriteString("\033[0m\n")
}

var _ conn.Resource = &Console{}
