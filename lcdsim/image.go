// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcdsim

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/gomono"
)

const (
	cellW    = 12
	cellH    = 20
	margin   = 8
	fontSize = 16
)

var (
	ink       = color.NRGBA{0x10, 0x18, 0x10, 0xff}
	cellShade = color.NRGBA{0x00, 0x00, 0x00, 0x18}

	monoFont = sync.OnceValues(func() (*truetype.Font, error) {
		return truetype.Parse(gomono.TTF)
	})
)

// ImageBounds is the size of the images returned by Panel.Image.
var ImageBounds = image.Rect(0, 0, 2*margin+Cols*cellW, 2*margin+Rows*cellH)

// Image draws what the panel shows: the backlight, a shaded box per cell, the
// characters and the underline cursor when it is on and visible.
func (p *Panel) Image() (image.Image, error) {
	f, err := monoFont()
	if err != nil {
		return nil, fmt.Errorf("lcdsim: %w", err)
	}
	dc := gg.NewContext(ImageBounds.Dx(), ImageBounds.Dy())
	dc.SetColor(bezel(p.Backlight()))
	dc.Clear()

	dc.SetColor(cellShade)
	for r := range Rows {
		for c := range Cols {
			x, y := cellOrigin(r, c)
			dc.DrawRectangle(x, y, cellW-2, cellH-2)
		}
	}
	dc.Fill()

	dc.SetFontFace(truetype.NewFace(f, &truetype.Options{Size: fontSize}))
	dc.SetColor(ink)
	for r, line := range p.Lines() {
		for c := range len(line) {
			if line[c] == ' ' {
				continue
			}
			x, y := cellOrigin(r, c)
			dc.DrawString(string(rune(line[c])), x, y+cellH-6)
		}
	}

	if r, c, ok := p.visibleCursor(); ok && p.cursor {
		x, y := cellOrigin(r, c)
		dc.DrawRectangle(x, y+cellH-4, cellW-2, 2)
		dc.Fill()
	}
	return dc.Image(), nil
}

func cellOrigin(row, col int) (float64, float64) {
	return float64(margin + col*cellW), float64(margin + row*cellH)
}

// visibleCursor returns the window cell under the address counter.
func (p *Panel) visibleCursor() (row, col int, ok bool) {
	if !p.on {
		return 0, 0, false
	}
	row, col = p.cell(p.addr)
	col = (col + p.shift) % lineLength
	return row, col, col < Cols
}
