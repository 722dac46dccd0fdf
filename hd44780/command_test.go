// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCommands(t *testing.T) {
	tests := []struct {
		name string
		got  Command
		want Command
	}{
		{"clear", ClearDisplay(), 0x01},
		{"home", ReturnHome(), 0x02},
		{"entry decrement", EntryMode(false, false), 0x04},
		{"entry increment", EntryMode(true, false), 0x06},
		{"entry increment shift", EntryMode(true, true), 0x07},
		{"display off", OnOffControl(false, false, false), 0x08},
		{"display on", OnOffControl(true, false, false), 0x0c},
		{"display on cursor", OnOffControl(true, true, false), 0x0e},
		{"display on cursor blink", OnOffControl(true, true, true), 0x0f},
		{"cursor left", Shift(false, false), 0x10},
		{"cursor right", Shift(false, true), 0x14},
		{"display left", Shift(true, false), 0x18},
		{"display right", Shift(true, true), 0x1c},
		{"function 4-bit 1 line", FunctionSet(false, false, false), 0x20},
		{"function 4-bit 2 lines", FunctionSet(false, true, false), 0x28},
		{"function 8-bit", FunctionSet(true, false, false), 0x30},
		{"function 5x10", FunctionSet(false, false, true), 0x24},
		{"ddram 0,0", SetDDRAMAddress(Position{0, 0}), 0x80},
		{"ddram 0,15", SetDDRAMAddress(Position{0, 15}), 0x8f},
		{"ddram 1,0", SetDDRAMAddress(Position{1, 0}), 0xc0},
		{"ddram 1,15", SetDDRAMAddress(Position{1, 15}), 0xcf},
	}
	for _, test := range tests {
		if test.got != test.want {
			t.Errorf("%s: expected 0x%02x, received 0x%02x", test.name, test.want, test.got)
		}
	}
}

func TestPositionAddress(t *testing.T) {
	for row := range 2 {
		for col := range 16 {
			p := Position{Row: row, Col: col}
			if !p.Valid() {
				t.Errorf("%s reported invalid", p)
			}
			if a := p.address(); a != byte(row<<6|col) {
				t.Errorf("%s address expected 0x%02x, received 0x%02x", p, row<<6|col, a)
			}
		}
	}
	for _, p := range []Position{{2, 0}, {0, 16}, {-1, 3}, {1, -1}} {
		if p.Valid() {
			t.Errorf("%s reported valid", p)
		}
	}
}

func TestFrames(t *testing.T) {
	if diff := cmp.Diff([]byte{0x3c, 0x38}, nibble(0x03)); diff != "" {
		t.Errorf("nibble 0x3 (-want +got):\n%s", diff)
	}
	// Only the low nibble is sent, and RW and EN given by the caller are
	// ignored.
	n := frameNibble(0xf2, pinBL|pinRW|pinEN)
	if diff := cmp.Diff([2]byte{0x2c, 0x28}, n); diff != "" {
		t.Errorf("nibble 0xf2 (-want +got):\n%s", diff)
	}
	b := frameByte(0x28, pinBL)
	if diff := cmp.Diff([4]byte{0x2c, 0x28, 0x8c, 0x88}, b); diff != "" {
		t.Errorf("command 0x28 (-want +got):\n%s", diff)
	}
	b = frameByte('i', pinBL|pinRS)
	if diff := cmp.Diff([4]byte{0x6d, 0x69, 0x9d, 0x99}, b); diff != "" {
		t.Errorf("data 'i' (-want +got):\n%s", diff)
	}
	b = frameByte(' ', 0)
	if diff := cmp.Diff([4]byte{0x24, 0x20, 0x04, 0x00}, b); diff != "" {
		t.Errorf("command 0x20 without backlight (-want +got):\n%s", diff)
	}
	for _, f := range [][4]byte{frameByte(0x00, pinBL), frameByte(0xff, pinBL|pinRS)} {
		if f[0]&pinEN == 0 || f[1]&pinEN != 0 || f[2]&pinEN == 0 || f[3]&pinEN != 0 {
			t.Errorf("enable not pulsed high then low on each nibble: % x", f)
		}
	}
}

func TestLayoutScreen(t *testing.T) {
	tests := []struct {
		text    string
		rows    [2]string
		wrapped bool
	}{
		{"Hi", [2]string{"Hi", ""}, false},
		{"Hi\nBye", [2]string{"Hi", "Bye"}, true},
		{"ABCDEFGHIJKLMNOP", [2]string{"ABCDEFGHIJKLMNOP", ""}, false},
		{"ABCDEFGHIJKLMNOPQR", [2]string{"ABCDEFGHIJKLMNOP", "QR"}, true},
		{"ABCDEFGHIJKLMNOP\nQR", [2]string{"ABCDEFGHIJKLMNOP", "QR"}, true},
		{"\n", [2]string{"", ""}, true},
		{"a\nb\nc", [2]string{"a", "bc"}, true},
		{"0123456789abcdef0123456789ABCDEFtail", [2]string{"0123456789abcdef", "0123456789ABCDEF"}, true},
		{"x\n0123456789abcdefghij", [2]string{"x", "0123456789abcdefghij"}, true},
		{"\n0123456789abcdefghijklmnopqrstuvwxyz", [2]string{"", "0123456789abcdefghijklmnopqrstu"}, true},
	}
	for _, test := range tests {
		s := layoutScreen(test.text)
		got := [2]string{string(s.rows[0]), string(s.rows[1])}
		if diff := cmp.Diff(test.rows, got); diff != "" {
			t.Errorf("layoutScreen(%q) (-want +got):\n%s", test.text, diff)
		}
		if s.wrapped != test.wrapped {
			t.Errorf("layoutScreen(%q) wrapped expected %t", test.text, test.wrapped)
		}
	}
}

func TestRenderRow(t *testing.T) {
	tests := map[string]string{
		"":                    "                ",
		"Hi":                  "Hi              ",
		"0123456789abcdef":    "0123456789abcdef",
		"0123456789abcdefXYZ": "0123456789abcdef",
	}
	for text, want := range tests {
		r := renderRow(text)
		if got := string(r[:]); got != want {
			t.Errorf("renderRow(%q) expected %q, received %q", text, want, got)
		}
	}
}
