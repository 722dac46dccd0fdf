// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import (
	"github.com/GermanBionicSystems/lcd1602/pcf857x"
	"periph.io/x/conn/v3/i2c"
	"tinygo.org/x/drivers"
)

// This function returns a display configured to use the pcf8574 i2c backpacks.
//
// # Product Information
//
// https://www.handsontec.com/dataspecs/I2C_2004_LCD.pdf
//
// This function creates a PCF8574 expander device and initializes the display
// behind it. To use this, get an I2C bus, and call this function with the bus
// and the 7 bit i2c address, usually DefaultAddress. opts may be nil.
func NewPCF857xBackpack(bus i2c.Bus, address uint16, opts *Opts) (*Dev, error) {
	pcf, err := pcf857x.New(bus, address, pcf857x.PCF8574, expanderOpts(opts))
	if err != nil {
		return nil, err
	}
	return New(pcf, opts)
}

// NewTinyGoBackpack is NewPCF857xBackpack for TinyGo targets, where bus is
// typically machine.I2C0 configured by the caller.
func NewTinyGoBackpack(bus drivers.I2C, address uint16, opts *Opts) (*Dev, error) {
	pcf, err := pcf857x.NewTinyGo(bus, address, pcf857x.PCF8574, expanderOpts(opts))
	if err != nil {
		return nil, err
	}
	return New(pcf, opts)
}

// expanderOpts hands the delay primitive of the display to the expander, so
// probe retries wait through it too.
func expanderOpts(opts *Opts) *pcf857x.Opts {
	o := pcf857x.DefaultOpts
	if opts != nil {
		o.Sleep = opts.Sleep
	}
	return &o
}
