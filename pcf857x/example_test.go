// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pcf857x_test

import (
	"fmt"
	"log"

	"github.com/GermanBionicSystems/lcd1602/pcf857x"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

func Example() {
	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	// Open default I²C bus.
	bus, err := i2creg.Open("")
	if err != nil {
		log.Fatalf("failed to open I²C: %v", err)
	}
	defer bus.Close()

	// Create a new I2C IO extender
	extender, err := pcf857x.New(bus, pcf857x.DefaultAddress, pcf857x.PCF8574, nil)
	if err != nil {
		log.Fatalln(err)
	}
	if err = extender.Probe(3); err != nil {
		log.Fatalln(err)
	}

	// Walk a single low bit across P0-P7 in one transaction.
	pattern := make([]byte, 8)
	for ix := range pattern {
		pattern[ix] = ^byte(1 << ix)
	}
	if _, err = extender.Write(pattern); err != nil {
		log.Fatalln(err)
	}
	fmt.Printf("%s = 0x%02x\n", extender, extender.Value())
}
