// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780_test

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/GermanBionicSystems/lcd1602/hd44780"
	"github.com/GermanBionicSystems/lcd1602/lcdsim"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

func ExampleNewPCF857xBackpack() {
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

	opts := hd44780.DefaultOpts
	opts.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	dev, err := hd44780.NewPCF857xBackpack(bus, hd44780.DefaultAddress, &opts)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(dev.String())

	for range 3 {
		fmt.Println("toggling backlight")
		_ = dev.Backlight(0)
		time.Sleep(500 * time.Millisecond)
		_ = dev.Backlight(255)
		time.Sleep(500 * time.Millisecond)
	}
	_ = dev.Print(fmt.Sprintf("Hello\nT=%s", time.Now().Format("15:04:05")))
	time.Sleep(5 * time.Second)
	_ = dev.PrintRow(1, "bye")
	_ = dev.ScrollLeft(4)
	time.Sleep(time.Second)
	_ = dev.Halt()
}

// The driver can be exercised without hardware against the emulated panel.
func Example() {
	panel := lcdsim.New(nil)
	dev, err := hd44780.New(panel, nil)
	if err != nil {
		log.Fatal(err)
	}
	_ = dev.Print("Hello,\nperiph!")
	for _, line := range panel.Lines() {
		fmt.Printf("[%s]\n", line)
	}
	// Output:
	// [Hello,          ]
	// [periph!         ]
}
