// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// This package provides a driver for the TI/NXP PCF857X I2C I/O Expander when
// it is used as a port streamer, which is how LCD backpacks sold as LCD1602
// and LCD2004 drive an HD44780. These devices provide 8 pins (PCF8574) or 16
// pins (PCF8575) of "quasi-bidirectional" input/output.
//
// The PCF8575 is a 16-pin device that is functionally identical to the PCF8574.
// When communicating with the PCF8575 writes are 2 bytes wide, while they're
// one byte wide with the PCF8574.
//
// # Datasheet
//
// https://www.ti.com/lit/ds/symlink/pcf8574.pdf
//
// A good description of the I2C LCD backpack usage can be found here:
//
// https://www.handsontec.com/dataspecs/I2C_2004_LCD.pdf
//
// # Notes
//
// This chip doesn't implement normal i2c register architectures. You write 8 or
// 16 bits out, and that sets the corresponding pins. Every byte of a multi-byte
// write is latched on the pins in turn, so a single bus transaction can clock
// a whole sequence of pin states out, which is what a strobe driven peripheral
// like an HD44780 needs.
//
// The device can be driven from a periph.io i2c.Bus, or from a TinyGo
// drivers.I2C when running on a microcontroller.
package pcf857x

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"tinygo.org/x/drivers"
)

// Variant represents the actual chip model.
type Variant string

const (
	PCF8574 Variant = "PCF8574"
	PCF8575 Variant = "PCF8575"

	DefaultAddress uint16 = 0x20
)

// ErrNotFound is returned by Probe when nothing acknowledged the address.
var ErrNotFound = errors.New("pcf857x: device not found")

// Opts holds the configuration of the expander.
type Opts struct {
	// ProbeInterval is the pause between two presence checks.
	ProbeInterval time.Duration
	// Sleep waits out ProbeInterval. Defaults to time.Sleep.
	Sleep func(time.Duration)
}

// DefaultOpts is the recommended default options.
var DefaultOpts = Opts{
	ProbeInterval: 10 * time.Millisecond,
}

// txer is the part of a bus device this driver needs. *i2c.Dev implements it.
type txer interface {
	Tx(w, r []byte) error
}

// tinyGoDev binds a TinyGo bus to a device address.
type tinyGoDev struct {
	bus  drivers.I2C
	addr uint16
}

func (t *tinyGoDev) Tx(w, r []byte) error {
	return t.bus.Tx(t.addr, w, r)
}

// Dev is representation of a PCF857x device.
type Dev struct {
	width    int
	mask     uint16
	chipType Variant
	addr     uint16

	probeInterval time.Duration
	sleep         func(time.Duration)

	mu    sync.Mutex
	d     txer
	value uint16
}

// New creates a new PCF857x io expander on a periph.io bus and returns it.
// chip should be one of the Variant constants above. opts may be nil.
func New(bus i2c.Bus, address uint16, chip Variant, opts *Opts) (*Dev, error) {
	return newDev(&i2c.Dev{Bus: bus, Addr: address}, address, chip, opts)
}

// NewTinyGo creates a new PCF857x io expander on a TinyGo bus, for example
// machine.I2C0.
func NewTinyGo(bus drivers.I2C, address uint16, chip Variant, opts *Opts) (*Dev, error) {
	return newDev(&tinyGoDev{bus: bus, addr: address}, address, chip, opts)
}

func newDev(d txer, address uint16, chip Variant, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	dev := &Dev{
		d:             d,
		addr:          address,
		chipType:      chip,
		probeInterval: opts.ProbeInterval,
		sleep:         opts.Sleep,
	}
	if dev.probeInterval <= 0 {
		dev.probeInterval = DefaultOpts.ProbeInterval
	}
	if dev.sleep == nil {
		dev.sleep = time.Sleep
	}
	switch chip {
	case PCF8574:
		dev.width = 8
	case PCF8575:
		dev.width = 16
	default:
		return nil, fmt.Errorf("pcf857x: unknown variant %q", chip)
	}
	dev.mask = uint16((1 << dev.width) - 1)
	// All pins come out of power-on reset high.
	dev.value = dev.mask
	return dev, nil
}

// Probe checks that the expander answers on the bus. It reads the port, which
// leaves the output latches untouched, up to retries times with
// Opts.ProbeInterval between attempts.
func (dev *Dev) Probe(retries int) error {
	if retries < 1 {
		retries = 1
	}
	r := make([]byte, dev.width/8)
	var err error
	for attempt := range retries {
		if attempt > 0 {
			dev.sleep(dev.probeInterval)
		}
		dev.mu.Lock()
		err = dev.d.Tx(nil, r)
		dev.mu.Unlock()
		if err == nil {
			return nil
		}
	}
	return fmt.Errorf("%w: %s: %w", ErrNotFound, dev, err)
}

// Write clocks each byte of p out to pins P0-P7 in a single bus transaction.
// On a PCF8575 the upper port keeps its last value.
//
// Write implements io.Writer. A failed transaction is reported as zero bytes
// written.
func (dev *Dev) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	dev.mu.Lock()
	defer dev.mu.Unlock()
	w := p
	if dev.width > 8 {
		w = make([]byte, 0, 2*len(p))
		for _, b := range p {
			w = append(w, b, byte(dev.value>>8))
		}
	}
	if err := dev.d.Tx(w, nil); err != nil {
		return 0, fmt.Errorf("pcf857x: %w", err)
	}
	dev.value = (dev.value &^ 0xff) | uint16(p[len(p)-1])
	return len(p), nil
}

// Out sets all pins of the device to value.
func (dev *Dev) Out(value uint16) error {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	value &= dev.mask
	w := make([]byte, dev.width/8)
	for ix := range w {
		w[ix] = byte(value >> (ix * 8))
	}
	if err := dev.d.Tx(w, nil); err != nil {
		return fmt.Errorf("pcf857x: %w", err)
	}
	dev.value = value
	return nil
}

// Value returns the last pin state written to the device.
func (dev *Dev) Value() uint16 {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return dev.value
}

// Halt implements conn.Resource. The expander has nothing running, so pins
// keep their last state.
func (dev *Dev) Halt() error {
	return nil
}

func (dev *Dev) String() string {
	return fmt.Sprintf("%s_%x", dev.chipType, dev.addr)
}

var _ conn.Resource = &Dev{}
