// Copyright 2021 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package lcd1602 is a container for the drivers of 16x2 character LCD
// modules sold with a PCF8574 I²C backpack.
//
//   - hd44780 drives the display controller: initialization, cursor, scrolling
//     and text layout.
//   - pcf857x is the I²C port expander the controller is wired to.
//   - lcdsim emulates the whole module for development without hardware.
package lcd1602
