// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package tmc51xx controls Trinamic TMC5130 and TMC5160 stepper motor
// drivers over SPI.
//
// The chips expose their configuration and motion state as a set of 32 bit
// registers addressed through 5 byte SPI datagrams. This package models the
// registers as a typed tree (register → bit flags / subfields), performs the
// range and access checking the chips themselves do not, and batches
// multi-register exchanges to make the most of the interface's pipelined
// request/response scheme.
//
// # Datasheets
//
// TMC5130: https://www.trinamic.com/fileadmin/assets/Products/ICs_Documents/TMC5130_datasheet_Rev1.15.pdf
//
// TMC5160: https://www.trinamic.com/fileadmin/assets/Products/ICs_Documents/TMC5160A_Datasheet.pdf
package tmc51xx
