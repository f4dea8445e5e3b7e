// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tmc51xx_test

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/GermanBionicSystems/tmc51xx"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

// Drives a stepper one full revolution forward and back through a TMC5130
// breakout on the first SPI port.
func Example() {
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	p, err := spireg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer p.Close()

	opts := tmc51xx.DefaultOpts
	opts.DriveEnable = gpioreg.ByName("GPIO12")

	dev, err := tmc51xx.NewSPI(p, tmc51xx.TMC5130, &opts)
	if err != nil {
		log.Fatal(err)
	}
	defer dev.Halt()

	if err := dev.Init(); err != nil {
		log.Fatal(err)
	}
	version, err := dev.ReadRegister("IOIN/VERSION")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("chip version %#x\n", version)

	ctx := context.Background()
	for _, revs := range []float64{1, 0} {
		if err := dev.GoTo(revs, 60); err != nil {
			log.Fatal(err)
		}
		if err := dev.WaitTargetReached(ctx, 100*time.Millisecond); err != nil {
			log.Fatal(err)
		}
	}
}
