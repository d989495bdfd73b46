//go:build tinygo && arduino

// Command firmware runs the keyer on an Arduino Uno class board:
//
//	tinygo flash -target=arduino ./elkey/firmware
//
// Paddles close D2 (dit) and D3 (dah) to ground, the key line is D13, the
// sidetone is D8 and the speed potentiometer is on ADC0.
//
// Paddle pin changes raise a flag in the interrupt. The edge pump hands them
// to the paddle sampler from goroutine context, either on its own period or
// right after the core wakes from sleep.
package main

import (
	"device/avr"
	"machine"
	"time"

	"github.com/sarchlab/elkey/config"
	"github.com/sarchlab/elkey/device"
	"github.com/sarchlab/elkey/hw"
	"github.com/sarchlab/elkey/sim"
)

func main() {
	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		panic(err)
	}

	pump := hw.NewEdgePump()

	dit := hw.MachineInput{Pin: machine.D2}
	dah := hw.MachineInput{Pin: machine.D3}
	dit.Configure()
	dah.Configure()

	key := hw.MachineOutput{Pin: machine.D13}
	tone := hw.MachineOutput{Pin: machine.D8}
	key.Configure()
	tone.Configure()

	pot := &hw.MachineAnalog{ADC: machine.ADC{Pin: machine.ADC0}}

	// Power-down mode, left by the pin-change interrupts.
	avr.SMCR.Set(avr.SMCR_SM1 | avr.SMCR_SE)

	engine := sim.NewRealTimeEngine(cfg.Freq())
	k := device.MakeBuilder().
		WithEngine(engine).
		WithConfig(cfg).
		WithPins(device.Pins{
			Dit:      pump.Input(dit),
			Dah:      pump.Input(dah),
			Key:      key,
			Sidetone: tone,
			Speed:    pot,
			Sleeper:  hw.MachineSleeper{Pump: pump},
		}).
		Build("Keyer")

	go pump.Run(time.Millisecond)

	k.Start()

	if err := engine.Run(); err != nil {
		panic(err)
	}
}
