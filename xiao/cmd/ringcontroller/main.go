package main

import "machine"

func main() {
	d := NewDevice(machine.Serial, machine.D10)
	in := ConfigureInputs(machine.D1, machine.A0)

	go d.PollInputs(in)
	d.Run()
}
