// Package ssi names the registers of the QSPI bus controller (the
// RP2040 SSI block) that the raw command path drives directly, and
// defines the narrow register-access interface a backend must provide.
//
// Only the registers and bits the flash subsystem touches are modeled;
// offsets and bit positions follow RP2040 datasheet section 4.10.13.
package ssi

// Reg is a register offset from the SSI block base.
type Reg uint32

// Register offsets.
const (
	// CTRLR0 is control register 0; holds the transfer mode field.
	CTRLR0 Reg = 0x00

	// CTRLR1 is control register 1; in receive-driven modes it holds
	// the number of response frames minus one. Its reset value is 0
	// and the ROM's enter-XIP routine assumes it stays there.
	CTRLR1 Reg = 0x04

	// SSIENR enables (1) or disables (0) the controller. Control
	// registers may only be written while disabled; disabling also
	// drains both FIFOs.
	SSIENR Reg = 0x08

	// SR is the read-only status register.
	SR Reg = 0x28

	// DR0 is the data register: writes push transmit frames, reads
	// pop receive frames.
	DR0 Reg = 0x60
)

// CTRLR0 bits.
const (
	// CTRLR0TMODMask covers the transfer mode field.
	CTRLR0TMODMask uint32 = 0x300

	// CTRLR0TMODEEPROMRead selects EEPROM-read mode: transmit the
	// queued command bytes, then clock in CTRLR1+1 response frames.
	CTRLR0TMODEEPROMRead uint32 = 0x300
)

// SR bits.
const (
	// SRBusy is set while a transfer is in flight.
	SRBusy uint32 = 0x01

	// SRTFE is set when the transmit FIFO is empty.
	SRTFE uint32 = 0x04

	// SRRFNE is set when the receive FIFO holds at least one frame.
	SRRFNE uint32 = 0x08
)

// Registers is the narrow access interface to the controller. The
// flash driver sequences commands through it, so a simulated backend
// can replace real hardware in tests.
type Registers interface {
	Read(r Reg) uint32
	Write(r Reg, v uint32)
}
