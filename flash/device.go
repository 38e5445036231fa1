package flash

import (
	"github.com/jannic/go-rp2flash/rom"
	"github.com/jannic/go-rp2flash/ssi"
)

// Flash geometry and address-space constants.
const (
	// Origin is the memory-mapped base of the XIP window (XIP_BASE).
	Origin uint32 = 0x10000000

	// MaxSize is the largest addressable QSPI flash, 16 MiB.
	MaxSize uint32 = 16 * 1024 * 1024

	// SectorSize is the erase unit: the smallest region that can be
	// reset to its erased state.
	SectorSize uint32 = 4096

	// PageSize is the program unit: the smallest granularity for
	// writing bytes into already-erased flash.
	PageSize uint32 = 256

	// ErasedByte is the value an erased location reads as.
	ErasedByte byte = 0xFF
)

// Standard block-erase parameters passed to the ROM's range-erase
// routine. A block size beyond any real block boundary makes the ROM
// fall back to plain sector erases for the whole range.
const (
	blockEraseSize uint32 = 1 << 31
	blockEraseCmd  byte   = 0
)

// Device is the platform capability the driver runs against: the
// boot-ROM flash routines, the bus controller registers, and ordinary
// memory-mapped reads through the XIP window.
//
// On target this is backed by real hardware (with the executor placed
// in RAM, since flash is unreadable for the whole bracket); off target
// the sim package implements the same surface.
type Device interface {
	rom.Provider

	// Registers exposes the bus controller for raw command sequencing.
	Registers() ssi.Registers

	// ReadXIP copies len(p) bytes from the memory-mapped flash window
	// starting at memAddr. Only legal while XIP mode is active.
	ReadXIP(memAddr uint32, p []byte)

	// FlashSize returns the attached chip's capacity in bytes.
	FlashSize() uint32
}
