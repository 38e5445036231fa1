// Package rom resolves the boot-ROM routines needed to drive the QSPI
// flash while execute-in-place (XIP) addressing is suspended.
//
// The RP2040 boot ROM exposes a small routine table looked up by
// two-character codes. This package models that lookup as a Provider
// interface (the platform capability) and a Resolve step that builds a
// fixed Table of routine values per operation. Resolution is pure
// address lookup with no failure mode: a misuse only surfaces when the
// table is later invoked.
//
// The enter-XIP slot can be redirected to a captured copy of the
// second-stage boot loader (see LoaderSnapshot), which is required when
// the attached flash chip needs a restore sequence the ROM's default
// restorer does not provide.
package rom

// Code identifies a boot-ROM routine in the hardware lookup table.
// Codes are two ASCII characters packed little-endian, matching the
// ROM_TABLE_CODE encoding of the boot ROM.
type Code uint16

// Routine codes consumed by this subsystem.
const (
	CodeConnectInternalFlash Code = 'I' | 'F'<<8
	CodeFlashExitXIP         Code = 'E' | 'X'<<8
	CodeFlashRangeErase      Code = 'R' | 'E'<<8
	CodeFlashRangeProgram    Code = 'R' | 'P'<<8
	CodeFlashFlushCache      Code = 'F' | 'C'<<8
	CodeFlashEnterCmdXIP     Code = 'C' | 'X'<<8
)

// LoaderSize is the size of the second-stage boot loader image in
// bytes, including its final checksum word.
const LoaderSize = 256

// Provider is the platform capability exposing the boot-ROM flash
// routines. On hardware these are entry points resolved from the ROM
// table and must be invoked with flash quiesced; off-target backends
// (such as the sim package) implement the same surface in software.
//
// ReadBootLoader returns a byte-exact copy of the second-stage loader
// read through the XIP window, and EnterXIPFromLoader re-establishes
// XIP by executing such a copy instead of the ROM's default restorer.
type Provider interface {
	ConnectInternalFlash()
	FlashExitXIP()
	FlashRangeErase(addr, count, blockSize uint32, blockCmd byte)
	FlashRangeProgram(addr uint32, data []byte)
	FlashFlushCache()
	FlashEnterCmdXIP()

	ReadBootLoader() [LoaderSize]byte
	EnterXIPFromLoader(image *[LoaderSize]byte)
}

// Table is a resolved set of routines for one flash operation.
//
// RangeErase and RangeProgram are nil unless the corresponding
// operation was requested in the Selection; absence is a legitimate
// "operation not requested" state the caller must check before
// invoking the entry.
type Table struct {
	ConnectInternalFlash func()
	ExitXIP              func()
	RangeErase           func(addr, count, blockSize uint32, blockCmd byte)
	RangeProgram         func(addr uint32, data []byte)
	FlushCache           func()
	EnterXIP             func()
}

// Selection describes which optional routines to resolve and which
// XIP restorer to bind into the table.
type Selection struct {
	// Erase requests the range-erase entry.
	Erase bool

	// Program requests the range-program entry.
	Program bool

	// Restorer selects the enter-XIP routine. The zero value uses the
	// ROM's default restorer.
	Restorer Restorer
}

// Resolve builds a routine table for one operation. Tables are cheap
// and stateless; resolve a fresh one per call rather than caching.
func Resolve(p Provider, sel Selection) Table {
	if p == nil {
		panic("rom: provider cannot be nil")
	}

	tbl := Table{
		ConnectInternalFlash: p.ConnectInternalFlash,
		ExitXIP:              p.FlashExitXIP,
		FlushCache:           p.FlashFlushCache,
		EnterXIP:             p.FlashEnterCmdXIP,
	}

	if sel.Erase {
		tbl.RangeErase = p.FlashRangeErase
	}
	if sel.Program {
		tbl.RangeProgram = p.FlashRangeProgram
	}

	if snap := sel.Restorer.snap; snap != nil {
		tbl.EnterXIP = func() { p.EnterXIPFromLoader(&snap.image) }
	}

	return tbl
}
