package flash

import (
	"fmt"

	"github.com/jannic/go-rp2flash/qspi"
	"github.com/jannic/go-rp2flash/rom"
)

// Driver performs erase, program and read-class operations against the
// flash chip behind the XIP window.
//
// The driver holds no state beyond its device and configuration; the
// routine table is re-resolved for every operation. It is not safe for
// concurrent use: exclusive ownership of the flash bus is a caller
// obligation for the full duration of each call (see package docs).
type Driver struct {
	dev    Device
	config Config
}

// New creates a Driver for the given device.
//
// Example:
//
//	dev := sim.New(chip.W25Q16JV())
//	drv := flash.New(dev, flash.WithLoaderRestore(true))
func New(dev Device, opts ...Option) *Driver {
	if dev == nil {
		panic("flash: device cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	d := &Driver{
		dev:    dev,
		config: cfg,
	}
	d.logInfo("flash driver initialized",
		"size", dev.FlashSize(), "loader_restore", cfg.LoaderRestore)
	return d
}

// Size returns the attached chip's capacity in bytes.
func (d *Driver) Size() uint32 {
	return d.dev.FlashSize()
}

// RangeErase erases the flash range [addr, addr+length).
//
// addr and length must be multiples of SectorSize and lie within the
// chip; violations panic before the device is touched.
func (d *Driver) RangeErase(addr, length uint32) {
	assertAligned("erase address", addr, SectorSize)
	assertAligned("erase length", length, SectorSize)
	d.assertRange(addr, length)

	d.logDebug("range erase", "addr", fmt.Sprintf("0x%06X", addr), "len", length)
	d.mutate(addr, length, nil, true, false)
}

// RangeProgram programs data into the already-erased flash range
// starting at addr.
//
// addr and len(data) must be multiples of PageSize and lie within the
// chip; violations panic before the device is touched. Programming can
// only clear bits; the range must have been erased first.
func (d *Driver) RangeProgram(addr uint32, data []byte) {
	assertAligned("program address", addr, PageSize)
	assertAligned("program length", uint32(len(data)), PageSize)
	d.assertRange(addr, uint32(len(data)))

	d.logDebug("range program", "addr", fmt.Sprintf("0x%06X", addr), "len", len(data))
	d.mutate(addr, uint32(len(data)), data, false, true)
}

// RangeEraseAndProgram erases the flash range starting at addr and
// rewrites it with data in a single bracket.
//
// addr and len(data) must be multiples of SectorSize and lie within
// the chip; violations panic before the device is touched.
func (d *Driver) RangeEraseAndProgram(addr uint32, data []byte) {
	assertAligned("erase address", addr, SectorSize)
	assertAligned("erase length", uint32(len(data)), SectorSize)
	d.assertRange(addr, uint32(len(data)))

	d.logDebug("range erase and program", "addr", fmt.Sprintf("0x%06X", addr), "len", len(data))
	d.mutate(addr, uint32(len(data)), data, true, true)
}

// Read copies len(p) bytes from the memory-mapped window starting at
// memAddr. Plain reads carry no alignment requirement, but memAddr is
// a bus address (Origin-relative), not a flash offset.
func (d *Driver) Read(memAddr uint32, p []byte) {
	d.assertWindow(memAddr, uint32(len(p)))
	d.dev.ReadXIP(memAddr, p)
}

// JEDECID returns the chip's three-byte manufacturer-and-model ID as a
// 32-bit value with the leading byte zero, e.g. 0x00EF7015 for a
// Winbond W25Q16JV.
func (d *Driver) JEDECID() uint32 {
	data := d.ReadCommand(qspi.ReadJEDECID())

	id, err := qspi.ParseJEDECID(data)
	if err != nil {
		// response length is fixed by the command geometry
		panic(err)
	}
	return id
}

// UniqueID returns the chip's 8-byte factory unique ID.
//
// Chips without the 0x4B command return garbage, not an error; confirm
// chip identity via JEDECID before relying on the result.
func (d *Driver) UniqueID() qspi.UniqueID {
	data := d.ReadCommand(qspi.ReadUniqueID())

	id, err := qspi.ParseUniqueID(data)
	if err != nil {
		panic(err)
	}
	return id
}

// ReadCommand issues one single-response read-class command and
// returns its response bytes, leaving the chip back in XIP mode.
func (d *Driver) ReadCommand(cmd qspi.Command) []byte {
	out := make([]byte, cmd.RespLen)
	tbl := d.table(false, false)

	d.config.CriticalSection(func() {
		readCommand(d.dev.Registers(), tbl, cmd, out)
	})

	d.logDebug("read command", "opcode", fmt.Sprintf("0x%02X", cmd.Opcode), "resp_len", cmd.RespLen)
	return out
}

// mutate runs the critical-section bracket for an erase and/or program
// operation. Preconditions are already checked.
func (d *Driver) mutate(addr, length uint32, data []byte, erase, program bool) {
	tbl := d.table(erase, program)

	d.config.CriticalSection(func() {
		run(tbl, addr, length, data)
	})
}

// table resolves a fresh routine table for one operation, capturing a
// new loader snapshot per call when loader restore is selected.
func (d *Driver) table(erase, program bool) rom.Table {
	sel := rom.Selection{Erase: erase, Program: program}
	if d.config.LoaderRestore {
		sel.Restorer = rom.SnapshotRestorer(rom.CaptureLoader(d.dev))
	}
	return rom.Resolve(d.dev, sel)
}
