package flash

import "fmt"

// Geometry violations are programming errors: there is no generically
// safe recovery from a half-erased sector, so they fail fast before
// any device access rather than propagate as values.

func assertAligned(what string, v, unit uint32) {
	if v%unit != 0 {
		panic(fmt.Sprintf("flash: %s 0x%X is not a multiple of the %d-byte unit", what, v, unit))
	}
}

// assertRange checks a flash-offset range against the chip capacity.
func (d *Driver) assertRange(addr, length uint32) {
	size := d.dev.FlashSize()
	if addr > size || length > size-addr {
		panic(fmt.Sprintf("flash: range 0x%X+0x%X exceeds chip size 0x%X", addr, length, size))
	}
}

// assertWindow checks a memory-mapped address range against the XIP
// window of the attached chip.
func (d *Driver) assertWindow(memAddr, length uint32) {
	size := d.dev.FlashSize()
	if memAddr < Origin {
		panic(fmt.Sprintf("flash: address 0x%X is below the XIP window base 0x%X", memAddr, Origin))
	}
	off := memAddr - Origin
	if off > size || length > size-off {
		panic(fmt.Sprintf("flash: window range 0x%X+0x%X exceeds chip size 0x%X", memAddr, length, size))
	}
}
