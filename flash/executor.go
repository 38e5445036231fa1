package flash

import "github.com/jannic/go-rp2flash/rom"

// run performs the critical-section sequence for an erase and/or
// program operation:
//
//	connect_internal_flash()
//	flash_exit_xip()
//	flash_range_erase(addr, length, 1<<31, 0)   // if resolved
//	flash_range_program(addr, data)             // if resolved and data present
//	flash_flush_cache()
//	enter XIP (ROM routine or loader snapshot)
//
// The erase and program steps are independently skippable, giving
// erase-only, program-only, or combined operation. Flash contents are
// unreadable between exit and re-entry; on hardware this routine and
// everything it calls must execute from RAM, which is why the whole
// sequence lives behind the Device capability.
//
// No error is reported. Preconditions (alignment, bounds, exclusive
// bus ownership) are the caller's; violating them here is undefined
// behavior on real hardware.
func run(tbl rom.Table, addr, length uint32, data []byte) {
	tbl.ConnectInternalFlash()
	tbl.ExitXIP()

	if tbl.RangeErase != nil {
		tbl.RangeErase(addr, length, blockEraseSize, blockEraseCmd)
	}
	if tbl.RangeProgram != nil && data != nil {
		tbl.RangeProgram(addr, data)
	}

	tbl.FlushCache()
	tbl.EnterXIP()
}
