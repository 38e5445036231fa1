package sim

import (
	"fmt"
	"time"

	"github.com/jannic/go-rp2flash/rom"
)

// Boot-ROM flash routines. The sequencing checks mirror the hardware
// contract: pads connected before any command, XIP mapping off for the
// whole mutation window, XIP restored only through the ROM routine or
// a genuine loader image.

// ConnectInternalFlash connects the QSPI pads to the internal flash.
func (d *Device) ConnectInternalFlash() {
	d.connected = true
	d.tracef("connect_internal_flash")
}

// FlashExitXIP hands the bus from the XIP engine to manual control.
func (d *Device) FlashExitXIP() {
	d.requireConnected("flash_exit_xip")
	d.xip = false
	d.tracef("flash_exit_xip")
}

// FlashRangeErase erases [addr, addr+count) to 0xFF.
func (d *Device) FlashRangeErase(addr, count, blockSize uint32, blockCmd byte) {
	d.requireMutable("flash_range_erase")

	unit := d.profile.EraseUnit
	if addr%unit != 0 || count%unit != 0 {
		panic(fmt.Sprintf("sim: unaligned erase 0x%X+0x%X reached the ROM; device state is now undefined", addr, count))
	}
	if uint64(addr)+uint64(count) > uint64(len(d.mem)) {
		panic(fmt.Sprintf("sim: erase 0x%X+0x%X beyond the chip", addr, count))
	}

	for i := addr; i < addr+count; i++ {
		d.mem[i] = 0xFF
	}
	d.elapsed += time.Duration(count/unit) * d.profile.SectorEraseTime()
	d.tracef("flash_range_erase 0x%06X+0x%X block=0x%X cmd=0x%02X", addr, count, blockSize, blockCmd)
}

// FlashRangeProgram programs data at addr. Programming is a NOR
// operation: it can only clear bits, never set them.
func (d *Device) FlashRangeProgram(addr uint32, data []byte) {
	d.requireMutable("flash_range_program")

	unit := d.profile.ProgramUnit
	if addr%unit != 0 || uint32(len(data))%unit != 0 {
		panic(fmt.Sprintf("sim: unaligned program 0x%X+0x%X reached the ROM; device state is now undefined", addr, len(data)))
	}
	if uint64(addr)+uint64(len(data)) > uint64(len(d.mem)) {
		panic(fmt.Sprintf("sim: program 0x%X+0x%X beyond the chip", addr, len(data)))
	}

	if !d.silentWriteFailure {
		for i, b := range data {
			d.mem[addr+uint32(i)] &= b
		}
	}
	d.elapsed += time.Duration(uint32(len(data))/unit) * d.profile.PageProgramTime()
	d.tracef("flash_range_program 0x%06X+0x%X", addr, len(data))
}

// FlashFlushCache flushes the XIP cache.
func (d *Device) FlashFlushCache() {
	d.requireConnected("flash_flush_cache")
	d.tracef("flash_flush_cache")
}

// FlashEnterCmdXIP restores the memory-mapped read mode through the
// ROM's default restorer.
func (d *Device) FlashEnterCmdXIP() {
	d.requireConnected("flash_enter_cmd_xip")
	d.xip = true
	d.tracef("flash_enter_cmd_xip")
}

// ReadBootLoader copies the second-stage loader from the start of the
// XIP window.
func (d *Device) ReadBootLoader() [rom.LoaderSize]byte {
	if !d.xip {
		panic("sim: boot loader copy requires an active XIP mapping")
	}
	var image [rom.LoaderSize]byte
	copy(image[:], d.mem[:rom.LoaderSize])
	return image
}

// EnterXIPFromLoader restores XIP by executing a captured loader
// image. An image that is not a byte-exact copy of the device's
// genuine loader would crash real hardware; the simulation panics.
func (d *Device) EnterXIPFromLoader(image *[rom.LoaderSize]byte) {
	d.requireConnected("enter_xip_from_loader")
	if *image != d.loader {
		panic("sim: loader image does not match the second-stage loader; device would crash")
	}
	d.xip = true
	d.tracef("enter_xip via loader snapshot")
}

func (d *Device) requireConnected(op string) {
	if !d.connected {
		panic(fmt.Sprintf("sim: %s issued before connect_internal_flash", op))
	}
}

func (d *Device) requireMutable(op string) {
	d.requireConnected(op)
	if d.xip {
		panic(fmt.Sprintf("sim: %s issued while the XIP mapping is active; device would brick", op))
	}
}
