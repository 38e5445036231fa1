// Package flash erases, programs and queries the QSPI flash chip that
// also backs execute-in-place (XIP) code fetch.
//
// # Overview
//
// Every mutating operation runs the same bracket: connect the internal
// flash pads, leave XIP mode, perform the erase and/or program through
// the boot-ROM routines, flush the XIP cache, and re-enter XIP mode.
// Read-class commands (JEDEC ID, unique ID) use the same bracket but
// drive the bus controller's registers directly in between.
//
// # Basic Usage
//
//	drv := flash.New(device)
//
//	drv.RangeErase(0x1F0000, 4096)
//	drv.RangeProgram(0x1F0000, data)   // len multiple of 256
//	id := drv.JEDECID()
//
// Erase addresses and lengths must be multiples of 4096; program
// addresses and lengths must be multiples of 256. Violations panic
// before the device is touched: there is no safe recovery from a
// half-erased sector, so geometry mistakes are treated as programming
// errors, not runtime errors.
//
// # Exclusive Access
//
// The driver takes no lock. For the full duration of any operation the
// caller must be the only owner of the flash bus: interrupts disabled,
// a second core parked in RAM or ROM, DMA to the flash window stopped.
// Which primitive achieves that is platform policy; supply it with
// WithCriticalSection:
//
//	drv := flash.New(device,
//	    flash.WithCriticalSection(platform.InterruptFree),
//	)
//
// # Loader Restore
//
// Some chips need an XIP restore sequence the boot ROM cannot provide.
// WithLoaderRestore(true) captures a fresh copy of the second-stage
// boot loader before each mutating call and re-enters XIP through it:
//
//	drv := flash.New(device, flash.WithLoaderRestore(true))
//
// # Hardware Independence
//
// The driver does not touch hardware itself; the Device interface is
// the platform-supplied capability bundling the boot-ROM routines, the
// bus controller registers and the XIP read window. The sim package
// provides a software implementation for tests and host-side runs.
package flash
