// Package sim implements the flash.Device capability in software: an
// in-memory flash array, the bus controller state machine, and the
// boot-ROM flash routines.
//
// The simulated device is strict about sequencing. Any use that would
// brick or fault real hardware (mutating flash while the XIP mapping
// is active, issuing bus commands before connecting the pads, loading
// through a disabled XIP window, handing back a stale loader image)
// panics immediately instead of corrupting state. Tests use that to
// prove the driver never reaches hardware with a bad request.
package sim

import (
	"fmt"
	"time"

	"github.com/golang/glog"

	"github.com/jannic/go-rp2flash/chip"
	"github.com/jannic/go-rp2flash/rom"
	"github.com/jannic/go-rp2flash/ssi"
)

// xipBase is the memory-mapped base of the XIP window.
const xipBase uint32 = 0x10000000

// Device simulates an RP2040-class flash setup: boot ROM, SSI bus
// controller and one attached serial flash chip.
//
// Device is not safe for concurrent use; neither is the hardware.
type Device struct {
	profile chip.Profile
	mem     []byte
	loader  [rom.LoaderSize]byte
	sfdp    []byte

	connected bool
	xip       bool

	ctrl controller

	silentWriteFailure bool

	trace   []string
	elapsed time.Duration
}

// Option configures the simulated device.
type Option func(*Device)

// WithSilentWriteFailure makes program operations complete without
// changing the flash contents, modeling a worn or failing chip that
// acknowledges writes it did not perform.
func WithSilentWriteFailure() Option {
	return func(d *Device) {
		d.silentWriteFailure = true
	}
}

// New creates a simulated device for the given chip profile. The chip
// starts fully erased except for a synthetic second-stage boot loader
// in its first 256 bytes, with the XIP mapping active.
func New(profile chip.Profile, opts ...Option) *Device {
	if err := chip.Validate(&profile); err != nil {
		panic(fmt.Sprintf("sim: %v", err))
	}

	d := &Device{
		profile: profile,
		mem:     make([]byte, profile.SizeBytes),
		xip:     true,
	}
	d.ctrl.dev = d

	for i := range d.mem {
		d.mem[i] = 0xFF
	}

	// Synthetic but stable loader image so snapshot comparisons mean
	// something: a marker followed by a deterministic byte pattern.
	copy(d.loader[:], "RP2-BOOT2")
	for i := len("RP2-BOOT2"); i < rom.LoaderSize; i++ {
		d.loader[i] = byte(i*37 + 11)
	}
	copy(d.mem, d.loader[:])

	// Minimal SFDP header: signature, revision 1.6, no extra headers.
	d.sfdp = append([]byte{'S', 'F', 'D', 'P', 0x06, 0x01, 0x00, 0xFF},
		0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF)

	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Profile returns the attached chip's parameters.
func (d *Device) Profile() chip.Profile {
	return d.profile
}

// FlashSize returns the chip capacity in bytes.
func (d *Device) FlashSize() uint32 {
	return d.profile.SizeBytes
}

// Registers exposes the simulated bus controller.
func (d *Device) Registers() ssi.Registers {
	return &d.ctrl
}

// Elapsed returns the simulated wall time the chip spent in erase and
// program cycles, per the profile's datasheet timings.
func (d *Device) Elapsed() time.Duration {
	return d.elapsed
}

// Trace returns the operations performed so far, oldest first.
func (d *Device) Trace() []string {
	return append([]string(nil), d.trace...)
}

// ResetTrace discards the recorded trace.
func (d *Device) ResetTrace() {
	d.trace = nil
}

// Bytes exposes the raw flash contents for test inspection.
func (d *Device) Bytes() []byte {
	return d.mem
}

// ReadXIP copies from the memory-mapped window.
func (d *Device) ReadXIP(memAddr uint32, p []byte) {
	if !d.xip {
		panic("sim: XIP load while the mapping is disabled; the device would bus-fault")
	}
	if memAddr < xipBase {
		panic(fmt.Sprintf("sim: XIP load from 0x%X, below the window base", memAddr))
	}
	off := memAddr - xipBase
	if uint64(off)+uint64(len(p)) > uint64(len(d.mem)) {
		panic(fmt.Sprintf("sim: XIP load 0x%X+0x%X beyond the mapped chip", memAddr, len(p)))
	}
	copy(p, d.mem[off:])
}

func (d *Device) tracef(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	d.trace = append(d.trace, msg)
	if glog.V(2) {
		glog.Infof("sim: %s", msg)
	}
}
