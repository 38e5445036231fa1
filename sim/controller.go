package sim

import (
	"fmt"

	"github.com/jannic/go-rp2flash/qspi"
	"github.com/jannic/go-rp2flash/ssi"
)

// controller models the slice of the SSI block the raw command path
// touches. Command bytes written to DR while enabled are queued; the
// transaction executes lazily on the first status poll, filling the
// receive FIFO with the attached chip's response.
type controller struct {
	dev *Device

	enabled bool
	ctrlr0  uint32
	ctrlr1  uint32

	tx []byte
	rx []byte
}

func (c *controller) Read(r ssi.Reg) uint32 {
	switch r {
	case ssi.CTRLR0:
		return c.ctrlr0
	case ssi.CTRLR1:
		return c.ctrlr1
	case ssi.SSIENR:
		if c.enabled {
			return 1
		}
		return 0
	case ssi.SR:
		c.pump()
		sr := ssi.SRTFE
		if len(c.rx) > 0 {
			sr |= ssi.SRRFNE
		}
		return sr
	case ssi.DR0:
		if !c.enabled {
			panic("sim: DR read while the controller is disabled")
		}
		if len(c.rx) == 0 {
			// an empty receive FIFO reads as stale data
			return 0
		}
		v := uint32(c.rx[0])
		c.rx = c.rx[1:]
		return v
	default:
		panic(fmt.Sprintf("sim: read of unmodeled SSI register 0x%02X", uint32(r)))
	}
}

func (c *controller) Write(r ssi.Reg, v uint32) {
	switch r {
	case ssi.CTRLR0:
		if c.enabled {
			panic("sim: CTRLR0 written while the controller is enabled")
		}
		c.ctrlr0 = v
	case ssi.CTRLR1:
		if c.enabled {
			panic("sim: CTRLR1 written while the controller is enabled")
		}
		c.ctrlr1 = v
	case ssi.SSIENR:
		c.enabled = v&1 != 0
		if !c.enabled {
			// disabling drains both FIFOs
			c.tx = nil
			c.rx = nil
		}
	case ssi.DR0:
		if !c.enabled {
			panic("sim: DR written while the controller is disabled")
		}
		if !c.dev.connected {
			panic("sim: SSI command issued before connect_internal_flash")
		}
		if c.dev.xip {
			panic("sim: SSI command issued while the XIP mapping is active")
		}
		c.tx = append(c.tx, byte(v))
	default:
		panic(fmt.Sprintf("sim: write of unmodeled SSI register 0x%02X", uint32(r)))
	}
}

// pump executes a queued transaction once the host starts polling.
func (c *controller) pump() {
	if len(c.rx) > 0 || len(c.tx) == 0 {
		return
	}
	if c.ctrlr0&ssi.CTRLR0TMODMask != ssi.CTRLR0TMODEEPROMRead {
		panic(fmt.Sprintf("sim: transfer started in unmodeled SSI mode 0x%03X", c.ctrlr0&ssi.CTRLR0TMODMask))
	}

	frames := int(c.ctrlr1) + 1
	c.rx = c.dev.respond(c.tx[0], c.tx[1:], frames)
	c.tx = nil
}

// respond produces the chip's response to one read-class command:
// frames bytes total, dummy phase included. Opcodes the chip does not
// implement yield garbage (all ones), not an error.
func (d *Device) respond(opcode byte, addr []byte, frames int) []byte {
	out := make([]byte, frames)
	for i := range out {
		out[i] = 0xFF
	}

	switch opcode {
	case qspi.OpReadJEDECID:
		id := d.profile.JEDECID
		for i, b := range []byte{byte(id >> 16), byte(id >> 8), byte(id)} {
			if i < frames {
				out[i] = b
			}
		}

	case qspi.OpReadUniqueID:
		// four address/dummy frames, then the ID when the profile
		// carries one; chips without the command clock out garbage
		uid, err := d.profile.UniqueIDBytes()
		if err == nil && uid != nil && frames > qspi.UniqueIDDummyLen {
			copy(out[qspi.UniqueIDDummyLen:], uid)
		}

	case qspi.OpReadSFDP:
		if len(addr) == qspi.SFDPAddrLen && frames > qspi.SFDPDummyLen {
			off := int(addr[0])<<16 | int(addr[1])<<8 | int(addr[2])
			if off < len(d.sfdp) {
				copy(out[qspi.SFDPDummyLen:], d.sfdp[off:])
			}
		}
	}

	d.tracef("ssi command 0x%02X -> %d frames", opcode, frames)
	return out
}
