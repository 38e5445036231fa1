package flash

import (
	"github.com/jannic/go-rp2flash/qspi"
	"github.com/jannic/go-rp2flash/rom"
	"github.com/jannic/go-rp2flash/ssi"
)

// readCommand issues one read-class command by driving the bus
// controller directly, inside the same connect / exit-XIP bracket as
// the executor.
//
// The controller is put into EEPROM-read mode: the queued command
// bytes are transmitted, then dummy+response frames are clocked in.
// The polling loops spin unconditionally with no timeout; completion
// is bounded by known bus timing.
func readCommand(regs ssi.Registers, tbl rom.Table, cmd qspi.Command, out []byte) {
	tbl.ConnectInternalFlash()
	tbl.ExitXIP()

	// Control registers may only be written while disabled.
	regs.Write(ssi.SSIENR, 0)
	regs.Write(ssi.CTRLR0, regs.Read(ssi.CTRLR0)|ssi.CTRLR0TMODEEPROMRead)
	regs.Write(ssi.CTRLR1, uint32(cmd.DummyLen+len(out)-1))
	regs.Write(ssi.SSIENR, 1)

	// Shift out the opcode and any address bytes.
	regs.Write(ssi.DR0, uint32(cmd.Opcode))
	for _, b := range cmd.Addr {
		regs.Write(ssi.DR0, uint32(b))
	}

	// Discard the dummy bytes.
	for i := 0; i < cmd.DummyLen; i++ {
		for regs.Read(ssi.SR)&ssi.SRRFNE == 0 {
		}
		regs.Read(ssi.DR0)
	}

	// Shift in the response.
	for i := range out {
		for regs.Read(ssi.SR)&ssi.SRRFNE == 0 {
		}
		out[i] = byte(regs.Read(ssi.DR0))
	}

	regs.Write(ssi.SSIENR, 0)

	// The ROM's enter-XIP routine does not reset CTRLR1; later
	// transfers misbehave unless it is returned to its default here.
	regs.Write(ssi.CTRLR1, 0)

	tbl.EnterXIP()
}
