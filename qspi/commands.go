package qspi

// Command opcodes per JEDEC / common SPI-NOR command sets.
const (
	// OpReadJEDECID reads the three-byte manufacturer-and-model ID (0x9F)
	OpReadJEDECID byte = 0x9F

	// OpReadUniqueID reads the factory-programmed unique ID (0x4B)
	OpReadUniqueID byte = 0x4B

	// OpReadSFDP reads the Serial Flash Discoverable Parameters table (0x5A)
	OpReadSFDP byte = 0x5A
)

// Response geometry constants.
const (
	// JEDECIDLen is the response length of the JEDEC ID command
	JEDECIDLen = 3

	// UniqueIDLen is the response length of the unique-ID command on
	// the Winbond parts commonly fitted to RP2040 boards. Some chips
	// return 16 bytes instead; see ReadUniqueID.
	UniqueIDLen = 8

	// UniqueIDDummyLen is the dummy byte count of the unique-ID command
	UniqueIDDummyLen = 4

	// SFDPAddrLen is the address byte count of the SFDP read command
	SFDPAddrLen = 3

	// SFDPDummyLen is the dummy byte count of the SFDP read command
	SFDPDummyLen = 1
)

// Command describes one single-response read-class command: the opcode
// and optional address bytes shifted out, the number of dummy bytes to
// discard, and the response length to shift in.
type Command struct {
	// Opcode is the single command byte
	Opcode byte

	// Addr holds address bytes sent after the opcode, most significant
	// first; nil for address-less commands
	Addr []byte

	// DummyLen is the number of dummy bytes clocked before the response
	DummyLen int

	// RespLen is the response length in bytes
	RespLen int
}

// FrameLen returns the number of response frames the bus controller
// must clock in: dummy bytes plus response bytes.
func (c Command) FrameLen() int {
	return c.DummyLen + c.RespLen
}

// ReadJEDECID describes the JEDEC ID command: no address, no dummy
// cycles, three response bytes (manufacturer, memory type, capacity).
func ReadJEDECID() Command {
	return Command{Opcode: OpReadJEDECID, RespLen: JEDECIDLen}
}

// ReadUniqueID describes the unique-ID command as implemented by the
// Winbond parts commonly seen on RP2040 devboards (JEDEC 0xEF7015):
// four dummy bytes, then an 8-byte unique ID.
//
// Not all chips implement this command, and some (LCSC/Zetta,
// JEDEC 0xBA6015) return a 16-byte ID that is not unique in its first
// 8 bytes. Check the JEDEC ID before relying on the result.
func ReadUniqueID() Command {
	return Command{Opcode: OpReadUniqueID, DummyLen: UniqueIDDummyLen, RespLen: UniqueIDLen}
}

// ReadSFDP describes a read of n bytes from the SFDP parameter table
// at the given 24-bit table address.
func ReadSFDP(addr uint32, n int) Command {
	return Command{
		Opcode:   OpReadSFDP,
		Addr:     []byte{byte(addr >> 16), byte(addr >> 8), byte(addr)},
		DummyLen: SFDPDummyLen,
		RespLen:  n,
	}
}
