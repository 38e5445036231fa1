// Package qspi describes the single-response read-class commands this
// subsystem issues to a serial flash chip, and parses their responses.
//
// # Command Shape
//
// Every command here follows the same wire shape: shift out a one-byte
// opcode (plus optional address bytes), discard a fixed number of
// dummy cycles, then shift in a fixed-length response:
//
//	[OPCODE][ADDR...] -> [DUMMY...][RESPONSE...]
//
// The Command type captures that geometry; the flash driver executes
// it against the bus controller.
//
// # Built-in Commands
//
//	cmd := qspi.ReadJEDECID()   // 0x9F, 3-byte manufacturer/model ID
//	cmd := qspi.ReadUniqueID()  // 0x4B, 8-byte factory unique ID
//	cmd := qspi.ReadSFDP(0, n)  // 0x5A, SFDP parameter table bytes
//
// Any other single-response read-class command fits the same shape and
// can be described with a Command literal.
//
// # Chip Support
//
// A chip that does not implement a given opcode returns garbage, not
// an error; there is no in-band failure signal. Callers that need
// certainty (the unique-ID command in particular) must first confirm
// chip identity via the JEDEC ID.
package qspi
