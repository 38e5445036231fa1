package qspi

import (
	"encoding/binary"
	"fmt"
)

// UniqueID is a factory-programmed chip serial number.
//
// The bytes are relatively predictable between parts from the same
// production run; salt and hash them before deriving identifiers such
// as MAC addresses.
type UniqueID [UniqueIDLen]byte

// String renders the ID as upper-case hex.
func (u UniqueID) String() string {
	return fmt.Sprintf("%X", u[:])
}

// ParseJEDECID reassembles a three-byte JEDEC ID response into a
// 32-bit value with the leading byte zero, e.g. 0x00EF7015 for a
// Winbond W25Q16JV.
func ParseJEDECID(data []byte) (uint32, error) {
	if len(data) != JEDECIDLen {
		return 0, fmt.Errorf("invalid data length for JEDEC ID response: got %d bytes, expected %d", len(data), JEDECIDLen)
	}

	var id [4]byte
	copy(id[1:], data)
	return binary.BigEndian.Uint32(id[:]), nil
}

// ParseUniqueID copies an 8-byte unique-ID response.
func ParseUniqueID(data []byte) (UniqueID, error) {
	var id UniqueID
	if len(data) != UniqueIDLen {
		return id, fmt.Errorf("invalid data length for unique ID response: got %d bytes, expected %d", len(data), UniqueIDLen)
	}

	copy(id[:], data)
	return id, nil
}
