// Package bootconf persists a small configuration record (a validity
// marker and a reboot counter) in one flash sector, surviving power
// cycles and firmware updates.
//
// Flash's natural erased state is all one-bits, which can never be
// mistaken for a real zero-counter record; a fixed sentinel byte is
// therefore the cheapest discriminator between "never written or
// corrupted" and "genuinely written". A record that fails the check is
// treated as the default without being written back; nothing touches
// the flash until an explicit update.
package bootconf

// Marker is the validity sentinel. An erased sector reads 0xFF here,
// so a valid marker proves the record was deliberately written.
const Marker uint8 = 0x55

// Conf is the persisted record: 5 bytes, fixed little-endian layout.
// The layout must stay stable across firmware versions.
type Conf struct {
	// Validity holds Marker when the record was written by this
	// subsystem
	Validity uint8

	// BootCounter counts completed boots
	BootCounter uint32
}

// New returns a valid record with the given counter.
func New(counter uint32) Conf {
	return Conf{Validity: Marker, BootCounter: counter}
}

// Default returns the valid zero-counter record.
func Default() Conf {
	return New(0)
}

// IsValid reports whether the record carries the sentinel.
func (c Conf) IsValid() bool {
	return c.Validity == Marker
}

// OrDefault returns the record itself when valid, or the default
// record otherwise. The default is not persisted.
func (c Conf) OrDefault() Conf {
	if c.IsValid() {
		return c
	}
	return Default()
}
