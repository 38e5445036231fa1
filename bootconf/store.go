package bootconf

import (
	"github.com/jannic/go-rp2flash/flash"
	"github.com/jannic/go-rp2flash/sector"
)

// Store binds the record to its fixed sector in the memory-mapped
// flash window. Construct one at boot and keep it for the process
// lifetime; the sector has a single owner.
type Store struct {
	drv  *flash.Driver
	addr uint32
}

// NewStore creates a store for the record sector at memAddr.
// Placement is asserted eagerly so a bad address fails at boot, not on
// the first update.
func NewStore(drv *flash.Driver, memAddr uint32) *Store {
	if drv == nil {
		panic("bootconf: driver cannot be nil")
	}
	// read once to trigger the placement assertions
	sector.Read[Conf](drv, memAddr)

	return &Store{drv: drv, addr: memAddr}
}

// PlacementAddr returns the conventional record placement: the last
// whole sector of a chip of the given size. Firmware updates are
// written from the start of the image, so the record survives routine
// upgrades there.
func PlacementAddr(flashSize uint32) uint32 {
	return flash.Origin + flashSize - sector.Size
}

// Addr returns the record's memory-mapped address.
func (s *Store) Addr() uint32 {
	return s.addr
}

// ReadOrDefault reads the record from flash, substituting the default
// for an invalid (erased or corrupted) record. The substitution is not
// written back.
func (s *Store) ReadOrDefault() Conf {
	return sector.Read[Conf](s.drv, s.addr).Value().OrDefault()
}

// IncrementAndPersist writes a valid record with cur's counter plus
// one, replacing the whole sector, then reads it back and re-checks
// validity. A failed post-write check means the hardware silently
// dropped the write; it is fatal and not retried, since retry
// semantics for flash wear are chip-specific.
func (s *Store) IncrementAndPersist(cur Conf) Conf {
	next := New(cur.BootCounter + 1)
	sector.Of(next).Write(s.drv, s.addr)

	got := sector.Read[Conf](s.drv, s.addr).Value()
	if !got.IsValid() {
		panic("bootconf: a valid configuration was written to flash, but an invalid one was read back")
	}
	return got
}
