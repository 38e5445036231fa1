package rom

// LoaderSnapshot holds a byte-exact copy of the second-stage boot
// loader, captured from the start of the XIP window. A snapshot is
// valid only while the underlying flash region it was captured from
// still contains a working loader; it does not track later mutation.
type LoaderSnapshot struct {
	image [LoaderSize]byte
}

// CaptureLoader reads the second-stage loader through the provider.
// The copy must be taken while XIP is still active.
func CaptureLoader(p Provider) *LoaderSnapshot {
	if p == nil {
		panic("rom: provider cannot be nil")
	}
	return &LoaderSnapshot{image: p.ReadBootLoader()}
}

// Image exposes the captured bytes. Mutating them invalidates the
// snapshot.
func (s *LoaderSnapshot) Image() *[LoaderSize]byte {
	return &s.image
}

// Restorer selects how XIP is re-established after a flash operation:
// either the ROM's built-in enter-XIP routine, or a captured copy of
// the second-stage loader. The zero value is the ROM restorer.
type Restorer struct {
	snap *LoaderSnapshot
}

// ROMRestorer selects the boot ROM's default enter-XIP routine.
func ROMRestorer() Restorer {
	return Restorer{}
}

// SnapshotRestorer selects re-entry through a captured loader image.
func SnapshotRestorer(snap *LoaderSnapshot) Restorer {
	if snap == nil {
		panic("rom: loader snapshot cannot be nil")
	}
	return Restorer{snap: snap}
}

// UsesSnapshot reports whether the restorer goes through a captured
// loader image rather than the ROM routine.
func (r Restorer) UsesSnapshot() bool {
	return r.snap != nil
}
