// Package sector overlays a typed value onto exactly one flash erase
// unit.
//
// # Overview
//
// An Overlay[T] is a 4096-byte buffer interpreted either as raw erased
// bytes or as one instance of a fixed-layout value type T. The overlay
// occupies a fixed, sector-aligned address in the memory-mapped flash
// window for the process lifetime; it is read with ordinary loads and
// mutated only as a whole sector via erase+program, so partial
// in-place bit flips from 0 to 1 are impossible.
//
// # Layout
//
// Values are laid out little-endian via encoding/binary, so T must be
// a fixed-size type (no slices, maps, strings or pointers) and the
// layout survives firmware upgrades as long as T's definition does.
// Bytes past the value keep the erased fill (0xFF).
//
// # Usage
//
//	addr := flash.Origin + drv.Size() - sector.Size
//
//	o := sector.Read[Conf](drv, addr)   // unvalidated reinterpretation
//	v := o.Value()
//
//	sector.Of(newConf).Write(drv, addr) // whole-sector replace
//
// An oversized T or a misaligned or out-of-range placement is a fatal
// assertion raised before any hardware access.
package sector
