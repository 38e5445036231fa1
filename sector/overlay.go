package sector

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/jannic/go-rp2flash/flash"
)

// Size is one erase unit: the overlay's exact footprint.
const Size = flash.SectorSize

// Overlay is a fixed-size, erase-unit-aligned flash region interpreted
// either as raw erased bytes or as a typed value.
type Overlay[T any] struct {
	data [Size]byte
}

// Erased returns an overlay holding only erased fill bytes.
func Erased[T any]() *Overlay[T] {
	sizeOf[T]()

	o := &Overlay[T]{}
	for i := range o.data {
		o.data[i] = flash.ErasedByte
	}
	return o
}

// Of returns an overlay holding v, with erased fill past the value.
// Panics if T does not fit into a single sector.
func Of[T any](v T) *Overlay[T] {
	o := Erased[T]()

	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, v); err != nil {
		panic(fmt.Sprintf("sector: cannot encode value: %v", err))
	}
	copy(o.data[:], buf.Bytes())
	return o
}

// Read loads the whole sector at the memory-mapped address memAddr.
// The stored bytes are reinterpreted as T without validation; deciding
// whether they hold a real value is the caller's concern (see the
// bootconf package for the sentinel scheme).
func Read[T any](drv *flash.Driver, memAddr uint32) *Overlay[T] {
	assertPlacement(drv, memAddr)

	o := Erased[T]()
	drv.Read(memAddr, o.data[:])
	return o
}

// Value decodes the stored bytes as T. Unvalidated.
func (o *Overlay[T]) Value() T {
	var v T
	if err := binary.Read(bytes.NewReader(o.data[:]), binary.LittleEndian, &v); err != nil {
		panic(fmt.Sprintf("sector: cannot decode value: %v", err))
	}
	return v
}

// Bytes exposes the raw sector contents.
func (o *Overlay[T]) Bytes() []byte {
	return o.data[:]
}

// Write replaces the whole sector at memAddr with the overlay's
// contents via a single erase+program bracket.
func (o *Overlay[T]) Write(drv *flash.Driver, memAddr uint32) {
	assertPlacement(drv, memAddr)

	drv.RangeEraseAndProgram(memAddr-flash.Origin, o.data[:])
}

// sizeOf returns T's encoded size, panicking if T has no fixed layout
// or does not fit into a single sector.
func sizeOf[T any]() int {
	n := binary.Size(*new(T))
	if n < 0 {
		panic(fmt.Sprintf("sector: %T has no fixed binary layout", *new(T)))
	}
	if n > int(Size) {
		panic(fmt.Sprintf("sector: %T is %d bytes, larger than the %d-byte sector", *new(T), n, Size))
	}
	return n
}

// assertPlacement checks that memAddr names a whole, sector-aligned
// sector inside both the XIP address space and the attached chip.
func assertPlacement(drv *flash.Driver, memAddr uint32) {
	if drv == nil {
		panic("sector: driver cannot be nil")
	}
	if memAddr < flash.Origin {
		panic(fmt.Sprintf("sector: address 0x%X is below the XIP window base 0x%X", memAddr, flash.Origin))
	}
	if memAddr > flash.Origin+flash.MaxSize-Size {
		panic(fmt.Sprintf("sector: address 0x%X leaves no room for a sector in the XIP window", memAddr))
	}
	if memAddr > flash.Origin+drv.Size()-Size {
		panic(fmt.Sprintf("sector: address 0x%X leaves no room for a sector on a 0x%X-byte chip", memAddr, drv.Size()))
	}
	if (memAddr-flash.Origin)%Size != 0 {
		panic(fmt.Sprintf("sector: address 0x%X is not sector aligned", memAddr))
	}
}
