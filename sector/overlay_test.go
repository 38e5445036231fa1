package sector

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jannic/go-rp2flash/chip"
	"github.com/jannic/go-rp2flash/flash"
	"github.com/jannic/go-rp2flash/sim"
)

type record struct {
	Tag   uint8
	Count uint32
}

func newTestDriver(t *testing.T) (*flash.Driver, *sim.Device) {
	t.Helper()
	dev := sim.New(chip.W25Q16JV())
	return flash.New(dev), dev
}

func TestErased(t *testing.T) {
	o := Erased[record]()
	for _, b := range o.Bytes() {
		require.Equal(t, flash.ErasedByte, b)
	}
}

func TestOfRoundTrip(t *testing.T) {
	// construction and decoding work without any device
	v := record{Tag: 0x55, Count: 12345}
	o := Of(v)

	require.Equal(t, v, o.Value())

	// fixed little-endian layout, erased fill past the value
	raw := o.Bytes()
	require.Equal(t, []byte{0x55, 0x39, 0x30, 0x00, 0x00}, raw[:5])
	for _, b := range raw[5:] {
		require.Equal(t, flash.ErasedByte, b)
	}
}

func TestErasedValueIsAllOnes(t *testing.T) {
	v := Erased[record]().Value()
	require.Equal(t, record{Tag: 0xFF, Count: 0xFFFFFFFF}, v)
}

func TestWriteRead(t *testing.T) {
	drv, dev := newTestDriver(t)
	addr := flash.Origin + 3*Size

	Of(record{Tag: 7, Count: 99}).Write(drv, addr)
	dev.ResetTrace()

	got := Read[record](drv, addr)
	require.Equal(t, record{Tag: 7, Count: 99}, got.Value())
	// reading goes through the memory-mapped window, not the ROM bracket
	require.Empty(t, dev.Trace())
}

func TestWriteReplacesWholeSector(t *testing.T) {
	drv, _ := newTestDriver(t)
	addr := flash.Origin + 3*Size

	Of(record{Tag: 1, Count: 0xFFFFFFFF}).Write(drv, addr)
	Of(record{Tag: 2, Count: 1}).Write(drv, addr)

	// the second write is not ANDed into the first: the sector was
	// erased in the same bracket
	require.Equal(t, record{Tag: 2, Count: 1}, Read[record](drv, addr).Value())
}

func TestPlacementPanics(t *testing.T) {
	drv, _ := newTestDriver(t)
	size := drv.Size()

	tests := []struct {
		name string
		op   func()
	}{
		{name: "nil driver", op: func() { Read[record](nil, flash.Origin) }},
		{name: "below the window", op: func() { Read[record](drv, flash.Origin-Size) }},
		{name: "beyond the window", op: func() { Read[record](drv, flash.Origin+flash.MaxSize) }},
		{name: "beyond the chip", op: func() { Read[record](drv, flash.Origin+size) }},
		{name: "last sector plus one page", op: func() { Read[record](drv, flash.Origin+size-Size+256) }},
		{name: "unaligned", op: func() { Read[record](drv, flash.Origin+Size/2) }},
		{name: "unaligned write", op: func() { Of(record{}).Write(drv, flash.Origin+1) }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Panics(t, tc.op)
		})
	}
}

func TestOversizedType(t *testing.T) {
	type huge struct {
		Blob [Size + 1]byte
	}
	require.Panics(t, func() { Erased[huge]() })
}

func TestUnencodableType(t *testing.T) {
	type varying struct {
		Name string
	}
	require.Panics(t, func() { Erased[varying]() })
}
