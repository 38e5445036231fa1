package bootconf

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jannic/go-rp2flash/chip"
	"github.com/jannic/go-rp2flash/flash"
	"github.com/jannic/go-rp2flash/sector"
	"github.com/jannic/go-rp2flash/sim"
)

func newTestStore(t *testing.T, opts ...sim.Option) (*Store, *sim.Device) {
	t.Helper()
	dev := sim.New(chip.W25Q16JV(), opts...)
	drv := flash.New(dev)
	return NewStore(drv, PlacementAddr(dev.FlashSize())), dev
}

func TestConf(t *testing.T) {
	require.True(t, New(42).IsValid())
	require.Equal(t, uint32(42), New(42).BootCounter)
	require.Equal(t, New(0), Default())

	require.False(t, Conf{}.IsValid())
	require.False(t, Conf{Validity: 0xFF, BootCounter: 0xFFFFFFFF}.IsValid())

	require.Equal(t, Default(), Conf{Validity: 0xFF}.OrDefault())
	require.Equal(t, New(7), New(7).OrDefault())
}

func TestPlacementAddr(t *testing.T) {
	size := chip.W25Q16JV().SizeBytes
	addr := PlacementAddr(size)
	require.Equal(t, flash.Origin+size-sector.Size, addr)
}

func TestNewStorePanics(t *testing.T) {
	dev := sim.New(chip.W25Q16JV())
	drv := flash.New(dev)

	require.Panics(t, func() { NewStore(nil, PlacementAddr(dev.FlashSize())) })
	// bad placement fails at construction, not on the first update
	require.Panics(t, func() { NewStore(drv, flash.Origin+1) })
	require.Panics(t, func() { NewStore(drv, PlacementAddr(dev.FlashSize())+sector.Size) })
}

func TestReadOrDefaultErased(t *testing.T) {
	store, dev := newTestStore(t)

	// an erased record sector can never read as valid
	conf := store.ReadOrDefault()
	require.Equal(t, Default(), conf)

	// the default substitution is not written back
	require.Empty(t, dev.Trace())
}

func TestIncrementAndPersist(t *testing.T) {
	for _, start := range []uint32{0, 1, 0xFFFFFFFE} {
		t.Run(fmt.Sprintf("from %d", start), func(t *testing.T) {
			store, _ := newTestStore(t)

			got := store.IncrementAndPersist(New(start))
			require.Equal(t, New(start+1), got)
			require.Equal(t, got, store.ReadOrDefault())
		})
	}
}

func TestWrittenRecordReadsBackValid(t *testing.T) {
	for _, n := range []uint32{0, 1, 0xFFFFFFFF} {
		t.Run(fmt.Sprintf("counter %d", n), func(t *testing.T) {
			store, _ := newTestStore(t)

			sector.Of(New(n)).Write(store.drv, store.Addr())

			got := store.ReadOrDefault()
			require.True(t, got.IsValid())
			require.Equal(t, n, got.BootCounter)
		})
	}
}

func TestCounterSurvivesPowerCycles(t *testing.T) {
	const boots = 5

	dev := sim.New(chip.W25Q16JV())
	addr := PlacementAddr(dev.FlashSize())

	for i := 0; i < boots; i++ {
		// a fresh driver and store per iteration models a power cycle
		store := NewStore(flash.New(dev), addr)

		conf := store.ReadOrDefault()
		require.Equal(t, uint32(i), conf.BootCounter)
		store.IncrementAndPersist(conf)
	}

	store := NewStore(flash.New(dev), addr)
	require.Equal(t, uint32(boots), store.ReadOrDefault().BootCounter)
}

func TestRecordLayoutInFlash(t *testing.T) {
	store, dev := newTestStore(t)
	store.IncrementAndPersist(New(0x01020303))

	// marker byte, then the counter little-endian, then erased fill
	off := store.Addr() - flash.Origin
	raw := dev.Bytes()[off : off+8]
	require.Equal(t, []byte{Marker, 0x04, 0x03, 0x02, 0x01, 0xFF, 0xFF, 0xFF}, raw)
}

func TestIncrementAndPersistSilentWriteFailure(t *testing.T) {
	store, _ := newTestStore(t, sim.WithSilentWriteFailure())

	// the chip acknowledges the write without performing it; the
	// post-write validity check must catch that
	require.Panics(t, func() { store.IncrementAndPersist(Default()) })
}
