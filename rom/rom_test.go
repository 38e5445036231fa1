package rom

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// stubProvider records which routines are invoked.
type stubProvider struct {
	calls  []string
	loader [LoaderSize]byte

	gotImage *[LoaderSize]byte
}

func newStubProvider() *stubProvider {
	s := &stubProvider{}
	for i := range s.loader {
		s.loader[i] = byte(i)
	}
	return s
}

func (s *stubProvider) ConnectInternalFlash() { s.calls = append(s.calls, "connect") }
func (s *stubProvider) FlashExitXIP()         { s.calls = append(s.calls, "exit_xip") }
func (s *stubProvider) FlashFlushCache()      { s.calls = append(s.calls, "flush_cache") }
func (s *stubProvider) FlashEnterCmdXIP()     { s.calls = append(s.calls, "enter_xip") }

func (s *stubProvider) FlashRangeErase(addr, count, blockSize uint32, blockCmd byte) {
	s.calls = append(s.calls, "erase")
}

func (s *stubProvider) FlashRangeProgram(addr uint32, data []byte) {
	s.calls = append(s.calls, "program")
}

func (s *stubProvider) ReadBootLoader() [LoaderSize]byte {
	return s.loader
}

func (s *stubProvider) EnterXIPFromLoader(image *[LoaderSize]byte) {
	s.gotImage = image
	s.calls = append(s.calls, "enter_xip_loader")
}

func TestResolveSelection(t *testing.T) {
	tests := []struct {
		name    string
		sel     Selection
		erase   bool
		program bool
	}{
		{name: "neither", sel: Selection{}},
		{name: "erase only", sel: Selection{Erase: true}, erase: true},
		{name: "program only", sel: Selection{Program: true}, program: true},
		{name: "both", sel: Selection{Erase: true, Program: true}, erase: true, program: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := newStubProvider()
			tbl := Resolve(p, tc.sel)

			// the bracket entries are always resolved
			require.NotNil(t, tbl.ConnectInternalFlash)
			require.NotNil(t, tbl.ExitXIP)
			require.NotNil(t, tbl.FlushCache)
			require.NotNil(t, tbl.EnterXIP)

			// erase/program presence follows the selection
			require.Equal(t, tc.erase, tbl.RangeErase != nil)
			require.Equal(t, tc.program, tbl.RangeProgram != nil)
		})
	}
}

func TestResolveROMRestorer(t *testing.T) {
	p := newStubProvider()
	tbl := Resolve(p, Selection{Restorer: ROMRestorer()})

	tbl.EnterXIP()
	require.Equal(t, []string{"enter_xip"}, p.calls)
}

func TestResolveSnapshotRestorer(t *testing.T) {
	p := newStubProvider()
	snap := CaptureLoader(p)
	tbl := Resolve(p, Selection{Restorer: SnapshotRestorer(snap)})

	tbl.EnterXIP()
	require.Equal(t, []string{"enter_xip_loader"}, p.calls)
	require.NotNil(t, p.gotImage)
	require.Equal(t, p.loader, *p.gotImage)
}

func TestCaptureLoader(t *testing.T) {
	p := newStubProvider()
	snap := CaptureLoader(p)
	require.Equal(t, p.loader, *snap.Image())
}

func TestRestorerUsesSnapshot(t *testing.T) {
	require.False(t, ROMRestorer().UsesSnapshot())
	require.False(t, Restorer{}.UsesSnapshot())

	snap := CaptureLoader(newStubProvider())
	require.True(t, SnapshotRestorer(snap).UsesSnapshot())
}

func TestResolveNilProvider(t *testing.T) {
	require.Panics(t, func() { Resolve(nil, Selection{}) })
}

func TestSnapshotRestorerNilSnapshot(t *testing.T) {
	require.Panics(t, func() { SnapshotRestorer(nil) })
}

func TestTableCodes(t *testing.T) {
	// two ASCII characters packed little-endian
	require.Equal(t, Code(0x4649), CodeConnectInternalFlash)
	require.Equal(t, Code(0x5845), CodeFlashExitXIP)
	require.Equal(t, Code(0x4552), CodeFlashRangeErase)
	require.Equal(t, Code(0x5052), CodeFlashRangeProgram)
	require.Equal(t, Code(0x4346), CodeFlashFlushCache)
	require.Equal(t, Code(0x5843), CodeFlashEnterCmdXIP)
}
