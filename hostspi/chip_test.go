package hostspi

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/spi"

	"github.com/jannic/go-rp2flash/qspi"
)

// fakeConn records transmit buffers and plays a canned response into
// the tail of the receive buffer.
type fakeConn struct {
	tx   [][]byte
	resp []byte
	err  error
}

func (f *fakeConn) String() string     { return "fake" }
func (f *fakeConn) Duplex() conn.Duplex { return conn.Full }

func (f *fakeConn) Tx(w, r []byte) error {
	f.tx = append(f.tx, append([]byte(nil), w...))
	if f.err != nil {
		return f.err
	}
	copy(r[len(r)-len(f.resp):], f.resp)
	return nil
}

func (f *fakeConn) TxPackets(p []spi.Packet) error {
	return errors.New("packets not used")
}

func TestNewNilConn(t *testing.T) {
	require.Panics(t, func() { New(nil) })
}

func TestJEDECID(t *testing.T) {
	fc := &fakeConn{resp: []byte{0xEF, 0x70, 0x15}}
	c := New(fc)

	id, err := c.JEDECID()
	require.NoError(t, err)
	require.Equal(t, uint32(0x00EF7015), id)

	// one transaction: the opcode, then clock for the three ID bytes
	require.Len(t, fc.tx, 1)
	require.Equal(t, []byte{0x9F, 0x00, 0x00, 0x00}, fc.tx[0])
}

func TestUniqueID(t *testing.T) {
	fc := &fakeConn{resp: []byte{1, 2, 3, 4, 5, 6, 7, 8}}
	c := New(fc)

	id, err := c.UniqueID()
	require.NoError(t, err)
	require.Equal(t, "0102030405060708", id.String())

	// opcode, four dummy bytes, eight response bytes
	require.Len(t, fc.tx, 1)
	require.Len(t, fc.tx[0], 13)
	require.Equal(t, byte(0x4B), fc.tx[0][0])
}

func TestReadCommandAddr(t *testing.T) {
	fc := &fakeConn{resp: make([]byte, 8)}
	c := New(fc)

	_, err := c.ReadCommand(qspi.ReadSFDP(0x010203, 8))
	require.NoError(t, err)

	require.Equal(t, []byte{0x5A, 0x01, 0x02, 0x03}, fc.tx[0][:4])
	require.Len(t, fc.tx[0], 13)
}

func TestReadCommandError(t *testing.T) {
	fc := &fakeConn{err: errors.New("bus gone")}
	c := New(fc)

	_, err := c.JEDECID()
	require.ErrorContains(t, err, "command 0x9F")
	require.ErrorContains(t, err, "bus gone")
}

func TestChipSelectBracketing(t *testing.T) {
	cs := &gpiotest.Pin{N: "CS"}
	fc := &fakeConn{resp: []byte{0xEF, 0x70, 0x15}}
	c := New(fc, WithChipSelect(cs))

	_, err := c.JEDECID()
	require.NoError(t, err)

	// chip select is released after the transaction
	require.Equal(t, gpio.High, cs.L)
}
