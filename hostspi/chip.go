// Package hostspi issues the subsystem's read-class commands against
// a physical flash chip wired to a host-side SPI port, for bench
// identification before a board is assembled or flashed.
//
// It speaks plain single-lane SPI through periph.io: one full-duplex
// transaction per command, with the opcode, address and dummy bytes in
// the transmit window and the response in the tail of the receive
// window.
package hostspi

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/spi"

	"github.com/jannic/go-rp2flash/qspi"
)

// Chip is a flash chip reachable over a host SPI connection.
type Chip struct {
	conn spi.Conn
	cs   gpio.PinOut
}

// Option is a functional option for configuring the Chip.
type Option func(*Chip)

// WithChipSelect adds manual chip-select handling for adapters whose
// SPI port does not drive CS itself (e.g. FTDI cables): the pin is
// pulled low around every transaction.
func WithChipSelect(cs gpio.PinOut) Option {
	return func(c *Chip) {
		c.cs = cs
	}
}

// New creates a Chip on an already-connected SPI port.
func New(conn spi.Conn, opts ...Option) *Chip {
	if conn == nil {
		panic("hostspi: connection cannot be nil")
	}

	c := &Chip{conn: conn}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ReadCommand issues one single-response read-class command and
// returns the response bytes.
func (c *Chip) ReadCommand(cmd qspi.Command) ([]byte, error) {
	n := 1 + len(cmd.Addr) + cmd.DummyLen + cmd.RespLen
	buf := make([]byte, n)
	buf[0] = cmd.Opcode
	copy(buf[1:], cmd.Addr)

	if err := c.tx(buf); err != nil {
		return nil, fmt.Errorf("command 0x%02X: %w", cmd.Opcode, err)
	}
	return buf[n-cmd.RespLen:], nil
}

// JEDECID reads the chip's three-byte manufacturer-and-model ID.
func (c *Chip) JEDECID() (uint32, error) {
	data, err := c.ReadCommand(qspi.ReadJEDECID())
	if err != nil {
		return 0, err
	}
	return qspi.ParseJEDECID(data)
}

// UniqueID reads the chip's 8-byte factory unique ID. Confirm chip
// identity via JEDECID first; chips without the command return
// garbage.
func (c *Chip) UniqueID() (qspi.UniqueID, error) {
	data, err := c.ReadCommand(qspi.ReadUniqueID())
	if err != nil {
		return qspi.UniqueID{}, err
	}
	return qspi.ParseUniqueID(data)
}

// tx runs one full-duplex transaction, bracketing it with manual chip
// select when configured.
func (c *Chip) tx(buf []byte) error {
	if c.cs != nil {
		if err := c.cs.Out(gpio.Low); err != nil {
			return fmt.Errorf("assert chip select: %w", err)
		}
	}

	txErr := c.conn.Tx(buf, buf)

	if c.cs != nil {
		if err := c.cs.Out(gpio.High); err != nil {
			return fmt.Errorf("release chip select: %w", err)
		}
	}
	return txErr
}
