// Package radio implements the 16-bit split-byte SPI framing the original
// radio.c/spi.c used to talk to an off-board radio module (nRF24-family,
// inferred from the SS'/nIRQ pin usage). The radio module's own protocol
// is an external collaborator and out of scope; only the byte-split
// framing and chip-select sequencing are modeled.
package radio

// Conn is the minimal SPI transfer contract radio needs. periph.io's
// spi.Conn (periph.io/x/conn/v3/spi) satisfies this interface, as does any
// other full-duplex SPI connection; board wires a real spi.Conn from
// periph.io/x/host/v3 in on real hardware.
type Conn interface {
	Tx(w, r []byte) error
}

// Radio drives a 16-bit transfer over an SPI bus, matching
// radio_spi_transfer's big-endian byte split.
type Radio struct {
	conn Conn
}

// New returns a Radio driving the given SPI connection. conn is expected
// to already be configured for the bus's mode/speed/chip-select polarity;
// periph.io's spi.Port.Connect handles that setup.
func New(conn Conn) *Radio {
	return &Radio{conn: conn}
}

// Transfer sends a 16-bit value most-significant-byte first and returns
// the 16-bit value simultaneously clocked in, matching
// radio_spi_transfer's two spi_transfer calls under one chip-select
// assertion.
func (r *Radio) Transfer(value uint16) (uint16, error) {
	tx := []byte{byte(value >> 8), byte(value)}
	rx := make([]byte, 2)
	if err := r.conn.Tx(tx, rx); err != nil {
		return 0, err
	}
	return uint16(rx[0])<<8 | uint16(rx[1]), nil
}
