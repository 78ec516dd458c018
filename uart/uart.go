// Package uart implements the host serial link's byte ring buffers
// (original uart.c). The AVR original moves bytes between the USART data
// register and two ring buffers from interrupt context; this port moves
// them between a real serial port and the same two ring buffers from a
// pair of goroutines, guarded by xsection.Guard instead of ATOMIC_BLOCK.
package uart

import (
	"io"

	"github.com/handheld/lasertag/ringbuf"
	"github.com/handheld/lasertag/xsection"
)

// bufSize matches the original UART_BUF_SIZE.
const bufSize = 16

// Port is a serial link bridging a byte stream to two fixed-capacity ring
// buffers, exactly as uart_rx_buf/uart_tx_buf did in the original.
type Port struct {
	rx   ringbuf.Ring[byte]
	tx   ringbuf.Ring[byte]
	rxMu xsection.Guard
	txMu xsection.Guard

	wire   io.ReadWriter
	txWake chan struct{}
	done   chan struct{}
}

// New returns a Port that pumps bytes to and from wire in the background.
// Callers must call Close to stop the pump goroutines.
func New(wire io.ReadWriter) *Port {
	p := &Port{
		rx:     *ringbuf.New[byte](bufSize),
		tx:     *ringbuf.New[byte](bufSize),
		wire:   wire,
		txWake: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	go p.readLoop()
	go p.writeLoop()
	return p
}

// readLoop stands in for ISR(USART_RX_vect): read one byte at a time from
// the wire and push it to the RX buffer, discarding it if the buffer is
// full exactly as the original did.
func (p *Port) readLoop() {
	buf := make([]byte, 1)
	for {
		n, err := p.wire.Read(buf)
		if err != nil {
			return
		}
		if n == 0 {
			continue
		}
		p.rxMu.Do(func() {
			p.rx.Push(buf[0])
		})
		select {
		case <-p.done:
			return
		default:
		}
	}
}

// writeLoop stands in for ISR(USART_UDRE_vect): whenever woken, drain the
// TX buffer to the wire one byte at a time until it is empty.
func (p *Port) writeLoop() {
	for {
		select {
		case <-p.done:
			return
		case <-p.txWake:
		}
		for {
			var c byte
			var ok bool
			p.txMu.Do(func() {
				c, ok = p.tx.Pop()
			})
			if !ok {
				break
			}
			if _, err := p.wire.Write([]byte{c}); err != nil {
				return
			}
		}
	}
}

// Getc pops a byte from the RX buffer. The second return is false if the
// buffer was empty, the Go analogue of uart_getc's -1 sentinel.
func (p *Port) Getc() (byte, bool) {
	var c byte
	var ok bool
	p.rxMu.Do(func() {
		c, ok = p.rx.Pop()
	})
	return c, ok
}

// Putc pushes a byte to the TX buffer, spinning until there is room exactly
// as uart_putc's busy loop did.
func (p *Port) Putc(c byte) {
	for {
		pushed := false
		p.txMu.Do(func() {
			pushed = p.tx.Push(c)
		})
		if pushed {
			break
		}
	}
	select {
	case p.txWake <- struct{}{}:
	default:
	}
}

// Puts writes every byte of s via Putc.
func (p *Port) Puts(s string) {
	for i := 0; i < len(s); i++ {
		p.Putc(s[i])
	}
}

// Close stops the pump goroutines. It does not close wire.
func (p *Port) Close() {
	close(p.done)
}
