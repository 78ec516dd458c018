package uart

import (
	"net"
	"testing"
	"time"

	"github.com/creack/pty"
)

// TestGetcEmptyReturnsFalse matches uart_getc's -1 sentinel for an empty
// RX buffer: before anything has been read off the wire, Getc reports
// nothing available.
func TestGetcEmptyReturnsFalse(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	p := New(server)
	defer p.Close()

	if _, ok := p.Getc(); ok {
		t.Fatal("Getc should report nothing available on an idle port")
	}
}

// TestPutcDeliversBytesToWire exercises the TX ring buffer draining to a
// real byte stream.
func TestPutcDeliversBytesToWire(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	p := New(server)
	defer p.Close()

	p.Puts("hi")

	buf := make([]byte, 2)
	client.SetReadDeadline(time.Now().Add(time.Second))
	n, err := readFull(client, buf)
	if err != nil {
		t.Fatalf("read from wire: %v", err)
	}
	if n != 2 || string(buf) != "hi" {
		t.Fatalf("got %q, want %q", buf[:n], "hi")
	}
}

// TestRxBufferFillsFromWire exercises the RX pump reading bytes off a real
// pseudo-terminal pair, grounding the test in an actual serial-like device
// rather than only an in-memory pipe.
func TestRxBufferFillsFromWire(t *testing.T) {
	ptmx, pts, err := pty.Open()
	if err != nil {
		t.Fatalf("open pty: %v", err)
	}
	defer ptmx.Close()
	defer pts.Close()

	p := New(pts)
	defer p.Close()

	if _, err := ptmx.Write([]byte("A")); err != nil {
		t.Fatalf("write to pty master: %v", err)
	}

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if c, ok := p.Getc(); ok {
			if c != 'A' {
				t.Fatalf("got %q, want 'A'", c)
			}
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("timed out waiting for byte to arrive in RX buffer")
}

func readFull(r interface{ Read([]byte) (int, error) }, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := r.Read(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
