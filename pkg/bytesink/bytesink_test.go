package bytesink

import (
	"bytes"
	"io"
	"testing"
)

// seekBuf adapts a bytes.Buffer-backed slice into an io.WriteSeeker for
// tests, since os.File is overkill for unit tests of pure byte layout.
type seekBuf struct {
	b []byte
	pos int64
}

func (s *seekBuf) Write(p []byte) (int, error) {
	end := s.pos + int64(len(p))
	if end > int64(len(s.b)) {
		grown := make([]byte, end)
		copy(grown, s.b)
		s.b = grown
	}
	copy(s.b[s.pos:end], p)
	s.pos = end
	return len(p), nil
}

func (s *seekBuf) Seek(offset int64, whence int) (int64, error) {
	var np int64
	switch whence {
	case io.SeekStart:
		np = offset
	case io.SeekCurrent:
		np = s.pos + offset
	case io.SeekEnd:
		np = int64(len(s.b)) + offset
	}
	s.pos = np
	return np, nil
}

func TestPutU16LERoundTrip(t *testing.T) {
	sb := &seekBuf{}
	s := New(sb)
	if err := s.PutU16LE(0xABCD); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(sb.b, []byte{0xCD, 0xAB}) {
		t.Fatalf("got % x", sb.b)
	}
}

func TestPutU32LERoundTrip(t *testing.T) {
	sb := &seekBuf{}
	s := New(sb)
	if err := s.PutU32LE(0x01020304); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(sb.b, []byte{0x04, 0x03, 0x02, 0x01}) {
		t.Fatalf("got % x", sb.b)
	}
}

func TestPutFourCCRejectsWrongLength(t *testing.T) {
	sb := &seekBuf{}
	s := New(sb)
	if err := s.PutFourCC("abc"); err == nil {
		t.Fatal("expected error for 3-byte fourcc")
	}
}

func TestPutSamplesLERejectsBadWidth(t *testing.T) {
	sb := &seekBuf{}
	s := New(sb)
	if _, err := s.PutSamplesLE([]byte{1, 2, 3, 4}, 4, 1); err == nil {
		t.Fatal("expected error for unsupported sample width")
	}
}

func TestPutSamplesLEWidth2(t *testing.T) {
	sb := &seekBuf{}
	s := New(sb)
	buf := []byte{0x01, 0x02, 0x03, 0x04}
	n, err := s.PutSamplesLE(buf, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("n = %d", n)
	}
	if !bytes.Equal(sb.b, buf) {
		t.Fatalf("got % x", sb.b)
	}
}

func TestPutSamplesLEOverflow(t *testing.T) {
	sb := &seekBuf{}
	s := New(sb)
	if _, err := s.PutSamplesLE([]byte{1, 2}, 2, 5); err == nil {
		t.Fatal("expected overflow error")
	}
}

func TestLengthFieldBackpatch(t *testing.T) {
	sb := &seekBuf{}
	s := New(sb)
	if err := s.PutFourCC("LIST"); err != nil {
		t.Fatal(err)
	}
	if err := s.BeginLengthField(); err != nil {
		t.Fatal(err)
	}
	if err := s.PutFourCC("abcd"); err != nil {
		t.Fatal(err)
	}
	if err := s.PutU32LE(0x11223344); err != nil {
		t.Fatal(err)
	}
	if err := s.EndLengthField(); err != nil {
		t.Fatal(err)
	}

	// Chunk payload after the length field is 8 bytes ("abcd" + u32).
	if got := sb.b[4:8]; !bytes.Equal(got, []byte{8, 0, 0, 0}) {
		t.Fatalf("length field = % x", got)
	}
	pos, _ := s.Tell()
	if pos != 16 {
		t.Fatalf("final position = %d, want 16", pos)
	}
}

func TestLengthFieldOddPayloadPadsPosition(t *testing.T) {
	sb := &seekBuf{}
	s := New(sb)
	if err := s.BeginLengthField(); err != nil {
		t.Fatal(err)
	}
	if err := s.PutBytes([]byte{1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	if err := s.EndLengthField(); err != nil {
		t.Fatal(err)
	}
	pos, _ := s.Tell()
	// 4 (field) + 3 (payload) = 7, odd -> caller-visible cursor moves to 8.
	if pos != 8 {
		t.Fatalf("final position = %d, want 8", pos)
	}
}
