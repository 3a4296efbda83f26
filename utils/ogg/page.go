package ogg

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const (
	headerSize = 27
	maxSegSize = 255
	maxSegs    = 255
)

// Header type flags.
const (
	// Continuation of packet
	COP byte = 1 << iota
	// Beginning of stream
	BOS
	// End of stream
	EOS
)

var (
	ErrBadPage = errors.New("ogg: invalid page header")
	ErrBadCRC  = errors.New("ogg: page checksum mismatch")
)

var capturePattern = []byte("OggS")

// The byte order of integers in ogg page headers.
var byteOrder = binary.LittleEndian

// Page is a single ogg page. Segments holds the lacing table, Body the
// concatenated segment data.
type Page struct {
	Flags    byte
	Granule  int64
	Serial   uint32
	Sequence uint32
	Segments []byte
	Body     []byte
}

// ReadPage reads one page from r and verifies its checksum.
func ReadPage(r io.Reader) (*Page, error) {
	var hdr [headerSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, err
	}
	if !bytes.Equal(hdr[0:4], capturePattern) || hdr[4] != 0 {
		return nil, ErrBadPage
	}

	p := &Page{
		Flags:    hdr[5],
		Granule:  int64(byteOrder.Uint64(hdr[6:14])),
		Serial:   byteOrder.Uint32(hdr[14:18]),
		Sequence: byteOrder.Uint32(hdr[18:22]),
		Segments: make([]byte, hdr[26]),
	}
	crc := byteOrder.Uint32(hdr[22:26])

	if _, err := io.ReadFull(r, p.Segments); err != nil {
		return nil, unexpected(err)
	}
	size := 0
	for _, n := range p.Segments {
		size += int(n)
	}
	p.Body = make([]byte, size)
	if _, err := io.ReadFull(r, p.Body); err != nil {
		return nil, unexpected(err)
	}

	if sum := p.checksum(); sum != crc {
		return nil, fmt.Errorf("%w: page %d of stream %08x", ErrBadCRC, p.Sequence, p.Serial)
	}
	return p, nil
}

// ReadPages reads pages until r is exhausted.
func ReadPages(r io.Reader) (pages []*Page, err error) {
	for {
		p, err := ReadPage(r)
		if err == io.EOF {
			return pages, nil
		}
		if err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}
}

// MarshalBinary encodes the page, filling in a fresh checksum.
func (p *Page) MarshalBinary() ([]byte, error) {
	if len(p.Segments) > maxSegs {
		return nil, fmt.Errorf("ogg: %d segments exceed page limit", len(p.Segments))
	}
	b := p.encode()
	byteOrder.PutUint32(b[22:26], crc32(b))
	return b, nil
}

// WriteTo writes the encoded page to w.
func (p *Page) WriteTo(w io.Writer) (int64, error) {
	b, err := p.MarshalBinary()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(b)
	return int64(n), err
}

// Packets splits the page body into packet fragments. partial reports that the
// last fragment has no terminating lacing value and continues on the next page.
func (p *Page) Packets() (packets [][]byte, partial bool) {
	var (
		off   int
		start int
	)
	for i, n := range p.Segments {
		off += int(n)
		if n < maxSegSize {
			packets = append(packets, p.Body[start:off])
			start = off
			continue
		}
		if i == len(p.Segments)-1 {
			packets = append(packets, p.Body[start:off])
			partial = true
		}
	}
	return
}

func (p *Page) encode() []byte {
	b := make([]byte, headerSize, headerSize+len(p.Segments)+len(p.Body))
	copy(b[0:4], capturePattern)
	b[5] = p.Flags
	byteOrder.PutUint64(b[6:14], uint64(p.Granule))
	byteOrder.PutUint32(b[14:18], p.Serial)
	byteOrder.PutUint32(b[18:22], p.Sequence)
	b[26] = byte(len(p.Segments))
	b = append(b, p.Segments...)
	return append(b, p.Body...)
}

func (p *Page) checksum() uint32 {
	return crc32(p.encode())
}

func unexpected(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
