package testsupport

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/BYT0723/opuscover/utils/ogg"
	"github.com/go-flac/flacvorbis/v2"
)

const OpusSerial = 0x0badcafe

// Silence is a single 20ms CELT frame.
var Silence = []byte{0xf8, 0xff, 0xfe}

// Opus describes a minimal Ogg/Opus stream: identification header, comment
// header and Audio pages of silence (3 when zero).
type Opus struct {
	Vendor   string
	Comments []string
	// Extra is appended to the comment header after the comment list.
	Extra []byte
	Audio int
}

func opusHead() []byte {
	var b bytes.Buffer
	b.WriteString("OpusHead")
	// version 1, stereo, 312 samples pre-skip, 48kHz, no gain, family 0
	b.WriteByte(1)
	b.WriteByte(2)
	_ = binary.Write(&b, binary.LittleEndian, uint16(312))
	_ = binary.Write(&b, binary.LittleEndian, uint32(48000))
	_ = binary.Write(&b, binary.LittleEndian, int16(0))
	b.WriteByte(0)
	return b.Bytes()
}

func (o Opus) Pages() []*ogg.Page {
	cmts := flacvorbis.New()
	cmts.Vendor = o.Vendor
	cmts.Comments = append(cmts.Comments, o.Comments...)
	body := cmts.Marshal()

	packet := []byte("OpusTags")
	packet = append(packet, body.Data...)
	packet = append(packet, o.Extra...)

	head := opusHead()
	pages := []*ogg.Page{{
		Flags:    ogg.BOS,
		Serial:   OpusSerial,
		Segments: []byte{byte(len(head))},
		Body:     head,
	}}
	pages = append(pages, ogg.Paginate(packet, OpusSerial, 1, 0)...)

	audio := o.Audio
	if audio == 0 {
		audio = 3
	}
	for i := 0; i < audio; i++ {
		p := &ogg.Page{
			Granule:  int64(960 * (i + 1)),
			Serial:   OpusSerial,
			Sequence: uint32(len(pages)),
			Segments: []byte{byte(len(Silence))},
			Body:     Silence,
		}
		if i == audio-1 {
			p.Flags |= ogg.EOS
		}
		pages = append(pages, p)
	}
	return pages
}

// Bytes encodes the stream.
func (o Opus) Bytes(t testing.TB) []byte {
	t.Helper()

	var buf bytes.Buffer
	for _, p := range o.Pages() {
		if _, err := p.WriteTo(&buf); err != nil {
			t.Fatalf("encode opus page: %v", err)
		}
	}
	return buf.Bytes()
}

// Write stores the stream as track.opus in a fresh temp dir and returns its path.
func (o Opus) Write(t testing.TB) string {
	t.Helper()

	fpath := filepath.Join(t.TempDir(), "track.opus")
	if err := os.WriteFile(fpath, o.Bytes(t), 0o644); err != nil {
		t.Fatalf("write %s: %v", fpath, err)
	}
	return fpath
}

// JPEG returns n bytes framed by JPEG SOI and EOI markers. The payload is not
// a decodable image.
func JPEG(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i*31 + 7)
	}
	copy(b, []byte{0xff, 0xd8, 0xff, 0xe0})
	b[n-2], b[n-1] = 0xff, 0xd9
	return b
}

// WriteJPEG stores JPEG(n) under dir and returns its path.
func WriteJPEG(t testing.TB, dir string, n int) string {
	t.Helper()

	fpath := filepath.Join(dir, "cover.jpg")
	if err := os.WriteFile(fpath, JPEG(n), 0o644); err != nil {
		t.Fatalf("write %s: %v", fpath, err)
	}
	return fpath
}
