// Package opus rewrites the comment header of Ogg/Opus files.
//
// Only the OpusTags packet is touched. Every other page is copied through,
// with sequence numbers of the same logical stream shifted when the comment
// header grows or shrinks by whole pages.
package opus

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/BYT0723/opuscover/utils/ogg"
	"github.com/go-flac/flacvorbis/v2"
)

var (
	ErrNotOpus   = errors.New("not a valid Ogg/Opus stream")
	errTruncated = errors.New("truncated comment header")
)

var (
	headMagic = []byte("OpusHead")
	tagsMagic = []byte("OpusTags")
)

// File is a parsed Ogg/Opus stream held in memory.
type File struct {
	Tags *flacvorbis.MetaDataBlockVorbisComment

	pages    []*ogg.Page
	serial   uint32
	tagPages []int
	// binary data following the comment list, kept only when flagged for
	// preservation
	extra []byte
}

func ParseFile(fpath string) (*File, error) {
	f, err := os.Open(fpath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Parse(bufio.NewReader(f))
}

func Parse(r io.Reader) (*File, error) {
	pages, err := ogg.ReadPages(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotOpus, err)
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrNotOpus)
	}

	head := pages[0]
	if head.Flags&ogg.BOS == 0 {
		return nil, fmt.Errorf("%w: first page does not begin a stream", ErrNotOpus)
	}
	packets, partial := head.Packets()
	if len(packets) == 0 || !bytes.HasPrefix(packets[0], headMagic) {
		return nil, fmt.Errorf("%w: missing OpusHead", ErrNotOpus)
	}
	if len(packets) > 1 || partial {
		return nil, fmt.Errorf("%w: OpusHead does not end its page", ErrNotOpus)
	}

	file := &File{pages: pages, serial: head.Serial}

	var (
		collected []*ogg.Page
		packet    []byte
	)
	for i := 1; i < len(pages) && packet == nil; i++ {
		if pages[i].Serial != file.serial {
			continue
		}
		collected = append(collected, pages[i])
		file.tagPages = append(file.tagPages, i)

		packets, partial := ogg.Join(collected)
		switch {
		case len(packets) == 0:
			continue
		case len(packets) > 1 || partial:
			return nil, fmt.Errorf("%w: OpusTags does not end its page", ErrNotOpus)
		}
		packet = packets[0]
	}
	if packet == nil {
		return nil, fmt.Errorf("%w: missing OpusTags", ErrNotOpus)
	}
	if !bytes.HasPrefix(packet, tagsMagic) {
		return nil, fmt.Errorf("%w: second packet is not OpusTags", ErrNotOpus)
	}

	if err := file.parseTags(packet[len(tagsMagic):]); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotOpus, err)
	}
	return file, nil
}

func (f *File) parseTags(body []byte) error {
	cmts, used, err := readComments(body)
	if err != nil {
		return err
	}
	if rest := body[used:]; len(rest) > 0 && rest[0]&1 == 1 {
		f.extra = append([]byte(nil), rest...)
	}
	f.Tags = cmts
	return nil
}

// readComments decodes the vendor string and comment list, checking every
// length against what is left of body before allocating. It returns the
// number of bytes the list occupies.
func readComments(body []byte) (*flacvorbis.MetaDataBlockVorbisComment, int, error) {
	off := 0
	next := func() (string, error) {
		if len(body)-off < 4 {
			return "", errTruncated
		}
		n := binary.LittleEndian.Uint32(body[off:])
		off += 4
		if uint64(n) > uint64(len(body)-off) {
			return "", errTruncated
		}
		s := string(body[off : off+int(n)])
		off += int(n)
		return s, nil
	}

	vendor, err := next()
	if err != nil {
		return nil, 0, err
	}
	if len(body)-off < 4 {
		return nil, 0, errTruncated
	}
	count := binary.LittleEndian.Uint32(body[off:])
	off += 4
	// each comment needs at least its length field
	if uint64(count) > uint64(len(body)-off)/4 {
		return nil, 0, fmt.Errorf("%d comments do not fit in %d bytes", count, len(body)-off)
	}

	cmts := &flacvorbis.MetaDataBlockVorbisComment{
		Vendor:   vendor,
		Comments: make([]string, 0, count),
	}
	for j := uint32(0); j < count; j++ {
		cmt, err := next()
		if err != nil {
			return nil, 0, err
		}
		cmts.Comments = append(cmts.Comments, cmt)
	}
	return cmts, off, nil
}

// Save re-paginates the comment header and writes the whole stream to fpath.
func (f *File) Save(fpath string) error {
	cmts := f.Tags.Marshal()
	packet := make([]byte, 0, len(tagsMagic)+len(cmts.Data)+len(f.extra))
	packet = append(packet, tagsMagic...)
	packet = append(packet, cmts.Data...)
	packet = append(packet, f.extra...)

	first := f.tagPages[0]
	fresh := ogg.Paginate(packet, f.serial, f.pages[first].Sequence, 0)
	delta := int64(len(fresh)) - int64(len(f.tagPages))

	skip := make(map[int]bool, len(f.tagPages))
	for _, i := range f.tagPages {
		skip[i] = true
	}

	pages := make([]*ogg.Page, 0, len(f.pages)+len(fresh))
	var tagPages []int
	for i, p := range f.pages {
		if i == first {
			for _, fp := range fresh {
				tagPages = append(tagPages, len(pages))
				pages = append(pages, fp)
			}
			continue
		}
		if skip[i] {
			continue
		}
		if i > first && p.Serial == f.serial && delta != 0 {
			q := *p
			q.Sequence = uint32(int64(p.Sequence) + delta)
			p = &q
		}
		pages = append(pages, p)
	}

	if err := writeAtomic(fpath, pages); err != nil {
		return err
	}
	f.pages, f.tagPages = pages, tagPages
	return nil
}
