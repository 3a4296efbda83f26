package ogg

// Paginate lays a complete packet out over as many pages as its lacing values
// need. Pages are numbered from seq. The last page carries granule, earlier
// pages carry -1 since no packet finishes on them.
func Paginate(packet []byte, serial, seq uint32, granule int64) []*Page {
	lacing := make([]byte, 0, len(packet)/maxSegSize+1)
	for n := len(packet); ; n -= maxSegSize {
		if n < maxSegSize {
			lacing = append(lacing, byte(n))
			break
		}
		lacing = append(lacing, maxSegSize)
	}

	var (
		pages []*Page
		off   int
	)
	for len(lacing) > 0 {
		segs := lacing[:min(len(lacing), maxSegs)]
		lacing = lacing[len(segs):]

		size := 0
		for _, n := range segs {
			size += int(n)
		}
		p := &Page{
			Granule:  -1,
			Serial:   serial,
			Sequence: seq + uint32(len(pages)),
			Segments: append([]byte(nil), segs...),
			Body:     packet[off : off+size],
		}
		if len(pages) > 0 {
			p.Flags |= COP
		}
		off += size
		pages = append(pages, p)
	}
	pages[len(pages)-1].Granule = granule
	return pages
}

// Join reassembles consecutive packets from pages, following continuation
// across page boundaries. A trailing packet still open on the last page is
// dropped and reported through partial.
func Join(pages []*Page) (packets [][]byte, partial bool) {
	var cur []byte
	open := false
	for _, p := range pages {
		frags, cont := p.Packets()
		for i, f := range frags {
			if i == 0 && open {
				cur = append(cur, f...)
			} else {
				cur = append([]byte(nil), f...)
			}
			open = true
			if i < len(frags)-1 || !cont {
				packets = append(packets, cur)
				cur, open = nil, false
			}
		}
	}
	return packets, open
}
