package ogg

var crcTable = newCRCTable(0x04c11db7)

func newCRCTable(poly uint32) (t [256]uint32) {
	for i := range t {
		r := uint32(i) << 24
		for j := 0; j < 8; j++ {
			if r&0x80000000 != 0 {
				r = r<<1 ^ poly
			} else {
				r <<= 1
			}
		}
		t[i] = r
	}
	return
}

// "unreflected" crc used by libogg, computed with the checksum field zeroed
func crc32(p []byte) uint32 {
	c := uint32(0)
	for i, n := range p {
		if i >= 22 && i < 26 {
			n = 0
		}
		c = crcTable[byte(c>>24)^n] ^ (c << 8)
	}
	return c
}
