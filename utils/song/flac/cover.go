package flac

import (
	"github.com/BYT0723/opuscover/utils/song/picture"
	"github.com/go-flac/go-flac/v2"
)

type CoverHandler struct{}

func (CoverHandler) CoverExist(fpath string) (exist bool) {
	f, err := flac.ParseFile(fpath)
	if err != nil {
		return
	}
	defer f.Close()

	for _, mdb := range f.Meta {
		if mdb.Type == flac.Picture {
			exist = true
			break
		}
	}
	return
}

func (CoverHandler) ReplaceCover(fpath string, cover []byte) (err error) {
	f, err := flac.ParseFile(fpath)
	if err != nil {
		return
	}
	defer f.Close()

	meta := f.Meta[:0]
	for _, mdb := range f.Meta {
		if mdb.Type != flac.Picture {
			meta = append(meta, mdb)
		}
	}

	mdb := picture.FrontCover(cover).Marshal()
	f.Meta = append(meta, &mdb)

	return f.Save(fpath)
}
