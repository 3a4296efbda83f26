package opus

import (
	"os"

	"github.com/BYT0723/opuscover/utils/song/picture"
	"github.com/dhowden/tag"
)

type CoverHandler struct{}

func (CoverHandler) CoverExist(fpath string) (exist bool) {
	f, err := os.Open(fpath)
	if err != nil {
		return
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return
	}
	return m.Picture() != nil
}

func (CoverHandler) ReplaceCover(fpath string, cover []byte) (err error) {
	f, err := ParseFile(fpath)
	if err != nil {
		return
	}

	if err = f.SetPicture(picture.Encode(picture.FrontCover(cover))); err != nil {
		return
	}
	return f.Save(fpath)
}
