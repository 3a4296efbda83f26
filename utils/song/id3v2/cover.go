package id3v2

import (
	"github.com/BYT0723/opuscover/utils/song/picture"
	"github.com/bogem/id3v2"
)

type CoverHandler struct{}

func (CoverHandler) CoverExist(fpath string) (exist bool) {
	t, err := id3v2.Open(fpath, id3v2.Options{Parse: true})
	if err != nil {
		return
	}
	defer t.Close()

	pics := t.GetFrames(t.CommonID("Attached picture"))

	return len(pics) != 0
}

func (CoverHandler) ReplaceCover(fpath string, cover []byte) (err error) {
	t, err := id3v2.Open(fpath, id3v2.Options{Parse: true})
	if err != nil {
		return err
	}
	defer t.Close()

	// APIC frames, all of them
	t.DeleteFrames(t.CommonID("Attached picture"))
	t.AddAttachedPicture(id3v2.PictureFrame{
		Encoding:    id3v2.EncodingUTF8,
		MimeType:    picture.MimeJPEG,
		PictureType: id3v2.PTFrontCover,
		Picture:     cover,
	})
	return t.Save()
}
