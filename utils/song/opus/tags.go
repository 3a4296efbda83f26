package opus

import (
	"strings"

	"github.com/BYT0723/opuscover/utils/song/picture"
)

func splitComment(cmt string) (key, value string, ok bool) {
	return strings.Cut(cmt, "=")
}

// Pictures returns every METADATA_BLOCK_PICTURE value in comment order.
func (f *File) Pictures() (values []string) {
	for _, cmt := range f.Tags.Comments {
		if k, v, ok := splitComment(cmt); ok && strings.EqualFold(k, picture.Field) {
			values = append(values, v)
		}
	}
	return
}

// RemovePictures drops all picture fields and reports how many were removed.
// Field names compare case-insensitively.
func (f *File) RemovePictures() (n int) {
	kept := f.Tags.Comments[:0]
	for _, cmt := range f.Tags.Comments {
		if k, _, ok := splitComment(cmt); ok && strings.EqualFold(k, picture.Field) {
			n++
			continue
		}
		kept = append(kept, cmt)
	}
	f.Tags.Comments = kept
	return
}

// SetPicture makes value the only picture field.
func (f *File) SetPicture(value string) error {
	f.RemovePictures()
	return f.Tags.Add(picture.Field, value)
}
