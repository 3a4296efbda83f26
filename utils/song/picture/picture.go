// Package picture builds and decodes METADATA_BLOCK_PICTURE values, the FLAC
// picture block as carried base64-encoded inside vorbis comments.
package picture

import (
	"encoding/base64"
	"fmt"

	"github.com/go-flac/flacpicture/v2"
	"github.com/go-flac/go-flac/v2"
)

// Field is the vorbis comment key holding picture blocks.
const Field = "METADATA_BLOCK_PICTURE"

const MimeJPEG = "image/jpeg"

// FrontCover wraps raw JPEG bytes in a front cover picture block. The image is
// not decoded, so dimensions and colour fields stay zero.
func FrontCover(data []byte) *flacpicture.MetadataBlockPicture {
	return &flacpicture.MetadataBlockPicture{
		PictureType: flacpicture.PictureTypeFrontCover,
		MIME:        MimeJPEG,
		ImageData:   data,
	}
}

// Encode serializes pic and returns it as a base64 comment value.
func Encode(pic *flacpicture.MetadataBlockPicture) string {
	mdb := pic.Marshal()
	return base64.StdEncoding.EncodeToString(mdb.Data)
}

// Decode parses a base64 comment value back into a picture block.
func Decode(value string) (*flacpicture.MetadataBlockPicture, error) {
	raw, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("decode picture field: %w", err)
	}
	pic, err := flacpicture.ParseFromMetaDataBlock(flac.MetaDataBlock{
		Type: flac.Picture,
		Data: raw,
	})
	if err != nil {
		return nil, fmt.Errorf("parse picture block: %w", err)
	}
	return pic, nil
}
