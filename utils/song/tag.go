package song

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BYT0723/opuscover/utils/song/flac"
	"github.com/BYT0723/opuscover/utils/song/id3v2"
	"github.com/BYT0723/opuscover/utils/song/opus"
	"github.com/gofrs/flock"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrBusy              = errors.New("file is being modified by another process")
)

type TagHandler interface {
	CoverExist(fpath string) (exist bool)
	// ReplaceCover drops every embedded picture and embeds cover as the
	// front cover.
	ReplaceCover(fpath string, cover []byte) error
}

// .ogg and .oga are common names for Opus streams too; the opus handler
// rejects anything whose first packet is not OpusHead.
var handlers = map[string]TagHandler{
	".opus": opus.CoverHandler{},
	".ogg":  opus.CoverHandler{},
	".oga":  opus.CoverHandler{},
	".flac": flac.CoverHandler{},
	".mp3":  id3v2.CoverHandler{},
}

// HandlerFor picks the tag handler from the file extension.
func HandlerFor(fpath string) (TagHandler, error) {
	ext := strings.ToLower(filepath.Ext(fpath))
	h, ok := handlers[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return h, nil
}

// ReplaceCover embeds the image at coverPath as the only cover of the audio
// file at fpath, rewriting fpath in place.
func ReplaceCover(fpath, coverPath string) error {
	h, err := HandlerFor(fpath)
	if err != nil {
		return err
	}

	cover, err := os.ReadFile(coverPath)
	if err != nil {
		return fmt.Errorf("read cover: %w", err)
	}

	// flock would create a missing file, so check first
	if _, err := os.Stat(fpath); err != nil {
		return fmt.Errorf("open audio: %w", err)
	}

	lock := flock.New(fpath, flock.SetFlag(os.O_RDONLY))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("lock %s: %w", fpath, err)
	}
	if !locked {
		return fmt.Errorf("%w: %s", ErrBusy, fpath)
	}
	defer lock.Unlock()

	if err := h.ReplaceCover(fpath, cover); err != nil {
		return fmt.Errorf("replace cover of %s: %w", fpath, err)
	}
	return nil
}
