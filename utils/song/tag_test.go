package song

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/BYT0723/opuscover/utils/song/opus"
	"github.com/BYT0723/opuscover/utils/song/picture"
	"github.com/BYT0723/opuscover/utils/testsupport"
	"github.com/gofrs/flock"
)

func TestReplaceCoverOpus(t *testing.T) {
	fpath := testsupport.Opus{Vendor: "libopus 1.4"}.Write(t)
	cover := testsupport.WriteJPEG(t, t.TempDir(), 1024)

	if err := ReplaceCover(fpath, cover); err != nil {
		t.Fatalf("ReplaceCover: %v", err)
	}

	f, err := opus.ParseFile(fpath)
	if err != nil {
		t.Fatal(err)
	}
	values := f.Pictures()
	if len(values) != 1 {
		t.Fatalf("expected 1 picture, got %d", len(values))
	}
	pic, err := picture.Decode(values[0])
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(pic.ImageData, testsupport.JPEG(1024)) {
		t.Fatal("embedded picture differs from cover file")
	}
}

func TestReplaceCoverMissingImage(t *testing.T) {
	fpath := testsupport.Opus{Vendor: "libopus 1.4"}.Write(t)
	before, err := os.ReadFile(fpath)
	if err != nil {
		t.Fatal(err)
	}

	err = ReplaceCover(fpath, filepath.Join(t.TempDir(), "missing.jpg"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}

	after, err := os.ReadFile(fpath)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(before, after) {
		t.Fatal("audio file was modified")
	}
}

func TestReplaceCoverMissingAudio(t *testing.T) {
	dir := t.TempDir()
	fpath := filepath.Join(dir, "track.opus")
	cover := testsupport.WriteJPEG(t, dir, 16)

	if err := ReplaceCover(fpath, cover); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
	if _, err := os.Stat(fpath); !errors.Is(err, fs.ErrNotExist) {
		t.Fatal("missing audio file was created")
	}
}

func TestReplaceCoverNotOpus(t *testing.T) {
	dir := t.TempDir()
	fpath := filepath.Join(dir, "track.opus")
	if err := os.WriteFile(fpath, []byte("just some text\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := ReplaceCover(fpath, testsupport.WriteJPEG(t, dir, 16))
	if !errors.Is(err, opus.ErrNotOpus) {
		t.Fatalf("expected opus.ErrNotOpus, got %v", err)
	}
}

func TestReplaceCoverUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	fpath := filepath.Join(dir, "track.wav")
	if err := os.WriteFile(fpath, []byte("RIFF"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := ReplaceCover(fpath, testsupport.WriteJPEG(t, dir, 16))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestReplaceCoverBusy(t *testing.T) {
	fpath := testsupport.Opus{Vendor: "libopus 1.4"}.Write(t)

	held := flock.New(fpath, flock.SetFlag(os.O_RDONLY))
	locked, err := held.TryLock()
	if err != nil || !locked {
		t.Fatalf("could not take test lock: locked=%v err=%v", locked, err)
	}
	defer held.Unlock()

	err = ReplaceCover(fpath, testsupport.WriteJPEG(t, t.TempDir(), 16))
	if !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}
}

func TestHandlerFor(t *testing.T) {
	for path, want := range map[string]TagHandler{
		"a/b/track.opus": opus.CoverHandler{},
		"TRACK.OPUS":     opus.CoverHandler{},
		"track.ogg":      opus.CoverHandler{},
		"track.oga":      opus.CoverHandler{},
	} {
		got, err := HandlerFor(path)
		if err != nil {
			t.Fatalf("HandlerFor(%q): %v", path, err)
		}
		if got != want {
			t.Errorf("HandlerFor(%q) = %T, want %T", path, got, want)
		}
	}
	for _, path := range []string{"track.flac", "track.mp3"} {
		if _, err := HandlerFor(path); err != nil {
			t.Errorf("HandlerFor(%q): %v", path, err)
		}
	}
	if _, err := HandlerFor("notes.txt"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat for notes.txt, got %v", err)
	}
}

func TestReplaceCoverOggExtension(t *testing.T) {
	dir := t.TempDir()
	fpath := filepath.Join(dir, "track.ogg")
	if err := os.WriteFile(fpath, testsupport.Opus{Vendor: "libopus 1.4"}.Bytes(t), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := ReplaceCover(fpath, testsupport.WriteJPEG(t, dir, 512)); err != nil {
		t.Fatalf("ReplaceCover: %v", err)
	}

	f, err := opus.ParseFile(fpath)
	if err != nil {
		t.Fatal(err)
	}
	if n := len(f.Pictures()); n != 1 {
		t.Fatalf("expected 1 picture, got %d", n)
	}
}
