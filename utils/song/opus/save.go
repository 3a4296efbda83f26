package opus

import (
	"bufio"
	"os"
	"path/filepath"

	"github.com/BYT0723/opuscover/utils/ogg"
)

// writeAtomic writes pages to a sibling temp file and renames it over fpath,
// so a failed write leaves the original untouched. A symlinked fpath keeps
// pointing at the rewritten target.
func writeAtomic(fpath string, pages []*ogg.Page) (err error) {
	if fpath, err = filepath.EvalSymlinks(fpath); err != nil {
		return err
	}
	info, err := os.Stat(fpath)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(fpath), "."+filepath.Base(fpath)+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	w := bufio.NewWriter(tmp)
	for _, p := range pages {
		if _, err = p.WriteTo(w); err != nil {
			return err
		}
	}
	if err = w.Flush(); err != nil {
		return err
	}
	if err = tmp.Chmod(info.Mode().Perm()); err != nil {
		return err
	}
	if err = chown(tmp, info); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), fpath)
}
