/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/BYT0723/opuscover/utils/log"
	"github.com/BYT0723/opuscover/utils/song"
	"github.com/BYT0723/opuscover/utils/song/opus"
	"github.com/BYT0723/opuscover/utils/song/picture"
	"github.com/dhowden/tag"
	"github.com/spf13/cobra"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <audio-file>",
	Short: "list the cover art embedded in an audio file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return showCovers(cmd.OutOrStdout(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func showCovers(w io.Writer, fpath string) error {
	h, err := song.HandlerFor(fpath)
	if err != nil {
		return err
	}

	m, err := readTags(fpath)
	_, isOpus := h.(opus.CoverHandler)
	switch {
	case err == nil:
		fmt.Fprintf(w, "%s: %s %s\n", fpath, m.FileType(), m.Format())
	case !isOpus:
		return fmt.Errorf("read tags of %s: %w", fpath, err)
	}

	if h.CoverExist(fpath) {
		fmt.Fprintf(w, "cover: %s\n", log.SInfo("yes"))
	} else {
		fmt.Fprintf(w, "cover: %s\n", log.SError("no"))
	}

	if isOpus {
		return showOpusCovers(w, fpath)
	}
	p := m.Picture()
	if p == nil {
		fmt.Fprintln(w, "pictures: 0")
		return nil
	}
	fmt.Fprintln(w, "pictures: 1")
	fmt.Fprintf(w, "  #0 type=%q mime=%s size=%d\n", p.Type, p.MIMEType, len(p.Data))
	return nil
}

// showOpusCovers lists every picture field, not only the first one.
func showOpusCovers(w io.Writer, fpath string) error {
	f, err := opus.ParseFile(fpath)
	if err != nil {
		return err
	}

	values := f.Pictures()
	fmt.Fprintf(w, "pictures: %d\n", len(values))
	for i, v := range values {
		pic, err := picture.Decode(v)
		if err != nil {
			fmt.Fprintf(w, "  #%d %s\n", i, log.SError(err.Error()))
			continue
		}
		fmt.Fprintf(w, "  #%d type=%d mime=%s size=%d\n", i, pic.PictureType, pic.MIME, len(pic.ImageData))
	}
	return nil
}

func readTags(fpath string) (tag.Metadata, error) {
	f, err := os.Open(fpath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return tag.ReadFrom(f)
}
