package opus

import (
	"os"
	"testing"

	"github.com/BYT0723/opuscover/utils/ogg"
)

func readPages(t testing.TB, fpath string) []*ogg.Page {
	t.Helper()

	f, err := os.Open(fpath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	pages, err := ogg.ReadPages(f)
	if err != nil {
		t.Fatalf("read pages of %s: %v", fpath, err)
	}
	return pages
}

// audioPackets returns every packet after the two header packets.
func audioPackets(t testing.TB, fpath string) [][]byte {
	t.Helper()

	packets, partial := ogg.Join(readPages(t, fpath))
	if partial {
		t.Fatal("stream ends inside a packet")
	}
	if len(packets) < 2 {
		t.Fatalf("only %d packets in stream", len(packets))
	}
	return packets[2:]
}
