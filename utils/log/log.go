package log

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	Reset = "\033[0m"
	Red   = "\033[31m"
	Green = "\033[32m"
)

var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// colored reports whether w is a terminal that should receive ANSI colors.
func colored(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func paint(w io.Writer, color, msg string) string {
	if !colored(w) {
		return msg
	}
	return color + msg + Reset
}

func Errorf(format string, args ...any) {
	fmt.Fprint(Stderr, paint(Stderr, Red, fmt.Sprintf(format, args...)))
}

func SError(msg string) string {
	return paint(Stdout, Red, msg)
}

func Infof(format string, args ...any) {
	fmt.Fprint(Stdout, paint(Stdout, Green, fmt.Sprintf(format, args...)))
}

func SInfo(msg string) string {
	return paint(Stdout, Green, msg)
}
