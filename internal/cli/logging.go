package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"
)

// newLogger writes diagnostics to w, which must not be the child's stdout.
// Terminals get the styled text format; pipes and CI logs get logfmt.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	formatter := log.LogfmtFormatter
	if writerIsTerminal(w) {
		formatter = log.TextFormatter
	}
	return log.NewWithOptions(w, log.Options{
		Prefix:    "randomtemp",
		Level:     level,
		Formatter: formatter,
	})
}

func writerIsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
