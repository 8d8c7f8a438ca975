package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const DefaultFilePrefix = "jigsaw_"

// Appender appends export lines for a symbol.
type Appender interface {
	Append(symbol string, l Line) error
}

// FileAppender writes each symbol to <Dir>/<Prefix><symbol>.txt. Every call
// opens the file for append, writes one line and closes it again, so readers
// can tail or truncate the file between writes.
type FileAppender struct {
	Dir    string
	Prefix string
}

func NewFileAppender(dir string) *FileAppender {
	return &FileAppender{Dir: dir, Prefix: DefaultFilePrefix}
}

// Path returns the file a symbol is written to.
func (a *FileAppender) Path(symbol string) string {
	return filepath.Join(a.Dir, a.Prefix+sanitizeSymbol(symbol)+".txt")
}

func (a *FileAppender) Append(symbol string, l Line) error {
	if err := l.Validate(); err != nil {
		return fmt.Errorf("export line: %w", err)
	}
	f, err := os.OpenFile(a.Path(symbol), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	if _, err := f.Write(l.Bytes()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// sanitizeSymbol keeps symbols like "ESZ5.CME" readable while making sure
// they cannot leave the export directory.
func sanitizeSymbol(symbol string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, strings.TrimSpace(symbol))
}
