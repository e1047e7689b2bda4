// assets/embed.go
//
// Embedded word lists shipped with the binary:
//   - start.txt:      candidate root words (one per line)
//   - dictionary.txt: words the default dictionary accepts (English)
//
// Both files use the same plain format: one word per line, blank lines and
// lines starting with "#" are ignored by the parsers in internal/words.

package assets

import (
	"embed"
	"io"
)

//go:embed start.txt dictionary.txt
var FS embed.FS

// Names of the embedded lists.
const (
	StartFile      = "start.txt"
	DictionaryFile = "dictionary.txt"
)

// Open returns a reader over one of the embedded lists.
func Open(name string) (io.ReadCloser, error) {
	return FS.Open(name)
}
