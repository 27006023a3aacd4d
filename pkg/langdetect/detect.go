// Package langdetect decides whether a file is Python when its name alone
// does not say so. It uses go-enry's shebang and extension tables.
package langdetect

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-enry/go-enry/v2"
)

// python is the go-enry name for the language.
const python = "Python"

// HeadSize is the number of leading bytes read to find a shebang.
const HeadSize = 256

// Language returns the go-enry language for a file, preferring the shebang
// line in head over the file extension. It returns "" when neither is
// conclusive.
func Language(path string, head []byte) string {
	if lang, safe := enry.GetLanguageByShebang(head); safe {
		return lang
	}
	if lang, safe := enry.GetLanguageByExtension(path); safe {
		return lang
	}
	return ""
}

// IsPythonScript reports whether head starts with a Python shebang.
func IsPythonScript(head []byte) bool {
	lang, safe := enry.GetLanguageByShebang(head)
	return safe && lang == python
}

// IsPython reports whether path is Python source by shebang or extension.
func IsPython(path string, head []byte) bool {
	return Language(path, head) == python
}

// ReadHead returns up to HeadSize leading bytes of path.
func ReadHead(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	buf := make([]byte, HeadSize)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return buf[:n], nil
}
