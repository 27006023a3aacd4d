package lint

import (
	"bytes"

	"github.com/yaklabco/pytidy/pkg/spacer"
)

// insertBlankLines returns content with an empty line inserted after each
// target line. Lines are split the way spacer.SplitLines splits them; every
// inserted line reuses the line break of the line it follows, so all other
// bytes are kept as they are.
func insertBlankLines(content []byte, targets *spacer.TargetSet) []byte {
	if targets.Len() == 0 {
		return content
	}

	var out bytes.Buffer
	out.Grow(len(content) + 2*targets.Len())

	line, start := 0, 0
	for pos := 0; pos < len(content); pos++ {
		var brk []byte
		switch content[pos] {
		case '\n':
			brk = content[pos : pos+1]
		case '\r':
			if pos+1 < len(content) && content[pos+1] == '\n' {
				brk = content[pos : pos+2]
			} else {
				brk = content[pos : pos+1]
			}
		default:
			continue
		}

		pos += len(brk) - 1
		out.Write(content[start : pos+1])
		if targets.Has(line) {
			out.Write(brk)
		}
		start = pos + 1
		line++
	}
	out.Write(content[start:])

	return out.Bytes()
}
