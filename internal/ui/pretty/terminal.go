package pretty

import (
	"io"
	"os"

	"golang.org/x/term"
)

// DefaultTerminalWidth is used when the writer is not a terminal.
const DefaultTerminalWidth = 100

// TerminalWidth returns the column count of the terminal behind writer,
// or DefaultTerminalWidth when it cannot be determined.
func TerminalWidth(writer io.Writer) int {
	f, ok := writer.(*os.File)
	if !ok {
		return DefaultTerminalWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return DefaultTerminalWidth
	}
	return width
}
