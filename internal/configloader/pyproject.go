package configloader

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// pyprojectDoc is the subset of pyproject.toml read by pytidy.
type pyprojectDoc struct {
	Tool struct {
		Pytidy Layer `toml:"pytidy"`
	} `toml:"tool"`
}

// loadPyproject reads the [tool.pytidy] table. It returns a nil layer when
// the table is absent. Unknown keys inside the table are reported as warnings.
func loadPyproject(path string) (*Layer, []string, error) {
	var doc pyprojectDoc
	meta, err := toml.DecodeFile(path, &doc)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("tool", "pytidy") {
		return nil, nil, nil
	}

	var warnings []string
	for _, key := range meta.Undecoded() {
		if len(key) > 2 && key[0] == "tool" && key[1] == "pytidy" {
			warnings = append(warnings,
				fmt.Sprintf("%s: unknown key %q in [tool.pytidy]", path, strings.Join(key[2:], ".")))
		}
	}

	layer := doc.Tool.Pytidy
	return &layer, warnings, nil
}

// hasToolSection reports whether a pyproject.toml carries [tool.pytidy].
func hasToolSection(path string) (bool, error) {
	var doc pyprojectDoc
	meta, err := toml.DecodeFile(path, &doc)
	if err != nil {
		return false, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	return meta.IsDefined("tool", "pytidy"), nil
}
