package pyast

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a Python grammar version (major.minor).
type Version struct {
	Major int
	Minor int
}

// Grammar versions that gate syntax features.
//
//nolint:gochecknoglobals // Read-only version constants.
var (
	// Latest is the newest grammar this parser understands.
	Latest = Version{Major: 3, Minor: 13}

	// Oldest is the oldest grammar with end line information in CPython's ast.
	Oldest = Version{Major: 3, Minor: 8}

	versionMatch      = Version{Major: 3, Minor: 10}
	versionExceptStar = Version{Major: 3, Minor: 11}
)

// ParseVersion parses "3.12" style version strings. An empty string yields Latest.
func ParseVersion(s string) (Version, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Latest, nil
	}

	majorStr, minorStr, ok := strings.Cut(s, ".")
	if !ok {
		return Version{}, fmt.Errorf("invalid python version %q: want MAJOR.MINOR", s)
	}

	major, err := strconv.Atoi(majorStr)
	if err != nil {
		return Version{}, fmt.Errorf("invalid python version %q: %w", s, err)
	}
	minor, err := strconv.Atoi(minorStr)
	if err != nil {
		return Version{}, fmt.Errorf("invalid python version %q: %w", s, err)
	}

	v := Version{Major: major, Minor: minor}
	if v.Less(Oldest) {
		return Version{}, fmt.Errorf("unsupported python version %s: need %s or newer", v, Oldest)
	}
	return v, nil
}

// Less reports whether v is older than other.
func (v Version) Less(other Version) bool {
	if v.Major != other.Major {
		return v.Major < other.Major
	}
	return v.Minor < other.Minor
}

// String returns "MAJOR.MINOR".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// SupportsMatch reports whether match statements exist in this grammar.
func (v Version) SupportsMatch() bool {
	return !v.Less(versionMatch)
}

// SupportsExceptStar reports whether except* clauses exist in this grammar.
func (v Version) SupportsExceptStar() bool {
	return !v.Less(versionExceptStar)
}
