// Package entry defines the filesystem entries produced by a walk.
package entry

import (
	"fmt"
	"io/fs"
	"strings"
)

// Kind classifies an entry without following symbolic links.
type Kind uint8

const (
	// Directory is a plain directory.
	Directory Kind = iota + 1
	// File is a regular file.
	File
	// Other covers symbolic links and anything that is neither a file nor a directory.
	Other
)

// Kinds lists every kind in declaration order.
var Kinds = []Kind{Directory, File, Other}

// KindOf resolves the kind from an entry's own mode bits.
func KindOf(mode fs.FileMode) Kind {
	switch {
	case mode&fs.ModeSymlink != 0:
		return Other
	case mode.IsDir():
		return Directory
	case mode.IsRegular():
		return File
	default:
		return Other
	}
}

// Code returns the single-character kind text: d, f or l.
func (k Kind) Code() string {
	switch k {
	case Directory:
		return "d"
	case File:
		return "f"
	case Other:
		return "l"
	default:
		return "?"
	}
}

func (k Kind) String() string {
	switch k {
	case Directory:
		return "directory"
	case File:
		return "file"
	case Other:
		return "other"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// ParseKind converts kind text (d, f or l) into a Kind.
func ParseKind(text string) (Kind, error) {
	code := strings.TrimSpace(text)
	codes := make([]string, len(Kinds))
	for i, k := range Kinds {
		if k.Code() == code {
			return k, nil
		}
		codes[i] = k.Code()
	}
	return 0, fmt.Errorf("invalid entry type %q: must be one of %s", text, strings.Join(codes, ", "))
}

// ParseKinds converts every kind text, stopping at the first invalid one.
func ParseKinds(texts []string) ([]Kind, error) {
	kinds := make([]Kind, 0, len(texts))
	for _, text := range texts {
		k, err := ParseKind(text)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

// Entry is one filesystem object visited during a walk.
type Entry struct {
	// Path is the display path: the root as given, joined with the entry's
	// location beneath it.
	Path  string
	// Name is the final path component.
	Name  string
	Kind  Kind
	Depth int
}
