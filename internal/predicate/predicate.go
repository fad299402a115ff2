// Package predicate decides which walked entries are reported.
//
// A Set holds two independent groups: name patterns and entry kinds.
// Alternatives within a group are OR'd, the groups are AND'd, and an empty
// group places no restriction on the entry.
package predicate

import (
	"errors"
	"fmt"
	"regexp"
	"slices"

	"github.com/taigrr/findr/internal/entry"
)

// Names is an ordered set of patterns tested against an entry's base name.
type Names []*regexp.Regexp

// Kinds is the set of entry kinds to include.
type Kinds []entry.Kind

// Set is the compiled filter for one invocation. It is read-only once built.
type Set struct {
	Names Names
	Kinds Kinds
}

// PatternError reports a name pattern that failed to compile.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid name pattern %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}

// Build compiles name patterns and collects kinds into a Set.
// Every invalid pattern produces its own PatternError; they are returned
// joined so that all of them can be reported before any traversal starts.
func Build(names []string, kinds []entry.Kind) (Set, error) {
	var set Set
	var errs []error

	for _, pattern := range names {
		re, err := regexp.Compile(pattern)
		if err != nil {
			errs = append(errs, &PatternError{Pattern: pattern, Err: err})
			continue
		}
		set.Names = append(set.Names, re)
	}
	if len(errs) > 0 {
		return Set{}, errors.Join(errs...)
	}

	for _, k := range kinds {
		if !slices.Contains(set.Kinds, k) {
			set.Kinds = append(set.Kinds, k)
		}
	}

	return set, nil
}

// Matches reports whether e passes both groups of s.
func (s Set) Matches(e entry.Entry) bool {
	return Matches(e, s.Names, s.Kinds)
}

// Matches reports whether e passes the name group and the kind group.
func Matches(e entry.Entry, names Names, kinds Kinds) bool {
	return names.Match(e.Name) && kinds.Match(e.Kind)
}

// Match reports whether any pattern matches name. An empty set matches
// everything.
func (n Names) Match(name string) bool {
	if len(n) == 0 {
		return true
	}
	for _, re := range n {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

// Match reports whether k is in the set. An empty set matches every kind.
func (ks Kinds) Match(k entry.Kind) bool {
	if len(ks) == 0 {
		return true
	}
	return slices.Contains(ks, k)
}

// Patterns returns the source text of every compiled pattern.
func (n Names) Patterns() []string {
	patterns := make([]string, len(n))
	for i, re := range n {
		patterns[i] = re.String()
	}
	return patterns
}
