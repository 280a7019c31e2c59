package path

import (
	"strings"
)

// DefaultSeparator separates tokens in the textual form of a path.
const DefaultSeparator = "/"

// Path is an immutable, ordered sequence of non-empty station tokens.
// The zero value is an empty path using DefaultSeparator.
type Path struct {
	tokens    []string
	separator string
}

// New creates a path by splitting text on the configured separator; empty
// tokens are dropped.
func New(text string, options ...Option) Path {
	opts := newOptions(options)
	return Path{tokens: split(text, opts.separator), separator: opts.separator}
}

// FromTokens creates a path from tokens, dropping empty ones.
func FromTokens(tokens ...string) Path {
	ret := Path{tokens: make([]string, 0, len(tokens))}
	for _, token := range tokens {
		if token == "" {
			continue
		}
		ret.tokens = append(ret.tokens, token)
	}
	return ret
}

func split(text, separator string) []string {
	if text == "" {
		return []string{}
	}
	parts := strings.Split(text, separator)
	ret := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		ret = append(ret, part)
	}
	return ret
}

// Separator returns the separator used by Repr
func (p Path) Separator() string {
	if p.separator == "" {
		return DefaultSeparator
	}
	return p.separator
}

// Len returns number of tokens
func (p Path) Len() int {
	return len(p.tokens)
}

// IsEmpty returns true when the path has no tokens
func (p Path) IsEmpty() bool {
	return len(p.tokens) == 0
}

// At returns the token at index i; it panics when i is out of range, like slice indexing.
func (p Path) At(i int) string {
	return p.tokens[i]
}

// Tokens returns a copy of the path tokens
func (p Path) Tokens() []string {
	ret := make([]string, len(p.tokens))
	copy(ret, p.tokens)
	return ret
}

// Slice returns the sub path [from, to). Bounds are clamped to the path length.
func (p Path) Slice(from, to int) Path {
	if from < 0 {
		from = 0
	}
	if to > len(p.tokens) {
		to = len(p.tokens)
	}
	if from >= to {
		return Path{tokens: []string{}, separator: p.separator}
	}
	return Path{tokens: append([]string(nil), p.tokens[from:to]...), separator: p.separator}
}

// Index returns the index of the first occurrence of token or -1
func (p Path) Index(token string) int {
	for i, candidate := range p.tokens {
		if candidate == token {
			return i
		}
	}
	return -1
}

// IndexFrom returns the index of the first occurrence of token at or after from, or -1
func (p Path) IndexFrom(token string, from int) int {
	if from < 0 {
		from = 0
	}
	for i := from; i < len(p.tokens); i++ {
		if p.tokens[i] == token {
			return i
		}
	}
	return -1
}

// Contains returns true if the path has the token
func (p Path) Contains(token string) bool {
	return p.Index(token) != -1
}

// String renders the path as an arrow chain, e.g. "a -> b -> c"
func (p Path) String() string {
	return strings.Join(p.tokens, " -> ")
}

// Repr renders the path with its separator, e.g. "a/b/c"
func (p Path) Repr() string {
	return strings.Join(p.tokens, p.Separator())
}

// Equal returns true when both paths have the same tokens in the same order
func (p Path) Equal(other Path) bool {
	if len(p.tokens) != len(other.tokens) {
		return false
	}
	for i := range p.tokens {
		if p.tokens[i] != other.tokens[i] {
			return false
		}
	}
	return true
}

// Compare orders paths by token count: -1 when p is shorter, 1 when longer, 0 otherwise.
func (p Path) Compare(other Path) int {
	switch {
	case len(p.tokens) < len(other.tokens):
		return -1
	case len(p.tokens) > len(other.tokens):
		return 1
	}
	return 0
}

// Less reports whether p has fewer tokens than other
func (p Path) Less(other Path) bool {
	return p.Compare(other) < 0
}
