package path

import (
	"strings"
)

// Parse resolves a path specification into a logical path. Accepted specs:
// string (plain "a/b/c" or grouped "a/((b|c))/(d|d)"), Path, *Path, *Logical,
// []string and nested []interface{} where nil or "" is a placeholder.
func Parse(spec interface{}, options ...Option) (*Logical, error) {
	opts := newOptions(options)
	switch actual := spec.(type) {
	case nil:
		return newLogical(nil, opts)
	case *Logical:
		if actual == nil {
			return newLogical(nil, opts)
		}
		return actual, nil
	case string:
		if strings.ContainsAny(actual, "()|") {
			groups, err := parseNotation(actual, opts)
			if err != nil {
				return nil, err
			}
			return newLogical(groups, opts)
		}
		return newLogical(linear(split(actual, opts.separator)), opts)
	case Path:
		if actual.separator != "" {
			opts.separator = actual.separator
		}
		return newLogical(linear(actual.tokens), opts)
	case *Path:
		if actual == nil {
			return newLogical(nil, opts)
		}
		return Parse(*actual, options...)
	case []string:
		return newLogical(linear(actual), opts)
	case []interface{}:
		groups := make([]Group, 0, len(actual))
		for i, item := range actual {
			node, err := nodeOf(spec, item)
			if err != nil {
				return nil, err
			}
			if node.IsGroup() {
				if len(node.Group) == 0 {
					return nil, malformed(spec, "empty node group at position %d", i)
				}
				groups = append(groups, Group(node.Group))
				continue
			}
			groups = append(groups, Group{node})
		}
		return newLogical(groups, opts)
	}
	return nil, malformed(spec, "unsupported spec type %T", spec)
}

// MustParse is like Parse but panics on error; intended for static itineraries.
func MustParse(spec interface{}, options ...Option) *Logical {
	ret, err := Parse(spec, options...)
	if err != nil {
		panic(err)
	}
	return ret
}

func linear(tokens []string) []Group {
	ret := make([]Group, 0, len(tokens))
	for _, token := range tokens {
		if token == "" {
			continue
		}
		ret = append(ret, Group{Token(token)})
	}
	return ret
}

func nodeOf(spec, item interface{}) (*Node, error) {
	switch actual := item.(type) {
	case nil:
		return Placeholder(), nil
	case string:
		return Token(actual), nil
	case *Node:
		return actual.clone(), nil
	case []string:
		ret := Alternatives()
		for _, token := range actual {
			ret.Group = append(ret.Group, Token(token))
		}
		return ret, nil
	case []interface{}:
		ret := Alternatives()
		for _, child := range actual {
			node, err := nodeOf(spec, child)
			if err != nil {
				return nil, err
			}
			ret.Group = append(ret.Group, node)
		}
		return ret, nil
	}
	return nil, malformed(spec, "invalid token type %T", item)
}
