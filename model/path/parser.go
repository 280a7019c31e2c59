package path

import (
	"github.com/viant/parsly"
)

type notationParser struct {
	text      string
	cursor    *parsly.Cursor
	separator *parsly.Token
	name      *parsly.Token
}

// parseNotation parses the grouped textual form, e.g. "load/((left|right#alt))/(merge|merge)".
// A group alternative may be empty, denoting a placeholder, and groups may nest.
func parseNotation(text string, opts *options) ([]Group, error) {
	p := &notationParser{
		text:      text,
		cursor:    parsly.NewCursor("", []byte(text), 0),
		separator: newSeparatorToken(opts.separator),
		name:      newNameToken(opts.separator),
	}
	return p.parse()
}

func (p *notationParser) parse() ([]Group, error) {
	var groups []Group
	cursor := p.cursor
	for {
		match := cursor.MatchAfterOptional(whitespaceToken, openToken, p.name, p.separator)
		switch match.Code {
		case openCode:
			nodes, err := p.parseAlternatives()
			if err != nil {
				return nil, err
			}
			groups = append(groups, Group(nodes))
		case nameCode:
			groups = append(groups, Group{Token(match.Text(cursor))})
		case separatorCode:
			continue
		case parsly.EOF:
			return groups, nil
		default:
			return nil, malformed(p.text, "%v", cursor.NewError(openToken, p.name))
		}

		match = cursor.MatchAfterOptional(whitespaceToken, p.separator)
		switch match.Code {
		case separatorCode:
		case parsly.EOF:
			return groups, nil
		default:
			return nil, malformed(p.text, "%v", cursor.NewError(p.separator))
		}
	}
}

func (p *notationParser) parseAlternatives() ([]*Node, error) {
	cursor := p.cursor
	var nodes []*Node
	for {
		var node *Node
		match := cursor.MatchAfterOptional(whitespaceToken, openToken, p.name, pipeToken, closeToken)
		switch match.Code {
		case openCode:
			children, err := p.parseAlternatives()
			if err != nil {
				return nil, err
			}
			node = Alternatives(children...)
		case nameCode:
			node = Token(match.Text(cursor))
		case pipeCode:
			nodes = append(nodes, Placeholder())
			continue
		case closeCode:
			return append(nodes, Placeholder()), nil
		case parsly.EOF:
			return nil, malformed(p.text, "unterminated group")
		default:
			return nil, malformed(p.text, "%v", cursor.NewError(openToken, p.name, pipeToken, closeToken))
		}
		nodes = append(nodes, node)

		match = cursor.MatchAfterOptional(whitespaceToken, pipeToken, closeToken)
		switch match.Code {
		case pipeCode:
		case closeCode:
			return nodes, nil
		case parsly.EOF:
			return nil, malformed(p.text, "unterminated group")
		default:
			return nil, malformed(p.text, "%v", cursor.NewError(pipeToken, closeToken))
		}
	}
}
