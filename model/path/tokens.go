package path

import (
	"bytes"

	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

// Token codes start at 1 so that they never collide with parsly.EOF
const (
	whitespaceCode = iota + 1
	openCode
	closeCode
	pipeCode
	separatorCode
	nameCode
)

var (
	whitespaceToken = parsly.NewToken(whitespaceCode, "Whitespace", matcher.NewWhiteSpace())
	openToken       = parsly.NewToken(openCode, "(", matcher.NewByte('('))
	closeToken      = parsly.NewToken(closeCode, ")", matcher.NewByte(')'))
	pipeToken       = parsly.NewToken(pipeCode, "|", matcher.NewByte('|'))
)

func newSeparatorToken(separator string) *parsly.Token {
	return parsly.NewToken(separatorCode, "Separator", matcher.NewFragment(separator))
}

func newNameToken(separator string) *parsly.Token {
	return parsly.NewToken(nameCode, "Name", &nameMatcher{separator: []byte(separator)})
}

// nameMatcher matches a station token up to whitespace, a grouping byte or the separator
type nameMatcher struct {
	separator []byte
}

func (m *nameMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	matched := 0
	for i := cursor.Pos; i < cursor.InputSize; i++ {
		switch input[i] {
		case '(', ')', '|', ' ', '\t', '\n', '\r':
			return matched
		}
		if len(m.separator) > 0 && bytes.HasPrefix(input[i:], m.separator) {
			return matched
		}
		matched++
	}
	return matched
}
