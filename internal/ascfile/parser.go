package ascfile

import (
	"fmt"
	"io"

	"github.com/alecthomas/participle/v2"
)

// Parser wraps a built participle parser for ASCFile.
type Parser struct {
	parser *participle.Parser[ASCFile]
}

// NewParser builds an ASC file parser.
func NewParser() (*Parser, error) {
	p, err := participle.Build[ASCFile](
		participle.Lexer(ASCLexer),
		participle.Elide("Whitespace"),
	)
	if err != nil {
		return nil, fmt.Errorf("ascfile: failed to build parser: %w", err)
	}
	return &Parser{parser: p}, nil
}

// Parse parses an ASC file from r.
func (p *Parser) Parse(r io.Reader) (*ASCFile, error) {
	f, err := p.parser.Parse("", r)
	if err != nil {
		return nil, fmt.Errorf("ascfile: parse error: %w", err)
	}
	return f, nil
}

// ParseString parses an ASC file already held in memory.
func (p *Parser) ParseString(input string) (*ASCFile, error) {
	f, err := p.parser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("ascfile: parse error: %w", err)
	}
	return f, nil
}
