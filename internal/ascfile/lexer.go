package ascfile

import "github.com/alecthomas/participle/v2/lexer"

// ASCLexer tokenizes the line-oriented ASC netlist format: section
// markers like "*PART*" or "*SIGNAL*", bare words (refdeses, part types,
// "RefDes.Pin" tokens), and newlines, which are significant here because
// the grammar is defined line by line.
var ASCLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "EOL", Pattern: `\r?\n`},
	{Name: "Whitespace", Pattern: `[ \t]+`},
	{Name: "Section", Pattern: `\*[A-Za-z0-9_]+\*`},
	{Name: "Word", Pattern: `[^\s]+`},
})
