package colorize

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// LexerName is the registered name of Instructions.
const LexerName = "adhoc-instructions"

// Instructions tokenises normalized instruction text such as
// "VARIABLE_PUSH: foo" or "JUMP_IF_FALSE: Jump:UNK".
var Instructions = lexers.Register(chroma.MustNewLexer(
	&chroma.Config{
		Name:      LexerName,
		Aliases:   []string{"adhoc-diss"},
		Filenames: []string{"*.ad.diss"},
	},
	instructionRules,
))

func instructionRules() chroma.Rules {
	return chroma.Rules{
		"root": {
			{Pattern: `\s+`, Type: chroma.Whitespace, Mutator: nil},
			{Pattern: `Jump:UNK\b`, Type: chroma.NameLabel, Mutator: nil},
			{Pattern: `[A-Z][A-Z0-9_]*:`, Type: chroma.Keyword, Mutator: nil},
			{Pattern: `[A-Z][A-Z0-9_]+\b`, Type: chroma.Keyword, Mutator: nil},
			{Pattern: `"(?:\\.|[^"\\])*"`, Type: chroma.LiteralString, Mutator: nil},
			{Pattern: `'(?:\\.|[^'\\])*'`, Type: chroma.LiteralString, Mutator: nil},
			{Pattern: `-?\d+(?:\.\d+)?`, Type: chroma.LiteralNumber, Mutator: nil},
			{Pattern: `[A-Za-z_][A-Za-z0-9_]*(?==)`, Type: chroma.NameAttribute, Mutator: nil},
			{Pattern: `[A-Za-z_][A-Za-z0-9_]*`, Type: chroma.Name, Mutator: nil},
			{Pattern: `[-+*/%!&^~]`, Type: chroma.Operator, Mutator: nil},
			{Pattern: `[=,.()\[\]{}<>|:;]`, Type: chroma.Punctuation, Mutator: nil},
			{Pattern: `.`, Type: chroma.Text, Mutator: nil},
		},
	}
}
