package decltable

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// tableLexer tokenizes the body of a declarative-table source file.
//
// Grounded on the clickhouseLexer in
// housekeeper's pkg/parser/parser.go:
// the same rule shape (Comment, MultilineComment, String, Number, Ident,
// Punct, Whitespace), reused verbatim since Postgres DDL tokenizes the same
// way at the lexical level. Unlike the teacher, the declarative-table
// parser below consumes the token stream directly with hand-written
// control flow rather than a participle.MustBuild grammar: a DEFAULT
// expression is free-form SQL with no fixed terminator, which does not fit
// a PEG grammar's ordered-choice repetition without ambiguity, whereas a
// bounded token scan reading "until the next recognized keyword" is exact.
var tableLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `--[^\r\n]*`},
	{Name: "MultilineComment", Pattern: `/\*[^*]*\*+([^/*][^*]*\*+)*/`},
	{Name: "String", Pattern: `'([^'\\]|\\.)*'`},
	{Name: "Number", Pattern: `\d+(\.\d+)?`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Punct", Pattern: `>=|<=|<>|!=|[(),.;=+\-*/<>]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// tokenize lexes text and returns its significant tokens, eliding comments
// and whitespace.
func tokenize(text string) ([]lexer.Token, error) {
	lx, err := tableLexer.Lex("", strings.NewReader(text))
	if err != nil {
		return nil, err
	}

	var tokens []lexer.Token
	for {
		tok, err := lx.Next()
		if err != nil {
			return nil, err
		}
		if tok.EOF() {
			break
		}
		switch tok.Type {
		case tableLexer.Symbols()["Comment"], tableLexer.Symbols()["MultilineComment"], tableLexer.Symbols()["Whitespace"]:
			continue
		}
		tokens = append(tokens, tok)
	}

	return tokens, nil
}
