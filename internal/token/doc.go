// Package token defines the lexical vocabulary of the language: token
// kinds, keyword mapping, and the Token value passed between the lexer
// and the parser.
package token
