package lexer

import "unicode"

func isDec(b byte) bool { return b >= '0' && b <= '9' }

func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// Identifiers may contain `-` after the first character, which is what
// makes spellings like ref-mut single tokens.
func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDec(b) || b == '-'
}

func isIdentStartRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentContinueRune(r rune) bool {
	return isIdentStartRune(r) || unicode.IsDigit(r) || r == '-'
}
