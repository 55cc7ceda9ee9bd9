package token

import (
	"bytes"
	"errors"
	"unicode/utf8"
)

var (
	errEmptySymbol   = errors.New("empty symbol")
	errInvalidSymbol = errors.New("symbol is not valid utf-8")
)

// ParseBytes32Symbol decodes a symbol stored as a right-padded bytes32. The
// string ends at the first zero byte; a word without one uses all 32 bytes.
func ParseBytes32Symbol(word [32]byte) (string, error) {
	b := word[:]
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	if len(b) == 0 {
		return "", errEmptySymbol
	}
	if !utf8.Valid(b) {
		return "", errInvalidSymbol
	}
	return string(b), nil
}
