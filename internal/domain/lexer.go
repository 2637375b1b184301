package domain

import (
	m "meowcode.dev/pkg/meowcode/internal/model"
)

// singletons always form a token of their own.
var singletons = [256]bool{
	'.': true, '{': true, '}': true, '+': true, '$': true, '(': true, ')': true,
	';': true, ',': true, '[': true, ']': true, '<': true, '>': true,
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t'
}

// Tokenize splits lines into tokens. Tokens never span lines, whitespace
// separates tokens and is dropped, and a "//" ends the line.
func Tokenize(lines []string) []m.Token {
	var tokens []m.Token

	for i, line := range lines {
		tokens = tokenizeLine(tokens, line, i)
	}

	return tokens
}

func tokenizeLine(tokens []m.Token, s string, line int) []m.Token {
	emit := func(text string) {
		tokens = append(tokens, m.Token{Text: text, Line: line})
	}

	start := 0
	cur := 0

	for cur < len(s) {
		c := s[cur]

		switch {
		case c == '/' && cur+1 < len(s) && s[cur+1] == '/':
			if cur > start {
				emit(s[start:cur])
			}

			return tokens
		case isBlank(c):
			if cur > start {
				emit(s[start:cur])
			}

			for cur < len(s) && isBlank(s[cur]) {
				cur++
			}

			start = cur
		case singletons[c]:
			if cur > start {
				emit(s[start:cur])
			}

			emit(s[cur : cur+1])
			cur++

			for cur < len(s) && isBlank(s[cur]) {
				cur++
			}

			start = cur
		default:
			cur++
		}
	}

	if start < len(s) {
		emit(s[start:])
	}

	return tokens
}
