package utils

import "unicode"

// CountWords counts the maximal runs of non-whitespace runes in s. Punctuation stays with the word it's
// attached to, so "Hello, world!" is two words.
func CountWords(s string) int {
	count := 0
	inWord := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inWord = false
			continue
		}
		if !inWord {
			count++
			inWord = true
		}
	}
	return count
}

// CountWordsValue counts the words in a string, []byte or []rune.
func CountWordsValue(v interface{}) (int, error) {
	s, err := asText("count words", v)
	if err != nil {
		return 0, err
	}
	return CountWords(s), nil
}
