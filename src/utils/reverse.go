package utils

// Reverse returns s with its runes in reverse order. Multi-byte characters are kept intact.
func Reverse(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

// ReverseValue reverses a string, []byte or []rune.
func ReverseValue(v interface{}) (string, error) {
	s, err := asText("reverse", v)
	if err != nil {
		return "", err
	}
	return Reverse(s), nil
}
