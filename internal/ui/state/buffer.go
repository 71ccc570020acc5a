package state

import "unicode"

// AppendText appends printable text to an input buffer.
func AppendText(buf, text string) string {
	if text == "" {
		return buf
	}
	return buf + text
}

// DeleteRuneBackward removes the last rune of the buffer.
func DeleteRuneBackward(buf string) (string, bool) {
	runes := []rune(buf)
	if len(runes) == 0 {
		return buf, false
	}
	return string(runes[:len(runes)-1]), true
}

// DeleteWordBackward removes trailing whitespace and the word before it.
func DeleteWordBackward(buf string) (string, bool) {
	runes := []rune(buf)
	if len(runes) == 0 {
		return buf, false
	}
	i := len(runes)
	for i > 0 && unicode.IsSpace(runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(runes[i-1]) {
		i--
	}
	return string(runes[:i]), true
}
