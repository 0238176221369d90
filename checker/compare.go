// Package checker decides whether a contestant's output matches the
// reference answer. Only whitespace at the very end of the text is ignored.
package checker

import "strings"

// trailingSpace is the C isspace set.
const trailingSpace = " \t\r\n\v\f"

// Compare drains both streams completely and then compares their
// normalized text.
func Compare(answer, output Stream) Verdict {
	expected := Normalize(answer)
	received := Normalize(output)

	if expected == received {
		return accepted()
	}
	return wrongAnswer()
}

// Normalize joins every line of s with '\n' and strips trailing whitespace.
func Normalize(s Stream) string {
	var b strings.Builder
	first := true
	for s.Scan() {
		if !first {
			b.WriteByte('\n')
		}
		b.WriteString(s.Text())
		first = false
	}
	return strings.TrimRight(b.String(), trailingSpace)
}

// NormalizeString is Normalize over in-memory text.
func NormalizeString(text string) string {
	return Normalize(StringStream(text))
}
