package codefmt

import (
	"bytes"
	"strings"
)

// IndentUnit is the indentation of one nesting level in generated code.
const IndentUnit = "    "

// Indent re-indents generated code by its bracket nesting. Every line is
// trimmed and indented by [IndentUnit] per open bracket ({, ( or [) before it.
// Lines starting with closing brackets are dedented first. Predicates between
// a "where" line and the following "{" line are indented one more level.
// Blank lines are kept but runs of them collapse into one.
//
// Generated code never contains brackets inside string or char literals, so
// counting brackets is enough.
func Indent(src []byte) []byte {
	var buf bytes.Buffer
	depth := 0
	blank := false
	where := false

	for line := range strings.Lines(string(src)) {
		line = strings.TrimSpace(line)
		if line == "" {
			if !blank && buf.Len() != 0 {
				buf.WriteByte('\n')
			}
			blank = true
			continue
		}
		blank = false

		leading := 0
		for leading < len(line) && strings.IndexByte("})]", line[leading]) != -1 {
			leading++
		}

		opens, closes := 0, 0
		for i := 0; i < len(line); i++ {
			switch line[i] {
			case '{', '(', '[':
				opens++
			case '}', ')', ']':
				closes++
			}
		}

		if where && strings.HasPrefix(line, "{") {
			where = false
		}

		level := max(depth-leading, 0)
		if where {
			level++
		}
		buf.WriteString(strings.Repeat(IndentUnit, level))
		buf.WriteString(line)
		buf.WriteByte('\n')

		depth = max(depth+opens-closes, 0)
		if line == "where" {
			where = true
		}
	}

	out := buf.Bytes()
	for bytes.HasSuffix(out, []byte("\n\n")) {
		out = out[:len(out)-1]
	}
	return out
}
