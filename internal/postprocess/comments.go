package postprocess

import "strings"

// StripComments deletes `//` line comments and `/* */` block comments from
// JavaScript-like source. String and template literals are respected, so
// comment markers inside them survive. Line comments keep their terminating
// newline; block comments are removed outright. Regex literals are not
// tracked, which matches the behavior of the original stripping pass.
func StripComments(src string) string {
	var sb strings.Builder
	sb.Grow(len(src))

	var quote byte // active string delimiter, 0 when outside literals
	escaped := false

	for i := 0; i < len(src); i++ {
		ch := src[i]

		if quote != 0 {
			sb.WriteByte(ch)
			if escaped {
				escaped = false
				continue
			}
			switch ch {
			case '\\':
				escaped = true
			case quote:
				quote = 0
			}
			continue
		}

		switch ch {
		case '"', '\'', '`':
			quote = ch
			sb.WriteByte(ch)
		case '/':
			if i+1 < len(src) && src[i+1] == '/' {
				for i < len(src) && src[i] != '\n' {
					i++
				}
				if i < len(src) {
					sb.WriteByte('\n')
				}
			} else if i+1 < len(src) && src[i+1] == '*' {
				i += 2
				for i+1 < len(src) && !(src[i] == '*' && src[i+1] == '/') {
					i++
				}
				i++ // lands on '/', loop increment moves past it
			} else {
				sb.WriteByte(ch)
			}
		default:
			sb.WriteByte(ch)
		}
	}

	return sb.String()
}
