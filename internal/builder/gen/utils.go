package gen

import "strings"

func write(sb *strings.Builder, s ...string) {
	for _, str := range s {
		sb.WriteString(str)
	}
}

func writeln(sb *strings.Builder, s ...string) {
	for _, str := range s {
		sb.WriteString(str)
	}
	sb.WriteByte('\n')
}

// writeList writes one indented item per line.
func writeList(sb *strings.Builder, items []string) {
	for _, item := range items {
		writeln(sb, "    ", item)
	}
}

// finish trims surrounding whitespace and terminates the text with exactly
// one newline.
func finish(sb *strings.Builder) string {
	return strings.TrimSpace(sb.String()) + "\n"
}
