package stacktrace

import "strings"

// InternalPaths returns the "internal/..." file:line frames of a raw stack
// trace, dropping runtime and third-party frames.
func InternalPaths(stack []byte) []string {
	lines := strings.Split(string(stack), "\n")
	paths := make([]string, 0, len(lines)/2)
	for _, line := range lines {
		line = strings.TrimSpace(line)
		idx := strings.Index(line, "/internal/")
		if idx == -1 || !strings.Contains(line, ".go:") {
			continue
		}
		frame, _, _ := strings.Cut(line[idx+1:], " ")
		paths = append(paths, frame)
	}
	return paths
}
