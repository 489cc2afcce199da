package main

import "strings"

// FileRecord holds one selected file. Path is relative to the scanned root,
// '/'-separated and without a leading "./".
type FileRecord struct {
	Path      string
	Content   string
	Size      int // byte length of Content
	LineCount int
}

func newFileRecord(path, content string) FileRecord {
	return FileRecord{
		Path:      path,
		Content:   content,
		Size:      len(content),
		LineCount: len(splitLines(content)),
	}
}

// walkResult is what a walk over the root produced.
type walkResult struct {
	Files       []FileRecord
	TotalTokens int
}

// splitLines splits s at every Unicode line boundary ("\r\n" counts once).
// A trailing boundary does not produce an empty last line.
func splitLines(s string) []string {
	var lines []string
	start := 0
	for i, r := range s {
		switch r {
		case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		default:
			continue
		}
		if r == '\n' && i > 0 && s[i-1] == '\r' {
			start = i + 1
			continue
		}
		lines = append(lines, s[start:i])
		start = i + len(string(r))
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

// normalizeNewlines applies universal newline translation.
func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
