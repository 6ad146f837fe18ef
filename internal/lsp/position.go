package lsp

import (
	"unicode/utf16"
	"unicode/utf8"

	"fortio.org/safecast"

	"sbasic/internal/source"
)

const maxUint32 = ^uint32(0)

func safeUint32(n int) uint32 {
	if n < 0 {
		return 0
	}
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		return maxUint32
	}
	return v
}

// utf16Column переводит байтовую колонку строки в UTF-16 code units.
func utf16Column(line string, byteCol int) uint32 {
	byteCol = min(max(byteCol, 0), len(line))
	units := 0
	for _, r := range line[:byteCol] {
		units += utf16.RuneLen(r)
	}
	return safeUint32(units)
}

// byteColumn is the inverse of utf16Column. A character in the middle of a
// surrogate pair or past the line end clamps to the nearest boundary.
func byteColumn(line string, character uint32) int {
	units := uint32(0)
	for i, r := range line {
		if units >= character {
			return i
		}
		n := safeUint32(utf16.RuneLen(r))
		if r == utf8.RuneError {
			n = 1
		}
		if units+n > character {
			return i
		}
		units += n
	}
	return len(line)
}

// lineStarts returns the byte offset of every line; CR, LF and CRLF each end a line.
func lineStarts(text string) []int {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			starts = append(starts, i+1)
		case '\n':
			starts = append(starts, i+1)
		}
	}
	return starts
}

// offsetForPosition maps an LSP position to a byte offset in text.
func offsetForPosition(text string, pos position) int {
	starts := lineStarts(text)
	if int(pos.Line) >= len(starts) {
		return len(text)
	}
	start := starts[pos.Line]
	end := len(text)
	if int(pos.Line)+1 < len(starts) {
		end = starts[pos.Line+1]
	}
	line := trimLineBreak(text[start:end])
	return start + byteColumn(line, pos.Character)
}

func trimLineBreak(line string) string {
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	return line
}

// applyChanges replays incremental edits; a change without a range replaces the text.
func applyChanges(text string, changes []textDocumentContentChangeEvent) string {
	for _, change := range changes {
		if change.Range == nil {
			text = change.Text
			continue
		}
		start := offsetForPosition(text, change.Range.Start)
		end := max(offsetForPosition(text, change.Range.End), start)
		text = text[:start] + change.Text + text[end:]
	}
	return text
}

// rangeToLSP converts a byte-column range on lines into protocol units.
func rangeToLSP(lines []string, r source.Range) lspRange {
	line := ""
	if r.Line >= 0 && r.Line < len(lines) {
		line = lines[r.Line]
	}
	l := safeUint32(r.Line)
	return lspRange{
		Start: position{Line: l, Character: utf16Column(line, r.Start)},
		End:   position{Line: l, Character: utf16Column(line, r.End)},
	}
}
