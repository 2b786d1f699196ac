package main

import (
	"io/ioutil"
	"strings"
)

// fileTail remembers how many lines of a watched file have been seen so
// far, so each change event only yields the freshly appended portion.
type fileTail struct {
	path   string
	lineNo int
}

type numberedLine struct {
	no   int
	text string
}

// readNew reads the file again and returns the lines past the last seen
// line number, numbered from 1 as in the file. If the file now has fewer
// lines than were seen before it was truncated, so the counter resets and
// the whole current content is returned.
func (t *fileTail) readNew() ([]numberedLine, error) {
	data, err := ioutil.ReadFile(t.path)
	if err != nil {
		return nil, err
	}

	lines := splitLines(string(data))
	if len(lines) < t.lineNo {
		// file truncated
		t.lineNo = 0
	}

	fresh := make([]numberedLine, 0, len(lines)-t.lineNo)
	for i := t.lineNo; i < len(lines); i++ {
		fresh = append(fresh, numberedLine{no: i + 1, text: lines[i]})
	}
	t.lineNo = len(lines)

	return fresh, nil
}

func splitLines(content string) []string {
	if len(content) == 0 {
		return nil
	}
	return strings.Split(strings.TrimSuffix(content, "\n"), "\n")
}
