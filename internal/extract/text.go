// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package extract produces RawLine records for the pipeline from plain
// text and PDF sources. Extraction stays upstream of matching: nothing
// here normalizes or interprets line content.
package extract

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"finterm/internal/statement"
)

// Lines splits reader input into RawLines, one per non-blank line,
// numbered from 1.
func Lines(r io.Reader) ([]statement.RawLine, error) {
	var lines []statement.RawLine
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	n := 0
	for scanner.Scan() {
		n++
		text := strings.TrimRight(scanner.Text(), " \t\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		lines = append(lines, statement.RawLine{Text: text, Line: n})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading lines: %w", err)
	}
	return lines, nil
}

// FileLines reads RawLines from a plain-text file.
func FileLines(path string) ([]statement.RawLine, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	lines, err := Lines(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return lines, nil
}

// TextLines splits an in-memory document into RawLines.
func TextLines(text string) []statement.RawLine {
	lines, _ := Lines(strings.NewReader(text))
	return lines
}
