// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"finterm/internal/statement"
)

// PDFLines extracts text lines from a PDF, one RawLine per visual row,
// tagged with page and per-page line numbers. The file is validated
// up front so a damaged document fails fast instead of producing
// garbage lines.
func PDFLines(path string) ([]statement.RawLine, error) {
	conf := model.NewDefaultConfiguration()
	if err := api.ValidateFile(path, conf); err != nil {
		return nil, fmt.Errorf("invalid PDF %s: %w", path, err)
	}
	pageCount, err := api.PageCountFile(path)
	if err != nil {
		return nil, fmt.Errorf("counting pages in %s: %w", path, err)
	}

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", path, err)
	}
	defer f.Close()

	if n := r.NumPage(); n < pageCount {
		pageCount = n
	}

	var lines []statement.RawLine
	for pageNum := 1; pageNum <= pageCount; pageNum++ {
		page := r.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		for i, row := range pageRows(page) {
			text := strings.TrimSpace(row.text)
			if text == "" {
				continue
			}
			lines = append(lines, statement.RawLine{
				Text:   text,
				Page:   pageNum,
				Line:   i + 1,
				Column: row.x,
			})
		}
	}
	return lines, nil
}

type visualRow struct {
	text string
	x    float64
}

// pageRows returns a page's text rows in top-to-bottom reading order.
// Row extraction may fail on unusual content streams; the page then
// degrades to plain-text lines without positions.
func pageRows(page pdf.Page) []visualRow {
	rows, err := page.GetTextByRow()
	if err != nil {
		plain, err := page.GetPlainText(nil)
		if err != nil {
			return nil
		}
		var out []visualRow
		for _, line := range strings.Split(plain, "\n") {
			out = append(out, visualRow{text: line})
		}
		return out
	}

	sorted := make([]*pdf.Row, 0, len(rows))
	for _, row := range rows {
		if row != nil && len(row.Content) > 0 {
			sorted = append(sorted, row)
		}
	}
	// PDF Y grows bottom-up; higher average Y means higher on the page.
	sort.Slice(sorted, func(i, j int) bool {
		return averageY(sorted[i].Content) > averageY(sorted[j].Content)
	})

	out := make([]visualRow, 0, len(sorted))
	for _, row := range sorted {
		out = append(out, visualRow{
			text: rowText(row.Content),
			x:    leftmostX(row.Content),
		})
	}
	return out
}

func averageY(elements []pdf.Text) float64 {
	if len(elements) == 0 {
		return 0
	}
	var total float64
	for _, e := range elements {
		total += e.Y
	}
	return total / float64(len(elements))
}

func leftmostX(elements []pdf.Text) float64 {
	if len(elements) == 0 {
		return 0
	}
	min := elements[0].X
	for _, e := range elements[1:] {
		if e.X < min {
			min = e.X
		}
	}
	return min
}

// rowText joins a row's glyph runs left to right, inserting a space
// wherever the horizontal gap exceeds a fraction of the font size.
func rowText(elements []pdf.Text) string {
	sorted := make([]pdf.Text, len(elements))
	copy(sorted, elements)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].X < sorted[j].X
	})

	var buf bytes.Buffer
	for i, e := range sorted {
		buf.WriteString(e.S)
		if i == len(sorted)-1 {
			break
		}
		gap := sorted[i+1].X - (e.X + e.W)
		fontSize := e.FontSize
		if fontSize <= 0 {
			fontSize = 12
		}
		if gap > fontSize*0.2 {
			buf.WriteString(" ")
		}
	}
	return buf.String()
}
