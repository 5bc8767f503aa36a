// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package observability

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// DebugObserver traces pipeline work stage by stage when debug logging
// is enabled. Output is indented by nesting depth so a document run
// reads as a tree of stages with per-line resolutions inside.
type DebugObserver struct {
	*StandardObserver
	indent int
}

// NewDebugObserver creates a debug observer writing to writer.
func NewDebugObserver(writer io.Writer) *DebugObserver {
	return &DebugObserver{
		StandardObserver: NewStandardObserver(ObservabilityDebug, writer),
	}
}

// StartStage begins a pipeline stage. Target names the unit being
// worked on: a document path, a session id, or a taxonomy source.
func (d *DebugObserver) StartStage(stage, target string) func(success bool, details string) {
	start := time.Now()
	fmt.Fprintf(d.writer, "%s> %s %s\n", d.pad(), stage, target)
	d.indent++

	return func(success bool, details string) {
		d.indent--
		outcome := "done"
		if !success {
			outcome = "failed"
		}
		fmt.Fprintf(d.writer, "%s< %s %s in %dms %s\n",
			d.pad(), stage, outcome, time.Since(start).Milliseconds(), details)
	}
}

// TraceLine logs one line's resolution inside the current stage. An
// empty term key marks an unmatched line.
func (d *DebugObserver) TraceLine(index int, text, termKey string, confidence float64) {
	if termKey == "" {
		fmt.Fprintf(d.writer, "%s  line %-4d %-34s %s\n", d.pad(), index+1, "no match", text)
		return
	}
	fmt.Fprintf(d.writer, "%s  line %-4d %-28s %.3f %s\n", d.pad(), index+1, termKey, confidence, text)
}

// Detail logs a free-form note inside the current stage.
func (d *DebugObserver) Detail(component, detail string) {
	fmt.Fprintf(d.writer, "%s  %s: %s\n", d.pad(), component, detail)
}

func (d *DebugObserver) pad() string {
	return strings.Repeat("  ", d.indent)
}
