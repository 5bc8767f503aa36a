// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package help

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
)

// LayerInfo contains standardized information about a matching layer
type LayerInfo struct {
	Name                string   // Name of the layer (e.g., "fuzzy")
	ShortDescription    string   // Short description for the layers list
	DetailedDescription string   // Detailed description of what the layer does
	Thresholds          []string // Acceptance thresholds the layer applies
	Notes               []string // Behavioral notes
	Examples            []string // Usage examples
}

// Provider defines the interface for help content providers
type Provider interface {
	GetLayerInfo() LayerInfo
}

// System manages help content for the application
type System struct {
	providers map[string]Provider
	noColor   bool
	colors    map[string]*color.Color
}

// NewSystem creates a new help system
func NewSystem(noColor bool) *System {
	// Disable colors if requested
	if noColor {
		color.NoColor = true
	}

	s := &System{
		providers: make(map[string]Provider),
		noColor:   noColor,
		colors: map[string]*color.Color{
			"title":    color.New(color.FgWhite, color.Bold),
			"header":   color.New(color.FgBlue, color.Bold),
			"item":     color.New(color.FgCyan),
			"emphasis": color.New(color.FgWhite, color.Bold),
			"negative": color.New(color.FgRed),
			"example":  color.New(color.FgMagenta),
		},
	}
	for _, p := range builtinProviders() {
		s.RegisterProvider(p)
	}
	return s
}

// RegisterProvider adds a help provider to the system
func (h *System) RegisterProvider(provider Provider) {
	info := provider.GetLayerInfo()
	h.providers[strings.ToLower(info.Name)] = provider
}

// ShowGeneralHelp displays general help information
func (h *System) ShowGeneralHelp() {
	h.colors["title"].Println("Finterm - Financial Statement Term Resolution")
	fmt.Println("=============================================")
	fmt.Println()
	h.colors["header"].Println("USAGE:")
	fmt.Println("  finterm --text <line> [options]")
	fmt.Println("  finterm --file <path-to-statement.txt> [options]")
	fmt.Println("  finterm --pdf <path-to-statement.pdf> [options]")
	fmt.Println("  finterm --golden <path-to-golden.yaml> [options]")
	fmt.Println()

	h.colors["header"].Println("OPTIONS:")

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  --text\t<line>\tMatch a single statement line and exit")
	fmt.Fprintln(w, "  --file\t<path>\tMatch every line of a plain-text statement")
	fmt.Fprintln(w, "  --pdf\t<path>\tExtract lines from a PDF and match them")
	fmt.Fprintln(w, "  --golden\t<path>\tRun a golden set and report precision/recall/F1")
	fmt.Fprintln(w, "  --taxonomy\t<path>\tTaxonomy YAML file (default: built-in term set)")
	fmt.Fprintln(w, "  --standard\t<name>\tKeyword standard: indas, gaap, ifrs, all (default: all)")
	fmt.Fprintln(w, "  --config\t<path>\tPath to configuration file (YAML)")
	fmt.Fprintln(w, "  --profile\t<name>\tProfile name to use from config file")
	fmt.Fprintln(w, "  --format\t<format>\tOutput format: text, json, csv (default: text)")
	fmt.Fprintln(w, "  --confidence\t<levels>\tConfidence levels to display: high,medium,low,all (default: all)")
	fmt.Fprintln(w, "  --workers\t<n>\tWorker count for document matching (default: CPU count)")
	fmt.Fprintln(w, "  --f1-floor\t<x>\tFail --golden runs whose F1 drops below x")
	fmt.Fprintln(w, "  --output\t<path>\tPath to output file (if not specified, output to stdout)")
	fmt.Fprintln(w, "  --verbose\t\tDisplay detailed information for each match")
	fmt.Fprintln(w, "  --debug\t\tEnable debug logging of pipeline operations")
	fmt.Fprintln(w, "  --no-color\t\tDisable colored output")
	fmt.Fprintln(w, "  --version\t\tShow version information")
	fmt.Fprintln(w, "  --help\t\tShow this help message")
	fmt.Fprintln(w, "  --help layers\t\tList the matching layers")
	fmt.Fprintln(w, "  --help <layer>\t\tShow detailed help for a specific layer")
	w.Flush()

	fmt.Println()
	h.colors["header"].Println("EXAMPLES:")
	h.colors["example"].Println("  finterm --text \"Less: Provision for doubtful debts 1,234\"")
	h.colors["example"].Println("  finterm --file balance-sheet.txt --format json --confidence high,medium")
	h.colors["example"].Println("  finterm --pdf annual-report.pdf --standard indas --verbose")
	h.colors["example"].Println("  finterm --golden testdata/golden.yaml --f1-floor 0.9")

	fmt.Println()
	h.colors["header"].Println("CONFIGURATION:")
	fmt.Println("  Project config: config.yaml or .finterm.yaml (in current directory)")
	fmt.Println("  User config:    ~/.config/finterm/config.yaml")
}

// ShowLayersHelp displays information about the matching layers
func (h *System) ShowLayersHelp() {
	h.colors["title"].Println("Matching Layers")
	fmt.Println("===============")
	fmt.Println()
	fmt.Println("Lines cascade through the layers below; later layers run only")
	fmt.Println("when earlier ones leave the line uncovered.")
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	h.colors["header"].Fprintln(w, "  LAYER\tDESCRIPTION")
	h.colors["header"].Fprintln(w, "  -----\t-----------")

	var names []string
	for name := range h.providers {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		info := h.providers[name].GetLayerInfo()
		fmt.Fprintf(w, "  ")
		h.colors["emphasis"].Fprintf(w, "%s", info.Name)
		fmt.Fprintf(w, "\t%s\n", info.ShortDescription)
	}
	w.Flush()

	fmt.Println()
	fmt.Println("For detailed information about a specific layer, use:")
	h.colors["example"].Println("  finterm --help <layer>")
}

// ShowLayerHelp displays detailed help for a specific layer
func (h *System) ShowLayerHelp(name string) bool {
	provider, exists := h.providers[strings.ToLower(name)]
	if !exists {
		h.colors["negative"].Printf("Error: Layer '%s' not found.\n", name)
		fmt.Println("Use 'finterm --help layers' to see the available layers.")
		return false
	}

	info := provider.GetLayerInfo()

	h.colors["title"].Printf("%s Layer\n", strings.ToUpper(info.Name[:1])+info.Name[1:])
	fmt.Println(strings.Repeat("=", len(info.Name)+6))
	fmt.Println()
	fmt.Println(info.DetailedDescription)
	fmt.Println()

	if len(info.Thresholds) > 0 {
		h.colors["header"].Println("THRESHOLDS:")
		for _, t := range info.Thresholds {
			fmt.Print("  - ")
			h.colors["item"].Println(t)
		}
		fmt.Println()
	}

	if len(info.Notes) > 0 {
		h.colors["header"].Println("NOTES:")
		for _, n := range info.Notes {
			fmt.Printf("  - %s\n", n)
		}
		fmt.Println()
	}

	if len(info.Examples) > 0 {
		h.colors["header"].Println("EXAMPLES:")
		for _, example := range info.Examples {
			fmt.Print("  ")
			h.colors["example"].Println(example)
		}
	}

	return true
}
