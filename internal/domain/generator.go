package domain

import (
	"fmt"
	"sort"
	"strings"

	m "meowcode.dev/pkg/meowcode/internal/model"
)

const (
	flagPrefix           = "_meowDisposed_"
	finalizerSuppression = "GC.SuppressFinalize(this);"
	defaultIndent        = "\t"
)

// Generate builds the blocks for a scanned target. lines are the stripped
// source lines the scan ran on; they only decide indentation. Reference
// types additionally get a finalizer and its suppression.
func Generate(result m.ScanResult, entry m.TypeEntry, lines []string) []m.GeneratedBlock {
	if !result.Target || !result.HasReleaseMethod {
		return nil
	}

	member := indentOf(lineAt(lines, result.ReleaseMethodEnd))
	body := member + indentUnit(member)

	blocks := []m.GeneratedBlock{
		{
			Kind:   m.BlockDefinition,
			Anchor: result.ReleaseMethodEnd,
			Lines:  frameBlock(definitionBody(result, entry.Fields, member)),
		},
		{
			Kind:   m.BlockCallSite,
			Anchor: result.ReleaseMethodEnd - 1,
			Lines:  frameBlock(callSiteBody(result, body)),
		},
	}

	constructors := append([]int(nil), result.ConstructorLines...)
	sort.Ints(constructors)

	for _, line := range constructors {
		blocks = append(blocks, m.GeneratedBlock{
			Kind:   m.BlockInit,
			Anchor: line,
			Lines:  frameBlock(initBody(entry.Fields, body)),
		})
	}

	return blocks
}

func flagName(field string) string {
	return flagPrefix + field
}

func definitionBody(result m.ScanResult, fields []string, indent string) []string {
	unit := indentUnit(indent)
	inner := indent + unit
	nested := inner + unit

	lines := make([]string, 0, len(fields)*6+8)

	for _, field := range fields {
		lines = append(lines, fmt.Sprintf("%sprivate bool %s;", indent, flagName(field)))
	}

	if result.IsReferenceType() {
		lines = append(lines, indent+"protected virtual void Dispose(bool disposing)")
	} else {
		lines = append(lines, indent+"private void Dispose(bool disposing)")
	}

	lines = append(lines, indent+"{")

	for _, field := range fields {
		lines = append(lines,
			fmt.Sprintf("%sif (!%s)", inner, flagName(field)),
			inner+"{",
			fmt.Sprintf("%s%s.Dispose();", nested, field),
			fmt.Sprintf("%s%s = true;", nested, flagName(field)),
			inner+"}",
		)
	}

	lines = append(lines, indent+"}")

	if result.IsReferenceType() {
		lines = append(lines, "", fmt.Sprintf("%s~%s() => Dispose(false);", indent, result.TypeName))
	}

	return lines
}

func callSiteBody(result m.ScanResult, indent string) []string {
	lines := []string{indent + "Dispose(true);"}
	if result.IsReferenceType() {
		lines = append(lines, indent+finalizerSuppression)
	}

	return lines
}

func initBody(fields []string, indent string) []string {
	lines := make([]string, 0, len(fields))
	for _, field := range fields {
		lines = append(lines, fmt.Sprintf("%s%s = false;", indent, flagName(field)))
	}

	return lines
}

func lineAt(lines []string, i int) string {
	if i < 0 || i >= len(lines) {
		return ""
	}

	return lines[i]
}

func indentOf(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}

// indentUnit guesses one level of indentation from an existing indent.
func indentUnit(indent string) string {
	if indent == "" || strings.Contains(indent, "\t") {
		return defaultIndent
	}

	if len(indent)%4 == 0 {
		return "    "
	}

	return "  "
}
