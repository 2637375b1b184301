package controller

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	m "meowcode.dev/pkg/meowcode/internal/model"
)

const diffContextLines = 3

// SimpleUI implements UI using cobra Command's output stream.
type SimpleUI struct {
	cmd    *cobra.Command
	styles styles
}

// SimpleOption configures a SimpleUI.
type SimpleOption func(*SimpleUI)

// WithColor enables styled status labels.
func WithColor(enabled bool) SimpleOption {
	return func(s *SimpleUI) {
		s.styles = newStyles(enabled)
	}
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command, options ...SimpleOption) *SimpleUI {
	s := &SimpleUI{cmd: cmd, styles: newStyles(false)}
	for _, option := range options {
		option(s)
	}

	return s
}

// DisplayDisabled tells the user that generation is switched off.
func (s *SimpleUI) DisplayDisabled(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Code generation is disabled (generate.enabled=false)\n")
}

// DisplayDiscovered shows how many files will be processed.
func (s *SimpleUI) DisplayDiscovered(ctx context.Context, count int) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Processing %d source file(s)\n", count)
}

// DisplayFileResult prints files that changed or failed. Unchanged and
// skipped files are left to the log.
func (s *SimpleUI) DisplayFileResult(ctx context.Context, result m.FileResult) {
	if err := ctx.Err(); err != nil {
		return
	}

	path := s.styles.path.Render(string(result.File.ShortPath))

	switch result.Status {
	case m.StatusUpdated:
		s.printf("%s %s (%s) %d -> %d lines\n",
			s.styles.status(result.Status), path, result.TypeName, result.OldLines, result.NewLines)
	case m.StatusFailed:
		s.printf("%s %s: %v\n", s.styles.status(result.Status), path, result.Err)
	case m.StatusUnchanged, m.StatusSkipped:
	}
}

// DisplayDiff prints a unified diff between the on-disk and generated content.
func (s *SimpleUI) DisplayDiff(ctx context.Context, result m.FileResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if result.Status != m.StatusUpdated {
		return nil
	}

	text, err := renderDiff(result)
	if err != nil {
		return fmt.Errorf("diff %s: %w", result.File.ShortPath, err)
	}

	s.printf("%s", text)

	return nil
}

func renderDiff(result m.FileResult) (string, error) {
	path := string(result.File.ShortPath)

	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        withNewlines(result.Before),
		B:        withNewlines(result.After),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  diffContextLines,
	})
}

func withNewlines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = line + "\n"
	}

	return out
}

// DisplaySummary renders a table of changed and failed files followed by
// the totals.
func (s *SimpleUI) DisplaySummary(ctx context.Context, summary m.Summary, results []m.FileResult) {
	if err := ctx.Err(); err != nil {
		return
	}

	rows := make([][]string, 0, len(results))

	for _, result := range results {
		if result.Status != m.StatusUpdated && result.Status != m.StatusFailed {
			continue
		}

		rows = append(rows, []string{
			string(result.File.ShortPath),
			result.TypeName,
			result.Status.String(),
			fmt.Sprintf("%d -> %d", result.OldLines, result.NewLines),
		})
	}

	if len(rows) > 0 {
		s.printf("\n%s", renderSummaryTable(rows))
	}

	s.printf("%d updated, %d unchanged, %d skipped, %d failed (%d files)\n",
		summary.Updated, summary.Unchanged, summary.Skipped, summary.Failed, summary.Total())
}

func renderSummaryTable(rows [][]string) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Type", "Status", "Lines"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT,
	})
	table.AppendBulk(rows)
	table.Render()

	return tableBuffer.String()
}

// DisplayRegistry lists the registered types and their releasable fields.
func (s *SimpleUI) DisplayRegistry(ctx context.Context, registry m.Registry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Type", "Releasable Fields"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)

	fieldCount := 0

	for _, entry := range registry.Entries() {
		table.Append([]string{entry.Name, strings.Join(entry.Fields, ", ")})

		fieldCount += len(entry.Fields)
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Types %d", registry.Len()),
		fmt.Sprintf("%d", fieldCount),
	})
	table.Render()

	s.printf("%s", tableBuffer.String())

	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
