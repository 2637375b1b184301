// Package controller provides output adapters for displaying generation results.
package controller

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "meowcode.dev/pkg/meowcode/internal/model"
)

// UI defines how the workflow reports progress and outcomes.
// Implementations can use different output methods.
type UI interface {
	DisplayDisabled(ctx context.Context)
	DisplayDiscovered(ctx context.Context, count int)
	DisplayFileResult(ctx context.Context, result m.FileResult)
	DisplayDiff(ctx context.Context, result m.FileResult) error
	DisplaySummary(ctx context.Context, summary m.Summary, results []m.FileResult)
	DisplayRegistry(ctx context.Context, registry m.Registry) error
}

// NewUI returns the UI for cmd. Styled output is only used on a terminal.
func NewUI(cmd *cobra.Command, isTTY bool) UI {
	return NewSimpleUI(cmd, WithColor(isTTY))
}

// IsTTY reports whether w is a file attached to a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}
