// Package domain contains the code generation pipeline: marker stripping,
// lexing, structural scanning, block generation and idempotent writing.
package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"meowcode.dev/pkg/meowcode/internal/adapter"
	m "meowcode.dev/pkg/meowcode/internal/model"
)

// ProcessOptions tunes a single file pass.
type ProcessOptions struct {
	// DryRun computes the result without writing the file.
	DryRun bool
}

// Codegen processes one file at a time. Implementations hold no state
// between calls, so a pass may be re-entered at any time.
type Codegen interface {
	// ProcessFile regenerates the blocks of a single file.
	ProcessFile(ctx context.Context, file m.File, registry m.Registry, opts ProcessOptions) m.FileResult
	// StripFile removes every generated block from a single file.
	StripFile(ctx context.Context, file m.File, opts ProcessOptions) m.FileResult
}

type codegen struct {
	adapter.SourceFSAdapter
}

// NewCodegen creates a Codegen backed by the given filesystem adapter.
func NewCodegen(fsAdapter adapter.SourceFSAdapter) Codegen {
	return &codegen{SourceFSAdapter: fsAdapter}
}

func (cg *codegen) ProcessFile(ctx context.Context, file m.File, registry m.Registry, opts ProcessOptions) m.FileResult {
	result := m.FileResult{File: file}

	doc, err := cg.ReadDocument(ctx, file.FullPath)
	if err != nil {
		return failed(result, err)
	}

	result.OldLines = len(doc.Lines)
	result.NewLines = len(doc.Lines)

	stripped, origins := stripWithOrigins(doc.Lines)

	scan, err := Scan(Tokenize(stripped), registry)
	if err != nil {
		var structErr *StructureError
		if errors.As(err, &structErr) {
			result.TypeName = structErr.Type

			if structErr.Line < len(origins) {
				structErr.Line = origins[structErr.Line]
			}
		}

		slog.Error("Structural scan failed", "path", file.ShortPath, "error", err)

		return failed(result, fmt.Errorf("%s: %w", file.ShortPath, err))
	}

	result.TypeName = scan.TypeName

	if !scan.Target {
		slog.Debug("Skipping file", "path", file.ShortPath, "type", scan.TypeName, "reason", scan.Skip)

		result.Status = m.StatusSkipped
		result.Skip = scan.Skip

		return result
	}

	entry, _ := registry.Lookup(scan.TypeName)
	blocks := Generate(scan, entry, stripped)

	candidate := doc.WithLines(
		Splice(stripped, blocks),
		SpliceEndings(keptEndings(doc, origins), blocks, doc.EndingAt(-1)),
	)

	return cg.commit(ctx, result, doc, candidate, opts)
}

func (cg *codegen) StripFile(ctx context.Context, file m.File, opts ProcessOptions) m.FileResult {
	result := m.FileResult{File: file}

	doc, err := cg.ReadDocument(ctx, file.FullPath)
	if err != nil {
		return failed(result, err)
	}

	result.OldLines = len(doc.Lines)
	result.NewLines = len(doc.Lines)

	stripped, origins := stripWithOrigins(doc.Lines)

	return cg.commit(ctx, result, doc, doc.WithLines(stripped, keptEndings(doc, origins)), opts)
}

// keptEndings returns the terminators of the lines that survived stripping.
func keptEndings(doc m.Document, origins []int) []m.LineEnding {
	endings := make([]m.LineEnding, len(origins))
	for i, origin := range origins {
		endings[i] = doc.EndingAt(origin)
	}

	return endings
}

// commit writes candidate when it differs from what is on disk.
func (cg *codegen) commit(ctx context.Context, result m.FileResult, doc, candidate m.Document, opts ProcessOptions) m.FileResult {
	if slices.Equal(candidate.Lines, doc.Lines) {
		result.Status = m.StatusUnchanged
		return result
	}

	result.NewLines = len(candidate.Lines)
	result.Before = doc.Lines
	result.After = candidate.Lines

	if !opts.DryRun {
		if err := cg.WriteDocument(ctx, result.File.FullPath, candidate); err != nil {
			slog.Error("Failed to write generated code", "path", result.File.ShortPath, "error", err)
			return failed(result, err)
		}

		slog.Info("Generated code updated",
			"path", result.File.ShortPath,
			"type", result.TypeName,
			"old_lines", result.OldLines,
			"new_lines", result.NewLines,
		)
	}

	result.Status = m.StatusUpdated

	return result
}

func failed(result m.FileResult, err error) m.FileResult {
	result.Status = m.StatusFailed
	result.Err = err

	return result
}
