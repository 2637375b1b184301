package domain

import (
	m "meowcode.dev/pkg/meowcode/internal/model"
)

// Splice inserts each block after the line it is anchored to. Blocks sharing
// an anchor keep their relative order. Anchors past the end are appended.
func Splice(lines []string, blocks []m.GeneratedBlock) []string {
	return splice(lines, blocks, func(block m.GeneratedBlock, _ int) []string {
		return block.Lines
	})
}

// SpliceEndings mirrors Splice for line terminators: every generated line
// takes the terminator of the line it is anchored to, and a block anchored
// before the first line takes the first line's.
func SpliceEndings(endings []m.LineEnding, blocks []m.GeneratedBlock, fallback m.LineEnding) []m.LineEnding {
	return splice(endings, blocks, func(block m.GeneratedBlock, anchor int) []m.LineEnding {
		ending := fallback
		if anchor < 0 {
			anchor = 0
		}

		if anchor < len(endings) && endings[anchor] != "" {
			ending = endings[anchor]
		}

		out := make([]m.LineEnding, len(block.Lines))
		for i := range out {
			out[i] = ending
		}

		return out
	})
}

func splice[T any](items []T, blocks []m.GeneratedBlock, expand func(m.GeneratedBlock, int) []T) []T {
	byAnchor := make(map[int][]m.GeneratedBlock, len(blocks))
	size := len(items)

	for _, block := range blocks {
		anchor := block.Anchor
		if anchor >= len(items) {
			anchor = len(items) - 1
		}

		if anchor < -1 {
			anchor = -1
		}

		byAnchor[anchor] = append(byAnchor[anchor], block)
		size += len(block.Lines)
	}

	out := make([]T, 0, size)

	for _, block := range byAnchor[-1] {
		out = append(out, expand(block, -1)...)
	}

	for i, item := range items {
		out = append(out, item)

		for _, block := range byAnchor[i] {
			out = append(out, expand(block, i)...)
		}
	}

	return out
}
