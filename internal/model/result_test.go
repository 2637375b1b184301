package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummary(t *testing.T) {
	var summary Summary
	for _, status := range []Status{StatusUpdated, StatusUpdated, StatusSkipped, StatusFailed, StatusUnchanged} {
		summary.Add(FileResult{Status: status})
	}

	assert.Equal(t, Summary{Updated: 2, Skipped: 1, Failed: 1, Unchanged: 1}, summary)
	assert.Equal(t, 5, summary.Total())
	assert.Equal(t, "unknown", Status(42).String())
}
