package model

// Status is the outcome of processing a single file.
type Status int

const (
	// StatusUnchanged means the file was already up to date.
	StatusUnchanged Status = iota
	// StatusUpdated means the file was (or, in a dry run, would be) rewritten.
	StatusUpdated
	// StatusSkipped means the file is not a generation target.
	StatusSkipped
	// StatusFailed means the file could not be processed.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusUnchanged:
		return "unchanged"
	case StatusUpdated:
		return "updated"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// FileResult reports what happened to one file.
type FileResult struct {
	File     File
	Status   Status
	TypeName string
	Skip     SkipReason
	OldLines int
	NewLines int
	// Before and After are only filled when the content changed.
	Before []string
	After  []string
	Err    error
}

// Summary counts results by status.
type Summary struct {
	Unchanged int
	Updated   int
	Skipped   int
	Failed    int
}

// Add records a result.
func (s *Summary) Add(result FileResult) {
	switch result.Status {
	case StatusUnchanged:
		s.Unchanged++
	case StatusUpdated:
		s.Updated++
	case StatusSkipped:
		s.Skipped++
	case StatusFailed:
		s.Failed++
	}
}

// Total returns the number of results recorded.
func (s Summary) Total() int {
	return s.Unchanged + s.Updated + s.Skipped + s.Failed
}
