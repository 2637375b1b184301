package model

// BlockKind names the role of a generated block.
type BlockKind string

const (
	// BlockDefinition holds the flags, the release method and the finalizer.
	BlockDefinition BlockKind = "definition"
	// BlockCallSite invokes the release method from the user's release method.
	BlockCallSite BlockKind = "call-site"
	// BlockInit resets the flags at constructor entry.
	BlockInit BlockKind = "init"
)

// GeneratedBlock is a run of generated lines inserted after line Anchor.
// Lines include the begin and end markers.
type GeneratedBlock struct {
	Kind   BlockKind
	Anchor int
	Lines  []string
}
