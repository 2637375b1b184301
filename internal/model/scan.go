package model

// TypeKind distinguishes reference types from value types.
type TypeKind string

const (
	// KindClass is a reference type declaration.
	KindClass TypeKind = "class"
	// KindStruct is a value type declaration.
	KindStruct TypeKind = "struct"
)

// SkipReason explains why a file is not a generation target.
type SkipReason string

const (
	// SkipNoType means the file declares no type at all.
	SkipNoType SkipReason = "no-type"
	// SkipNotRegistered means the first declared type is not in the registry.
	SkipNotRegistered SkipReason = "not-registered"
	// SkipManualRelease means the type implements the release contract itself.
	SkipManualRelease SkipReason = "manual-release"
	// SkipNoReleaseMethod means the type has no release method to anchor on.
	SkipNoReleaseMethod SkipReason = "no-release-method"
)

// ScanResult holds what the structural scanner found in one file.
type ScanResult struct {
	TypeName string
	Kind     TypeKind
	// Target is false when the file must be left alone; Skip says why.
	Target bool
	Skip   SkipReason

	ConstructorLines []int

	HasReleaseMethod   bool
	ReleaseMethodStart int
	ReleaseMethodEnd   int
}

// IsReferenceType reports whether the matched type is a class.
func (r ScanResult) IsReferenceType() bool {
	return r.Kind == KindClass
}
