package model

import "strings"

// TypeEntry lists the fields of a type that own a releasable resource,
// in declaration order.
type TypeEntry struct {
	Name   string   `yaml:"name"`
	Fields []string `yaml:"fields"`
}

// Registry maps type names to their releasable fields. It is built once
// before a pass and only read afterwards.
type Registry struct {
	entries map[string]TypeEntry
	order   []string
}

// NewRegistry builds a registry from entries. Later entries with the same
// normalized name replace earlier ones but keep the first position.
func NewRegistry(entries ...TypeEntry) Registry {
	r := Registry{entries: make(map[string]TypeEntry, len(entries))}

	for _, entry := range entries {
		name := CleanTypeName(entry.Name)
		if name == "" {
			continue
		}

		if _, ok := r.entries[name]; !ok {
			r.order = append(r.order, name)
		}

		fields := make([]string, len(entry.Fields))
		copy(fields, entry.Fields)

		r.entries[name] = TypeEntry{Name: name, Fields: fields}
	}

	return r
}

// Lookup returns the entry registered under name.
func (r Registry) Lookup(name string) (TypeEntry, bool) {
	entry, ok := r.entries[name]
	return entry, ok
}

// Entries returns every entry in registration order.
func (r Registry) Entries() []TypeEntry {
	out := make([]TypeEntry, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.entries[name])
	}

	return out
}

// Len returns the number of registered types.
func (r Registry) Len() int {
	return len(r.order)
}

// CleanTypeName drops a generic arity suffix such as "`1" from a type name.
func CleanTypeName(name string) string {
	name = strings.TrimSpace(name)
	if i := strings.IndexByte(name, '`'); i >= 0 {
		return name[:i]
	}

	return name
}
