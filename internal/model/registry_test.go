package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRegistry(t *testing.T) {
	fields := []string{"handle"}
	registry := NewRegistry(
		TypeEntry{Name: "Widget", Fields: fields},
		TypeEntry{Name: "Pool`1", Fields: []string{"items"}},
		TypeEntry{Name: "  ", Fields: []string{"ignored"}},
		TypeEntry{Name: "Widget", Fields: []string{"handle", "buffer"}},
	)

	fields[0] = "mutated"

	assert.Equal(t, 2, registry.Len())
	assert.Equal(t, []TypeEntry{
		{Name: "Widget", Fields: []string{"handle", "buffer"}},
		{Name: "Pool", Fields: []string{"items"}},
	}, registry.Entries())

	entry, ok := registry.Lookup("Pool")
	assert.True(t, ok)
	assert.Equal(t, []string{"items"}, entry.Fields)

	_, ok = registry.Lookup("Pool`1")
	assert.False(t, ok)
}

func TestRegistry_Zero(t *testing.T) {
	var registry Registry

	_, ok := registry.Lookup("Widget")
	assert.False(t, ok)
	assert.Zero(t, registry.Len())
	assert.Empty(t, registry.Entries())
}

func TestCleanTypeName(t *testing.T) {
	assert.Equal(t, "Pool", CleanTypeName("Pool`1"))
	assert.Equal(t, "Map", CleanTypeName(" Map`2 "))
	assert.Equal(t, "Widget", CleanTypeName("Widget"))
	assert.Equal(t, "", CleanTypeName("`1"))
}
