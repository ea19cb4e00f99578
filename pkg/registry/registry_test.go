package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dormantflower/webgw/pkg/ipcclient"
)

func TestRegistryInsertLookupRemove(t *testing.T) {
	r := New()
	_, ok := r.Lookup("a")
	assert.False(t, ok)

	h := &ipcclient.Handle{}
	r.Insert("a", h)
	got, ok := r.Lookup("a")
	assert.True(t, ok)
	assert.Same(t, h, got)
	assert.Equal(t, 1, r.Len())

	r.Remove("a")
	_, ok = r.Lookup("a")
	assert.False(t, ok)
	assert.Equal(t, 0, r.Len())
}

func TestRegistryRemoveUnknownIsNoop(t *testing.T) {
	r := New()
	assert.NotPanics(t, func() { r.Remove("missing") })
}

func TestRegistryInsertOverwrites(t *testing.T) {
	r := New()
	h1 := &ipcclient.Handle{}
	h2 := &ipcclient.Handle{}
	r.Insert("a", h1)
	r.Insert("a", h2)
	got, ok := r.Lookup("a")
	assert.True(t, ok)
	assert.Same(t, h2, got)
}
