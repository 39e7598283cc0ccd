package molecule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/turtacn/FragSAR/pkg/chem"
)

func TestProductSet_InsertionOrderAndOverwrite(t *testing.T) {
	t.Parallel()

	a := chem.MustParseSMILES("CC")
	b := chem.MustParseSMILES("CO")
	a2 := chem.MustParseSMILES("C.C")

	s := NewProductSet()
	assert.True(t, s.Put("a", a))
	assert.True(t, s.Put("b", b))
	assert.False(t, s.Put("a", a2))

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"a", "b"}, s.Keys())

	vals := s.Values()
	assert.Same(t, a2, vals[0])
	assert.Same(t, b, vals[1])

	got, ok := s.Get("a")
	assert.True(t, ok)
	assert.Same(t, a2, got)

	_, ok = s.Get("zzz")
	assert.False(t, ok)
}

func TestProductSet_Empty(t *testing.T) {
	t.Parallel()

	s := NewProductSet()
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Keys())
	assert.Empty(t, s.Values())
}

//Personal.AI order the ending
