package mapslicehelp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

func TestIntern(t *testing.T) {
	m := orderedmap.New[string, uint32]()
	assert.Equal(t, uint32(0), Intern(m, "b"))
	assert.Equal(t, uint32(1), Intern(m, "a"))
	assert.Equal(t, uint32(0), Intern(m, "b"))
	assert.Equal(t, uint32(2), Intern(m, "c"))
	assert.Equal(t, []string{"b", "a", "c"}, OrderedMapKeys(m))
}

func TestOrderedMapKeys_Empty(t *testing.T) {
	assert.Empty(t, OrderedMapKeys(orderedmap.New[int, bool]()))
}
