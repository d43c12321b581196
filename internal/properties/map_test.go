package properties

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap_Merge(t *testing.T) {
	m := Map{"a": "1", "b": "2"}
	m.Merge(Map{"b": "", "c": "3"})

	assert.Equal(t, Map{"a": "1", "b": "", "c": "3"}, m)
}

func TestMap_MergeNil(t *testing.T) {
	m := Map{"a": "1"}
	m.Merge(nil)

	assert.Equal(t, Map{"a": "1"}, m)
}

func TestMap_Clone(t *testing.T) {
	m := Map{"a": "1"}
	c := m.Clone()
	c["a"] = "changed"

	assert.Equal(t, "1", m["a"])
	assert.NotNil(t, Map(nil).Clone())
}

func TestMap_Keys(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, Map{"c": "", "a": "", "b": ""}.Keys())
	assert.Empty(t, Map{}.Keys())
}
