package clipboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInProcessSetGet(t *testing.T) {
	c := NewInProcess()
	c.Set("hello", Lines)
	text, mode := c.Get()
	assert.Equal(t, "hello", text)
	assert.Equal(t, Lines, mode)
}

func TestInProcessDefaultsEmpty(t *testing.T) {
	c := NewInProcess()
	text, mode := c.Get()
	assert.Equal(t, "", text)
	assert.Equal(t, Normal, mode)
}
