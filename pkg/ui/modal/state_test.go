package modal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestState(t *testing.T) {
	s := NewState(false)
	assert.False(t, s.IsOpen())

	s.Open()
	assert.True(t, s.IsOpen())
	s.Toggle()
	assert.False(t, s.IsOpen())
	s.Toggle()
	s.Close()
	assert.False(t, s.IsOpen())

	assert.True(t, NewState(true).IsOpen())
}
