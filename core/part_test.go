package core

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentText(t *testing.T) {
	c := Content{Role: RoleAssistant, Parts: []Part{
		TextPart{Text: "hello "},
		TextPart{Text: "world"},
	}}
	assert.Equal(t, "hello world", c.Text())
	assert.Equal(t, "", Content{}.Text())
}

func TestNewUserText(t *testing.T) {
	c := NewUserText("hi")
	assert.Equal(t, RoleUser, c.Role)
	require.Len(t, c.Parts, 1)
	assert.Equal(t, "hi", c.Text())
}

func TestNewID(t *testing.T) {
	a, b := NewID(), NewID()
	assert.NotEqual(t, a, b)
	_, err := uuid.Parse(a)
	assert.NoError(t, err)
}
