package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParamTypeIsPath(t *testing.T) {
	assert.True(t, ParamPath.IsPath())
	assert.True(t, ParamDirectory.IsPath())
	assert.False(t, ParamString.IsPath())
	assert.False(t, ParamInteger.IsPath())
}

func TestParamTypeSchemaType(t *testing.T) {
	assert.Equal(t, "integer", ParamInteger.SchemaType())
	assert.Equal(t, "string", ParamDirectory.SchemaType())
}
