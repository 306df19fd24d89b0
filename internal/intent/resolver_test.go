package intent

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/FileAgent/backend/internal/shared/types"
)

func TestStaticResolver(t *testing.T) {
	res, err := StaticResolver{}.Resolve(context.Background(), "anything", types.Context{}, nil)
	require.NoError(t, err)
	assert.False(t, res.IsCall())
	assert.Equal(t, DefaultHelpText, res.Response)
	assert.NotNil(t, res.Params)

	res, err = StaticResolver{HelpText: "custom"}.Resolve(context.Background(), "", types.Context{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "custom", res.Response)
}

func TestCanonicalAction(t *testing.T) {
	catalog := testCatalog()

	tests := []struct {
		name string
		want types.OperationName
	}{
		{"find_by_extension", types.OpFindByExtension},
		{"find_files_by_extension", types.OpFindByExtension},
		{"get_largest_files", types.OpLargestFiles},
		{" largest_files ", types.OpLargestFiles},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CanonicalAction(tt.name, catalog)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	// alias target missing from the catalog
	_, err := CanonicalAction("move", catalog)
	var unknown *UnknownFunctionError
	assert.True(t, errors.As(err, &unknown))
}

func TestSystemPrompt(t *testing.T) {
	prompt := SystemPrompt("/srv/data")
	assert.Contains(t, prompt, "You are a helpful file system assistant.")
	assert.Contains(t, prompt, "The user's current directory is: /srv/data\n")
}

func TestBuildTools(t *testing.T) {
	tools := BuildTools(testCatalog())
	require.Len(t, tools, 2)

	assert.Equal(t, "function", tools[0].Type)
	assert.Equal(t, "find_by_extension", tools[0].Function.Name)
	assert.Equal(t, "object", tools[0].Function.Parameters.Type)
	assert.Equal(t, []string{"extension"}, tools[0].Function.Parameters.Required)
	assert.Equal(t, "string", tools[0].Function.Parameters.Properties["directory"].Type)
	assert.Nil(t, tools[0].Function.Parameters.Properties["directory"].Default)

	limit := tools[0].Function.Parameters.Properties["limit"]
	assert.Equal(t, "integer", limit.Type)
	assert.Equal(t, 50, limit.Default)

	assert.Empty(t, tools[1].Function.Parameters.Required)
	assert.NotNil(t, tools[1].Function.Parameters.Required)
}

func TestBuildToolsEncodesDefaults(t *testing.T) {
	data, err := json.Marshal(BuildTools(testCatalog()))
	require.NoError(t, err)

	assert.Contains(t, string(data), `"limit":{"type":"integer","description":"max","default":50}`)
	assert.NotContains(t, string(data), `"description":"where","default"`)
}
