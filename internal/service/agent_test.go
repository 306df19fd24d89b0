package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/FileAgent/backend/internal/intent"
	"github.com/GriffinCanCode/FileAgent/backend/internal/providers/filesystem"
	"github.com/GriffinCanCode/FileAgent/backend/internal/shared/types"
)

type mockResolver struct {
	mock.Mock
}

func (m *mockResolver) Resolve(ctx context.Context, query string, rctx types.Context, catalog []types.Tool) (*intent.Resolution, error) {
	ret := m.Called(query, rctx, len(catalog))
	res, _ := ret.Get(0).(*intent.Resolution)
	return res, ret.Error(1)
}

func newTestAgent(t *testing.T, resolver intent.Resolver, base string) *Agent {
	t.Helper()
	r := NewRegistry()
	require.NoError(t, r.Register(filesystem.NewProvider(nil)))
	return NewAgent(r, resolver, base, nil)
}

func TestResolveAndDescribeFillsDirectory(t *testing.T) {
	resolver := &mockResolver{}
	resolver.On("Resolve", "find python files", types.Context{Directory: "/work"}, 5).
		Return(&intent.Resolution{Action: types.OpFindByExtension, Params: map[string]interface{}{"extension": ".py"}}, nil)

	agent := newTestAgent(t, resolver, "/home/me")
	desc := agent.ResolveAndDescribe(context.Background(), "find python files", types.Context{Directory: "/work"})

	require.False(t, desc.IsHelp())
	assert.Equal(t, types.OpFindByExtension, desc.Action.Action)
	assert.Equal(t, map[string]interface{}{"extension": ".py", "directory": "/work"}, desc.Action.Params)
	assert.Equal(t, "I'll execute: find_by_extension", desc.Reply())
	resolver.AssertExpectations(t)
}

func TestResolveAndDescribeUsesBasePath(t *testing.T) {
	resolver := &mockResolver{}
	resolver.On("Resolve", "move pngs", types.Context{Directory: "/home/me"}, 5).
		Return(&intent.Resolution{Action: types.OpMoveFiles, Params: map[string]interface{}{
			"destination_directory": "Archive",
			"pattern":               "*.png",
			"source_directory":      "",
		}}, nil)

	agent := newTestAgent(t, resolver, "/home/me")
	desc := agent.ResolveAndDescribe(context.Background(), "move pngs", types.Context{})

	require.NotNil(t, desc.Action)
	assert.Equal(t, "/home/me", desc.Action.Params["source_directory"])
	assert.Equal(t, "Archive", desc.Action.Params["destination_directory"])
}

func TestResolveAndDescribeHelp(t *testing.T) {
	agent := newTestAgent(t, nil, "/home/me")

	desc := agent.ResolveAndDescribe(context.Background(), "hello", types.Context{})
	assert.True(t, desc.IsHelp())
	assert.Equal(t, intent.DefaultHelpText, desc.Reply())
	assert.Empty(t, desc.Error)

	resolver := &mockResolver{}
	resolver.On("Resolve", mock.Anything, mock.Anything, mock.Anything).
		Return(&intent.Resolution{Response: "Hi there"}, nil)
	desc = newTestAgent(t, resolver, "/").ResolveAndDescribe(context.Background(), "hi", types.Context{})
	assert.Equal(t, "Hi there", desc.HelpText)
}

func TestResolveAndDescribeDegradesOnError(t *testing.T) {
	resolver := &mockResolver{}
	resolver.On("Resolve", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused"))

	desc := newTestAgent(t, resolver, "/").ResolveAndDescribe(context.Background(), "list", types.Context{})

	assert.True(t, desc.IsHelp())
	assert.Equal(t, intent.DefaultHelpText, desc.HelpText)
	assert.Equal(t, "connection refused", desc.Error)
}

func TestAgentExecute(t *testing.T) {
	base := t.TempDir()
	agent := newTestAgent(t, nil, base)

	res, err := agent.Execute(context.Background(), "create_folder", map[string]interface{}{"folder_name": "x"}, nil)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.DirExists(t, filepath.Join(base, "x"))

	other := t.TempDir()
	res, err = agent.Execute(context.Background(), "list_directory", nil, &types.Context{Directory: other})
	require.NoError(t, err)
	listing := res.Data.(*filesystem.DirectoryListing)
	assert.Equal(t, other, listing.Directory)
}
