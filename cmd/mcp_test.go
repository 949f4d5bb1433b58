package cmd

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spyglass/internal/index"
	"spyglass/internal/progress"
	"spyglass/internal/store"
	"spyglass/internal/walker"
)

func newTestService(t *testing.T) (*index.Service, string) {
	t.Helper()
	root := t.TempDir()
	for _, f := range []string{"projects/notes/todo.md", "notes.txt", "my-notes.md"} {
		p := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	}
	blobs := store.NewFileBlobStore(t.TempDir())
	svc := index.New(index.Config{
		Root:       root,
		SkipHidden: true,
		Skip:       walker.NewSkipSet(walker.DefaultSkipDirs...),
	}, store.NewIndexStore(blobs))
	return svc, root
}

func call(t *testing.T, h func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) (string, bool) {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	res, err := h(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text, res.IsError
}

func TestMCPHandlers(t *testing.T) {
	svc, root := newTestService(t)

	text, _ := call(t, makeCountHandler(svc), nil)
	assert.Equal(t, "0", text)

	text, _ = call(t, makeLoadHandler(svc), nil)
	assert.Contains(t, text, "No saved index")

	text, _ = call(t, makeStartBuildHandler(svc), nil)
	assert.Contains(t, text, "started")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, svc.Wait(ctx))

	text, _ = call(t, makeProgressHandler(svc), nil)
	var p progress.Progress
	require.NoError(t, json.Unmarshal([]byte(text), &p))
	assert.True(t, p.IsComplete)
	assert.Equal(t, 5, p.TotalFiles)

	text, _ = call(t, makeCountHandler(svc), nil)
	assert.Equal(t, "5", text)

	t.Run("search", func(t *testing.T) {
		text, isErr := call(t, makeSearchHandler(svc), map[string]any{"query": "notes"})
		assert.False(t, isErr)
		assert.Contains(t, text, "(3)")
		assert.Contains(t, text, filepath.Join(root, "projects", "notes"))
	})

	t.Run("search_limit", func(t *testing.T) {
		text, _ := call(t, makeSearchHandler(svc), map[string]any{"query": "notes", "limit": 1})
		assert.Contains(t, text, "(1)")
	})

	t.Run("search_requires_query", func(t *testing.T) {
		_, isErr := call(t, makeSearchHandler(svc), map[string]any{})
		assert.True(t, isErr)
	})

	t.Run("search_short_query", func(t *testing.T) {
		text, isErr := call(t, makeSearchHandler(svc), map[string]any{"query": "n"})
		assert.False(t, isErr)
		assert.Contains(t, text, "too short")
	})

	t.Run("load_after_build", func(t *testing.T) {
		text, _ := call(t, makeLoadHandler(svc), nil)
		assert.Contains(t, text, "Loaded 5 entries")
	})
}

func TestFormatSearchResults(t *testing.T) {
	out := formatSearchResults("docs", []store.Entry{
		{Name: "docs", Path: "/home/u/docs", IsDirectory: true, ParentFolder: "u"},
		{Name: "docs.txt", Path: "/home/u/docs.txt", ParentFolder: "u"},
	})
	assert.Contains(t, out, "**docs** (folder, in u): `/home/u/docs`")
	assert.Contains(t, out, "**docs.txt** (file, in u)")

	assert.Contains(t, formatSearchResults("zz", nil), "No results")
}
