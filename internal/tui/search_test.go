package tui

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spyglass/internal/index"
	"spyglass/internal/progress"
	"spyglass/internal/store"
)

func builtService(t *testing.T, files ...string) *index.Service {
	t.Helper()
	root := t.TempDir()
	for _, f := range files {
		p := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	}
	svc := index.New(index.Config{Root: root, SkipHidden: true}, store.NewIndexStore(store.NewFileBlobStore(t.TempDir())))
	require.True(t, svc.StartIndexBuild())
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, svc.Wait(ctx))
	return svc
}

func typeText(m searchModel, s string) searchModel {
	for _, r := range s {
		m, _, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestSearchModel(t *testing.T) {
	svc := builtService(t, "reports/report.txt", "report-2024.pdf", "misc.txt")
	m := newSearchModel(svc)
	m.focus()

	m = typeText(m, "report")
	require.Len(t, m.results, 3)
	assert.Equal(t, "reports", m.results[0].Name, "directory prefix match outranks files")

	m, _, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, m.cursor, "cursor stops at the last row")

	m, _, chosen := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, chosen)
	assert.Equal(t, m.results[2].Path, m.selected())

	view := m.View(80, 24, "")
	assert.Contains(t, view, "3 results")
}

func TestSearchModelShortQuery(t *testing.T) {
	svc := builtService(t, "ab.txt")
	m := newSearchModel(svc)
	m.focus()

	m = typeText(m, "a")
	assert.Empty(t, m.results)
	_, _, chosen := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, chosen, "nothing to select")
	assert.Contains(t, m.View(80, 24, ""), "at least two characters")
}

func TestTruncateLeft(t *testing.T) {
	assert.Equal(t, "/a/b", truncateLeft("/a/b", 10))
	assert.Equal(t, "…/c/d", truncateLeft("/a/b/c/d", 5))
	assert.Equal(t, "", truncateLeft("/a", 0))
}

func TestIndexingModelLifecycle(t *testing.T) {
	m := newIndexingModel()
	assert.Empty(t, m.View())

	m.begin()
	m, cmd := m.Update(buildStartedMsg{admitted: true, poll: func() progress.Progress { return progress.Progress{} }})
	assert.NotNil(t, cmd, "polling starts")
	assert.Contains(t, m.View(), "Indexing")

	m, _ = m.Update(indexDoneMsg{total: 42})
	assert.False(t, m.active)
	assert.Contains(t, m.View(), "42 entries")
}
