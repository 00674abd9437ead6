package web

import (
	"bytes"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderIndex(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, PageIndex, IndexData{Name: "John Doe"}))

	out := buf.String()
	assert.Contains(t, out, "<!DOCTYPE html>")
	assert.Contains(t, out, "Welcome, John Doe")
	assert.Contains(t, out, "<title>Index</title>")
}

func TestRenderTasks(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	task := domain.Task{ID: uuid.New(), Text: "<b>buy milk</b>"}

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, PageTasks, TasksData{Tasks: []domain.Task{task}}))

	out := buf.String()
	assert.Contains(t, out, `action="/tasks/delete/`+task.ID.String()+`"`)
	assert.Contains(t, out, "&lt;b&gt;buy milk&lt;/b&gt;", "task text must be escaped")
	assert.Contains(t, out, `name="text"`)
	assert.NotContains(t, out, "No tasks yet.")
}

func TestRenderTasksEmpty(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, PageTasks, TasksData{}))
	assert.Contains(t, buf.String(), "No tasks yet.")
}

func TestRenderUnknownPage(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = r.Render(&buf, "missing", nil)
	assert.EqualError(t, err, `unknown page "missing"`)
	assert.Zero(t, buf.Len())
}

func TestRenderFailureWritesNothing(t *testing.T) {
	fsys := fstest.MapFS{
		"views/layout.html": {Data: []byte(`{{define "layout"}}<p>{{template "content" .}}</p>{{end}}`)},
		"views/broken.html": {Data: []byte(`{{define "content"}}{{.Missing.Field}}{{end}}`)},
	}
	r, err := NewRendererFS(fsys, "views")
	require.NoError(t, err)

	var buf bytes.Buffer
	err = r.Render(&buf, "broken", struct{}{})
	require.Error(t, err)
	assert.Zero(t, buf.Len())
}

func TestNewRendererFSMissingLayout(t *testing.T) {
	_, err := NewRendererFS(fstest.MapFS{}, "views")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse layout")
}

func TestPublicAssets(t *testing.T) {
	about, err := fs.ReadFile(Public(), AboutPage)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(about), "<h1>About</h1>"))

	image, err := fs.ReadFile(Public(), Image)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG\r\n\x1a\n"), image[:8])
}
