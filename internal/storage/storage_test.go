package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSave(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)

	path, err := s.Save(42, "song.mp3", strings.NewReader("audio-bytes"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "42", "song.mp3"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "audio-bytes", string(content))
}

func TestSaveOverwritesExistingFile(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)

	first, err := s.Save(1, "song.mp3", strings.NewReader("first"))
	require.NoError(t, err)

	second, err := s.Save(1, "song.mp3", strings.NewReader("second"))
	require.NoError(t, err)
	assert.Equal(t, first, second)

	content, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, "second", string(content))
}

func TestSaveStripsPathTraversal(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)

	path, err := s.Save(1, "../../etc/passwd", strings.NewReader("nope"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "1", "passwd"), path)
}

func TestSaveRejectsEmptyFilename(t *testing.T) {
	s := New(t.TempDir())

	_, err := s.Save(1, "", strings.NewReader("data"))
	assert.Error(t, err)

	_, err = s.Save(1, "..", strings.NewReader("data"))
	assert.Error(t, err)
}

func TestSaveScopesFilesPerUser(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)

	p1, err := s.Save(1, "song.mp3", strings.NewReader("one"))
	require.NoError(t, err)
	p2, err := s.Save(2, "song.mp3", strings.NewReader("two"))
	require.NoError(t, err)

	assert.NotEqual(t, p1, p2)
}
