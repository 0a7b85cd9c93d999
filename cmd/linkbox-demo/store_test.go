package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenStoreAt(filepath.Join(t.TempDir(), "commands.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreAddAndList(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Add("tests", "go test ./...", "out/test.log")
	require.NoError(t, err)
	_, err = s.Add("build", "make build", "")
	require.NoError(t, err)

	commands, err := s.List()
	require.NoError(t, err)
	require.Len(t, commands, 2)

	// Listed alphabetically by name.
	require.Equal(t, "build", commands[0].Name)
	require.Equal(t, "tests", commands[1].Name)
	require.Equal(t, "go test ./...", commands[1].Cmdline)
	require.Equal(t, "out/test.log", commands[1].OutputPath)
	require.Nil(t, commands[1].LastRunAt)
	require.Nil(t, commands[1].LastRunFor)
}

func TestStoreRejectsDuplicateNames(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Add("tests", "go test ./...", "")
	require.NoError(t, err)
	_, err = s.Add("tests", "pytest", "")
	require.Error(t, err)
}

func TestStoreRecordRun(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Add("tests", "go test ./...", "")
	require.NoError(t, err)

	ranAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, s.RecordRun("tests", "ok", ranAt, 90*time.Second))

	commands, err := s.List()
	require.NoError(t, err)
	require.Len(t, commands, 1)

	c := commands[0]
	require.Equal(t, "ok", c.LastStatus)
	require.NotNil(t, c.LastRunAt)
	require.True(t, c.LastRunAt.Equal(ranAt))
	require.NotNil(t, c.LastRunFor)
	require.Equal(t, 90*time.Second, *c.LastRunFor)
}

func TestStoreDelete(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Add("tests", "go test ./...", "")
	require.NoError(t, err)

	require.NoError(t, s.Delete("tests"))
	commands, err := s.List()
	require.NoError(t, err)
	require.Empty(t, commands)

	// Deleting a missing row is not an error.
	require.NoError(t, s.Delete("tests"))
}
