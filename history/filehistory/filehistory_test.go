package filehistory

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-editline/editline/history"
	"github.com/go-editline/editline/internal/fileops"
)

// fakeFileOps is an in-memory fileops.FileOps, in the teacher's own style
// of substituting a fake FileOps in config tests rather than touching disk.
type fakeFileOps struct {
	files map[string][]byte
	tmpN  int
}

func newFakeFileOps() *fakeFileOps { return &fakeFileOps{files: map[string][]byte{}} }

func (f *fakeFileOps) ReadFile(name string) ([]byte, error) {
	data, ok := f.files[name]
	if !ok {
		return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrNotExist}
	}
	return data, nil
}

func (f *fakeFileOps) WriteFile(name string, data []byte, _ os.FileMode) error {
	f.files[name] = data
	return nil
}

func (f *fakeFileOps) Stat(name string) (os.FileInfo, error) {
	if _, ok := f.files[name]; !ok {
		return nil, &os.PathError{Op: "stat", Path: name, Err: os.ErrNotExist}
	}
	return nil, nil
}

func (f *fakeFileOps) MkdirAll(string, os.FileMode) error { return nil }

type fakeTemp struct {
	name string
	buf  []byte
	f    *fakeFileOps
}

func (t *fakeTemp) Write(p []byte) (int, error) { t.buf = append(t.buf, p...); return len(p), nil }
func (t *fakeTemp) Close() error                { t.f.files[t.name] = t.buf; return nil }
func (t *fakeTemp) Name() string                { return t.name }

func (f *fakeFileOps) CreateTemp(dir, pattern string) (fileops.TempFile, error) {
	f.tmpN++
	name := fmt.Sprintf("%s/%s-%d", dir, pattern, f.tmpN)
	return &fakeTemp{name: name, f: f}, nil
}

func (f *fakeFileOps) Remove(name string) error { delete(f.files, name); return nil }

func (f *fakeFileOps) Rename(oldpath, newpath string) error {
	data, ok := f.files[oldpath]
	if !ok {
		return &os.PathError{Op: "rename", Path: oldpath, Err: os.ErrNotExist}
	}
	f.files[newpath] = data
	delete(f.files, oldpath)
	return nil
}

func (f *fakeFileOps) Chmod(string, os.FileMode) error { return nil }

func TestSaveThenReopenRoundtrips(t *testing.T) {
	ops := newFakeFileOps()
	fh, err := OpenWithFileOps("/fake/history.yaml", "", ops)
	require.NoError(t, err)

	_, err = fh.Save(history.Item{CommandLine: "git status"})
	require.NoError(t, err)
	_, err = fh.Save(history.Item{CommandLine: "ls -la"})
	require.NoError(t, err)

	reopened, err := OpenWithFileOps("/fake/history.yaml", "", ops)
	require.NoError(t, err)
	items, err := reopened.Search(history.Query{Direction: history.Backward})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "ls -la", items[0].CommandLine)
	assert.Equal(t, "git status", items[1].CommandLine)
}

func TestSaveThenReopenKeepsStartedAtAndDuration(t *testing.T) {
	ops := newFakeFileOps()
	fh, err := OpenWithFileOps("/fake/history.yaml", "", ops)
	require.NoError(t, err)

	started := time.Unix(1700000000, 0)
	_, err = fh.Save(history.Item{
		CommandLine: "go test ./...",
		StartedAt:   started,
		Duration:    3500 * time.Millisecond,
	})
	require.NoError(t, err)

	reopened, err := OpenWithFileOps("/fake/history.yaml", "", ops)
	require.NoError(t, err)
	items, err := reopened.Search(history.Query{Direction: history.Backward})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].StartedAt.Equal(started))
	assert.Equal(t, 3500*time.Millisecond, items[0].Duration)
}

func TestExcludedCommandNeverPersisted(t *testing.T) {
	ops := newFakeFileOps()
	fh, err := OpenWithFileOps("/fake/history.yaml", "secret", ops)
	require.NoError(t, err)

	saved, err := fh.Save(history.Item{CommandLine: "secret-op"})
	require.NoError(t, err)
	assert.Equal(t, history.ExclusionSentinelID, saved.ID)

	reopened, err := OpenWithFileOps("/fake/history.yaml", "secret", ops)
	require.NoError(t, err)
	items, err := reopened.Search(history.Query{})
	require.NoError(t, err)
	assert.Empty(t, items)
}
