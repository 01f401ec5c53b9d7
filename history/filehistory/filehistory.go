// Package filehistory is a concrete history.History backend storing items
// as YAML on disk, grounded on the teacher's internal/config load/save
// idiom: go.yaml.in/yaml/v3 for (de)serialization, an XDG-style path
// default, and an atomic write through internal/fileops (the same
// CreateTemp -> Chmod -> Write -> Close -> Rename -> Chmod sequence the
// teacher's config.Manager.Save used).
package filehistory

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/go-editline/editline/history"
	"github.com/go-editline/editline/internal/fileops"
)

type onDiskItem struct {
	ID          int64             `yaml:"id"`
	SessionID   string            `yaml:"session_id,omitempty"`
	CommandLine string            `yaml:"command_line"`
	StartedAt   int64             `yaml:"started_at_unix,omitempty"`
	DurationMs  int64             `yaml:"duration_ms,omitempty"`
	Cwd         string            `yaml:"cwd,omitempty"`
	Hostname    string            `yaml:"hostname,omitempty"`
	ExitStatus  *int              `yaml:"exit_status,omitempty"`
	Extra       map[string]string `yaml:"extra,omitempty"`
}

type onDiskFile struct {
	Items []onDiskItem `yaml:"items"`
}

// FileHistory adapts history.Memory with YAML-on-disk persistence.
type FileHistory struct {
	mem             *history.Memory
	path            string
	ops             fileops.FileOps
	exclusionPrefix string
}

// DefaultPath returns the XDG-style default history file path,
// ~/.config/editline/history.yaml, matching the teacher's
// ~/.config/ggc/config.yaml convention.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("filehistory: resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "editline", "history.yaml"), nil
}

// Open loads history from path (if it exists) into memory. A missing file
// is not an error — it means an empty history.
func Open(path string, exclusionPrefix string) (*FileHistory, error) {
	return OpenWithFileOps(path, exclusionPrefix, fileops.OSFileOps{})
}

// OpenWithFileOps is Open with an injectable FileOps, for tests.
func OpenWithFileOps(path, exclusionPrefix string, ops fileops.FileOps) (*FileHistory, error) {
	fh := &FileHistory{mem: history.NewMemory(), path: path, ops: ops, exclusionPrefix: exclusionPrefix}
	data, err := ops.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fh, nil
		}
		return nil, fmt.Errorf("filehistory: read %s: %w", path, err)
	}
	var onDisk onDiskFile
	if err := yaml.Unmarshal(data, &onDisk); err != nil {
		return nil, fmt.Errorf("filehistory: parse %s: %w", path, err)
	}
	items := make([]history.Item, 0, len(onDisk.Items))
	for _, it := range onDisk.Items {
		items = append(items, fromOnDisk(it))
	}
	fh.mem.LoadAll(items)
	return fh, nil
}

func fromOnDisk(it onDiskItem) history.Item {
	item := history.Item{
		ID:          it.ID,
		SessionID:   it.SessionID,
		CommandLine: it.CommandLine,
		Cwd:         it.Cwd,
		Hostname:    it.Hostname,
		ExitStatus:  it.ExitStatus,
		Extra:       it.Extra,
	}
	if it.StartedAt > 0 {
		item.StartedAt = time.Unix(it.StartedAt, 0)
	}
	if it.DurationMs > 0 {
		item.Duration = time.Duration(it.DurationMs) * time.Millisecond
	}
	return item
}

func toOnDisk(it history.Item) onDiskItem {
	od := onDiskItem{
		ID:          it.ID,
		SessionID:   it.SessionID,
		CommandLine: it.CommandLine,
		Cwd:         it.Cwd,
		Hostname:    it.Hostname,
		ExitStatus:  it.ExitStatus,
		Extra:       it.Extra,
	}
	if !it.StartedAt.IsZero() {
		od.StartedAt = it.StartedAt.Unix()
	}
	if it.Duration > 0 {
		od.DurationMs = it.Duration.Milliseconds()
	}
	return od
}

// Save persists item unless its command line starts with the configured
// exclusion prefix, in which case item is returned with the reserved
// sentinel id and is not stored, in memory or on disk.
func (fh *FileHistory) Save(item history.Item) (history.Item, error) {
	if history.IsExcluded(item.CommandLine, fh.exclusionPrefix) {
		item.ID = history.ExclusionSentinelID
		return item, nil
	}
	saved, err := fh.mem.Save(item)
	if err != nil {
		return history.Item{}, err
	}
	return saved, fh.Sync()
}

// Load returns the item with the given id.
func (fh *FileHistory) Load(id int64) (history.Item, error) { return fh.mem.Load(id) }

// Search returns items matching q.
func (fh *FileHistory) Search(q history.Query) ([]history.Item, error) { return fh.mem.Search(q) }

// Count returns the number of items matching q.
func (fh *FileHistory) Count(q history.Query) (int, error) { return fh.mem.Count(q) }

// Update applies fn to the stored item with the given id and persists the
// result. For the exclusion sentinel id it does nothing and returns nil:
// excluded items are not stored, so fn is never called for them.
func (fh *FileHistory) Update(id int64, fn func(history.Item) history.Item) error {
	if id == history.ExclusionSentinelID {
		return nil
	}
	if err := fh.mem.Update(id, fn); err != nil {
		return err
	}
	return fh.Sync()
}

// Delete removes the item with the given id and persists the result.
func (fh *FileHistory) Delete(id int64) error {
	if err := fh.mem.Delete(id); err != nil {
		return err
	}
	return fh.Sync()
}

// Clear removes every item and persists the result.
func (fh *FileHistory) Clear() error {
	if err := fh.mem.Clear(); err != nil {
		return err
	}
	return fh.Sync()
}

// Sync writes the in-memory store to disk atomically.
func (fh *FileHistory) Sync() error {
	onDisk := onDiskFile{}
	for _, it := range fh.mem.AllItems() {
		onDisk.Items = append(onDisk.Items, toOnDisk(it))
	}
	data, err := yaml.Marshal(onDisk)
	if err != nil {
		return fmt.Errorf("filehistory: marshal: %w", err)
	}
	return fileops.AtomicWriteFile(fh.ops, fh.path, data, 0600)
}

// SearchPrefix implements ports.History for hinter use.
func (fh *FileHistory) SearchPrefix(prefix string, limit int) []string {
	return fh.mem.SearchPrefix(prefix, limit)
}
