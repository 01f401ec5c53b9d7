package history

import (
	"fmt"
	"strings"
)

// Memory is a process-local History implementation, and also the storage
// engine history/filehistory wraps with YAML persistence. Items are kept
// in insertion order; Search walks them respecting Direction.
type Memory struct {
	items  map[int64]Item
	order  []int64
	nextID int64
}

// NewMemory returns an empty in-memory history.
func NewMemory() *Memory {
	return &Memory{items: make(map[int64]Item)}
}

// Save assigns the next id (replacing any id the caller set) and appends
// the item.
func (m *Memory) Save(item Item) (Item, error) {
	m.nextID++
	item.ID = m.nextID
	m.items[item.ID] = item
	m.order = append(m.order, item.ID)
	return item, nil
}

// Load returns the item with the given id.
func (m *Memory) Load(id int64) (Item, error) {
	it, ok := m.items[id]
	if !ok {
		return Item{}, fmt.Errorf("history: no item with id %d", id)
	}
	return it, nil
}

// Search returns items matching q's filter, ordered per q.Direction.
// Insertion order (m.order) is already ID-ascending, so Backward is just
// a reverse walk.
func (m *Memory) Search(q Query) ([]Item, error) {
	ids := make([]int64, len(m.order))
	copy(ids, m.order)
	if q.Direction == Backward {
		for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
			ids[i], ids[j] = ids[j], ids[i]
		}
	}
	out := make([]Item, 0, len(ids))
	for _, id := range ids {
		it := m.items[id]
		if !matches(it, q.Filter) {
			continue
		}
		out = append(out, it)
		if q.Limit > 0 && len(out) >= q.Limit {
			break
		}
	}
	return out, nil
}

func matches(it Item, f Filter) bool {
	if f.CommandLineContains != "" && !strings.Contains(it.CommandLine, f.CommandLineContains) {
		return false
	}
	if f.CommandLineEquals != "" && it.CommandLine != f.CommandLineEquals {
		return false
	}
	if f.CwdExact != "" && it.Cwd != f.CwdExact {
		return false
	}
	if f.CwdPrefix != "" && !strings.HasPrefix(it.Cwd, f.CwdPrefix) {
		return false
	}
	if f.Hostname != "" && it.Hostname != f.Hostname {
		return false
	}
	if f.ExitStatus != nil && (it.ExitStatus == nil || *it.ExitStatus != *f.ExitStatus) {
		return false
	}
	return true
}

// Count returns the number of items matching q.
func (m *Memory) Count(q Query) (int, error) {
	items, err := m.Search(Query{Filter: q.Filter})
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

// Update applies fn to the stored item with the given id.
func (m *Memory) Update(id int64, fn func(Item) Item) error {
	it, ok := m.items[id]
	if !ok {
		return fmt.Errorf("history: no item with id %d", id)
	}
	m.items[id] = fn(it)
	return nil
}

// Delete removes the item with the given id.
func (m *Memory) Delete(id int64) error {
	if _, ok := m.items[id]; !ok {
		return fmt.Errorf("history: no item with id %d", id)
	}
	delete(m.items, id)
	for i, v := range m.order {
		if v == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// Clear removes every item.
func (m *Memory) Clear() error {
	m.items = make(map[int64]Item)
	m.order = nil
	return nil
}

// Sync is a no-op for the in-memory backend.
func (m *Memory) Sync() error { return nil }

// SearchPrefix implements ports.History, the narrow surface a Hinter needs.
// The prefix filter is applied after the full backward scan rather than
// passed as the query's Limit, since capping the scan first could miss
// older matches that happen to fall past a short limit.
func (m *Memory) SearchPrefix(prefix string, limit int) []string {
	items, _ := m.Search(Query{Direction: Backward})
	out := make([]string, 0, limit)
	for _, it := range items {
		if !strings.HasPrefix(it.CommandLine, prefix) {
			continue
		}
		out = append(out, it.CommandLine)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

// AllItems returns every stored item in insertion order, for persistence
// adapters like filehistory that need to serialize the whole store.
func (m *Memory) AllItems() []Item {
	out := make([]Item, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.items[id])
	}
	return out
}

// LoadAll replaces the store's contents with items, preserving their ids
// and establishing nextID as one past the highest id seen.
func (m *Memory) LoadAll(items []Item) {
	m.items = make(map[int64]Item, len(items))
	m.order = make([]int64, 0, len(items))
	var max int64
	for _, it := range items {
		m.items[it.ID] = it
		m.order = append(m.order, it.ID)
		if it.ID > max {
			max = it.ID
		}
	}
	m.nextID = max
}
