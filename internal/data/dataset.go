package data

import "sync"

// DataSet is a type-keyed store of Data values accumulated over one run.
// All operations are concurrency-safe, though the execution strategies
// additionally serialize writes into a single fold step per level.
type DataSet struct {
	mu     sync.RWMutex
	values map[string]Data
}

// NewDataSet creates a DataSet pre-populated with the given seed values.
func NewDataSet(seed ...Data) *DataSet {
	ds := &DataSet{values: make(map[string]Data, len(seed))}
	for _, d := range seed {
		ds.values[d.Type()] = d
	}
	return ds
}

// Contains reports whether a value for the given type name is present.
func (ds *DataSet) Contains(name string) bool {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	_, ok := ds.values[name]
	return ok
}

// Get returns the value stored under the given type name.
func (ds *DataSet) Get(name string) (Data, bool) {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	d, ok := ds.values[name]
	return d, ok
}

// Add stores values keyed by their own declared type, overwriting any
// existing entry for the same type.
func (ds *DataSet) Add(values ...Data) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	for _, d := range values {
		if d == nil {
			continue
		}
		ds.values[d.Type()] = d
	}
}

// Clone returns an independent copy of the DataSet. The stored values
// themselves are shared; builders treat them as immutable once added.
func (ds *DataSet) Clone() *DataSet {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	out := &DataSet{values: make(map[string]Data, len(ds.values))}
	for k, v := range ds.values {
		out.values[k] = v
	}
	return out
}

// Merge copies every entry of other into the receiver. On a key conflict the
// other DataSet's entry wins.
func (ds *DataSet) Merge(other *DataSet) {
	if other == nil {
		return
	}
	other.mu.RLock()
	defer other.mu.RUnlock()
	ds.mu.Lock()
	defer ds.mu.Unlock()
	for k, v := range other.values {
		ds.values[k] = v
	}
}

// Types returns the type names currently present. The order is unspecified.
func (ds *DataSet) Types() []string {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	names := make([]string, 0, len(ds.values))
	for k := range ds.values {
		names = append(names, k)
	}
	return names
}

// Len returns the number of stored values.
func (ds *DataSet) Len() int {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return len(ds.values)
}
