// Package tabular implements action-value storage for tabular
// learning algorithms.
package tabular

import (
	"encoding/gob"
	"fmt"
	"os"

	"sfneuman.com/gotabular/discretize"
)

// ValueTable is a sparse mapping from discrete state keys to estimated
// action values. Each key maps to a fixed-length vector of estimated
// expected discounted returns, one entry per action.
//
// The table is lazily populated: reading a key that has never been
// seen materializes a zero vector for it. Entries are never deleted
// and the table has no capacity bound, so it grows with the number of
// distinct keys visited.
//
// A ValueTable is owned and mutated by exactly one Learner during
// training; it is not safe for concurrent use.
type ValueTable struct {
	numActions int
	values     map[discretize.Key][]float64
}

// NewValueTable returns an empty ValueTable whose entries hold one
// value estimate per action. An empty action set is a configuration
// error.
func NewValueTable(numActions int) (*ValueTable, error) {
	if numActions <= 0 {
		return nil, fmt.Errorf("valuetable: numActions must be positive, "+
			"got %d", numActions)
	}
	return &ValueTable{
		numActions: numActions,
		values:     make(map[discretize.Key][]float64),
	}, nil
}

// NumActions returns the length of the action-value vectors stored by
// the table
func (v *ValueTable) NumActions() int {
	return v.numActions
}

// Len returns the number of distinct keys the table holds values for.
// Keys materialized by Get count towards the length.
func (v *ValueTable) Len() int {
	return len(v.values)
}

// Get returns the action values stored for key. If the key has never
// been seen, a zero vector is materialized, stored, and returned; the
// key is present in the table afterwards. The returned slice is the
// table's backing storage for the key.
func (v *ValueTable) Get(key discretize.Key) []float64 {
	values, ok := v.values[key]
	if !ok {
		values = make([]float64, v.numActions)
		v.values[key] = values
	}
	return values
}

// Update overwrites the estimate stored for a single action in the
// state denoted by key, materializing the key if absent
func (v *ValueTable) Update(key discretize.Key, action int, value float64) {
	if action < 0 || action >= v.numActions {
		panic(fmt.Sprintf("update: action %d ∉ [0, %d)", action,
			v.numActions))
	}
	v.Get(key)[action] = value
}

// Each calls f once for every key currently in the table
func (v *ValueTable) Each(f func(key discretize.Key, values []float64)) {
	for key, values := range v.values {
		f(key, values)
	}
}

// tableData mirrors ValueTable for gob serialization
type tableData struct {
	NumActions int
	Values     map[discretize.Key][]float64
}

// Save persists the table to the argument file using gob encoding
func (v *ValueTable) Save(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("save: could not create save file: %v", err)
	}
	defer file.Close()

	data := tableData{NumActions: v.numActions, Values: v.values}
	if err := gob.NewEncoder(file).Encode(data); err != nil {
		return fmt.Errorf("save: could not encode table: %v", err)
	}
	return nil
}

// Load reads a table previously persisted with Save
func Load(filename string) (*ValueTable, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("load: could not open save file: %v", err)
	}
	defer file.Close()

	var data tableData
	if err := gob.NewDecoder(file).Decode(&data); err != nil {
		return nil, fmt.Errorf("load: could not decode table: %v", err)
	}
	if data.NumActions <= 0 {
		return nil, fmt.Errorf("load: corrupt table: numActions = %d",
			data.NumActions)
	}
	if data.Values == nil {
		data.Values = make(map[discretize.Key][]float64)
	}

	return &ValueTable{numActions: data.NumActions, values: data.Values}, nil
}
