// Package trackers implements tracking and saving of data generated
// during experiments
package trackers

import (
	"encoding/gob"
	"fmt"
	"os"

	ts "sfneuman.com/gotabular/timestep"
)

// Tracker tracks experiment data and saves it to disk. Experiments
// send each TimeStep to their Trackers through Track(); the Tracker
// caches whichever data it is interested in and persists it when
// Save() is called.
type Tracker interface {
	Track(t ts.TimeStep)
	Save() error
}

// LoadFloats reads back a []float64 persisted by a Tracker
func LoadFloats(filename string) ([]float64, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("loadfloats: could not open data file: %v", err)
	}
	defer file.Close()

	var data []float64
	if err := gob.NewDecoder(file).Decode(&data); err != nil {
		return nil, fmt.Errorf("loadfloats: could not decode data: %v", err)
	}
	return data, nil
}

// saveGob persists v to filename using gob encoding
func saveGob(filename string, v interface{}) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("save: could not create save file: %v", err)
	}
	defer file.Close()

	if err := gob.NewEncoder(file).Encode(v); err != nil {
		return fmt.Errorf("save: could not encode data: %v", err)
	}
	return nil
}
