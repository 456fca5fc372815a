package policy

import (
	"math"
	"testing"

	"sfneuman.com/gotabular/agent/tabular"
	"sfneuman.com/gotabular/discretize"
)

func TestSnapshotUniformFallback(t *testing.T) {
	table, err := tabular.NewValueTable(2)
	if err != nil {
		t.Fatal(err)
	}

	snapshot, err := NewSnapshot(table, 0.1, 13)
	if err != nil {
		t.Fatal(err)
	}

	if snapshot.Len() != 0 {
		t.Fatalf("snapshot of empty table should hold no states, got %d",
			snapshot.Len())
	}

	probs := snapshot.Probabilities(discretize.Key{9, 9, 9, 9})
	for i, p := range probs {
		if math.Abs(p-0.5) > tolerance {
			t.Errorf("unseen key entry %d: expected uniform 0.5, got %v",
				i, p)
		}
	}
}

func TestSnapshotFreezesTableContents(t *testing.T) {
	table, err := tabular.NewValueTable(2)
	if err != nil {
		t.Fatal(err)
	}

	key := discretize.Key{1, 2, 3, 4}
	table.Update(key, 1, 2.0)

	snapshot, err := NewSnapshot(table, 0.2, 13)
	if err != nil {
		t.Fatal(err)
	}

	before := snapshot.Probabilities(key)[1]

	// Later training updates must not leak into the snapshot
	table.Update(key, 0, 10.0)
	after := snapshot.Probabilities(key)[1]

	if before != after {
		t.Errorf("snapshot changed after table update: %v -> %v", before,
			after)
	}
	if before != 1.0-0.2+0.2/2 {
		t.Errorf("expected greedy probability %v, got %v", 1.0-0.2+0.2/2,
			before)
	}
}

func TestSnapshotZeroEpsilonDeterministic(t *testing.T) {
	table, err := tabular.NewValueTable(2)
	if err != nil {
		t.Fatal(err)
	}

	key := discretize.Key{0, 1, 0, 1}
	table.Update(key, 1, 0.5)

	snapshot, err := NewSnapshot(table, 0.0, 99)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 100; i++ {
		if a := snapshot.SelectAction(key); a != 1 {
			t.Fatalf("zero-epsilon snapshot selected non-greedy action %d", a)
		}
	}
}
