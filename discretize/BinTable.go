// Package discretize implements the quantization of continuous state
// observations into discrete lookup keys for tabular learning
// algorithms.
package discretize

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// NumDims is the number of state observation dimensions that can be
// discretized. Observations are fixed-length vectors of this length.
const NumDims int = 4

// Key is a discrete lookup key produced by binning each dimension of a
// continuous observation. Two observations that fall in the same bin
// on every dimension produce equal Keys, so a Key can index a tabular
// value function directly.
type Key [NumDims]int

func (k Key) String() string {
	return fmt.Sprintf("(%d %d %d %d)", k[0], k[1], k[2], k[3])
}

// BinTable holds, per observation dimension, an ordered sequence of
// contiguous half-open intervals [low, high) that together cover the
// entire real line. The first interval of each dimension extends down
// to the smallest representable float and the last extends up to the
// largest, so every value maps to exactly one bin: values far below
// the observed range land in bin 0 and values far above it land in
// bin numBins-1.
//
// A BinTable is immutable once constructed and safe for concurrent
// readers.
type BinTable struct {
	edges   [NumDims][]float64 // numBins+1 edges per dimension
	numBins int
}

// NewBinTable constructs a BinTable whose interior bins span, per
// dimension, the range observedMin*marginLow to observedMax*marginHigh
// divided into numBins equal-width intervals. The min and max vectors
// are typically empirical ranges recorded by ObserveRanges, and the
// margin multipliers widen (or narrow) those ranges so that slightly
// more extreme values still land in interior bins.
//
// NewBinTable returns an error if numBins is not positive, if the
// vectors are not NumDims long, or if the margins produce an inverted
// range on any dimension.
func NewBinTable(observedMin, observedMax mat.Vector, numBins int,
	marginLow, marginHigh float64) (*BinTable, error) {
	if numBins <= 0 {
		return nil, fmt.Errorf("bintable: numBins must be positive, got %d",
			numBins)
	}
	if observedMin.Len() != NumDims || observedMax.Len() != NumDims {
		return nil, fmt.Errorf("bintable: ranges must have %d dimensions, "+
			"got %d and %d", NumDims, observedMin.Len(), observedMax.Len())
	}

	var edges [NumDims][]float64
	for d := 0; d < NumDims; d++ {
		low := observedMin.AtVec(d) * marginLow
		high := observedMax.AtVec(d) * marginHigh
		if low >= high {
			return nil, fmt.Errorf("bintable: margins invert range on "+
				"dimension %d: [%v, %v)", d, low, high)
		}

		width := (high - low) / float64(numBins)

		edges[d] = make([]float64, numBins+1)
		edges[d][0] = -math.MaxFloat64
		for i := 1; i < numBins; i++ {
			edges[d][i] = low + width*float64(i)
		}
		edges[d][numBins] = math.MaxFloat64
	}

	return &BinTable{edges: edges, numBins: numBins}, nil
}

// NumBins returns the number of bins along each dimension
func (b *BinTable) NumBins() int {
	return b.numBins
}

// Edges returns the bin edges along dimension d. The returned slice
// must not be modified.
func (b *BinTable) Edges(d int) []float64 {
	return b.edges[d]
}

// Discretize maps a continuous observation to the Key of the bins
// containing each of its dimensions. The mapping is pure and
// deterministic: equal observations always produce equal Keys. Any
// real input maps to some bin, including infinities, which land in the
// end buckets.
func (b *BinTable) Discretize(obs mat.Vector) Key {
	if obs.Len() != NumDims {
		panic(fmt.Sprintf("discretize: observation must have %d dimensions, "+
			"got %d", NumDims, obs.Len()))
	}

	var key Key
	for d := 0; d < NumDims; d++ {
		key[d] = b.bin(d, obs.AtVec(d))
	}
	return key
}

// bin scans the ordered intervals of dimension d for the one containing
// value. Total coverage of the reals means the scan cannot miss: a
// value at or above the last interior edge belongs to the top bucket.
func (b *BinTable) bin(d int, value float64) int {
	for i := 0; i < b.numBins-1; i++ {
		if value < b.edges[d][i+1] {
			return i
		}
	}
	return b.numBins - 1
}
