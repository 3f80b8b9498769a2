package ssoe

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ModelSpec describes the component structure of an SSOE model.
type ModelSpec struct {
	Orders    []int // Number of components per lag block
	Lags      []int // Lag of each block
	ErrorType ErrorType
	Bounds    BoundsMode
}

// layout is the component-level expansion of a ModelSpec.
type layout struct {
	n          int   // total number of components
	lags       []int // lag of each component
	position   []int // index of the component inside its order block
	maxLag     int
	initialLen int // sum of component lags
	blocks     [][2]int
}

// Normalize validates the structure and returns a copy with blocks sorted by lag.
// Blocks of order zero are dropped.
func (s ModelSpec) Normalize() (ModelSpec, error) {
	if len(s.Orders) != len(s.Lags) {
		return ModelSpec{}, fmt.Errorf("%w: %d orders for %d lags", ErrInvalidConfig, len(s.Orders), len(s.Lags))
	}
	type block struct{ order, lag int }
	blocks := make([]block, 0, len(s.Orders))
	for i := range s.Orders {
		if s.Lags[i] < 1 {
			return ModelSpec{}, fmt.Errorf("%w: lag %d must be positive", ErrInvalidConfig, s.Lags[i])
		}
		if s.Orders[i] < 0 {
			return ModelSpec{}, fmt.Errorf("%w: order %d must not be negative", ErrInvalidConfig, s.Orders[i])
		}
		if s.Orders[i] > 0 {
			blocks = append(blocks, block{s.Orders[i], s.Lags[i]})
		}
	}
	if len(blocks) == 0 {
		return ModelSpec{}, fmt.Errorf("%w: model has no components", ErrInvalidConfig)
	}
	sort.SliceStable(blocks, func(i, j int) bool { return blocks[i].lag < blocks[j].lag })

	out := ModelSpec{ErrorType: s.ErrorType, Bounds: s.Bounds}
	for _, b := range blocks {
		out.Orders = append(out.Orders, b.order)
		out.Lags = append(out.Lags, b.lag)
	}
	return out, nil
}

// Components returns the number of state components.
func (s ModelSpec) Components() int {
	n := 0
	for _, o := range s.Orders {
		n += o
	}
	return n
}

// MaxLag returns the largest lag, or 0 for an empty spec.
func (s ModelSpec) MaxLag() int {
	m := 0
	for _, l := range s.Lags {
		if l > m {
			m = l
		}
	}
	return m
}

// String renders the block structure as "1[1],1[12]".
func (s ModelSpec) String() string {
	parts := make([]string, len(s.Orders))
	for i := range s.Orders {
		parts[i] = strconv.Itoa(s.Orders[i]) + "[" + strconv.Itoa(s.Lags[i]) + "]"
	}
	return strings.Join(parts, ",")
}

func (s ModelSpec) layout() layout {
	lay := layout{maxLag: s.MaxLag()}
	for b := range s.Orders {
		start := lay.n
		for p := 0; p < s.Orders[b]; p++ {
			lay.lags = append(lay.lags, s.Lags[b])
			lay.position = append(lay.position, p)
			lay.initialLen += s.Lags[b]
			lay.n++
		}
		lay.blocks = append(lay.blocks, [2]int{start, lay.n})
	}
	return lay
}

// initialOffset returns where component i's window starts in the initial block.
func (l layout) initialOffset(i int) int {
	off := 0
	for j := 0; j < i; j++ {
		off += l.lags[j]
	}
	return off
}

// hasLevel reports whether any component has lag 1.
func (l layout) hasLevel() bool {
	return l.n > 0 && l.lags[0] == 1
}
