package weights

import (
	"fmt"
	"math"

	"github.com/hupe1980/subsetsum/internal/conv"
	"github.com/hupe1980/subsetsum/model"
)

// Set is a validated weight multiset plus its target.
// A Set is immutable and safe for concurrent use.
type Set struct {
	weights []model.Weight
	values  []int64
	target  int64
}

// Normalize validates float64 weights and target.
// Values must be finite, non-negative and integral.
// maxWeights <= 0 disables the weight count limit.
func Normalize(raw []float64, target float64, maxWeights int) (*Set, error) {
	if err := checkCount(len(raw), maxWeights); err != nil {
		return nil, err
	}

	t, err := floatValue(TargetField, target)
	if err != nil {
		return nil, err
	}

	values := make([]int64, len(raw))
	for i, v := range raw {
		values[i], err = floatValue(weightField(i), v)
		if err != nil {
			return nil, err
		}
	}

	return newSet(values, t), nil
}

// NormalizeInts validates int64 weights and target.
// maxWeights <= 0 disables the weight count limit.
func NormalizeInts(raw []int64, target int64, maxWeights int) (*Set, error) {
	if err := checkCount(len(raw), maxWeights); err != nil {
		return nil, err
	}
	if target < 0 {
		return nil, &InvalidInputError{Field: TargetField, Value: float64(target), Reason: "must be non-negative"}
	}

	values := make([]int64, len(raw))
	for i, v := range raw {
		if v < 0 {
			return nil, &InvalidInputError{Field: weightField(i), Value: float64(v), Reason: "must be non-negative"}
		}
		values[i] = v
	}

	return newSet(values, target), nil
}

func newSet(values []int64, target int64) *Set {
	ws := make([]model.Weight, len(values))
	for i, v := range values {
		ws[i] = model.Weight{Index: i, Value: v}
	}
	return &Set{weights: ws, values: values, target: target}
}

func checkCount(n, maxWeights int) error {
	if maxWeights > 0 && n > maxWeights {
		return &InvalidInputError{
			Field:  "weights",
			Value:  float64(n),
			Reason: fmt.Sprintf("%d weights exceed the limit of %d", n, maxWeights),
		}
	}
	// Indices are stored in roaring bitmaps, so the last one must fit uint32.
	if n > 0 {
		if _, err := conv.IntToUint32(n - 1); err != nil {
			return &InvalidInputError{
				Field:  "weights",
				Value:  float64(n),
				Reason: fmt.Sprintf("%d weights exceed the index range", n),
				cause:  err,
			}
		}
	}
	return nil
}

func floatValue(field string, v float64) (int64, error) {
	if v < 0 || math.IsInf(v, -1) {
		return 0, &InvalidInputError{Field: field, Value: v, Reason: "must be non-negative"}
	}
	n, err := conv.Float64ToInt64(v)
	if err != nil {
		return 0, &InvalidInputError{Field: field, Value: v, Reason: err.Error(), cause: err}
	}
	return n, nil
}

// Len returns the number of weights.
func (s *Set) Len() int { return len(s.weights) }

// Target returns the normalized target.
func (s *Set) Target() int64 { return s.target }

// At returns the i-th weight in input order.
func (s *Set) At(i int) model.Weight { return s.weights[i] }

// Value returns the value of the i-th weight.
func (s *Set) Value(i int) int64 { return s.values[i] }

// Values returns a copy of the weight values in input order.
func (s *Set) Values() []int64 {
	out := make([]int64, len(s.values))
	copy(out, s.values)
	return out
}

// Weights returns a copy of the weights in input order.
func (s *Set) Weights() []model.Weight {
	out := make([]model.Weight, len(s.weights))
	copy(out, s.weights)
	return out
}

// Sum returns the total of all weights, clamped to math.MaxInt64.
func (s *Set) Sum() int64 {
	var sum int64
	for _, v := range s.values {
		if sum > math.MaxInt64-v {
			return math.MaxInt64
		}
		sum += v
	}
	return sum
}
