// Package stats contains statistics calculations and reporting.
package stats

import (
	"errors"
	"sort"
)

// ErrEmptyDistribution is returned when a statistic is requested over no values.
var ErrEmptyDistribution = errors.New("no data for this filter")

// ValueCount pairs a distinct value with its number of occurrences.
type ValueCount[V comparable] struct {
	Value V
	Count int
}

// Frequency holds the most and least common values of a distribution.
// Tied values are all listed, in the order they first appear in the input.
type Frequency[V any] struct {
	MaxCount int
	Most     []V
	MinCount int
	Least    []V
}

// FindExtremes counts each distinct value and returns every value sharing
// the highest count and every value sharing the lowest count. Only values
// present in the input are considered, so MinCount is never zero.
func FindExtremes[V comparable](values []V) (Frequency[V], error) {
	counts := tally(values)
	if len(counts) == 0 {
		return Frequency[V]{}, ErrEmptyDistribution
	}
	maxCount, minCount := counts[0].Count, counts[0].Count
	for _, c := range counts[1:] {
		if c.Count > maxCount {
			maxCount = c.Count
		}
		if c.Count < minCount {
			minCount = c.Count
		}
	}
	result := Frequency[V]{MaxCount: maxCount, MinCount: minCount}
	for _, c := range counts {
		if c.Count == maxCount {
			result.Most = append(result.Most, c.Value)
		}
		if c.Count == minCount {
			result.Least = append(result.Least, c.Value)
		}
	}
	return result, nil
}

// CountValues returns the distinct values ordered by descending count.
// Values with equal counts keep their first-seen order.
func CountValues[V comparable](values []V) []ValueCount[V] {
	counts := tally(values)
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}

// MapFrequency converts every value of f with fn, keeping counts and order.
func MapFrequency[V, W any](f Frequency[V], fn func(V) W) Frequency[W] {
	out := Frequency[W]{MaxCount: f.MaxCount, MinCount: f.MinCount}
	out.Most = make([]W, len(f.Most))
	for i, v := range f.Most {
		out.Most[i] = fn(v)
	}
	out.Least = make([]W, len(f.Least))
	for i, v := range f.Least {
		out.Least[i] = fn(v)
	}
	return out
}

func tally[V comparable](values []V) []ValueCount[V] {
	index := make(map[V]int)
	var counts []ValueCount[V]
	for _, v := range values {
		if i, ok := index[v]; ok {
			counts[i].Count++
			continue
		}
		index[v] = len(counts)
		counts = append(counts, ValueCount[V]{Value: v, Count: 1})
	}
	return counts
}
