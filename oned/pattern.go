// Package oned holds the row-scanning machinery shared by the
// one-dimensional barcode readers.
package oned

import (
	"math"

	gridscan "github.com/gridscan/gridscan"
	"github.com/gridscan/gridscan/bitgrid"
)

// RecordPattern fills counters with the widths of successive same-color
// runs in row, starting at start. The run at start may be black or white;
// counters alternate from there.
func RecordPattern(row *bitgrid.BitArray, start int, counters []int) error {
	numCounters := len(counters)
	for i := range counters {
		counters[i] = 0
	}
	end := row.Size()
	if start >= end {
		return gridscan.ErrNotFound
	}
	isWhite := !row.Get(start)
	counterPosition := 0
	i := start
	for i < end {
		if row.Get(i) != isWhite {
			counters[counterPosition]++
		} else {
			counterPosition++
			if counterPosition == numCounters {
				break
			}
			counters[counterPosition] = 1
			isWhite = !isWhite
		}
		i++
	}
	if !(counterPosition == numCounters || (counterPosition == numCounters-1 && i == end)) {
		return gridscan.ErrNotFound
	}
	return nil
}

// RecordPatternInReverse walks backwards from start across len(counters)
// color transitions, then records the pattern forward from there.
func RecordPatternInReverse(row *bitgrid.BitArray, start int, counters []int) error {
	transitionsLeft := len(counters)
	last := row.Get(start)
	for start > 0 && transitionsLeft >= 0 {
		start--
		if row.Get(start) != last {
			transitionsLeft--
			last = !last
		}
	}
	if transitionsLeft >= 0 {
		return gridscan.ErrNotFound
	}
	return RecordPattern(row, start+1, counters)
}

// PatternMatchVariance scores how well observed run widths match a
// reference pattern, as total variance normalized by the total observed
// width. It returns +Inf when the runs cannot possibly match, or when any
// single run deviates by more than maxIndividualVariance (expressed as a
// ratio of the scaled pattern width). Lower is better; callers pick the
// candidate with the lowest variance and reject ties.
func PatternMatchVariance(counters, pattern []int, maxIndividualVariance float64) float64 {
	total := 0
	patternLength := 0
	for i := range counters {
		total += counters[i]
		patternLength += pattern[i]
	}
	if total < patternLength {
		// Fewer pixels than pattern modules: no match is possible.
		return math.Inf(1)
	}

	unitBarWidth := float64(total) / float64(patternLength)

	totalVariance := 0.0
	for i := range counters {
		scaledPattern := float64(pattern[i]) * unitBarWidth
		variance := float64(counters[i]) - scaledPattern
		if variance < 0 {
			variance = -variance
		}
		if variance > maxIndividualVariance*scaledPattern {
			return math.Inf(1)
		}
		totalVariance += variance
	}
	return totalVariance / float64(total)
}
