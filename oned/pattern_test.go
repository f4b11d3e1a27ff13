package oned

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gridscan "github.com/gridscan/gridscan"
	"github.com/gridscan/gridscan/bitgrid"
)

func rowFromRuns(t *testing.T, startsBlack bool, runs ...int) *bitgrid.BitArray {
	t.Helper()
	size := 0
	for _, r := range runs {
		size += r
	}
	row := bitgrid.NewBitArray(size)
	pos := 0
	black := startsBlack
	for _, r := range runs {
		if black {
			row.SetRange(pos, pos+r)
		}
		pos += r
		black = !black
	}
	return row
}

func TestRecordPattern(t *testing.T) {
	row := rowFromRuns(t, true, 3, 2, 4)
	counters := make([]int, 3)
	require.NoError(t, RecordPattern(row, 0, counters))
	assert.Equal(t, []int{3, 2, 4}, counters)
}

func TestRecordPatternTooFewRuns(t *testing.T) {
	row := rowFromRuns(t, true, 3, 2)
	counters := make([]int, 4)
	assert.ErrorIs(t, RecordPattern(row, 0, counters), gridscan.ErrNotFound)
	assert.ErrorIs(t, RecordPattern(row, 10, counters), gridscan.ErrNotFound)
}

func TestRecordPatternInReverse(t *testing.T) {
	// black(1) white(2) black(2) white(2) black(3)
	row := rowFromRuns(t, true, 1, 2, 2, 2, 3)
	counters := make([]int, 3)
	require.NoError(t, RecordPatternInReverse(row, 9, counters))
	assert.Equal(t, []int{2, 2, 2}, counters)
}

func TestRecordPatternInReverseRunsOffRow(t *testing.T) {
	row := rowFromRuns(t, true, 3, 2, 4)
	counters := make([]int, 3)
	assert.ErrorIs(t, RecordPatternInReverse(row, 8, counters), gridscan.ErrNotFound)
}

func TestPatternMatchVarianceExact(t *testing.T) {
	variance := PatternMatchVariance([]int{4, 2, 2}, []int{2, 1, 1}, 0.5)
	assert.Equal(t, 0.0, variance, "exactly scaled counters have zero variance")
}

func TestPatternMatchVarianceSmallDeviation(t *testing.T) {
	// total 40 over pattern length 4: unit width 10.
	// deviations: |21-20| + |10-10| + |9-10| = 2 -> 2/40
	variance := PatternMatchVariance([]int{21, 10, 9}, []int{2, 1, 1}, 0.5)
	assert.InDelta(t, 0.05, variance, 1e-9)
}

func TestPatternMatchVarianceTotalTooSmall(t *testing.T) {
	variance := PatternMatchVariance([]int{1, 1, 1}, []int{2, 2, 2}, 0.5)
	assert.True(t, math.IsInf(variance, 1))
}

func TestPatternMatchVarianceIndividualCutoff(t *testing.T) {
	// unit width 8; both counters miss their target of 8 by 4, beyond
	// the allowed 0.3*8.
	variance := PatternMatchVariance([]int{12, 4}, []int{1, 1}, 0.3)
	assert.True(t, math.IsInf(variance, 1))
}
