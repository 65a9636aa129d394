package genome

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStrand(t *testing.T) {
	tests := []struct {
		input    string
		expected Strand
	}{
		{"+", Forward},
		{"-", Reverse},
		{".", Unknown},
	}
	for _, tt := range tests {
		s, err := ParseStrand(tt.input)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, s)
		assert.Equal(t, tt.input, s.String())
	}

	_, err := ParseStrand("x")
	assert.Error(t, err)
}

func TestOverlapRange(t *testing.T) {
	tests := []struct {
		name       string
		a, b       [2]int64
		overlapped bool
	}{
		{"contained", [2]int64{100, 200}, [2]int64{150, 160}, true},
		{"partial", [2]int64{100, 200}, [2]int64{190, 300}, true},
		{"touching", [2]int64{100, 200}, [2]int64{200, 300}, false},
		{"disjoint", [2]int64{100, 200}, [2]int64{250, 300}, false},
		{"single base", [2]int64{100, 101}, [2]int64{100, 101}, true},
		{"empty range", [2]int64{150, 150}, [2]int64{100, 200}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overlapped, OverlapRange(tt.a[0], tt.a[1], tt.b[0], tt.b[1]))
			assert.Equal(t, tt.overlapped, OverlapRange(tt.b[0], tt.b[1], tt.a[0], tt.a[1]), "symmetry")
		})
	}
}

func TestOverlap_BedRecordCases(t *testing.T) {
	rec := Interval{Chrom: "chr1", Start: 3192856, End: 3192888}

	assert.True(t, Overlap(rec, Interval{Chrom: "chr1", Start: 3192877, End: 3192900}))
	assert.False(t, Overlap(rec, Interval{Chrom: "chr1", Start: 3192889, End: 3192900}))
	assert.False(t, Overlap(rec, Interval{Chrom: "chr2", Start: 3192877, End: 3192900}), "different chromosome")
}

func TestOverlap_Symmetric(t *testing.T) {
	ivs := []Interval{
		{Chrom: "chr1", Start: 0, End: 10},
		{Chrom: "chr1", Start: 5, End: 15},
		{Chrom: "chr1", Start: 10, End: 20},
		{Chrom: "chr1", Start: 20, End: 20},
		{Chrom: "chr2", Start: 0, End: 100},
	}
	for _, a := range ivs {
		for _, b := range ivs {
			assert.Equal(t, Overlap(a, b), Overlap(b, a), "%s vs %s", a, b)
		}
	}
}

func TestParseRegion(t *testing.T) {
	iv, err := ParseRegion("chr8:45691195-45809133")
	require.NoError(t, err)
	assert.Equal(t, "chr8", iv.Chrom)
	assert.Equal(t, int64(45691195), iv.Start)
	assert.Equal(t, int64(45809133), iv.End)
	assert.Equal(t, "chr8:45691195-45809133", iv.String())
	assert.Equal(t, int64(117938), iv.Len())

	iv, err = ParseRegion("HLA-A:10-20")
	require.NoError(t, err)
	assert.Equal(t, "HLA-A", iv.Chrom)

	for _, bad := range []string{
		"chr1", ":1-2", "chr1:5-1", "chr1:a-b", "chr1:100",
		"chr1:100-200abc", "chr1:100x-200", "chr1:-5-10", "chr1:100-", "chr1:1-2-3",
	} {
		_, err := ParseRegion(bad)
		assert.Error(t, err, bad)
	}
}
