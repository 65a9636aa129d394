package annotation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/genemodel/internal/genome"
)

func TestParseBED(t *testing.T) {
	r, err := ParseBED("chr1\t3192856\t3192888\tpeak1\t0\t+\textra")
	require.NoError(t, err)
	assert.Equal(t, &BedRecord{
		Chrom:  "chr1",
		Start:  3192856,
		End:    3192888,
		Name:   "peak1",
		Strand: genome.Forward,
	}, r)
	assert.Equal(t, "chr1:3192856-3192888", r.Coordinate())
}

func TestParseBED_Errors(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		field string
	}{
		{"too few fields", "chr1\t10\t20\tpeak", ""},
		{"bad end", "chr1\t10\tx\tpeak\t0\t+", "end"},
		{"end before start", "chr1\t20\t10\tpeak\t0\t+", "end"},
		{"bad score", "chr1\t10\t20\tpeak\thigh\t+", "score"},
		{"bad strand", "chr1\t10\t20\tpeak\t0\tforward", "strand"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBED(tt.line)
			var fe *FormatError
			require.True(t, errors.As(err, &fe), "want FormatError, got %v", err)
			assert.Equal(t, tt.field, fe.Field)
		})
	}
}

func TestBedRecord_Overlaps(t *testing.T) {
	r, err := ParseBED("chr1\t3192856\t3192888\tpeak1\t0\t+")
	require.NoError(t, err)

	tests := []struct {
		start, end int64
		want       bool
	}{
		{3192877, 3192900, true},
		{3192889, 3192900, false},
		{3192888, 3192900, false}, // touching end
		{3192800, 3192856, false}, // touching start
		{3192800, 3192857, true},
		{3192860, 3192870, true}, // contained
		{3192800, 3192900, true}, // containing
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, r.Overlaps(tt.start, tt.end), "[%d, %d)", tt.start, tt.end)
	}
}

func TestReadBedRecords(t *testing.T) {
	records, err := ReadBedRecords(testdataPath("sample.bed"))
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "peak1", records[0].Name)
	assert.Equal(t, genome.Forward, records[0].Strand)

	assert.Equal(t, int64(0), records[1].Score, `"." score`)
	assert.Equal(t, genome.Reverse, records[1].Strand)

	assert.Equal(t, "chr2:100-250", records[2].Coordinate())
	assert.Equal(t, int64(12), records[2].Score)
	assert.Equal(t, genome.Unknown, records[2].Strand)
}

func TestReadBedRecords_Malformed(t *testing.T) {
	_, err := ReadBedRecords(testdataPath("sample.refFlat"))
	var fe *FormatError
	require.True(t, errors.As(err, &fe), "want FormatError, got %v", err)
	assert.Equal(t, 1, fe.Line)
}

func TestIsHeaderLine(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"", true},
		{"# comment", true},
		{"track name=genes", true},
		{"track\tname=genes", true},
		{"track", true},
		{"browser position chr1:1-100", true},
		{"trackA\tNM_000001\tchr1\t+", false},
		{"browser1\tNM_000002\tchr1\t-", false},
		{"chr1\t10\t20\tpeak\t0\t+", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isHeaderLine(tt.line), "%q", tt.line)
	}
}
