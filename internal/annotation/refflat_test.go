package annotation

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/genemodel/internal/genome"
)

const (
	refFlatGeneA = "GENEA\tNM_000001\tchr1\t+\t1000\t2000\t1050\t1850\t3\t1000,1300,1700,\t1200,1500,2000,"
	refFlatGeneC = "GENEC\tNM_000004\tchr3\t-\t10000\t11000\t10100\t10900\t3\t10000,10400,10800,\t10200,10600,11000,"
)

// assertCDSRun checks that exactly one exon holds each CDS boundary and the
// coding exons are the contiguous run between them.
func assertCDSRun(t *testing.T, tr *Transcript) {
	t.Helper()
	startIdx, endIdx := -1, -1
	for i, e := range tr.Exons {
		if e.Class.HoldsCDSStart() {
			assert.Equal(t, -1, startIdx, "second exon holding CDS start")
			startIdx = i
		}
		if e.Class.HoldsCDSEnd() {
			assert.Equal(t, -1, endIdx, "second exon holding CDS end")
			endIdx = i
		}
	}
	require.NotEqual(t, -1, startIdx)
	require.NotEqual(t, -1, endIdx)
	require.LessOrEqual(t, startIdx, endIdx)
	for i, e := range tr.Exons {
		assert.Equal(t, i >= startIdx && i <= endIdx, e.Class.IsCoding(), "exon %d", e.Number)
	}
}

func TestParseRefFlat_Forward(t *testing.T) {
	tr, err := ParseRefFlat(refFlatGeneA)
	require.NoError(t, err)

	assert.Equal(t, "GENEA", tr.GeneName)
	assert.Equal(t, "NM_000001", tr.ID)
	assert.Equal(t, genome.Forward, tr.Strand)
	assert.Equal(t, int64(1050), tr.CDSStart)
	assert.Equal(t, int64(1850), tr.CDSEnd)
	assert.Equal(t, int64(700), tr.Length)
	assertContiguous(t, tr)

	require.Len(t, tr.Exons, 3)
	assert.Equal(t, CDSStartExon, tr.Exons[0].Class)
	assert.Equal(t, CodingInterior, tr.Exons[1].Class)
	assert.Equal(t, CDSEndExon, tr.Exons[2].Class)
	assertCDSRun(t, tr)
}

func TestParseRefFlat_Reverse(t *testing.T) {
	tr, err := ParseRefFlat(refFlatGeneC)
	require.NoError(t, err)

	require.Len(t, tr.Exons, 3)
	assert.Equal(t, int64(10800), tr.Exons[0].GStart, "first exon is 3'-most genomically")
	assert.Equal(t, CDSStartExon, tr.Exons[0].Class, "holds genomic cdsEnd, the start codon side")
	assert.Equal(t, CodingInterior, tr.Exons[1].Class)
	assert.Equal(t, CDSEndExon, tr.Exons[2].Class)
	assertContiguous(t, tr)
	assertCDSRun(t, tr)
}

func TestParseRefFlat_UTRExons(t *testing.T) {
	// Five exons: one 5' UTR exon, CDS over exons 2-4, one 3' UTR exon.
	line := "GENED\tNM_000005\tchr4\t+\t0\t1000\t250\t650\t5\t0,200,400,600,800,\t100,300,500,700,1000,"
	tr, err := ParseRefFlat(line)
	require.NoError(t, err)

	want := []CDSClass{BeforeCDS, CDSStartExon, CodingInterior, CDSEndExon, AfterCDS}
	for i, e := range tr.Exons {
		assert.Equal(t, want[i], e.Class, "exon %d", e.Number)
	}
	assertCDSRun(t, tr)
	assert.Len(t, tr.CodingExons(), 3)
}

func TestParseRefFlat_SingleCDSExon(t *testing.T) {
	line := "GENEA\tNM_000002\tchr1\t+\t1000\t1500\t1350\t1450\t2\t1000,1300,\t1200,1500,"
	tr, err := ParseRefFlat(line)
	require.NoError(t, err)

	assert.Equal(t, BeforeCDS, tr.Exons[0].Class)
	assert.Equal(t, CDSStartEndExon, tr.Exons[1].Class)
	assertCDSRun(t, tr)
}

func TestParseRefFlat_CDSAtExonEdges(t *testing.T) {
	// CDS starts exactly at exon 2 and ends exactly at the end of exon 2.
	line := "GENEE\tNM_000006\tchr5\t+\t0\t700\t300\t500\t3\t0,300,600,\t200,500,700,"
	tr, err := ParseRefFlat(line)
	require.NoError(t, err)

	assert.Equal(t, BeforeCDS, tr.Exons[0].Class)
	assert.Equal(t, CDSStartEndExon, tr.Exons[1].Class)
	assert.Equal(t, AfterCDS, tr.Exons[2].Class)
}

func TestParseRefFlat_NonCoding(t *testing.T) {
	tr, err := ParseRefFlat("GENEB\tNR_000003\tchr2\t-\t5000\t6000\t6000\t6000\t2\t5000,5500,\t5200,6000,")
	require.NoError(t, err)

	assert.False(t, tr.IsProteinCoding())
	for _, e := range tr.Exons {
		assert.Equal(t, NonCoding, e.Class)
		assert.False(t, e.Class.HoldsCDSStart())
		assert.False(t, e.Class.HoldsCDSEnd())
	}
}

func TestParseRefFlat_Errors(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		field string
	}{
		{"too few fields", "GENEA\tNM_000001\tchr1\t+", ""},
		{"bad txStart", strings.Replace(refFlatGeneA, "\t1000\t2000\t", "\t1e3\t2000\t", 1), "txStart"},
		{"exon count mismatch", strings.Replace(refFlatGeneA, "\t3\t", "\t4\t", 1), "exonCount"},
		{"exon list mismatch", strings.Replace(refFlatGeneA, "1200,1500,2000,", "1200,1500,", 1), "exonEnds"},
		{"CDS reversed", strings.Replace(refFlatGeneA, "\t1050\t1850\t", "\t1850\t1050\t", 1), ""},
		{"CDS ends in intron", strings.Replace(refFlatGeneA, "\t1050\t1850\t", "\t1050\t1600\t", 1), ""},
		{"CDS outside exons", strings.Replace(refFlatGeneA, "\t1050\t1850\t", "\t1250\t1260\t", 1), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRefFlat(tt.line)
			var fe *FormatError
			require.True(t, errors.As(err, &fe), "want FormatError, got %v", err)
			if tt.field != "" {
				assert.Equal(t, tt.field, fe.Field)
			}
		})
	}
}
