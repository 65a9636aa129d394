// Package annotation builds an in-memory gene model from BED12 and refFlat
// files and maps between transcript and genome coordinates.
package annotation

import (
	"fmt"

	"github.com/inodb/genemodel/internal/genome"
)

// CDSClass classifies an exon relative to the coding sequence. Start and end
// are in transcript orientation: the CDS start is the 5' boundary.
type CDSClass uint8

const (
	NonCoding       CDSClass = iota // transcript has no CDS
	BeforeCDS                       // 5' UTR exon
	CDSStartExon                    // holds the CDS start
	CodingInterior                  // entirely coding
	CDSEndExon                      // holds the CDS end
	CDSStartEndExon                 // holds both CDS boundaries
	AfterCDS                        // 3' UTR exon
)

var cdsClassNames = [...]string{
	NonCoding:       "non_coding",
	BeforeCDS:       "before_cds",
	CDSStartExon:    "cds_start",
	CodingInterior:  "coding",
	CDSEndExon:      "cds_end",
	CDSStartEndExon: "cds_start_end",
	AfterCDS:        "after_cds",
}

func (c CDSClass) String() string {
	if int(c) < len(cdsClassNames) {
		return cdsClassNames[c]
	}
	return fmt.Sprintf("CDSClass(%d)", uint8(c))
}

// IsCoding returns true if the exon contains coding sequence.
func (c CDSClass) IsCoding() bool {
	switch c {
	case CDSStartExon, CodingInterior, CDSEndExon, CDSStartEndExon:
		return true
	}
	return false
}

// HoldsCDSStart returns true if the exon contains the 5' CDS boundary.
func (c CDSClass) HoldsCDSStart() bool {
	return c == CDSStartExon || c == CDSStartEndExon
}

// HoldsCDSEnd returns true if the exon contains the 3' CDS boundary.
func (c CDSClass) HoldsCDSEnd() bool {
	return c == CDSEndExon || c == CDSStartEndExon
}

// Exon represents a single exon within a transcript.
type Exon struct {
	Number int      // Exon number (1-based, transcript order)
	TStart int64    // Transcript start (1-based, inclusive)
	TEnd   int64    // Transcript end (1-based, inclusive)
	GStart int64    // Genomic start (0-based)
	GEnd   int64    // Genomic end (exclusive)
	Class  CDSClass // Position relative to the CDS
}

// Size returns the exon length in bases.
func (e *Exon) Size() int64 {
	return e.GEnd - e.GStart
}

// ContainsTranscriptPos returns true if the 1-based transcript position lies in the exon.
func (e *Exon) ContainsTranscriptPos(tpos int64) bool {
	return tpos >= e.TStart && tpos <= e.TEnd
}

// ContainsGenomicPos returns true if the 0-based genomic base lies in the exon.
func (e *Exon) ContainsGenomicPos(gpos int64) bool {
	return gpos >= e.GStart && gpos < e.GEnd
}

// genomicSpan returns the half-open genomic range covering exon bases
// [from, to), counted from the exon's 5' end.
func (e *Exon) genomicSpan(from, to int64, strand genome.Strand) (int64, int64) {
	if strand.IsReverse() {
		return e.GEnd - to, e.GEnd - from
	}
	return e.GStart + from, e.GStart + to
}

// Transcript is a spliced feature. Exons are stored in transcript order,
// so on the reverse strand they are in descending genomic order.
// A Transcript is not modified after it is built.
type Transcript struct {
	ID       string        // Transcript ID (refFlat name / BED name)
	GeneName string        // Gene symbol used for aggregation
	Chrom    string        // Chromosome
	Start    int64         // Transcript start (0-based)
	End      int64         // Transcript end (exclusive)
	Strand   genome.Strand // Strand
	Score    int64         // BED score, 0 for refFlat
	CDSStart int64         // CDS start (genomic, 0-based); equal to CDSEnd if non-coding
	CDSEnd   int64         // CDS end (genomic, exclusive)
	Exons    []Exon        // Exons in transcript order
	Length   int64         // Spliced length (sum of exon sizes)
}

// IsProteinCoding returns true if the transcript has a coding sequence.
func (t *Transcript) IsProteinCoding() bool {
	return t.CDSStart != t.CDSEnd
}

// IsReverseStrand returns true if the transcript is on the reverse strand.
func (t *Transcript) IsReverseStrand() bool {
	return t.Strand.IsReverse()
}

// Interval returns the transcript's genomic extent.
func (t *Transcript) Interval() genome.Interval {
	return genome.Interval{Chrom: t.Chrom, Start: t.Start, End: t.End, Strand: t.Strand}
}

// Coordinate formats the transcript extent as chrom:start-end.
func (t *Transcript) Coordinate() string {
	return t.Interval().String()
}

// Overlaps returns true if any exon shares a base with [start, end).
// Introns do not count.
func (t *Transcript) Overlaps(start, end int64) bool {
	for i := range t.Exons {
		if genome.OverlapRange(t.Exons[i].GStart, t.Exons[i].GEnd, start, end) {
			return true
		}
	}
	return false
}

// ExonAt returns the exon containing the 1-based transcript position, or nil.
func (t *Transcript) ExonAt(tpos int64) *Exon {
	for i := range t.Exons {
		if t.Exons[i].ContainsTranscriptPos(tpos) {
			return &t.Exons[i]
		}
	}
	return nil
}

// TranscriptPosition maps a 0-based genomic base to its 1-based transcript
// position. Bases outside every exon return a RangeError.
func (t *Transcript) TranscriptPosition(gpos int64) (int64, error) {
	for i := range t.Exons {
		e := &t.Exons[i]
		if !e.ContainsGenomicPos(gpos) {
			continue
		}
		if t.IsReverseStrand() {
			return e.TStart + (e.GEnd - 1 - gpos), nil
		}
		return e.TStart + (gpos - e.GStart), nil
	}
	return 0, &RangeError{
		TranscriptID: t.ID,
		Length:       t.Length,
		Message:      fmt.Sprintf("genomic position %s:%d is not exonic", t.Chrom, gpos),
	}
}

// CodingExons returns the exons that contain coding sequence, in transcript order.
func (t *Transcript) CodingExons() []Exon {
	var coding []Exon
	for _, e := range t.Exons {
		if e.Class.IsCoding() {
			coding = append(coding, e)
		}
	}
	return coding
}
