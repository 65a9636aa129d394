package annotation

import (
	"fmt"
	"slices"

	"github.com/inodb/genemodel/internal/genome"
)

// exonLayout is the raw material for a transcript: exon boundaries in
// ascending genomic order plus the CDS, as read from one input line.
type exonLayout struct {
	id       string
	geneName string
	chrom    string
	start    int64
	end      int64
	strand   genome.Strand
	score    int64
	cdsStart int64
	cdsEnd   int64
	gstarts  []int64 // ascending
	gends    []int64

	// optionalCDS turns a CDS that does not resolve to exons into a
	// non-coding transcript instead of an error.
	optionalCDS bool
}

// newTranscript validates the layout, puts the exons into transcript order,
// numbers them in transcript space and classifies them against the CDS.
//
// For an optionalCDS layout an unresolvable CDS does not fail: the transcript
// becomes non-coding (CDSEnd = CDSStart) and the reason is returned as cdsErr.
func newTranscript(l exonLayout) (t *Transcript, cdsErr, err error) {
	if err := validateLayout(l); err != nil {
		return nil, nil, err
	}

	exons := buildExons(transcriptOrder(l.gstarts, l.gends, l.strand))
	if err := classifyExons(exons, l.cdsStart, l.cdsEnd, l.strand); err != nil {
		if !l.optionalCDS {
			return nil, nil, err
		}
		cdsErr = err
		l.cdsEnd = l.cdsStart
		_ = classifyExons(exons, l.cdsStart, l.cdsEnd, l.strand)
	}

	t = &Transcript{
		ID:       l.id,
		GeneName: l.geneName,
		Chrom:    l.chrom,
		Start:    l.start,
		End:      l.end,
		Strand:   l.strand,
		Score:    l.score,
		CDSStart: l.cdsStart,
		CDSEnd:   l.cdsEnd,
		Exons:    exons,
	}
	if n := len(exons); n > 0 {
		t.Length = exons[n-1].TEnd
	}
	return t, cdsErr, nil
}

func validateLayout(l exonLayout) error {
	if l.start < 0 || l.end < l.start {
		return &FormatError{Message: fmt.Sprintf("invalid transcript range %d-%d", l.start, l.end)}
	}
	if len(l.gstarts) != len(l.gends) {
		return &FormatError{Message: fmt.Sprintf("%d exon starts but %d exon ends", len(l.gstarts), len(l.gends))}
	}
	if len(l.gstarts) == 0 {
		return &FormatError{Message: "no exons"}
	}
	for i := range l.gstarts {
		s, e := l.gstarts[i], l.gends[i]
		if e <= s {
			return &FormatError{Message: fmt.Sprintf("exon %d has non-positive size (%d-%d)", i+1, s, e)}
		}
		if s < l.start || e > l.end {
			return &FormatError{Message: fmt.Sprintf("exon %d (%d-%d) outside transcript %d-%d", i+1, s, e, l.start, l.end)}
		}
		if i > 0 && s < l.gends[i-1] {
			return &FormatError{Message: fmt.Sprintf("exon %d (%d-%d) overlaps or precedes exon %d", i+1, s, e, i)}
		}
	}
	return nil
}

// transcriptOrder returns copies of the genomically ascending exon
// boundaries in transcript (5' to 3') order. This is the only place the
// strand decides exon order.
func transcriptOrder(gstarts, gends []int64, strand genome.Strand) ([]int64, []int64) {
	starts := slices.Clone(gstarts)
	ends := slices.Clone(gends)
	if strand.IsReverse() {
		slices.Reverse(starts)
		slices.Reverse(ends)
	}
	return starts, ends
}

// buildExons assigns contiguous 1-based transcript coordinates to exons
// given in transcript order.
func buildExons(gstarts, gends []int64) []Exon {
	exons := make([]Exon, len(gstarts))
	tpos := int64(0) // transcript bases seen so far
	for i := range gstarts {
		size := gends[i] - gstarts[i]
		exons[i] = Exon{
			Number: i + 1,
			TStart: tpos + 1,
			TEnd:   tpos + size,
			GStart: gstarts[i],
			GEnd:   gends[i],
		}
		tpos += size
	}
	return exons
}

// cdsScan tracks progress through the CDS during classifyExons.
type cdsScan uint8

const (
	scanBefore cdsScan = iota
	scanWithin
	scanAfter
)

// classifyExons tags every exon with its CDSClass in one forward pass over
// transcript-ordered exons. cdsStart == cdsEnd marks a non-coding transcript.
// On error the classes are partially assigned.
func classifyExons(exons []Exon, cdsStart, cdsEnd int64, strand genome.Strand) error {
	if cdsStart > cdsEnd {
		return &FormatError{Message: fmt.Sprintf("CDS start %d after CDS end %d", cdsStart, cdsEnd)}
	}
	if cdsStart == cdsEnd {
		for i := range exons {
			exons[i].Class = NonCoding
		}
		return nil
	}

	// In transcript order the CDS opens at its 5' boundary, which is the
	// genomic end on the reverse strand.
	opens := func(e *Exon) bool { return e.GStart <= cdsStart && cdsStart < e.GEnd }
	closes := func(e *Exon) bool { return e.GStart < cdsEnd && cdsEnd <= e.GEnd }
	if strand.IsReverse() {
		opens, closes = closes, opens
	}

	state := scanBefore
	for i := range exons {
		e := &exons[i]
		switch state {
		case scanBefore:
			if !opens(e) {
				e.Class = BeforeCDS
				continue
			}
			if closes(e) {
				e.Class = CDSStartEndExon
				state = scanAfter
			} else {
				e.Class = CDSStartExon
				state = scanWithin
			}
		case scanWithin:
			if closes(e) {
				e.Class = CDSEndExon
				state = scanAfter
			} else {
				e.Class = CodingInterior
			}
		case scanAfter:
			e.Class = AfterCDS
		}
	}

	switch state {
	case scanBefore:
		return &FormatError{Message: fmt.Sprintf("CDS %d-%d does not start inside any exon", cdsStart, cdsEnd)}
	case scanWithin:
		return &FormatError{Message: fmt.Sprintf("CDS %d-%d does not end inside any exon", cdsStart, cdsEnd)}
	}
	return nil
}
