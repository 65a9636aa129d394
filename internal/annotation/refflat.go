package annotation

import (
	"fmt"
)

// ParseRefFlat builds a transcript from a UCSC refFlat line:
//
//	geneName name chrom strand txStart txEnd cdsStart cdsEnd exonCount exonStarts exonEnds
//
// Exon lists hold absolute genomic coordinates in ascending order.
// cdsStart == cdsEnd marks a non-coding transcript.
func ParseRefFlat(line string) (*Transcript, error) {
	fields, err := splitFields(line, "refFlat", 11)
	if err != nil {
		return nil, err
	}

	strand, err := parseStrand(fields[3])
	if err != nil {
		return nil, err
	}
	txStart, err := parseCoord("txStart", fields[4])
	if err != nil {
		return nil, err
	}
	txEnd, err := parseCoord("txEnd", fields[5])
	if err != nil {
		return nil, err
	}
	cdsStart, err := parseCoord("cdsStart", fields[6])
	if err != nil {
		return nil, err
	}
	cdsEnd, err := parseCoord("cdsEnd", fields[7])
	if err != nil {
		return nil, err
	}
	exonCount, err := parseCoord("exonCount", fields[8])
	if err != nil {
		return nil, err
	}
	exonStarts, err := parseIntList("exonStarts", fields[9])
	if err != nil {
		return nil, err
	}
	exonEnds, err := parseIntList("exonEnds", fields[10])
	if err != nil {
		return nil, err
	}

	if len(exonStarts) != len(exonEnds) {
		return nil, &FormatError{
			Field:   "exonEnds",
			Message: fmt.Sprintf("%d exon starts but %d exon ends", len(exonStarts), len(exonEnds)),
		}
	}
	if err := checkCount("exonCount", exonCount, len(exonStarts)); err != nil {
		return nil, err
	}

	t, _, err := newTranscript(exonLayout{
		id:       fields[1],
		geneName: fields[0],
		chrom:    fields[2],
		start:    txStart,
		end:      txEnd,
		strand:   strand,
		cdsStart: cdsStart,
		cdsEnd:   cdsEnd,
		gstarts:  exonStarts,
		gends:    exonEnds,
	})
	return t, err
}
