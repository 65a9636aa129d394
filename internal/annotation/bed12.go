package annotation

import (
	"fmt"
)

// ParseBED12 builds a transcript from a BED12 line:
//
//	chrom start end name score strand thickStart thickEnd itemRgb blockCount blockSizes blockStarts
//
// blockStarts are relative to start. thickStart/thickEnd bound the CDS;
// equal values mark a non-coding feature, and so does a thick range that does
// not start and end inside blocks. The name is used as both the transcript ID
// and the gene symbol.
func ParseBED12(line string) (*Transcript, error) {
	t, _, err := parseBED12(line)
	return t, err
}

// parseBED12 is ParseBED12 that also reports why the thick range was dropped.
func parseBED12(line string) (t *Transcript, cdsErr, err error) {
	fields, err := splitFields(line, "BED12", 12)
	if err != nil {
		return nil, nil, err
	}

	start, err := parseCoord("start", fields[1])
	if err != nil {
		return nil, nil, err
	}
	end, err := parseCoord("end", fields[2])
	if err != nil {
		return nil, nil, err
	}
	score, err := parseScore(fields[4])
	if err != nil {
		return nil, nil, err
	}
	strand, err := parseStrand(fields[5])
	if err != nil {
		return nil, nil, err
	}
	thickStart, err := parseCoord("thickStart", fields[6])
	if err != nil {
		return nil, nil, err
	}
	thickEnd, err := parseCoord("thickEnd", fields[7])
	if err != nil {
		return nil, nil, err
	}
	blockCount, err := parseCoord("blockCount", fields[9])
	if err != nil {
		return nil, nil, err
	}
	sizes, err := parseIntList("blockSizes", fields[10])
	if err != nil {
		return nil, nil, err
	}
	relStarts, err := parseIntList("blockStarts", fields[11])
	if err != nil {
		return nil, nil, err
	}

	if len(sizes) != len(relStarts) {
		return nil, nil, &FormatError{
			Field:   "blockStarts",
			Message: fmt.Sprintf("%d block sizes but %d block starts", len(sizes), len(relStarts)),
		}
	}
	if err := checkCount("blockCount", blockCount, len(sizes)); err != nil {
		return nil, nil, err
	}

	gstarts := make([]int64, len(sizes))
	gends := make([]int64, len(sizes))
	for i := range sizes {
		if relStarts[i] < 0 {
			return nil, nil, &FormatError{Field: "blockStarts", Message: fmt.Sprintf("negative block start %d", relStarts[i])}
		}
		gstarts[i] = start + relStarts[i]
		gends[i] = gstarts[i] + sizes[i]
	}

	return newTranscript(exonLayout{
		id:       fields[3],
		geneName: fields[3],
		chrom:    fields[0],
		start:    start,
		end:      end,
		strand:   strand,
		score:    score,
		cdsStart: thickStart,
		cdsEnd:   thickEnd,
		gstarts:  gstarts,
		gends:    gends,

		optionalCDS: true,
	})
}
