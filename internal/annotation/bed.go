package annotation

import (
	"strings"

	"github.com/inodb/genemodel/internal/genome"
	"github.com/inodb/genemodel/internal/lineio"
)

// BedRecord is a BED6 feature.
type BedRecord struct {
	Chrom  string        // Chromosome
	Start  int64         // Start (0-based)
	End    int64         // End (exclusive)
	Name   string        // Feature name
	Score  int64         // Score, 0 if "."
	Strand genome.Strand // Strand, Unknown if "."
}

// ParseBED parses the first six fields of a BED line. Extra fields are ignored.
func ParseBED(line string) (*BedRecord, error) {
	fields, err := splitFields(line, "BED", 6)
	if err != nil {
		return nil, err
	}

	start, err := parseCoord("start", fields[1])
	if err != nil {
		return nil, err
	}
	end, err := parseCoord("end", fields[2])
	if err != nil {
		return nil, err
	}
	if start < 0 || end < start {
		return nil, &FormatError{Field: "end", Message: "end before start"}
	}
	score, err := parseScore(fields[4])
	if err != nil {
		return nil, err
	}
	strand, err := parseStrand(fields[5])
	if err != nil {
		return nil, err
	}

	return &BedRecord{
		Chrom:  fields[0],
		Start:  start,
		End:    end,
		Name:   fields[3],
		Score:  score,
		Strand: strand,
	}, nil
}

// Interval returns the record's genomic range.
func (r *BedRecord) Interval() genome.Interval {
	return genome.Interval{Chrom: r.Chrom, Start: r.Start, End: r.End, Strand: r.Strand}
}

// Coordinate formats the record as chrom:start-end.
func (r *BedRecord) Coordinate() string {
	return r.Interval().String()
}

// Overlaps returns true if the record shares a base with [start, end).
func (r *BedRecord) Overlaps(start, end int64) bool {
	return genome.OverlapRange(r.Start, r.End, start, end)
}

// isHeaderLine reports lines that carry no record: blanks, comments and
// UCSC track/browser lines. The keywords must stand alone, so a refFlat gene
// symbol such as "trackA" is still a record.
func isHeaderLine(line string) bool {
	return line == "" ||
		strings.HasPrefix(line, "#") ||
		hasKeyword(line, "track") ||
		hasKeyword(line, "browser")
}

// hasKeyword reports whether line is kw alone or kw followed by whitespace.
func hasKeyword(line, kw string) bool {
	rest, ok := strings.CutPrefix(line, kw)
	return ok && (rest == "" || rest[0] == ' ' || rest[0] == '\t')
}

// ReadBedRecords reads all BED6 records from a (possibly gzipped) file.
// The first malformed line aborts the read.
func ReadBedRecords(path string) ([]*BedRecord, error) {
	var records []*BedRecord
	err := lineio.ScanFile(path, func(lineNum int, line string) error {
		if isHeaderLine(line) {
			return nil
		}
		r, err := ParseBED(line)
		if err != nil {
			return withLine(err, lineNum)
		}
		records = append(records, r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}
