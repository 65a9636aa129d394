// Package genome provides genomic interval primitives.
package genome

import (
	"fmt"
	"strconv"
	"strings"
)

// Strand is the genomic strand of a feature.
type Strand int8

const (
	Unknown Strand = 0  // "." in BED
	Forward Strand = 1  // "+"
	Reverse Strand = -1 // "-"
)

// ParseStrand converts a BED/refFlat strand column to a Strand.
func ParseStrand(s string) (Strand, error) {
	switch s {
	case "+":
		return Forward, nil
	case "-":
		return Reverse, nil
	case ".":
		return Unknown, nil
	}
	return Unknown, fmt.Errorf("invalid strand %q", s)
}

// String returns the strand in BED notation.
func (s Strand) String() string {
	switch s {
	case Forward:
		return "+"
	case Reverse:
		return "-"
	}
	return "."
}

// IsReverse returns true for the minus strand.
func (s Strand) IsReverse() bool {
	return s == Reverse
}

// Interval is a genomic range in 0-based, half-open coordinates.
type Interval struct {
	Chrom  string // Chromosome
	Start  int64  // Start (0-based, inclusive)
	End    int64  // End (exclusive)
	Strand Strand // Strand, Unknown if not stranded
}

// Len returns the number of bases covered by the interval.
func (iv Interval) Len() int64 {
	return iv.End - iv.Start
}

// Valid returns true if End is not before Start and Start is not negative.
func (iv Interval) Valid() bool {
	return iv.Start >= 0 && iv.End >= iv.Start
}

// String formats the interval as chrom:start-end.
func (iv Interval) String() string {
	return fmt.Sprintf("%s:%d-%d", iv.Chrom, iv.Start, iv.End)
}

// ParseRegion parses a chrom:start-end region string.
func ParseRegion(s string) (Interval, error) {
	var iv Interval
	colon := strings.LastIndexByte(s, ':')
	if colon <= 0 {
		return iv, fmt.Errorf("parse region %q: expected chrom:start-end", s)
	}
	startStr, endStr, ok := strings.Cut(s[colon+1:], "-")
	if !ok {
		return iv, fmt.Errorf("parse region %q: expected chrom:start-end", s)
	}

	var err error
	if iv.Start, err = strconv.ParseInt(startStr, 10, 64); err != nil {
		return iv, fmt.Errorf("parse region %q: start: %w", s, err)
	}
	if iv.End, err = strconv.ParseInt(endStr, 10, 64); err != nil {
		return iv, fmt.Errorf("parse region %q: end: %w", s, err)
	}
	iv.Chrom = s[:colon]
	if !iv.Valid() {
		return iv, fmt.Errorf("parse region %q: end before start", s)
	}
	return iv, nil
}

// OverlapRange reports whether two half-open ranges share at least one base.
// Ranges that only touch (aEnd == bStart) do not overlap.
func OverlapRange(aStart, aEnd, bStart, bEnd int64) bool {
	return max(aStart, bStart) < min(aEnd, bEnd)
}

// Overlap reports whether a and b are on the same chromosome and share at
// least one base. Strand is ignored.
func Overlap(a, b Interval) bool {
	return a.Chrom == b.Chrom && OverlapRange(a.Start, a.End, b.Start, b.End)
}
