// Package seqstats computes simple statistics over sequencing reads.
package seqstats

import (
	"fmt"
	"io"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fastq"
	"github.com/biogo/biogo/seq/linear"

	"github.com/inodb/genemodel/internal/lineio"
)

// Stats holds read and base counts for a FASTQ file.
type Stats struct {
	Reads int64
	Bases int64
}

// MeanLength returns the mean read length, 0 for an empty file.
func (s Stats) MeanLength() float64 {
	if s.Reads == 0 {
		return 0
	}
	return float64(s.Bases) / float64(s.Reads)
}

// CountFASTQ counts the reads and bases of a FASTQ stream.
func CountFASTQ(r io.Reader) (Stats, error) {
	var st Stats
	sc := seqio.NewScanner(fastq.NewReader(r, linear.NewQSeq("", nil, alphabet.DNAredundant, alphabet.Sanger)))
	for sc.Next() {
		st.Reads++
		st.Bases += int64(sc.Seq().Len())
	}
	if err := sc.Error(); err != nil {
		return st, fmt.Errorf("read %d: %w", st.Reads+1, err)
	}
	return st, nil
}

// CountFASTQFile counts the reads and bases of a (possibly gzipped) FASTQ file.
func CountFASTQFile(path string) (Stats, error) {
	rc, err := lineio.Open(path)
	if err != nil {
		return Stats{}, err
	}
	defer rc.Close()

	st, err := CountFASTQ(rc)
	if err != nil {
		return st, fmt.Errorf("%s: %w", path, err)
	}
	return st, nil
}

// CountKmers returns the number of occurrences of every k-mer in seq.
// k must be between 1 and len(seq).
func CountKmers(seq string, k int) (map[string]int, error) {
	if k < 1 || k > len(seq) {
		return nil, fmt.Errorf("k-mer size %d out of range 1..%d", k, len(seq))
	}
	counts := make(map[string]int)
	for i := 0; i+k <= len(seq); i++ {
		counts[seq[i:i+k]]++
	}
	return counts, nil
}
