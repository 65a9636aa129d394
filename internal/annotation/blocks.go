package annotation

import (
	"slices"
)

// Blocks returns the genomic blocks that realize a transcript range.
//
// tstart and tend are transcript offsets: the range covers transcript
// positions tstart+1 through tend, so 0 < tstart < tend <= Length must hold
// or a RangeError is returned. Blocks are half-open, one per exon the range
// touches, and always returned in ascending genomic order:
//
//	           tstart                              tend
//	           |->                                 ||
//	tx:    |===================|-----------|============|
//	blocks:    |---------------|           |-------|
//
// The total length of the blocks is tend - tstart.
func (t *Transcript) Blocks(tstart, tend int64) (starts, ends []int64, err error) {
	if tstart <= 0 || tstart >= tend || tend > t.Length {
		return nil, nil, &RangeError{TranscriptID: t.ID, TStart: tstart, TEnd: tend, Length: t.Length}
	}

	open := false
	for i := range t.Exons {
		e := &t.Exons[i]
		base := e.TStart - 1 // transcript offset of the exon's 5' edge

		switch {
		case !open && tstart >= base && tstart < e.TEnd:
			if tend <= e.TEnd {
				s, en := e.genomicSpan(tstart-base, tend-base, t.Strand)
				return []int64{s}, []int64{en}, nil
			}
			s, en := e.genomicSpan(tstart-base, e.Size(), t.Strand)
			starts = append(starts, s)
			ends = append(ends, en)
			open = true

		case open && tend <= e.TEnd:
			s, en := e.genomicSpan(0, tend-base, t.Strand)
			starts = append(starts, s)
			ends = append(ends, en)
			open = false

		case open:
			starts = append(starts, e.GStart)
			ends = append(ends, e.GEnd)
		}

		if !open && len(starts) > 0 {
			break
		}
	}

	if open || len(starts) == 0 {
		// Exon sizes always sum to Length, so this means a corrupt transcript.
		return nil, nil, &RangeError{TranscriptID: t.ID, TStart: tstart, TEnd: tend, Length: t.Length,
			Message: "exon coordinates do not cover the requested range"}
	}

	if t.IsReverseStrand() {
		slices.Reverse(starts)
		slices.Reverse(ends)
	}
	return starts, ends, nil
}
