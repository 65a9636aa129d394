package annotation

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// MergePolicy decides how Builder handles transcripts that disagree with
// what is already recorded for their gene.
type MergePolicy int

const (
	// MergeLastWins keeps going: a duplicate transcript ID replaces the
	// earlier transcript, and a transcript on another chromosome or strand
	// is added to the gene anyway. Each case is recorded as a Conflict.
	MergeLastWins MergePolicy = iota
	// MergeStrict rejects both cases with a FormatError.
	MergeStrict
)

// ParseMergePolicy parses "last-wins" or "strict".
func ParseMergePolicy(s string) (MergePolicy, error) {
	switch s {
	case "", "last-wins":
		return MergeLastWins, nil
	case "strict":
		return MergeStrict, nil
	}
	return MergeLastWins, fmt.Errorf("unknown merge policy %q (want last-wins or strict)", s)
}

func (p MergePolicy) String() string {
	if p == MergeStrict {
		return "strict"
	}
	return "last-wins"
}

// ConflictKind identifies why a transcript clashed with its gene.
type ConflictKind int

const (
	DuplicateTranscript ConflictKind = iota // same ID already in the gene
	LocationMismatch                        // chromosome or strand differs from the gene
)

func (k ConflictKind) String() string {
	if k == LocationMismatch {
		return "location_mismatch"
	}
	return "duplicate_transcript"
}

// Conflict records a transcript accepted under MergeLastWins despite a clash.
type Conflict struct {
	Kind         ConflictKind
	GeneName     string
	TranscriptID string
	Detail       string
}

// ErrBuilt is returned by Builder.Add after Build.
var ErrBuilt = errors.New("builder already built")

// Builder groups transcripts into genes keyed by gene symbol.
type Builder struct {
	genes     map[string]*Gene
	built     *Transcriptome
	policy    MergePolicy
	conflicts []Conflict
	logger    *zap.Logger
}

// NewBuilder creates an empty builder using MergeLastWins.
func NewBuilder() *Builder {
	return &Builder{
		genes:  make(map[string]*Gene),
		logger: zap.NewNop(),
	}
}

// SetPolicy sets the merge policy.
func (b *Builder) SetPolicy(p MergePolicy) {
	b.policy = p
}

// SetLogger sets the logger used to report conflicts.
func (b *Builder) SetLogger(l *zap.Logger) {
	b.logger = l
}

// Add inserts a transcript under its gene symbol, creating the gene on first sight.
func (b *Builder) Add(t *Transcript) error {
	if b.built != nil {
		return ErrBuilt
	}
	g, ok := b.genes[t.GeneName]
	if !ok {
		b.genes[t.GeneName] = &Gene{
			Name:        t.GeneName,
			Chrom:       t.Chrom,
			Strand:      t.Strand,
			Transcripts: map[string]*Transcript{t.ID: t},
		}
		return nil
	}

	if g.Chrom != t.Chrom || g.Strand != t.Strand {
		detail := fmt.Sprintf("transcript at %s(%s), gene at %s(%s)", t.Chrom, t.Strand, g.Chrom, g.Strand)
		if err := b.conflict(LocationMismatch, t, detail); err != nil {
			return err
		}
	}
	if prev, ok := g.Transcripts[t.ID]; ok {
		detail := fmt.Sprintf("replaces %s", prev.Coordinate())
		if err := b.conflict(DuplicateTranscript, t, detail); err != nil {
			return err
		}
	}

	g.Transcripts[t.ID] = t
	return nil
}

func (b *Builder) conflict(kind ConflictKind, t *Transcript, detail string) error {
	if b.policy == MergeStrict {
		return &FormatError{
			Field:   "gene " + t.GeneName,
			Message: fmt.Sprintf("%s for transcript %s: %s", kind, t.ID, detail),
		}
	}
	b.conflicts = append(b.conflicts, Conflict{
		Kind:         kind,
		GeneName:     t.GeneName,
		TranscriptID: t.ID,
		Detail:       detail,
	})
	b.logger.Warn("transcript conflicts with gene",
		zap.Stringer("kind", kind),
		zap.String("gene", t.GeneName),
		zap.String("transcript", t.ID),
		zap.String("detail", detail))
	return nil
}

// Conflicts returns the clashes accepted so far.
func (b *Builder) Conflicts() []Conflict {
	return b.conflicts
}

// Build returns the transcriptome. Later calls return the same value, and
// Add fails with ErrBuilt.
func (b *Builder) Build() *Transcriptome {
	if b.built == nil {
		b.built = &Transcriptome{genes: b.genes}
		b.genes = nil
	}
	return b.built
}
