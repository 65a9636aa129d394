package annotation

import (
	"sort"

	"github.com/inodb/genemodel/internal/genome"
)

// Gene groups the transcripts that share a gene symbol.
type Gene struct {
	Name        string                 // Gene symbol
	Chrom       string                 // Chromosome of the first transcript seen
	Strand      genome.Strand          // Strand of the first transcript seen
	Transcripts map[string]*Transcript // Transcripts keyed by ID
}

// IsForwardStrand returns true if the gene is on the forward strand.
func (g *Gene) IsForwardStrand() bool {
	return g.Strand == genome.Forward
}

// IsReverseStrand returns true if the gene is on the reverse strand.
func (g *Gene) IsReverseStrand() bool {
	return g.Strand == genome.Reverse
}

// Transcript returns the transcript with the given ID.
func (g *Gene) Transcript(id string) (*Transcript, error) {
	t, ok := g.Transcripts[id]
	if !ok {
		return nil, &LookupError{Kind: "transcript", Key: id}
	}
	return t, nil
}

// TranscriptIDs returns the sorted transcript IDs of the gene.
func (g *Gene) TranscriptIDs() []string {
	ids := make([]string, 0, len(g.Transcripts))
	for id := range g.Transcripts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// OverlappingTranscripts returns the gene's transcripts with an exon
// overlapping iv, sorted by ID.
func (g *Gene) OverlappingTranscripts(iv genome.Interval) []*Transcript {
	var result []*Transcript
	for _, id := range g.TranscriptIDs() {
		t := g.Transcripts[id]
		if t.Chrom == iv.Chrom && t.Overlaps(iv.Start, iv.End) {
			result = append(result, t)
		}
	}
	return result
}

// Transcriptome maps gene symbols to genes. It is built once by a Builder
// and only read afterwards.
type Transcriptome struct {
	genes map[string]*Gene
}

// Gene returns the gene with the given symbol.
func (tx *Transcriptome) Gene(name string) (*Gene, error) {
	g, ok := tx.genes[name]
	if !ok {
		return nil, &LookupError{Kind: "gene", Key: name}
	}
	return g, nil
}

// Transcript returns a transcript by gene symbol and transcript ID.
func (tx *Transcriptome) Transcript(geneName, id string) (*Transcript, error) {
	g, err := tx.Gene(geneName)
	if err != nil {
		return nil, err
	}
	return g.Transcript(id)
}

// FindTranscript returns the transcript with the given ID from any gene.
// If the ID occurs under several genes, the gene sorting first wins.
func (tx *Transcriptome) FindTranscript(id string) (*Transcript, error) {
	for _, name := range tx.GeneNames() {
		if t, ok := tx.genes[name].Transcripts[id]; ok {
			return t, nil
		}
	}
	return nil, &LookupError{Kind: "transcript", Key: id}
}

// GeneNames returns the sorted gene symbols.
func (tx *Transcriptome) GeneNames() []string {
	names := make([]string, 0, len(tx.genes))
	for name := range tx.genes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GeneCount returns the number of genes.
func (tx *Transcriptome) GeneCount() int {
	return len(tx.genes)
}

// TranscriptCount returns the total number of transcripts.
func (tx *Transcriptome) TranscriptCount() int {
	count := 0
	for _, g := range tx.genes {
		count += len(g.Transcripts)
	}
	return count
}
