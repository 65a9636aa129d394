package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/inodb/genemodel/internal/annotation"
	"github.com/inodb/genemodel/internal/genome"
)

func newLoadCmd() *cobra.Command {
	var lf loadFlags
	cmd := &cobra.Command{
		Use:   "load <annotation-file>",
		Short: "Load a BED12 or refFlat file and print a summary",
		Example: `  genemodel load refFlat.txt.gz
  genemodel load --skip-malformed genes.bed12`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tx, l, err := lf.load(cmd, args[0])
			if err != nil {
				return err
			}

			coding := 0
			for _, name := range tx.GeneNames() {
				g, _ := tx.Gene(name)
				for _, t := range g.Transcripts {
					if t.IsProteinCoding() {
						coding++
					}
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "genes\t%d\n", tx.GeneCount())
			fmt.Fprintf(out, "transcripts\t%d\n", tx.TranscriptCount())
			fmt.Fprintf(out, "coding\t%d\n", coding)
			fmt.Fprintf(out, "skipped\t%d\n", len(l.Skipped()))
			fmt.Fprintf(out, "conflicts\t%d\n", len(l.Conflicts()))
			return nil
		},
	}
	lf.register(cmd)
	return cmd
}

// findTranscript looks up id under gene, or in any gene if gene is empty.
func findTranscript(tx *annotation.Transcriptome, gene, id string) (*annotation.Transcript, error) {
	if gene != "" {
		return tx.Transcript(gene, id)
	}
	return tx.FindTranscript(id)
}

func newExonsCmd() *cobra.Command {
	var (
		lf   loadFlags
		gene string
	)
	cmd := &cobra.Command{
		Use:   "exons <annotation-file> <transcript-id>",
		Short: "List a transcript's exons in transcript order with their CDS class",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tx, _, err := lf.load(cmd, args[0])
			if err != nil {
				return err
			}
			t, err := findTranscript(tx, gene, args[1])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, e := range t.Exons {
				fmt.Fprintf(out, "%d\t%s\t%d\t%d\t%d\t%d\t%s\n",
					e.Number, t.Chrom, e.GStart, e.GEnd, e.TStart, e.TEnd, e.Class)
			}
			return nil
		},
	}
	lf.register(cmd)
	cmd.Flags().StringVarP(&gene, "gene", "g", "", "Gene symbol (default: search all genes)")
	return cmd
}

func newBlocksCmd() *cobra.Command {
	var (
		lf   loadFlags
		gene string
	)
	cmd := &cobra.Command{
		Use:   "blocks <annotation-file> <transcript-id> <tstart> <tend>",
		Short: "Map a transcript range to genomic blocks",
		Long: `Map a transcript range to genomic blocks.

tstart and tend are transcript offsets: the range covers transcript positions
tstart+1 through tend. Blocks are printed as chrom, start, end (0-based,
half-open) in ascending genomic order.`,
		Example: `  genemodel blocks genes.bed12 tx1 50 150`,
		Args:    exactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			tstart, err := strconv.ParseInt(args[2], 10, 64)
			if err != nil {
				return &usageError{fmt.Errorf("invalid tstart %q", args[2])}
			}
			tend, err := strconv.ParseInt(args[3], 10, 64)
			if err != nil {
				return &usageError{fmt.Errorf("invalid tend %q", args[3])}
			}

			tx, _, err := lf.load(cmd, args[0])
			if err != nil {
				return err
			}
			t, err := findTranscript(tx, gene, args[1])
			if err != nil {
				return err
			}
			starts, ends, err := t.Blocks(tstart, tend)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i := range starts {
				fmt.Fprintf(out, "%s\t%d\t%d\n", t.Chrom, starts[i], ends[i])
			}
			return nil
		},
	}
	lf.register(cmd)
	cmd.Flags().StringVarP(&gene, "gene", "g", "", "Gene symbol (default: search all genes)")
	return cmd
}

func newLocateCmd() *cobra.Command {
	var (
		lf   loadFlags
		gene string
	)
	cmd := &cobra.Command{
		Use:   "locate <annotation-file> <transcript-id> <pos>",
		Short: "Map a 0-based genomic position to its transcript position and exon",
		Long: `Map a 0-based genomic position to its transcript position and exon.

Prints the 1-based transcript position, the exon number and the exon's CDS
class. Intronic positions are an error.`,
		Example: `  genemodel locate refFlat.txt NM_000004 10850`,
		Args:    exactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			gpos, err := strconv.ParseInt(args[2], 10, 64)
			if err != nil {
				return &usageError{fmt.Errorf("invalid position %q", args[2])}
			}

			tx, _, err := lf.load(cmd, args[0])
			if err != nil {
				return err
			}
			t, err := findTranscript(tx, gene, args[1])
			if err != nil {
				return err
			}
			tpos, err := t.TranscriptPosition(gpos)
			if err != nil {
				return err
			}
			e := t.ExonAt(tpos)

			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%d\t%s\n", t.ID, tpos, e.Number, e.Class)
			return nil
		},
	}
	lf.register(cmd)
	cmd.Flags().StringVarP(&gene, "gene", "g", "", "Gene symbol (default: search all genes)")
	return cmd
}

func newOverlapCmd() *cobra.Command {
	var lf loadFlags
	cmd := &cobra.Command{
		Use:     "overlap <annotation-file> <gene> <chrom:start-end>",
		Short:   "List a gene's transcripts with an exon overlapping a region",
		Example: `  genemodel overlap refFlat.txt GENEA chr1:1100-1110`,
		Args:    exactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			region, err := genome.ParseRegion(args[2])
			if err != nil {
				return &usageError{err}
			}

			tx, _, err := lf.load(cmd, args[0])
			if err != nil {
				return err
			}
			g, err := tx.Gene(args[1])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, t := range g.OverlappingTranscripts(region) {
				fmt.Fprintf(out, "%s\t%s\t%s\n", t.ID, t.Coordinate(), t.Strand)
			}
			return nil
		},
	}
	lf.register(cmd)
	return cmd
}

func newBedCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "bed <bed-file> <chrom:start-end>",
		Short:   "List BED records overlapping a region",
		Example: `  genemodel bed peaks.bed.gz chr1:3192877-3192900`,
		Args:    exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			region, err := genome.ParseRegion(args[1])
			if err != nil {
				return &usageError{err}
			}

			records, err := annotation.ReadBedRecords(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			out := cmd.OutOrStdout()
			for _, r := range records {
				if genome.Overlap(r.Interval(), region) {
					fmt.Fprintf(out, "%s\t%s\t%s\n", r.Name, r.Coordinate(), r.Strand)
				}
			}
			return nil
		},
	}
}
