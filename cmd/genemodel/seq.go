package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/inodb/genemodel/internal/seqstats"
)

func newFqstatCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "fqstat <fastq-file>",
		Short:   "Count reads and bases in a FASTQ file",
		Example: `  genemodel fqstat reads.fq.gz`,
		Args:    exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := seqstats.CountFASTQFile(args[0])
			if err != nil {
				return err
			}
			logger.Debug("counted reads", zap.String("path", args[0]), zap.Int64("reads", st.Reads))

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "reads\t%d\n", st.Reads)
			fmt.Fprintf(out, "bases\t%d\n", st.Bases)
			fmt.Fprintf(out, "mean_length\t%.2f\n", st.MeanLength())
			return nil
		},
	}
}

func newKmerCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "kmer <sequence> <k>",
		Short:   "Count k-mers in a sequence",
		Example: `  genemodel kmer ACTGACTG 3`,
		Args:    exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := strconv.Atoi(args[1])
			if err != nil {
				return &usageError{fmt.Errorf("invalid k %q", args[1])}
			}
			counts, err := seqstats.CountKmers(args[0], k)
			if err != nil {
				return &usageError{err}
			}

			kmers := make([]string, 0, len(counts))
			for kmer := range counts {
				kmers = append(kmers, kmer)
			}
			sort.Strings(kmers)

			out := cmd.OutOrStdout()
			for _, kmer := range kmers {
				fmt.Fprintf(out, "%s\t%d\n", kmer, counts[kmer])
			}
			return nil
		},
	}
}
