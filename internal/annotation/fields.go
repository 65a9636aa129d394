package annotation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/inodb/genemodel/internal/genome"
)

// splitFields splits a tab-separated record and checks the field count.
func splitFields(line, format string, want int) ([]string, error) {
	fields := strings.Split(strings.TrimRight(line, "\r\n"), "\t")
	if len(fields) < want {
		return nil, &FormatError{
			Message: fmt.Sprintf("invalid %s line: expected %d fields, got %d", format, want, len(fields)),
		}
	}
	return fields, nil
}

// parseCoord parses a base-10 integer field.
func parseCoord(name, s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, &FormatError{Field: name, Message: fmt.Sprintf("invalid integer %q", s), Err: err}
	}
	return v, nil
}

// parseScore parses a BED score; "." means unset.
func parseScore(s string) (int64, error) {
	if s == "." {
		return 0, nil
	}
	return parseCoord("score", s)
}

func parseStrand(s string) (genome.Strand, error) {
	strand, err := genome.ParseStrand(s)
	if err != nil {
		return genome.Unknown, &FormatError{Field: "strand", Message: err.Error()}
	}
	return strand, nil
}

// parseIntList parses a comma-separated integer list such as "100,200,".
// A single trailing comma is allowed; empty tokens are not.
func parseIntList(name, s string) ([]int64, error) {
	s = strings.TrimSuffix(s, ",")
	if s == "" {
		return nil, &FormatError{Field: name, Message: "empty list"}
	}

	parts := strings.Split(s, ",")
	values := make([]int64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, &FormatError{Field: name, Message: fmt.Sprintf("invalid integer %q at position %d", p, i+1), Err: err}
		}
		values[i] = v
	}
	return values, nil
}

// checkCount verifies a declared element count against a parsed list.
func checkCount(name string, declared int64, n int) error {
	if declared != int64(n) {
		return &FormatError{Field: name, Message: fmt.Sprintf("declared %d but found %d", declared, n)}
	}
	return nil
}
