package annotation

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/inodb/genemodel/internal/lineio"
)

// Format identifies a transcript annotation file format.
type Format int

const (
	FormatUnknown Format = iota
	FormatBED12
	FormatRefFlat
)

func (f Format) String() string {
	switch f {
	case FormatBED12:
		return "bed12"
	case FormatRefFlat:
		return "refflat"
	}
	return "unknown"
}

// ParseFormat parses a format name as accepted on the command line.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "bed12", "bed":
		return FormatBED12, nil
	case "refflat":
		return FormatRefFlat, nil
	}
	return FormatUnknown, fmt.Errorf("unknown annotation format %q (want bed12 or refflat)", s)
}

// DetectFormat guesses the format from the file name, ignoring a .gz suffix.
func DetectFormat(path string) Format {
	name := strings.ToLower(filepath.Base(path))
	name = strings.TrimSuffix(name, ".gz")

	switch {
	case strings.HasSuffix(name, ".bed12"), strings.HasSuffix(name, ".bed"):
		return FormatBED12
	case strings.Contains(name, "refflat"):
		return FormatRefFlat
	}
	return FormatUnknown
}

// Loader builds a Transcriptome from one BED12 or refFlat file.
type Loader struct {
	path          string
	format        Format
	policy        MergePolicy
	skipMalformed bool
	skipped       error
	conflicts     []Conflict
	logger        *zap.Logger
}

// NewLoader creates a loader. FormatUnknown means detect from the file name,
// then from the field count of the first record.
func NewLoader(path string, format Format) *Loader {
	return &Loader{
		path:   path,
		format: format,
		logger: zap.NewNop(),
	}
}

// SetSkipMalformed switches from fail-fast to skip-and-report: malformed
// lines are logged, collected in Skipped, and loading continues.
func (l *Loader) SetSkipMalformed(skip bool) {
	l.skipMalformed = skip
}

// SetPolicy sets the merge policy passed to the Builder.
func (l *Loader) SetPolicy(p MergePolicy) {
	l.policy = p
}

// SetLogger sets the logger for warnings.
func (l *Loader) SetLogger(logger *zap.Logger) {
	l.logger = logger
}

// Skipped returns the errors of lines skipped by the last Load.
func (l *Loader) Skipped() []error {
	return multierr.Errors(l.skipped)
}

// Conflicts returns the clashes accepted by the last Load under MergeLastWins.
func (l *Loader) Conflicts() []Conflict {
	return l.conflicts
}

// Load reads the file and returns the transcriptome.
func (l *Loader) Load() (*Transcriptome, error) {
	l.skipped = nil
	l.conflicts = nil

	b := NewBuilder()
	b.SetPolicy(l.policy)
	b.SetLogger(l.logger)

	format := l.format
	if format == FormatUnknown {
		format = DetectFormat(l.path)
	}

	err := lineio.ScanFile(l.path, func(lineNum int, line string) error {
		if isHeaderLine(line) {
			return nil
		}
		if format == FormatUnknown {
			format = sniffFormat(line)
			if format == FormatUnknown {
				return &FormatError{Line: lineNum, Message: "cannot detect format from record"}
			}
		}

		err := l.addLine(b, format, lineNum, line)
		if err == nil {
			return nil
		}
		err = withLine(err, lineNum)
		if !l.skipMalformed {
			return err
		}
		l.logger.Warn("skipping malformed line", zap.Int("line", lineNum), zap.Error(err))
		l.skipped = multierr.Append(l.skipped, err)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", l.path, err)
	}

	l.conflicts = b.Conflicts()
	tx := b.Build()
	l.logger.Info("loaded transcriptome",
		zap.String("path", l.path),
		zap.Stringer("format", format),
		zap.Int("genes", tx.GeneCount()),
		zap.Int("transcripts", tx.TranscriptCount()),
		zap.Int("skipped", len(l.Skipped())),
		zap.Int("conflicts", len(l.conflicts)))
	return tx, nil
}

func (l *Loader) addLine(b *Builder, format Format, lineNum int, line string) error {
	t, cdsErr, err := parseLine(format, line)
	if err != nil {
		return err
	}
	if cdsErr != nil {
		l.logger.Warn("thick range outside blocks, treating as non-coding",
			zap.Int("line", lineNum),
			zap.String("transcript", t.ID),
			zap.Error(cdsErr))
	}
	return b.Add(t)
}

// parseLine parses one record. cdsErr is set when a BED12 thick range was
// dropped.
func parseLine(format Format, line string) (t *Transcript, cdsErr, err error) {
	switch format {
	case FormatBED12:
		return parseBED12(line)
	case FormatRefFlat:
		t, err = ParseRefFlat(line)
		return t, nil, err
	}
	return nil, nil, fmt.Errorf("unsupported format %s", format)
}

// sniffFormat guesses the format from a record's field count.
func sniffFormat(line string) Format {
	n := strings.Count(line, "\t") + 1
	switch {
	case n == 11:
		return FormatRefFlat
	case n >= 12:
		return FormatBED12
	}
	return FormatUnknown
}

// LoadTranscriptome is a shortcut for NewLoader(path, FormatUnknown).Load().
func LoadTranscriptome(path string) (*Transcriptome, error) {
	return NewLoader(path, FormatUnknown).Load()
}

// ParseTranscripts parses every record of r in the given format without
// aggregating them. The first malformed line aborts parsing.
func ParseTranscripts(r io.Reader, format Format) ([]*Transcript, error) {
	var transcripts []*Transcript
	err := lineio.Scan(r, func(lineNum int, line string) error {
		if isHeaderLine(line) {
			return nil
		}
		t, _, err := parseLine(format, line)
		if err != nil {
			return withLine(err, lineNum)
		}
		transcripts = append(transcripts, t)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return transcripts, nil
}
