// Package lineio reads line-oriented text files, transparently
// decompressing gzip input.
package lineio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// maxLineSize bounds a single line; refFlat exon lists for large genes
// can exceed bufio's 64KB default.
const maxLineSize = 4 * 1024 * 1024

// multiReadCloser closes the decompressor and the underlying file together.
type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Open opens path for reading. Files ending in .gz, or starting with the
// gzip magic bytes, are decompressed. "-" reads stdin. The input is never
// seeked, so pipes and FIFOs work.
func Open(path string) (io.ReadCloser, error) {
	if path == "-" {
		return open(os.Stdin, path, nil)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	rc, err := open(f, path, f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return rc, nil
}

// open wraps r, decompressing it if it is gzip. closer, if not nil, is
// closed with the returned reader.
func open(r io.Reader, path string, closer io.Closer) (io.ReadCloser, error) {
	br := bufio.NewReader(r)
	sig, err := br.Peek(2)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var closers []io.Closer
	if closer != nil {
		closers = append(closers, closer)
	}

	if strings.HasSuffix(path, ".gz") || (len(sig) == 2 && sig[0] == 0x1f && sig[1] == 0x8b) {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("open gzip reader %s: %w", path, err)
		}
		return &multiReadCloser{Reader: gz, closers: append([]io.Closer{gz}, closers...)}, nil
	}
	return &multiReadCloser{Reader: br, closers: closers}, nil
}

// Scan calls fn for every line of r with its 1-based line number.
// Trailing "\r" is stripped. Scanning stops at the first error returned by fn.
func Scan(r io.Reader, fn func(lineNum int, line string) error) error {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, maxLineSize)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		if err := fn(lineNum, strings.TrimRight(scanner.Text(), "\r")); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan line %d: %w", lineNum+1, err)
	}
	return nil
}

// ScanFile opens path with Open and scans it with Scan.
func ScanFile(path string, fn func(lineNum int, line string) error) error {
	rc, err := Open(path)
	if err != nil {
		return err
	}
	defer rc.Close()

	return Scan(rc, fn)
}
