// Package export persists the filtered graphs and their attribute tables as
// CSV artifacts and records them in a checksummed manifest.
package export

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"path/filepath"

	"github.com/golang/snappy"
	"golang.org/x/crypto/blake2b"
)

// Artifact names. The on-disk file name adds ".csv" or ".csv.sz".
const (
	OfficerEdges      = "officers_edges"
	CompanyEdges      = "corporations_edges"
	OfficerAttributes = "officers_attributes"
	CompanyAttributes = "corporations_attributes"
	OfficerGraph      = "officers_graph"
	CompanyGraph      = "corporations_graph"
)

const (
	csvExt    = ".csv"
	snappyExt = ".sz"
)

// Artifact describes one persisted output file.
type Artifact struct {
	Name     string `yaml:"name"`
	File     string `yaml:"file"` // relative to the output directory
	Rows     int    `yaml:"rows"`
	Checksum string `yaml:"blake2b"` // hex BLAKE2b-256 of the bytes on disk
}

// Writer writes artifacts into one output directory.
type Writer struct {
	dir      string
	compress bool
}

// NewWriter creates dir if needed. With compress set, tables are written
// with snappy framing.
func NewWriter(dir string, compress bool) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory %s: %w", dir, err)
	}
	return &Writer{dir: dir, compress: compress}, nil
}

// Dir returns the output directory.
func (w *Writer) Dir() string {
	return w.dir
}

// Path returns the absolute location of an artifact file.
func (w *Writer) Path(a Artifact) string {
	return filepath.Join(w.dir, a.File)
}

// TableFile returns the file name used for the table called name.
func (w *Writer) TableFile(name string) string {
	if w.compress {
		return name + csvExt + snappyExt
	}
	return name + csvExt
}

// WriteFile creates file in the output directory, hands body a writer and
// records the checksum of what reached the disk. rows is stored verbatim.
func (w *Writer) WriteFile(name, file string, rows int, body func(io.Writer) error) (Artifact, error) {
	path := filepath.Join(w.dir, file)
	f, err := os.Create(path)
	if err != nil {
		return Artifact{}, fmt.Errorf("create %s: %w", path, err)
	}

	sum := newChecksum()
	buf := bufio.NewWriter(io.MultiWriter(f, sum))
	if err := body(buf); err != nil {
		f.Close()
		return Artifact{}, fmt.Errorf("write %s: %w", path, err)
	}
	if err := buf.Flush(); err != nil {
		f.Close()
		return Artifact{}, fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return Artifact{}, fmt.Errorf("close %s: %w", path, err)
	}

	return Artifact{
		Name:     name,
		File:     file,
		Rows:     rows,
		Checksum: hex.EncodeToString(sum.Sum(nil)),
	}, nil
}

// WriteTable writes a CSV table, snappy framed when the writer compresses.
func (w *Writer) WriteTable(name string, header []string, rows [][]string) (Artifact, error) {
	return w.WriteFile(name, w.TableFile(name), len(rows), func(out io.Writer) error {
		if !w.compress {
			return writeCSV(out, header, rows)
		}
		sw := snappy.NewBufferedWriter(out)
		if err := writeCSV(sw, header, rows); err != nil {
			sw.Close()
			return err
		}
		return sw.Close()
	})
}

// Checksum returns the hex BLAKE2b-256 digest of the file at path.
func Checksum(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	sum := newChecksum()
	if _, err := io.Copy(sum, f); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return hex.EncodeToString(sum.Sum(nil)), nil
}

func newChecksum() hash.Hash {
	// New256 only fails for keys longer than 64 bytes.
	h, err := blake2b.New256(nil)
	if err != nil {
		panic(err)
	}
	return h
}

// openTable opens a table for reading, undoing snappy framing when the file
// name says so.
func openTable(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if filepath.Ext(path) != snappyExt {
		return f, nil
	}
	return struct {
		io.Reader
		io.Closer
	}{snappy.NewReader(bufio.NewReader(f)), f}, nil
}
