package records

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/exp/mmap"

	"github.com/dd0wney/cluso-leaknet/pkg/logging"
	"github.com/dd0wney/cluso-leaknet/pkg/validation"
)

// Load reads every regular file in dir as a company document and flattens
// them into officer records. Files are visited in lexicographic name order.
// The first bad file aborts the load; nothing partial is returned.
func Load(dir string, logger logging.Logger) (*Dataset, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &LoadError{File: dir, Index: -1, Cause: err}
	}

	ds := &Dataset{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		recs, err := LoadFile(path)
		if err != nil {
			return nil, err
		}

		logger.Debug("document loaded", logging.File(entry.Name()), logging.Count(len(recs)))
		ds.Records = append(ds.Records, recs...)
		ds.Files++
	}

	logger.Info("documents loaded",
		logging.Path(dir),
		logging.Int("files", ds.Files),
		logging.Int("records", len(ds.Records)),
	)
	return ds, nil
}

// LoadFile reads and decodes a single company document.
func LoadFile(path string) ([]OfficerRecord, error) {
	data, err := readMapped(path)
	if err != nil {
		return nil, &LoadError{File: path, Index: -1, Cause: err}
	}
	return Decode(path, data)
}

// Decode parses one document. name is used for SourceFile and error context.
func Decode(name string, data []byte) ([]OfficerRecord, error) {
	var doc Document
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		return nil, &LoadError{File: name, Index: -1, Cause: fmt.Errorf("%w: %v", ErrMalformedJSON, err)}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &LoadError{File: name, Index: -1, Cause: fmt.Errorf("%w: trailing data after document", ErrMalformedJSON)}
	}

	if err := validation.Struct(&doc); err != nil {
		cause := err
		switch validation.FieldOf(err) {
		case "Corp":
			cause = ErrMissingCorp
		case "Officers":
			cause = ErrMissingOfficers
		}
		return nil, &LoadError{File: name, Index: -1, Cause: cause}
	}

	company := doc.Corp.record()
	source := filepath.Base(name)

	out := make([]OfficerRecord, 0, len(*doc.Officers))
	for i, o := range *doc.Officers {
		out = append(out, OfficerRecord{
			CompanyRecord:      company,
			OfficerRawID:       o.CorpOfficerID,
			FullNameNormalized: o.FullNameNormalized,
			FullName:           o.FullName,
			Nationality:        o.Nationality,
			IDNumber:           o.IDNumber,
			SourceFile:         source,
			Index:              i,
		})
	}
	return out, nil
}

// readMapped returns a copy of the file contents read through a read-only
// memory map.
func readMapped(path string) ([]byte, error) {
	reader, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	buf := make([]byte, reader.Len())
	if len(buf) == 0 {
		return buf, nil
	}
	if _, err := reader.ReadAt(buf, 0); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return buf, nil
}
