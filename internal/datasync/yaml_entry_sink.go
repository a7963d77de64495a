package datasync

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/definer/internal/dictionary"
)

// EntriesFileName is the file written by YAMLEntrySink.
const EntriesFileName = "dictionary.yml"

// YAMLEntrySink writes dictionary entries to a YAML file.
type YAMLEntrySink struct {
	outputDir string
}

// NewYAMLEntrySink creates a new YAMLEntrySink.
func NewYAMLEntrySink(outputDir string) *YAMLEntrySink {
	return &YAMLEntrySink{outputDir: outputDir}
}

// Path returns the file WriteAll writes to.
func (s *YAMLEntrySink) Path() string {
	return filepath.Join(s.outputDir, EntriesFileName)
}

// WriteAll writes entries to dictionary.yml, creating the output directory if needed.
func (s *YAMLEntrySink) WriteAll(entries []dictionary.Entry) error {
	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if entries == nil {
		entries = []dictionary.Entry{}
	}
	if err := writeYAML(s.Path(), entries); err != nil {
		return fmt.Errorf("write %s: %w", EntriesFileName, err)
	}
	return nil
}

// ReadYAMLEntries reads entries written by YAMLEntrySink.
func ReadYAMLEntries(path string) ([]dictionary.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open(%s) > %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var entries []dictionary.Entry
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&entries); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return entries, nil
}

func writeYAML(path string, data interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	enc := yaml.NewEncoder(f)
	defer func() { _ = enc.Close() }()
	return enc.Encode(data)
}
