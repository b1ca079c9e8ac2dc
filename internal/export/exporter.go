// Package export writes stored complexity records to JSONL files for
// downstream tooling. The first line of every export is a manifest;
// each following line is one record. Exports can be zstd-framed for
// large stores.
package export

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"

	"bigo/internal/logging"
	"bigo/internal/store"
	"bigo/internal/version"
)

// Manifest is the first JSONL line of an export.
type Manifest struct {
	ExportID    string `json:"exportId"`
	Tool        string `json:"tool"`
	Version     string `json:"version"`
	CreatedAt   string `json:"createdAt"`
	RecordCount int    `json:"recordCount"`
}

// Options controls where and how an export is written.
type Options struct {
	// Dir is the output directory, created if missing
	Dir string

	// Compress wraps the output in a zstd frame and appends .zst
	Compress bool
}

// Result describes a completed export.
type Result struct {
	Path     string   `json:"path"`
	Manifest Manifest `json:"manifest"`
}

// Exporter writes record exports.
type Exporter struct {
	logger *logging.Logger
}

// NewExporter creates a new exporter.
func NewExporter(logger *logging.Logger) *Exporter {
	return &Exporter{logger: logger}
}

// Export writes records to a new file under opts.Dir and returns its
// path and manifest. File names embed the export ID so repeated
// exports never clobber each other.
func (e *Exporter) Export(records []store.Record, opts Options) (*Result, error) {
	if err := os.MkdirAll(opts.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	manifest := newManifest(len(records))

	name := fmt.Sprintf("records-%s.jsonl", manifest.ExportID)
	if opts.Compress {
		name += ".zst"
	}
	path := filepath.Join(opts.Dir, name)

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	if err := e.write(f, manifest, records, opts.Compress); err != nil {
		os.Remove(path)
		return nil, err
	}

	e.logger.Info("Export written", map[string]interface{}{
		"path":     path,
		"records":  manifest.RecordCount,
		"exportId": manifest.ExportID,
	})

	return &Result{Path: path, Manifest: manifest}, nil
}

// WriteTo streams an uncompressed export to w. Used when the caller
// owns the destination, e.g. `bigo export --out -`.
func (e *Exporter) WriteTo(w io.Writer, records []store.Record) (Manifest, error) {
	manifest := newManifest(len(records))
	return manifest, e.write(w, manifest, records, false)
}

func (e *Exporter) write(w io.Writer, manifest Manifest, records []store.Record, compress bool) error {
	out := w
	var zw *zstd.Encoder
	if compress {
		var err error
		zw, err = zstd.NewWriter(w)
		if err != nil {
			return fmt.Errorf("failed to create zstd writer: %w", err)
		}
		out = zw
	}

	bw := bufio.NewWriter(out)
	enc := json.NewEncoder(bw)

	if err := enc.Encode(manifest); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("failed to write record %s:%s: %w", rec.Doc, rec.Name, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush export: %w", err)
	}
	if zw != nil {
		if err := zw.Close(); err != nil {
			return fmt.Errorf("failed to finish zstd frame: %w", err)
		}
	}
	return nil
}

// ReadFile reads back an export, transparently decompressing .zst
// files. Intended for verification and tooling, not hot paths.
func ReadFile(path string) (Manifest, []store.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return Manifest{}, nil, fmt.Errorf("failed to open export: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".zst") {
		zr, err := zstd.NewReader(f)
		if err != nil {
			return Manifest{}, nil, fmt.Errorf("failed to open zstd frame: %w", err)
		}
		defer zr.Close()
		r = zr
	}

	dec := json.NewDecoder(r)

	var manifest Manifest
	if err := dec.Decode(&manifest); err != nil {
		return Manifest{}, nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var records []store.Record
	for {
		var rec store.Record
		if err := dec.Decode(&rec); err != nil {
			if err == io.EOF {
				break
			}
			return Manifest{}, nil, fmt.Errorf("failed to read record: %w", err)
		}
		records = append(records, rec)
	}
	return manifest, records, nil
}

func newManifest(count int) Manifest {
	return Manifest{
		ExportID:    uuid.New().String(),
		Tool:        "bigo",
		Version:     version.Version,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
		RecordCount: count,
	}
}
