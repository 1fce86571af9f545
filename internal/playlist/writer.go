package playlist

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// UnwritableDestinationError reports that the serialized playlist could not be
// written to its destination.
type UnwritableDestinationError struct {
	Path string
	Err  error
}

func (e *UnwritableDestinationError) Error() string {
	return fmt.Sprintf("unwritable destination %q: %v", e.Path, e.Err)
}

func (e *UnwritableDestinationError) Unwrap() error {
	return e.Err
}

// Generate serializes the playlist, emitting groups in emission order.
func (p *Playlist) Generate() string {
	var b strings.Builder

	b.WriteString("#EXTM3U\n")

	if p.IndependentSegments {
		b.WriteString("#EXT-X-INDEPENDENT-SEGMENTS\n\n")
	}

	for _, c := range p.EmissionOrder() {
		for _, attrs := range p.groups[c] {
			writeRecord(&b, c, attrs)
		}
		// Separator after every group, empty or not
		b.WriteString("\n")
	}

	return b.String()
}

// writeRecord writes one tag line. A stream record ending in the synthetic URI
// pair gets its URI on the following line.
func writeRecord(b *strings.Builder, c Category, attrs AttributeList) {
	var uri string
	hasURI := false
	if c == StreamInf {
		uri, hasURI = attrs.URI()
		if hasURI {
			attrs = attrs[:len(attrs)-1]
		}
	}

	b.WriteString(c.Tag())
	b.WriteString(":")
	for i, pair := range attrs {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(pair.Key)
		b.WriteString("=")
		b.WriteString(pair.Value)
	}
	b.WriteString("\n")

	if hasURI {
		b.WriteString(uri)
		b.WriteString("\n")
	}
}

// WriteTo writes the serialized playlist to w.
func (p *Playlist) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, p.Generate())
	return int64(n), err
}

// WriteFile atomically writes the serialized playlist to path. On failure the
// destination is left untouched.
func (p *Playlist) WriteFile(path string) error {
	if err := writeFileAtomic(path, p); err != nil {
		return &UnwritableDestinationError{Path: path, Err: err}
	}
	return nil
}

// writeFileAtomic streams src into a temp file beside path, then renames it
// over path.
func writeFileAtomic(path string, src io.WriterTo) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".hlssort-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := src.WriteTo(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
