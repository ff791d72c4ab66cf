package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fwojciec/vidgrab"
	"gopkg.in/yaml.v3"
)

// Format is an export encoding.
type Format string

// Supported export formats.
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatForPath picks the export format from a file extension.
// Anything other than .json is written as YAML.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Encode writes videos to w in the given format.
func Encode(w io.Writer, format Format, videos []vidgrab.Video) error {
	if videos == nil {
		videos = []vidgrab.Video{}
	}
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(videos)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(videos); err != nil {
			return err
		}
		return enc.Close()
	default:
		return vidgrab.Errorf(vidgrab.EINVALID, "unsupported format %q", format)
	}
}

// Ensure Exporter implements vidgrab.Exporter at compile time.
var _ vidgrab.Exporter = (*Exporter)(nil)

// Exporter writes extraction results to a file, replacing it on every call.
type Exporter struct {
	path string
}

// NewExporter creates a new Exporter that writes to path. The format is
// chosen from the file extension.
func NewExporter(path string) *Exporter {
	return &Exporter{path: path}
}

// Export writes videos to the exporter's file.
func (e *Exporter) Export(ctx context.Context, videos []vidgrab.Video) error {
	var b strings.Builder
	if err := Encode(&b, FormatForPath(e.path), videos); err != nil {
		return err
	}
	if err := writeFileAtomic(e.path, []byte(b.String())); err != nil {
		return fmt.Errorf("exporting to %s: %w", e.path, err)
	}
	return nil
}
