package export

import (
	"encoding/json"
	"io"

	"github.com/alienxp03/folio/internal/core"
)

// JSONExporter exports transcripts to JSON format.
type JSONExporter struct{}

// Export writes the transcript as JSON.
func (e *JSONExporter) Export(transcript *core.Transcript, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(transcript)
}

// FileExtension returns the file extension for JSON.
func (e *JSONExporter) FileExtension() string {
	return "json"
}

// ContentType returns the media type for JSON.
func (e *JSONExporter) ContentType() string {
	return "application/json"
}
