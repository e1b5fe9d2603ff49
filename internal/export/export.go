// Package export renders client-supplied debate transcripts to downloadable
// formats. The server keeps no conversation state, so the transcript arrives
// in the export request itself.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alienxp03/folio/internal/core"
)

// Format represents an export format.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatPDF      Format = "pdf"
	FormatJSON     Format = "json"
)

// Exporter defines the interface for exporting transcripts.
type Exporter interface {
	Export(transcript *core.Transcript, w io.Writer) error
	FileExtension() string
	ContentType() string
}

// GetExporter returns an exporter for the given format.
func GetExporter(format Format) (Exporter, error) {
	switch format {
	case FormatMarkdown:
		return &MarkdownExporter{}, nil
	case FormatPDF:
		return &PDFExporter{}, nil
	case FormatJSON:
		return &JSONExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}

// GenerateFilename creates a filename for the export.
func GenerateFilename(transcript *core.Transcript, ext string) string {
	// Sanitize topic for filename
	topic := transcript.Topic
	if len(topic) > 50 {
		topic = topic[:50]
	}

	// Replace unsafe characters
	replacer := strings.NewReplacer(
		" ", "_",
		"/", "-",
		"\\", "-",
		":", "-",
		"*", "",
		"?", "",
		"\"", "",
		"<", "",
		">", "",
		"|", "",
	)
	topic = replacer.Replace(topic)

	created := transcript.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}

	return fmt.Sprintf("debate_%s_%s.%s", created.Format("20060102"), topic, ext)
}

// speakerName formats a speaker with its stance label.
func speakerName(transcript *core.Transcript, speaker core.Speaker) string {
	if speaker == core.SpeakerDebater1 {
		return fmt.Sprintf("Debater 1 (%s)", transcript.Position1)
	}
	return fmt.Sprintf("Debater 2 (%s)", transcript.Position2)
}
