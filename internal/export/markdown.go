package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/alienxp03/folio/internal/core"
)

// MarkdownExporter exports transcripts to Markdown format.
type MarkdownExporter struct{}

// Export writes the transcript as Markdown.
func (e *MarkdownExporter) Export(transcript *core.Transcript, w io.Writer) error {
	var sb strings.Builder

	// Title
	sb.WriteString(fmt.Sprintf("# %s\n\n", transcript.Topic))

	// Participants
	sb.WriteString("## Positions\n\n")
	sb.WriteString(fmt.Sprintf("- **Debater 1:** %s\n", transcript.Position1))
	sb.WriteString(fmt.Sprintf("- **Debater 2:** %s\n", transcript.Position2))
	sb.WriteString("\n")

	// Debate content
	sb.WriteString("## Debate\n\n")

	if len(transcript.Turns) == 0 {
		sb.WriteString("*No turns recorded.*\n\n")
	} else {
		for i, turn := range transcript.Turns {
			sb.WriteString(fmt.Sprintf("#### Turn %d - %s\n\n", i+1, speakerName(transcript, turn.Speaker)))
			sb.WriteString(turn.Message)
			sb.WriteString("\n\n---\n\n")
		}
	}

	// Footer
	sb.WriteString("*Exported from folio*\n")

	_, err := w.Write([]byte(sb.String()))
	return err
}

// FileExtension returns the file extension for Markdown.
func (e *MarkdownExporter) FileExtension() string {
	return "md"
}

// ContentType returns the media type for Markdown.
func (e *MarkdownExporter) ContentType() string {
	return "text/markdown; charset=utf-8"
}
