// Package export renders poll results as PDF documents. It consumes a
// read-only snapshot of a poll and never reaches back into the core.
package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/emilythestrangee/pollboard/backend/internal/models"
	"github.com/emilythestrangee/pollboard/backend/internal/service"
)

// Snapshot is the read model the exporter consumes.
type Snapshot struct {
	Poll    *models.Poll
	Options []models.Option
	Tally   *service.TallyResult
}

// ResultsPDF builds a one-or-more-page results document for a poll.
func ResultsPDF(snap Snapshot) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, fmt.Sprintf("Poll Results: %s", snap.Poll.Title), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Category: %s", snap.Poll.Category), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Created: %s", snap.Poll.CreatedAt.Format("2006-01-02 15:04")), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Total Votes: %d", snap.Tally.TotalVotes), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, "Results:", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	for _, option := range snap.Options {
		tally := snap.Tally.Options[option.ID]
		line := fmt.Sprintf("%s: %d votes (%.1f%%)", option.OptionText, tally.Count, tally.Percentage)
		pdf.CellFormat(0, 7, line, "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
