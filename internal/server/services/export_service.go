package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/go-pdf/fpdf"
)

// PDF report covers the most recent entries only.
const pdfReportEntries = 30

// ExportService renders the live log as CSV and PDF downloads.
type ExportService struct {
	liveLog *LiveLog
}

// NewExportService creates an export service.
func NewExportService(liveLog *LiveLog) *ExportService {
	return &ExportService{liveLog: liveLog}
}

// WriteCSV streams the full live log, one row per (entry, zone).
func (s *ExportService) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Time", "Zone", "Count", "Total", "Alert"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, entry := range s.liveLog.Snapshot() {
		for zone, count := range entry.Zones {
			row := []string{
				entry.Time,
				zone,
				strconv.Itoa(count),
				strconv.Itoa(entry.Total),
				strconv.FormatBool(entry.Alert),
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write csv row: %w", err)
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

// GeneratePDF builds the A4 report over the last 30 entries.
func (s *ExportService) GeneratePDF() ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Crowd Monitoring Report")
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "", 10)
	for _, entry := range s.liveLog.Recent(pdfReportEntries) {
		line := fmt.Sprintf("%s | Total: %d | Alert: %t", entry.Time, entry.Total, entry.Alert)
		pdf.Cell(0, 6, line)
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
