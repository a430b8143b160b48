package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/signintech/gopdf"
)

// fontPaths are the common DejaVuSans locations across our deploy images.
var fontPaths = []string{
	"/usr/share/fonts/ttf-dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
}

// RenderPDF renders a structured report as a downloadable PDF.
func RenderPDF(rep *StructuredReport) ([]byte, error) {
	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	pdf.AddPage()

	var fontErr error
	fontLoaded := false
	for _, path := range fontPaths {
		if err := pdf.AddTTFFont("DejaVu", path); err == nil {
			fontLoaded = true
			break
		} else {
			fontErr = err
		}
	}
	if !fontLoaded {
		return nil, fmt.Errorf("report: failed to load PDF font, install ttf-dejavu: %w", fontErr)
	}

	if err := pdf.SetFont("DejaVu", "", 20); err != nil {
		return nil, err
	}
	pdf.Cell(nil, "Medical Consultation Report")
	pdf.Br(30)

	if err := pdf.SetFont("DejaVu", "", 11); err != nil {
		return nil, err
	}
	when := rep.Timestamp
	if ts, err := time.Parse(time.RFC3339, when); err == nil {
		when = ts.Format("02 Jan 2006 15:04 MST")
	}
	header := []string{
		"Session: " + rep.SessionID,
		"Agent: " + rep.Agent,
		"Patient: " + rep.User,
		"Date: " + when,
		"Severity: " + rep.Severity,
		"Duration: " + rep.Duration,
	}
	for _, line := range header {
		pdf.Cell(nil, line)
		pdf.Br(14)
	}
	pdf.Br(10)

	sections := []struct {
		title string
		lines []string
	}{
		{"Chief Complaint", []string{rep.ChiefComplaint}},
		{"Summary", []string{rep.Summary}},
		{"Symptoms", rep.Symptoms},
		{"Medications Mentioned", rep.MedicationsMentioned},
		{"Recommendations", rep.Recommendations},
		{"Suggested Tests", rep.Tests},
		{"Example Medications (demo only)", rep.MedicationsRecommended},
	}

	for _, section := range sections {
		if err := writeSection(&pdf, section.title, section.lines); err != nil {
			return nil, err
		}
	}

	pdf.SetY(800)
	if err := pdf.SetFont("DejaVu", "", 8); err != nil {
		return nil, err
	}
	pdf.Cell(nil, "Generated by an AI agent for demonstration purposes. Not medical advice.")

	var buf bytes.Buffer
	if _, err := pdf.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("report: failed to write PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSection(pdf *gopdf.GoPdf, title string, lines []string) error {
	content := make([]string, 0, len(lines))
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			content = append(content, l)
		}
	}
	if len(content) == 0 {
		return nil
	}

	if err := pdf.SetFont("DejaVu", "", 14); err != nil {
		return err
	}
	pdf.Cell(nil, title)
	pdf.Br(16)

	if err := pdf.SetFont("DejaVu", "", 11); err != nil {
		return err
	}
	for _, line := range content {
		wrapped, err := pdf.SplitText("- "+line, 500)
		if err != nil {
			return err
		}
		for _, w := range wrapped {
			pdf.Cell(nil, w)
			pdf.Br(13)
		}
	}
	pdf.Br(8)
	return nil
}
