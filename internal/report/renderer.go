// Package report renders the weekly PDF artifact and watches the output
// directory for newly written reports.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/starford/raido/internal/week"
)

// Renderer writes weekly report PDFs into a target directory.
type Renderer struct {
	outDir   string
	logoPath string // optional; skipped when empty or unreadable
}

// New creates a renderer writing into outDir. logoPath may be empty.
func New(outDir, logoPath string) *Renderer {
	return &Renderer{outDir: outDir, logoPath: logoPath}
}

// Filename returns the artifact name for the week starting at monday.
func Filename(monday time.Time) string {
	return fmt.Sprintf("Weekly-Report-%s.pdf", monday.Format("2006-01-02"))
}

// Generate renders the export-mode groups for the week [start, end] into a
// PDF and returns the path of the written file. Pages paginate
// automatically; every page carries the confidentiality footer.
func (r *Renderer) Generate(groups []week.OriginGroup, start, end time.Time) (string, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(true, 20)
	doc.SetFooterFunc(func() {
		doc.SetY(-12)
		doc.SetFont("Helvetica", "", 9)
		doc.SetTextColor(150, 150, 150)
		doc.CellFormat(0, 6, "Private and Confidential", "", 0, "C", false, 0, "")
		doc.SetTextColor(0, 0, 0)
	})
	doc.AddPage()

	y := 8.0
	if r.logoPath != "" {
		if _, err := os.Stat(r.logoPath); err == nil {
			pageW, _ := doc.GetPageSize()
			const imgW = 50.0
			if info := doc.RegisterImageOptions(r.logoPath, fpdf.ImageOptions{}); info != nil && info.Width() > 0 {
				imgH := info.Height() * imgW / info.Width()
				doc.ImageOptions(r.logoPath, (pageW-imgW)/2, y, imgW, imgH, false, fpdf.ImageOptions{}, 0, "")
				y += imgH + 6
			}
		}
	}

	doc.SetFont("Helvetica", "B", 16)
	doc.SetXY(10, y)
	doc.Cell(0, 8, "Software Engineering Weekly Report")
	doc.SetFont("Helvetica", "", 12)
	doc.SetXY(10, y+10)
	doc.Cell(0, 6, fmt.Sprintf("Week: %s - %s", start.Format("02/01/2006"), end.Format("02/01/2006")))
	doc.SetY(y + 20)

	if len(groups) == 0 {
		doc.SetX(10)
		doc.Cell(0, 6, "No closed tasks for this week.")
	}
	for _, g := range groups {
		doc.Ln(8)
		doc.SetFont("Helvetica", "B", 13)
		doc.SetX(10)
		doc.MultiCell(0, 6, fmt.Sprintf("%s (%s)", g.Name, g.Type.Label()), "", "L", false)
		for _, e := range g.Entries {
			doc.SetFont("Helvetica", "", 11)
			doc.SetX(14)
			doc.MultiCell(0, 5, "- "+e.Task.Content, "", "L", false)
			if e.Task.CloseComment != "" {
				doc.SetFont("Helvetica", "", 10)
				doc.SetX(18)
				doc.MultiCell(0, 5, "Closure Note: "+e.Task.CloseComment, "", "L", false)
			}
		}
	}

	if err := os.MkdirAll(r.outDir, 0o755); err != nil {
		return "", fmt.Errorf("report: create output dir: %w", err)
	}
	path := filepath.Join(r.outDir, Filename(start))
	if err := doc.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("report: write pdf: %w", err)
	}
	return path, nil
}
