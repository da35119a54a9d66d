package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/poiesic/mergen/assembly"
	"github.com/poiesic/mergen/core"
)

// ErrNilPlan is returned when there is no plan to render.
var ErrNilPlan = errors.New("plan is nil")

// The core PDF fonts only cover cp1252, which lacks ğ, ş, ı and İ.
var cp1252Fold = strings.NewReplacer(
	"ğ", "g", "Ğ", "G",
	"ş", "s", "Ş", "S",
	"ı", "i", "İ", "I",
	"₺", "TL ",
)

// Option configures a Writer.
type Option func(*Writer)

// WithClock sets the time printed as the generation date.
func WithClock(now func() time.Time) Option {
	return func(w *Writer) {
		if now != nil {
			w.now = now
		}
	}
}

// WithTitle sets the header title. Default is "Mergen".
func WithTitle(title string) Option {
	return func(w *Writer) {
		w.title = title
	}
}

// Writer renders plans on A4 pages.
type Writer struct {
	title string
	now   func() time.Time
}

func NewWriter(opts ...Option) *Writer {
	w := &Writer{title: "Mergen", now: time.Now}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Bytes renders plan and returns the PDF document.
func (w *Writer) Bytes(plan *core.Plan) ([]byte, error) {
	var buf bytes.Buffer
	if err := w.Write(&buf, plan); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write renders plan to out. A plan without packages produces a single page
// carrying its message.
func (w *Writer) Write(out io.Writer, plan *core.Plan) error {
	if plan == nil {
		return ErrNilPlan
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("cp1252")
	text := func(s string) string { return tr(cp1252Fold.Replace(s)) }

	pdf.SetMargins(20, 20, 20)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(150, 150, 150)
		pdf.CellFormat(0, 8, text("Rezervasyon onayı değildir · Fiyatlar değişebilir"), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFillColor(13, 24, 37)
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(20, 8)
	pdf.CellFormat(100, 10, text(w.title), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetXY(20, 18)
	pdf.CellFormat(170, 6, text("Seyahat Paketleri · "+w.now().Format("02.01.2006 15:04")), "", 1, "L", false, 0, "")

	pdf.SetY(35)
	pdf.SetTextColor(40, 40, 40)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(170, 5, text(fmt.Sprintf("Sorgu: %q", plan.Query)), "", "L", false)
	pdf.Ln(4)

	if len(plan.Packages) == 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.MultiCell(170, 6, text(plan.Message), "", "L", false)
	}

	sectionHeader := func(title string) {
		pdf.SetFillColor(13, 24, 37)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(170, 8, "  "+text(title), "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}
	row := func(label, value string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(40, 6, text(label), "", 0, "L", false, 0, "")
		pdf.SetTextColor(20, 20, 20)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.MultiCell(130, 6, text(value), "", "L", false)
	}

	for i, pkg := range plan.Packages {
		h := pkg.Hotel
		sectionHeader(fmt.Sprintf("%d. %s", i+1, h.Name))
		row("Konum", location(h))
		if h.Concept != "" {
			row("Konsept", h.Concept)
		}
		if desc := assembly.CleanDescription(h.Description, h.Name, h.City, h.Concept); desc != "" {
			row("Özellikler", desc)
		}
		row("Havalimanı", fmt.Sprintf("%s (%s)", assembly.DisplayName(pkg.Airport), pkg.Airport))
		row("Uçuş", strings.TrimPrefix(assembly.FlightText(pkg.Flight), "Uçuş: "))
		row("Transfer", strings.TrimPrefix(assembly.TransferText(pkg.Transfer), "Transfer: "))

		b := pkg.Breakdown
		row("Fiyat", fmt.Sprintf("Otel %s + Uçuş %s + Transfer %s",
			assembly.FormatPrice(b.Hotel), assembly.FormatPrice(b.Flight), assembly.FormatPrice(b.Transfer)))
		pdf.SetFillColor(212, 168, 67)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(40, 8, "TOPLAM", "", 0, "L", true, 0, "")
		pdf.CellFormat(130, 8, text(assembly.FormatPrice(b.Total)), "", 1, "L", true, 0, "")

		if pkg.Summary != "" {
			pdf.Ln(2)
			pdf.SetFont("Helvetica", "", 10)
			pdf.SetTextColor(40, 40, 40)
			pdf.MultiCell(170, 5, text(pkg.Summary), "", "L", false)
		}
		pdf.Ln(6)
	}

	if err := pdf.Output(out); err != nil {
		return fmt.Errorf("pdf output failed: %w", err)
	}
	return nil
}

func location(h core.Hotel) string {
	parts := []string{h.City}
	for _, p := range []string{h.District, h.Area} {
		if p != "" && !strings.EqualFold(p, parts[len(parts)-1]) {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " / ")
}
