package assembly

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/poiesic/mergen/ai"
	"github.com/poiesic/mergen/core"
)

// DefaultReason closes every template summary.
const DefaultReason = "Kriterlerinizle tam uyumlu harika bir tesis."

const (
	noFlightText   = "Maalesef uygun uçuş bulunamadı"
	noTransferText = "Maalesef uygun transfer bulunamadı"
)

const summaryPrompt = `Kullanıcı Sorgusu: %q

Aşağıda bu sorgu için hazırlanmış seyahat paketleri numaralı olarak listelenmiştir:
%s
GÖREV:
Her paket için kullanıcıya 2-3 cümlelik sıcak ve samimi bir sunum yaz. Sunum otelin
kullanıcının kriterlerine neden uyduğunu anlatmalıdır.

KURALLAR:
1. Sadece listede gördüğün gerçek verileri kullan, asla bilgi uydurma.
2. "Maalesef uygun" yazan hizmetler için olumlu bir şey yazma, bulunamadığını belirt.
3. "Seçtim", "ayarladım", "buldum" gibi ifadeler kullanma.
4. Türkçe yaz.

Yanıtı SADECE paket numaralarını anahtar olarak kullanan bir JSON nesnesi olarak ver:
{"1": "sunum metni", "2": "sunum metni"}`

// Assembler builds packages and their summaries.
type Assembler struct {
	completer ai.Completer
	logger    *slog.Logger
}

// Option configures an Assembler.
type Option func(*Assembler) error

// WithCompleter sets the chat model used for summaries. Without one every
// summary is the template sentence.
func WithCompleter(completer ai.Completer) Option {
	return func(a *Assembler) error {
		a.completer = completer
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *Assembler) error {
		if logger == nil {
			logger = slog.Default()
		}
		a.logger = logger
		return nil
	}
}

// NewAssembler creates a new assembler.
func NewAssembler(opts ...Option) (*Assembler, error) {
	a := &Assembler{logger: slog.Default()}
	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}
	a.logger = a.logger.With("component", "assembler")
	return a, nil
}

// Assemble combines a hotel with an optional flight and transfer. airport is
// the airport resolved for the hotel. Assemble never fails; the summary is
// left empty until Summarize fills it in.
func (a *Assembler) Assemble(hotel *core.Hotel, flight *core.Flight, transfer *core.Transfer, airport string) *core.Package {
	pkg := &core.Package{
		ID:        uuid.NewString(),
		Flight:    flight,
		Transfer:  transfer,
		Airport:   airport,
		Breakdown: Breakdown(hotel, flight, transfer),
	}
	if hotel != nil {
		pkg.Hotel = *hotel
		pkg.Hotel.Price = pkg.Breakdown.Hotel
	}
	return pkg
}

// Summarize fills in the summary of every package with one model request.
// Packages the model leaves out, and all packages when the request fails,
// get the template summary.
func (a *Assembler) Summarize(ctx context.Context, query string, packages []*core.Package) {
	if len(packages) == 0 {
		return
	}

	summaries := a.requestSummaries(ctx, query, packages)
	for i, pkg := range packages {
		if s := strings.TrimSpace(summaries[strconv.Itoa(i+1)]); s != "" {
			pkg.Summary = s
			continue
		}
		pkg.Summary = TemplateSummary(pkg)
	}
}

func (a *Assembler) requestSummaries(ctx context.Context, query string, packages []*core.Package) map[string]string {
	if a.completer == nil {
		return nil
	}

	var listing strings.Builder
	for i, pkg := range packages {
		fmt.Fprintf(&listing, "%d. %s\n", i+1, describe(pkg))
	}

	raw, err := a.completer.Complete(ctx, fmt.Sprintf(summaryPrompt, query, listing.String()), true)
	if err != nil {
		a.logger.Warn("summary generation failed, using templates", "packages", len(packages), "err", err)
		return nil
	}

	var reply map[string]any
	if err := json.Unmarshal([]byte(ai.CleanJSON(raw)), &reply); err != nil {
		a.logger.Warn("summary reply is not valid JSON, using templates", "err", err)
		return nil
	}

	summaries := make(map[string]string, len(reply))
	for k, v := range reply {
		if s, ok := v.(string); ok {
			summaries[strings.TrimSpace(k)] = s
		}
	}
	if len(summaries) < len(packages) {
		a.logger.Debug("summary reply is missing packages", "want", len(packages), "got", len(summaries))
	}
	return summaries
}

// describe lists the facts of a package for the summary prompt.
func describe(pkg *core.Package) string {
	h := pkg.Hotel
	var b strings.Builder
	fmt.Fprintf(&b, "Otel: %s (%s) - %s/gece", h.Name, h.City, FormatPrice(pkg.Breakdown.Hotel))
	if h.Concept != "" {
		fmt.Fprintf(&b, " - Konsept: %s", h.Concept)
	}
	if desc := CleanDescription(h.Description, h.Name, h.City, h.Concept); desc != "" {
		fmt.Fprintf(&b, " - Özellikler: %s", desc)
	}
	b.WriteString(" | ")
	b.WriteString(FlightText(pkg.Flight))
	b.WriteString(" | ")
	b.WriteString(TransferText(pkg.Transfer))
	return b.String()
}

// FlightText describes a flight for users, or states that none was found.
func FlightText(f *core.Flight) string {
	if f == nil {
		return "Uçuş: " + noFlightText
	}
	text := "Uçuş: " + DisplayName(f.Carrier)
	if !f.Departure.IsZero() {
		text += " - Saat: " + f.Departure.Format("2006-01-02 15:04")
	}
	return text + " - " + FormatPrice(f.Price)
}

// TransferText describes a transfer for users, or states that none was found.
func TransferText(t *core.Transfer) string {
	if t == nil {
		return "Transfer: " + noTransferText
	}
	return fmt.Sprintf("Transfer: %s - %d dakika - %s",
		DisplayName(t.Route.Vehicle.Category), t.Route.DurationMinutes, FormatPrice(t.Route.Price))
}

// TemplateSummary is the deterministic summary used when the model gives none.
func TemplateSummary(pkg *core.Package) string {
	return fmt.Sprintf("%s (%s) - %s/gece | %s | %s. %s",
		pkg.Hotel.Name, pkg.Hotel.City, FormatPrice(pkg.Breakdown.Hotel),
		FlightText(pkg.Flight), TransferText(pkg.Transfer), DefaultReason)
}
