package assembly

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/poiesic/mergen/core"
)

// Coerce returns v when it is a usable amount and 0 otherwise.
func Coerce(v float64) float64 {
	if !core.IsValidAmount(v) {
		return 0
	}
	return v
}

// Breakdown prices one hotel night with an optional flight and transfer.
// Absent components contribute 0.
func Breakdown(hotel *core.Hotel, flight *core.Flight, transfer *core.Transfer) core.PriceBreakdown {
	var b core.PriceBreakdown
	if hotel != nil {
		b.Hotel = Coerce(hotel.Price)
	}
	if flight != nil {
		b.Flight = Coerce(flight.Price)
	}
	if transfer != nil {
		b.Transfer = Coerce(transfer.Route.Price)
	}
	b.Total = b.Hotel + b.Flight + b.Transfer
	b.Currency = core.DefaultCurrency
	return b
}

// FormatPrice renders an amount in lira with Turkish digit grouping: ₺12.500.
func FormatPrice(v float64) string {
	p := message.NewPrinter(language.Turkish)
	return "₺" + p.Sprintf("%d", int64(math.Round(Coerce(v))))
}
