package assembly

import (
	"strings"
	"unicode"
)

// displayNames maps catalog codes to the names shown to users.
var displayNames = map[string]string{
	// vehicles
	"VAN_VIP":      "Lüks VIP Araç",
	"VAN_STANDARD": "Standart Minibüs",
	"CAR_ECONOMY":  "Ekonomik Sedan",
	"CAR_COMFORT":  "Konforlu Sedan",
	"CAR_PREMIUM":  "Premium Araç",
	"SHUTTLE":      "Paylaşımlı Servis",
	"SUV":          "SUV",
	"LUXURY":       "Lüks Araç",

	// carriers
	"TK": "Türk Hava Yolları",
	"PC": "Pegasus Airlines",
	"HV": "Havayolu Express",
	"U6": "Bees Airline",
	"XQ": "SunExpress",
	"VF": "AJet",

	// airports
	"IST": "İstanbul Havalimanı",
	"SAW": "Sabiha Gökçen Havalimanı",
	"ADB": "İzmir Adnan Menderes Havalimanı",
	"AYT": "Antalya Havalimanı",
	"GZP": "Gazipaşa Havalimanı",
	"DLM": "Dalaman Havalimanı",
	"BJV": "Bodrum Milas Havalimanı",
	"EDO": "Balıkesir Koca Seyit Havalimanı",
	"ESB": "Ankara Esenboğa Havalimanı",
	"GZT": "Gaziantep Havalimanı",
	"ASR": "Kayseri Erkilet Havalimanı",
	"VAN": "Van Ferit Melen Havalimanı",
	"RZV": "Rize-Artvin Havalimanı",
	"TZX": "Trabzon Havalimanı",
	"NAV": "Kapadokya Havalimanı",
}

// DisplayName translates a vehicle, carrier or airport code into its user
// facing name. Unknown codes are returned unchanged.
func DisplayName(code string) string {
	if name, ok := displayNames[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return name
	}
	return code
}

// CleanDescription drops the words of the hotel name, city and concept from
// a description, along with immediately repeated words, so that only the
// facility's own features remain.
func CleanDescription(text, hotelName, city, concept string) string {
	if text == "" {
		return ""
	}

	remove := make(map[string]bool)
	for _, field := range []string{hotelName, city, concept} {
		for _, w := range strings.Fields(field) {
			if k := letters(w); k != "" {
				remove[k] = true
			}
		}
	}

	var (
		cleaned []string
		prev    string
	)
	for _, w := range strings.Fields(text) {
		k := letters(w)
		if k == "" || remove[k] || k == prev {
			continue
		}
		cleaned = append(cleaned, w)
		prev = k
	}
	return strings.Join(cleaned, " ")
}

// letters lower-cases w and keeps only its letters.
func letters(w string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) {
			return unicode.ToLower(r)
		}
		return -1
	}, w)
}
