// market/instruments.go
package market

import "strings"

type InstrumentMeta struct {
	Name        string
	Description string
	TickSize    float64
	ValueFormat ValueFormat
}

var Instruments = map[string]InstrumentMeta{
	"ES": {
		Name:        "ES",
		Description: "E-mini S&P 500",
		TickSize:    0.25,
		ValueFormat: 2,
	},
	"NQ": {
		Name:        "NQ",
		Description: "E-mini Nasdaq-100",
		TickSize:    0.25,
		ValueFormat: 2,
	},
	"CL": {
		Name:        "CL",
		Description: "Crude Oil",
		TickSize:    0.01,
		ValueFormat: 2,
	},
	"GC": {
		Name:        "GC",
		Description: "Gold",
		TickSize:    0.1,
		ValueFormat: 1,
	},
	"ZN": {
		Name:        "ZN",
		Description: "10-Year T-Note",
		TickSize:    0.015625,
		ValueFormat: FormatThirtySeconds,
	},
	"ZB": {
		Name:        "ZB",
		Description: "30-Year T-Bond",
		TickSize:    0.03125,
		ValueFormat: FormatThirtySeconds,
	},
	"EUR_USD": {
		Name:        "EUR_USD",
		Description: "Euro / US Dollar",
		TickSize:    0.00001,
		ValueFormat: 5,
	},
	"USD_JPY": {
		Name:        "USD_JPY",
		Description: "US Dollar / Japanese Yen",
		TickSize:    0.001,
		ValueFormat: 3,
	},
}

// LookupInstrument finds an instrument by symbol. Exchange suffixes and
// contract months are ignored, so "ESZ5" and "ES-CME" both resolve to ES.
func LookupInstrument(symbol string) (InstrumentMeta, bool) {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if meta, ok := Instruments[s]; ok {
		return meta, true
	}
	if i := strings.IndexAny(s, "-."); i > 0 {
		s = s[:i]
		if meta, ok := Instruments[s]; ok {
			return meta, true
		}
	}
	// futures root plus month code and year digits
	for n := len(s) - 1; n >= 2; n-- {
		if meta, ok := Instruments[s[:n]]; ok && isContractSuffix(s[n:]) {
			return meta, true
		}
	}
	return InstrumentMeta{}, false
}

func isContractSuffix(s string) bool {
	if len(s) < 2 || !strings.ContainsRune("FGHJKMNQUVXZ", rune(s[0])) {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
