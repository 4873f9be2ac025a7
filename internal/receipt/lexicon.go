package receipt

import (
	"regexp"

	"github.com/yudhistira-dev/orgintel/internal/domain"
)

// CategoryRule maps a procurement category to the keywords that select it.
// Rules are evaluated in order; the first category with a keyword hit wins.
type CategoryRule struct {
	Category string
	Keywords []string
}

// Lexicon bundles every language-dependent table the parser consults. The
// scanning algorithm itself is language-agnostic; swapping the lexicon is all
// localization takes.
type Lexicon struct {
	// HeaderNoise matches boilerplate header lines (document-type labels,
	// addresses, date lines) that must not be mistaken for a merchant name.
	HeaderNoise *regexp.Regexp

	// AmountPattern captures a candidate amount following a trigger word
	// (total, paid, net, the currency marker) optionally separated by ':'
	// or '='. The capture group deliberately admits the letters OCR
	// engines confuse with digits; correction happens after capture.
	AmountPattern *regexp.Regexp

	// MinAmount rejects noise digits: captures below this value are not
	// plausible receipt totals.
	MinAmount int64

	// MonthAbbrev maps local month-name prefixes to month numbers for the
	// "DD monthname YYYY" date family.
	MonthAbbrev map[string]int

	// Categories is the ordered category keyword table.
	Categories []CategoryRule
}

// DefaultLexicon returns the Indonesian receipt vocabulary the parser was
// tuned on.
func DefaultLexicon() Lexicon {
	return Lexicon{
		HeaderNoise: regexp.MustCompile(
			`struk|receipt|nota|faktur|invoice|kwitansi|alamat|address|jalan|jl\.?|telp|telepon|tanggal|date|kasir|npwp`),
		AmountPattern: regexp.MustCompile(
			`(?:grand\s*total|subtotal|total|jumlah|dibayar|bayar|tunai|netto|net|rp)\s*[:=]?\s*(?:rp\.?\s*)?([0-9osil][0-9osil.,]*)`),
		MinAmount: 100,
		MonthAbbrev: map[string]int{
			"jan": 1, "feb": 2, "mar": 3, "apr": 4,
			"mei": 5, "jun": 6, "jul": 7, "agu": 8, "ags": 8,
			"sep": 9, "okt": 10, "nov": 11, "des": 12,
		},
		Categories: []CategoryRule{
			{Category: domain.CategoryLogistics, Keywords: []string{
				"logistik", "perlengkapan", "peralatan", "sewa", "tenda", "sound system",
			}},
			{Category: domain.CategoryProgram, Keywords: []string{
				"kegiatan", "acara", "event", "program", "lomba", "seminar", "pelatihan",
			}},
			{Category: domain.CategoryOperations, Keywords: []string{
				"operasional", "administrasi", "admin", "atk", "fotokopi", "listrik", "internet", "sekretariat",
			}},
			{Category: domain.CategoryConsumables, Keywords: []string{
				"konsumsi", "makan", "minum", "snack", "catering", "nasi", "kopi", "air mineral",
			}},
			{Category: domain.CategoryTransport, Keywords: []string{
				"transport", "bensin", "pertalite", "solar", "parkir", "tol", "ojek", "grab", "gojek", "travel",
			}},
		},
	}
}
