package receipt

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/yudhistira-dev/orgintel/internal/domain"
)

// Parser turns raw recognized text into structured receipt fields. It is a
// pure function over the input string: no I/O, no hidden state.
type Parser struct {
	lex Lexicon
}

// NewParser creates a parser for the given lexicon.
func NewParser(lex Lexicon) *Parser {
	return &Parser{lex: lex}
}

// ParseText parses raw OCR text with the default lexicon.
func ParseText(raw string) domain.ReceiptData {
	return NewParser(DefaultLexicon()).Parse(raw)
}

// Parse extracts merchant, amount, date and category from raw OCR text.
// The provider tag is left empty; the orchestrator fills it in.
//
// Amounts are found by scanning normalized lines from the last line upward
// and taking the first hit: the grand total sits near the footer on real
// receipts, and line items above it would otherwise shadow it.
func (p *Parser) Parse(raw string) domain.ReceiptData {
	lines := splitClean(raw)

	normalized := make([]string, len(lines))
	for i, line := range lines {
		normalized[i] = normalizeLine(line)
	}

	merchant := p.detectMerchant(lines, normalized)
	amount := p.detectAmount(normalized)
	date := p.detectDate(raw)
	category := p.detectCategory(raw)

	data := domain.ReceiptData{
		Amount:       amount,
		MerchantName: merchant,
		Date:         date,
		Category:     category,
		IsInvalid:    amount == 0,
	}
	if merchant != domain.UnknownMerchant && amount > 0 {
		data.Confidence = domain.ConfidenceHigh
		data.ConfidenceScore = 0.95
	} else {
		data.Confidence = domain.ConfidenceLow
		data.ConfidenceScore = 0.4
	}
	return data
}

// splitClean splits raw text into trimmed, non-empty lines.
func splitClean(raw string) []string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// normalizeLine lowercases a line and strips everything outside printable
// ASCII. Vertical-bar glyphs are mapped to '1' first; they are an OCR
// rendering of the digit and would otherwise be lost with the non-ASCII
// characters.
func normalizeLine(line string) string {
	line = strings.ToLower(line)
	line = strings.NewReplacer("‖", "1", "∥", "1", "|", "1").Replace(line)

	var b strings.Builder
	b.Grow(len(line))
	for _, r := range line {
		if r >= 0x20 && r < 0x7f {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// correctDigitConfusion maps the letters OCR engines commonly misread for
// digits. Applied only to captured numeric substrings, never to display
// strings, so a merchant called "Toko Roti" keeps its o's.
var correctDigitConfusion = strings.NewReplacer(
	"o", "0",
	"s", "5",
	"i", "1",
	"l", "1",
)

// detectMerchant scans only the first three raw lines and picks the first
// one whose normalized form is longer than three characters and is not
// boilerplate. Merchant names head real receipts; deeper lines are items.
func (p *Parser) detectMerchant(lines, normalized []string) string {
	limit := len(lines)
	if limit > 3 {
		limit = 3
	}
	for i := 0; i < limit; i++ {
		if len(normalized[i]) <= 3 {
			continue
		}
		if p.lex.HeaderNoise.MatchString(normalized[i]) {
			continue
		}
		return lines[i]
	}
	return domain.UnknownMerchant
}

// detectAmount runs the inverse footer-priority scan: last line to first,
// first qualifying capture wins.
func (p *Parser) detectAmount(normalized []string) int64 {
	for i := len(normalized) - 1; i >= 0; i-- {
		m := p.lex.AmountPattern.FindStringSubmatch(normalized[i])
		if m == nil {
			continue
		}
		amount, err := parseAmount(m[1])
		if err != nil || amount < p.lex.MinAmount {
			continue
		}
		return amount
	}
	return 0
}

// parseAmount corrects digit confusion in the captured substring, strips
// thousands separators and parses the integer value.
func parseAmount(capture string) (int64, error) {
	s := correctDigitConfusion.Replace(capture)
	s = strings.NewReplacer(".", "", ",", "", " ", "").Replace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount capture")
	}
	return strconv.ParseInt(s, 10, 64)
}

var (
	reDateDMY   = regexp.MustCompile(`\b(\d{1,2})[/\-.](\d{1,2})[/\-.](\d{4}|\d{2})\b`)
	reDateYMD   = regexp.MustCompile(`\b(\d{4})[/-](\d{1,2})[/-](\d{1,2})\b`)
	reDateDText = regexp.MustCompile(`(?i)\b(\d{1,2})\s+([a-z]{3})[a-z]*\s+(\d{4})\b`)
)

// detectDate tries three date families against the raw (not normalized)
// text, in order: DD-MM-YYYY, YYYY-MM-DD, then "DD monthname YYYY" with the
// lexicon's month abbreviations. Two-digit years are assumed 2000+.
// Returns an ISO date or empty when nothing plausible matches.
func (p *Parser) detectDate(raw string) string {
	for _, m := range reDateDMY.FindAllStringSubmatch(raw, -1) {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if year < 100 {
			year += 2000
		}
		if iso, ok := isoDate(year, month, day); ok {
			return iso
		}
	}
	for _, m := range reDateYMD.FindAllStringSubmatch(raw, -1) {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if iso, ok := isoDate(year, month, day); ok {
			return iso
		}
	}
	for _, m := range reDateDText.FindAllStringSubmatch(raw, -1) {
		month, ok := p.lex.MonthAbbrev[strings.ToLower(m[2])]
		if !ok {
			continue
		}
		day, _ := strconv.Atoi(m[1])
		year, _ := strconv.Atoi(m[3])
		if iso, ok := isoDate(year, month, day); ok {
			return iso
		}
	}
	return ""
}

func isoDate(year, month, day int) (string, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 || year < 1990 || year > 2100 {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), true
}

// detectCategory lowercases the full raw text and walks the ordered category
// table; the first category with any keyword hit wins.
func (p *Parser) detectCategory(raw string) string {
	lower := strings.ToLower(raw)
	for _, rule := range p.lex.Categories {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				return rule.Category
			}
		}
	}
	return domain.CategoryOther
}
