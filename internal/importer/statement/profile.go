package statement

// amountMode determines how amounts are extracted from a row.
type amountMode int

const (
	// amountSigned means one signed column, negative for money leaving the account.
	amountSigned amountMode = iota
	// amountTyped means an amount column plus a column naming the direction.
	amountTyped
)

// Profile describes the column layout of one bank's CSV export.
// Column names are matched case-insensitively.
type Profile struct {
	Name       string
	Source     Source
	Comma      rune
	DateCol    string
	DateLayout string
	DescCol    string
	// DetailCol, when present, is appended to the description.
	DetailCol  string
	AmountMode amountMode
	AmountCol  string
	// Invert flips the sign convention: positive amounts are debits.
	Invert bool
	// TypeCol and CreditValues are used when AmountMode == amountTyped.
	TypeCol      string
	CreditValues []string
	// SkipPrefixes drops balance and summary rows by description.
	SkipPrefixes []string
	// Card marks credit card statements, whose debits are card purchases.
	Card bool
}

// requiredCols returns the column names that must be present for this profile to match.
func (p Profile) requiredCols() []string {
	cols := []string{p.DateCol, p.DescCol, p.AmountCol}

	if p.AmountMode == amountTyped {
		cols = append(cols, p.TypeCol)
	}

	return cols
}

// profiles is the ordered list of formats tried during auto-detection.
// More specific profiles come first to avoid false matches.
var profiles = []Profile{
	{
		Name:       "bb",
		Source:     SourceBB,
		Comma:      ',',
		DateCol:    "data",
		DateLayout: "02/01/2006",
		DescCol:    "lançamento",
		DetailCol:  "detalhes",
		AmountMode: amountTyped,
		AmountCol:  "valor",
		TypeCol:    "tipo lançamento",
		CreditValues: []string{
			"entrada",
		},
		SkipPrefixes: []string{"saldo anterior", "saldo do dia", "s a l d o"},
	},
	{
		Name:       "nubank conta",
		Source:     SourceNubank,
		Comma:      ',',
		DateCol:    "data",
		DateLayout: "02/01/2006",
		DescCol:    "descrição",
		AmountMode: amountSigned,
		AmountCol:  "valor",
	},
	{
		Name:       "nubank cartão",
		Source:     SourceNubank,
		Comma:      ',',
		DateCol:    "date",
		DateLayout: "2006-01-02",
		DescCol:    "title",
		AmountMode: amountSigned,
		AmountCol:  "amount",
		Invert:     true,
		Card:       true,
	},
	{
		Name:         "itaú",
		Source:       SourceItau,
		Comma:        ';',
		DateCol:      "data",
		DateLayout:   "02/01/2006",
		DescCol:      "lançamento",
		AmountMode:   amountSigned,
		AmountCol:    "valor (r$)",
		SkipPrefixes: []string{"saldo", "sdo cta", "saldo total disponível"},
	},
}
