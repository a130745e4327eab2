// Package importer turns bank statements into settled incomes and expenses.
package importer

import (
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/carteira/internal/expense"
	"github.com/MrJamesThe3rd/carteira/internal/importer/statement"
	"github.com/MrJamesThe3rd/carteira/internal/income"
)

// Params selects the statement format and the account it belongs to.
// Account statements need BankID and card statements need CardID.
type Params struct {
	Source statement.Source
	BankID *uuid.UUID
	CardID *uuid.UUID
}

// Summary reports the outcome of one statement import.
type Summary struct {
	Profile         string
	Charset         string
	Expenses        []*expense.Expense
	Incomes         []*income.Income
	SkippedExpenses []*expense.Expense
	SkippedIncomes  []*income.Income
	// Ignored counts card statement credits, which are invoice payments or refunds.
	Ignored     int
	Categorized int
}

func (s *Summary) Imported() int {
	return len(s.Expenses) + len(s.Incomes)
}

func (s *Summary) Skipped() int {
	return len(s.SkippedExpenses) + len(s.SkippedIncomes)
}

var methodHints = []struct {
	keyword string
	method  expense.Method
}{
	{"pix", expense.MethodPix},
	{"boleto", expense.MethodBillet},
	{"pagto cobranca", expense.MethodBillet},
	{"ted ", expense.MethodTransfer},
	{"doc ", expense.MethodTransfer},
	{"transf", expense.MethodTransfer},
	{"saque", expense.MethodCash},
}

// GuessMethod infers how an account debit was paid from its description.
func GuessMethod(raw string) expense.Method {
	lower := strings.ToLower(raw) + " "

	for _, h := range methodHints {
		if strings.Contains(lower, h.keyword) {
			return h.method
		}
	}

	return expense.MethodDebit
}
