package importer

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/carteira/internal/bank"
	"github.com/MrJamesThe3rd/carteira/internal/card"
	"github.com/MrJamesThe3rd/carteira/internal/expense"
	"github.com/MrJamesThe3rd/carteira/internal/importer/statement"
	"github.com/MrJamesThe3rd/carteira/internal/income"
	"github.com/MrJamesThe3rd/carteira/internal/logger"
	"github.com/MrJamesThe3rd/carteira/internal/matching"
	"github.com/MrJamesThe3rd/carteira/internal/validation"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=importer
type ExpenseImporter interface {
	ImportBatch(ctx context.Context, ownerID string, params []expense.CreateParams) (*expense.ImportResult, error)
}

type IncomeImporter interface {
	ImportBatch(ctx context.Context, ownerID string, params []income.CreateParams) (*income.ImportResult, error)
}

type BankReader interface {
	Get(ctx context.Context, ownerID string, id uuid.UUID) (*bank.Account, error)
}

type CardReader interface {
	Get(ctx context.Context, ownerID string, id uuid.UUID) (*card.Card, error)
}

type RuleLoader interface {
	Suggester(ctx context.Context, ownerID string) (*matching.Suggester, error)
}

type Service struct {
	expenses ExpenseImporter
	incomes  IncomeImporter
	banks    BankReader
	cards    CardReader
	rules    RuleLoader
}

func NewService(expenses ExpenseImporter, incomes IncomeImporter, banks BankReader, cards CardReader, rules RuleLoader) *Service {
	return &Service{expenses: expenses, incomes: incomes, banks: banks, cards: cards, rules: rules}
}

// Import parses a statement and records its entries as settled incomes and
// expenses. Entries already recorded are skipped and balances are left as they are.
func (s *Service) Import(ctx context.Context, ownerID string, params Params, r io.Reader) (*Summary, error) {
	if !params.Source.Valid() {
		return nil, validation.New("source", "must be nubank, itau or bb")
	}

	res, err := statement.Parse(r, params.Source)
	if err != nil {
		if errors.Is(err, statement.ErrUnknownFormat) {
			return nil, validation.New("file", err.Error())
		}

		return nil, fmt.Errorf("parse statement: %w", err)
	}

	if err := s.checkAccount(ctx, ownerID, res.Card, params); err != nil {
		return nil, err
	}

	suggester, err := s.rules.Suggester(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("load matching rules: %w", err)
	}

	summary := &Summary{Profile: res.Profile, Charset: string(res.Charset)}

	var (
		expParams []expense.CreateParams
		incParams []income.CreateParams
	)

	for _, e := range res.Entries {
		desc := e.Description

		var categoryID *uuid.UUID

		if rule := suggester.Suggest(e.Description); rule != nil {
			if rule.Description != "" {
				desc = rule.Description
			}

			categoryID = rule.CategoryID
			summary.Categorized++
		}

		switch {
		case e.Kind == statement.KindDebit && res.Card:
			expParams = append(expParams, expense.CreateParams{
				Description:    desc,
				RawDescription: e.Description,
				Amount:         e.Amount,
				Date:           e.Date,
				CategoryID:     categoryID,
				Method:         expense.MethodCredit,
				CardID:         params.CardID,
				Status:         expense.StatusPaid,
			})
		case e.Kind == statement.KindDebit:
			expParams = append(expParams, expense.CreateParams{
				Description:    desc,
				RawDescription: e.Description,
				Amount:         e.Amount,
				Date:           e.Date,
				CategoryID:     categoryID,
				Method:         GuessMethod(e.Description),
				BankID:         params.BankID,
				Status:         expense.StatusPaid,
			})
		case res.Card:
			summary.Ignored++
		default:
			incParams = append(incParams, income.CreateParams{
				Description:    desc,
				RawDescription: e.Description,
				Amount:         e.Amount,
				Date:           e.Date,
				CategoryID:     categoryID,
				BankID:         params.BankID,
				Status:         income.StatusReceived,
			})
		}
	}

	expResult, err := s.expenses.ImportBatch(ctx, ownerID, expParams)
	if err != nil {
		return nil, fmt.Errorf("import expenses: %w", err)
	}

	summary.Expenses, summary.SkippedExpenses = expResult.Imported, expResult.Skipped

	incResult, err := s.incomes.ImportBatch(ctx, ownerID, incParams)
	if err != nil {
		return nil, fmt.Errorf("import incomes: %w", err)
	}

	summary.Incomes, summary.SkippedIncomes = incResult.Imported, incResult.Skipped

	log := logger.FromContext(ctx, logger.Nop())
	log.Info().
		Str("profile", summary.Profile).
		Str("charset", summary.Charset).
		Int("imported", summary.Imported()).
		Int("skipped", summary.Skipped()).
		Int("ignored", summary.Ignored).
		Msg("statement imported")

	return summary, nil
}

func (s *Service) checkAccount(ctx context.Context, ownerID string, isCard bool, params Params) error {
	if isCard {
		if params.CardID == nil {
			return validation.New("card_id", "is required for credit card statements")
		}

		if _, err := s.cards.Get(ctx, ownerID, *params.CardID); err != nil {
			return err
		}

		return nil
	}

	if params.BankID == nil {
		return validation.New("bank_id", "is required for account statements")
	}

	if _, err := s.banks.Get(ctx, ownerID, *params.BankID); err != nil {
		return err
	}

	return nil
}
