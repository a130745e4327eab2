// Package export copies expense receipts to a local directory for bookkeeping.
package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/carteira/internal/expense"
	"github.com/MrJamesThe3rd/carteira/internal/money"
	"github.com/MrJamesThe3rd/carteira/internal/receipt"
)

//go:generate mockgen -source=service.go -destination=source_mock.go -package=export
type ExpenseLister interface {
	List(ctx context.Context, ownerID string, filter expense.ListFilter) ([]*expense.Expense, error)
}

type ReceiptOpener interface {
	Open(ctx context.Context, ownerID string, expenseID uuid.UUID) (*receipt.Object, error)
}

// Item links an exported expense to its receipt file, if any.
type Item struct {
	Expense  *expense.Expense
	FilePath string
	// Missing is set when the expense points to a receipt that no longer exists.
	Missing bool
}

type Service struct {
	expenses ExpenseLister
	receipts ReceiptOpener
}

func NewService(expenses ExpenseLister, receipts ReceiptOpener) *Service {
	return &Service{expenses: expenses, receipts: receipts}
}

// Export writes the receipts of the expenses matching filter into outputDir.
func (s *Service) Export(ctx context.Context, ownerID string, filter expense.ListFilter, outputDir string) ([]Item, error) {
	exps, err := s.expenses.List(ctx, ownerID, filter)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	items := make([]Item, 0, len(exps))
	used := make(map[string]bool)

	for _, e := range exps {
		item := Item{Expense: e}

		if e.ReceiptURI != "" {
			path, err := s.writeReceipt(ctx, ownerID, e, outputDir, used)

			switch {
			case errors.Is(err, receipt.ErrObjectNotFound), errors.Is(err, receipt.ErrNoReceipt):
				item.Missing = true
			case err != nil:
				return nil, fmt.Errorf("export receipt of %s: %w", e.ID, err)
			default:
				item.FilePath = path
			}
		}

		items = append(items, item)
	}

	return items, nil
}

func (s *Service) writeReceipt(ctx context.Context, ownerID string, e *expense.Expense, dir string, used map[string]bool) (string, error) {
	obj, err := s.receipts.Open(ctx, ownerID, e.ID)
	if err != nil {
		return "", err
	}
	defer obj.Body.Close()

	path := filepath.Join(dir, uniqueName(fileName(e, obj), used))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, obj.Body); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	return path, nil
}

// fileName builds YYYYMMDD_Description.ext for a receipt.
func fileName(e *expense.Expense, obj *receipt.Object) string {
	ext := filepath.Ext(obj.Name)
	if ext == "" {
		ext = ".pdf"

		if exts, _ := mime.ExtensionsByType(obj.ContentType); len(exts) > 0 {
			ext = exts[0]
		}
	}

	safeDesc := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}

		return '_'
	}, e.Description)

	return fmt.Sprintf("%s_%s%s", e.Date.Format("20060102"), safeDesc, ext)
}

func uniqueName(name string, used map[string]bool) string {
	candidate := name
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	for i := 2; used[candidate]; i++ {
		candidate = fmt.Sprintf("%s_%d%s", stem, i, ext)
	}

	used[candidate] = true

	return candidate
}

// Summary renders one line per exported expense.
func (s *Service) Summary(items []Item) string {
	var sb strings.Builder

	var total int64

	for _, item := range items {
		e := item.Expense
		total += e.Amount

		fileStatus := "Sem comprovante"

		switch {
		case item.FilePath != "":
			fileStatus = filepath.Base(item.FilePath)
		case item.Missing:
			fileStatus = "Comprovante indisponível"
		}

		fmt.Fprintf(&sb, "* %s | %s | -%s | %s\n", e.Date.Format("2006-01-02"), e.Description, money.Format(e.Amount), fileStatus)
	}

	fmt.Fprintf(&sb, "Total: %s (%d despesas)\n", money.Format(total), len(items))

	return sb.String()
}
