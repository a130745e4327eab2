package export

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/carteira/internal/expense"
	"github.com/MrJamesThe3rd/carteira/internal/receipt"
)

func body(s string) io.ReadCloser {
	return io.NopCloser(strings.NewReader(s))
}

func TestService_Export(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	date := time.Date(2024, 10, 27, 0, 0, 0, 0, time.UTC)

	withName := &expense.Expense{ID: uuid.New(), Description: "Mercado", Amount: 1000, Date: date, ReceiptURI: "gs://b/1"}
	noExt := &expense.Expense{ID: uuid.New(), Description: "Conta de luz", Amount: 2000, Date: date, ReceiptURI: "gs://b/2"}
	gone := &expense.Expense{ID: uuid.New(), Description: "Farmácia", Amount: 3000, Date: date, ReceiptURI: "gs://b/3"}
	none := &expense.Expense{ID: uuid.New(), Description: "Padaria", Amount: 500, Date: date}
	sameName := &expense.Expense{ID: uuid.New(), Description: "Mercado", Amount: 1500, Date: date, ReceiptURI: "gs://b/4"}

	exps := NewMockExpenseLister(ctrl)
	receipts := NewMockReceiptOpener(ctrl)

	filter := expense.ListFilter{StartDate: &date}
	exps.EXPECT().List(gomock.Any(), "u1", filter).Return([]*expense.Expense{withName, noExt, gone, none, sameName}, nil)

	receipts.EXPECT().Open(gomock.Any(), "u1", withName.ID).
		Return(&receipt.Object{Name: "nota.png", ContentType: "image/png", Body: body("png")}, nil)
	receipts.EXPECT().Open(gomock.Any(), "u1", noExt.ID).
		Return(&receipt.Object{Name: "fatura", ContentType: "application/pdf", Body: body("pdf")}, nil)
	receipts.EXPECT().Open(gomock.Any(), "u1", gone.ID).Return(nil, receipt.ErrObjectNotFound)
	receipts.EXPECT().Open(gomock.Any(), "u1", sameName.ID).
		Return(&receipt.Object{Name: "outra.png", ContentType: "image/png", Body: body("png2")}, nil)

	dir := t.TempDir()

	items, err := NewService(exps, receipts).Export(context.Background(), "u1", filter, dir)
	require.NoError(t, err)
	require.Len(t, items, 5)

	assert.Equal(t, "20241027_Mercado.png", filepath.Base(items[0].FilePath))
	content, err := os.ReadFile(items[0].FilePath)
	require.NoError(t, err)
	assert.Equal(t, "png", string(content))

	assert.Equal(t, "20241027_Conta_de_luz.pdf", filepath.Base(items[1].FilePath))

	assert.Empty(t, items[2].FilePath)
	assert.True(t, items[2].Missing)

	assert.Empty(t, items[3].FilePath)
	assert.False(t, items[3].Missing)

	assert.Equal(t, "20241027_Mercado_2.png", filepath.Base(items[4].FilePath))
}

func TestService_Summary(t *testing.T) {
	s := &Service{}

	date := time.Date(2024, 10, 27, 0, 0, 0, 0, time.UTC)
	items := []Item{
		{Expense: &expense.Expense{Date: date, Amount: 125050, Description: "Aluguel"}, FilePath: "/tmp/recibo.pdf"},
		{Expense: &expense.Expense{Date: date, Amount: 500, Description: "Café"}},
		{Expense: &expense.Expense{Date: date, Amount: 1000, Description: "Farmácia"}, Missing: true},
	}

	got := s.Summary(items)

	for _, want := range []string{
		"2024-10-27 | Aluguel | -R$ 1.250,50 | recibo.pdf",
		"2024-10-27 | Café | -R$ 5,00 | Sem comprovante",
		"2024-10-27 | Farmácia | -R$ 10,00 | Comprovante indisponível",
		"Total: R$ 1.265,50 (3 despesas)",
	} {
		assert.Contains(t, got, want)
	}
}
