package expense_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/carteira/internal/auth"
	"github.com/MrJamesThe3rd/carteira/internal/bank"
	"github.com/MrJamesThe3rd/carteira/internal/expense"
	handler "github.com/MrJamesThe3rd/carteira/internal/http/expense"
	"github.com/MrJamesThe3rd/carteira/internal/receipt"
)

const owner = "user-1"

type mocks struct {
	repo  *expense.MockRepository
	store *receipt.MockStore
}

func serve(t *testing.T, setupMock func(m mocks), req *http.Request) *httptest.ResponseRecorder {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := mocks{
		repo:  expense.NewMockRepository(ctrl),
		store: receipt.NewMockStore(ctrl),
	}

	if setupMock != nil {
		setupMock(m)
	}

	svc := expense.NewService(m.repo)
	h := handler.NewHandler(svc, receipt.NewService(m.store, svc), 1<<20)

	r := chi.NewRouter()
	h.Routes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req.WithContext(auth.WithOwner(req.Context(), owner)))

	return rec
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	return req
}

type expenseJSON struct {
	ID          uuid.UUID `json:"id"`
	Amount      int64     `json:"amount"`
	Date        string    `json:"date"`
	Status      string    `json:"status"`
	Method      string    `json:"method"`
	HasReceipt  bool      `json:"has_receipt"`
	Installment *struct {
		Label   string    `json:"label"`
		GroupID uuid.UUID `json:"group_id"`
	} `json:"installment"`
}

func TestHandler_CreateInstallments(t *testing.T) {
	cardID := uuid.New()

	body := `{"description":"Televisão","amount":100000,"date":"2024-01-31","method":"credit",` +
		`"card_id":"` + cardID.String() + `","status":"pending","installments":3}`

	rec := serve(t, func(m mocks) {
		m.repo.EXPECT().
			CreateExpenses(gomock.Any(), gomock.Len(3), gomock.Nil()).
			DoAndReturn(func(_ any, exps []*expense.Expense, _ []bank.Adjustment) error {
				for _, e := range exps {
					e.ID = uuid.New()
				}

				return nil
			})
	}, jsonRequest(http.MethodPost, "/", body))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var got []expenseJSON
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Len(t, got, 3)

	assert.Equal(t, []string{"2024-01-31", "2024-02-29", "2024-03-31"}, []string{got[0].Date, got[1].Date, got[2].Date})
	assert.Equal(t, int64(33334), got[2].Amount)
	assert.Equal(t, int64(100000), got[0].Amount+got[1].Amount+got[2].Amount)

	for i, e := range got {
		require.NotNil(t, e.Installment)
		assert.Equal(t, got[0].Installment.GroupID, e.Installment.GroupID)
		assert.Equal(t, []string{"1/3", "2/3", "3/3"}[i], e.Installment.Label)
	}
}

func TestHandler_Errors(t *testing.T) {
	id := uuid.New()
	bankID := uuid.New()

	type args struct {
		req *http.Request
	}

	type testCase struct {
		name       string
		args       args
		setupMock  func(m mocks)
		wantStatus int
		wantField  string
	}

	tests := []testCase{
		{
			name: "InvalidAmount",
			args: args{req: jsonRequest(http.MethodPost, "/",
				`{"description":"x","amount":0,"date":"2024-05-10","method":"pix","status":"pending"}`)},
			wantStatus: http.StatusBadRequest,
			wantField:  "amount",
		},
		{
			name:       "BadDate",
			args:       args{req: jsonRequest(http.MethodPost, "/", `{"description":"x","amount":1,"date":"10/05/2024"}`)},
			wantStatus: http.StatusBadRequest,
			wantField:  "date",
		},
		{
			name:       "InvalidID",
			args:       args{req: httptest.NewRequest(http.MethodGet, "/nope", nil)},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "NotFound",
			args: args{req: httptest.NewRequest(http.MethodGet, "/"+id.String(), nil)},
			setupMock: func(m mocks) {
				m.repo.EXPECT().GetExpense(gomock.Any(), owner, id).Return(nil, expense.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "ConfirmTwice",
			args: args{req: jsonRequest(http.MethodPost, "/"+id.String()+"/confirm",
				`{"method":"pix","bank_id":"`+bankID.String()+`"}`)},
			setupMock: func(m mocks) {
				m.repo.EXPECT().GetExpense(gomock.Any(), owner, id).Return(&expense.Expense{
					ID: id, OwnerID: owner, Status: expense.StatusPaid,
				}, nil)
			},
			wantStatus: http.StatusConflict,
		},
		{
			name: "ConfirmLostRace",
			args: args{req: jsonRequest(http.MethodPost, "/"+id.String()+"/confirm",
				`{"method":"pix","bank_id":"`+bankID.String()+`"}`)},
			setupMock: func(m mocks) {
				m.repo.EXPECT().GetExpense(gomock.Any(), owner, id).Return(&expense.Expense{
					ID: id, OwnerID: owner, Description: "Luz", Amount: 15000,
					Date: time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC), Method: expense.MethodPending,
					Status: expense.StatusPending,
				}, nil)
				m.repo.EXPECT().ConfirmPayment(gomock.Any(), gomock.Any(), gomock.Any()).Return(expense.ErrNotPending)
			},
			wantStatus: http.StatusConflict,
		},
		{
			name:       "BadStatusFilter",
			args:       args{req: httptest.NewRequest(http.MethodGet, "/?status=late", nil)},
			wantStatus: http.StatusBadRequest,
			wantField:  "status",
		},
		{
			name: "NoReceipt",
			args: args{req: httptest.NewRequest(http.MethodGet, "/"+id.String()+"/receipt", nil)},
			setupMock: func(m mocks) {
				m.repo.EXPECT().GetExpense(gomock.Any(), owner, id).Return(&expense.Expense{ID: id}, nil)
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, tt.setupMock, tt.args.req)

			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			if tt.wantField != "" {
				var body struct {
					Field string `json:"field"`
				}
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
				assert.Equal(t, tt.wantField, body.Field)
			}
		})
	}
}

func TestHandler_Confirm(t *testing.T) {
	id := uuid.New()
	bankID := uuid.New()

	req := jsonRequest(http.MethodPost, "/"+id.String()+"/confirm",
		`{"method":"pix","bank_id":"`+bankID.String()+`","paid_on":"2024-05-12"}`)

	rec := serve(t, func(m mocks) {
		m.repo.EXPECT().GetExpense(gomock.Any(), owner, id).Return(&expense.Expense{
			ID: id, OwnerID: owner, Description: "Luz", Amount: 15000,
			Date: time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC), Method: expense.MethodPending,
			Status: expense.StatusPending,
		}, nil)
		m.repo.EXPECT().
			ConfirmPayment(gomock.Any(), gomock.Any(), &bank.Adjustment{AccountID: bankID, Delta: -15000}).
			Return(nil)
	}, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got expenseJSON
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "paid", got.Status)
	assert.Equal(t, "pix", got.Method)
	assert.Equal(t, "2024-05-12", got.Date)
}

func TestHandler_Receipt(t *testing.T) {
	id := uuid.New()
	uri := "file://receipts/user-1/" + id.String() + "/nota.pdf"

	t.Run("Upload", func(t *testing.T) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)

		part, err := mw.CreatePart(textproto.MIMEHeader{
			"Content-Disposition": {`form-data; name="file"; filename="nota.pdf"`},
			"Content-Type":        {"application/pdf"},
		})
		require.NoError(t, err)
		_, _ = part.Write([]byte("%PDF-1.4"))
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPut, "/"+id.String()+"/receipt", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())

		rec := serve(t, func(m mocks) {
			m.repo.EXPECT().GetExpense(gomock.Any(), owner, id).Return(&expense.Expense{ID: id}, nil)
			m.store.EXPECT().Put(gomock.Any(), gomock.Any(), "application/pdf", gomock.Any()).Return(uri, nil)
			m.repo.EXPECT().SetReceipt(gomock.Any(), owner, id, uri).Return(nil)
			m.store.EXPECT().List(gomock.Any(), receipt.Prefix(owner, id)).Return([]string{uri}, nil)
		}, req)

		assert.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
	})

	t.Run("Download", func(t *testing.T) {
		rec := serve(t, func(m mocks) {
			m.repo.EXPECT().GetExpense(gomock.Any(), owner, id).Return(&expense.Expense{ID: id, ReceiptURI: uri}, nil)
			m.store.EXPECT().Open(gomock.Any(), uri).Return(&receipt.Object{
				Name:        "nota.pdf",
				ContentType: "application/pdf",
				Size:        8,
				Body:        io.NopCloser(strings.NewReader("%PDF-1.4")),
			}, nil)
		}, httptest.NewRequest(http.MethodGet, "/"+id.String()+"/receipt", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Header().Get("Content-Disposition"), `filename="nota.pdf"`)
		assert.Equal(t, "%PDF-1.4", rec.Body.String())
	})
}
