package statement_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/MrJamesThe3rd/carteira/internal/encoding"
	"github.com/MrJamesThe3rd/carteira/internal/importer/statement"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestParse_NubankConta(t *testing.T) {
	csv := `Data,Valor,Identificador,Descrição
02/05/2024,-45.90,6634a1b2-0000-0000-0000-000000000001,Compra no débito - Padaria Pão Quente
05/05/2024,3000.00,6634a1b2-0000-0000-0000-000000000002,Transferência recebida pelo Pix - ACME LTDA
06/05/2024,0.00,6634a1b2-0000-0000-0000-000000000003,Ajuste
`

	res, err := statement.Parse(strings.NewReader(csv), statement.SourceAuto)
	require.NoError(t, err)
	require.Len(t, res.Entries, 2)

	assert.Equal(t, "nubank conta", res.Profile)

	assert.Equal(t, date(2024, 5, 2), res.Entries[0].Date)
	assert.Equal(t, "Compra no débito - Padaria Pão Quente", res.Entries[0].Description)
	assert.Equal(t, int64(4590), res.Entries[0].Amount)
	assert.Equal(t, statement.KindDebit, res.Entries[0].Kind)
	assert.Equal(t, 2, res.Entries[0].Row)

	assert.Equal(t, int64(300000), res.Entries[1].Amount)
	assert.Equal(t, statement.KindCredit, res.Entries[1].Kind)
}

func TestParse_NubankCartao(t *testing.T) {
	csv := `date,title,amount
2024-05-03,Uber *Trip,23.45
2024-05-10,Pagamento recebido,-500.00
`

	res, err := statement.Parse(strings.NewReader(csv), statement.SourceNubank)
	require.NoError(t, err)
	require.Len(t, res.Entries, 2)

	assert.Equal(t, "nubank cartão", res.Profile)
	assert.True(t, res.Card)
	assert.Equal(t, statement.KindDebit, res.Entries[0].Kind)
	assert.Equal(t, int64(2345), res.Entries[0].Amount)
	assert.Equal(t, statement.KindCredit, res.Entries[1].Kind)
}

func TestParse_Itau(t *testing.T) {
	csv := `data;lançamento;ag./origem;valor (R$);saldos (R$)
30/04/2024;SALDO ANTERIOR;;;10.000,00
02/05/2024;PIX TRANSF JOAO 02/05;;-1.234,56;8.765,44
03/05/2024;TED 341.1234 ACME;;5.000,00;13.765,44
03/05/2024;SDO CTA/APL AUTOMATICAS;;;13.765,44
`

	res, err := statement.Parse(strings.NewReader(csv), statement.SourceItau)
	require.NoError(t, err)
	require.Len(t, res.Entries, 2)

	assert.Equal(t, "itaú", res.Profile)
	assert.Equal(t, "PIX TRANSF JOAO 02/05", res.Entries[0].Description)
	assert.Equal(t, int64(123456), res.Entries[0].Amount)
	assert.Equal(t, statement.KindDebit, res.Entries[0].Kind)
	assert.Equal(t, int64(500000), res.Entries[1].Amount)
	assert.Equal(t, statement.KindCredit, res.Entries[1].Kind)
}

func TestParse_BancoDoBrasilLatin1(t *testing.T) {
	csv := `"Data","Lançamento","Detalhes","N° documento","Valor","Tipo Lançamento"
"30/04/2024","Saldo Anterior","","","1.000,00",""
"02/05/2024","Pix - Enviado","02/05 10:31 Maria","123","-150,00","Saída"
"03/05/2024","Pix - Recebido","03/05 09:00 Jose","124","80,00","Entrada"
"03/05/2024","S A L D O","","","930,00",""
`

	latin1, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(csv))
	require.NoError(t, err)

	res, err := statement.Parse(bytes.NewReader(latin1), statement.SourceAuto)
	require.NoError(t, err)
	require.Len(t, res.Entries, 2)

	assert.Equal(t, "bb", res.Profile)
	assert.NotEqual(t, encoding.UTF8, res.Charset)

	assert.Equal(t, "Pix - Enviado 02/05 10:31 Maria", res.Entries[0].Description)
	assert.Equal(t, int64(15000), res.Entries[0].Amount)
	assert.Equal(t, statement.KindDebit, res.Entries[0].Kind)

	assert.Equal(t, int64(8000), res.Entries[1].Amount)
	assert.Equal(t, statement.KindCredit, res.Entries[1].Kind)
}

func TestParse_Errors(t *testing.T) {
	type args struct {
		csv    string
		source statement.Source
	}

	type testCase struct {
		name string
		args args
	}

	tests := []testCase{
		{name: "UnknownHeaders", args: args{csv: "foo;bar\n1;2\n"}},
		{name: "Empty", args: args{csv: ""}},
		{
			name: "WrongSource",
			args: args{csv: "date,title,amount\n2024-05-03,Uber,1.00\n", source: statement.SourceItau},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := statement.Parse(strings.NewReader(tt.args.csv), tt.args.source)
			assert.ErrorIs(t, err, statement.ErrUnknownFormat)
		})
	}
}

func TestParse_MissingDescription(t *testing.T) {
	csv := "Data,Valor,Identificador,Descrição\n02/05/2024,-10.00,abc,\n"

	_, err := statement.Parse(strings.NewReader(csv), statement.SourceNubank)
	assert.ErrorContains(t, err, "row 2")
}
