package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV(t *testing.T) {
	t.Run("maps header columns", func(t *testing.T) {
		content := []byte("date,description,amount,category\n" +
			"2024-03-01,ACME LTDA,100.50,sales\n" +
			"2024-03-02,PAYROLL,-2000.00,\n")

		rows, err := ParseCSV(content)
		require.NoError(t, err)
		require.Len(t, rows, 2)

		assert.Equal(t, 1, rows[0].RowNumber)
		assert.Equal(t, "2024-03-01", rows[0].Date)
		assert.Equal(t, "ACME LTDA", rows[0].Description)
		assert.Equal(t, "100.50", rows[0].Amount)
		assert.Equal(t, "sales", rows[0].Category)
		assert.Equal(t, "", rows[1].Category)
	})

	t.Run("accepts portuguese headers", func(t *testing.T) {
		content := []byte("data,descricao,valor\n2024-03-01,FORNECEDOR XYZ,59.90\n")

		rows, err := ParseCSV(content)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "FORNECEDOR XYZ", rows[0].Description)
		assert.Equal(t, "59.90", rows[0].Amount)
	})

	t.Run("accepts semicolon delimiter", func(t *testing.T) {
		content := []byte("date;description;amount\n2024-03-01;LOJA ABC;42.00\n")

		rows, err := ParseCSV(content)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "LOJA ABC", rows[0].Description)
	})

	t.Run("skips blank lines without losing row numbers", func(t *testing.T) {
		content := []byte("date,description,amount\n2024-03-01,A,1\n\n2024-03-02,B,2\n")

		rows, err := ParseCSV(content)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, 1, rows[0].RowNumber)
		assert.Equal(t, 3, rows[1].RowNumber)
	})

	t.Run("rejects header missing a required column", func(t *testing.T) {
		content := []byte("date,amount\n2024-03-01,1\n")

		_, err := ParseCSV(content)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "description")
	})

	t.Run("short rows surface as empty fields", func(t *testing.T) {
		content := []byte("date,description,amount\n2024-03-01,ONLY DATE AND DESC\n")

		rows, err := ParseCSV(content)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "", rows[0].Amount)
	})
}

func TestParseOFX(t *testing.T) {
	statement := []byte(`OFXHEADER:100
DATA:OFXSGML

<OFX>
<BANKMSGSRSV1>
<STMTTRNRS>
<STMTRS>
<BANKTRANLIST>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240305
<TRNAMT>-45.90
<MEMO>PIX TRANSF JOAO
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20240306120000[-3:BRT]
<TRNAMT>1500.00
<NAME>DEPOSITO SALARIO
</STMTTRN>
</BANKTRANLIST>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`)

	rows, err := ParseOFX(statement)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 1, rows[0].RowNumber)
	assert.Equal(t, "20240305", rows[0].Date)
	assert.Equal(t, "-45.90", rows[0].Amount)
	assert.Equal(t, "PIX TRANSF JOAO", rows[0].Description)
	assert.Equal(t, "debit", rows[0].Type)

	// NAME is the fallback when MEMO is absent
	assert.Equal(t, "DEPOSITO SALARIO", rows[1].Description)
	assert.Equal(t, "20240306120000[-3:BRT]", rows[1].Date)

	t.Run("rejects non-OFX content", func(t *testing.T) {
		_, err := ParseOFX([]byte("date,description,amount\n"))
		assert.Error(t, err)
	})

	t.Run("rejects statement without transactions", func(t *testing.T) {
		_, err := ParseOFX([]byte("<OFX><BANKTRANLIST></BANKTRANLIST></OFX>"))
		assert.Error(t, err)
	})
}
