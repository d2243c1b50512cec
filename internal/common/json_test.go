package common

import (
	"os"
	"path/filepath"
	"testing"

	"fjacquet/statement-insights/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONFile_RoundTrip(t *testing.T) {
	files := newFiles(0)
	path := filepath.Join(t.TempDir(), "jan.json")
	batch := models.Batch{ID: "batch-1", Source: "jan.pdf", Transactions: sampleTransactions()}

	require.NoError(t, files.WriteJSONFile(batch, path))
	got, err := files.ReadJSONFile(path)
	require.NoError(t, err)

	assert.Equal(t, "batch-1", got.ID)
	assert.Equal(t, "jan.pdf", got.Source)
	require.Equal(t, 2, got.Len())
	assert.Equal(t, "2024-01-02-1-bbbb2222", got.Transactions[1].ID)
	assert.Equal(t, "120.5", got.Transactions[1].Amount.String())
}

func TestReadJSONFile_BareArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rows.json")
	content := `[{"date":"2024-03-01","description":"Taxi","amount":"18","type":"DEBIT","category":"Travel"}]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	got, err := newFiles(0).ReadJSONFile(path)
	require.NoError(t, err)
	assert.Equal(t, "rows.json", got.Source)
	require.Equal(t, 1, got.Len())
	assert.Equal(t, models.CategoryTravel, got.Transactions[0].Category)
}

func TestReadJSONFile_NumericAmounts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extracted.json")
	content := `[
  {"date":"2024-01-01","description":"Supermarket","amount":500,"type":"DEBIT","category":"Groceries"},
  {"date":"2024-01-01","description":"Train","amount":10.125,"type":"DEBIT","category":"Travel"},
  {"date":"2024-01-02","description":"Payroll","amount":2000,"type":"CREDIT","category":"Salary"}
]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	got, err := newFiles(0).ReadJSONFile(path)
	require.NoError(t, err)
	require.Equal(t, 3, got.Len())
	assert.Equal(t, "500", got.Transactions[0].Amount.String())
	assert.Equal(t, "10.125", got.Transactions[1].Amount.String())
	assert.Equal(t, models.Credit, got.Transactions[2].Type)
}

func TestAmount_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Amount
		wantErr  bool
	}{
		{"number", `12.5`, "12.5", false},
		{"string", `"1,200.00"`, "1,200.00", false},
		{"null", `null`, "", false},
		{"boolean", `true`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a Amount
			err := a.UnmarshalJSON([]byte(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, a)
		})
	}
}

func TestReadJSONFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"transactions": 3}`), 0600))

	_, err := newFiles(0).ReadJSONFile(path)
	assert.Error(t, err)
}
