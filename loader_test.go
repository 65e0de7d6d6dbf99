package wealthdash

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadInputs_Sample(t *testing.T) {
	in := loadSample(t)
	assert.Equal(t, "2020-01-01", in.Rates.From)
	assert.Len(t, in.Rates.Data, 10)
	assert.Nil(t, in.Rates.Data[2])
	assert.Len(t, in.Transactions, 11)
	assert.Len(t, in.Institutions, 2)
	assert.Equal(t, "i1", in.Institutions[0].Investments[0].ID)
	assert.Len(t, in.Positions, 2)
}

func TestLoadInputs_Layout(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, RatesFile, `{"status":"ok","data":{"from":"2020-01-01","data":[1.3]}}`)
	writeFile(t, dir, PortfolioFile, `{"result":{"history":{"total":{"from":"2020-01-01","data":[10,11]}}}}`)
	writeFile(t, dir, TransactionsFile, `{"result":{"transactions":[{"date":"2020-01-01","type":"deposit","currency_amount":10,"investment":"a1:tfsa:cad"}]}}`)

	in, err := LoadInputs(dir, Layout{
		Rates:        "$.data",
		Portfolio:    "$.result",
		Transactions: "$.result.transactions",
	})
	require.NoError(t, err)
	assert.Equal(t, "2020-01-01", in.Rates.From)
	assert.Len(t, in.Portfolio.History.Total.Data, 2)
	require.Len(t, in.Transactions, 1)
	assert.Equal(t, "deposit", in.Transactions[0].Type)
	// optional files
	assert.Empty(t, in.Institutions)
	assert.Empty(t, in.Positions)
}

func TestLoadInputs_Errors(t *testing.T) {
	t.Run("missing mandatory file", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, RatesFile, `{"from":"2020-01-01","data":[]}`)
		_, err := LoadInputs(dir, Layout{})
		assert.ErrorContains(t, err, PortfolioFile)
	})

	t.Run("invalid json", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, RatesFile, `{"from":`)
		_, err := LoadInputs(dir, Layout{})
		assert.Error(t, err)
	})

	t.Run("unknown path", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, RatesFile, `{"from":"2020-01-01","data":[]}`)
		_, err := LoadInputs(dir, Layout{Rates: "$.nothing"})
		assert.Error(t, err)
	})
}

func TestSaveInputs(t *testing.T) {
	in := loadSample(t)
	dir := filepath.Join(t.TempDir(), "copy")
	require.NoError(t, SaveInputs(dir, in))

	back, err := LoadInputs(dir, Layout{})
	require.NoError(t, err)
	assert.Equal(t, in, back)
}
