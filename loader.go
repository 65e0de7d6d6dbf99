package wealthdash

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/PaesslerAG/jsonpath"
)

// Payload file names inside a data directory.
const (
	RatesFile        = "rates.json"
	PortfolioFile    = "portfolio.json"
	TransactionsFile = "transactions.json"
	InstitutionsFile = "institutions.json"
	PositionsFile    = "positions.json"
)

// Layout tells where each payload is located inside its file, as a JSONPath
// expression. An empty path (or "$") means the file is the bare payload.
//
// It allows to load raw dumps of the host application where the payload is
// nested, for instance "$.data" or "$.result.transactions".
type Layout struct {
	Rates        string `json:"rates,omitempty"`
	Portfolio    string `json:"portfolio,omitempty"`
	Transactions string `json:"transactions,omitempty"`
	Institutions string `json:"institutions,omitempty"`
	Positions    string `json:"positions,omitempty"`
}

// LoadInputs reads the payload files of a data directory.
//
// Rates, portfolio and transactions are mandatory; institutions and positions
// are optional.
func LoadInputs(dir string, layout Layout) (*Inputs, error) {
	in := new(Inputs)
	files := []struct {
		name     string
		path     string
		dst      any
		optional bool
	}{
		{RatesFile, layout.Rates, &in.Rates, false},
		{PortfolioFile, layout.Portfolio, &in.Portfolio, false},
		{TransactionsFile, layout.Transactions, &in.Transactions, false},
		{InstitutionsFile, layout.Institutions, &in.Institutions, true},
		{PositionsFile, layout.Positions, &in.Positions, true},
	}
	for _, f := range files {
		err := decodeFile(filepath.Join(dir, f.name), f.path, f.dst)
		if f.optional && errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
	}
	return in, nil
}

// decodeFile decodes the JSON document at 'path' inside 'file' into dst.
func decodeFile(file, path string, dst any) error {
	content, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("could not read payload file %q: %w", file, err)
	}
	if path == "" || path == "$" {
		if err := json.Unmarshal(content, dst); err != nil {
			return fmt.Errorf("could not decode payload file %q: %w", file, err)
		}
		return nil
	}

	var doc any
	if err := json.Unmarshal(content, &doc); err != nil {
		return fmt.Errorf("could not decode payload file %q: %w", file, err)
	}
	selected, err := jsonpath.Get(path, doc)
	if err != nil {
		return fmt.Errorf("could not select %q in %q: %w", path, file, err)
	}
	// re-encode the selected sub document to decode it into the typed value.
	raw, err := json.Marshal(selected)
	if err != nil {
		return fmt.Errorf("could not select %q in %q: %w", path, file, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("could not decode %q in %q: %w", path, file, err)
	}
	return nil
}

// SaveInputs writes the payloads into a data directory, in the bare layout
// LoadInputs reads by default.
func SaveInputs(dir string, in *Inputs) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("could not create data directory %q: %w", dir, err)
	}
	files := []struct {
		name string
		src  any
	}{
		{RatesFile, in.Rates},
		{PortfolioFile, in.Portfolio},
		{TransactionsFile, in.Transactions},
		{InstitutionsFile, in.Institutions},
		{PositionsFile, in.Positions},
	}
	for _, f := range files {
		content, err := json.MarshalIndent(f.src, "", "  ")
		if err != nil {
			return fmt.Errorf("could not encode %q: %w", f.name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, f.name), content, 0o644); err != nil {
			return fmt.Errorf("could not write %q: %w", f.name, err)
		}
	}
	return nil
}
