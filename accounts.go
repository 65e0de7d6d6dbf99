package wealthdash

import (
	"slices"

	"github.com/etnz/wealthdash/date"
	"github.com/rs/zerolog"
)

// Institution is a brokerage connection and its investment accounts, as sent
// by the host application.
type Institution struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	Group        string               `json:"group,omitempty"`
	CreationDate string               `json:"creation_date"`
	Investments  []InstitutionAccount `json:"investments"`
}

// InstitutionAccount is one investment account of an institution.
type InstitutionAccount struct {
	ID       string  `json:"_id"`
	Name     string  `json:"name"`
	Cash     float64 `json:"cash"`
	Value    float64 `json:"value"`
	Currency string  `json:"currency"`
}

// Filter restricts the institutions taken into account. Empty lists allow everything.
type Filter struct {
	Groups       []string `json:"groups,omitempty"`
	Institutions []string `json:"institutions,omitempty"`
}

// IsZero reports whether the filter lets everything through.
func (f Filter) IsZero() bool { return len(f.Groups) == 0 && len(f.Institutions) == 0 }

// Allows reports whether the institution passes the filter.
func (f Filter) Allows(in Institution) bool {
	if len(f.Groups) > 0 && !slices.Contains(f.Groups, in.Group) {
		return false
	}
	if len(f.Institutions) > 0 && !slices.Contains(f.Institutions, in.ID) {
		return false
	}
	return true
}

// Account is an account known to the pipeline.
type Account struct {
	ID      string
	Name    string
	Created date.Date // zero when unknown
}

// Accounts indexes accounts by identifier.
type Accounts map[string]Account

// NewAccounts builds the account index of the institutions passing the filter.
//
// An institution is indexed by its own id and by the id of each of its
// investment accounts, all sharing the institution name and creation date.
// An unparseable creation date is logged and treated as unknown.
func NewAccounts(institutions []Institution, filter Filter, log zerolog.Logger) Accounts {
	accounts := make(Accounts, len(institutions))
	for _, in := range institutions {
		if !filter.Allows(in) {
			continue
		}
		var created date.Date
		if in.CreationDate != "" {
			var err error
			if created, err = date.Parse(in.CreationDate); err != nil {
				log.Warn().Err(err).Str("account", in.ID).Msg("ignoring account creation date")
			}
		}
		accounts[in.ID] = Account{ID: in.ID, Name: in.Name, Created: created}
		for _, inv := range in.Investments {
			if inv.ID != "" {
				accounts[inv.ID] = Account{ID: inv.ID, Name: in.Name, Created: created}
			}
		}
	}
	return accounts
}

// Name resolves an account identifier into its display name, the identifier
// itself when unknown.
func (a Accounts) Name(id string) string {
	if acc, ok := a[id]; ok && acc.Name != "" {
		return acc.Name
	}
	return id
}

// EffectiveDate floors 'on' to the account creation date.
func (a Accounts) EffectiveDate(id string, on date.Date) date.Date {
	acc, ok := a[id]
	if !ok || acc.Created.IsZero() {
		return on
	}
	return date.Max(on, acc.Created)
}

// Keep returns the transactions owned by one of the accounts.
func (a Accounts) Keep(txs []Transaction) []Transaction {
	kept := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		if _, ok := a[tx.Account()]; ok {
			kept = append(kept, tx)
		}
	}
	return kept
}
