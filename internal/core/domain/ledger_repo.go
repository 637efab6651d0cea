package domain

import "context"

type LedgerRepository interface {
	// GetLedger returns nil without error when no asset has been created yet.
	GetLedger(ctx context.Context) (*Ledger, error)
	AddLedger(ctx context.Context, ledger Ledger) error
	// GetAccount returns the zero record for ids that were never written.
	GetAccount(ctx context.Context, id AccountId) (*Account, error)
	ListAccounts(ctx context.Context) ([]Account, error)
	// Save persists the roles of the ledger and the given account records in a
	// single transaction.
	Save(ctx context.Context, ledger Ledger, accounts ...Account) error
	Close()
}
