package ports

import "github.com/arkade-os/ledgerd/internal/core/domain"

type RepoManager interface {
	Events() domain.EventRepository
	Ledger() domain.LedgerRepository
	Close()
}
