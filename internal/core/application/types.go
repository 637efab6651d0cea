package application

import (
	"context"

	"github.com/arkade-os/ledgerd/internal/core/domain"
)

// Service is the entry point of the ledger. The caller of every mutating
// operation is passed explicitly and trusted as is.
type Service interface {
	Start() error
	Stop()
	CreateAsset(
		ctx context.Context, caller domain.AccountId,
		params domain.AssetParams, roles domain.RoleUpdate,
	) (*domain.Ledger, error)
	Transfer(
		ctx context.Context, caller, receiver domain.AccountId, amount uint64,
	) error
	OptIn(ctx context.Context, caller domain.AccountId) error
	OptOut(ctx context.Context, caller domain.AccountId) error
	Freeze(
		ctx context.Context, caller, account domain.AccountId, freeze bool,
	) error
	ModifyAsset(
		ctx context.Context, caller domain.AccountId, roles domain.RoleUpdate,
	) error
	GetAsset(ctx context.Context) (*domain.Ledger, error)
	GetAccount(ctx context.Context, id domain.AccountId) (*domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	ListEvents(ctx context.Context) ([]domain.Event, error)
	GetEventsChannel(ctx context.Context) <-chan []domain.Event
}
