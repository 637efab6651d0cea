package pgdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/arkade-os/ledgerd/internal/core/domain"
	"github.com/arkade-os/ledgerd/internal/infrastructure/db/postgres/sqlc/queries"
)

type ledgerRepository struct {
	db      *sql.DB
	querier *queries.Queries
}

func NewLedgerRepository(config ...interface{}) (domain.LedgerRepository, error) {
	if len(config) != 1 {
		return nil, fmt.Errorf("invalid config: expected 1 argument, got %d", len(config))
	}
	db, ok := config[0].(*sql.DB)
	if !ok {
		return nil, fmt.Errorf(
			"cannot open ledger repository: expected *sql.DB but got %T", config[0],
		)
	}

	return &ledgerRepository{
		db:      db,
		querier: queries.New(db),
	}, nil
}

func (r *ledgerRepository) GetLedger(ctx context.Context) (*domain.Ledger, error) {
	row, err := r.querier.SelectAsset(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger: %w", err)
	}
	return toLedger(row)
}

func (r *ledgerRepository) AddLedger(ctx context.Context, ledger domain.Ledger) error {
	asset, roles := ledger.Asset, ledger.Roles
	return execTx(ctx, r.db, func(querierWithTx *queries.Queries) error {
		if _, err := querierWithTx.SelectAsset(ctx); err == nil {
			return fmt.Errorf("ledger already exists")
		} else if !errors.Is(err, sql.ErrNoRows) {
			return err
		}

		return querierWithTx.InsertAsset(ctx, queries.InsertAssetParams{
			ID:            asset.Id.String(),
			Creator:       asset.Creator.String(),
			Name:          asset.Name,
			UnitName:      asset.UnitName,
			Total:         strconv.FormatUint(asset.Total, 10),
			Decimals:      int64(asset.Decimals),
			DefaultFrozen: asset.DefaultFrozen,
			Url:           asset.Url,
			MetadataHash:  asset.MetadataHash.String(),
			ManagerID:     roles.Manager.String(),
			ReserveID:     roles.Reserve.String(),
			FreezeID:      roles.Freeze.String(),
			ClawbackID:    roles.Clawback.String(),
			UpdatedAt:     time.Now().Unix(),
		})
	})
}

func (r *ledgerRepository) GetAccount(
	ctx context.Context, id domain.AccountId,
) (*domain.Account, error) {
	row, err := r.querier.SelectAccount(ctx, id.String())
	if errors.Is(err, sql.ErrNoRows) {
		account := domain.NewAccount(id)
		return &account, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account %s: %w", id, err)
	}
	return toAccount(row)
}

func (r *ledgerRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	rows, err := r.querier.SelectAllAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	accounts := make([]domain.Account, 0, len(rows))
	for _, row := range rows {
		account, err := toAccount(row)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *account)
	}
	return accounts, nil
}

func (r *ledgerRepository) Save(
	ctx context.Context, ledger domain.Ledger, accounts ...domain.Account,
) error {
	now := time.Now().Unix()
	return execTx(ctx, r.db, func(querierWithTx *queries.Queries) error {
		count, err := querierWithTx.UpdateAssetRoles(ctx, queries.UpdateAssetRolesParams{
			ManagerID:  ledger.Roles.Manager.String(),
			ReserveID:  ledger.Roles.Reserve.String(),
			FreezeID:   ledger.Roles.Freeze.String(),
			ClawbackID: ledger.Roles.Clawback.String(),
			UpdatedAt:  now,
			ID:         ledger.Asset.Id.String(),
		})
		if err != nil {
			return fmt.Errorf("failed to update roles: %w", err)
		}
		if count == 0 {
			return fmt.Errorf("ledger %s not found", ledger.Asset.Id)
		}

		for _, account := range accounts {
			if err := querierWithTx.UpsertAccount(ctx, queries.UpsertAccountParams{
				ID:        account.Id.String(),
				Balance:   strconv.FormatUint(account.Balance, 10),
				OptedIn:   account.OptedIn,
				Frozen:    account.Frozen,
				UpdatedAt: now,
			}); err != nil {
				return fmt.Errorf("failed to upsert account %s: %w", account.Id, err)
			}
		}
		return nil
	})
}

func (r *ledgerRepository) Close() {
	// nolint:all
	r.db.Close()
}

func toLedger(row queries.Asset) (*domain.Ledger, error) {
	var (
		ledger domain.Ledger
		err    error
	)

	ids := []struct {
		field string
		value string
		dest  *domain.AccountId
	}{
		{"id", row.ID, &ledger.Asset.Id},
		{"creator", row.Creator, &ledger.Asset.Creator},
		{"manager_id", row.ManagerID, &ledger.Roles.Manager},
		{"reserve_id", row.ReserveID, &ledger.Roles.Reserve},
		{"freeze_id", row.FreezeID, &ledger.Roles.Freeze},
		{"clawback_id", row.ClawbackID, &ledger.Roles.Clawback},
	}
	for _, id := range ids {
		if err := id.dest.FromString(id.value); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", id.field, err)
		}
	}

	ledger.Asset.Total, err = strconv.ParseUint(row.Total, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid total: %w", err)
	}
	if err := ledger.Asset.MetadataHash.FromString(row.MetadataHash); err != nil {
		return nil, err
	}

	ledger.Asset.Name = row.Name
	ledger.Asset.UnitName = row.UnitName
	ledger.Asset.Decimals = uint32(row.Decimals)
	ledger.Asset.DefaultFrozen = row.DefaultFrozen
	ledger.Asset.Url = row.Url
	return &ledger, nil
}

func toAccount(row queries.Account) (*domain.Account, error) {
	var id domain.AccountId
	if err := id.FromString(row.ID); err != nil {
		return nil, err
	}
	balance, err := strconv.ParseUint(row.Balance, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid balance of account %s: %w", row.ID, err)
	}
	return &domain.Account{
		Id:      id,
		Balance: balance,
		OptedIn: row.OptedIn,
		Frozen:  row.Frozen,
	}, nil
}
