package badgerdb

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/arkade-os/ledgerd/internal/core/domain"
	"github.com/dgraph-io/badger/v4"
	"github.com/timshannon/badgerhold/v4"
)

const (
	ledgerStoreDir = "ledger"
	ledgerKey      = "ledger"
)

type ledgerRepository struct {
	store *badgerhold.Store
}

type ledgerDTO struct {
	domain.Ledger
	UpdatedAt int64
}

type accountDTO struct {
	domain.Account
	UpdatedAt int64
}

func NewLedgerRepository(config ...interface{}) (domain.LedgerRepository, error) {
	if len(config) != 2 {
		return nil, fmt.Errorf("invalid config")
	}
	baseDir, ok := config[0].(string)
	if !ok {
		return nil, fmt.Errorf("invalid base directory")
	}
	var logger badger.Logger
	if config[1] != nil {
		logger, ok = config[1].(badger.Logger)
		if !ok {
			return nil, fmt.Errorf("invalid logger")
		}
	}

	var dir string
	if len(baseDir) > 0 {
		dir = filepath.Join(baseDir, ledgerStoreDir)
	}
	store, err := createDB(dir, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger store: %s", err)
	}

	return &ledgerRepository{store}, nil
}

func (r *ledgerRepository) GetLedger(_ context.Context) (*domain.Ledger, error) {
	var dto ledgerDTO
	err := r.store.Get(ledgerKey, &dto)
	if errors.Is(err, badgerhold.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger: %w", err)
	}
	return &dto.Ledger, nil
}

func (r *ledgerRepository) AddLedger(_ context.Context, ledger domain.Ledger) error {
	dto := ledgerDTO{
		Ledger:    ledger,
		UpdatedAt: time.Now().UnixMilli(),
	}
	insertFn := func() error {
		return r.store.Insert(ledgerKey, dto)
	}

	err := insertFn()
	if errors.Is(err, badger.ErrConflict) {
		attempts := 1
		for errors.Is(err, badger.ErrConflict) && attempts <= maxRetries {
			time.Sleep(100 * time.Millisecond)
			err = insertFn()
			attempts++
		}
	}
	if errors.Is(err, badgerhold.ErrKeyExists) {
		return fmt.Errorf("ledger %s already exists", ledger.Asset.Id)
	}
	return err
}

func (r *ledgerRepository) GetAccount(
	_ context.Context, id domain.AccountId,
) (*domain.Account, error) {
	var dto accountDTO
	err := r.store.Get(id.String(), &dto)
	if errors.Is(err, badgerhold.ErrNotFound) {
		account := domain.NewAccount(id)
		return &account, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account %s: %w", id, err)
	}
	return &dto.Account, nil
}

func (r *ledgerRepository) ListAccounts(_ context.Context) ([]domain.Account, error) {
	dtos := make([]accountDTO, 0)
	if err := r.store.Find(&dtos, nil); err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	accounts := make([]domain.Account, 0, len(dtos))
	for _, dto := range dtos {
		accounts = append(accounts, dto.Account)
	}
	sort.SliceStable(accounts, func(i, j int) bool {
		return accounts[i].Id.String() < accounts[j].Id.String()
	})
	return accounts, nil
}

func (r *ledgerRepository) Save(
	_ context.Context, ledger domain.Ledger, accounts ...domain.Account,
) error {
	var err error

	for range maxRetries {
		err = func() error {
			tx := r.store.Badger().NewTransaction(true)
			defer tx.Discard()

			now := time.Now().UnixMilli()
			if err := r.store.TxUpdate(tx, ledgerKey, ledgerDTO{
				Ledger:    ledger,
				UpdatedAt: now,
			}); err != nil {
				return err
			}
			for _, account := range accounts {
				if err := r.store.TxUpsert(tx, account.Id.String(), accountDTO{
					Account:   account,
					UpdatedAt: now,
				}); err != nil {
					return err
				}
			}

			return tx.Commit()
		}()
		if err == nil {
			return nil
		}

		if errors.Is(err, badger.ErrConflict) {
			time.Sleep(100 * time.Millisecond)
			continue
		}
		return err
	}

	return err
}

func (r *ledgerRepository) Close() {
	// nolint:all
	r.store.Close()
}
