package redisdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/arkade-os/ledgerd/internal/core/domain"
	"github.com/redis/go-redis/v9"
)

const (
	ledgerKey   = "ledgerStore:ledger"
	accountsKey = "ledgerStore:accounts"

	defaultNumOfRetries = 5
)

type ledgerRepository struct {
	rdb          *redis.Client
	numOfRetries int
}

// NewLedgerRepository expects the redis url and optionally the number of
// retries on optimistic lock failures.
func NewLedgerRepository(config ...interface{}) (domain.LedgerRepository, error) {
	if len(config) < 1 || len(config) > 2 {
		return nil, fmt.Errorf("invalid config: expected 1 or 2 arguments, got %d", len(config))
	}
	url, ok := config[0].(string)
	if !ok {
		return nil, fmt.Errorf("invalid redis url")
	}
	numOfRetries := defaultNumOfRetries
	if len(config) == 2 {
		numOfRetries, ok = config[1].(int)
		if !ok || numOfRetries <= 0 {
			return nil, fmt.Errorf("invalid number of retries")
		}
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %s", err)
	}
	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		// nolint
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %s", err)
	}

	return &ledgerRepository{rdb, numOfRetries}, nil
}

func (r *ledgerRepository) GetLedger(ctx context.Context) (*domain.Ledger, error) {
	data, err := r.rdb.Get(ctx, ledgerKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger: %w", err)
	}

	var ledger domain.Ledger
	if err := json.Unmarshal(data, &ledger); err != nil {
		return nil, fmt.Errorf("failed to decode ledger: %w", err)
	}
	return &ledger, nil
}

func (r *ledgerRepository) AddLedger(ctx context.Context, ledger domain.Ledger) error {
	val, err := json.Marshal(ledger)
	if err != nil {
		return err
	}

	ok, err := r.rdb.SetNX(ctx, ledgerKey, val, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to add ledger: %w", err)
	}
	if !ok {
		return fmt.Errorf("ledger already exists")
	}
	return nil
}

func (r *ledgerRepository) GetAccount(
	ctx context.Context, id domain.AccountId,
) (*domain.Account, error) {
	data, err := r.rdb.HGet(ctx, accountsKey, id.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		account := domain.NewAccount(id)
		return &account, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account %s: %w", id, err)
	}

	var account domain.Account
	if err := json.Unmarshal(data, &account); err != nil {
		return nil, fmt.Errorf("failed to decode account %s: %w", id, err)
	}
	return &account, nil
}

func (r *ledgerRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	values, err := r.rdb.HGetAll(ctx, accountsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	accounts := make([]domain.Account, 0, len(values))
	for id, data := range values {
		var account domain.Account
		if err := json.Unmarshal([]byte(data), &account); err != nil {
			return nil, fmt.Errorf("failed to decode account %s: %w", id, err)
		}
		accounts = append(accounts, account)
	}
	sort.SliceStable(accounts, func(i, j int) bool {
		return accounts[i].Id.String() < accounts[j].Id.String()
	})
	return accounts, nil
}

// Save watches the ledger key and writes the ledger and the accounts in a
// single MULTI/EXEC.
func (r *ledgerRepository) Save(
	ctx context.Context, ledger domain.Ledger, accounts ...domain.Account,
) (err error) {
	ledgerVal, err := json.Marshal(ledger)
	if err != nil {
		return err
	}
	accountVals := make([]interface{}, 0, 2*len(accounts))
	for _, account := range accounts {
		val, err := json.Marshal(account)
		if err != nil {
			return err
		}
		accountVals = append(accountVals, account.Id.String(), val)
	}

	for attempt := 0; attempt < r.numOfRetries; attempt++ {
		err = r.rdb.Watch(ctx, func(tx *redis.Tx) error {
			exists, err := tx.Exists(ctx, ledgerKey).Result()
			if err != nil {
				return err
			}
			if exists == 0 {
				return fmt.Errorf("ledger %s not found", ledger.Asset.Id)
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, ledgerKey, ledgerVal, 0)
				if len(accountVals) > 0 {
					pipe.HSet(ctx, accountsKey, accountVals...)
				}
				return nil
			})
			return err
		}, ledgerKey)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
		time.Sleep(10 * time.Millisecond)
	}
	return err
}

func (r *ledgerRepository) Close() {
	// nolint
	r.rdb.Close()
}
