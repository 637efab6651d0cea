package application

import (
	"context"
	"crypto/rand"
	"fmt"
	"sync"

	"github.com/arkade-os/ledgerd/internal/core/domain"
	"github.com/arkade-os/ledgerd/internal/core/ports"
	"github.com/arkade-os/ledgerd/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type service struct {
	repoManager ports.RepoManager

	// configured instance identity, nil means random at creation
	assetId *domain.AssetId

	// serializes all mutating operations of the instance
	lock *sync.Mutex

	eventsCh     chan []domain.Event
	eventsLock   *sync.RWMutex
	eventsClosed bool

	stop func()
	ctx  context.Context
}

func NewService(repoManager ports.RepoManager, assetId string) (Service, error) {
	var id *domain.AssetId
	if assetId != "" {
		id = &domain.AssetId{}
		if err := id.FromString(assetId); err != nil {
			return nil, fmt.Errorf("invalid asset id: %s", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())

	svc := &service{
		repoManager: repoManager,
		assetId:     id,
		lock:        &sync.Mutex{},
		eventsCh:    make(chan []domain.Event, 64),
		eventsLock:  &sync.RWMutex{},
		stop:        cancel,
		ctx:         ctx,
	}

	repoManager.Events().RegisterEventsHandler(
		domain.LedgerTopic, func(events []domain.Event) {
			svc.propagateEvents(events)
		},
	)

	return svc, nil
}

func (s *service) Start() error {
	log.Debug("starting app service...")

	ledger, err := s.repoManager.Ledger().GetLedger(s.ctx)
	if err != nil {
		return fmt.Errorf("failed to get ledger from db: %w", err)
	}
	if ledger == nil {
		log.Info("no asset found, waiting for creation")
		return nil
	}

	if s.assetId != nil && *s.assetId != ledger.Asset.Id {
		return fmt.Errorf(
			"configured asset id %s does not match stored asset %s",
			s.assetId, ledger.Asset.Id,
		)
	}

	log.WithFields(log.Fields{
		"asset_id": ledger.Asset.Id.String(),
		"name":     ledger.Asset.Name,
	}).Info("loaded asset")
	return nil
}

func (s *service) Stop() {
	s.stop()

	s.repoManager.Events().ClearRegisteredHandlers(domain.LedgerTopic)
	s.repoManager.Close()
	log.Debug("closed connection to db")

	s.eventsLock.Lock()
	s.eventsClosed = true
	close(s.eventsCh)
	s.eventsLock.Unlock()
}

func (s *service) CreateAsset(
	ctx context.Context, caller domain.AccountId,
	params domain.AssetParams, roles domain.RoleUpdate,
) (*domain.Ledger, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	existing, err := s.repoManager.Ledger().GetLedger(ctx)
	if err != nil {
		return nil, errors.INTERNAL_ERROR.Wrap(err)
	}
	if existing != nil {
		return nil, errors.ASSET_ALREADY_EXISTS.New(
			"asset %s already exists", existing.Asset.Id,
		).WithMetadata(errors.AssetMetadata{AssetId: existing.Asset.Id.String()})
	}

	assetId, err := s.newAssetId()
	if err != nil {
		return nil, errors.INTERNAL_ERROR.Wrap(err)
	}

	ledger, event := domain.NewLedger(assetId, caller, params, roles)
	if err := s.repoManager.Ledger().AddLedger(ctx, *ledger); err != nil {
		return nil, errors.INTERNAL_ERROR.Wrap(
			fmt.Errorf("failed to add ledger: %w", err),
		)
	}
	s.saveEvent(ctx, event)

	log.WithFields(log.Fields{
		"asset_id": assetId.String(),
		"creator":  caller.String(),
	}).Info("created asset")
	return ledger, nil
}

func (s *service) Transfer(
	ctx context.Context, caller, receiver domain.AccountId, amount uint64,
) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	ledger, err := s.getLedger(ctx)
	if err != nil {
		return err
	}
	senderAccount, err := s.getAccount(ctx, caller)
	if err != nil {
		return err
	}
	receiverAccount, err := s.getAccount(ctx, receiver)
	if err != nil {
		return err
	}

	accounts, event, err := ledger.Transfer(*senderAccount, *receiverAccount, amount)
	if err != nil {
		return err
	}

	return s.save(ctx, *ledger, event, accounts...)
}

func (s *service) OptIn(ctx context.Context, caller domain.AccountId) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	ledger, err := s.getLedger(ctx)
	if err != nil {
		return err
	}
	account, err := s.getAccount(ctx, caller)
	if err != nil {
		return err
	}

	updated, event, err := ledger.OptIn(*account)
	if err != nil {
		return err
	}

	return s.save(ctx, *ledger, event, *updated)
}

func (s *service) OptOut(ctx context.Context, caller domain.AccountId) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	ledger, err := s.getLedger(ctx)
	if err != nil {
		return err
	}
	account, err := s.getAccount(ctx, caller)
	if err != nil {
		return err
	}

	updated, event, err := ledger.OptOut(*account)
	if err != nil {
		return err
	}

	return s.save(ctx, *ledger, event, *updated)
}

func (s *service) Freeze(
	ctx context.Context, caller, account domain.AccountId, freeze bool,
) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	ledger, err := s.getLedger(ctx)
	if err != nil {
		return err
	}
	target, err := s.getAccount(ctx, account)
	if err != nil {
		return err
	}

	updated, event, err := ledger.Freeze(caller, *target, freeze)
	if err != nil {
		return err
	}

	return s.save(ctx, *ledger, event, *updated)
}

func (s *service) ModifyAsset(
	ctx context.Context, caller domain.AccountId, roles domain.RoleUpdate,
) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	ledger, err := s.getLedger(ctx)
	if err != nil {
		return err
	}

	event, err := ledger.ModifyAsset(caller, roles)
	if err != nil {
		return err
	}

	return s.save(ctx, *ledger, event)
}

func (s *service) GetAsset(ctx context.Context) (*domain.Ledger, error) {
	return s.getLedger(ctx)
}

func (s *service) GetAccount(ctx context.Context, id domain.AccountId) (*domain.Account, error) {
	if _, err := s.getLedger(ctx); err != nil {
		return nil, err
	}
	return s.getAccount(ctx, id)
}

func (s *service) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	if _, err := s.getLedger(ctx); err != nil {
		return nil, err
	}

	accounts, err := s.repoManager.Ledger().ListAccounts(ctx)
	if err != nil {
		return nil, errors.INTERNAL_ERROR.Wrap(
			fmt.Errorf("failed to list accounts: %w", err),
		)
	}
	return accounts, nil
}

func (s *service) ListEvents(ctx context.Context) ([]domain.Event, error) {
	ledger, err := s.getLedger(ctx)
	if err != nil {
		return nil, err
	}

	events, err := s.repoManager.Events().GetEvents(
		ctx, domain.LedgerTopic, ledger.Asset.Id.String(),
	)
	if err != nil {
		return nil, errors.INTERNAL_ERROR.Wrap(
			fmt.Errorf("failed to get events: %w", err),
		)
	}
	return events, nil
}

func (s *service) GetEventsChannel(_ context.Context) <-chan []domain.Event {
	return s.eventsCh
}

func (s *service) getLedger(ctx context.Context) (*domain.Ledger, error) {
	ledger, err := s.repoManager.Ledger().GetLedger(ctx)
	if err != nil {
		return nil, errors.INTERNAL_ERROR.Wrap(
			fmt.Errorf("failed to get ledger: %w", err),
		)
	}
	if ledger == nil {
		assetId := ""
		if s.assetId != nil {
			assetId = s.assetId.String()
		}
		return nil, errors.ASSET_NOT_FOUND.New("asset not created yet").
			WithMetadata(errors.AssetMetadata{AssetId: assetId})
	}
	return ledger, nil
}

func (s *service) getAccount(ctx context.Context, id domain.AccountId) (*domain.Account, error) {
	account, err := s.repoManager.Ledger().GetAccount(ctx, id)
	if err != nil {
		return nil, errors.INTERNAL_ERROR.Wrap(
			fmt.Errorf("failed to get account %s: %w", id, err),
		)
	}
	return account, nil
}

// save persists the ledger roles and the given accounts atomically and only
// then emits the event.
func (s *service) save(
	ctx context.Context, ledger domain.Ledger, event domain.Event, accounts ...domain.Account,
) error {
	if err := s.repoManager.Ledger().Save(ctx, ledger, accounts...); err != nil {
		return errors.INTERNAL_ERROR.Wrap(
			fmt.Errorf("failed to save ledger: %w", err),
		)
	}
	s.saveEvent(ctx, event)
	return nil
}

// saveEvent never fails the operation, the state change is already durable.
func (s *service) saveEvent(ctx context.Context, event domain.Event) {
	if err := s.repoManager.Events().Save(
		ctx, event.GetTopic(), event.GetAssetId(), []domain.Event{event},
	); err != nil {
		log.WithError(err).WithField("type", event.GetType().String()).
			Warn("failed to save event")
	}
}

func (s *service) propagateEvents(events []domain.Event) {
	s.eventsLock.RLock()
	defer s.eventsLock.RUnlock()

	if s.eventsClosed {
		return
	}

	select {
	case s.eventsCh <- events:
	case <-s.ctx.Done():
	}
}

func (s *service) newAssetId() (domain.AssetId, error) {
	if s.assetId != nil {
		return *s.assetId, nil
	}

	var id domain.AssetId
	if _, err := rand.Read(id[:]); err != nil {
		return id, fmt.Errorf("failed to generate asset id: %w", err)
	}
	return id, nil
}
