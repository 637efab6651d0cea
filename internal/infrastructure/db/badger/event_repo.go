package badgerdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/arkade-os/ledgerd/internal/core/domain"
	dbutil "github.com/arkade-os/ledgerd/internal/infrastructure/db/dbuitl"
	"github.com/dgraph-io/badger/v4"
	log "github.com/sirupsen/logrus"
	"github.com/timshannon/badgerhold/v4"
)

const eventStoreDir = "events"

type eventDTO struct {
	Offset  uint64 `badgerhold:"key"`
	Topic   string `badgerhold:"index"`
	Id      string `badgerhold:"index"`
	Type    domain.EventType
	Payload []byte
}

type eventRepository struct {
	store *badgerhold.Store

	// the store sequence is not ordered across concurrent writers
	lock *sync.Mutex

	handlers    map[string][]func(events []domain.Event)
	handlerLock *sync.RWMutex
	dispatcher  *dbutil.Dispatcher
}

func NewEventRepository(config ...interface{}) (domain.EventRepository, error) {
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
		dir = filepath.Join(baseDir, eventStoreDir)
	}
	store, err := createDB(dir, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open event store: %s", err)
	}

	return &eventRepository{
		store:       store,
		lock:        &sync.Mutex{},
		handlers:    make(map[string][]func(events []domain.Event)),
		handlerLock: &sync.RWMutex{},
		dispatcher:  dbutil.NewDispatcher(),
	}, nil
}

func (r *eventRepository) Save(
	_ context.Context, topic, id string, events []domain.Event,
) error {
	if err := r.insert(topic, id, events); err != nil {
		return err
	}

	r.handlerLock.RLock()
	handlers := append([]func(events []domain.Event){}, r.handlers[topic]...)
	r.handlerLock.RUnlock()

	r.dispatcher.Push(handlers, events)
	return nil
}

func (r *eventRepository) GetEvents(
	_ context.Context, topic, id string,
) ([]domain.Event, error) {
	dtos := make([]eventDTO, 0)
	query := badgerhold.Where("Topic").Eq(topic).Index("Topic").And("Id").Eq(id)
	if err := r.store.Find(&dtos, query); err != nil {
		return nil, fmt.Errorf("failed to get events of %s: %w", id, err)
	}
	sort.SliceStable(dtos, func(i, j int) bool {
		return dtos[i].Offset < dtos[j].Offset
	})

	events := make([]domain.Event, 0, len(dtos))
	for _, dto := range dtos {
		event, err := dbutil.DeserializeEvent(dto.Payload)
		if err != nil {
			log.WithError(err).Warnf("failed to deserialize event: %s", string(dto.Payload))
			continue
		}
		events = append(events, event)
	}
	return events, nil
}

func (r *eventRepository) RegisterEventsHandler(
	topic string, handler func(events []domain.Event),
) {
	r.handlerLock.Lock()
	defer r.handlerLock.Unlock()

	r.handlers[topic] = append(r.handlers[topic], handler)
}

func (r *eventRepository) ClearRegisteredHandlers(topics ...string) {
	r.handlerLock.Lock()
	defer r.handlerLock.Unlock()

	if len(topics) == 0 {
		r.handlers = make(map[string][]func(events []domain.Event))
		return
	}

	for _, topic := range topics {
		delete(r.handlers, topic)
	}
}

func (r *eventRepository) Close() {
	r.dispatcher.Close()
	// nolint:all
	r.store.Close()
}

func (r *eventRepository) insert(topic, id string, events []domain.Event) error {
	dtos := make([]eventDTO, 0, len(events))
	for _, event := range events {
		payload, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("failed to encode %s event: %w", event.GetType(), err)
		}
		dtos = append(dtos, eventDTO{
			Topic:   topic,
			Id:      id,
			Type:    event.GetType(),
			Payload: payload,
		})
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	var err error
	for range maxRetries {
		err = func() error {
			tx := r.store.Badger().NewTransaction(true)
			defer tx.Discard()

			for i := range dtos {
				if err := r.store.TxInsert(tx, badgerhold.NextSequence(), &dtos[i]); err != nil {
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
