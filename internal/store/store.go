package store

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/dharmasatrya/fakeflight/internal/models"
)

var ErrTicketNotFound = errors.New("ticket not found")

type Store interface {
	Save(ctx context.Context, t models.Ticket) error
	Get(ctx context.Context, id string) (models.Ticket, error)
	// List returns tickets newest first.
	List(ctx context.Context) ([]models.Ticket, error)
	Close() error
}

type MemoryStore struct {
	mu      sync.RWMutex
	tickets map[string]models.Ticket
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tickets: make(map[string]models.Ticket)}
}

func (s *MemoryStore) Save(ctx context.Context, t models.Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tickets[t.ID] = t
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (models.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tickets[id]
	if !ok {
		return models.Ticket{}, ErrTicketNotFound
	}
	return t, nil
}

func (s *MemoryStore) List(ctx context.Context) ([]models.Ticket, error) {
	s.mu.RLock()
	out := make([]models.Ticket, 0, len(s.tickets))
	for _, t := range s.tickets {
		out = append(out, t)
	}
	s.mu.RUnlock()

	sortNewestFirst(out)
	return out, nil
}

func (s *MemoryStore) Close() error {
	return nil
}

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Host:     "localhost",
		Port:     "6379",
		Password: "",
		DB:       0,
		TTL:      24 * time.Hour,
	}
}

const (
	ticketKeyPrefix = "ticket:"
	ticketIndexKey  = "tickets"
)

func NewRedisStore(cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, pkgerrors.Wrap(err, "ping redis")
	}

	return &RedisStore{
		client: client,
		ttl:    cfg.TTL,
	}, nil
}

func (s *RedisStore) Save(ctx context.Context, t models.Ticket) error {
	data, err := json.Marshal(t)
	if err != nil {
		return pkgerrors.Wrap(err, "encode ticket")
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, ticketKeyPrefix+t.ID, data, s.ttl)
		pipe.ZAdd(ctx, ticketIndexKey, redis.Z{Score: float64(t.CreatedAt.UnixNano()), Member: t.ID})
		return nil
	})
	return pkgerrors.Wrapf(err, "save ticket %s", t.ID)
}

func (s *RedisStore) Get(ctx context.Context, id string) (models.Ticket, error) {
	data, err := s.client.Get(ctx, ticketKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.Ticket{}, ErrTicketNotFound
	}
	if err != nil {
		return models.Ticket{}, pkgerrors.Wrapf(err, "load ticket %s", id)
	}

	var t models.Ticket
	if err := json.Unmarshal(data, &t); err != nil {
		return models.Ticket{}, pkgerrors.Wrapf(err, "decode ticket %s", id)
	}
	return t, nil
}

// List skips index entries whose ticket has expired and prunes them.
func (s *RedisStore) List(ctx context.Context) ([]models.Ticket, error) {
	ids, err := s.client.ZRevRange(ctx, ticketIndexKey, 0, -1).Result()
	if err != nil {
		return nil, pkgerrors.Wrap(err, "list tickets")
	}

	out := make([]models.Ticket, 0, len(ids))
	for _, id := range ids {
		t, err := s.Get(ctx, id)
		if errors.Is(err, ErrTicketNotFound) {
			s.client.ZRem(ctx, ticketIndexKey, id)
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func sortNewestFirst(tickets []models.Ticket) {
	sort.Slice(tickets, func(i, j int) bool {
		return tickets[i].CreatedAt.After(tickets[j].CreatedAt)
	})
}
