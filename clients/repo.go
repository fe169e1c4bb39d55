package clients

import (
	"context"
	"errors"
	"sort"
	"sync"
)

type Repo interface {
	Upsert(ctx context.Context, client *Client) error
	Get(ctx context.Context, clientID string) (*Client, error)
	List(ctx context.Context) ([]*Client, error)
}

var _ Repo = (*InMemoryRepo)(nil)

// InMemoryRepo is a thread-safe in-memory client registry
type InMemoryRepo struct {
	clients map[string]*Client
	lock    sync.RWMutex
}

func NewInMemoryRepo(registered ...*Client) *InMemoryRepo {
	r := &InMemoryRepo{
		clients: make(map[string]*Client),
	}
	for _, c := range registered {
		r.clients[c.ID] = c.clone()
	}
	return r
}

func (r *InMemoryRepo) Upsert(_ context.Context, client *Client) error {
	if client == nil || client.ID == "" {
		return errors.New("client id cannot be empty")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.clients[client.ID] = client.clone()
	return nil
}

func (r *InMemoryRepo) Get(_ context.Context, clientID string) (*Client, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	client, ok := r.clients[clientID]
	if !ok {
		return nil, ErrClientNotFound
	}
	return client.clone(), nil
}

func (r *InMemoryRepo) List(_ context.Context) ([]*Client, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	list := make([]*Client, 0, len(r.clients))
	for _, v := range r.clients {
		list = append(list, v.clone())
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].ID < list[j].ID
	})
	return list, nil
}
