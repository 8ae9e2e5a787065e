package directory

import (
	"context"
	"sync"

	"github.com/chaizz/lumen-Park/internal/model"
)

// StaticDirectory is an in-process directory used when no users table is reachable.
type StaticDirectory struct {
	mu    sync.RWMutex
	users map[string]model.Sender
}

func NewStatic(users ...model.Sender) *StaticDirectory {
	d := &StaticDirectory{users: make(map[string]model.Sender, len(users))}
	for _, u := range users {
		d.users[u.ID] = u
	}
	return d
}

func (d *StaticDirectory) Put(user model.Sender) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.users[user.ID] = user
}

func (d *StaticDirectory) LookupSender(_ context.Context, userID string) (model.Sender, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	user, ok := d.users[userID]
	if !ok {
		return model.Sender{}, ErrUserNotFound
	}
	return user, nil
}
