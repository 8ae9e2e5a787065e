package memory

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/chaizz/lumen-Park/internal/model"
)

type Store struct {
	mu      sync.Mutex
	records []model.Notification
	now     func() time.Time
	log     *zap.Logger
}

func New(logger *zap.Logger) *Store {
	return &Store{now: func() time.Time { return time.Now().UTC() }, log: logger}
}
