package notify

import (
	"context"
	"errors"

	"golang.org/x/sync/singleflight"

	"github.com/chaizz/lumen-Park/internal/domain"
	"github.com/chaizz/lumen-Park/internal/repository"
)

// DedupPolicy collapses a like into the existing unread like for the same
// (recipient, sender, post). Other types always produce a fresh row.
//
// The window is the unread state, not time: once the earlier row is read or
// retracted, the next like creates a new row. Concurrent likes for the same
// triple inside this process share one lookup-and-create.
type DedupPolicy struct {
	store repository.NotificationRepository
	group singleflight.Group
}

func NewDedupPolicy(store repository.NotificationRepository) *DedupPolicy {
	return &DedupPolicy{store: store}
}

// Apply runs create unless p collapses into an existing unread like, in which
// case that row is returned with OutcomeDeduped. Callers that join an
// in-flight create for the same triple also get OutcomeDeduped.
//
// The shared lookup-and-create runs detached from the leader's cancellation;
// each caller still returns as soon as its own ctx is done.
func (d *DedupPolicy) Apply(ctx context.Context, p CreateParams, create func(context.Context) (Result, error)) (Result, error) {
	if p.Type != domain.NotificationTypeLike {
		return create(ctx)
	}

	key := p.RecipientID + "\x00" + *p.SenderID + "\x00" + *p.PostID
	leader := false
	ch := d.group.DoChan(key, func() (any, error) {
		leader = true
		shared := context.WithoutCancel(ctx)
		existing, err := d.store.FindUnreadLike(shared, p.RecipientID, *p.SenderID, *p.PostID)
		if err == nil {
			return Result{Notification: existing, Outcome: OutcomeDeduped}, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return Result{}, err
		}
		return create(shared)
	})

	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return Result{}, r.Err
		}
		res := r.Val.(Result)
		if !leader && res.Outcome == OutcomeCreated {
			res.Outcome = OutcomeDeduped
		}
		return res, nil
	}
}
