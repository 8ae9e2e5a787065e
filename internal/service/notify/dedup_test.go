package notify

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/chaizz/lumen-Park/internal/domain"
	"github.com/chaizz/lumen-Park/internal/model"
)

func TestDedupPolicyPassesThroughNonLikes(t *testing.T) {
	repo := &repoMock{}
	policy := NewDedupPolicy(repo)

	calls := 0
	res, err := policy.Apply(context.Background(), CreateParams{Type: domain.NotificationTypeComment, RecipientID: "user-b"},
		func(context.Context) (Result, error) {
			calls++
			return Result{Notification: model.Notification{ID: "n-1"}, Outcome: OutcomeCreated}, nil
		})
	require.NoError(t, err)
	require.Equal(t, 1, calls)
	require.Equal(t, "n-1", res.Notification.ID)
	repo.AssertNotCalled(t, "FindUnreadLike", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDedupPolicyReturnsExisting(t *testing.T) {
	existing := model.Notification{ID: "n-1", Type: domain.NotificationTypeLike}
	repo := &repoMock{}
	repo.On("FindUnreadLike", mock.Anything, "user-b", "user-a", "p-1").Return(existing, nil).Once()
	policy := NewDedupPolicy(repo)

	res, err := policy.Apply(context.Background(), like("user-b", "user-a", "p-1"), func(context.Context) (Result, error) {
		t.Fatal("create must not run for a duplicate like")
		return Result{}, nil
	})
	require.NoError(t, err)
	require.Equal(t, OutcomeDeduped, res.Outcome)
	require.Equal(t, "n-1", res.Notification.ID)
	repo.AssertExpectations(t)
}

func TestDedupPolicyCreatesWhenAbsent(t *testing.T) {
	repo := &repoMock{}
	repo.On("FindUnreadLike", mock.Anything, "user-b", "user-a", "p-1").Return(model.Notification{}, domain.ErrNotFound).Once()
	policy := NewDedupPolicy(repo)

	res, err := policy.Apply(context.Background(), like("user-b", "user-a", "p-1"), func(context.Context) (Result, error) {
		return Result{Notification: model.Notification{ID: "n-2"}, Outcome: OutcomeCreated}, nil
	})
	require.NoError(t, err)
	require.Equal(t, OutcomeCreated, res.Outcome)
	require.Equal(t, "n-2", res.Notification.ID)
	repo.AssertExpectations(t)
}

func TestDedupPolicyCollapsesConcurrentLikes(t *testing.T) {
	release := make(chan struct{})
	repo := &repoMock{}
	repo.On("FindUnreadLike", mock.Anything, "user-b", "user-a", "p-1").
		Run(func(mock.Arguments) { <-release }).
		Return(model.Notification{}, domain.ErrNotFound)
	policy := NewDedupPolicy(repo)

	var creates atomic.Int32
	create := func(context.Context) (Result, error) {
		creates.Add(1)
		return Result{Notification: model.Notification{ID: "n-1"}, Outcome: OutcomeCreated}, nil
	}

	var wg sync.WaitGroup
	results := make([]Result, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := policy.Apply(context.Background(), like("user-b", "user-a", "p-1"), create)
			if err != nil {
				t.Errorf("apply: %v", err)
			}
			results[i] = res
		}(i)
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	require.Equal(t, int32(1), creates.Load())
	outcomes := map[Outcome]int{}
	for _, res := range results {
		require.Equal(t, "n-1", res.Notification.ID)
		outcomes[res.Outcome]++
	}
	require.Equal(t, map[Outcome]int{OutcomeCreated: 1, OutcomeDeduped: len(results) - 1}, outcomes)
}

func TestDedupPolicyCancelledCallerDoesNotFailOthers(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	repo := &repoMock{}
	repo.On("FindUnreadLike", mock.Anything, "user-b", "user-a", "p-1").
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(model.Notification{}, domain.ErrNotFound).Once()
	policy := NewDedupPolicy(repo)

	create := func(ctx context.Context) (Result, error) {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		return Result{Notification: model.Notification{ID: "n-1"}, Outcome: OutcomeCreated}, nil
	}

	ctx1, cancel := context.WithCancel(context.Background())
	defer cancel()
	firstErr := make(chan error, 1)
	go func() {
		_, err := policy.Apply(ctx1, like("user-b", "user-a", "p-1"), create)
		firstErr <- err
	}()
	<-started

	type outcome struct {
		res Result
		err error
	}
	second := make(chan outcome, 1)
	go func() {
		res, err := policy.Apply(context.Background(), like("user-b", "user-a", "p-1"), create)
		second <- outcome{res, err}
	}()
	time.Sleep(20 * time.Millisecond)

	cancel()
	select {
	case err := <-firstErr:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("cancelled caller did not return")
	}

	close(release)
	select {
	case got := <-second:
		require.NoError(t, got.err)
		require.Equal(t, "n-1", got.res.Notification.ID)
		require.Equal(t, OutcomeDeduped, got.res.Outcome)
	case <-time.After(time.Second):
		t.Fatal("second caller did not return")
	}
	repo.AssertExpectations(t)
}
