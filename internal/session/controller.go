// Package session owns the single job record of a radio-host session. It
// submits generation jobs, polls their status once per interval and folds
// each response into the record, keeping a reported failure visible until
// the user resets or submits again.
package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/krishna-deora/Synthetic-Radio-Host/internal/dto"
	"github.com/krishna-deora/Synthetic-Radio-Host/internal/types"
	"github.com/krishna-deora/Synthetic-Radio-Host/log"
	apperrors "github.com/krishna-deora/Synthetic-Radio-Host/pkg/errors"
)

// Transport is the remote generation service as seen by the controller.
type Transport interface {
	SubmitJob(ctx context.Context, topic string) (string, error)
	GetStatus(ctx context.Context, jobID string) (*dto.JobStatusResData, error)
}

// Outcome is handed to hooks after a transition, outside the controller lock.
type Outcome struct {
	JobID  string
	Topic  string
	Status types.LifecycleStatus
	Error  string
	Result *types.Result
	At     time.Time
}

type Controller struct {
	transport   Transport
	interval    time.Duration
	newTicker   TickerFactory
	onSubmitted []func(Outcome)
	onTerminal  []func(Outcome)
	logger      *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu         sync.Mutex
	record     types.JobRecord
	lastError  string
	generation uint64
	episode    *episode
	closed     bool
	subs       map[int]chan types.Snapshot
	nextSubID  int
}

func New(transport Transport, opts ...Option) *Controller {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		transport: transport,
		interval:  DefaultPollInterval,
		newTicker: newStdTicker,
		ctx:       ctx,
		cancel:    cancel,
		record:    types.JobRecord{Status: types.LifecycleIdle},
		subs:      make(map[int]chan types.Snapshot),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) log() *zap.Logger {
	if c.logger != nil {
		return c.logger
	}
	return log.GetLogger()
}

// Submit starts a new job for topic. Any running poll loop is cancelled
// first. A failure to reach the service leaves the record Idle with a
// connect error and is also returned to the caller.
func (c *Controller) Submit(ctx context.Context, topic string) error {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return apperrors.ErrEmptyTopic
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return apperrors.ErrSessionClosed
	}
	c.disarmLocked()

	// A failure still on display survives into the new episode.
	carried := ""
	if c.record.Status == types.LifecycleFailed {
		carried = c.record.Error
	}
	c.record = types.JobRecord{
		Topic:   topic,
		Status:  types.LifecycleProcessing,
		Message: MsgSending,
		Error:   carried,
	}
	c.generation++
	gen := c.generation
	c.commitLocked()
	c.mu.Unlock()

	jobID, err := c.transport.SubmitJob(ctx, topic)

	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		c.log().Info("[Session] discarding superseded submission",
			zap.String("topic", topic),
			zap.String("job_id", jobID),
			zap.Error(err))
		return nil
	}

	if err != nil {
		c.record.Status = types.LifecycleIdle
		c.record.Message = ""
		c.record.Error = connectFailed(err)
		c.commitLocked()
		c.mu.Unlock()
		c.log().Warn("[Session] submission failed", zap.String("topic", topic), zap.Error(err))
		return err
	}

	c.record.ID = jobID
	c.armLocked()
	out := c.outcomeLocked()
	c.commitLocked()
	c.mu.Unlock()

	c.log().Info("[Session] job submitted", zap.String("job_id", jobID), zap.String("topic", topic))
	for _, fn := range c.onSubmitted {
		fn(out)
	}
	return nil
}

// Reset cancels any poll loop and returns the record to an empty Idle state.
// Resetting an already empty record changes nothing.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	if c.episode == nil && c.record == (types.JobRecord{Status: types.LifecycleIdle}) && c.lastError == "" {
		return
	}
	c.disarmLocked()
	c.resetLocked()
	c.commitLocked()
	c.log().Info("[Session] reset")
}

func (c *Controller) resetLocked() {
	c.record = types.JobRecord{Status: types.LifecycleIdle}
	c.lastError = ""
	c.generation++
}

// Reconcile runs the error guard once outside of any transition.
func (c *Controller) Reconcile() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.guardLocked() {
		c.publishLocked(c.snapshotLocked())
	}
}

func (c *Controller) Snapshot() types.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// ActiveLoops reports the number of armed poll loops, 0 or 1.
func (c *Controller) ActiveLoops() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.episode == nil {
		return 0
	}
	return 1
}

// Subscribe returns a channel that always holds the most recent snapshot.
// Slow readers miss intermediate snapshots, never the latest one. The
// channel is closed by the returned func or by Close.
func (c *Controller) Subscribe() (<-chan types.Snapshot, func()) {
	ch := make(chan types.Snapshot, 1)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	id := c.nextSubID
	c.nextSubID++
	c.subs[id] = ch
	ch <- c.snapshotLocked()
	c.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			if sub, ok := c.subs[id]; ok {
				delete(c.subs, id)
				close(sub)
			}
		})
	}
}

// Close stops polling, cancels in-flight status calls and closes all
// subscriptions. Hooks must not call Close.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.disarmLocked()
	c.generation++
	for id, ch := range c.subs {
		delete(c.subs, id)
		close(ch)
	}
	c.mu.Unlock()

	c.cancel()
	c.wg.Wait()
}

// commitLocked runs the guard and publishes the resulting snapshot.
func (c *Controller) commitLocked() {
	c.guardLocked()
	c.publishLocked(c.snapshotLocked())
}

func (c *Controller) snapshotLocked() types.Snapshot {
	return c.record.Snapshot(c.generation)
}

func (c *Controller) publishLocked(s types.Snapshot) {
	for _, ch := range c.subs {
		select {
		case ch <- s:
			continue
		default:
		}
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- s:
		default:
		}
	}
}

func (c *Controller) outcomeLocked() Outcome {
	return Outcome{
		JobID:  c.record.ID,
		Topic:  c.record.Topic,
		Status: c.record.Status,
		Error:  c.record.Error,
		Result: c.record.Result.Clone(),
		At:     time.Now(),
	}
}
