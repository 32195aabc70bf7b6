package session

import (
	"math"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/krishna-deora/Synthetic-Radio-Host/internal/dto"
	"github.com/krishna-deora/Synthetic-Radio-Host/internal/transport"
	"github.com/krishna-deora/Synthetic-Radio-Host/internal/types"
)

// episode is one armed poll loop. It is current while c.episode points at
// it; gen is the generation it was armed with.
type episode struct {
	gen    uint64
	jobID  string
	ticker Ticker
	done   chan struct{}
}

func (c *Controller) armLocked() {
	c.disarmLocked()
	c.generation++
	ep := &episode{
		gen:    c.generation,
		jobID:  c.record.ID,
		ticker: c.newTicker(c.interval),
		done:   make(chan struct{}),
	}
	c.episode = ep

	c.wg.Add(1)
	go c.run(ep)
}

// disarmLocked stops the current loop, if any. A status call already in
// flight keeps running; its result no longer matches the generation.
func (c *Controller) disarmLocked() {
	if c.episode == nil {
		return
	}
	c.episode.ticker.Stop()
	close(c.episode.done)
	c.episode = nil
	c.generation++
}

func (c *Controller) run(ep *episode) {
	defer c.wg.Done()

	for {
		select {
		case <-ep.done:
			return
		case <-ep.ticker.C():
			if !c.tick(ep) {
				return
			}
		}
	}
}

// tick performs one status check and reports whether the loop stays armed.
func (c *Controller) tick(ep *episode) bool {
	c.mu.Lock()
	stale := ep.gen != c.generation
	c.mu.Unlock()
	if stale {
		return false
	}

	res, err := c.transport.GetStatus(c.ctx, ep.jobID)

	c.mu.Lock()
	if ep.gen != c.generation {
		c.mu.Unlock()
		c.log().Debug("[Session] discarding stale status", zap.String("job_id", ep.jobID))
		return false
	}

	if err != nil {
		c.disarmLocked()
		c.failLocked(MsgStatusCheckFailed)
	} else {
		c.applyLocked(res)
	}
	c.commitLocked()

	armed := c.episode == ep
	terminal := c.record.Status.IsTerminal()
	var out Outcome
	if terminal {
		out = c.outcomeLocked()
	}
	c.mu.Unlock()

	if err != nil {
		c.log().Warn("[Session] status check failed", zap.String("job_id", ep.jobID), zap.Error(err))
	}
	if terminal {
		c.log().Info("[Session] job finished",
			zap.String("job_id", out.JobID),
			zap.String("status", out.Status.String()),
			zap.String("error", out.Error))
		for _, fn := range c.onTerminal {
			fn(out)
		}
	}
	return armed
}

// applyLocked folds one status response into the record.
func (c *Controller) applyLocked(res *dto.JobStatusResData) {
	c.record.Message = res.Message
	if res.Progress != nil {
		c.record.Progress = advance(c.record.Progress, *res.Progress)
	}

	switch res.Status {
	case dto.RemoteStatusCompleted:
		c.disarmLocked()
		filename := strings.TrimSpace(res.Filename)
		if filename == "" {
			c.failLocked(MsgNoOutput)
			return
		}
		c.record.Status = types.LifecycleCompleted
		c.record.Progress = 100
		c.record.Error = ""
		c.lastError = ""
		c.record.Result = (&types.Result{
			Filename:          filename,
			AudioURL:          transport.AudioPath(filename),
			Evaluation:        res.Evaluation,
			ImprovementPrompt: res.ImprovementPrompt,
		}).Clone()
	case dto.RemoteStatusFailed:
		c.disarmLocked()
		text, _ := lo.Coalesce(strings.TrimSpace(res.Message), strings.TrimSpace(res.Error), MsgGenerationFailed)
		c.failLocked(text)
	}
}

func (c *Controller) failLocked(text string) {
	c.record.Status = types.LifecycleFailed
	c.record.Error = text
	c.record.Message = ""
	c.lastError = text
}

// advance clamps a reported progress to 0..100 and never moves backwards.
func advance(current int, reported float64) int {
	if math.IsNaN(reported) {
		return current
	}
	next := int(math.Round(math.Max(0, math.Min(100, reported))))
	return max(current, next)
}
