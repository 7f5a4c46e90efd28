package bot

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/robfig/cron"
	log "github.com/sirupsen/logrus"

	"github.com/asalkeld/commitpolice/common"
	"github.com/asalkeld/commitpolice/notify"
	"github.com/asalkeld/commitpolice/status"
	"github.com/nitrictech/go-sdk/faas"
)

// Checker runs the scheduled check-ins: did the tracked user commit yet
// today, and which nudge does the current hour call for.
type Checker struct {
	store    *status.Store
	notifier notify.Notifier
	user     string

	schedules []cron.Schedule
	lastTick  time.Time

	now    func() time.Time
	logger *log.Logger
}

func NewChecker(store *status.Store, notifier notify.Notifier, trackedUser string, checkSchedules []string, logger *log.Logger) (*Checker, error) {
	c := &Checker{
		store:    store,
		notifier: notifier,
		user:     trackedUser,
		now:      common.Now,
		logger:   logger,
	}

	for _, expr := range checkSchedules {
		s, err := cron.ParseStandard(strings.TrimSpace(expr))
		if err != nil {
			return nil, fmt.Errorf("bad check schedule %q: %w", expr, err)
		}
		c.schedules = append(c.schedules, s)
	}

	return c, nil
}

// Check loads today's status and sends the nudge for the given hour. The
// read path materializes a fresh blob on day rollover.
func (c *Checker) Check(hour int) bool {
	st := c.store.LoadForCheck()
	committed := st.Committed(c.user)

	sent := c.notifier.Send(checkMessage(hour, committed, c.user))

	c.logger.WithFields(log.Fields{
		"hour":      hour,
		"committed": committed,
		"sent":      sent,
	}).Info("Ran status check.")

	return sent
}

// DueChecks returns the hour of every configured check-in that has passed
// since the previous tick. The first tick only establishes the baseline so
// a restart does not replay old check-ins.
func (c *Checker) DueChecks(now time.Time) []int {
	if c.lastTick.IsZero() {
		c.lastTick = now
		return nil
	}

	due := []int{}
	for _, s := range c.schedules {
		for t := s.Next(c.lastTick); !t.After(now); t = s.Next(t) {
			due = append(due, t.Hour())
		}
	}
	c.lastTick = now

	return due
}

func (c *Checker) ScheduleHandler(ec *faas.EventContext, next faas.EventHandler) (*faas.EventContext, error) {
	for _, hour := range c.DueChecks(c.now()) {
		c.Check(hour)
	}
	return next(ec)
}

// Handler serves the manual check endpoint using the current wall clock.
// The response is 200 whatever the delivery outcome.
func (c *Checker) Handler(ctx *faas.HttpContext, next faas.HttpHandler) (*faas.HttpContext, error) {
	c.Check(c.now().Hour())
	common.JsonResponse(ctx, []byte(`{"message": "Success"}`), http.StatusOK)
	return next(ctx)
}
