package bot

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/asalkeld/commitpolice/common"
	"github.com/asalkeld/commitpolice/notify"
	"github.com/asalkeld/commitpolice/status"
	"github.com/nitrictech/go-sdk/faas"
)

// Recorder handles inbound commit events for the tracked user.
type Recorder struct {
	store    *status.Store
	notifier notify.Notifier
	user     string

	logger *log.Logger
}

func NewRecorder(store *status.Store, notifier notify.Notifier, trackedUser string, logger *log.Logger) *Recorder {
	return &Recorder{
		store:    store,
		notifier: notifier,
		user:     trackedUser,
		logger:   logger,
	}
}

type recordReply struct {
	Message     string `json:"message,omitempty"`
	DiscordSent *bool  `json:"discord_sent,omitempty"`
	Error       string `json:"error,omitempty"`
}

func reply(code int, r recordReply) (int, []byte) {
	b, _ := json.Marshal(r)
	return code, b
}

// RecordCommit processes one commit event and returns the status code and
// JSON body of the response. A panic anywhere below becomes a 500 rather
// than killing the invocation.
func (r *Recorder) RecordCommit(data []byte) (code int, body []byte) {
	defer func() {
		if p := recover(); p != nil {
			r.logger.WithField("panic", p).Error("Commit handler failed.")
			code, body = reply(http.StatusInternalServerError, recordReply{Error: fmt.Sprint(p)})
		}
	}()

	ev, err := parseCommitEvent(data)
	if err != nil {
		r.logger.WithField("error", err).Error("Could not decode commit event.")
		return reply(http.StatusInternalServerError, recordReply{Error: err.Error()})
	}

	sha := ev.CommitSha
	if len(sha) > 7 {
		sha = sha[:7]
	}

	r.logger.WithFields(log.Fields{
		"user": ev.User,
		"repo": ev.Repo,
		"sha":  sha,
	}).Info("Received commit event.")

	if ev.User != r.user {
		r.logger.WithFields(log.Fields{
			"user":    ev.User,
			"tracked": r.user,
		}).Info("Ignoring commit from untracked user.")
		return reply(http.StatusOK, recordReply{Message: "Not target user"})
	}

	st, _ := r.store.Load()
	if st.Committed(ev.User) {
		r.logger.Info("Already committed today, nothing to do.")
		return reply(http.StatusOK, recordReply{Message: "Already committed today"})
	}

	st.Users[ev.User] = true
	st.CommitTime = common.Now().Format(time.RFC3339)

	// Best effort: a failed write still gets the celebration out, at the
	// cost of a possible duplicate on the next event.
	if err := r.store.Save(st); err != nil {
		r.logger.WithField("error", err).Warn("Could not persist status.")
	}

	sent := r.notifier.Send(commitMessage(ev.User, sha))

	r.logger.WithFields(log.Fields{
		"user": ev.User,
		"sha":  sha,
		"sent": sent,
	}).Info("Recorded commit.")

	return reply(http.StatusOK, recordReply{Message: "Commit recorded", DiscordSent: &sent})
}

func (r *Recorder) Handler(ctx *faas.HttpContext, next faas.HttpHandler) (*faas.HttpContext, error) {
	code, body := r.RecordCommit(ctx.Request.Data())
	common.JsonResponse(ctx, body, code)
	return next(ctx)
}
