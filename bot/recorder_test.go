package bot

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asalkeld/commitpolice/common"
	"github.com/asalkeld/commitpolice/status"
)

type fakeBlob struct {
	data     []byte
	readErr  error
	writeErr error
	writes   int
}

func (f *fakeBlob) Read() ([]byte, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	return f.data, nil
}

func (f *fakeBlob) Write(data []byte) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.data = data
	f.writes++
	return nil
}

type fakeNotifier struct {
	messages []string
	ok       bool
}

func (f *fakeNotifier) Send(text string) bool {
	f.messages = append(f.messages, text)
	return f.ok
}

func emptyDayBlob() *fakeBlob {
	return &fakeBlob{readErr: errors.New("not found")}
}

func committedTodayBlob() *fakeBlob {
	data := fmt.Sprintf(`{"date":%q,"users":{"alice":true},"commit_time":"t"}`, common.ToDay())
	return &fakeBlob{data: []byte(data)}
}

func newTestRecorder(blob *fakeBlob, notifier *fakeNotifier) *Recorder {
	return NewRecorder(status.NewStore(blob, "alice"), notifier, "alice", logrus.New())
}

func parseReply(t *testing.T, body []byte) recordReply {
	r := recordReply{}
	require.NoError(t, json.Unmarshal(body, &r))
	return r
}

func TestRecordIgnoresOtherUsers(t *testing.T) {
	blob := emptyDayBlob()
	notifier := &fakeNotifier{ok: true}

	code, body := newTestRecorder(blob, notifier).RecordCommit([]byte(`{"user":"bob","commit_sha":"abc1234567"}`))

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Not target user", parseReply(t, body).Message)
	assert.Equal(t, 0, blob.writes)
	assert.Empty(t, notifier.messages)
}

func TestRecordFirstCommit(t *testing.T) {
	blob := emptyDayBlob()
	notifier := &fakeNotifier{ok: true}

	code, body := newTestRecorder(blob, notifier).RecordCommit([]byte(`{"user":"alice","repo":"til","commit_sha":"abc1234567"}`))

	assert.Equal(t, http.StatusOK, code)
	reply := parseReply(t, body)
	assert.Equal(t, "Commit recorded", reply.Message)
	require.NotNil(t, reply.DiscordSent)
	assert.True(t, *reply.DiscordSent)

	require.Equal(t, 1, blob.writes)
	st := &status.DayStatus{}
	require.NoError(t, json.Unmarshal(blob.data, st))
	assert.Equal(t, common.ToDay(), st.Date)
	assert.True(t, st.Committed("alice"))
	assert.NotEmpty(t, st.CommitTime)

	require.Len(t, notifier.messages, 1)
	assert.Contains(t, notifier.messages[0], "`abc1234`")
	assert.NotContains(t, notifier.messages[0], "abc12345")
}

func TestRecordShortShaKeptAsIs(t *testing.T) {
	blob := emptyDayBlob()
	notifier := &fakeNotifier{ok: true}

	code, _ := newTestRecorder(blob, notifier).RecordCommit([]byte(`{"user":"alice","commit_sha":"ab"}`))

	assert.Equal(t, http.StatusOK, code)
	require.Len(t, notifier.messages, 1)
	assert.Contains(t, notifier.messages[0], "`ab`")
}

func TestRecordAlreadyCommitted(t *testing.T) {
	blob := committedTodayBlob()
	notifier := &fakeNotifier{ok: true}

	code, body := newTestRecorder(blob, notifier).RecordCommit([]byte(`{"user":"alice","commit_sha":"abc1234567"}`))

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Already committed today", parseReply(t, body).Message)
	assert.Equal(t, 0, blob.writes)
	assert.Empty(t, notifier.messages)
}

func TestRecordIsIdempotent(t *testing.T) {
	blob := emptyDayBlob()
	notifier := &fakeNotifier{ok: true}
	recorder := newTestRecorder(blob, notifier)

	event := []byte(`{"user":"alice","commit_sha":"abc1234567"}`)
	recorder.RecordCommit(event)
	blob.readErr = nil
	firstWrite := append([]byte(nil), blob.data...)

	code, body := recorder.RecordCommit(event)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Already committed today", parseReply(t, body).Message)
	assert.Equal(t, 1, blob.writes)
	assert.Equal(t, firstWrite, blob.data)
	assert.Len(t, notifier.messages, 1)
}

func TestRecordWriteFailureStillNotifies(t *testing.T) {
	blob := emptyDayBlob()
	blob.writeErr = errors.New("no quota")
	notifier := &fakeNotifier{ok: true}

	code, body := newTestRecorder(blob, notifier).RecordCommit([]byte(`{"user":"alice","commit_sha":"abc1234567"}`))

	assert.Equal(t, http.StatusOK, code)
	reply := parseReply(t, body)
	assert.Equal(t, "Commit recorded", reply.Message)
	require.Len(t, notifier.messages, 1)
}

func TestRecordReportsFailedDelivery(t *testing.T) {
	blob := emptyDayBlob()
	notifier := &fakeNotifier{ok: false}

	code, body := newTestRecorder(blob, notifier).RecordCommit([]byte(`{"user":"alice","commit_sha":"abc1234567"}`))

	assert.Equal(t, http.StatusOK, code)
	reply := parseReply(t, body)
	require.NotNil(t, reply.DiscordSent)
	assert.False(t, *reply.DiscordSent)
}

func TestRecordBadPayload(t *testing.T) {
	blob := emptyDayBlob()
	notifier := &fakeNotifier{ok: true}

	code, body := newTestRecorder(blob, notifier).RecordCommit([]byte("not json"))

	assert.Equal(t, http.StatusInternalServerError, code)
	assert.NotEmpty(t, parseReply(t, body).Error)
	assert.Equal(t, 0, blob.writes)
	assert.Empty(t, notifier.messages)
}

func TestParseCommitEventTopLevel(t *testing.T) {
	ev, err := parseCommitEvent([]byte(`{"user":"alice","repo":"til","commit_sha":"abc"}`))

	require.NoError(t, err)
	assert.Equal(t, "alice", ev.User)
	assert.Equal(t, "til", ev.Repo)
	assert.Equal(t, "abc", ev.CommitSha)
}

func TestParseCommitEventStringEncodedBody(t *testing.T) {
	ev, err := parseCommitEvent([]byte(`{"body":"{\"user\":\"alice\",\"commit_sha\":\"abc\"}"}`))

	require.NoError(t, err)
	assert.Equal(t, "alice", ev.User)
	assert.Equal(t, "abc", ev.CommitSha)
}

func TestParseCommitEventDecodedBody(t *testing.T) {
	ev, err := parseCommitEvent([]byte(`{"body":{"user":"alice","repo":"til"}}`))

	require.NoError(t, err)
	assert.Equal(t, "alice", ev.User)
	assert.Equal(t, "til", ev.Repo)
}

func TestParseCommitEventToleratesExtraFields(t *testing.T) {
	ev, err := parseCommitEvent([]byte(`{"user":"alice","headers":{"x":"y"},"requestContext":{}}`))

	require.NoError(t, err)
	assert.Equal(t, "alice", ev.User)
}
