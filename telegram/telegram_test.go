package telegram

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resto-pos/logger"
)

type staticCreds struct {
	creds Credentials
	err   error
}

func (s staticCreds) TelegramCredentials(context.Context) (Credentials, error) {
	return s.creds, s.err
}

type recordingServer struct {
	*httptest.Server
	calls atomic.Int32

	mu   sync.Mutex
	sent []OutgoingMessage
}

func newRecordingServer(t *testing.T, status int) *recordingServer {
	rs := &recordingServer{}
	rs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rs.calls.Add(1)
		assert.Equal(t, "/botTOKEN/sendMessage", r.URL.Path)
		var msg OutgoingMessage
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&msg))
		rs.mu.Lock()
		rs.sent = append(rs.sent, msg)
		rs.mu.Unlock()
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	t.Cleanup(rs.Close)
	return rs
}

func sampleNotice() OrderNotice {
	return OrderNotice{
		OrderID: 7,
		Table:   "",
		Items: []NoticeItem{
			{Name: "Clear Soup", Plate: "single", Price: 50},
			{Name: "Veg Thali", Plate: "full", Price: 190},
		},
		Total:       252.5,
		PaymentMode: "UPI",
		At:          time.Date(2026, 1, 2, 13, 4, 5, 0, time.Local),
	}
}

func TestFormatNewOrder(t *testing.T) {
	msg := FormatNewOrder(sampleNotice())
	assert.True(t, strings.HasPrefix(msg, "🆕 <b>NEW ORDER #007</b>\n"))
	assert.Contains(t, msg, "📅 02/01/2026 13:04:05\n")
	assert.Contains(t, msg, "🪑 <b>Table:</b> Takeaway\n")
	assert.Contains(t, msg, "💵 <b>Total:</b> ₹252.50\n\n")
	assert.Contains(t, msg, "• 1x Clear Soup (SINGLE) - ₹50\n")
	assert.Contains(t, msg, "• 1x Veg Thali (FULL) - ₹190\n")
}

func TestFormatPayment(t *testing.T) {
	n := sampleNotice()
	n.Table = "4"
	msg := FormatPayment(n)
	assert.True(t, strings.HasPrefix(msg, "💰 <b>ORDER PAID #007</b>\n"))
	assert.Contains(t, msg, "🪑 <b>Table:</b> 4\n")
	assert.Contains(t, msg, "💳 <b>Payment:</b> UPI\n")
	assert.Contains(t, msg, "💵 <b>Amount:</b> ₹252.50\n")
}

func TestFormatNewOrder_EscapesHTML(t *testing.T) {
	n := sampleNotice()
	n.Table = "<patio>"
	n.Items = []NoticeItem{{Name: "Mac & Cheese", Plate: "full", Price: 120}}
	msg := FormatNewOrder(n)
	assert.Contains(t, msg, "🪑 <b>Table:</b> &lt;patio&gt;\n")
	assert.Contains(t, msg, "• 1x Mac &amp; Cheese (FULL) - ₹120\n")
	assert.NotContains(t, msg, "Mac & Cheese")
}

func TestNotifier_SendsHTMLMessage(t *testing.T) {
	srv := newRecordingServer(t, http.StatusOK)
	n := NewNotifier(NewClient(srv.URL, time.Second),
		staticCreds{creds: Credentials{BotToken: "TOKEN", ChatID: "-100", Enabled: true}}, logger.Discard())

	require.NoError(t, n.NotifyNewOrder(context.Background(), sampleNotice()))
	require.NoError(t, n.NotifyPayment(context.Background(), sampleNotice()))

	require.Len(t, srv.sent, 2)
	assert.Equal(t, "-100", srv.sent[0].ChatID)
	assert.Equal(t, "HTML", srv.sent[0].ParseMode)
	assert.Contains(t, srv.sent[1].Text, "ORDER PAID")
}

func TestNotifier_DisabledMakesNoCalls(t *testing.T) {
	srv := newRecordingServer(t, http.StatusOK)
	cases := map[string]Credentials{
		"flag off":      {BotToken: "TOKEN", ChatID: "1", Enabled: false},
		"missing token": {ChatID: "1", Enabled: true},
		"missing chat":  {BotToken: "TOKEN", Enabled: true},
	}
	for name, creds := range cases {
		t.Run(name, func(t *testing.T) {
			n := NewNotifier(NewClient(srv.URL, time.Second), staticCreds{creds: creds}, logger.Discard())
			err := n.NotifyNewOrder(context.Background(), sampleNotice())
			assert.ErrorIs(t, err, ErrDisabled)
		})
	}
	assert.Equal(t, int32(0), srv.calls.Load())
}

func TestNotifier_Non200IsError(t *testing.T) {
	srv := newRecordingServer(t, http.StatusUnauthorized)
	n := NewNotifier(NewClient(srv.URL, time.Second),
		staticCreds{creds: Credentials{BotToken: "TOKEN", ChatID: "1", Enabled: true}}, logger.Discard())

	err := n.SendTest(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Equal(t, int32(1), srv.calls.Load())
}

func TestNotifier_CredentialsError(t *testing.T) {
	n := NewNotifier(NewClient("http://127.0.0.1:1", time.Second),
		staticCreds{err: errors.New("db down")}, logger.Discard())
	err := n.NotifyPayment(context.Background(), sampleNotice())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDisabled)
}

func TestClient_GetUpdates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/botTOKEN/getUpdates", r.URL.Path)
		assert.Equal(t, "11", r.URL.Query().Get("offset"))
		assert.Equal(t, "5", r.URL.Query().Get("timeout"))
		_, _ = w.Write([]byte(`{"ok":true,"result":[{"update_id":11,"message":{"message_id":1,"text":"/menu","chat":{"id":99}}}]}`))
	}))
	defer srv.Close()

	updates, err := NewClient(srv.URL, time.Second).GetUpdates(context.Background(), "TOKEN", 11, 5)
	require.NoError(t, err)
	require.Len(t, updates, 1)
	assert.Equal(t, int64(11), updates[0].UpdateID)
	assert.Equal(t, "/menu", updates[0].Message.Text)
	assert.Equal(t, int64(99), updates[0].Message.Chat.ID)
}

func TestClient_GetUpdatesNotOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":false,"description":"Conflict"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).GetUpdates(context.Background(), "TOKEN", 1, 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Conflict")
}
