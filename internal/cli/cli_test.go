package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	channelDomain "github.com/reshetovitsme/tg-channel-relay/internal/modules/channel/domain"
	kickDomain "github.com/reshetovitsme/tg-channel-relay/internal/modules/kick/domain"
	relayDomain "github.com/reshetovitsme/tg-channel-relay/internal/modules/relay/domain"
)

func init() {
	color.NoColor = true
}

func TestPrintState(t *testing.T) {
	state := channelDomain.NewState()
	state.GlobalMuted = true
	state.Ensure(-1002, "Tech")
	ch, _ := state.Ensure(-1001, "News")
	ch.Muted = true

	var out bytes.Buffer
	printState(&out, state)

	text := out.String()
	assert.Contains(t, text, "paused")
	assert.Contains(t, text, "Channels: 2")
	assert.Contains(t, text, "muted -1001")
	assert.Less(t, bytes.Index(out.Bytes(), []byte("Tech")), bytes.Index(out.Bytes(), []byte("News")))
}

func TestPrintPanel(t *testing.T) {
	state := channelDomain.NewState()
	state.Ensure(-1001, "News")

	var out bytes.Buffer
	printPanel(&out, relayDomain.RenderPanel(state))

	assert.Contains(t, out.String(), "toggle_global")
	assert.Contains(t, out.String(), "toggle_ch:-1001")
}

func TestRequestKick(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer s3cret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"missing or invalid credential"}`))
			return
		}
		var body struct {
			UserID int64 `json:"user_id"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "/kick", r.URL.Path)
		assert.Equal(t, int64(555), body.UserID)
		_ = json.NewEncoder(w).Encode(kickDomain.NewSummary([]kickDomain.ChannelResult{
			{ChannelID: -1001, Title: "News", Success: true},
			{ChannelID: -1002, Title: "Tech", Error: "not enough rights"},
		}))
	}))
	defer srv.Close()

	summary, err := requestKick(context.Background(), srv.Client(), srv.URL, "s3cret", 555)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 1, summary.FailCount)

	var out bytes.Buffer
	printSummary(&out, summary)
	assert.Contains(t, out.String(), "Tech: not enough rights")

	_, err = requestKick(context.Background(), srv.Client(), srv.URL, "wrong", 555)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing or invalid credential")
}
