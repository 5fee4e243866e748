package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reshetovitsme/tg-channel-relay/internal/modules/channel/domain"
)

func TestStateEnsure(t *testing.T) {
	t.Parallel()

	s := domain.NewState()

	ch, created := s.Ensure(42, "News")
	require.True(t, created)
	assert.Equal(t, "News", ch.Title)
	assert.False(t, ch.Muted)

	ch.Muted = true
	ch.LastGroupID = "g1"
	ch.LastGroupTimestamp = 1000

	again, created := s.Ensure(42, "News Daily")
	assert.False(t, created)
	assert.Same(t, ch, again)
	assert.Equal(t, "News Daily", again.Title)
	assert.True(t, again.Muted, "mute flag survives re-confirmation")
	assert.Equal(t, "g1", again.LastGroupID)
	assert.EqualValues(t, 1000, again.LastGroupTimestamp)

	_, _ = s.Ensure(42, "")
	assert.Equal(t, "News Daily", ch.Title, "empty title never overwrites")
}

func TestStateRemove(t *testing.T) {
	t.Parallel()

	s := domain.NewState()
	s.Ensure(1, "a")

	assert.True(t, s.Remove(1))
	assert.False(t, s.Remove(1))
	_, ok := s.Get(1)
	assert.False(t, ok)
}

func TestStateIDsSorted(t *testing.T) {
	t.Parallel()

	s := domain.NewState()
	for _, id := range []int64{30, -100, 7} {
		s.Ensure(id, "")
	}
	assert.Equal(t, []int64{-100, 7, 30}, s.IDs())
}

func TestDisplayName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		title    string
		username string
		id       int64
		want     string
	}{
		{"title wins", "News", "news", 1, "News"},
		{"username fallback", "  ", "news", 1, "@news"},
		{"username already prefixed", "", "@news", 1, "@news"},
		{"id fallback", "", "", -1001, "-1001"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, domain.DisplayName(tt.title, tt.username, tt.id))
		})
	}
}

func TestDedupGate(t *testing.T) {
	t.Parallel()

	base := time.UnixMilli(1_700_000_000_000)

	t.Run("standalone posts bypass", func(t *testing.T) {
		t.Parallel()
		ch := &domain.Channel{}
		assert.False(t, ch.Admit("", base, domain.DedupWindow))
		assert.False(t, ch.Admit("", base, domain.DedupWindow))
		assert.Empty(t, ch.LastGroupID)
	})

	t.Run("same group inside window is suppressed", func(t *testing.T) {
		t.Parallel()
		ch := &domain.Channel{}
		assert.False(t, ch.Admit("album", base, domain.DedupWindow))
		assert.True(t, ch.Admit("album", base.Add(9*time.Minute), domain.DedupWindow))
	})

	t.Run("same group at window edge passes", func(t *testing.T) {
		t.Parallel()
		ch := &domain.Channel{}
		assert.False(t, ch.Admit("album", base, domain.DedupWindow))
		assert.False(t, ch.Admit("album", base.Add(10*time.Minute), domain.DedupWindow))
	})

	t.Run("different group passes and replaces cursor", func(t *testing.T) {
		t.Parallel()
		ch := &domain.Channel{}
		ch.Admit("a", base, domain.DedupWindow)
		assert.False(t, ch.Admit("b", base.Add(time.Second), domain.DedupWindow))
		assert.Equal(t, "b", ch.LastGroupID)
	})

	t.Run("timestamp never regresses", func(t *testing.T) {
		t.Parallel()
		ch := &domain.Channel{}
		ch.ObserveGroup("a", base)
		ch.ObserveGroup("b", base.Add(-time.Hour))
		assert.Equal(t, "b", ch.LastGroupID)
		assert.Equal(t, base.UnixMilli(), ch.LastGroupTimestamp)
	})
}

func TestStateJSONShape(t *testing.T) {
	t.Parallel()

	s := domain.NewState()
	s.GlobalMuted = true
	s.Ensure(-1001, "News")

	raw, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"globalMuted":true,"channels":{"-1001":{"title":"News","muted":false,"lastGroupTimestamp":0}}}`, string(raw))
}

func TestMembershipStatus(t *testing.T) {
	t.Parallel()

	for _, s := range []domain.MembershipStatus{domain.MembershipStatusAdministrator, domain.MembershipStatusMember} {
		assert.True(t, s.Elevated(), s)
		assert.False(t, s.Departed(), s)
	}
	for _, s := range []domain.MembershipStatus{domain.MembershipStatusLeft, domain.MembershipStatusKicked} {
		assert.True(t, s.Departed(), s)
		assert.False(t, s.Elevated(), s)
	}
	assert.False(t, domain.MembershipStatusRestricted.Elevated())
	assert.False(t, domain.MembershipStatusRestricted.Departed())

	st, err := domain.ParseMembershipStatus("ADMINISTRATOR")
	require.NoError(t, err)
	assert.Equal(t, domain.MembershipStatusAdministrator, st)

	_, err = domain.ParseMembershipStatus("owner")
	assert.ErrorIs(t, err, domain.ErrInvalidMembershipStatus)
}
