package notify

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMessage(t *testing.T) {
	ts := time.Date(2025, 3, 5, 8, 0, 0, 0, time.UTC)
	msg := string(buildMessage("bot@example.com", "me@example.com", "Daily digest | 2025-03-04", "<p>hi</p>", "hi", ts))

	assert.True(t, strings.HasPrefix(msg, "From: bot@example.com\r\nTo: me@example.com\r\n"))
	assert.Contains(t, msg, "Subject: Daily digest | 2025-03-04\r\n")
	assert.Contains(t, msg, "Date: Wed, 05 Mar 2025 08:00:00 +0000\r\n")
	assert.Contains(t, msg, `Content-Type: multipart/alternative; boundary="`+boundary+`"`)
	textIdx := strings.Index(msg, "text/plain")
	htmlIdx := strings.Index(msg, "text/html")
	assert.Positive(t, textIdx)
	assert.Greater(t, htmlIdx, textIdx, "plain text part comes first")
	assert.True(t, strings.HasSuffix(msg, "--"+boundary+"--\r\n"))
}

func TestBuildMessage_EncodesSubject(t *testing.T) {
	msg := string(buildMessage("a@b.c", "d@e.f", "Дайджест", "", "", time.Now()))
	assert.Contains(t, msg, "Subject: =?utf-8?q?")
	assert.NotContains(t, msg, "Subject: Дайджест")
}

func TestSMTPSender_Send(t *testing.T) {
	s := NewSMTPSender("smtp.example.com", 2525, "user", "pass", "bot@example.com")
	var gotAddr, gotFrom string
	var gotTo []string
	var gotAuth smtp.Auth
	s.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotAuth, gotFrom, gotTo = addr, a, from, to
		return nil
	}

	require.NoError(t, s.Send(context.Background(), "me@example.com", "subj", "<p>x</p>", "x"))
	assert.Equal(t, "smtp.example.com:2525", gotAddr)
	assert.Equal(t, "bot@example.com", gotFrom)
	assert.Equal(t, []string{"me@example.com"}, gotTo)
	assert.NotNil(t, gotAuth)

	t.Run("no auth without username", func(t *testing.T) {
		s := NewSMTPSender("localhost", 25, "", "", "bot@example.com")
		s.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
			assert.Nil(t, a)
			return nil
		}
		require.NoError(t, s.Send(context.Background(), "me@example.com", "subj", "", ""))
	})

	t.Run("send error wrapped", func(t *testing.T) {
		s.send = func(string, smtp.Auth, string, []string, []byte) error { return errors.New("refused") }
		err := s.Send(context.Background(), "me@example.com", "subj", "", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "send email to me@example.com: refused")
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.ErrorIs(t, s.Send(ctx, "me@example.com", "subj", "", ""), context.Canceled)
	})
}
