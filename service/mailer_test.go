package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	mail "github.com/go-mail/mail/v2"
	"github.com/kevinaaaquil/myb/backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []*mail.Message
	err  error
}

func (f *fakeSender) DialAndSend(m ...*mail.Message) error {
	f.sent = append(f.sent, m...)
	return f.err
}

func TestNewMailer_DisabledWithoutHost(t *testing.T) {
	assert.Nil(t, NewMailer("", 587, "u", "p", "", "ops@example.com"))
	assert.Nil(t, NewMailer("smtp.example.com", 587, "u", "p", "", ""))
	m := NewMailer("smtp.example.com", 587, "bot@example.com", "p", "", "ops@example.com")
	require.NotNil(t, m)
	assert.Equal(t, "bot@example.com", m.From)
}

func TestMailer_NotifyReport(t *testing.T) {
	fs := &fakeSender{}
	m := &Mailer{From: "bot@example.com", To: "ops@example.com", dialer: fs}

	r := models.Report{
		ID:      "id-1-abc",
		Type:    "content",
		Email:   "reader@example.com",
		Subject: "Broken chapter",
		BookID:  "id-book",
		Message: "Chapter 3 is empty.",
		Extra:   map[string]any{"page": 12},
	}
	require.NoError(t, m.NotifyReport(context.Background(), r))
	require.Len(t, fs.sent, 1)

	assert.Equal(t, []string{"ops@example.com"}, fs.sent[0].GetHeader("To"))
	assert.Equal(t, []string{"reader@example.com"}, fs.sent[0].GetHeader("Reply-To"))
	assert.Equal(t, []string{"[myb content] Broken chapter"}, fs.sent[0].GetHeader("Subject"))

	var buf bytes.Buffer
	_, err := fs.sent[0].WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Book: id-book")
	assert.Contains(t, buf.String(), "Chapter 3 is empty.")
	assert.Contains(t, buf.String(), "page: 12")
}

func TestMailer_SendError(t *testing.T) {
	m := &Mailer{From: "a@example.com", To: "b@example.com", dialer: &fakeSender{err: errors.New("dial failed")}}
	err := m.NotifyReport(context.Background(), models.Report{ID: "r1"})
	assert.ErrorContains(t, err, "dial failed")
}

func TestReportSubject_Defaults(t *testing.T) {
	assert.Equal(t, "[myb report] r9", reportSubject(models.Report{ID: "r9"}))
}
