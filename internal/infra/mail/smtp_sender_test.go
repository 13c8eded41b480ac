package mail

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type dialerStub struct {
	messages []*gomail.Message
	err      error
	block    chan struct{} // when set, DialAndSend hangs until closed
}

func (d *dialerStub) DialAndSend(m ...*gomail.Message) error {
	if d.block != nil {
		<-d.block
	}
	d.messages = append(d.messages, m...)
	return d.err
}

func TestSendEmail(t *testing.T) {
	stub := &dialerStub{}
	s := &SMTPSender{dialer: stub, from: "noreply@example.com"}

	err := s.SendEmail(context.Background(), "alex@example.com", "Hello", "body text")

	require.NoError(t, err)
	require.Len(t, stub.messages, 1)
	m := stub.messages[0]
	assert.Equal(t, []string{"noreply@example.com"}, m.GetHeader("From"))
	assert.Equal(t, []string{"alex@example.com"}, m.GetHeader("To"))
	assert.Equal(t, []string{"Hello"}, m.GetHeader("Subject"))
}

func TestSendEmailTransportError(t *testing.T) {
	stub := &dialerStub{err: errors.New("connection refused")}
	s := &SMTPSender{dialer: stub, from: "noreply@example.com"}

	err := s.SendEmail(context.Background(), "alex@example.com", "Hello", "body")
	assert.ErrorContains(t, err, "connection refused")
}

func TestSendEmailContextDeadlineWins(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	s := &SMTPSender{dialer: &dialerStub{block: block}, from: "noreply@example.com"}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := s.SendEmail(ctx, "alex@example.com", "Hello", "body")

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second, "a hung SMTP conversation must not hold the caller")
}
