package whatsapp

import (
	"context"
	"errors"
	"testing"
	"time"

	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type createStub struct {
	params *twilioApi.CreateMessageParams
	err    error
	block  chan struct{} // when set, the call hangs until closed
}

func (c *createStub) create(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error) {
	if c.block != nil {
		<-c.block
	}
	c.params = params
	return nil, c.err
}

func TestSendWhatsApp(t *testing.T) {
	stub := &createStub{}
	s := &TwilioSender{create: stub.create, from: "+15550009999"}

	err := s.SendWhatsApp(context.Background(), "+15550001111", "hi there", "https://example.com/logo.png")

	require.NoError(t, err)
	require.NotNil(t, stub.params)
	assert.Equal(t, "whatsapp:+15550001111", *stub.params.To)
	assert.Equal(t, "whatsapp:+15550009999", *stub.params.From)
	assert.Equal(t, "hi there", *stub.params.Body)
	require.NotNil(t, stub.params.MediaUrl)
	assert.Equal(t, []string{"https://example.com/logo.png"}, *stub.params.MediaUrl)
}

func TestSendWhatsAppTextOnly(t *testing.T) {
	stub := &createStub{}
	s := &TwilioSender{create: stub.create, from: "+15550009999"}

	err := s.SendWhatsApp(context.Background(), "+15550001111", "hi there", "")

	require.NoError(t, err)
	assert.Nil(t, stub.params.MediaUrl, "no media attachment without a URL")
}

func TestSendWhatsAppTransportError(t *testing.T) {
	stub := &createStub{err: errors.New("auth failed")}
	s := &TwilioSender{create: stub.create, from: "+15550009999"}

	err := s.SendWhatsApp(context.Background(), "+15550001111", "hi", "")
	assert.ErrorContains(t, err, "auth failed")
}

func TestSendWhatsAppContextDeadlineWins(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	s := &TwilioSender{create: (&createStub{block: block}).create, from: "+15550009999"}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := s.SendWhatsApp(ctx, "+15550001111", "hi", "")

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second, "a hung API call must not hold the caller")
}
