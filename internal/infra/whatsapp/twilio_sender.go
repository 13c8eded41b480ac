package whatsapp

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// TwilioSender delivers WhatsApp messages through the Twilio messaging API.
type TwilioSender struct {
	create func(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
	from   string // E.164 number without the whatsapp: prefix
}

func NewTwilioSender(accountSID, authToken, from string) *TwilioSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioSender{create: client.Api.CreateMessage, from: from}
}

// SendWhatsApp sends one message, attaching mediaURL when non-empty. The
// Twilio client API takes no context, so the call runs in a goroutine and the
// context deadline bounds how long the caller waits.
func (s *TwilioSender) SendWhatsApp(ctx context.Context, to, body, mediaURL string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo("whatsapp:" + to)
	params.SetFrom("whatsapp:" + s.from)
	params.SetBody(body)
	if mediaURL != "" {
		params.SetMediaUrl([]string{mediaURL})
	}

	errCh := make(chan error, 1)
	go func() {
		_, err := s.create(params)
		errCh <- err
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("twilio send to %s: %w", to, err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("twilio send to %s: %w", to, ctx.Err())
	}
}
