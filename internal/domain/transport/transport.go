package transport

import "context"

// EmailSender sends a plain-text email. Implementations must respect ctx so
// one slow SMTP conversation cannot stall a whole scan.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// WhatsAppSender sends a WhatsApp message, optionally with a media attachment.
// An empty mediaURL means text only.
type WhatsAppSender interface {
	SendWhatsApp(ctx context.Context, to, body, mediaURL string) error
}
