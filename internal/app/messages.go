package app

import (
	"errors"
	"fmt"

	"fithub_backoffice/internal/domain/reminder"
)

var errUnknownChannel = errors.New("unknown reminder channel")

const (
	membershipEmailSubject = "Membership Expiration Reminder - FitHub"
	paymentEmailSubject    = "Payment Reminder - FitHub"

	dateLayout = "January 2, 2006"
)

func dayPhrase(daysRemaining int) string {
	if daysRemaining > 0 {
		return fmt.Sprintf("in %d days", daysRemaining)
	}
	return "today"
}

func renderEmail(subj reminder.Subject, daysRemaining int) (subject, body string, err error) {
	if subj.Email == "" {
		return "", "", fmt.Errorf("%w: subject %d has no email address", reminder.ErrRender, subj.ID)
	}
	switch subj.Kind {
	case reminder.KindMembership:
		body = fmt.Sprintf(`Dear %s,

Your FitHub membership is expiring %s.

Membership Details:
Type: %s
Expiry Date: %s

To ensure uninterrupted access to our facilities, please renew your membership before it expires.

Best regards,
FitHub Team
`,
			subj.Name,
			dayPhrase(daysRemaining),
			subj.MembershipType,
			subj.TargetDate.Format(dateLayout),
		)
		return membershipEmailSubject, body, nil
	case reminder.KindPayment:
		body = fmt.Sprintf(`Dear %s,

Your payment to FitHub is due %s.

Payment Details:
Amount: %s
Description: %s
Due Date: %s

Please settle the amount before the due date to keep your membership in good standing.

Best regards,
FitHub Team
`,
			subj.Name,
			dayPhrase(daysRemaining),
			subj.Amount.StringFixed(2),
			subj.Description,
			subj.TargetDate.Format(dateLayout),
		)
		return paymentEmailSubject, body, nil
	default:
		return "", "", fmt.Errorf("%w: unknown subject kind %q", reminder.ErrRender, subj.Kind)
	}
}

func renderWhatsApp(subj reminder.Subject, daysRemaining int) (string, error) {
	if subj.Phone == "" {
		return "", fmt.Errorf("%w: subject %d has no phone number", reminder.ErrRender, subj.ID)
	}
	switch subj.Kind {
	case reminder.KindMembership:
		return fmt.Sprintf(`Hello %s! 👋

Your FitHub membership is expiring %s.

🏋️ *Membership Details*
Type: %s
Expiry: %s

Don't miss out on your fitness journey! Renew your membership to keep enjoying our facilities.

Need help? Reply to this message and we'll assist you.

Stay fit! 💪
*FitHub Team*
`,
			subj.Name,
			dayPhrase(daysRemaining),
			subj.MembershipType,
			subj.TargetDate.Format(dateLayout),
		), nil
	case reminder.KindPayment:
		return fmt.Sprintf(`Hello %s! 👋

Your payment to FitHub is due %s.

💳 *Payment Details*
Amount: %s
Description: %s
Due Date: %s

Please settle it before the due date to keep your membership active.

Stay fit! 💪
*FitHub Team*
`,
			subj.Name,
			dayPhrase(daysRemaining),
			subj.Amount.StringFixed(2),
			subj.Description,
			subj.TargetDate.Format(dateLayout),
		), nil
	default:
		return "", fmt.Errorf("%w: unknown subject kind %q", reminder.ErrRender, subj.Kind)
	}
}
