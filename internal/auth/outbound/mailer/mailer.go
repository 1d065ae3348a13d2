// Package mailer delivers OTP codes over the shared mail transport.
package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/ailabstn/authapi/internal/pkg/instrument"
	"github.com/ailabstn/authapi/internal/pkg/mail"
	"go.opentelemetry.io/otel/codes"
)

const subject = "Your Verification Code"

// Mailer formats and sends verification-code emails.
type Mailer struct {
	mail mail.Mail
	from string
	ttl  time.Duration
	ins  instrument.Instrumentation
}

func NewMailer(m mail.Mail, from string, ttl time.Duration, ins instrument.Instrumentation) *Mailer {
	return &Mailer{
		mail: m,
		from: from,
		ttl:  ttl,
		ins:  ins,
	}
}

// SendCode emails the code to the recipient. Delivery is awaited; a failure
// propagates to the caller and leaves the issued record in place.
func (m *Mailer) SendCode(ctx context.Context, recipient, code string) (err error) {
	ctx, span := m.ins.Tracer("auth.outbound.mailer").Start(ctx, "SendCode")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	body := fmt.Sprintf(
		"Your verification code is %s. It is valid for %d minutes. Do not share it with anyone.",
		code, int(m.ttl.Minutes()),
	)

	return m.mail.Send(ctx, mail.Message{
		From:     m.from,
		To:       []string{recipient},
		Subject:  subject,
		TextBody: body,
	})
}
