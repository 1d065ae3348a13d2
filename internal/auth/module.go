// Package auth is the OTP-fronted authentication module: issuing and
// verifying email codes, and forwarding account operations to the identity
// provider.
package auth

import (
	"github.com/ailabstn/authapi/internal/auth/inbound"
	"github.com/ailabstn/authapi/internal/auth/outbound/db"
	"github.com/ailabstn/authapi/internal/auth/outbound/mailer"
	"github.com/ailabstn/authapi/internal/auth/outbound/provider"
	"github.com/ailabstn/authapi/internal/auth/usecase"
	"github.com/ailabstn/authapi/internal/pkg/clock"
	"github.com/ailabstn/authapi/internal/pkg/config"
	"github.com/ailabstn/authapi/internal/pkg/instrument"
	"github.com/ailabstn/authapi/internal/pkg/mail"
	"github.com/ailabstn/authapi/internal/pkg/otp"
	"github.com/ailabstn/authapi/internal/pkg/router"
	"github.com/ailabstn/authapi/internal/pkg/uid"
	"github.com/ailabstn/authapi/internal/pkg/validator"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Dependency struct {
	DBConn     *pgxpool.Pool              `validate:"required"`
	Mail       mail.Mail                  `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UID        uid.NumberID               `validate:"required"`
	OTP        otp.Generator              `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	store := db.NewDB(dep.DBConn, dep.Clock, dep.Instrument)

	sender := mailer.NewMailer(
		dep.Mail,
		dep.Config.GetString("mail.from"),
		dep.Config.GetMinute("modules.auth.otp.ttl_minutes"),
		dep.Instrument,
	)

	client, err := provider.NewClient(provider.Config{
		BaseURL:    dep.Config.GetString("modules.auth.provider.base_url"),
		ServiceKey: dep.Config.GetString("modules.auth.provider.service_key"),
		Timeout:    dep.Config.GetSecond("modules.auth.provider.timeout_seconds"),
	}, dep.Instrument)
	if err != nil {
		return err
	}

	uc := usecase.New(usecase.Dependency{
		RepoDB:     store,
		Notifier:   sender,
		Provider:   client,
		Validator:  dep.Validator,
		OTP:        dep.OTP,
		UID:        dep.UID,
		Instrument: dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc, dep.Config.GetString("app.name"))

	return nil
}
