package app

import (
	"log/slog"
	"os"

	"github.com/ailabstn/authapi/internal/auth"
)

func (a *App) initModules() {
	if err := auth.New(auth.Dependency{
		DBConn:     a.dbConn,
		Mail:       a.mail,
		Router:     a.router,
		Config:     a.config,
		Instrument: a.ins,
		UID:        a.uid,
		OTP:        a.otp,
		Clock:      a.clock,
		Validator:  a.validator,
	}); err != nil {
		slog.Error("failed to init module auth", "error", err)
		os.Exit(1)
	}
}
