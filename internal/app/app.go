package app

import (
	"context"
	"net/http"

	"github.com/ailabstn/authapi/internal/pkg/clock"
	"github.com/ailabstn/authapi/internal/pkg/config"
	"github.com/ailabstn/authapi/internal/pkg/instrument"
	"github.com/ailabstn/authapi/internal/pkg/jwt"
	"github.com/ailabstn/authapi/internal/pkg/mail"
	"github.com/ailabstn/authapi/internal/pkg/otp"
	"github.com/ailabstn/authapi/internal/pkg/router"
	"github.com/ailabstn/authapi/internal/pkg/uid"
	"github.com/ailabstn/authapi/internal/pkg/validator"
	"github.com/jackc/pgx/v5/pgxpool"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	validator validator.Validator
	clock     clock.Clocker
	uid       uid.NumberID
	uuid      uid.StringID
	otp       otp.Generator
	jwt       jwt.JWT

	// resources
	dbConn *pgxpool.Pool
	mail   mail.Mail

	// server
	router     *router.Router
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initJWT()
	app.initDatabase()
	app.initMail()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
