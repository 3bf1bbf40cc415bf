package echoServer

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	authctrl "libraryservice/app/echoServer/controller/auth"
	bookctrl "libraryservice/app/echoServer/controller/book"
	borrowingctrl "libraryservice/app/echoServer/controller/borrowing"
	healthctrl "libraryservice/app/echoServer/controller/health"
	"libraryservice/app/echoServer/validation"
	bookrepo "libraryservice/repository/book"
	borrowingrepo "libraryservice/repository/borrowing"
	userrepo "libraryservice/repository/user"
	authsvc "libraryservice/service/auth"
	booksvc "libraryservice/service/book"
	borrowingsvc "libraryservice/service/borrowing"
	"libraryservice/util/database"
)

type Options struct {
	JWTSecret  string
	JWTTTL     time.Duration
	StaffEmail string
	BodyLimit  string
	Log        *slog.Logger
	Tracer     trace.Tracer
}

// New wires repositories, services and controllers over db and returns a
// ready echo instance.
func New(db *database.DB, o Options) *echo.Echo {
	if o.Log == nil {
		o.Log = slog.Default()
	}
	if o.Tracer == nil {
		o.Tracer = noop.NewTracerProvider().Tracer("libraryservice")
	}

	// repos
	ur := userrepo.New(db)
	br := bookrepo.New(db)
	bwr := borrowingrepo.New(db)

	// services
	as := authsvc.New(ur, authsvc.Config{Secret: o.JWTSecret, TTL: o.JWTTTL, StaffEmail: o.StaffEmail})
	bs := booksvc.New(br)
	bws := borrowingsvc.New(db.DB, bwr, br)

	// controllers
	v := validation.New()
	c := C{
		Auth:      &authctrl.Controller{Svc: as, V: v, Log: o.Log},
		Book:      &bookctrl.Controller{Svc: bs, V: v, Log: o.Log},
		Borrowing: &borrowingctrl.Controller{Svc: bws, V: v, Log: o.Log},
		Health:    &healthctrl.Controller{DB: db, Log: o.Log},
		JWTSecret: o.JWTSecret,
	}

	e := echo.New()
	e.HideBanner = true
	e.JSONSerializer = JSONSerializer{}
	e.Validator = v
	RegisterMiddlewares(e, o.Log, o.BodyLimit, o.Tracer)
	Register(e, c)
	return e
}
