package echoServer

import (
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"libraryservice/app/echoServer/controller/auth"
	"libraryservice/app/echoServer/controller/book"
	"libraryservice/app/echoServer/controller/borrowing"
	"libraryservice/app/echoServer/controller/health"
)

type C struct {
	Auth      *auth.Controller
	Book      *book.Controller
	Borrowing *borrowing.Controller
	Health    *health.Controller
	JWTSecret string
}

func Register(e *echo.Echo, c C) {
	e.GET("/health", c.Health.Health)
	e.GET("/ready", c.Health.Ready)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	authMW := JWTAuth(c.JWTSecret)
	api := e.Group("/api")

	// Users
	api.POST("/user/register", c.Auth.Register)
	api.POST("/user/token", c.Auth.Token)
	api.GET("/user/me", c.Auth.Me, authMW)

	// Books: reads are public, writes are staff only
	api.GET("/books", c.Book.List)
	api.GET("/books/:id", c.Book.Detail)
	api.POST("/books", c.Book.Create, authMW, RequireStaff)
	api.PUT("/books/:id", c.Book.Update, authMW, RequireStaff)
	api.PATCH("/books/:id", c.Book.Patch, authMW, RequireStaff)
	api.DELETE("/books/:id", c.Book.Delete, authMW, RequireStaff)

	// Borrowings
	br := api.Group("/borrowings", authMW)
	br.GET("", c.Borrowing.List)
	br.GET("/:id", c.Borrowing.Detail)
	br.POST("", c.Borrowing.Create)
}
