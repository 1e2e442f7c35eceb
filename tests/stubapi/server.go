// Package stubapi is an in-memory rendition of the platform admin API for
// local development and integration tests. It reproduces the envelope, the
// sparse course list projection and the classification quirk; it persists
// nothing.
package stubapi

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/kondoo/console/core"
	"github.com/kondoo/console/core/entity"
)

type (
	Options struct {
		Conf           *core.Config
		DisableReqLogs bool
	}

	Server interface {
		http.Handler
		Start()
		Stop(context.Context) error
	}

	server struct {
		opts *Options
		app  *echo.Echo
		db   *database
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts: opts,
		app:  echo.New(),
		db:   newDatabase(opts.Conf),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.opts.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	s.app.HTTPErrorHandler = httpErrorHandler
	s.app.Debug = conf.Debug

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	v1.POST("/auth/login", s.login)

	api := v1.Group("", s.requireAuth)

	s.registerCourseAPI(api)
	s.registerEbookAPI(api)
	s.registerTestSeriesAPI(api)
	s.registerCouponAPI(api)
	s.registerOrderAPI(api)
	s.registerTaxonomyAPI(api)
	s.registerRefDataAPI(api)
}

func (s *server) Start() {
	s.app.Logger.Fatal(s.app.Start(s.opts.Conf.Stub.Addr))
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Kondoo platform stub")
}

type envelope struct {
	Data       interface{}        `json:"data,omitempty"`
	Message    string             `json:"message,omitempty"`
	Pagination *entity.Pagination `json:"pagination,omitempty"`
}

func respond(c echo.Context, code int, data interface{}) error {
	return c.JSON(code, envelope{Data: data})
}

func respondPage(c echo.Context, data interface{}, page *entity.Pagination) error {
	return c.JSON(http.StatusOK, envelope{Data: data, Pagination: page})
}

func httpErrorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	message := http.StatusText(code)

	if herr, ok := err.(*echo.HTTPError); ok {
		code = herr.Code
		if m, ok := herr.Message.(string); ok {
			message = m
		}
	}

	if !c.Response().Committed {
		if jerr := c.JSON(code, envelope{Message: message}); jerr != nil {
			c.Echo().Logger.Error(jerr)
		}
	}
}
