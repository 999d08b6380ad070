// Package echo serves lectio over a JSON HTTP API.
package echo

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/fwojciec/lectio"
	"github.com/fwojciec/lectio/lookup"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// DefaultShutdownTimeout bounds how long Close waits for in-flight requests.
const DefaultShutdownTimeout = 10 * time.Second

// Server is the HTTP API.
type Server struct {
	echo    *echo.Echo
	service *lookup.Service
	logger  *slog.Logger
}

// NewServer creates a Server with all routes registered.
func NewServer(service *lookup.Service, logger *slog.Logger) *Server {
	s := &Server{
		echo:    echo.New(),
		service: service,
		logger:  logger,
	}
	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.echo.HTTPErrorHandler = s.handleError

	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.logger.Info("request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"duration", v.Latency,
				"err", v.Error,
			)
			return nil
		},
	}))

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)

	s.echo.GET("/versions", s.handleVersions)
	s.echo.GET("/lookup", s.handleLookup)
	s.echo.GET("/references", s.handleReferences)
	s.echo.GET("/search", s.handleSearch)

	for _, kind := range []lectio.OwnerKind{lectio.OwnerUser, lectio.OwnerGuild} {
		g := s.echo.Group("/" + string(kind) + "s/:id/version")
		g.PUT("", s.handleSetVersion(kind))
		g.DELETE("", s.handleUnsetVersion(kind))
	}

	s.echo.GET("/confessions", s.handleConfessions)
	s.echo.GET("/confessions/:command", s.handleContents)
	s.echo.GET("/confessions/:command/sections/:address", s.handleSection)
	s.echo.GET("/confessions/:command/search", s.handleSectionSearch)
}

// ServeHTTP lets the server be exercised without a listener.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until Close is called.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("listening", "addr", addr)
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close stops accepting requests and waits for in-flight ones.
func (s *Server) Close(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, DefaultShutdownTimeout)
	defer cancel()
	return s.echo.Shutdown(ctx)
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

// errorStatus maps application error codes to HTTP status codes.
var errorStatus = map[string]int{
	lectio.EINVALID:      http.StatusBadRequest,
	lectio.EMALFORMED:    http.StatusBadRequest,
	lectio.EBOOK:         http.StatusBadRequest,
	lectio.ECOVERAGE:     http.StatusUnprocessableEntity,
	lectio.ENOTFOUND:     http.StatusNotFound,
	lectio.EVERSION:      http.StatusNotFound,
	lectio.ENOSECTIONS:   http.StatusNotFound,
	lectio.ECONFLICT:     http.StatusConflict,
	lectio.ENOTSUPPORTED: http.StatusNotImplemented,
	lectio.EUNAVAILABLE:  http.StatusBadGateway,
	lectio.EINTERNAL:     http.StatusInternalServerError,
}

// ErrorStatus returns the HTTP status for err.
func ErrorStatus(err error) int {
	if status, ok := errorStatus[lectio.ErrorCode(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := http.StatusText(he.Code)
		if m, ok := he.Message.(string); ok {
			msg = m
		}
		code := lectio.EINVALID
		if he.Code == http.StatusNotFound {
			code = lectio.ENOTFOUND
		}
		_ = c.JSON(he.Code, ErrorResponse{Code: code, Error: msg})
		return
	}

	code := lectio.ErrorCode(err)
	if code == lectio.EINTERNAL {
		s.logger.Error("internal error", "uri", c.Request().RequestURI, "err", err)
	}
	_ = c.JSON(ErrorStatus(err), ErrorResponse{Code: code, Error: lectio.ErrorMessage(err)})
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}

// caller reads the optional user and guild query parameters.
func caller(c echo.Context) (lookup.Caller, error) {
	var out lookup.Caller
	for name, dst := range map[string]**int64{"user": &out.UserID, "guild": &out.GuildID} {
		raw := c.QueryParam(name)
		if raw == "" {
			continue
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return lookup.Caller{}, lectio.Errorf(lectio.EINVALID, "%s must be a numeric ID", name)
		}
		*dst = &id
	}
	return out, nil
}

// intParam reads an optional integer query parameter.
func intParam(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, lectio.Errorf(lectio.EINVALID, "%s must be a number", name)
	}
	return n, nil
}
