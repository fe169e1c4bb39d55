package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/go-oauth2-client/auth"
	"github.com/jrsteele09/go-oauth2-client/internal/config"
	"github.com/jrsteele09/go-oauth2-client/server"
	"github.com/jrsteele09/go-oauth2-client/token/jwt"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("Error running server")
	}
	log.Info().Msg("Server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("Recovered from panic")
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	setupLogging(c)
	displayAppname(c.GetAppName())

	opts, err := authOptions(c)
	if err != nil {
		return err
	}
	authService, err := auth.NewAuthorizationService(opts...)
	if err != nil {
		return fmt.Errorf("auth.NewAuthorizationService: %w", err)
	}

	srv := &http.Server{
		Addr:              c.GetPort(),
		Handler:           server.New(c, authService),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- listenAndServe(srv) }()

	select {
	case err := <-errCh:
		return err
	case <-waitForStopSignal():
	}
	return shutdown(srv)
}

func authOptions(c config.Config) ([]auth.AuthorizationServiceOption, error) {
	opts := []auth.AuthorizationServiceOption{
		auth.WithClientID(c.GetClientID()),
		auth.WithRedirectURI(c.GetRedirectURI()),
		auth.WithClientSecret(c.GetClientSecret()),
		auth.WithAllowedScopes(c.GetAllowedScopes()...),
		auth.RequireRedirectURI(c.GetRequireRedirectURI()),
		auth.WithErrorRedirectURI(c.GetErrorRedirectURI()),
		auth.WithCode(c.GetAuthCode()),
		auth.WithTokenScope(c.GetTokenScope()...),
	}
	if expiry := c.GetAccessTokenExpiry(); expiry > 0 {
		opts = append(opts, auth.WithExpiration(expiry))
	}
	if key := c.GetTokenSigningKey(); key != "" {
		creator, err := jwt.NewCreator(c.GetTokenIssuer(), c.GetTokenAudience(), []byte(key))
		if err != nil {
			return nil, fmt.Errorf("jwt.NewCreator: %w", err)
		}
		opts = append(opts, auth.WithTokenIssuer(creator))
	}
	return opts, nil
}

func setupLogging(c config.Config) {
	level, err := zerolog.ParseLevel(c.GetLogLevel())
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if c.GetEnv() == "DEV" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

func listenAndServe(server *http.Server) error {
	log.Info().Str("addr", server.Addr).Msg("Server listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() <-chan os.Signal {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	return stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
