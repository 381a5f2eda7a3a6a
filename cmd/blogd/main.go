package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	blog "github.com/goliatone/go-blog"
)

func main() {
	var (
		addr    = flag.String("addr", "", "listen address, overrides config")
		driver  = flag.String("driver", "", "database driver: sqlite, postgres or memory")
		dsn     = flag.String("dsn", "", "database connection string")
		baseURL = flag.String("base-url", "", "public site base url")
	)
	flag.Parse()

	cfg := configFromEnv()
	if *addr != "" {
		cfg.HTTP.Addr = *addr
	}
	if *driver != "" {
		cfg.Database.Driver = *driver
		if *driver == "memory" {
			cfg.Database.DSN = ""
		}
	}
	if *dsn != "" {
		cfg.Database.DSN = *dsn
	}
	if *baseURL != "" {
		cfg.Site.BaseURL = *baseURL
	}

	if err := run(cfg); err != nil {
		log.Fatalf("blogd: %v", err)
	}
}

func configFromEnv() blog.Config {
	cfg := blog.DefaultConfig()

	if title := os.Getenv("BLOG_SITE_TITLE"); title != "" {
		cfg.Site.Title = title
	}
	if secret := os.Getenv("BLOG_SESSION_SECRET"); secret != "" {
		cfg.Session.Secret = secret
	}
	cfg.Github.ClientID = os.Getenv("BLOG_GITHUB_CLIENT_ID")
	cfg.Github.ClientSecret = os.Getenv("BLOG_GITHUB_CLIENT_SECRET")
	if redirect := os.Getenv("BLOG_GITHUB_REDIRECT_URL"); redirect != "" {
		cfg.Github.RedirectURL = redirect
	}

	return cfg
}

func run(cfg blog.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	module, err := blog.New(cfg)
	if err != nil {
		return err
	}

	if db := module.DB(); db != nil {
		if err := blog.RunMigrations(ctx, db); err != nil {
			return err
		}
		defer db.Close()
	}

	mux := http.NewServeMux()
	if err := module.API().Register(mux); err != nil {
		return err
	}

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("blogd: listening on %s", cfg.HTTP.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}

	return nil
}
