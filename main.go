// SPDX-License-Identifier: AGPL-3.0-only
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

	"github.com/fluffyriot/xpost/internal/api/handlers"
	"github.com/fluffyriot/xpost/internal/auth"
	"github.com/fluffyriot/xpost/internal/authhelp"
	"github.com/fluffyriot/xpost/internal/authstate"
	"github.com/fluffyriot/xpost/internal/cli"
	"github.com/fluffyriot/xpost/internal/common"
	"github.com/fluffyriot/xpost/internal/config"
	"github.com/fluffyriot/xpost/internal/fetcher"
	"github.com/fluffyriot/xpost/internal/middleware"
	"github.com/fluffyriot/xpost/internal/pusher"
	"github.com/fluffyriot/xpost/internal/reposter"
	"github.com/fluffyriot/xpost/internal/store"
	"github.com/fluffyriot/xpost/internal/worker"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 15 * time.Second

func main() {
	createUser := flag.Bool("create-user", false, "create a user and exit")
	resetPassword := flag.Bool("reset-password", false, "reset a user's password and exit")
	username := flag.String("username", "", "username for --create-user and --reset-password")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	dbQueries, db, err := config.LoadDatabase(context.Background(), cfg)
	if err != nil {
		log.Fatalln(err)
	}
	defer db.Close()

	users := store.NewUsers(dbQueries)

	switch {
	case *createUser:
		cli.HandleCreateUser(users, *username)
		return
	case *resetPassword:
		cli.HandleResetPassword(users, *username)
		return
	}

	sealer, err := auth.NewSealer(cfg.TokenEncryptionKey)
	if err != nil {
		log.Fatalf("Failed to initialize token sealing: %v", err)
	}

	httpClient := common.NewClient(cfg.HTTPTimeout)

	oauthConfig := authhelp.GenerateTwitterConfig(cfg.TwitterClientID, cfg.TwitterClientSecret, cfg.TwitterCallbackURL)
	twitter := fetcher.NewTwitterClient(httpClient, oauthConfig, cfg.TwitterAPIURL)
	bluesky := pusher.NewBlueskyClient(httpClient, cfg.BlueskyPDSURL)

	posts := store.NewPosts(dbQueries)
	links := store.NewLinks(dbQueries)
	accounts := store.NewAccounts(dbQueries, sealer)
	states := authstate.NewPostgres(dbQueries)

	engine := reposter.NewEngine(posts, links, accounts, twitter, bluesky, cfg.FetchWindow)

	w := worker.NewWorker(users, engine, states, cfg.WorkerConcurrency)
	w.Start(cfg.SyncInterval)

	h := handlers.NewHandler(engine, w, posts, users, accounts, links, states, twitter, bluesky, db, cfg)

	sessionStore := cookie.NewStore([]byte(cfg.SessionSecret))
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		Secure:   cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	r := gin.Default()
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(sessions.Sessions("xpost_session", sessionStore))
	r.Use(middleware.AuthMiddleware())
	h.RegisterRoutes(r)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	sig := waitExitSignal()
	log.Printf("Received %v, shutting down", sig)

	w.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown failed: %v", err)
	}
}

func waitExitSignal() os.Signal {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	return <-ch
}
