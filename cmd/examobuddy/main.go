package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	adapthttp "examobuddy/internal/adapter/http"
	"examobuddy/internal/adapter/memory"
	"examobuddy/internal/adapter/postgres"
	redisstore "examobuddy/internal/adapter/redis"
	"examobuddy/internal/app"
	"examobuddy/internal/domain"
	"examobuddy/internal/metrics"
	"examobuddy/internal/upstream"

	goredis "github.com/redis/go-redis/v9"
)

func main() {
	addr := env("ADDR", ":3000")
	webDir := env("WEB_DIR", "web")
	apiBase := env("API_BASE_URL", upstream.DefaultBaseURL)
	retention := durationEnv("SESSION_RETENTION", 7*24*time.Hour)

	store, cleanup, err := openStore(retention)
	if err != nil {
		log.Fatalf("session store: %v", err)
	}
	defer cleanup()

	gate := app.NewSessionGate(store)

	api := upstream.New(apiBase, func(ctx context.Context) string {
		sid := adapthttp.SessionIDFromContext(ctx)
		if sid == "" {
			return ""
		}
		token, err := store.Token(ctx, sid)
		if err != nil {
			return ""
		}
		return token
	})
	api.OnUnauthorized(func(ctx context.Context) {
		sid := adapthttp.SessionIDFromContext(ctx)
		if sid == "" {
			return
		}
		if err := gate.ClearSession(ctx, sid); err != nil {
			log.Printf("clearing rejected session: %v", err)
			return
		}
		metrics.ForcedLogoutsTotal.Inc()
	})

	srv, err := adapthttp.New(gate, api, webDir)
	if err != nil {
		log.Fatalf("http server: %v", err)
	}

	log.Printf("listening on %s (upstream %s)", addr, apiBase)
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

// openStore picks the session backend from the environment: Redis when
// REDIS_ADDR is set, else PostgreSQL when DATABASE_URL is set, else an
// in-memory store that forgets every session on restart.
func openStore(retention time.Duration) (domain.SessionStore, func(), error) {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		client := goredis.NewClient(&goredis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		return redisstore.New(client, retention), func() { _ = client.Close() }, nil
	}

	if connStr := os.Getenv("DATABASE_URL"); connStr != "" {
		db, err := postgres.Open(connStr)
		if err != nil {
			return nil, nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := db.DeleteStale(ctx, retention); err != nil {
			log.Printf("pruning stale sessions: %v", err)
		}
		return db, func() { _ = db.Close() }, nil
	}

	log.Print("no REDIS_ADDR or DATABASE_URL set, sessions are in-memory")
	return memory.New(), func() {}, nil
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("invalid %s %q, using %s", key, v, fallback)
		return fallback
	}
	return d
}
