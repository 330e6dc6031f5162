package main

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/deanylev/red-green-blue-yellow-numbers/internal/engine"
	"github.com/deanylev/red-green-blue-yellow-numbers/internal/server"
)

func main() {
	if level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		logrus.SetLevel(level)
	}

	addr := ":8080"
	if v := os.Getenv("ADDR"); v != "" {
		addr = v
	}
	staticDir := "frontend/dist"
	if v := os.Getenv("STATIC_DIR"); v != "" {
		staticDir = v
	}

	registry := server.NewRegistry(engine.ClassicPreset())
	dispatcher := server.NewDispatcher(registry)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/ws", server.Handler(dispatcher))
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Serve the frontend build with SPA fallback.
	r.Get("/*", func(w http.ResponseWriter, req *http.Request) {
		path := filepath.Join(staticDir, filepath.Clean(req.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			http.ServeFile(w, req, path)
			return
		}
		http.ServeFile(w, req, filepath.Join(staticDir, "index.html"))
	})

	logrus.WithField("addr", addr).Info("listening")
	if err := http.ListenAndServe(addr, r); err != nil {
		logrus.Fatal(err)
	}
}
