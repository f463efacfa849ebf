package app

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/semmidev/pgvault/internal/domain"
	"github.com/semmidev/pgvault/internal/dump"
)

// listLimit bounds the listing endpoint to a single storage page.
const listLimit = 1000

// BackupRunner triggers one backup invocation.
type BackupRunner interface {
	Execute(ctx context.Context) (string, error)
}

// Server is the HTTP surface: an unauthenticated index plus
// bearer-token protected listing and trigger endpoints.
type Server struct {
	secret  string
	backups BackupRunner
	sink    domain.Sink
	logger  Logger
}

func NewServer(secret string, backups BackupRunner, sink domain.Sink, logger Logger) *Server {
	return &Server{
		secret:  secret,
		backups: backups,
		sink:    sink,
		logger:  logger,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /backups", s.requireAuth(s.handleList))
	mux.HandleFunc("POST /backup", s.requireAuth(s.handleBackup))
	return mux
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service": "pgvault",
		"endpoints": map[string]string{
			"GET /backups": "list stored backups (bearer auth)",
			"POST /backup": "trigger a backup (bearer auth)",
		},
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	backups, err := s.sink.List(r.Context(), dump.Prefix, listLimit)
	if err != nil {
		s.logger.Errorf("Listing backups: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": fmt.Sprintf("failed to list backups: %v", err),
		})
		return
	}

	if backups == nil {
		backups = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"count":   len(backups),
		"backups": backups,
	})
}

func (s *Server) handleBackup(w http.ResponseWriter, r *http.Request) {
	filename, err := s.backups.Execute(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": fmt.Sprintf("backup failed: %v", err),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message":  "backup completed",
		"filename": filename,
	})
}

func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(s.secret)) != 1 {
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"error": "unauthorized",
			})
			return
		}
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
