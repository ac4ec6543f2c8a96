package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/xaenox/pathway-assist/internal/models"
	"github.com/xaenox/pathway-assist/internal/orchestrator"
	"go.uber.org/zap"
)

// Server exposes the orchestrator over HTTP.
type Server struct {
	orchestrator *orchestrator.Orchestrator
	logger       *zap.Logger
}

func New(o *orchestrator.Orchestrator, logger *zap.Logger) *Server {
	return &Server{orchestrator: o, logger: logger}
}

// Handler returns the route mux.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/chat", s.handleChat)
	mux.HandleFunc("/v1/voice", s.handleVoice)
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("HTTP server listening", zap.String("addr", addr))
	return srv.ListenAndServe()
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req orchestrator.TurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Content == "" {
		s.writeError(w, http.StatusBadRequest, "content is required")
		return
	}
	if req.SessionID == "" {
		req.SessionID = uuid.New().String()
	}
	if req.Channel == "" {
		req.Channel = models.ChannelChat
	}

	resp := s.handleTurnSafe(r, req)
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleVoice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req orchestrator.TurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Content == "" {
		s.writeError(w, http.StatusBadRequest, "content is required")
		return
	}
	if req.SessionID == "" {
		req.SessionID = uuid.New().String()
	}
	req.Channel = models.ChannelVoice

	decision := s.handleVoiceTurnSafe(r, req)
	s.writeJSON(w, http.StatusOK, decision)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleTurnSafe guards the pipeline: a panic or unexpected failure still
// produces a spoken-to-the-user response. A failure during a crisis-flagged
// conversation must never surface as a bare 500.
func (s *Server) handleTurnSafe(r *http.Request, req orchestrator.TurnRequest) (resp orchestrator.TurnResponse) {
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Error("turn handling panicked",
				zap.Any("panic", rec),
				zap.String("session_id", req.SessionID))
			resp = orchestrator.TurnResponse{
				Response: "I'm sorry, something went wrong on our side. Please try again, or call us directly and our team will help you.",
			}
		}
	}()
	return s.orchestrator.HandleTurn(r.Context(), req)
}

// handleVoiceTurnSafe guards the voice pipeline the same way: a panic on a
// live call still produces a decision the telephony transport can act on.
func (s *Server) handleVoiceTurnSafe(r *http.Request, req orchestrator.TurnRequest) (decision models.AgentDecision) {
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Error("voice turn handling panicked",
				zap.Any("panic", rec),
				zap.String("session_id", req.SessionID))
			decision = models.AgentDecision{
				Action:     models.ActionTransferHuman,
				Response:   "I'm sorry, something went wrong on our side. Let me connect you with one of our team.",
				Reason:     "internal failure during call handling",
				TransferTo: models.TransferAdmissions,
			}
		}
	}()
	return s.orchestrator.HandleVoiceTurn(r.Context(), req)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]any{
		"error":    msg,
		"response": fmt.Sprintf("I'm sorry, I couldn't understand that request (%s).", msg),
	})
}
