package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/joaopedroldavid-del/finsightai-api/internal/models"
)

const apiVersion = "1.0.0"

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("encode response")
	}
}

// errorBody mirrors the {"detail": ...} error shape clients already parse.
func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	resp, err := s.svc.ProcessMessage(r.Context(), &req)
	if err != nil {
		log.Error().Err(err).Str("agent", string(req.AgentType)).Msg("chat processing failed")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetConversation(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	conv, err := s.svc.GetConversationHistory(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Str("conversation_id", id).Msg("conversation lookup failed")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, conv)
}

func (s *Server) handleCreateConversation(w http.ResponseWriter, r *http.Request) {
	var body struct {
		UserID string `json:"user_id"`
	}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&body)
	}

	id, err := s.svc.CreateConversation(r.Context(), body.UserID)
	if err != nil {
		log.Error().Err(err).Msg("create conversation failed")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"conversation_id": id,
		"created_at":      time.Now().UTC(),
	})
}

func (s *Server) handleAgentStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.GetAgentStatus())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"service":   s.cfg.AppName,
		"version":   apiVersion,
		"timestamp": time.Now().UTC(),
	})
}

func (s *Server) handleAgentsHealth(w http.ResponseWriter, r *http.Request) {
	agents := map[string]bool{}
	allReady := true
	for _, st := range s.svc.GetAgentStatus() {
		agents[string(st.AgentType)] = st.IsAvailable
		if !st.IsAvailable {
			allReady = false
		}
	}
	status := "healthy"
	if !allReady {
		status = "degraded"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    status,
		"agents":    agents,
		"timestamp": time.Now().UTC(),
	})
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Welcome to " + s.cfg.AppName,
		"version": apiVersion,
		"health":  "/health/",
		"info":    "/info",
	})
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":        s.cfg.AppName,
		"version":     apiVersion,
		"description": "AI-powered financial analysis API",
		"agents":      s.svc.AgentTypes(),
		"endpoints": map[string]string{
			"chat":          "/api/v1/agents/chat",
			"conversations": "/api/v1/agents/conversations",
			"status":        "/api/v1/agents/status",
			"health":        "/health/",
		},
	})
}
