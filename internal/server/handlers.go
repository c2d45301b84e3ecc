package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/jonathan/career-coach/internal/pipeline"
	"github.com/jonathan/career-coach/internal/session"
	"github.com/jonathan/career-coach/internal/types"
)

// maxImportBytes bounds the state-import request body
const maxImportBytes = 4 << 20

// handleGetProfile returns the stored profile
func (s *Server) handleGetProfile(w http.ResponseWriter, _ *http.Request) {
	profile, err := s.state.Profile()
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to load profile")
		return
	}
	if profile == nil {
		s.errorResponse(w, http.StatusNotFound, "no profile: onboarding not completed")
		return
	}
	s.jsonResponse(w, http.StatusOK, profile)
}

// handlePutProfile stores the profile (onboarding completion or explicit edit)
func (s *Server) handlePutProfile(w http.ResponseWriter, r *http.Request) {
	var profile types.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid profile body")
		return
	}
	if err := s.state.SetProfile(&profile); err != nil {
		s.errorResponse(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, profile)
}

// handleGetProgress returns progress counters
func (s *Server) handleGetProgress(w http.ResponseWriter, _ *http.Request) {
	progress, err := s.state.Progress()
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to load progress")
		return
	}
	s.jsonResponse(w, http.StatusOK, progress)
}

// handleGetRoadmap returns the stored roadmap, draft or active
func (s *Server) handleGetRoadmap(w http.ResponseWriter, _ *http.Request) {
	r, err := s.state.Roadmap()
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to load roadmap")
		return
	}
	if r == nil {
		s.errorResponse(w, http.StatusNotFound, "no roadmap generated yet")
		return
	}
	s.jsonResponse(w, http.StatusOK, r)
}

// generateResponse is the body returned by POST /roadmap/generate
type generateResponse struct {
	Roadmap *types.Roadmap           `json:"roadmap"`
	Events  []pipeline.ProgressEvent `json:"events"`
}

// handleGenerateRoadmap runs the generation pipeline for the stored profile
func (s *Server) handleGenerateRoadmap(w http.ResponseWriter, r *http.Request) {
	profile, err := s.state.Profile()
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to load profile")
		return
	}
	if profile == nil {
		s.errorResponse(w, http.StatusConflict, "no profile: onboarding not completed")
		return
	}

	// Collect stage events and return them with the result; the pipeline is
	// serialized internally, so concurrent requests get ErrRunInProgress.
	var events []pipeline.ProgressEvent
	roadmapResult, err := s.pipe.RunWithCallback(r.Context(), profile, func(e pipeline.ProgressEvent) {
		events = append(events, e)
	})
	if err != nil {
		if errors.Is(err, pipeline.ErrRunInProgress) {
			s.errorResponse(w, http.StatusConflict, "a generation run is already in progress")
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "generation failed")
		return
	}
	s.jsonResponse(w, http.StatusOK, generateResponse{Roadmap: roadmapResult, Events: events})
}

// handleConfirmRoadmap promotes the draft to active
func (s *Server) handleConfirmRoadmap(w http.ResponseWriter, _ *http.Request) {
	if err := s.pipe.Confirm(); err != nil {
		if errors.Is(err, pipeline.ErrNoDraft) {
			s.errorResponse(w, http.StatusConflict, "no roadmap draft to confirm")
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "failed to confirm roadmap")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "active"})
}

// chatRequest is the body of POST /chat
type chatRequest struct {
	Message string `json:"message"`
}

// handleChat submits one coach turn
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
		s.errorResponse(w, http.StatusBadRequest, "invalid chat body")
		return
	}

	reply, err := s.chat.Send(r.Context(), req.Message)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrBusy):
			s.errorResponse(w, http.StatusConflict, "a coach reply is already in flight")
		case errors.Is(err, session.ErrNoProfile):
			s.errorResponse(w, http.StatusConflict, "no profile: onboarding not completed")
		default:
			s.errorResponse(w, http.StatusInternalServerError, "chat failed")
		}
		return
	}
	s.jsonResponse(w, http.StatusOK, reply)
}

// handleGetConversation returns the full message log
func (s *Server) handleGetConversation(w http.ResponseWriter, _ *http.Request) {
	msgs, err := s.state.Conversation()
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to load conversation")
		return
	}
	s.jsonResponse(w, http.StatusOK, msgs)
}

// handleExportState returns the full state blob
func (s *Server) handleExportState(w http.ResponseWriter, _ *http.Request) {
	blob, err := s.state.ExportAll()
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to export state")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(blob)
}

// handleImportState restores a previously exported blob
func (s *Server) handleImportState(w http.ResponseWriter, r *http.Request) {
	blob, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "failed to read body")
		return
	}
	if err := s.state.ImportAll(blob); err != nil {
		s.errorResponse(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "imported"})
}

// handleResetState destroys all persisted state
func (s *Server) handleResetState(w http.ResponseWriter, _ *http.Request) {
	if err := s.state.Reset(); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to reset state")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "reset"})
}
