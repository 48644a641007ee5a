package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/arinjayjha/calc-research-agent/internal/history"
)

type queryRequest struct {
	Query string `json:"query"`
}

type statusResponse struct {
	AzureDeployment string `json:"azure_deployment"`
	TavilyKeySet    bool   `json:"tavily_key_set"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "query must not be empty"})
		return
	}

	resp := s.answerer.AnswerQuery(r.Context(), query)
	entry := s.history.Append(query, resp)

	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleHistoryList(w http.ResponseWriter, r *http.Request) {
	entries := s.history.List()
	if entries == nil {
		entries = []history.Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleHistoryClear(w http.ResponseWriter, r *http.Request) {
	s.history.Clear()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHistoryExport(w http.ResponseWriter, r *http.Request) {
	data, err := s.history.ExportJSON()
	if err != nil {
		s.logger.Error("history export failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "export failed"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="agent_history.json"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{
		AzureDeployment: s.deployment,
		TavilyKeySet:    s.searchConfigured,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
