package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/alexanderramin/punchclock/internal/export"
	"github.com/go-chi/chi/v5"
)

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.deps.Users.List(r.Context())
	if err != nil {
		s.handleServiceError(w, r, err)
		return
	}
	out := make([]userJSON, 0, len(users))
	for _, u := range users {
		out = append(out, toUserJSON(u))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) registerUser(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	u, err := s.deps.Users.Register(r.Context(), req.Name, req.Email)
	if err != nil {
		s.handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toUserJSON(u))
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Users.Delete(r.Context(), chi.URLParam(r, "userID")); err != nil {
		s.handleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) punchIn(w http.ResponseWriter, r *http.Request) {
	e, err := s.deps.Attendance.PunchIn(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		s.handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toLogJSON(e, s.now().Location()))
}

func (s *Server) punchOutOpen(w http.ResponseWriter, r *http.Request) {
	e, err := s.deps.Attendance.PunchOutOpen(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		s.handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toLogJSON(e, s.now().Location()))
}

func (s *Server) listToday(w http.ResponseWriter, r *http.Request) {
	entries, err := s.deps.Attendance.ListToday(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		s.handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toLogsJSON(entries, s.now().Location()))
}

func (s *Server) listLogs(w http.ResponseWriter, r *http.Request) {
	entries, err := s.deps.Attendance.ListAll(r.Context())
	if err != nil {
		s.handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toLogsJSON(entries, s.now().Location()))
}

func (s *Server) punchOut(w http.ResponseWriter, r *http.Request) {
	e, err := s.deps.Attendance.PunchOut(r.Context(), chi.URLParam(r, "logID"))
	if err != nil {
		s.handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toLogJSON(e, s.now().Location()))
}

func (s *Server) setBreak(w http.ResponseWriter, r *http.Request) {
	var req breakRequest
	if !decodeBody(w, r, &req) {
		return
	}
	minutes, err := req.BreakTime.minutes()
	if err != nil {
		s.handleServiceError(w, r, err)
		return
	}
	if minutes == nil {
		writeError(w, http.StatusBadRequest, "invalid_break_time", "breakTime is required")
		return
	}
	e, err := s.deps.Attendance.SetBreakTime(r.Context(), chi.URLParam(r, "logID"), *minutes)
	if err != nil {
		s.handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toLogJSON(e, s.now().Location()))
}

func (s *Server) editLog(w http.ResponseWriter, r *http.Request) {
	var req editRequest
	if !decodeBody(w, r, &req) {
		return
	}
	loc := s.now().Location()
	patch, err := req.patch(loc)
	if err != nil {
		s.handleServiceError(w, r, err)
		return
	}
	e, err := s.deps.Attendance.AdminEdit(r.Context(), chi.URLParam(r, "logID"), patch)
	if err != nil {
		s.handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toLogJSON(e, loc))
}

func (s *Server) deleteLog(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Attendance.Delete(r.Context(), chi.URLParam(r, "logID")); err != nil {
		s.handleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) summary(w http.ResponseWriter, r *http.Request) {
	sum, err := s.deps.Summary.Summary(r.Context(), strings.TrimSpace(r.URL.Query().Get("user")))
	if err != nil {
		s.handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSummaryJSON(sum))
}

func (s *Server) exportCSV(w http.ResponseWriter, r *http.Request) {
	rows, err := s.deps.Export.Rows(r.Context())
	if err != nil {
		s.handleServiceError(w, r, err)
		return
	}
	name := export.FileName(s.deps.ExportPrefix, domain.DayOf(s.now()))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	if err := export.WriteCSV(w, rows); err != nil {
		s.logger.ErrorContext(r.Context(), "writing export", "error", err.Error())
	}
}

// decodeBody parses a JSON body into v, writing a 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "request body must be valid JSON")
		return false
	}
	return true
}
