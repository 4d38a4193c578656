// Package server exposes the translator over HTTP. The handler layer is a
// thin wrapper: it decodes the request, runs one translation call, and
// encodes the outcome; all the work happens in the translator package.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Kashinulala/j2py/pkg/config"
	"github.com/Kashinulala/j2py/pkg/diag"
	"github.com/Kashinulala/j2py/pkg/translator"
)

// TranslateRequest is the body of POST /translate.
type TranslateRequest struct {
	Code string `json:"code"`
}

// TranslateResponse wraps a translation outcome for the wire.
type TranslateResponse struct {
	Success        bool              `json:"success"`
	Message        string            `json:"message"`
	Errors         []diag.Diagnostic `json:"errors"`
	Warnings       []diag.Diagnostic `json:"warnings,omitempty"`
	TranslatedCode string            `json:"translatedCode"`
}

type Server struct {
	cfg  *config.Config
	mux  *http.ServeMux
	addr string
}

func NewServer(addr string, cfg *config.Config) *Server {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	s := &Server{cfg: cfg, addr: addr, mux: http.NewServeMux()}
	s.mux.HandleFunc("/translate", s.handleTranslate)
	s.mux.HandleFunc("/healthz", s.handleHealth)
	return s
}

// Handler returns the route table; the tests drive it through
// httptest without opening a port.
func (s *Server) Handler() http.Handler { return s.mux }

// ListenAndServe blocks serving requests on the configured address.
func (s *Server) ListenAndServe() error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv.ListenAndServe()
}

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req TranslateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, TranslateResponse{
			Message: fmt.Sprintf("invalid request body: %v", err),
			Errors:  []diag.Diagnostic{},
		})
		return
	}

	res := translator.Translate(req.Code, s.cfg)
	resp := TranslateResponse{
		Errors:   res.Diagnostics.Errors(),
		Warnings: res.Diagnostics.Warnings(),
	}
	if resp.Errors == nil {
		resp.Errors = []diag.Diagnostic{}
	}
	if res.Diagnostics.HasErrors() {
		resp.Message = fmt.Sprintf("translation failed with %d error(s)", len(resp.Errors))
		writeJSON(w, http.StatusOK, resp)
		return
	}
	resp.Success = true
	resp.Message = "translation successful"
	resp.TranslatedCode = res.Code
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
