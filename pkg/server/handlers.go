package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/coolbeans/lawamend/pkg/lookup"
	"github.com/coolbeans/lawamend/pkg/render"
)

var contentTypes = map[render.Format]string{
	render.FormatText:     "text/plain; charset=utf-8",
	render.FormatMarkdown: "text/markdown; charset=utf-8",
	render.FormatHTML:     "text/html; charset=utf-8",
	render.FormatJSON:     "application/json",
	render.FormatDOCX:     "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

func (server *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok", "version": server.version})
}

// handleSearch runs a search. Query parameters: q (required), format.
func (server *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	format, ok := requestFormat(w, r)
	if !ok {
		return
	}
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	results, err := server.runner.Search(r.Context(), query)
	if err != nil {
		runnerError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := render.Search(&buf, format, render.SearchReport{Query: query, Results: results}); err != nil {
		jsonError(w, "failed to render results: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeRendered(w, format, "search", buf.Bytes())
}

// handleAmend drafts amendments. Query parameters: find (required), replace, format.
func (server *Server) handleAmend(w http.ResponseWriter, r *http.Request) {
	format, ok := requestFormat(w, r)
	if !ok {
		return
	}
	find := r.URL.Query().Get("find")
	replacement := r.URL.Query().Get("replace")

	amendments, err := server.runner.Amend(r.Context(), find, replacement)
	if err != nil {
		runnerError(w, r, err)
		return
	}

	var buf bytes.Buffer
	report := render.AmendReport{Find: find, Replace: replacement, Amendments: amendments}
	if err := render.Amendments(&buf, format, report); err != nil {
		jsonError(w, "failed to render amendments: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeRendered(w, format, "amendments", buf.Bytes())
}

// requestFormat reads the format parameter, defaulting to JSON.
func requestFormat(w http.ResponseWriter, r *http.Request) (render.Format, bool) {
	name := r.URL.Query().Get("format")
	if name == "" {
		return render.FormatJSON, true
	}
	format, err := render.ParseFormat(name)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return "", false
	}
	return format, true
}

func runnerError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, lookup.ErrEmptyQuery) {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	zerolog.Ctx(r.Context()).Error().Err(err).Msg("request failed")
	jsonError(w, err.Error(), http.StatusBadGateway)
}

func writeRendered(w http.ResponseWriter, format render.Format, name string, body []byte) {
	w.Header().Set("Content-Type", contentTypes[format])
	if format.Binary() {
		w.Header().Set("Content-Disposition", `attachment; filename="`+name+format.Extension()+`"`)
	}
	w.Write(body)
}

func jsonError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
