package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/etnz/wealthdash"
	"github.com/etnz/wealthdash/date"
	"github.com/etnz/wealthdash/renderer"
	"github.com/go-chi/chi/v5"
	"github.com/patrickmn/go-cache"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.Table))

var page = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 0.2em 0.6em; }
td { font-variant-numeric: tabular-nums; }
</style>
</head>
<body>
{{.Body}}
</body>
</html>
`))

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	status := map[string]any{"loaded": s.dashboard != nil}
	if s.dashboard != nil {
		status["fingerprint"] = s.fingerprint
		status["loadedAt"] = s.loadedAt.Format(time.RFC3339)
	}
	s.mu.RUnlock()
	s.writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleSnapshots(w http.ResponseWriter, r *http.Request) {
	d, ok := s.dashboardOrError(w)
	if !ok {
		return
	}
	if r.URL.Query().Get("weekdays") == "1" {
		s.writeJSON(w, http.StatusOK, d.Weekdays)
		return
	}
	s.writeJSON(w, http.StatusOK, d.Snapshots)
}

func (s *Server) handleChanges(w http.ResponseWriter, r *http.Request) {
	period, err := periodParam(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	d, ok := s.dashboardOrError(w)
	if !ok {
		return
	}
	type change struct {
		Period string           `json:"period"`
		From   date.Date        `json:"from"`
		To     date.Date        `json:"to"`
		PnL    wealthdash.Money `json:"pnl"`
		Change wealthdash.Money `json:"change"`
	}
	res := []change{}
	for _, c := range d.Changes(period) {
		res = append(res, change{
			Period: c.Range.Identifier(),
			From:   c.Range.From,
			To:     c.Range.To,
			PnL:    c.End.PnL(),
			Change: c.Change(),
		})
	}
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleRealized(w http.ResponseWriter, r *http.Request) {
	from, err := fromParam(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	d, ok := s.dashboardOrError(w)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, d.Realized(from))
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	from, err := fromParam(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	d, ok := s.dashboardOrError(w)
	if !ok {
		return
	}
	summary := wealthdash.Summarize(d.Realized(from))
	s.writeJSON(w, http.StatusOK, map[string]any{
		"summary": summary,
		"winRate": summary.WinRate(),
	})
}

func (s *Server) handleHoldings(w http.ResponseWriter, r *http.Request) {
	if d, ok := s.dashboardOrError(w); ok {
		s.writeJSON(w, http.StatusOK, d.Holdings)
	}
}

func (s *Server) handleCashFlows(w http.ResponseWriter, r *http.Request) {
	if d, ok := s.dashboardOrError(w); ok {
		s.writeJSON(w, http.StatusOK, d.CashFlows)
	}
}

func (s *Server) handleRates(w http.ResponseWriter, r *http.Request) {
	if d, ok := s.dashboardOrError(w); ok {
		s.writeJSON(w, http.StatusOK, d.Rates)
	}
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if err := s.Reload(r.Context()); err != nil {
		s.log.Error().Err(err).Msg("reload failed")
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.handleHealth(w, r)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	from, err := fromParam(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	period, err := periodParam(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	params := renderer.Params{From: from, Period: period, Weekdays: r.URL.Query().Get("weekdays") == "1"}

	d, fingerprint, err := s.current()
	if err != nil {
		s.writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	key := fmt.Sprintf("%s/report/%s?%s", fingerprint, name, r.URL.Query().Encode())
	if cached, ok := s.cache.Get(key); ok {
		s.writeHTML(w, cached.([]byte))
		return
	}

	md, err := renderer.Render(name, d, params)
	if err != nil {
		s.writeError(w, http.StatusNotFound, err.Error())
		return
	}
	var body bytes.Buffer
	if err := markdown.Convert([]byte(md), &body); err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	var html bytes.Buffer
	if err := page.Execute(&html, map[string]any{"Title": name, "Body": template.HTML(body.String())}); err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.cache.Set(key, html.Bytes(), cache.DefaultExpiration)
	s.writeHTML(w, html.Bytes())
}

// dashboardOrError returns the current dashboard or writes a 503.
func (s *Server) dashboardOrError(w http.ResponseWriter) (*wealthdash.Dashboard, bool) {
	d, _, err := s.current()
	if err != nil {
		s.writeError(w, http.StatusServiceUnavailable, err.Error())
		return nil, false
	}
	return d, true
}

func fromParam(r *http.Request) (date.Date, error) {
	v := r.URL.Query().Get("from")
	if v == "" {
		return date.Date{}, nil
	}
	return date.Parse(v)
}

func periodParam(r *http.Request) (date.Period, error) {
	v := r.URL.Query().Get("period")
	if v == "" {
		return date.Monthly, nil
	}
	return date.ParsePeriod(v)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("failed to encode JSON response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

func (s *Server) writeHTML(w http.ResponseWriter, content []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(content)
}
