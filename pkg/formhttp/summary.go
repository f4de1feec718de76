package formhttp

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/records"
	"github.com/dmitrymomot/formkit/pkg/summary"
	"github.com/dmitrymomot/formkit/pkg/theme"
)

type summaryResponse struct {
	Form    string        `json:"form"`
	Title   string        `json:"title"`
	Records []form.Record `json:"records"`
	Message string        `json:"message,omitempty"`
}

type themeResponse struct {
	Mode  string `json:"mode"`
	Dark  bool   `json:"dark"`
	Label string `json:"label"`
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// bookFor resolves the {form} param to the visitor's record book.
func (s *Service) bookFor(r *http.Request) (string, *records.Book, error) {
	name := chi.URLParam(r, "form")
	schema, err := s.catalog.Lookup(name)
	if err != nil {
		return name, nil, err
	}
	store, err := s.visitorStore(r.Context())
	if err != nil {
		return name, nil, err
	}
	book, err := records.ForSchema(store, schema)
	return name, book, err
}

func (s *Service) getSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name, book, err := s.bookFor(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	list, err := book.List(ctx)
	if err != nil {
		s.writeError(w, r, fmt.Errorf("load %s records: %w", name, err))
		return
	}
	sum := summary.FromRecords(name, list)

	if wantsJSON(r) {
		resp := summaryResponse{Form: name, Title: sum.Title, Records: list}
		if resp.Records == nil {
			resp.Records = []form.Record{}
		}
		if sum.IsEmpty() {
			resp.Message = summary.EmptyMessage
		}
		writeJSON(w, http.StatusOK, resp)
		return
	}

	store, err := s.visitorStore(ctx)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	mode, err := theme.Load(ctx, store)
	if err != nil {
		s.log.WarnContext(ctx, "theme unavailable", logger.Error(err))
	}

	page := summary.PageData{
		Summary:        sum,
		Theme:          mode,
		ThemeToggleURL: "/theme/toggle",
		ClearURL:       "/summary/" + name,
		ScriptSrc:      s.cfg.DatastarScript,
	}
	if n := len(list); n > 0 {
		qr, err := summary.RecordQRCode(list[n-1], s.cfg.QRCodeSize)
		if err != nil {
			s.log.WarnContext(ctx, "summary qr code skipped", logger.Form(name), logger.Error(err))
		}
		page.QRCode = qr
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := summary.Page(page).Render(ctx, w); err != nil {
		s.log.ErrorContext(ctx, "summary render failed", logger.Form(name), logger.Error(err))
	}
}

func (s *Service) clearSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name, book, err := s.bookFor(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := book.Clear(ctx); err != nil {
		s.writeError(w, r, fmt.Errorf("clear %s records: %w", name, err))
		return
	}

	s.log.InfoContext(ctx, "form records cleared", logger.Form(name), logger.StorageKey(book.Key()))

	if IsDataStar(r) {
		sse := datastar.NewSSE(w, r)
		if err := sse.PatchElementTempl(summary.Table(summary.FromRecords(name, nil))); err != nil {
			s.log.WarnContext(ctx, "datastar patch failed", logger.Error(err))
		}
		if err := sse.PatchElements("", datastar.WithSelector("#clearStorage"), datastar.WithMode(datastar.ElementPatchModeRemove)); err != nil {
			s.log.WarnContext(ctx, "datastar patch failed", logger.Error(err))
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func themeView(m theme.Mode) themeResponse {
	return themeResponse{Mode: m.String(), Dark: m.IsDark(), Label: m.ButtonLabel()}
}

func (s *Service) getTheme(w http.ResponseWriter, r *http.Request) {
	store, err := s.visitorStore(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	mode, err := theme.Load(r.Context(), store)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, themeView(mode))
}

func (s *Service) toggleTheme(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	store, err := s.visitorStore(ctx)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	mode, err := theme.Toggle(ctx, store)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if !IsDataStar(r) {
		writeJSON(w, http.StatusOK, themeView(mode))
		return
	}

	sse := datastar.NewSSE(w, r)
	if err := sse.MarshalAndPatchSignals(map[string]any{"dark": mode.IsDark()}); err != nil {
		s.log.WarnContext(ctx, "datastar signal patch failed", logger.Error(err))
		return
	}
	script := fmt.Sprintf(
		"document.body.classList.toggle('dark', %t);document.querySelectorAll('[data-theme-toggle]').forEach(b => b.textContent = %q)",
		mode.IsDark(), mode.ButtonLabel(),
	)
	if err := sse.ExecuteScript(script); err != nil {
		s.log.WarnContext(ctx, "datastar script failed", logger.Error(err))
	}
}
