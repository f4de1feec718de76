package formhttp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/kvstore"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/records"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

const maxBodyBytes = 1 << 20

type fieldView struct {
	Name    string `json:"name"`
	Label   string `json:"label"`
	Value   string `json:"value,omitempty"`
	Error   string `json:"error,omitempty"`
	Touched bool   `json:"touched"`
}

type sessionView struct {
	ID     string      `json:"id"`
	Form   string      `json:"form"`
	Fields []fieldView `json:"fields"`
	Valid  bool        `json:"valid"`
}

type setFieldRequest struct {
	Value *string `json:"value"`
}

type setFieldResponse struct {
	Changed []fieldView `json:"changed"`
	Valid   bool        `json:"valid"`
}

type submitResponse struct {
	Record          form.Record `json:"record"`
	Redirect        string      `json:"redirect"`
	RedirectAfterMs int64       `json:"redirect_after_ms"`
}

type rejectedResponse struct {
	Invalid []string          `json:"invalid"`
	Errors  map[string]string `json:"errors"`
}

// fieldViewOf shows an error only once the field has been touched. Secret
// values never leave the server.
func fieldViewOf(f form.Field, st form.FieldState) fieldView {
	v := fieldView{
		Name:    f.Name,
		Label:   f.DisplayLabel(),
		Touched: st.Touched,
	}
	if !f.Secret {
		v.Value = st.RawValue
	}
	if st.Visible() {
		v.Error = st.Message()
	}
	return v
}

func viewOf(ls *liveSession) sessionView {
	view := sessionView{ID: ls.id, Form: ls.form, Valid: ls.session.IsAllValid()}
	for _, f := range ls.schema.Fields() {
		st, _ := ls.session.State(f.Name)
		view.Fields = append(view.Fields, fieldViewOf(f, st))
	}
	return view
}

// changedViews returns the edited field plus every field whose outcome
// changed, in definition order. The edited field is always included: its
// error becomes visible on first touch even when the outcome is unchanged.
func changedViews(ls *liveSession, edited string, changed []string) []fieldView {
	include := make(map[string]bool, len(changed)+1)
	include[edited] = true
	for _, name := range changed {
		include[name] = true
	}

	views := make([]fieldView, 0, len(include))
	for _, f := range ls.schema.Fields() {
		if !include[f.Name] {
			continue
		}
		st, _ := ls.session.State(f.Name)
		views = append(views, fieldViewOf(f, st))
	}
	return views
}

// lookupSession resolves the {id} route param. Sessions of other visitors are
// reported as unknown.
func (s *Service) lookupSession(r *http.Request) (*liveSession, error) {
	id := chi.URLParam(r, "id")
	ls, ok := s.sessions.get(id)
	if !ok || ls.visitor != VisitorFromContext(r.Context()) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSession, id)
	}
	return ls, nil
}

func (s *Service) listForms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"forms": s.catalog.Names()})
}

func (s *Service) createSession(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "form")
	schema, err := s.catalog.Lookup(name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	ls := &liveSession{
		id:      uuid.NewString(),
		form:    name,
		visitor: VisitorFromContext(r.Context()),
		schema:  schema,
		session: schema.NewSession(),
	}
	s.sessions.put(ls)

	s.log.InfoContext(r.Context(), "form session started", logger.Form(name), logger.SessionID(ls.id))
	writeJSON(w, http.StatusCreated, viewOf(ls))
}

func (s *Service) getSession(w http.ResponseWriter, r *http.Request) {
	ls, err := s.lookupSession(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	ls.mu.Lock()
	view := viewOf(ls)
	ls.mu.Unlock()

	writeJSON(w, http.StatusOK, view)
}

func (s *Service) deleteSession(w http.ResponseWriter, r *http.Request) {
	ls, err := s.lookupSession(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.sessions.remove(ls.id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) readValue(w http.ResponseWriter, r *http.Request, field string) (string, error) {
	if IsDataStar(r) {
		return readSignalValue(r, field)
	}

	var req setFieldRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	if req.Value == nil {
		return "", fmt.Errorf("%w: value is required", ErrBadRequest)
	}
	return *req.Value, nil
}

func (s *Service) setField(w http.ResponseWriter, r *http.Request) {
	ls, err := s.lookupSession(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	field := chi.URLParam(r, "field")
	if _, ok := ls.schema.Field(field); !ok {
		s.writeError(w, r, fmt.Errorf("%w: %q", form.ErrUnknownField, field))
		return
	}

	value, err := s.readValue(w, r, field)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	ls.mu.Lock()
	changed, err := ls.session.SetValue(field, value)
	resp := setFieldResponse{Valid: ls.session.IsAllValid()}
	if err == nil {
		resp.Changed = changedViews(ls, field, changed)
	}
	ls.mu.Unlock()

	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.log.DebugContext(r.Context(), "form field updated",
		logger.SessionID(ls.id),
		logger.Field(field),
		logger.Fields(changed),
	)

	if IsDataStar(r) {
		sse := datastar.NewSSE(w, r)
		if err := patchErrors(sse, resp.Changed); err != nil {
			s.log.WarnContext(r.Context(), "datastar patch failed", logger.Error(err))
			return
		}
		if err := sse.MarshalAndPatchSignals(map[string]any{"valid": resp.Valid}); err != nil {
			s.log.WarnContext(r.Context(), "datastar signal patch failed", logger.Error(err))
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Service) submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ls, err := s.lookupSession(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	// The session leaves the registry under its own lock, so of two racing
	// submits only the first gets to persist.
	ls.mu.Lock()
	rec, err := ls.session.TrySubmit()
	if err == nil && !s.sessions.remove(ls.id) {
		err = fmt.Errorf("%w: %q", ErrUnknownSession, ls.id)
	}
	ls.mu.Unlock()

	if errors.Is(err, form.ErrSubmissionRejected) {
		s.rejectSubmission(w, r, ls, err)
		return
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	book, err := s.save(ctx, ls, rec)
	if err != nil {
		s.sessions.put(ls)
		s.writeError(w, r, fmt.Errorf("save %s record: %w", ls.form, err))
		return
	}

	s.log.InfoContext(ctx, "form submitted",
		logger.Form(ls.form),
		logger.SessionID(ls.id),
		logger.StorageKey(book.Key()),
	)

	redirect := "/summary/" + ls.form
	if !IsDataStar(r) {
		writeJSON(w, http.StatusOK, submitResponse{
			Record:          rec,
			Redirect:        redirect,
			RedirectAfterMs: s.cfg.RedirectDelay.Milliseconds(),
		})
		return
	}

	sse := datastar.NewSSE(w, r)
	if err := sse.MarshalAndPatchSignals(map[string]any{"valid": true, "submitted": true}); err != nil {
		s.log.WarnContext(ctx, "datastar signal patch failed", logger.Error(err))
		return
	}
	if s.cfg.RedirectDelay > 0 {
		timer := time.NewTimer(s.cfg.RedirectDelay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}
	}
	if err := sse.Redirect(redirect); err != nil {
		s.log.WarnContext(ctx, "datastar redirect failed", logger.Error(err))
	}
}

// rejectSubmission reports every offending field, touched or not.
// save persists an accepted record in the visitor's namespace. Saves to the
// same visitor key are serialized, which keeps appends intact on stores
// without an atomic update.
func (s *Service) save(ctx context.Context, ls *liveSession, rec form.Record) (*records.Book, error) {
	store, err := s.visitorStore(ctx)
	if err != nil {
		return nil, err
	}
	book, err := records.ForSchema(store, ls.schema)
	if err != nil {
		return nil, err
	}

	unlock := s.saves.lock(ls.visitor + kvstore.PrefixSeparator + book.Key())
	defer unlock()

	if err := book.Save(ctx, rec); err != nil {
		return nil, err
	}
	return book, nil
}

func (s *Service) rejectSubmission(w http.ResponseWriter, r *http.Request, ls *liveSession, err error) {
	resp := rejectedResponse{
		Invalid: form.InvalidFields(err),
		Errors:  make(map[string]string),
	}
	for _, failure := range validator.ExtractValidationErrors(err) {
		if _, ok := resp.Errors[failure.Field]; !ok {
			resp.Errors[failure.Field] = failure.Message
		}
	}

	s.log.InfoContext(r.Context(), "form submission rejected",
		logger.Form(ls.form),
		logger.SessionID(ls.id),
		logger.Fields(resp.Invalid),
	)

	if !IsDataStar(r) {
		writeJSON(w, http.StatusUnprocessableEntity, resp)
		return
	}

	views := make([]fieldView, 0, len(resp.Invalid))
	for _, name := range resp.Invalid {
		views = append(views, fieldView{Name: name, Error: resp.Errors[name]})
	}
	sse := datastar.NewSSE(w, r)
	if err := patchErrors(sse, views); err != nil {
		s.log.WarnContext(r.Context(), "datastar patch failed", logger.Error(err))
		return
	}
	if err := sse.MarshalAndPatchSignals(map[string]any{"valid": false}); err != nil {
		s.log.WarnContext(r.Context(), "datastar signal patch failed", logger.Error(err))
	}
}
