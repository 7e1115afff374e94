package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/goliatone/go-resumegen/pkg/controller"
	"github.com/goliatone/go-resumegen/pkg/fieldstore"
	"github.com/goliatone/go-resumegen/pkg/model"
	"github.com/goliatone/go-resumegen/pkg/notify"
	"github.com/goliatone/go-resumegen/pkg/orchestrator"
	"github.com/goliatone/go-resumegen/pkg/render"
	"github.com/goliatone/go-resumegen/pkg/renderers/vanilla"
	"github.com/goliatone/go-resumegen/pkg/reorder"
	"github.com/goliatone/go-resumegen/pkg/themes"
	"github.com/goliatone/go-resumegen/pkg/validation"
)

const maxJSONBody = 1 << 20

type fieldRequest struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

type formatRequest struct {
	Format string `json:"format"`
}

type reorderRequest struct {
	Dragged  string        `json:"dragged"`
	PointerY float64       `json:"pointerY"`
	Boxes    []reorder.Box `json:"boxes"`
}

type sectionResponse struct {
	controller.Update
	HTML string `json:"html"`
}

type errorResponse struct {
	Error string        `json:"error"`
	Toast *notify.Toast `json:"toast,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(validation.OpenAPIDocument())
}

func (s *Server) handleEditor(w http.ResponseWriter, r *http.Request) {
	format := s.ctrl.Format()
	preview, err := s.ctrl.Preview()
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	cfg, err := themes.ForFormat(s.selector, s.themeName, format)
	if err != nil {
		s.logger.Warn("server: theme unavailable", zap.String("theme", s.themeName), zap.Error(err))
		cfg = nil
	}
	page, err := s.editor.RenderEditor(vanilla.EditorPage{
		Title:     s.title,
		Personal:  s.ctrl.Snapshot().Personal,
		Instances: s.ctrl.Sections(),
		Format:    format,
		Preview:   preview,
		Feedback:  s.ctrl.Feedback(),
		Theme:     cfg,
	})
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	writeHTML(w, page)
}

// handlePreview renders the live preview, or the preview in another format
// when ?format= is given. The selected format is not changed.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("format")
	if raw == "" {
		preview, err := s.ctrl.Preview()
		if err != nil {
			s.fail(w, r, http.StatusInternalServerError, err)
			return
		}
		writeHTML(w, preview)
		return
	}
	format, err := model.ParseFormat(raw)
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}
	data := s.ctrl.Snapshot()
	out, err := s.generator.Generate(r.Context(), orchestrator.Request{
		Data:          &data,
		Renderer:      "vanilla",
		RenderOptions: render.RenderOptions{Format: format},
	})
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	writeHTML(w, string(out))
}

func (s *Server) handlePrint(w http.ResponseWriter, r *http.Request) {
	data := s.ctrl.Snapshot()
	printOpts := render.DefaultPrintOptions()
	if size := strings.TrimSpace(r.URL.Query().Get("size")); size != "" {
		printOpts.PageSize = size
	}
	out, err := s.generator.Generate(r.Context(), orchestrator.Request{
		Data:     &data,
		Renderer: "printable",
		RenderOptions: render.RenderOptions{
			Format: s.ctrl.Format(),
			Print:  printOpts,
		},
	})
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	writeHTML(w, string(out))
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	name, body, err := s.ctrl.ExportJSON()
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	_, _ = w.Write(body)
}

func (s *Server) handleSetField(w http.ResponseWriter, r *http.Request) {
	var req fieldRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}
	u, err := s.ctrl.SetField(req.ID, req.Value)
	if err != nil {
		s.fail(w, r, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleAddSection(w http.ResponseWriter, r *http.Request) {
	kind, err := model.ParseKind(chi.URLParam(r, "target"))
	if err != nil {
		s.fail(w, r, http.StatusNotFound, err)
		return
	}
	u, err := s.ctrl.AddSection(kind)
	if err != nil {
		s.fail(w, r, statusFor(err), err)
		return
	}
	html, err := s.editor.RenderInstance(*u.Section, u.Position, nil)
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusCreated, sectionResponse{Update: u, HTML: html})
}

func (s *Server) handleRemoveSection(w http.ResponseWriter, r *http.Request) {
	u, err := s.ctrl.RemoveSection(chi.URLParam(r, "target"))
	if err != nil {
		s.fail(w, r, statusFor(err), err)
		return
	}
	if kind, _, ok := model.ParseFieldsetID(u.Target); ok {
		u.Legends = s.ctrl.Legends(kind)
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleFormat(w http.ResponseWriter, r *http.Request) {
	var req formatRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}
	u, err := s.ctrl.SetFormat(model.Format(req.Format))
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleReorder(w http.ResponseWriter, r *http.Request) {
	kind, err := model.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		s.fail(w, r, http.StatusNotFound, err)
		return
	}
	var req reorderRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}
	u, err := s.ctrl.Reorder(kind, req.Dragged, req.PointerY, req.Boxes)
	if err != nil {
		s.fail(w, r, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	raw, err := s.readImport(w, r)
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}
	u, err := s.ctrl.Import(raw)
	if err != nil {
		s.logger.Info("server: import rejected", zap.Error(err))
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Toast: u.Toast})
		return
	}
	if !wantsJSON(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	u := s.ctrl.Clear()
	if !wantsJSON(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// readImport accepts either a raw JSON body or a multipart upload in the
// "file" field.
func (s *Server) readImport(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxImport)
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		return io.ReadAll(r.Body)
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("server: import upload: %w", err)
	}
	defer file.Close()
	return io.ReadAll(file)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("server: request failed", zap.String("path", r.URL.Path), zap.Error(err))
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, fieldstore.ErrUnknownField),
		errors.Is(err, fieldstore.ErrUnknownFieldset),
		errors.Is(err, model.ErrUnknownKind):
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("server: decode request: %w", err)
	}
	return nil
}

func wantsJSON(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return mediaType == "application/json"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeHTML(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	_, _ = io.WriteString(w, body)
}
