package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/progresstwin/pkg/errors"
	"github.com/matzehuels/progresstwin/pkg/interact"
	"github.com/matzehuels/progresstwin/pkg/matrix"
	"github.com/matzehuels/progresstwin/pkg/pipeline"
	"github.com/matzehuels/progresstwin/pkg/roles"
	"github.com/matzehuels/progresstwin/pkg/synth"
)

// maxClickBody bounds a click request body.
const maxClickBody = 4 << 10

// sceneFormats are the scene encodings served over HTTP.
var sceneFormats = map[string]bool{
	pipeline.FormatJSON: true,
	pipeline.FormatSVG:  true,
	pipeline.FormatCBOR: true,
}

type structureSummary struct {
	ID       string                `json:"id"`
	Name     string                `json:"name,omitempty"`
	Family   matrix.Family         `json:"family"`
	Rows     int                   `json:"rows"`
	Progress map[matrix.Status]int `json:"progress"`
}

type rolesResponse struct {
	StructureID string             `json:"structure_id"`
	Family      matrix.Family      `json:"family"`
	Roles       roles.RoleMap      `json:"roles,omitempty"`
	Unresolved  []roles.Role       `json:"unresolved,omitempty"`
	Culvert     *synth.CulvertRefs `json:"culvert,omitempty"`
}

type clickRequest struct {
	PrimitiveID string `json:"primitive_id"`
}

type clickResponse struct {
	StructureID string           `json:"structure_id"`
	PrimitiveID string           `json:"primitive_id"`
	Target      *interact.Target `json:"target"`
}

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListStructures(w http.ResponseWriter, r *http.Request) {
	d, err := s.loadDataset(r.Context())
	if err != nil {
		s.writeErr(w, err)
		return
	}
	lang := s.language(r)

	out := make([]structureSummary, 0, len(d.Structures))
	for _, st := range d.Structures {
		out = append(out, structureSummary{
			ID:       st.ID,
			Name:     st.Name.Get(lang),
			Family:   st.Family,
			Rows:     len(d.RowsOf(st.ID)),
			Progress: d.StatusCounts(st.ID),
		})
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetScene(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if format == "" {
		format = pipeline.FormatJSON
	}
	if !sceneFormats[format] {
		s.writeErr(w, errors.New(errors.ErrCodeInvalidFormat, "invalid format %q (must be json, svg or cbor)", format))
		return
	}

	d, err := s.loadDataset(r.Context())
	if err != nil {
		s.writeErr(w, err)
		return
	}

	opts := s.pipelineOptions(r, d, id)
	opts.Formats = []string{format}
	opts.Legend = r.URL.Query().Has("legend")
	if format == pipeline.FormatSVG {
		opts.ClickURL = "/api/structures/" + id + "/click"
	}
	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeErr(w, err)
		return
	}

	w.Header().Set("Content-Type", pipeline.ContentType(format))
	if res.SceneHash != "" {
		w.Header().Set("ETag", `"`+res.SceneHash+`"`)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

func (s *Server) handleGetRoles(w http.ResponseWriter, r *http.Request) {
	d, err := s.loadDataset(r.Context())
	if err != nil {
		s.writeErr(w, err)
		return
	}
	id := chi.URLParam(r, "id")
	st, ok := d.Structure(id)
	if !ok {
		s.writeErr(w, errors.New(errors.ErrCodeStructureNotFound, "no structure %q", id))
		return
	}

	resp := rolesResponse{StructureID: st.ID, Family: st.Family}
	if st.Family == matrix.FamilyCulvert {
		refs := s.synth.Culvert
		resp.Culvert = &refs
	} else {
		resp.Roles = roles.Resolve(d.ColumnsOf(st.Family), s.synth.Rules)
		resp.Unresolved = resp.Roles.Unresolved(s.synth.Rules)
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleClick(w http.ResponseWriter, r *http.Request) {
	var req clickRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxClickBody))
	if err := dec.Decode(&req); err != nil {
		s.writeErr(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid click body"))
		return
	}
	if strings.TrimSpace(req.PrimitiveID) == "" {
		s.writeErr(w, errors.New(errors.ErrCodeInvalidInput, "primitive_id is required"))
		return
	}

	d, err := s.loadDataset(r.Context())
	if err != nil {
		s.writeErr(w, err)
		return
	}
	id := chi.URLParam(r, "id")
	sc, err := s.runner.Synthesize(r.Context(), d, s.pipelineOptions(r, d, id))
	if err != nil {
		s.writeErr(w, err)
		return
	}

	t, err := sc.Click(r.Context(), req.PrimitiveID, interact.NewDispatcher(s.clickHandler(id)))
	if err != nil {
		s.writeErr(w, err)
		return
	}
	s.logger.Info("click forwarded",
		"structure", id,
		"primitive", req.PrimitiveID,
		"row", t.RowID,
		"column", t.ColumnID)
	s.writeJSON(w, http.StatusAccepted, clickResponse{
		StructureID: id,
		PrimitiveID: req.PrimitiveID,
		Target:      t,
	})
}

func (s *Server) clickHandler(structureID string) interact.Handler {
	var pub interact.Handler
	if s.publisher != nil {
		pub = s.publisher.ForStructure(structureID).Handler()
	}
	return interact.Fanout(s.handler, pub)
}

func (s *Server) pipelineOptions(r *http.Request, d *matrix.Dataset, structureID string) pipeline.Options {
	synthOpts := s.synth
	synthOpts.Language = s.language(r)
	return pipeline.Options{
		Dataset:   d,
		Structure: structureID,
		Synth:     synthOpts,
		Logger:    s.logger,
	}
}

func (s *Server) language(r *http.Request) string {
	if lang := strings.TrimSpace(r.URL.Query().Get("lang")); lang != "" {
		return lang
	}
	return s.synth.Language
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("write response", "err", err)
	}
}

func (s *Server) writeErr(w http.ResponseWriter, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err, "request_id", w.Header().Get(RequestIDHeader))
	}
	code := string(errors.GetCode(err))
	if code == "" {
		code = string(errors.ErrCodeInternal)
	}
	s.writeJSON(w, status, errorResponse{
		Error:     errors.UserMessage(err),
		Code:      code,
		RequestID: w.Header().Get(RequestIDHeader),
	})
}
