package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/progresstwin/pkg/interact"
	"github.com/matzehuels/progresstwin/pkg/matrix"
	"github.com/matzehuels/progresstwin/pkg/pipeline"
	"github.com/matzehuels/progresstwin/pkg/scene"
	"github.com/matzehuels/progresstwin/pkg/source"
)

type click struct {
	row, column string
	cell        matrix.Cell
}

type recordingPublisher struct {
	messages [][]byte
}

func (p *recordingPublisher) Publish(ctx context.Context, channel string, message any) *redis.IntCmd {
	data, _ := message.([]byte)
	p.messages = append(p.messages, data)
	cmd := redis.NewIntCmd(ctx, "publish", channel, message)
	cmd.SetVal(1)
	return cmd
}

func newTestServer(t *testing.T) (*Server, *[]click, *matrix.Dataset) {
	t.Helper()
	d, err := source.Load(context.Background(), "../source/testdata/dataset.json")
	if err != nil {
		t.Fatalf("load dataset: %v", err)
	}
	var clicks []click
	srv := New(Options{
		Runner:  pipeline.NewRunner(nil, nil, nil),
		Dataset: d,
		Handler: func(rowID, columnID string, cell matrix.Cell) {
			clicks = append(clicks, click{rowID, columnID, cell})
		},
	})
	return srv, &clicks, d
}

func do(t *testing.T, h http.Handler, method, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func synthesize(t *testing.T, d *matrix.Dataset, id string) *scene.Scene {
	t.Helper()
	sc, err := pipeline.NewRunner(nil, nil, nil).Synthesize(context.Background(), d, pipeline.Options{Structure: id})
	if err != nil {
		t.Fatal(err)
	}
	return sc
}

func TestHealth(t *testing.T) {
	srv, _, _ := newTestServer(t)
	rec := do(t, srv, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Header().Get(RequestIDHeader) == "" {
		t.Error("missing request id")
	}
}

func TestRequestIDReused(t *testing.T) {
	srv, _, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "0b9f6c1e-5d7a-4c3e-9f0e-2a6b8d4c1f00")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got != "0b9f6c1e-5d7a-4c3e-9f0e-2a6b8d4c1f00" {
		t.Errorf("request id = %q", got)
	}

	req.Header.Set(RequestIDHeader, "not-a-uuid")
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got == "not-a-uuid" || got == "" {
		t.Errorf("malformed id should be replaced, got %q", got)
	}
}

func TestListStructures(t *testing.T) {
	srv, _, _ := newTestServer(t)
	rec := do(t, srv, http.MethodGet, "/api/structures", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	var out []structureSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d structures, want 2", len(out))
	}
	if out[0].ID != "K-101" || out[0].Rows != 5 {
		t.Errorf("first structure = %+v", out[0])
	}
}

func TestGetScene(t *testing.T) {
	srv, _, _ := newTestServer(t)

	tests := []struct {
		name        string
		path        string
		status      int
		contentType string
	}{
		{"json default", "/api/structures/K-101/scene", http.StatusOK, "application/json"},
		{"svg", "/api/structures/K-101/scene?format=svg&lang=tr", http.StatusOK, "image/svg+xml"},
		{"cbor", "/api/structures/M-7/scene?format=cbor", http.StatusOK, "application/cbor"},
		{"bad format", "/api/structures/K-101/scene?format=gif", http.StatusBadRequest, "application/json"},
		{"bad language", "/api/structures/K-101/scene?lang=e_n", http.StatusBadRequest, "application/json"},
		{"unknown structure", "/api/structures/X-9/scene", http.StatusNotFound, "application/json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, srv, http.MethodGet, tt.path, nil)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.status, rec.Body)
			}
			if ct := rec.Header().Get("Content-Type"); ct != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", ct, tt.contentType)
			}
		})
	}
}

func TestGetSceneSVGPostsClicksBack(t *testing.T) {
	srv, _, _ := newTestServer(t)
	rec := do(t, srv, http.MethodGet, "/api/structures/K-101/scene?format=svg", nil)
	if !strings.Contains(rec.Body.String(), `/api/structures/K-101/click`) {
		t.Error("svg should carry the click URL")
	}
}

func TestGetRoles(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := do(t, srv, http.MethodGet, "/api/structures/K-101/roles", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	var bridge rolesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &bridge); err != nil {
		t.Fatal(err)
	}
	if len(bridge.Roles) == 0 || bridge.Culvert != nil {
		t.Errorf("bridge response = %+v", bridge)
	}

	rec = do(t, srv, http.MethodGet, "/api/structures/M-7/roles", nil)
	var culvert rolesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &culvert); err != nil {
		t.Fatal(err)
	}
	if culvert.Culvert == nil || len(culvert.Roles) != 0 {
		t.Errorf("culvert response = %+v", culvert)
	}
}

func TestClick(t *testing.T) {
	srv, clicks, d := newTestServer(t)
	sc := synthesize(t, d, "K-101")

	var live, inert string
	for _, p := range sc.Primitives {
		if p.Clickable() && live == "" {
			live = p.ID
		}
		if !p.Clickable() && inert == "" {
			inert = p.ID
		}
	}
	if live == "" || inert == "" {
		t.Fatal("scene needs clickable and inert primitives")
	}

	body, _ := json.Marshal(clickRequest{PrimitiveID: live})
	rec := do(t, srv, http.MethodPost, "/api/structures/K-101/click", body)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	if len(*clicks) != 1 {
		t.Fatalf("handler called %d times, want 1", len(*clicks))
	}
	p, _ := sc.Primitive(live)
	if got := (*clicks)[0]; got.row != p.Target.RowID || got.column != p.Target.ColumnID {
		t.Errorf("forwarded %+v, want %+v", got, p.Target)
	}
	var resp clickResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Target == nil || resp.Target.RowID != p.Target.RowID {
		t.Errorf("response target = %+v", resp.Target)
	}

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"inert", `{"primitive_id":"` + inert + `"}`, http.StatusConflict},
		{"unknown", `{"primitive_id":"nope/0"}`, http.StatusNotFound},
		{"empty id", `{"primitive_id":""}`, http.StatusBadRequest},
		{"malformed", `{`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, srv, http.MethodPost, "/api/structures/K-101/click", []byte(tt.body))
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d: %s", rec.Code, tt.status, rec.Body)
			}
		})
	}
	if len(*clicks) != 1 {
		t.Errorf("rejected clicks must not reach the handler, got %d calls", len(*clicks))
	}
}

func TestClickPublishes(t *testing.T) {
	d, err := source.Load(context.Background(), "../source/testdata/dataset.json")
	if err != nil {
		t.Fatal(err)
	}
	pub := &recordingPublisher{}
	srv := New(Options{
		Dataset:   d,
		Publisher: interact.NewRedisPublisher(pub, "", nil),
	})
	sc := synthesize(t, d, "M-7")
	var id string
	for _, p := range sc.Clickable() {
		id = p.ID
		break
	}

	rec := do(t, srv, http.MethodPost, "/api/structures/M-7/click", []byte(`{"primitive_id":"`+id+`"}`))
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	if len(pub.messages) != 1 {
		t.Fatalf("published %d messages, want 1", len(pub.messages))
	}
	var ev interact.Event
	if err := json.Unmarshal(pub.messages[0], &ev); err != nil {
		t.Fatal(err)
	}
	if ev.StructureID != "M-7" || ev.ID == "" {
		t.Errorf("event = %+v", ev)
	}
}
