package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	contractx "github.com/al-jwarizmi/mongodb-agents/agent/contract"
	routerx "github.com/al-jwarizmi/mongodb-agents/agent/router"
	sessionx "github.com/al-jwarizmi/mongodb-agents/agent/session"
)

type fakeModel struct {
	responses []contractx.CompletionResponse
	idx       int
}

func (f *fakeModel) Complete(context.Context, contractx.CompletionRequest) (contractx.CompletionResponse, error) {
	if f.idx >= len(f.responses) {
		return contractx.CompletionResponse{}, errors.New("no fake response left")
	}
	resp := f.responses[f.idx]
	f.idx++
	return resp, nil
}

type fakeStore struct {
	products []contractx.Product
}

func (f *fakeStore) ProductByID(_ context.Context, id string) (*contractx.Product, error) {
	for i, p := range f.products {
		if p.ID == id {
			return &f.products[i], nil
		}
	}
	return nil, fmt.Errorf("%w: id %q", contractx.ErrProductNotFound, id)
}

func (f *fakeStore) ProductByNamePrefix(_ context.Context, prefix string) (*contractx.Product, error) {
	for i, p := range f.products {
		if strings.HasPrefix(strings.ToLower(p.Name), strings.ToLower(prefix)) {
			return &f.products[i], nil
		}
	}
	return nil, fmt.Errorf("%w: name %q", contractx.ErrProductNotFound, prefix)
}

func (f *fakeStore) ListProducts(context.Context) ([]contractx.Product, error) {
	return f.products, nil
}

func (f *fakeStore) UpsertProduct(context.Context, contractx.Product) error { return nil }

func (f *fakeStore) ReviewsByProduct(context.Context, string) ([]contractx.Review, error) {
	return nil, nil
}

func (f *fakeStore) ListReviews(context.Context) ([]contractx.Review, error) { return nil, nil }

func (f *fakeStore) InsertReview(context.Context, contractx.Review) error { return nil }

func (f *fakeStore) UpsertReview(context.Context, contractx.Review) error { return nil }

func (f *fakeStore) OrderByID(_ context.Context, orderID string) (*contractx.Order, error) {
	return nil, fmt.Errorf("%w: %q", contractx.ErrOrderNotFound, orderID)
}

func (f *fakeStore) InsertOrder(context.Context, contractx.Order) error { return nil }

func routeTo(kind string) contractx.CompletionResponse {
	return contractx.CompletionResponse{
		ToolCall: &contractx.ToolCall{
			ID:        "call_route",
			Name:      "route_to_responder",
			Arguments: fmt.Sprintf(`{"responder":%q,"confidence":0.9,"rationale":"test"}`, kind),
		},
	}
}

func newTestServer(t *testing.T, model contractx.ChatModel) *Server {
	t.Helper()

	store := &fakeStore{products: []contractx.Product{
		{ID: "eco-green", Name: "Eco Green Mattress", Price: 1199, AvailableSizes: []string{"Queen"}},
	}}
	router, err := routerx.New(model, contractx.AllKinds(), routerx.Config{})
	if err != nil {
		t.Fatalf("router.New() error = %v", err)
	}
	orch := sessionx.New(store, model, router, sessionx.Config{})
	return New(orch, Config{})
}

func TestChatEndpoint(t *testing.T) {
	t.Parallel()

	model := &fakeModel{responses: []contractx.CompletionResponse{
		routeTo("product_details"),
		{Text: "We carry one mattress."},
	}}
	srv := newTestServer(t, model)

	body := bytes.NewBufferString(`{"message":"what do you sell?"}`)
	req := httptest.NewRequest(http.MethodPost, "/chat", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}

	var resp chatResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Response != "We carry one mattress." {
		t.Fatalf("unexpected response: %q", resp.Response)
	}
	if resp.SessionID == "" {
		t.Fatal("session id must be generated when absent")
	}
}

func TestChatEndpointKeepsSessionID(t *testing.T) {
	t.Parallel()

	model := &fakeModel{responses: []contractx.CompletionResponse{
		routeTo("product_details"),
		{Text: "hi"},
	}}
	srv := newTestServer(t, model)

	body := bytes.NewBufferString(`{"message":"hello","session_id":"abc-123"}`)
	req := httptest.NewRequest(http.MethodPost, "/chat", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	var resp chatResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.SessionID != "abc-123" {
		t.Fatalf("session id must round-trip, got %q", resp.SessionID)
	}
}

func TestChatEndpointRequiresMessage(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, &fakeModel{})

	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestClearEndpoint(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, &fakeModel{})

	req := httptest.NewRequest(http.MethodPost, "/chat/abc-123/clear", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["status"] != "success" {
		t.Fatalf("unexpected status field: %q", resp["status"])
	}
	if resp["welcome_message"] != Welcome {
		t.Fatalf("unexpected welcome message: %q", resp["welcome_message"])
	}
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, &fakeModel{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}

func TestWebSocketChat(t *testing.T) {
	t.Parallel()

	model := &fakeModel{responses: []contractx.CompletionResponse{
		routeTo("product_details"),
		{Text: "We carry one mattress."},
	}}
	srv := newTestServer(t, model)

	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/chat/session-1"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	var welcome frame
	if err := conn.ReadJSON(&welcome); err != nil {
		t.Fatalf("read welcome: %v", err)
	}
	if welcome.Type != "assistant" || welcome.Content != Welcome {
		t.Fatalf("unexpected welcome frame: %#v", welcome)
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte("what do you sell?")); err != nil {
		t.Fatalf("write: %v", err)
	}

	var typing frame
	if err := conn.ReadJSON(&typing); err != nil {
		t.Fatalf("read typing: %v", err)
	}
	if typing.Type != "status" || typing.Content != "typing" {
		t.Fatalf("unexpected typing frame: %#v", typing)
	}

	var reply frame
	if err := conn.ReadJSON(&reply); err != nil {
		t.Fatalf("read reply: %v", err)
	}
	if reply.Type != "assistant" || reply.Content != "We carry one mattress." {
		t.Fatalf("unexpected reply frame: %#v", reply)
	}
}
