package pairreview

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestApproveParsesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req requestPayload
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Prompt == "" {
			t.Error("expected non-empty prompt")
		}
		json.NewEncoder(w).Encode(responsePayload{Approve: true})
	}))
	defer srv.Close()

	c := &Client{Endpoint: srv.URL}
	ok, err := c.Approve(context.Background(), "cat", "dog")
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if !ok {
		t.Error("expected approve=true")
	}
}

func TestApproveRejectsWithoutEndpoint(t *testing.T) {
	c := &Client{}
	if _, err := c.Approve(context.Background(), "a", "b"); err == nil {
		t.Error("expected error when endpoint is unset")
	}
}

func TestApproveSurfacesHTTPErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := &Client{Endpoint: srv.URL}
	if _, err := c.Approve(context.Background(), "a", "b"); err == nil {
		t.Error("expected error for 500 response")
	}
}
