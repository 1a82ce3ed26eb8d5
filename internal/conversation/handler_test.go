package conversation

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/eleven-am/voicenotes/internal/dto"
	"github.com/eleven-am/voicenotes/internal/shared"
	"github.com/labstack/echo/v4"
)

func newTestHandler(t *testing.T) (*Handler, *Store) {
	store := newTestStore(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandler(store, logger), store
}

func request(h echo.HandlerFunc, method, target, body string, params map[string]string) (*httptest.ResponseRecorder, error) {
	e := echo.New()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	for k, v := range params {
		c.SetParamNames(k)
		c.SetParamValues(v)
	}
	return rec, h(c)
}

func TestHandler_CreateAndGet(t *testing.T) {
	h, store := newTestHandler(t)

	rec, err := request(h.Create, http.MethodPost, "/conversations", `{"title":"Morning notes"}`, nil)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d", rec.Code)
	}

	var created dto.ConversationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	store.Append(context.Background(), record(created.ID, 1, "first note"))

	rec, err = request(h.Get, http.MethodGet, "/conversations/"+created.ID, "", map[string]string{"id": created.ID})
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	var detail dto.ConversationDetailResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &detail); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if detail.Conversation.Title != "Morning notes" {
		t.Errorf("title = %q", detail.Conversation.Title)
	}
	if len(detail.Messages) != 1 || detail.Messages[0].Text != "first note" {
		t.Errorf("messages = %+v", detail.Messages)
	}
	if detail.Messages[0].DurationSeconds != 30 {
		t.Errorf("duration = %v", detail.Messages[0].DurationSeconds)
	}
}

func TestHandler_GetMissing(t *testing.T) {
	h, _ := newTestHandler(t)

	_, err := request(h.Get, http.MethodGet, "/conversations/conv_missing", "", map[string]string{"id": "conv_missing"})
	apiErr, ok := err.(*shared.APIError)
	if !ok {
		t.Fatalf("error = %v, want APIError", err)
	}
	if apiErr.Code != "conversation_not_found" {
		t.Errorf("code = %q", apiErr.Code)
	}
}

func TestHandler_RenameValidation(t *testing.T) {
	h, _ := newTestHandler(t)

	_, err := request(h.Rename, http.MethodPatch, "/conversations/conv_x", `{"title":""}`, map[string]string{"id": "conv_x"})
	apiErr, ok := err.(*shared.APIError)
	if !ok {
		t.Fatalf("error = %v, want APIError", err)
	}
	if apiErr.Code != "title_required" {
		t.Errorf("code = %q", apiErr.Code)
	}
}

func TestHandler_DeleteThenList(t *testing.T) {
	h, store := newTestHandler(t)
	ctx := context.Background()

	keep, _ := store.Create(ctx, "Keep")
	doomed, _ := store.Create(ctx, "Doomed")

	rec, err := request(h.Delete, http.MethodDelete, "/conversations/"+doomed.ID, "", map[string]string{"id": doomed.ID})
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rec.Code)
	}

	rec, err = request(h.List, http.MethodGet, "/conversations", "", nil)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	var list dto.ConversationListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list.Conversations) != 1 || list.Conversations[0].ID != keep.ID {
		t.Errorf("conversations = %+v", list.Conversations)
	}
}
