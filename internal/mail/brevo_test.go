package mail

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSendContactNotification(t *testing.T) {
	var got sendEmailRequest
	var gotKey string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/smtp/email" {
			t.Errorf("path = %q", r.URL.Path)
		}
		gotKey = r.Header.Get("api-key")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	m := New("test-key",
		Address{Name: "Folio", Email: "noreply@jisub.dev"},
		Address{Name: "Jisub", Email: "me@jisub.dev"},
		WithBaseURL(srv.URL))

	err := m.SendContactNotification(context.Background(), ContactNotification{
		Name:    "Reader",
		Email:   "reader@example.com",
		Subject: "Hello",
		Message: "Great post <script>!",
	})
	if err != nil {
		t.Fatal(err)
	}

	if gotKey != "test-key" {
		t.Errorf("api-key header = %q", gotKey)
	}
	if len(got.To) != 1 || got.To[0].Email != "me@jisub.dev" {
		t.Errorf("to = %+v", got.To)
	}
	if got.ReplyTo == nil || got.ReplyTo.Email != "reader@example.com" {
		t.Errorf("replyTo = %+v", got.ReplyTo)
	}
	if !strings.Contains(got.Subject, "Hello") {
		t.Errorf("subject = %q", got.Subject)
	}
	if strings.Contains(got.HTMLContent, "<script>") {
		t.Error("message body not escaped")
	}
}

func TestSendErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"code":"unauthorized"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	m := New("bad-key", Address{Email: "a@b.c"}, Address{Email: "d@e.f"}, WithBaseURL(srv.URL))
	err := m.SendContactNotification(context.Background(), ContactNotification{
		Name: "x", Email: "x@y.z", Message: "hi",
	})
	if err == nil {
		t.Fatal("expected error on 401")
	}
	if !strings.Contains(err.Error(), "401") {
		t.Errorf("error should carry status: %v", err)
	}
}

func TestEmptySubjectFallback(t *testing.T) {
	var got sendEmailRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	m := New("k", Address{Email: "a@b.c"}, Address{Email: "d@e.f"}, WithBaseURL(srv.URL))
	if err := m.SendContactNotification(context.Background(), ContactNotification{
		Name: "x", Email: "x@y.z", Message: "hi",
	}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got.Subject, "No subject") {
		t.Errorf("subject = %q", got.Subject)
	}
}

func TestEnabled(t *testing.T) {
	if New("", Address{}, Address{}).Enabled() {
		t.Error("empty api key should disable sending")
	}
	if !New("k", Address{}, Address{}).Enabled() {
		t.Error("api key should enable sending")
	}
}
