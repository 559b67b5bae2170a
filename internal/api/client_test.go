package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ecogoals/ecogoals/internal/models"
)

func TestClientAttachesBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]models.Habit{})
	}))
	defer server.Close()

	client := New(server.URL, "secret-token")
	if _, err := client.ListHabits(context.Background()); err != nil {
		t.Fatalf("ListHabits() failed: %v", err)
	}

	if gotAuth != "Bearer secret-token" {
		t.Errorf("Authorization header = %q, want %q", gotAuth, "Bearer secret-token")
	}
}

func TestClientOmitsAuthHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(models.AuthResponse{Token: "issued"})
	}))
	defer server.Close()

	client := New(server.URL, "")
	auth, err := client.Login(context.Background(), models.LoginRequest{Email: "a@b.c", Password: "pw"})
	if err != nil {
		t.Fatalf("Login() failed: %v", err)
	}

	if gotAuth != "" {
		t.Errorf("unexpected Authorization header on login: %q", gotAuth)
	}
	if auth.Token != "issued" {
		t.Errorf("token = %q, want issued", auth.Token)
	}
}

func TestClientDecodesServerErrorMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "name is required"})
	}))
	defer server.Close()

	client := New(server.URL, "tok")
	_, err := client.CreateHabit(context.Background(), CreateHabitRequest{})
	if err == nil {
		t.Fatal("expected error for 400 response")
	}

	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("error type = %T, want *StatusError", err)
	}
	if se.Code != http.StatusBadRequest || se.Message != "name is required" {
		t.Errorf("StatusError = %+v, want code 400 with server message", se)
	}
}

func TestClientMapsUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := New(server.URL, "expired")
	_, err := client.ListHabits(context.Background())
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("error = %v, want ErrUnauthorized", err)
	}
}

func TestClientRejectsMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := New(server.URL, "tok")
	if _, err := client.ListHabits(context.Background()); err == nil {
		t.Error("expected error for malformed response body")
	}
}

func TestClientHonorsContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := New(server.URL, "tok")
	if _, err := client.ListHabits(ctx); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestUpdateHabitSendsOnlySetFields(t *testing.T) {
	var body map[string]json.RawMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		json.NewEncoder(w).Encode(models.Habit{ID: "h1"})
	}))
	defer server.Close()

	client := New(server.URL, "tok")
	dates := []string{"2024-01-03"}
	streakVal := 1
	_, err := client.UpdateHabit(context.Background(), "h1", models.HabitUpdate{
		CompletedDates: &dates,
		Streak:         &streakVal,
	})
	if err != nil {
		t.Fatalf("UpdateHabit() failed: %v", err)
	}

	if _, ok := body["completedDates"]; !ok {
		t.Error("completedDates missing from toggle payload")
	}
	if _, ok := body["streak"]; !ok {
		t.Error("streak missing from toggle payload")
	}
	if _, ok := body["name"]; ok {
		t.Error("toggle payload must not carry name")
	}
}

func TestDeleteHabitEscapesID(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
	}))
	defer server.Close()

	client := New(server.URL, "tok")
	if err := client.DeleteHabit(context.Background(), "a/b"); err != nil {
		t.Fatalf("DeleteHabit() failed: %v", err)
	}
	if gotPath != "/habits/a%2Fb" {
		t.Errorf("path = %q, want escaped id", gotPath)
	}
}
