package admin

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"studiocal/internal/calendar"
)

const sessionCookie = "sess"

func portal(t *testing.T, logins *int, expireFirst bool) *httptest.Server {
	t.Helper()
	expired := expireFirst

	mux := http.NewServeMux()
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method", http.StatusMethodNotAllowed)
			return
		}
		*logins++
		if r.FormValue("email") != "admin@example.com" || r.FormValue("password") != "secret" {
			http.Error(w, "nope", http.StatusUnauthorized)
			return
		}
		http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: "ok", Path: "/"})
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/courses", func(w http.ResponseWriter, r *http.Request) {
		ck, err := r.Cookie(sessionCookie)
		if err != nil || ck.Value != "ok" || expired {
			expired = false
			http.Error(w, "login", http.StatusUnauthorized)
			return
		}
		if r.URL.Query().Get("month") != "2025-10" {
			http.Error(w, "month", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"name": "Счастье", "date": "17-19 Октября", "place": "Театральная, 17",
			 "teachers": "Анжелика Артиш, Алексей Кузьминич", "num_payments": 10, "status": "Завершён"},
			{"name": "Поддерживающее занятие online", "date": "19 Октября", "place": "Онлайн, время МСК+5",
			 "num_payments": 9, "status": "Завершён"}
		]`))
	})
	return httptest.NewServer(mux)
}

var oct2025 = calendar.YearMonth{Year: 2025, Month: time.October}

func TestFindCourses(t *testing.T) {
	logins := 0
	srv := portal(t, &logins, false)
	defer srv.Close()

	c, err := NewClient(Options{BaseURL: srv.URL, Email: "admin@example.com", Password: "secret"})
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 2; i++ {
		got, err := c.FindCourses(context.Background(), oct2025)
		if err != nil {
			t.Fatalf("FindCourses: %v", err)
		}
		if len(got) != 2 || got[0].Name != "Счастье" || got[0].NumPayments == nil || *got[0].NumPayments != 10 {
			t.Fatalf("unexpected courses %+v", got)
		}
	}
	if logins != 1 {
		t.Errorf("expected a single login, got %d", logins)
	}
}

func TestFindCoursesRelogsOnExpiredSession(t *testing.T) {
	logins := 0
	srv := portal(t, &logins, true)
	defer srv.Close()

	c, _ := NewClient(Options{BaseURL: srv.URL + "/", Email: "admin@example.com", Password: "secret"})
	if _, err := c.FindCourses(context.Background(), oct2025); err != nil {
		t.Fatalf("FindCourses: %v", err)
	}
	if logins != 2 {
		t.Errorf("expected a re-login, got %d logins", logins)
	}
}

func TestFindCoursesBadCredentials(t *testing.T) {
	logins := 0
	srv := portal(t, &logins, false)
	defer srv.Close()

	c, _ := NewClient(Options{BaseURL: srv.URL, Email: "admin@example.com", Password: "wrong"})
	if _, err := c.FindCourses(context.Background(), oct2025); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	if _, err := NewClient(Options{}); err == nil {
		t.Fatal("expected error for empty base URL")
	}
}
