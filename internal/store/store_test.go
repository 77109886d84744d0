package store

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"studiocal/internal/calendar"
	"studiocal/internal/model"
)

var oct2025 = calendar.YearMonth{Year: 2025, Month: time.October}

func TestAdminRoundTrip(t *testing.T) {
	s := NewFileStore(t.TempDir())

	if _, err := s.LoadAdmin(oct2025); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected not-exist before save, got %v", err)
	}

	payments := 9
	in := []model.Course{{
		Name:        "Блессинг",
		Date:        "31 Октября-2 Ноября",
		Place:       "Театральная, 17",
		Teachers:    "Ольга Шумакова",
		NumPayments: &payments,
		Status:      "Стоит в расписании",
	}}
	if err := s.SaveAdmin(oct2025, in); err != nil {
		t.Fatalf("SaveAdmin: %v", err)
	}

	if _, err := os.Stat(filepath.Join(s.Dir(), "2025_10.json")); err != nil {
		t.Fatalf("expected 2025_10.json: %v", err)
	}

	out, err := s.LoadAdmin(oct2025)
	if err != nil {
		t.Fatalf("LoadAdmin: %v", err)
	}
	if len(out) != 1 || out[0].Name != "Блессинг" || out[0].NumPayments == nil || *out[0].NumPayments != 9 {
		t.Errorf("unexpected round trip: %+v", out)
	}
}

func TestSaveAdminEmptyWritesArray(t *testing.T) {
	s := NewFileStore(t.TempDir())
	if err := s.SaveAdmin(oct2025, nil); err != nil {
		t.Fatalf("SaveAdmin: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(s.Dir(), "2025_10.json"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[]" {
		t.Errorf("expected [], got %s", data)
	}
}

func TestAppendManual(t *testing.T) {
	s := NewFileStore(t.TempDir())

	got, err := s.LoadManual(oct2025)
	if err != nil || len(got) != 0 {
		t.Fatalf("missing manual file should be empty, got %v, %v", got, err)
	}

	if err := s.AppendManual(oct2025, []model.Course{{Name: "Йога", Date: "7 октября"}}); err != nil {
		t.Fatal(err)
	}
	if err := s.AppendManual(oct2025, []model.Course{{Name: "Йога", Date: "14 октября"}, {Name: "Йога", Date: "21 октября"}}); err != nil {
		t.Fatal(err)
	}

	got, err = s.LoadManual(oct2025)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}
	if got[0].Date != "7 октября" || got[2].Date != "21 октября" {
		t.Errorf("entries out of order: %+v", got)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "2025_10.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := NewFileStore(dir)
	if _, err := s.LoadAdmin(oct2025); err == nil || errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected decode error, got %v", err)
	}
}
