package appointments

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"
)

func TestWriteCSV(t *testing.T) {
	appts := []*Appointment{
		{
			Name:       "Ali Khan",
			Service:    "Physiotherapy Session",
			Date:       "2025-07-01",
			Time:       "14:00-15:00",
			Phone:      "+923001234567",
			Email:      "ali@example.com",
			Status:     StatusPending,
			AdminNotes: "first visit, prefers \"afternoon\" slots",
			CreatedAt:  time.Date(2025, 6, 15, 9, 30, 0, 0, time.UTC),
		},
		{
			Name:      "Sara Ahmed",
			Service:   "Consultation Only",
			Date:      "2025-07-02",
			Time:      "16:00-17:00",
			Phone:     "03001234568",
			Status:    StatusConfirmed,
			CreatedAt: time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, appts); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(records))
	}

	header := records[0]
	wantHeader := []string{"Name", "Service", "Date", "Time", "Phone", "Email", "Status", "Admin Notes", "Created"}
	for i, col := range wantHeader {
		if header[i] != col {
			t.Fatalf("header[%d] = %q, want %q", i, header[i], col)
		}
	}

	row := records[1]
	if len(row) != 9 {
		t.Fatalf("expected 9 columns, got %d", len(row))
	}
	if row[0] != "Ali Khan" || row[6] != "pending" || row[8] != "2025-06-15 09:30:00" {
		t.Fatalf("unexpected row: %v", row)
	}
	// Quoting survives the round trip.
	if row[7] != "first visit, prefers \"afternoon\" slots" {
		t.Fatalf("admin notes mangled: %q", row[7])
	}

	second := records[2]
	if second[5] != "" {
		t.Fatalf("expected empty email cell, got %q", second[5])
	}
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected header only, got %d rows", len(records))
	}
}
