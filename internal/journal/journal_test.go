package journal

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/alexbotov/iyzipay-go/internal/database"
	"github.com/alexbotov/iyzipay-go/pkg/iyzipay"
)

func TestNewEntry(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		e := NewEntry("payment.create", "POST", "/payment/auth", "IYZWS", nil,
			WithConversation("123"), WithDuration(250*time.Millisecond))
		if e.Status != StatusSuccess {
			t.Errorf("Expected success, got %s", e.Status)
		}
		if e.ConversationID != "123" || e.Duration != 250*time.Millisecond {
			t.Errorf("Options not applied: %+v", e)
		}
	})

	t.Run("APIFailure", func(t *testing.T) {
		err := &iyzipay.APIError{StatusCode: 200, Code: "5093", Message: "payment already cancelled"}
		e := NewEntry("payment.cancel", "POST", "/payment/cancel", "IYZWS", err)
		if e.Status != StatusFailure || e.ErrorCode != "5093" || e.HTTPStatus != 200 {
			t.Errorf("Unexpected entry: %+v", e)
		}
	})

	t.Run("HTTPError", func(t *testing.T) {
		err := &iyzipay.HTTPError{StatusCode: 502, Body: "bad gateway"}
		e := NewEntry("bin.check", "POST", "/payment/bin/check", "IYZWS", err)
		if e.Status != StatusError || e.HTTPStatus != 502 {
			t.Errorf("Unexpected entry: %+v", e)
		}
	})

	t.Run("TransportError", func(t *testing.T) {
		e := NewEntry("bin.check", "POST", "/payment/bin/check", "IYZWS", errors.New("connection refused"))
		if e.Status != StatusError || e.ErrorMessage != "connection refused" {
			t.Errorf("Unexpected entry: %+v", e)
		}
	})

	t.Run("WithData", func(t *testing.T) {
		e := NewEntry("link.create", "POST", "/v2/iyzilink/products", "IYZWSv2", nil,
			WithData(map[string]string{"token": "AAbb12"}))
		if string(e.Data) != `{"token":"AAbb12"}` {
			t.Errorf("Unexpected data: %s", e.Data)
		}
	})
}

func TestBuildQuery(t *testing.T) {
	query, args := buildQuery(nil)
	if !strings.HasSuffix(query, "ORDER BY timestamp DESC LIMIT $1") {
		t.Errorf("Unexpected query: %s", query)
	}
	if len(args) != 1 || args[0] != defaultLimit {
		t.Errorf("Expected default limit, got %v", args)
	}

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	query, args = buildQuery(&Filter{Operation: "payment.create", Status: StatusFailure, From: from, Limit: 5})
	for _, part := range []string{"operation = $1", "status = $2", "timestamp >= $3", "LIMIT $4"} {
		if !strings.Contains(query, part) {
			t.Errorf("Query missing %q: %s", part, query)
		}
	}
	if len(args) != 4 || args[3] != 5 {
		t.Errorf("Unexpected args: %v", args)
	}
}

// TestJournalDatabase needs a PostgreSQL database in IYZIPAY_TEST_DSN.
func TestJournalDatabase(t *testing.T) {
	dsn := os.Getenv("IYZIPAY_TEST_DSN")
	if dsn == "" {
		t.Skip("IYZIPAY_TEST_DSN not set")
	}

	db, err := database.New("postgres", dsn)
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	if err := db.Reset(); err != nil {
		t.Fatalf("Failed to reset database: %v", err)
	}
	if err := db.Migrate(); err != nil {
		t.Fatalf("Failed to migrate database: %v", err)
	}
	defer db.Reset()

	svc := New(db.DB)
	ctx := context.Background()

	ok := NewEntry("payment.create", "POST", "/payment/auth", "IYZWS", nil,
		WithConversation("conv-1"), WithData(map[string]string{"paymentId": "10001"}))
	if err := svc.Record(ctx, ok); err != nil {
		t.Fatalf("Failed to record entry: %v", err)
	}
	if ok.ID == "" {
		t.Error("Record should assign an id")
	}

	failed := NewEntry("payment.cancel", "POST", "/payment/cancel", "IYZWS",
		&iyzipay.APIError{StatusCode: 200, Code: "5093", Message: "payment already cancelled"})
	if err := svc.Record(ctx, failed); err != nil {
		t.Fatalf("Failed to record entry: %v", err)
	}

	entries, err := svc.List(ctx, &Filter{Status: StatusFailure, Limit: 10})
	if err != nil {
		t.Fatalf("Failed to list entries: %v", err)
	}
	if len(entries) != 1 || entries[0].ErrorCode != "5093" {
		t.Fatalf("Expected the failed entry, got %+v", entries)
	}

	entries, err = svc.List(ctx, &Filter{ConversationID: "conv-1"})
	if err != nil {
		t.Fatalf("Failed to list entries: %v", err)
	}
	if len(entries) != 1 || entries[0].Operation != "payment.create" {
		t.Fatalf("Expected the payment entry, got %+v", entries)
	}
}
