package notify

import (
	"context"
	"testing"
)

func TestNewSendGridSender_NilWithoutAPIKey(t *testing.T) {
	sender := NewSendGridSender(SendGridConfig{
		APIKey:    "",
		FromEmail: "clinic@example.com",
	}, nil)

	if sender != nil {
		t.Error("expected nil sender when API key is empty")
	}
}

func TestNewSendGridSender_DefaultFromName(t *testing.T) {
	sender := NewSendGridSender(SendGridConfig{
		APIKey:    "test-key",
		FromEmail: "clinic@example.com",
		FromName:  "",
	}, nil)

	if sender == nil {
		t.Fatal("expected non-nil sender")
	}
	if sender.fromName != "Clinic Appointments" {
		t.Errorf("expected default from name 'Clinic Appointments', got %q", sender.fromName)
	}
}

func TestSendGridSender_Send_NilClient(t *testing.T) {
	sender := &SendGridSender{
		client: nil,
	}

	err := sender.Send(context.Background(), EmailMessage{
		To:      "patient@example.com",
		Subject: "Appointment Confirmation",
		HTML:    "<p>confirmed</p>",
	})

	if err == nil {
		t.Error("expected error when client is nil")
	}
}

func TestStubEmailSender_Send(t *testing.T) {
	sender := NewStubEmailSender(nil)

	err := sender.Send(context.Background(), EmailMessage{
		To:      "patient@example.com",
		Subject: "Appointment Confirmation",
		Body:    "confirmed",
		ReplyTo: "clinic@example.com",
	})

	if err != nil {
		t.Errorf("stub sender should not return error, got: %v", err)
	}
}

func TestNewSESSender_NilWithoutClient(t *testing.T) {
	if NewSESSender(nil, SESConfig{FromEmail: "clinic@example.com"}, nil) != nil {
		t.Error("expected nil sender when client is nil")
	}
}
