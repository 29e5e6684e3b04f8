package notify

import (
	"context"
	"testing"
)

func TestNewSendGridSenderWithoutKey(t *testing.T) {
	if s := NewSendGridSender(SendGridConfig{FromEmail: "hello@salon.test"}, nil); s != nil {
		t.Fatal("expected nil sender without an API key")
	}
}

func TestNewSendGridSenderDefaultFromName(t *testing.T) {
	s := NewSendGridSender(SendGridConfig{APIKey: "SG.test", FromEmail: "hello@salon.test"}, nil)
	if s == nil {
		t.Fatal("expected sender")
	}
	if s.fromName != "TayloredRoots Salon" {
		t.Errorf("expected default from name, got %q", s.fromName)
	}
}

func TestNewSESSenderWithoutClient(t *testing.T) {
	if s := NewSESSender(nil, SESConfig{FromEmail: "hello@salon.test"}, nil); s != nil {
		t.Fatal("expected nil sender without a client")
	}
}

func TestStubEmailSender(t *testing.T) {
	s := NewStubEmailSender(nil)
	err := s.Send(context.Background(), EmailMessage{To: "owner@salon.test", Subject: "hi"})
	if err != nil {
		t.Fatalf("stub sender must never fail: %v", err)
	}
}
