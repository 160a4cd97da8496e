package whatsapp

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mamadbah2/finalqc/internal/config"
	"github.com/mamadbah2/finalqc/internal/domain/models"
	client "github.com/mamadbah2/finalqc/pkg/clients/whatsapp"
)

type recordingClient struct {
	sent []client.SendTextMessageRequest
	err  error
}

func (c *recordingClient) SendTextMessage(_ context.Context, req client.SendTextMessageRequest) (*client.SendTextMessageResponse, error) {
	if c.err != nil {
		return nil, c.err
	}
	c.sent = append(c.sent, req)
	return &client.SendTextMessageResponse{}, nil
}

func TestNotifyFailedInspection(t *testing.T) {
	rc := &recordingClient{}
	svc := NewMetaWhatsAppService(config.WhatsAppConfig{QAManagerID: "224611111111"}, rc, nil)

	rec := &models.Inspection{
		InspectionDate: "2026-03-04",
		PONumber:       "PO-77",
		StyleNo:        "ST-9",
		SampleSize:     125,
		AQLMajor:       2.5,
		MajorDefects:   5,
	}
	if err := svc.NotifyFailedInspection(context.Background(), rec); err != nil {
		t.Fatalf("NotifyFailedInspection: %v", err)
	}

	if len(rc.sent) != 1 {
		t.Fatalf("expected one message, got %d", len(rc.sent))
	}
	msg := rc.sent[0]
	if msg.To != "224611111111" {
		t.Fatalf("unexpected recipient %s", msg.To)
	}
	for _, want := range []string{"FAILED", "PO: PO-77", "major 5", "AQL major: 2.5", "Packaging: not compliant", "Buyer: -"} {
		if !strings.Contains(msg.Body, want) {
			t.Errorf("alert %q does not contain %q", msg.Body, want)
		}
	}
}

func TestNotifyFailedInspectionWithoutRecipient(t *testing.T) {
	svc := NewMetaWhatsAppService(config.WhatsAppConfig{}, &recordingClient{}, nil)
	if err := svc.NotifyFailedInspection(context.Background(), &models.Inspection{}); !errors.Is(err, ErrNoRecipient) {
		t.Fatalf("expected ErrNoRecipient, got %v", err)
	}
}

func TestSendOutboundPropagatesClientError(t *testing.T) {
	boom := errors.New("boom")
	svc := NewMetaWhatsAppService(config.WhatsAppConfig{}, &recordingClient{err: boom}, nil)
	err := svc.SendOutbound(context.Background(), models.OutboundMessageRequest{To: "1", Message: "x"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected client error, got %v", err)
	}
}
