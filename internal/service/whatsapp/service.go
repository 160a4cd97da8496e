package whatsapp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/finalqc/internal/config"
	"github.com/mamadbah2/finalqc/internal/domain/models"
	client "github.com/mamadbah2/finalqc/pkg/clients/whatsapp"
)

// ErrNoRecipient is returned when a QA alert has nobody to go to.
var ErrNoRecipient = errors.New("no QA manager recipient configured")

// MessagingService describes the notifications the application can push.
type MessagingService interface {
	SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error
	NotifyFailedInspection(ctx context.Context, rec *models.Inspection) error
}

// MetaWhatsAppService is the production implementation backed by WhatsApp Cloud API.
type MetaWhatsAppService struct {
	cfg    config.WhatsAppConfig
	client client.Client
	logger *zap.Logger
}

// NewMetaWhatsAppService wires a new service instance.
func NewMetaWhatsAppService(cfg config.WhatsAppConfig, client client.Client, logger *zap.Logger) *MetaWhatsAppService {
	svc := &MetaWhatsAppService{
		cfg:    cfg,
		client: client,
		logger: logger,
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	return svc
}

// SendOutbound pushes a text message to an arbitrary recipient.
func (s *MetaWhatsAppService) SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	resp, err := s.client.SendTextMessage(ctxWithTimeout, client.SendTextMessageRequest{
		To:         req.To,
		Body:       req.Message,
		PreviewURL: req.PreviewURL,
	})
	if err != nil {
		return err
	}

	if len(resp.Messages) > 0 {
		s.logger.Debug("whatsapp message accepted", zap.String("to", req.To), zap.String("message_id", resp.Messages[0].ID))
	}
	return nil
}

// NotifyFailedInspection alerts the QA manager that an inspection failed.
func (s *MetaWhatsAppService) NotifyFailedInspection(ctx context.Context, rec *models.Inspection) error {
	if s.cfg.QAManagerID == "" {
		return ErrNoRecipient
	}

	return s.SendOutbound(ctx, models.OutboundMessageRequest{
		To:      s.cfg.QAManagerID,
		Message: FailureAlert(rec),
	})
}

// FailureAlert formats the alert text for a failed inspection.
func FailureAlert(rec *models.Inspection) string {
	var b strings.Builder
	b.WriteString("Final inspection FAILED\n")
	fmt.Fprintf(&b, "Date: %s\n", rec.InspectionDate)
	fmt.Fprintf(&b, "PO: %s | Style: %s\n", orDash(rec.PONumber), orDash(rec.StyleNo))
	fmt.Fprintf(&b, "Buyer: %s | Factory: %s\n", orDash(rec.BrandBuyer), orDash(rec.FactoryName))
	fmt.Fprintf(&b, "Inspector: %s\n", orDash(rec.InspectorName))
	fmt.Fprintf(&b, "Sample size: %d | AQL major: %g\n", rec.SampleSize, rec.AQLMajor)
	fmt.Fprintf(&b, "Defects: critical %d, major %d, minor %d", rec.CriticalDefects, rec.MajorDefects, rec.MinorDefects)
	if !rec.PackagingCompliance {
		b.WriteString("\nPackaging: not compliant")
	}
	return b.String()
}

func orDash(v string) string {
	if strings.TrimSpace(v) == "" {
		return "-"
	}
	return v
}
