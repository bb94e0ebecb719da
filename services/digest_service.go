package services

import (
	"fmt"
	"log/slog"
	"strings"

	"crmsystem-backend/config"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
)

// DigestService mails the descending billing report to the admin address on a
// schedule.
type DigestService struct {
	billing *BillingService
	mailer  Mailer
	cfg     *config.Config
	logger  *slog.Logger
}

func NewDigestService(billing *BillingService, mailer Mailer, cfg *config.Config, logger *slog.Logger) *DigestService {
	return &DigestService{billing: billing, mailer: mailer, cfg: cfg, logger: logger}
}

// StartScheduler registers the digest job and starts the cron runner.
func (s *DigestService) StartScheduler() (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(s.cfg.Digest.Schedule, func() {
		if err := s.SendDigest(); err != nil {
			s.logger.Error("billing digest failed", "error", err)
		}
	}); err != nil {
		return nil, errors.Wrap(err, "schedule billing digest")
	}
	c.Start()
	s.logger.Info("billing digest scheduler started", "schedule", s.cfg.Digest.Schedule)
	return c, nil
}

// SendDigest builds and mails the report once.
func (s *DigestService) SendDigest() error {
	if s.cfg.Admin.Email == "" {
		return errors.New("admin email not configured")
	}

	bills, err := s.billing.CustomersByBill(true)
	if err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString("Customers by total bill (highest first):\n\n")
	for _, bill := range bills {
		fmt.Fprintf(&b, "%-30s %10.2f\n", bill.Name, bill.TotalBill)
	}

	return s.mailer.Send(Message{
		Subject: "Daily billing report",
		Body:    b.String(),
		To:      []string{s.cfg.Admin.Email},
	})
}
