package services

import (
	"fmt"
	"log/slog"

	"crmsystem-backend/models"

	"github.com/pkg/errors"
)

// Billing thresholds for transactional emails. Evaluated against the
// post-creation cumulative total, once per order submission.
const (
	discountThreshold = 2999
	rewardThreshold   = 5000
)

// NotificationService sends the transactional emails and delivery texts.
// Everything here is best-effort: a transport fault never rolls back the
// mutation that triggered it.
type NotificationService struct {
	mailer     Mailer
	sms        SMSSender
	logger     *slog.Logger
	adminEmail string
}

func NewNotificationService(mailer Mailer, sms SMSSender, adminEmail string, logger *slog.Logger) *NotificationService {
	return &NotificationService{
		mailer:     mailer,
		sms:        sms,
		logger:     logger,
		adminEmail: adminEmail,
	}
}

// NotifyOrderTotal sends the tier email the new cumulative total qualifies
// for: (2999, 5000] earns the 30%-off email, above 5000 the reward email,
// anything lower nothing at all.
func (s *NotificationService) NotifyOrderTotal(customer *models.Customer, total float64) error {
	if customer == nil || customer.Email == "" {
		s.logger.Info("skipping threshold email, no recipient", "total", total)
		return nil
	}

	var subject, body string
	switch {
	case total > rewardThreshold:
		subject = "You're Eligible for a Reward!"
		body = fmt.Sprintf(
			"Hi %s,\n\nThanks for shopping with us!\n\n"+
				"Your total purchase amount has now exceeded %d.\n"+
				"You're now eligible for free delivery on your next order and exclusive discount coupons.\n\n"+
				"Happy Shopping!",
			customer.Name, rewardThreshold)
	case total > discountThreshold:
		subject = "30% OFF on Your Next Purchase!"
		body = fmt.Sprintf(
			"Hi %s,\n\nGreat news!\n\n"+
				"You've spent over %d in total purchases with us.\n"+
				"As a reward, you've earned 30%% OFF on your next order!\n\n"+
				"Use code: SAVE30 at checkout.\n\nHappy Shopping!",
			customer.Name, discountThreshold)
	default:
		return nil
	}

	if err := s.mailer.Send(Message{Subject: subject, Body: body, To: []string{customer.Email}}); err != nil {
		s.logger.Error("threshold email failed", "customer", customer.ID, "error", err)
		return errors.Wrap(err, "threshold email")
	}

	s.logger.Info("threshold email sent", "customer", customer.ID, "total", total)
	return nil
}

// RelayQuery forwards a customer's support message to the admin address,
// prefixed with the submitting user's identity.
func (s *NotificationService) RelayQuery(username, email, subject, message string) error {
	if s.adminEmail == "" {
		return errors.New("admin email not configured")
	}

	body := fmt.Sprintf("Message from %s (%s):\n\n%s", username, email, message)
	if err := s.mailer.Send(Message{Subject: subject, Body: body, To: []string{s.adminEmail}}); err != nil {
		s.logger.Error("query relay failed", "user", username, "error", err)
		return errors.Wrap(err, "relay query")
	}

	s.logger.Info("query relayed", "user", username, "subject", subject)
	return nil
}

// NotifyOutForDelivery texts the customer when their order goes out for
// delivery. A nil sender or missing phone is a quiet skip.
func (s *NotificationService) NotifyOutForDelivery(customer *models.Customer, productName string) error {
	if s.sms == nil || customer == nil || customer.Phone == "" {
		return nil
	}

	body := fmt.Sprintf("Hi %s, your order", customer.Name)
	if productName != "" {
		body += " for " + productName
	}
	body += " is out for delivery!"

	if err := s.sms.SendSMS(customer.Phone, body); err != nil {
		s.logger.Error("delivery sms failed", "customer", customer.ID, "error", err)
		return errors.Wrap(err, "delivery sms")
	}

	s.logger.Info("delivery sms sent", "customer", customer.ID)
	return nil
}
