// services/notification_service.go
package services

import (
	"fmt"
	"os"
	"strings"
	"time"

	"salondesk-backend/config"
	"salondesk-backend/models"
	"salondesk-backend/utils"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// NotificationService sends visit receipts to customers and the daily
// sales digest to admins over Twilio WhatsApp/SMS.
type NotificationService struct {
	db     *gorm.DB
	client *twilio.RestClient
	log    *logrus.Logger
}

var defaultService *NotificationService

func NewNotificationService(db *gorm.DB) *NotificationService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &NotificationService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
		log: config.GetLogger(),
	}
}

// Init wires the package-level service used by the controllers.
func Init(db *gorm.DB) *NotificationService {
	defaultService = NewNotificationService(db)
	return defaultService
}

// SendVisitReceipt sends the customer a message with their final amount.
// Intended to run in a goroutine after the visit transaction commits;
// failures are logged, never surfaced to the recording flow.
func SendVisitReceipt(visit models.Visit) {
	if defaultService == nil {
		return
	}
	defaultService.SendVisitReceipt(visit)
}

func (s *NotificationService) SendVisitReceipt(visit models.Visit) {
	if os.Getenv("NOTIFY_RECEIPTS") != "true" {
		return
	}
	if visit.CustomerPhone == "" {
		return
	}

	message := fmt.Sprintf("Hi %s, thank you for your visit! Your total today was %s. See you again soon!",
		visit.CustomerName, visit.FinalAmount.StringFixed(2))

	s.send(visit.CustomerPhone, message, "receipt", &visit.ID)
}

// StartDigestScheduler sends the daily sales digest to admins at 9 PM.
func (s *NotificationService) StartDigestScheduler() {
	c := cron.New()

	c.AddFunc("0 21 * * *", func() {
		s.SendDailyDigest(time.Now())
	})

	c.Start()
	s.log.Info("daily digest scheduler started")
}

// SendDailyDigest aggregates the given day's visits and messages every
// active admin with a phone on file.
func (s *NotificationService) SendDailyDigest(day time.Time) {
	start := utils.BeginningOfDay(day)
	end := utils.EndOfDay(day)

	var visits []models.Visit
	if err := s.db.Where("check_in_at >= ? AND check_in_at <= ?", start, end).
		Find(&visits).Error; err != nil {
		s.log.WithField("error", err.Error()).Error("digest: failed to fetch visits")
		return
	}

	revenue := decimal.Zero
	for _, v := range visits {
		revenue = revenue.Add(v.FinalAmount)
	}

	message := fmt.Sprintf("Daily summary for %s: %d visits, %s revenue.",
		day.Format("02 Jan 2006"), len(visits), revenue.StringFixed(2))

	var admins []models.Profile
	if err := s.db.Where("role = ? AND is_active = ? AND phone <> ''", models.RoleAdmin, true).
		Find(&admins).Error; err != nil {
		s.log.WithField("error", err.Error()).Error("digest: failed to fetch admins")
		return
	}

	for _, admin := range admins {
		s.send(admin.Phone, message, "digest", nil)
	}
}

func (s *NotificationService) send(phone, message, notifType string, visitID *uuid.UUID) {
	// Determine channel (WhatsApp if available, else SMS)
	channel := "sms"
	var to string

	// Use WhatsApp if phone is in E.164 format and starts with '+'
	if strings.HasPrefix(phone, "+") {
		to = "whatsapp:" + phone
		channel = "whatsapp"
	} else {
		to = phone
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(message)

	if channel == "whatsapp" {
		params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
	} else {
		params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	}

	resp, err := s.client.Api.CreateMessage(params)
	status := "sent"
	errorMsg := ""

	if err != nil {
		s.log.WithFields(logrus.Fields{"to": phone, "error": err.Error()}).Error("failed to send message")
		status = "failed"
		errorMsg = err.Error()
	} else if resp.Sid != nil {
		s.log.WithFields(logrus.Fields{"to": phone, "sid": *resp.Sid}).Info("message sent")
	}

	entry := models.NotificationLog{
		VisitID:      visitID,
		Type:         notifType,
		Recipient:    phone,
		Message:      message,
		Status:       status,
		ErrorMessage: errorMsg,
		Channel:      channel,
		SentAt:       time.Now(),
	}

	if err := s.db.Create(&entry).Error; err != nil {
		s.log.WithField("error", err.Error()).Error("failed to log notification")
	}
}
