package reminder

import (
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"

	"github.com/kbvnxl/ptown-backend/internal/config"
	"github.com/kbvnxl/ptown-backend/internal/models"
	"github.com/kbvnxl/ptown-backend/internal/timezone"
)

// Service texts customers the day before their pending appointments.
type Service struct {
	db     *gorm.DB
	cfg    *config.Config
	client *twilio.RestClient
}

func New(db *gorm.DB, cfg *config.Config) *Service {
	s := &Service{db: db, cfg: cfg}

	if cfg.TwilioAccountSID != "" && cfg.TwilioAuthToken != "" {
		s.client = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.TwilioAccountSID,
			Password: cfg.TwilioAuthToken,
		})
	}

	return s
}

func (s *Service) Start() {
	c := cron.New(cron.WithLocation(timezone.Location(s.cfg.Timezone)))

	// Daily at 9 AM shop-local time.
	c.AddFunc("0 9 * * *", s.SendDailyReminders)

	c.Start()
	log.Println("reminder scheduler started")
}

type reminderRow struct {
	Time          string
	ShopName      string
	ContactNumber string
}

func (s *Service) SendDailyReminders() {
	if s.client == nil {
		log.Println("twilio not configured, skipping reminders")
		return
	}

	tomorrow := timezone.NowIn(s.cfg.Timezone).AddDate(0, 0, 1).Format("2006-01-02")

	var rows []reminderRow
	err := s.db.Raw(`
        SELECT a.time, b.name AS shop_name, p.contact_number
        FROM appointments a
        JOIN barbershop_appointments ba ON ba.appointment_id = a.id
        JOIN barbershops b ON b.id = ba.barbershop_id
        JOIN profiles p ON p.user_id = a.user_id
        WHERE a.date = ? AND a.status = ? AND p.contact_number <> ''
    `, tomorrow, models.AppointmentStatusPending).Scan(&rows).Error
	if err != nil {
		log.Printf("failed to fetch reminders: %v", err)
		return
	}

	for _, row := range rows {
		body := fmt.Sprintf(
			"Reminder: you have an appointment at %s tomorrow, %s at %s.",
			row.ShopName, tomorrow, row.Time,
		)

		params := &twilioApi.CreateMessageParams{}
		params.SetTo(row.ContactNumber)
		params.SetFrom(s.cfg.TwilioFrom)
		params.SetBody(body)

		if _, err := s.client.Api.CreateMessage(params); err != nil {
			log.Printf("failed to send reminder to %s: %v", row.ContactNumber, err)
		}
	}

	log.Printf("sent %d appointment reminders for %s", len(rows), tomorrow)
}
