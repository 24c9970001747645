package cron

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"slotbook/config"
	"slotbook/models"
)

const TypeBookingReminder = "booking:reminder"

// ReminderPayload carries everything the notifier needs to address a client.
type ReminderPayload struct {
	Occupant string `json:"occupant"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Location string `json:"location"`
	Provider string `json:"provider"`
}

// Notifier delivers a reminder to a client. The default implementation just
// logs; chat front-ends plug in their own delivery.
type Notifier interface {
	Notify(ctx context.Context, payload ReminderPayload) error
}

// LogNotifier writes reminders to the operator log.
type LogNotifier struct{}

func (LogNotifier) Notify(ctx context.Context, p ReminderPayload) error {
	log.Printf("[Reminder] upcoming appointment %s %s at %s with %s for %q",
		p.Date, p.Time, p.Location, p.Provider, p.Occupant)
	return nil
}

// AsynqReminderScheduler enqueues a reminder task timed ahead of the
// appointment. It implements booking.ReminderScheduler.
type AsynqReminderScheduler struct {
	Client *asynq.Client
	Lead   time.Duration
	Zone   *time.Location
}

func NewAsynqReminderScheduler(zone *time.Location) *AsynqReminderScheduler {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	return &AsynqReminderScheduler{
		Client: client,
		Lead:   config.AppConfig.ReminderLead,
		Zone:   zone,
	}
}

// Schedule enqueues the reminder. Appointments closer than the lead get no
// reminder. The task ID is derived from the slot and occupant, so an
// idempotent re-confirmation does not enqueue a second reminder.
func (s *AsynqReminderScheduler) Schedule(ctx context.Context, record models.BookingRecord, occupant string) error {
	appointment, err := time.ParseInLocation(
		models.DateLayout+" "+models.TimeLayout,
		record.Date+" "+record.Time,
		s.Zone,
	)
	if err != nil {
		return fmt.Errorf("unparseable appointment moment: %w", err)
	}

	fireAt := appointment.Add(-s.Lead)
	if !fireAt.After(time.Now().In(s.Zone)) {
		return nil
	}

	payload, err := json.Marshal(ReminderPayload{
		Occupant: occupant,
		Date:     record.Date,
		Time:     record.Time,
		Location: record.Location,
		Provider: record.Provider,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal reminder payload: %w", err)
	}

	task := asynq.NewTask(TypeBookingReminder, payload)
	_, err = s.Client.EnqueueContext(ctx, task,
		asynq.ProcessAt(fireAt),
		asynq.TaskID(fmt.Sprintf("%s|%s|%s", record.Date, record.Time, occupant)),
	)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return nil
	}
	return err
}

// InitReminderWorker runs the async worker in background.
func InitReminderWorker(notifier Notifier) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 2,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeBookingReminder, handleReminderTask(notifier))

	go func() {
		log.Println("[ReminderWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleReminderTask(notifier Notifier) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] invalid payload: %v", err)
			return err
		}

		if err := notifier.Notify(ctx, p); err != nil {
			log.Printf("[ReminderHandler] failed to deliver reminder: %v", err)
			return err
		}
		return nil
	}
}
