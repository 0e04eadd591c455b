package telegram

import (
	"context"
	"log"
	"strconv"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"github.com/projects-showcase/reservation-bot/internal/dialog"
	"github.com/projects-showcase/reservation-bot/internal/locker"
	"github.com/projects-showcase/reservation-bot/internal/reservation/domain"
	"github.com/projects-showcase/reservation-bot/internal/reservation/service"
)

const noSuitableProjectsAlert = "Просим Вас обратиться к ответственному по проектной деятельности за связь с партнёрами и производством - " +
	"старший преподаватель кафедры «ЖДСТУ» Янев Живко"

const pollTimeoutSeconds = 30

// Messenger is the outbound surface the dispatcher needs; implemented
// by Gateway.
type Messenger interface {
	dialog.Gateway
	AnswerCallbackAlert(ctx context.Context, callbackID, text string) error
}

// Dispatcher long-polls the Bot API and routes each update to the
// sender's dialog. Updates for different users run concurrently; a
// per-user lease keeps one user's events strictly sequential.
type Dispatcher struct {
	bot          *tgbotapi.BotAPI
	gateway      Messenger
	engine       *service.ReservationService
	locks        *locker.Locker
	eventTimeout time.Duration
}

// NewDispatcher wires the dispatcher's collaborators.
func NewDispatcher(bot *tgbotapi.BotAPI, gateway Messenger, engine *service.ReservationService, locks *locker.Locker, eventTimeout time.Duration) *Dispatcher {
	return &Dispatcher{
		bot:          bot,
		gateway:      gateway,
		engine:       engine,
		locks:        locks,
		eventTimeout: eventTimeout,
	}
}

// Run receives updates until ctx is cancelled, then stops accepting
// new ones and waits for in-flight handlers to finish.
func (d *Dispatcher) Run(ctx context.Context) {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = pollTimeoutSeconds
	updates := d.bot.GetUpdatesChan(cfg)

	go func() {
		<-ctx.Done()
		d.bot.StopReceivingUpdates()
	}()

	log.Printf("dispatcher: receiving updates as @%s", d.bot.Self.UserName)

	var wg sync.WaitGroup
	for update := range updates {
		wg.Add(1)
		go func(update tgbotapi.Update) {
			defer wg.Done()
			d.handleUpdate(update)
		}(update)
	}
	wg.Wait()

	log.Println("dispatcher: stopped")
}

// handleUpdate gives each event its own deadline, detached from the
// run context so shutdown never aborts an event mid-write.
func (d *Dispatcher) handleUpdate(update tgbotapi.Update) {
	eventID := uuid.NewString()
	ctx, cancel := context.WithTimeout(context.Background(), d.eventTimeout)
	defer cancel()

	var err error
	switch {
	case update.Message != nil:
		err = d.handleMessage(ctx, update.Message)
	case update.CallbackQuery != nil:
		err = d.handleCallback(ctx, update.CallbackQuery)
	}
	if err != nil {
		// The event is dropped with state untouched; the user's
		// next message retries naturally.
		log.Printf("dispatcher: event %s dropped: %v", eventID, err)
	}
}

func (d *Dispatcher) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	if msg.From == nil {
		return nil
	}
	userID := msg.From.ID
	userKey := strconv.FormatInt(userID, 10)

	release, err := d.locks.Acquire(ctx, "user:"+userKey)
	if err != nil {
		return err
	}
	defer release()

	dlg := dialog.New(userID, d.gateway, d.engine, d.locks)

	existing, err := d.engine.User(ctx, userKey)
	if err != nil {
		return err
	}
	if existing == nil {
		if msg.Text != dialog.StartCommand {
			return d.gateway.SendMessage(ctx, userID, dialog.MsgUseStart)
		}
		if _, err := d.engine.TryCreateUser(ctx, userKey, domain.StateStart); err != nil {
			return err
		}
		return dlg.SetState(ctx, dlg.StateFor(domain.StateStart))
	}

	if msg.Text == dialog.StartCommand {
		return dlg.SetState(ctx, dlg.StateFor(domain.StateStart))
	}

	dlg.State = dlg.StateFor(existing.State)
	return dlg.Reply(ctx, msg.Text)
}

func (d *Dispatcher) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) error {
	if query.Data == dialog.CallbackNoSuitableProjects {
		return d.gateway.AnswerCallbackAlert(ctx, query.ID, noSuitableProjectsAlert)
	}
	return nil
}
