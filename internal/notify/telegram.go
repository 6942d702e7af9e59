package notify

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"household-planner/internal/plan"
)

// Notifier announces plan events to the household. Implementations must be
// safe to call with best-effort semantics; the planner never blocks on them.
type Notifier interface {
	PlanCreated(p *plan.MealPlan)
}

// NopNotifier is used when no announcement channel is configured.
type NopNotifier struct{}

func (NopNotifier) PlanCreated(_ *plan.MealPlan) {}

// TelegramNotifier posts plan announcements to a household Telegram chat.
type TelegramNotifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramNotifier initializes the Telegram API client.
func NewTelegramNotifier(botToken string, chatID int64) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}

	log.Printf("Telegram notifier authorized on account %s", bot.Self.UserName)
	return &TelegramNotifier{api: bot, chatID: chatID}, nil
}

// PlanCreated announces a new meal plan. Failures are logged, not returned;
// a missed announcement must not fail the plan write.
func (n *TelegramNotifier) PlanCreated(p *plan.MealPlan) {
	name := p.Name
	if name == "" {
		name = "a new meal plan"
	}
	text := fmt.Sprintf("📅 %s starting %s (%d days) is ready.", name, p.StartDate, p.NumberOfDays)

	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.api.Send(msg); err != nil {
		log.Printf("Failed to send plan announcement: %v", err)
	}
}
