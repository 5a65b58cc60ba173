package reporter

import (
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"go-jobhawk-automation/internal/config"
	"go-jobhawk-automation/internal/database"
)

// TelegramReporter is the operator channel. The scrape loop never blocks
// on a human; anything that needs eyes (security checkpoints, rate
// limits, overload) is pushed here instead.
type TelegramReporter struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramReporter(cfg *config.Config) (*TelegramReporter, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}

	//turn this on in case of debug
	//bot.Debug = true

	return &TelegramReporter{
		bot:    bot,
		chatID: cfg.TelegramChatID,
	}, nil
}

func (t *TelegramReporter) SendMessage(text string) error {
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = "HTML" //use HTML for bold/italic
	_, err := t.bot.Send(msg)
	return err
}

// Alert pushes a one-line status message.
func (t *TelegramReporter) Alert(text string) error {
	return t.SendMessage(fmt.Sprintf("⚠️ <b>JobHawk</b>: %s", text))
}

// ManualIntervention asks the operator to handle something in the open
// browser, like a login checkpoint or captcha.
func (t *TelegramReporter) ManualIntervention(reason string) error {
	return t.SendMessage(fmt.Sprintf(
		"🧑‍💻 <b>JobHawk needs you</b>\n%s\nThe run continues once it's handled.", reason))
}

// RunSummary reports the end-of-run stats plus the ignore terms that
// rejected the most listings.
func (t *TelegramReporter) RunSummary(record database.RunRecord, topIgnores []database.IgnoreTermCount) error {
	var b strings.Builder
	status := "✅ clean exit"
	if !record.HappyExit {
		status = "❌ aborted"
	}
	fmt.Fprintf(&b, "🦅 <b>JobHawk run finished</b> (%s)\n", status)
	fmt.Fprintf(&b, "🗂 Platforms: %s\n", record.Platforms)
	fmt.Fprintf(&b, "🔢 Listings processed: %d\n", record.JobsParsed)
	fmt.Fprintf(&b, "⏱ Duration: %s\n", record.EndTime.Sub(record.StartTime).Round(time.Second))
	if len(topIgnores) > 0 {
		b.WriteString("\n🚫 <b>Top ignore terms</b>\n")
		for _, row := range topIgnores {
			fmt.Fprintf(&b, "  %d× [%s/%s] %s\n", row.Count, row.IgnoreCategory, row.IgnoreTerm, row.IgnoreType)
		}
	}
	return t.SendMessage(b.String())
}
