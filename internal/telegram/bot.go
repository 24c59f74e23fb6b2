package telegram

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"ai-menu-planner/internal/app"
	"ai-menu-planner/internal/config"
	"ai-menu-planner/internal/menu"
	"ai-menu-planner/internal/metrics"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot wraps the Telegram API around the menu planner application.
type Bot struct {
	api          *tgbotapi.BotAPI
	application  *app.App
	metricsStore *metrics.Store
	cfg          *config.Config
}

// NewBot initializes the Telegram Bot and sets the Webhook.
func NewBot(cfg *config.Config, application *app.App, metricsStore *metrics.Store) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}

	log.Printf("Authorized on account %s", bot.Self.UserName)

	wh, _ := tgbotapi.NewWebhook(cfg.TelegramWebhookURL)
	resp, err := bot.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.TelegramWebhookURL, err)
	}
	log.Printf("Webhook set response: %s", resp.Description)

	return &Bot{
		api:          bot,
		application:  application,
		metricsStore: metricsStore,
		cfg:          cfg,
	}, nil
}

// RegisterHandlers registers the webhook handler with the default HTTP mux.
func (b *Bot) RegisterHandlers() {
	http.HandleFunc("/webhook", b.handleWebhook)
	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		log.Printf("Error parsing update: %v", err)
		return
	}

	if update.Message == nil {
		return
	}

	isAllowed := false
	for _, id := range b.cfg.TelegramAllowedUserIDs {
		if update.Message.From.ID == id {
			isAllowed = true
			break
		}
	}

	if !isAllowed {
		log.Printf("⚠️ Unauthorized access attempt from UserID: %d (@%s)", update.Message.From.ID, update.Message.From.UserName)
		return
	}

	go b.processMessage(update.Message)
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	if msg.Text == "/metrics" {
		b.handleMetricsRequest(msg)
		return
	}

	// URLs go to the importer, everything else is a menu request.
	if strings.HasPrefix(msg.Text, "http://") || strings.HasPrefix(msg.Text, "https://") {
		b.handleImportRequest(msg)
		return
	}

	b.handleMenuRequest(msg)
}

func (b *Bot) handleMetricsRequest(msg *tgbotapi.Message) {
	if msg.From.ID != b.cfg.AdminTelegramID {
		b.api.Send(tgbotapi.NewMessage(msg.Chat.ID, "⛔ *Access Denied*: Admin only."))
		return
	}
	b.handleMetricsCommand(msg.Chat.ID)
}

func (b *Bot) handleImportRequest(msg *tgbotapi.Message) {
	statusText := "✂️ *Importing recipe...*"
	replyMsg := tgbotapi.NewMessage(msg.Chat.ID, statusText)
	replyMsg.ParseMode = "Markdown"
	sentMsg, err := b.api.Send(replyMsg)
	if err != nil {
		log.Printf("Failed to send initial reply: %v", err)
		return
	}

	rec, err := b.application.ImportRecipe(context.Background(), msg.Text)
	var finalText string
	if err != nil {
		log.Printf("Error importing recipe: %v", err)
		safeErr := strings.ReplaceAll(err.Error(), "`", "'")
		finalText = fmt.Sprintf("❌ *Error importing recipe:*\n```\n%v\n```", safeErr)
	} else {
		finalText = fmt.Sprintf("✅ *Recipe Saved!*\n\n*Title:* %s", rec.Title)
	}
	edit := tgbotapi.NewEditMessageText(msg.Chat.ID, sentMsg.MessageID, finalText)
	edit.ParseMode = "Markdown"
	b.api.Send(edit)
}

func (b *Bot) handleMenuRequest(msg *tgbotapi.Message) {
	statusText := "🧑‍🍳 *Thinking...* \n(Composing your weekly menu and its recipes)"
	replyMsg := tgbotapi.NewMessage(msg.Chat.ID, statusText)
	replyMsg.ParseMode = "Markdown"
	sentMsg, err := b.api.Send(replyMsg)
	if err != nil {
		log.Printf("Failed to send initial reply: %v", err)
		return
	}

	log.Printf("Generating menu for request: %s", msg.Text)

	plan, processed, err := b.application.GenerateMenuWithRecipes(context.Background(), msg.Text)
	if err != nil {
		log.Printf("Error generating menu: %v", err)
		safeErr := strings.ReplaceAll(err.Error(), "`", "'")
		finalText := fmt.Sprintf("❌ *Error generating menu:*\n```\n%v\n```", safeErr)
		edit := tgbotapi.NewEditMessageText(msg.Chat.ID, sentMsg.MessageID, finalText)
		edit.ParseMode = "Markdown"
		b.api.Send(edit)
		return
	}

	menuText, recipesText := formatMenuMarkdownParts(plan, processed)

	edit := tgbotapi.NewEditMessageText(msg.Chat.ID, sentMsg.MessageID, menuText)
	edit.ParseMode = "Markdown"
	b.api.Send(edit)

	recipesMsg := tgbotapi.NewMessage(msg.Chat.ID, recipesText)
	recipesMsg.ParseMode = "Markdown"
	b.api.Send(recipesMsg)
}

func formatMenuMarkdownParts(plan *menu.WeeklyMenuPlan, processed []string) (string, string) {
	var pb strings.Builder
	pb.WriteString(fmt.Sprintf("📅 *Menu de la semaine du %s* (%s)\n\n", plan.WeekStartDate, plan.Season))

	for _, day := range plan.DailyMenus {
		pb.WriteString(fmt.Sprintf("*%s*\n", day.Day))
		writeMealLine(&pb, "Déjeuner", day.Lunch)
		writeMealLine(&pb, "Dîner", day.Dinner)
		pb.WriteString("\n")
	}

	var rb strings.Builder
	rb.WriteString(fmt.Sprintf("📖 *Recipes* (%d generated)\n\n", len(processed)))
	for _, slug := range processed {
		rb.WriteString(fmt.Sprintf("• %s\n", slug))
	}

	return pb.String(), rb.String()
}

func writeMealLine(sb *strings.Builder, label string, meal menu.DailyMeal) {
	names := make([]string, 0, 3)
	for _, dish := range []*menu.DishInfo{meal.Starter, meal.MainCourse, meal.Dessert} {
		if dish != nil {
			names = append(names, dish.Name)
		}
	}
	sb.WriteString(fmt.Sprintf("%s: %s\n", label, strings.Join(names, " · ")))
}

func (b *Bot) handleMetricsCommand(chatID int64) {
	usage, err := b.metricsStore.GetDailyUsage(7)
	if err != nil {
		b.api.Send(tgbotapi.NewMessage(chatID, "❌ Error fetching metrics."))
		return
	}

	health := metrics.GetSysHealth("data")

	var sb strings.Builder
	sb.WriteString("📊 *Usage & Health Report*\n\n")

	sb.WriteString("🗓 *Recent LLM Activity*\n")
	if len(usage) == 0 {
		sb.WriteString("_No data yet_\n")
	}
	for _, d := range usage {
		sb.WriteString(fmt.Sprintf("• *%s*: %d tokens (%d execs)\n", d.Date, d.TotalPrompt+d.TotalCompletion, d.TotalExecution))
	}

	sb.WriteString("\n🧠 *System Health*\n")
	sb.WriteString(fmt.Sprintf("• RAM: %dMB (Alloc) / %dMB (Sys)\n", health.AllocMB, health.SysMB))
	sb.WriteString(fmt.Sprintf("• Goroutines: %d\n", health.Goroutines))
	sb.WriteString(fmt.Sprintf("• Disk Data: %s\n", health.DataDiskSize))

	msg := tgbotapi.NewMessage(chatID, sb.String())
	msg.ParseMode = "Markdown"
	b.api.Send(msg)
}
