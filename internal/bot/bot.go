package bot

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"planner-bot/internal/model"
	"planner-bot/internal/service"
	"planner-bot/internal/store"
)

// Bot aggregates the Telegram API with the planner services. Dialog state
// lives only in process memory: a restart discards every in-flight flow.
type Bot struct {
	api      *tgbotapi.BotAPI
	store    *store.Store
	planner  *service.Planner
	reports  *service.ReportService
	sessions map[int64]dialogState
	mu       sync.Mutex
}

func New(token string, st *store.Store, planner *service.Planner, reports *service.ReportService) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	log.Printf("[info] bot authorized on account %s", api.Self.UserName)

	return &Bot{
		api:      api,
		store:    st,
		planner:  planner,
		reports:  reports,
		sessions: make(map[int64]dialogState),
	}, nil
}

// Start begins polling updates until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := b.api.GetUpdatesChan(updateConfig)

	log.Println("[info] start polling updates")

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	for update := range updates {
		switch {
		case update.CallbackQuery != nil:
			if err := b.handleCallback(update.CallbackQuery); err != nil {
				log.Printf("handle callback: %v", err)
			}
		case update.Message != nil:
			if update.Message.Chat == nil || !update.Message.Chat.IsPrivate() {
				continue
			}
			if err := b.handleMessage(update.Message); err != nil {
				log.Printf("handle message: %v", err)
			}
		}
	}

	return nil
}

func (b *Bot) handleMessage(msg *tgbotapi.Message) error {
	if msg.From == nil {
		return nil
	}

	if msg.IsCommand() {
		log.Printf("[info] command from %d: /%s", msg.From.ID, msg.Command())
		switch msg.Command() {
		case "start":
			return b.handleStart(msg)
		default:
			return b.sendView(msg.Chat.ID, "Команда не поддерживается. Нажми /start, чтобы открыть меню.", mainMenuKeyboard())
		}
	}

	return b.handleDialogText(msg)
}

func (b *Bot) handleStart(msg *tgbotapi.Message) error {
	// Touch the record so a first-time user is created and persisted.
	if err := b.store.View(msg.From.ID, func(*model.UserRecord) {}); err != nil {
		return err
	}
	b.clearSession(msg.From.ID)
	return b.sendView(msg.Chat.ID, greetingText(msg.From.FirstName), mainMenuKeyboard())
}

// handleDialogText advances the per-user dialog with a free-text message
// and executes the resulting effect.
func (b *Bot) handleDialogText(msg *tgbotapi.Message) error {
	userID := msg.From.ID
	chatID := msg.Chat.ID

	state := b.getSession(userID)
	next, eff := advanceDialog(state, msg.Text)
	b.setSession(userID, next)

	switch eff.kind {
	case effectHint:
		return b.sendView(chatID, "Я понимаю только кнопки меню. Нажми /start, чтобы открыть его.", mainMenuKeyboard())
	case effectReject:
		return b.sendView(chatID, "Текст не должен быть пустым. Попробуй ещё раз.", cancelKeyboard("◀️ Отмена", cbMainMenu))
	case effectAskCategory:
		kb, err := b.buildKeyboard(userID, func(rec *model.UserRecord) tgbotapi.InlineKeyboardMarkup {
			return categoryPickerKeyboard(rec, cbNewCatPrefix)
		})
		if err != nil {
			return err
		}
		return b.sendView(chatID, "🏷 Выберите категорию для задачи:", kb)
	case effectAskEditCategory:
		kb, err := b.buildKeyboard(userID, func(rec *model.UserRecord) tgbotapi.InlineKeyboardMarkup {
			return categoryPickerKeyboard(rec, cbPickCatPrefix)
		})
		if err != nil {
			return err
		}
		return b.sendView(chatID, "🏷 Выберите новую категорию:", kb)
	case effectCommitRename:
		task, err := b.planner.RenameTask(userID, eff.taskID, eff.text)
		if errors.Is(err, service.ErrNotFound) {
			return b.sendView(chatID, "Задача не найдена.", mainMenuKeyboard())
		}
		if err != nil {
			return err
		}
		log.Printf("[info] task renamed id=%d user=%d", task.ID, userID)
		return b.sendView(chatID, fmt.Sprintf("✅ Название изменено!\n\n%s", html.EscapeString(task.Title)), editKeyboard(task.ID))
	case effectCommitNote:
		note, err := b.planner.AddNote(userID, eff.text, time.Now())
		if err != nil {
			return err
		}
		log.Printf("[info] note created id=%d user=%d", note.ID, userID)
		kb, err := b.buildKeyboard(userID, notesKeyboard)
		if err != nil {
			return err
		}
		return b.sendView(chatID, "✅ Заметка сохранена!", kb)
	case effectCommitCategory:
		err := b.planner.AddCategory(userID, eff.text)
		kb, kbErr := b.buildKeyboard(userID, categoriesKeyboard)
		if kbErr != nil {
			return kbErr
		}
		if errors.Is(err, service.ErrDuplicateCategory) {
			return b.sendView(chatID, "❌ Такая категория уже существует!", kb)
		}
		if err != nil {
			return err
		}
		log.Printf("[info] category added user=%d", userID)
		return b.sendView(chatID, fmt.Sprintf("✅ Категория '%s' добавлена!", html.EscapeString(eff.text)), kb)
	default:
		return nil
	}
}

// SendReports sends a task summary to every known user that keeps
// notifications enabled.
func (b *Bot) SendReports(ctx context.Context) error {
	now := time.Now()
	for _, userID := range b.store.UserIDs() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		text, enabled, err := b.reports.Summary(userID, now)
		if err != nil {
			log.Printf("build summary for user %d: %v", userID, err)
			continue
		}
		if !enabled {
			continue
		}
		if err := b.sendText(userID, text); err != nil {
			log.Printf("send summary to %d: %v", userID, err)
		}
	}
	return nil
}

func (b *Bot) getSession(userID int64) dialogState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sessions[userID]
}

func (b *Bot) setSession(userID int64, state dialogState) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if state.stage == stageIdle {
		delete(b.sessions, userID)
		return
	}
	b.sessions[userID] = state
}

func (b *Bot) clearSession(userID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.sessions, userID)
}

// buildKeyboard renders a keyboard from the current record state.
func (b *Bot) buildKeyboard(userID int64, fn func(*model.UserRecord) tgbotapi.InlineKeyboardMarkup) (tgbotapi.InlineKeyboardMarkup, error) {
	var kb tgbotapi.InlineKeyboardMarkup
	err := b.store.View(userID, func(rec *model.UserRecord) {
		kb = fn(rec)
	})
	return kb, err
}

func (b *Bot) sendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) sendView(chatID int64, text string, markup tgbotapi.InlineKeyboardMarkup) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = markup
	_, err := b.api.Send(msg)
	return err
}

// editView rewrites the menu message in place, the way every callback
// navigation works.
func (b *Bot) editView(chatID int64, messageID int, text string, markup tgbotapi.InlineKeyboardMarkup) error {
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, markup)
	edit.ParseMode = tgbotapi.ModeHTML
	_, err := b.api.Send(edit)
	return err
}

// answer acknowledges a callback query, optionally with an ephemeral toast.
func (b *Bot) answer(callbackID, text string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		log.Printf("callback ack: %v", err)
	}
}
