// Package bot implements the conversation logic: the creation state machine,
// search and browse, post management, moderation, and keyword alerts.
package bot

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"barterbot/internal/domain"
	"barterbot/internal/metrics"
	"barterbot/internal/telegram"
	"barterbot/internal/validate"
)

// API is the slice of the Telegram client the handlers use. Tests substitute
// a fake.
type API interface {
	SendMessage(ctx context.Context, req telegram.SendMessageRequest) (*telegram.Message, error)
	EditMessageText(ctx context.Context, req telegram.EditMessageTextRequest) error
	EditMessageReplyMarkup(ctx context.Context, req telegram.EditMessageReplyMarkupRequest) error
	AnswerCallbackQuery(ctx context.Context, req telegram.AnswerCallbackQueryRequest) error
}

// Store is the full persistence surface the handlers use.
type Store interface {
	domain.PostRepository
	domain.FavoriteRepository
	domain.AlertRepository
}

// Authorizer decides who is an admin. Injected so the policy source (env
// allow-list today) stays out of the handlers.
type Authorizer interface {
	IsAdmin(userID int64) bool
	AdminIDs() []int64
}

// Options tune the handler. Zero values fall back to production defaults.
type Options struct {
	Limits           validate.Limits
	PageSize         int
	SearchLimit      int
	TitleSearchLimit int

	// Username is the bot's own handle, used for share deep links. Usually
	// filled from getMe at startup.
	Username string
}

// Bot routes updates to the conversation handlers.
type Bot struct {
	api      API
	store    Store
	auth     Authorizer
	sessions *SessionStore
	tracker  *Tracker
	log      *slog.Logger

	limits           validate.Limits
	pageSize         int
	searchLimit      int
	titleSearchLimit int
	username         string
	now              func() time.Time
}

// New wires a Bot. All collaborators are injected.
func New(api API, store Store, auth Authorizer, sessions *SessionStore, tracker *Tracker, log *slog.Logger, opts Options) *Bot {
	if opts.PageSize == 0 {
		opts.PageSize = 8
	}
	if opts.SearchLimit == 0 {
		opts.SearchLimit = 20
	}
	if opts.TitleSearchLimit == 0 {
		opts.TitleSearchLimit = 10
	}
	if opts.Limits == (validate.Limits{}) {
		opts.Limits = validate.DefaultLimits()
	}
	return &Bot{
		api:              api,
		store:            store,
		auth:             auth,
		sessions:         sessions,
		tracker:          tracker,
		log:              log,
		limits:           opts.Limits,
		pageSize:         opts.PageSize,
		searchLimit:      opts.SearchLimit,
		titleSearchLimit: opts.TitleSearchLimit,
		username:         opts.Username,
		now:              time.Now,
	}
}

// SetUsername records the bot's handle once getMe resolves.
func (b *Bot) SetUsername(username string) {
	b.username = username
}

// NotifyShutdown tells every admin the bot is going down.
func (b *Bot) NotifyShutdown(ctx context.Context) {
	for _, adminID := range b.auth.AdminIDs() {
		b.send(ctx, adminID, msgShutdown, nil)
	}
}

// HandleUpdate processes one update. Handler errors are logged and answered
// with a generic message; they never stop the poll loop.
func (b *Bot) HandleUpdate(ctx context.Context, u telegram.Update) {
	metrics.UpdatesTotal.Inc()

	switch {
	case u.Message != nil && u.Message.From != nil && !u.Message.From.IsBot:
		if err := b.handleMessage(ctx, u.Message); err != nil {
			b.fail(ctx, u.Message.Chat.ID, u.Message.From.ID, err)
		}
	case u.CallbackQuery != nil:
		if err := b.handleCallback(ctx, u.CallbackQuery); err != nil {
			chatID := int64(0)
			if u.CallbackQuery.Message != nil {
				chatID = u.CallbackQuery.Message.Chat.ID
			}
			b.fail(ctx, chatID, u.CallbackQuery.From.ID, err)
		}
	}
}

// fail logs the error, clears the user's conversation state and sends the
// generic apology so the user is never stuck in a broken flow.
func (b *Bot) fail(ctx context.Context, chatID, userID int64, err error) {
	metrics.HandlerErrorsTotal.Inc()
	b.log.Error("handler error", "error", err, "user_id", userID)

	b.sessions.Clear(userID)
	b.sessions.ClearEdit(userID)
	b.sessions.ClearReport(userID)

	if chatID != 0 {
		b.send(ctx, chatID, msgError, mainMenuKeyboard())
	}
}

// send sends a plain message, logging rather than propagating failures:
// delivery problems should not unwind a flow that already committed.
func (b *Bot) send(ctx context.Context, chatID int64, text string, markup any) {
	_, err := b.api.SendMessage(ctx, telegram.SendMessageRequest{
		ChatID:      chatID,
		Text:        text,
		ReplyMarkup: markup,
	})
	if err != nil {
		b.log.Error("send message", "error", err, "chat_id", chatID)
	}
}

// sendMarkdown sends Markdown-formatted text, used for rendered posts.
func (b *Bot) sendMarkdown(ctx context.Context, chatID int64, text string, markup any) {
	_, err := b.api.SendMessage(ctx, telegram.SendMessageRequest{
		ChatID:                chatID,
		Text:                  text,
		ParseMode:             "Markdown",
		ReplyMarkup:           markup,
		DisableWebPagePreview: true,
	})
	if err != nil {
		b.log.Error("send message", "error", err, "chat_id", chatID)
	}
}

func (b *Bot) answer(ctx context.Context, callbackID, toast string) {
	err := b.api.AnswerCallbackQuery(ctx, telegram.AnswerCallbackQueryRequest{
		CallbackQueryID: callbackID,
		Text:            toast,
	})
	if err != nil {
		b.log.Error("answer callback", "error", err)
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *telegram.Message) error {
	userID := msg.From.ID
	chatID := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)

	err := b.store.UpsertUser(ctx, domain.User{
		ID:        userID,
		Username:  msg.From.Username,
		FirstName: msg.From.FirstName,
	})
	if err != nil {
		return err
	}

	if strings.HasPrefix(text, "/") {
		return b.handleCommand(ctx, chatID, userID, text)
	}

	// A pending report or edit claims the next free-text message.
	if report, ok := b.sessions.GetReport(userID); ok {
		return b.handleReportReason(ctx, chatID, userID, report, text)
	}
	if edit, ok := b.sessions.GetEdit(userID); ok {
		return b.handleEditInput(ctx, chatID, userID, edit, text)
	}

	if sess, ok := b.sessions.Get(userID); ok && sess.Step != StepNone {
		return b.handleStep(ctx, chatID, userID, sess, text)
	}

	return b.handleMenu(ctx, chatID, userID, text)
}

func (b *Bot) handleCommand(ctx context.Context, chatID, userID int64, text string) error {
	cmd, payload, _ := strings.Cut(text, " ")
	cmd, _, _ = strings.Cut(cmd, "@")

	switch cmd {
	case "/start":
		b.sessions.Clear(userID)
		if id, ok := strings.CutPrefix(payload, "post_"); ok {
			return b.showSharedPost(ctx, chatID, userID, id)
		}
		b.send(ctx, chatID, msgWelcome, mainMenuKeyboard())
		return nil

	case "/help":
		help := msgHelp
		if b.auth.IsAdmin(userID) {
			help += msgHelpAdmin
		}
		b.sendMarkdown(ctx, chatID, help, mainMenuKeyboard())
		return nil

	case "/cancel":
		b.sessions.Clear(userID)
		b.sessions.ClearEdit(userID)
		b.sessions.ClearReport(userID)
		b.send(ctx, chatID, msgCancelled, mainMenuKeyboard())
		return nil

	case "/testpost":
		if !b.auth.IsAdmin(userID) {
			b.send(ctx, chatID, msgUnknown, mainMenuKeyboard())
			return nil
		}
		sess := b.sessions.Start(userID, StepTitle)
		sess.Private = true
		b.send(ctx, chatID, msgTestPostStart, cancelKeyboard())
		return nil
	}

	b.send(ctx, chatID, msgUnknown, mainMenuKeyboard())
	return nil
}

func (b *Bot) handleMenu(ctx context.Context, chatID, userID int64, text string) error {
	switch text {
	case menuCreate:
		b.sessions.Start(userID, StepTitle)
		b.send(ctx, chatID, msgAskTitle, cancelKeyboard())
		return nil
	case menuSearch:
		b.sessions.Start(userID, StepSearchType)
		b.send(ctx, chatID, msgSearchType, searchTypeKeyboard())
		return nil
	case menuBrowse:
		b.send(ctx, chatID, msgBrowseCategories, browseCategoriesKeyboard())
		return nil
	case menuMyPosts:
		return b.showMyPosts(ctx, chatID, userID)
	case menuSaved:
		return b.showSavedPosts(ctx, chatID, userID)
	case menuAlerts:
		b.send(ctx, chatID, msgAlertMenu, alertMenuKeyboard())
		return nil
	case menuHelp:
		return b.handleCommand(ctx, chatID, userID, "/help")
	}

	b.send(ctx, chatID, msgUnknown, mainMenuKeyboard())
	return nil
}

// handleStep routes free text while a conversation is in flight.
func (b *Bot) handleStep(ctx context.Context, chatID, userID int64, sess *Session, text string) error {
	switch sess.Step {
	case StepTitle, StepDescription, StepPriceRange, StepPortfolio, StepContact, StepTags:
		return b.handleCreateInput(ctx, chatID, userID, sess, text)
	case StepPricing, StepVisibility:
		// These steps are button-driven; nudge back to the buttons.
		if sess.Step == StepPricing {
			b.send(ctx, chatID, msgAskPricing, pricingKeyboard())
		} else {
			b.send(ctx, chatID, msgAskVisibility, visibilityKeyboard())
		}
		return nil
	case StepSearchType:
		b.send(ctx, chatID, msgSearchType, searchTypeKeyboard())
		return nil
	case StepSearchFull:
		return b.runFullSearch(ctx, chatID, userID, text)
	case StepSearchTitles:
		return b.runTitleSearch(ctx, chatID, userID, text)
	case StepAlertAdd:
		return b.handleAlertAdd(ctx, chatID, userID, text)
	case StepAlertReplace:
		return b.handleAlertReplace(ctx, chatID, userID, text)
	}

	b.sessions.Clear(userID)
	b.send(ctx, chatID, msgUnknown, mainMenuKeyboard())
	return nil
}

func (b *Bot) handleCallback(ctx context.Context, cb *telegram.CallbackQuery) error {
	userID := cb.From.ID
	if cb.Message == nil {
		b.answer(ctx, cb.ID, "")
		return nil
	}
	chatID := cb.Message.Chat.ID
	messageID := cb.Message.MessageID

	err := b.store.UpsertUser(ctx, domain.User{
		ID:        userID,
		Username:  cb.From.Username,
		FirstName: cb.From.FirstName,
	})
	if err != nil {
		return err
	}

	action, err := ParseAction(cb.Data)
	if err != nil {
		b.log.Warn("unknown callback", "data", cb.Data, "user_id", userID)
		b.answer(ctx, cb.ID, "")
		return nil
	}

	switch a := action.(type) {
	case Noop:
		b.answer(ctx, cb.ID, "")
		return nil

	case CancelOperation:
		b.answer(ctx, cb.ID, "")
		b.sessions.Clear(userID)
		b.sessions.ClearEdit(userID)
		b.sessions.ClearReport(userID)
		b.send(ctx, chatID, msgCancelled, mainMenuKeyboard())
		return nil

	case PricingChosen:
		b.answer(ctx, cb.ID, "")
		return b.handlePricingChosen(ctx, chatID, userID, a.Mode)

	case VisibilityChosen:
		b.answer(ctx, cb.ID, "")
		return b.handleVisibilityChosen(ctx, chatID, userID, a.Visibility)

	case SearchFull:
		b.answer(ctx, cb.ID, "")
		b.sessions.Start(userID, StepSearchFull)
		b.send(ctx, chatID, msgAskSearchFull, cancelKeyboard())
		return nil

	case SearchTitles:
		b.answer(ctx, cb.ID, "")
		b.sessions.Start(userID, StepSearchTitles)
		b.send(ctx, chatID, msgAskSearchTitles, cancelKeyboard())
		return nil

	case ViewPost:
		b.answer(ctx, cb.ID, "")
		return b.showPost(ctx, chatID, userID, a)

	case Browse:
		b.answer(ctx, cb.ID, "")
		return b.showBrowsePage(ctx, chatID, messageID, a.Category, a.Page, true)

	case BrowsePost:
		b.answer(ctx, cb.ID, "")
		return b.showPost(ctx, chatID, userID, ViewPost{PostID: a.PostID})

	case BackToBrowseOptions:
		b.answer(ctx, cb.ID, "")
		return b.api.EditMessageText(ctx, telegram.EditMessageTextRequest{
			ChatID:      chatID,
			MessageID:   messageID,
			Text:        msgBrowseCategories,
			ReplyMarkup: browseCategoriesKeyboard(),
		})

	case Contact:
		return b.handleContact(ctx, cb, a.PostID)

	case CopyContact:
		return b.handleCopyContact(ctx, cb, a.PostID)

	case Save:
		return b.handleSave(ctx, cb, a.PostID)

	case Share:
		return b.handleShare(ctx, cb, a.PostID, false)

	case ShareOwn:
		return b.handleShare(ctx, cb, a.PostID, true)

	case Report:
		b.answer(ctx, cb.ID, "")
		b.sessions.StartReport(userID, a.PostID)
		b.send(ctx, chatID, msgAskReportReason, reportCancelKeyboard(a.PostID))
		return nil

	case CancelReport:
		b.answer(ctx, cb.ID, "")
		b.sessions.ClearReport(userID)
		b.send(ctx, chatID, msgReportCancelled, mainMenuKeyboard())
		return nil

	case EditMenu:
		return b.handleEditMenu(ctx, cb, a.PostID)

	case EditField:
		return b.handleEditField(ctx, cb, a.PostID, a.Field)

	case Toggle:
		return b.handleToggle(ctx, cb, a.PostID)

	case Delete:
		b.answer(ctx, cb.ID, "")
		b.send(ctx, chatID, msgConfirmDelete, deleteConfirmKeyboard(a.PostID))
		return nil

	case ConfirmDelete:
		return b.handleConfirmDelete(ctx, cb, a.PostID)

	case CancelDelete:
		b.answer(ctx, cb.ID, "")
		b.send(ctx, chatID, msgDeleteCancelled, mainMenuKeyboard())
		return nil

	case Stats:
		return b.handleStats(ctx, cb, a.PostID)

	case BackToPost:
		b.answer(ctx, cb.ID, "")
		return b.showOwnPost(ctx, chatID, userID, a.PostID)

	case BackToMyPosts:
		b.answer(ctx, cb.ID, "")
		return b.showMyPosts(ctx, chatID, userID)

	case BackToMain:
		b.answer(ctx, cb.ID, "")
		b.send(ctx, chatID, msgCancelled, mainMenuKeyboard())
		return nil

	case AlertMenu:
		b.answer(ctx, cb.ID, "")
		b.send(ctx, chatID, msgAlertMenu, alertMenuKeyboard())
		return nil

	case AlertAddKeyword:
		b.answer(ctx, cb.ID, "")
		b.sessions.Start(userID, StepAlertAdd)
		b.send(ctx, chatID, msgAskAlertKeyword, cancelKeyboard())
		return nil

	case AlertShowKeywords:
		return b.handleAlertShow(ctx, cb)

	case AlertRemoveKeyword:
		return b.handleAlertRemoveMenu(ctx, cb)

	case AlertReplaceAll:
		b.answer(ctx, cb.ID, "")
		b.sessions.Start(userID, StepAlertReplace)
		b.send(ctx, chatID, msgAskAlertReplace, cancelKeyboard())
		return nil

	case AlertDelete:
		return b.handleAlertDelete(ctx, cb, a.Keyword)
	}

	b.answer(ctx, cb.ID, "")
	return nil
}
