package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"health-assistant/internal/catalog"
	"health-assistant/internal/domain"
	"health-assistant/internal/language"
	"health-assistant/internal/messages"
)

type ParamGetter interface {
	GetParameter(ctx context.Context, name string) (string, error)
}

// ProfileStore persists per-sender state. UpdateProfile merges the given
// fields into the stored profile without touching the others.
type ProfileStore interface {
	GetProfile(ctx context.Context, senderID string) (domain.Profile, bool, error)
	UpdateProfile(ctx context.Context, senderID string, update domain.ProfileUpdate) error
	AppendFeedback(ctx context.Context, record domain.FeedbackRecord) error
}

// AIGateway calls a generative model. An empty result is not an error at this
// level; callers must treat it as a failure.
type AIGateway interface {
	Generate(ctx context.Context, req domain.GenerateRequest) (string, error)
}

// MediaFetcher downloads an attachment with the channel's credentials.
type MediaFetcher interface {
	Fetch(ctx context.Context, url string) (contentType string, data []byte, err error)
}

// Dependencies wires a Router. Store, AI, Media and Params are required.
type Dependencies struct {
	Store       ProfileStore
	AI          AIGateway
	Media       MediaFetcher
	Params      ParamGetter
	Resolver    *language.Resolver
	Vaccines    catalog.Vaccines
	Outbreaks   catalog.Outbreaks
	Messages    *messages.Catalog
	Logger      *slog.Logger
	ParamPrefix string
	Now         func() time.Time
}

// Router decides how each inbound message is answered. Every call to Route
// returns a non-empty reply.
//
// Conversation state lives only in the profile store and is read and written
// without locking, so two near-simultaneous messages from the same sender may
// interleave and lose an update.
type Router struct {
	store       ProfileStore
	ai          AIGateway
	media       MediaFetcher
	params      ParamGetter
	resolver    *language.Resolver
	vaccines    catalog.Vaccines
	outbreaks   catalog.Outbreaks
	messages    *messages.Catalog
	logger      *slog.Logger
	paramPrefix string
	now         func() time.Time

	cacheMu     sync.RWMutex
	cacheLoaded bool
	knowledge   string
}

func NewRouter(d Dependencies) (*Router, error) {
	if d.Store == nil {
		return nil, errors.New("usecase: profile store must not be nil")
	}
	if d.AI == nil {
		return nil, errors.New("usecase: ai gateway must not be nil")
	}
	if d.Media == nil {
		return nil, errors.New("usecase: media fetcher must not be nil")
	}
	if d.Params == nil {
		return nil, errors.New("usecase: param getter must not be nil")
	}
	paramPrefix := strings.TrimRight(strings.TrimSpace(d.ParamPrefix), "/")
	if paramPrefix == "" {
		return nil, errors.New("usecase: parameter prefix must not be empty")
	}
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	resolver := d.Resolver
	if resolver == nil {
		resolver = language.NewResolver(language.NewWhatlangDetector(), logger)
	}
	msgs := d.Messages
	if msgs == nil {
		msgs = messages.Default()
	}
	now := d.Now
	if now == nil {
		now = time.Now
	}
	return &Router{
		store:       d.Store,
		ai:          d.AI,
		media:       d.Media,
		params:      d.Params,
		resolver:    resolver,
		vaccines:    d.Vaccines,
		outbreaks:   d.Outbreaks,
		messages:    msgs,
		logger:      logger,
		paramPrefix: paramPrefix,
		now:         now,
	}, nil
}

// Route handles one inbound message. Priority: an active conversation state
// consumes the message, then fixed commands, then the AI fallback.
func (r *Router) Route(ctx context.Context, msg domain.InboundMessage) string {
	logger := r.logger.With("sender", msg.SenderID)
	text := strings.TrimSpace(msg.Body)

	profile, storeErr := r.loadProfile(ctx, msg.SenderID)
	if storeErr != nil {
		logger.Error("profile load failed", "err", storeErr)
	}

	cmd := classify(text)
	active := storeErr == nil && profile.State == domain.StateAwaitingDOB
	res := r.resolver.Resolve(profile.Language, text, active || cmd.kind != commandNone)
	if res.Persist && storeErr == nil {
		lang := res.Reply
		if err := r.store.UpdateProfile(ctx, msg.SenderID, domain.ProfileUpdate{Language: &lang}); err != nil {
			logger.Warn("language persist failed", "lang", lang, "err", err)
		}
	}
	lang := res.Reply

	var (
		reply string
		err   error
	)
	switch {
	case active:
		logger.Info("continuing conversation", "state", profile.State, "lang", lang)
		reply, err = r.continueSchedule(ctx, profile, lang, text)
	case cmd.kind != commandNone:
		logger.Info("dispatching command", "command", cmd.kind.String(), "lang", lang)
		reply, err = r.runCommand(ctx, cmd, profile, storeErr, lang)
	default:
		logger.Info("falling back to ai", "lang", lang, "media", msg.HasMedia())
		reply, err = r.fallback(ctx, lang, msg)
	}
	return r.compose(logger, lang, reply, err)
}

func (r *Router) loadProfile(ctx context.Context, senderID string) (domain.Profile, error) {
	p, found, err := r.store.GetProfile(ctx, senderID)
	if err != nil {
		return domain.NewProfile(senderID), newError(ErrorStoreUnavailable, "profile_load_error", err)
	}
	if !found {
		return domain.NewProfile(senderID), nil
	}
	p.SenderID = senderID
	p.Language = p.Language.OrDefault()
	p.State = domain.ParseConversationState(string(p.State))
	return p, nil
}

func (r *Router) runCommand(ctx context.Context, cmd command, p domain.Profile, storeErr error, lang domain.Language) (string, error) {
	if cmd.kind == commandDistrictHelp {
		return r.showDistrictHelp(lang), nil
	}
	if storeErr != nil {
		return "", storeErr
	}
	switch cmd.kind {
	case commandSchedule:
		return r.startSchedule(ctx, p, lang)
	case commandAlert:
		return r.lookupAlert(ctx, p, lang)
	case commandSetDistrict:
		return r.setDistrict(ctx, p, lang, cmd.arg)
	case commandFeedback:
		return r.recordFeedback(ctx, p, lang, cmd.arg)
	default:
		return "", nil
	}
}

// compose turns a handler result into the final reply. Errors are logged and
// replaced by a localized message; an empty reply becomes the generic error.
func (r *Router) compose(logger *slog.Logger, lang domain.Language, reply string, err error) string {
	t := r.messages.For(lang)
	if err != nil {
		attrs := []any{"err", err}
		var ue *Error
		if errors.As(err, &ue) {
			attrs = append(attrs, "kind", ue.Kind, "reason", ue.Reason)
		}
		if status, ok := upstreamStatusCode(err); ok {
			attrs = append(attrs, "upstream_status", status)
		}
		logger.Warn("reply replaced by fallback message", attrs...)
		return fallbackMessage(t, err)
	}
	if strings.TrimSpace(reply) == "" {
		logger.Warn("empty reply replaced by generic error")
		return t.GenericError
	}
	return reply
}

func fallbackMessage(t messages.Templates, err error) string {
	var ue *Error
	if !errors.As(err, &ue) {
		return t.GenericError
	}
	switch ue.Kind {
	case ErrorDateParse:
		return t.DateFormatError
	case ErrorAttachmentFetch, ErrorUnsupportedMedia:
		return t.ImageError
	case ErrorStoreUnavailable:
		return t.Unavailable
	default:
		return t.GenericError
	}
}
