// internal/assistant/service.go
package assistant

import (
	"context"
	"time"

	"simmer-assistant/internal/common/logger"
	"simmer-assistant/internal/common/metrics"
	"simmer-assistant/internal/common/observability"
	"simmer-assistant/internal/models"
)

// LoyaltyReader resolves a SimmerLovers profile by phone. A nil profile with a
// nil error means the phone is not enrolled.
type LoyaltyReader interface {
	ProfileByPhone(ctx context.Context, phone string) (*models.LoyaltyProfile, error)
}

// Request is one inbound chat message plus the client-side state that travels
// with it.
type Request struct {
	SessionID string            `json:"sessionId,omitempty"`
	Message   string            `json:"message"`
	Phone     string            `json:"phone,omitempty"`
	Name      string            `json:"name,omitempty"`
	Cart      []models.CartItem `json:"cart,omitempty"`
	Location  string            `json:"locationId,omitempty"`
	Language  string            `json:"language,omitempty"`
}

// Response is the envelope returned for every processed message. Lookup
// failures degrade the Reply inside it; they never surface as transport
// errors.
type Response struct {
	SessionID string       `json:"sessionId"`
	Assistant string       `json:"assistant"`
	Intent    Intent       `json:"intent"`
	Language  string       `json:"language"`
	State     SessionState `json:"state"`
	Reply     Reply        `json:"reply"`
}

// Service ties one assistant profile to its classifier, generator and session
// store. ANIMA and SOPHIA are two Service instances over the same building
// blocks.
type Service struct {
	profile    *Profile
	classifier *Classifier
	generator  *Generator
	sessions   *SessionStore
	loyalty    LoyaltyReader
	obs        *observability.Observability
	logger     logger.Logger
}

// NewService assembles a chat service for one profile. loyalty and obs may be
// nil.
func NewService(profile *Profile, generator *Generator, sessions *SessionStore, loyalty LoyaltyReader, obs *observability.Observability, log logger.Logger) *Service {
	return &Service{
		profile:    profile,
		classifier: NewClassifier(profile.Table),
		generator:  generator,
		sessions:   sessions,
		loyalty:    loyalty,
		obs:        obs,
		logger:     log.WithFields(map[string]interface{}{"assistant": profile.Name}),
	}
}

// Profile exposes the service's persona.
func (s *Service) Profile() *Profile {
	return s.profile
}

// HandleMessage processes one user message end to end: session resolution,
// language and location detection, intent classification, reply generation
// and transcript persistence.
func (s *Service) HandleMessage(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	sess, _, err := s.sessions.GetOrCreate(ctx, s.profile.Name, req.SessionID)
	if err != nil {
		return nil, err
	}

	lang := req.Language
	if lang == "" {
		lang = DetectLanguage(req.Message)
	}
	sess.Language = lang

	if req.Phone != "" {
		sess.Phone = req.Phone
	}

	intent, entities := s.classifier.Detect(req.Message)

	if s.profile.EnableLocationRouting {
		if locID := DetectLocation(req.Message, s.profile.LocationAliases); locID != "" {
			entities.LocationID = locID
			sess.LocationID = locID
		} else if sess.LocationID != "" {
			entities.LocationID = sess.LocationID
		}
	}

	conv := s.buildContext(ctx, req, sess, lang)
	reply := s.generator.Generate(ctx, intent, entities, req.Message, conv)

	if err := s.sessions.Append(ctx, sess, req.Message, reply); err != nil {
		// The reply is already computed; losing one transcript write should
		// not turn into a user-facing failure.
		s.logger.Warn("transcript append failed", map[string]interface{}{
			"sessionId": sess.ID,
			"error":     err.Error(),
		})
	}

	metrics.AssistantMessages.WithLabelValues(s.profile.Name, string(intent)).Inc()
	if s.obs != nil {
		s.obs.RecordMessageProcessed(ctx, s.profile.Name, string(intent))
		s.obs.RecordMessageDuration(ctx, time.Since(start), s.profile.Name)
	}

	return &Response{
		SessionID: sess.ID,
		Assistant: s.profile.Name,
		Intent:    intent,
		Language:  lang,
		State:     sess.State,
		Reply:     reply,
	}, nil
}

// Nudge checks whether a quiet collapsed session should receive the proactive
// opener. The returned Response is nil when no nudge fires.
func (s *Service) Nudge(ctx context.Context, sessionID, language string) (*Response, error) {
	sess, err := s.sessions.Get(ctx, s.profile.Name, sessionID)
	if err != nil {
		return nil, err
	}
	if language == "" {
		language = sess.Language
	}

	text, err := s.sessions.MaybeProactive(ctx, sess, s.profile, language)
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, nil
	}
	return &Response{
		SessionID: sess.ID,
		Assistant: s.profile.Name,
		Intent:    IntentGreeting,
		Language:  language,
		State:     sess.State,
		Reply:     Reply{Text: text},
	}, nil
}

// StartSession mints a fresh collapsed session for the widget to hold on to.
func (s *Service) StartSession(ctx context.Context) (*Session, error) {
	return s.sessions.Create(ctx, s.profile.Name)
}

// buildContext assembles the personalization context for one message. The
// loyalty lookup degrades to an anonymous context on failure.
func (s *Service) buildContext(ctx context.Context, req Request, sess *Session, lang string) models.ConversationContext {
	conv := models.ConversationContext{
		CustomerName: req.Name,
		Phone:        sess.Phone,
		Cart:         req.Cart,
		LocationID:   sess.LocationID,
		Language:     lang,
		Now:          time.Now(),
	}
	if conv.LocationID == "" {
		conv.LocationID = req.Location
	}

	if s.loyalty != nil && conv.Phone != "" {
		profile, err := s.loyalty.ProfileByPhone(ctx, conv.Phone)
		if err != nil {
			s.logger.Warn("loyalty lookup failed", map[string]interface{}{"error": err.Error()})
			metrics.LookupFailures.WithLabelValues("loyalty").Inc()
		} else if profile != nil {
			if conv.CustomerName == "" {
				conv.CustomerName = profile.Name
			}
			conv.LoyaltyTier = profile.Tier
			conv.Points = profile.Points
			conv.VisitCount = profile.VisitCount
			conv.Favorites = profile.Favorites
		}
	}
	return conv
}
