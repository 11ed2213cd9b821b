package assistant

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simmer-assistant/internal/common/logger"
	"simmer-assistant/internal/models"
)

type stubLoyalty struct {
	profile *models.LoyaltyProfile
	err     error
}

func (s *stubLoyalty) ProfileByPhone(ctx context.Context, phone string) (*models.LoyaltyProfile, error) {
	return s.profile, s.err
}

func newTestService(t *testing.T, menu MenuReader, orders OrderReader, loyalty LoyaltyReader) *Service {
	store, _ := newTestSessionStore(t, time.Minute)
	profile := AnimaProfile(genLocations())
	gen := NewGenerator(profile, menu, orders, nil, 6, logger.NewNoOpLogger())
	return NewService(profile, gen, store, loyalty, nil, logger.NewNoOpLogger())
}

func TestHandleMessage_VegetarianPizzaEndToEnd(t *testing.T) {
	svc := newTestService(t, &stubMenu{items: genItems(), locs: genLocations()}, nil, nil)

	resp, err := svc.HandleMessage(context.Background(), Request{Message: "¿Tienen pizza vegetariana?"})
	require.NoError(t, err)

	assert.Equal(t, IntentDietary, resp.Intent)
	assert.Equal(t, "es", resp.Language)
	assert.Equal(t, StateExpanded, resp.State)
	require.Len(t, resp.Reply.SuggestedItems, 1)
	assert.Equal(t, "pz-margherita", resp.Reply.SuggestedItems[0].ID)
	assert.NotEmpty(t, resp.SessionID)
}

func TestHandleMessage_SessionContinuity(t *testing.T) {
	svc := newTestService(t, &stubMenu{items: genItems(), locs: genLocations()}, nil, nil)
	ctx := context.Background()

	first, err := svc.HandleMessage(ctx, Request{Message: "hola"})
	require.NoError(t, err)

	second, err := svc.HandleMessage(ctx, Request{SessionID: first.SessionID, Message: "gracias"})
	require.NoError(t, err)
	assert.Equal(t, first.SessionID, second.SessionID)
	assert.Equal(t, IntentThanks, second.Intent)
}

func TestHandleMessage_StaleSessionIDMintsNewSession(t *testing.T) {
	svc := newTestService(t, &stubMenu{items: genItems(), locs: genLocations()}, nil, nil)

	resp, err := svc.HandleMessage(context.Background(), Request{SessionID: "expired-or-bogus", Message: "hola"})
	require.NoError(t, err)
	assert.NotEqual(t, "expired-or-bogus", resp.SessionID)
}

func TestHandleMessage_TrackOrderWithoutPhoneReturnsEnvelope(t *testing.T) {
	svc := newTestService(t, &stubMenu{items: genItems(), locs: genLocations()},
		&stubOrders{orders: []models.Order{{ID: "ord-1"}}}, nil)

	resp, err := svc.HandleMessage(context.Background(), Request{Message: "¿dónde está mi pedido?"})
	require.NoError(t, err)

	assert.Equal(t, IntentTrackOrder, resp.Intent)
	assert.Contains(t, resp.Reply.Actions, ActionRequestPhone)
	assert.Empty(t, resp.Reply.SuggestedItems)
}

func TestHandleMessage_PhonePersistsAcrossTurns(t *testing.T) {
	orders := &stubOrders{orders: []models.Order{
		{ID: "ord-1", OrderNumber: "SD-2001", Status: models.OrderStatusReady, Total: 30},
	}}
	svc := newTestService(t, &stubMenu{items: genItems(), locs: genLocations()}, orders, nil)
	ctx := context.Background()

	first, err := svc.HandleMessage(ctx, Request{Message: "hola", Phone: "+51987654321"})
	require.NoError(t, err)

	resp, err := svc.HandleMessage(ctx, Request{SessionID: first.SessionID, Message: "estado de mi pedido"})
	require.NoError(t, err)
	assert.Contains(t, resp.Reply.Text, "SD-2001")
}

func TestHandleMessage_LookupFailureStaysInEnvelope(t *testing.T) {
	svc := newTestService(t, &stubMenu{err: errors.New("pg down")}, nil, nil)

	resp, err := svc.HandleMessage(context.Background(), Request{Message: "ver el menú"})
	require.NoError(t, err)

	assert.Contains(t, resp.Reply.Text, "Lo siento")
	assert.Empty(t, resp.Reply.SuggestedItems)
}

func TestHandleMessage_LoyaltyPersonalizesGreeting(t *testing.T) {
	loyalty := &stubLoyalty{profile: &models.LoyaltyProfile{
		Phone: "+51987654321", Name: "Marco", Points: 1200,
		Tier: models.TierGold, VisitCount: 4,
	}}
	svc := newTestService(t, &stubMenu{items: genItems(), locs: genLocations()}, nil, loyalty)

	resp, err := svc.HandleMessage(context.Background(),
		Request{Message: "hola", Phone: "+51987654321"})
	require.NoError(t, err)

	assert.Contains(t, resp.Reply.Text, "Marco")
	assert.Contains(t, resp.Reply.Text, "SimmerLovers")
}

func TestHandleMessage_LoyaltyFailureDegradesToAnonymous(t *testing.T) {
	svc := newTestService(t, &stubMenu{items: genItems(), locs: genLocations()}, nil,
		&stubLoyalty{err: errors.New("pg down")})

	resp, err := svc.HandleMessage(context.Background(),
		Request{Message: "hola", Phone: "+51987654321"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Reply.Text)
	assert.NotContains(t, resp.Reply.Text, "SimmerLovers")
}

func TestHandleMessage_ExplicitLanguageWins(t *testing.T) {
	svc := newTestService(t, &stubMenu{items: genItems(), locs: genLocations()}, nil, nil)

	resp, err := svc.HandleMessage(context.Background(),
		Request{Message: "hola", Language: "en"})
	require.NoError(t, err)
	assert.Equal(t, "en", resp.Language)
	assert.Contains(t, resp.Reply.Text, "ANIMA")
}

func TestHandleMessage_SophiaRemembersDetectedLocation(t *testing.T) {
	store, _ := newTestSessionStore(t, time.Minute)
	profile := SophiaProfile(genLocations())
	items := append(genItems(), models.MenuItem{
		ID: "cv-ipa", Name: "IPA Artesanal", Price: 7.00,
		Category: models.CategoryCervezas, Available: true,
		Locations: []string{"jardin"},
	})
	gen := NewGenerator(profile, &stubMenu{items: items, locs: genLocations()}, nil, nil, 6, logger.NewNoOpLogger())
	svc := NewService(profile, gen, store, nil, nil, logger.NewNoOpLogger())
	ctx := context.Background()

	first, err := svc.HandleMessage(ctx, Request{Message: "¿dónde queda Simmer Garden Costa?"})
	require.NoError(t, err)
	assert.Equal(t, IntentLocation, first.Intent)
	assert.Contains(t, first.Reply.Text, "Simmer Garden Costa")

	// The detected location sticks to the session for later turns.
	second, err := svc.HandleMessage(ctx, Request{SessionID: first.SessionID, Message: "cervezas"})
	require.NoError(t, err)
	require.NotEmpty(t, second.Reply.SuggestedItems)
	assert.Equal(t, "cv-ipa", second.Reply.SuggestedItems[0].ID)
}

func TestNudge_FiresThenGoesQuiet(t *testing.T) {
	store, _ := newTestSessionStore(t, 0)
	profile := AnimaProfile(genLocations())
	gen := NewGenerator(profile, &stubMenu{items: genItems(), locs: genLocations()}, nil, nil, 6, logger.NewNoOpLogger())
	svc := NewService(profile, gen, store, nil, nil, logger.NewNoOpLogger())
	ctx := context.Background()

	sess, err := svc.StartSession(ctx)
	require.NoError(t, err)

	nudge, err := svc.Nudge(ctx, sess.ID, "es")
	require.NoError(t, err)
	require.NotNil(t, nudge)
	assert.Equal(t, StateProactive, nudge.State)
	assert.NotEmpty(t, nudge.Reply.Text)

	again, err := svc.Nudge(ctx, sess.ID, "es")
	require.NoError(t, err)
	assert.Nil(t, again)
}
