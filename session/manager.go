package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/devvitrinefrutal-del/vitrine-api/gateway"
	"github.com/devvitrinefrutal-del/vitrine-api/models"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Gateway is the slice of the remote gateway the session manager needs.
type Gateway interface {
	ProfileByID(ctx context.Context, id string) (*models.Profile, error)
	CreateProfile(ctx context.Context, profile *models.Profile) error
	UpdateProfile(ctx context.Context, profile *models.Profile) error
	StoreByOwner(ctx context.Context, ownerID string) (*models.Store, error)
	ServiceByProvider(ctx context.Context, providerID string) (*models.Service, error)
	ClaimStoreByEmail(ctx context.Context, email, ownerID string) (*models.Store, error)
	ClaimServiceByEmail(ctx context.Context, email, providerID string) (*models.Service, error)
}

// Manager resolves the Actor for a session: fetch-or-create the profile,
// reconcile account linkage, issue the session token, and keep the
// remembered-session snapshot.
type Manager struct {
	gateway     Gateway
	redis       *redis.Client
	logger      *zap.Logger
	secret      []byte
	tokenTTL    time.Duration
	rememberTTL time.Duration
}

func NewManager(gw Gateway, redisClient *redis.Client, logger *zap.Logger, secret string, tokenTTL, rememberTTL time.Duration) *Manager {
	return &Manager{
		gateway:     gw,
		redis:       redisClient,
		logger:      logger,
		secret:      []byte(secret),
		tokenTTL:    tokenTTL,
		rememberTTL: rememberTTL,
	}
}

// Login resolves the actor for a verified identity and issues the session
// token. When remember is set the actor snapshot is persisted so the
// session survives a restart.
func (m *Manager) Login(ctx context.Context, identity *Identity, remember bool) (*models.Actor, string, error) {
	profile, err := m.gateway.ProfileByID(ctx, identity.ID)
	if err != nil {
		if !errors.Is(err, gateway.ErrNotFound) {
			return nil, "", fmt.Errorf("failed to load profile: %w", err)
		}
		profile = &models.Profile{
			ID:    identity.ID,
			Email: identity.Email,
			Name:  identity.Name,
			Role:  models.RoleCustomer,
		}
		if err := m.gateway.CreateProfile(ctx, profile); err != nil {
			return nil, "", fmt.Errorf("failed to create profile: %w", err)
		}
	}

	actor := &models.Actor{
		ID:    profile.ID,
		Email: profile.Email,
		Name:  profile.Name,
		Role:  profile.Role,
	}

	if err := m.resolveLinkage(ctx, actor, profile); err != nil {
		return nil, "", err
	}

	token, err := issueSessionToken(actor, m.secret, m.tokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue session token: %w", err)
	}

	if remember {
		if err := m.remember(ctx, actor); err != nil {
			m.logger.Warn("failed to persist session snapshot",
				zap.String("actor_id", actor.ID), zap.Error(err))
		}
	}

	return actor, token, nil
}

// resolveLinkage attaches the actor's store or service. A catalog record
// registered under the actor's email with no owner is claimed on the spot
// and the role upgraded; the role column stays authoritative otherwise.
func (m *Manager) resolveLinkage(ctx context.Context, actor *models.Actor, profile *models.Profile) error {
	store, err := m.gateway.StoreByOwner(ctx, actor.ID)
	if err != nil {
		return fmt.Errorf("failed to resolve store linkage: %w", err)
	}
	if store == nil {
		store, err = m.gateway.ClaimStoreByEmail(ctx, actor.Email, actor.ID)
		if err != nil {
			return fmt.Errorf("failed to claim store: %w", err)
		}
	}
	if store != nil {
		actor.LinkedStoreID = store.ID
		if actor.Role == models.RoleCustomer {
			actor.Role = models.RoleMerchant
			profile.Role = models.RoleMerchant
			if err := m.gateway.UpdateProfile(ctx, profile); err != nil {
				return fmt.Errorf("failed to upgrade profile role: %w", err)
			}
		}
		return nil
	}

	service, err := m.gateway.ServiceByProvider(ctx, actor.ID)
	if err != nil {
		return fmt.Errorf("failed to resolve service linkage: %w", err)
	}
	if service == nil {
		service, err = m.gateway.ClaimServiceByEmail(ctx, actor.Email, actor.ID)
		if err != nil {
			return fmt.Errorf("failed to claim service: %w", err)
		}
	}
	if service != nil {
		actor.LinkedServiceID = service.ID
		if actor.Role == models.RoleCustomer {
			actor.Role = models.RoleProvider
			profile.Role = models.RoleProvider
			if err := m.gateway.UpdateProfile(ctx, profile); err != nil {
				return fmt.Errorf("failed to upgrade profile role: %w", err)
			}
		}
	}
	return nil
}

// Resolve turns a session token back into the Actor it was issued for.
func (m *Manager) Resolve(tokenString string) (*models.Actor, error) {
	return actorFromSessionToken(tokenString, m.secret)
}

// Restore loads a remembered actor snapshot. Missing or corrupt snapshots
// mean no session, never an error.
func (m *Manager) Restore(ctx context.Context, actorID string) *models.Actor {
	data, err := m.redis.Get(ctx, sessionKey(actorID)).Result()
	if err != nil {
		return nil
	}
	var actor models.Actor
	if err := json.Unmarshal([]byte(data), &actor); err != nil {
		return nil
	}
	return &actor
}

// Forget drops the remembered snapshot (logout).
func (m *Manager) Forget(ctx context.Context, actorID string) error {
	return m.redis.Del(ctx, sessionKey(actorID)).Err()
}

func (m *Manager) remember(ctx context.Context, actor *models.Actor) error {
	data, err := json.Marshal(actor)
	if err != nil {
		return err
	}
	return m.redis.Set(ctx, sessionKey(actor.ID), data, m.rememberTTL).Err()
}

func sessionKey(actorID string) string {
	return fmt.Sprintf("session:%s", actorID)
}
