package auth

import (
	"context"
	"encoding/json"
	"strings"

	apperrors "tradelight/internal/errors"
	"tradelight/internal/store"
)

const sessionCacheKey = "auth-session"

// Identity is the signed-in user as the rest of the app sees it.
type Identity struct {
	UserID      string `json:"userId"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

// Provider authenticates users. Implementations may talk to a remote
// identity service or resolve entirely from local configuration.
type Provider interface {
	SignIn(ctx context.Context, email, password string) (Identity, error)
	SignUp(ctx context.Context, email, password, displayName string) (Identity, error)
	SignOut(ctx context.Context) error
	Current(ctx context.Context) (Identity, error)
	UpdateDisplayName(ctx context.Context, displayName string) (Identity, error)
}

// StaticProvider resolves a single identity from configuration. SignIn
// accepts any password for the configured email; SignUp is unsupported.
type StaticProvider struct {
	identity Identity
	signedIn bool
}

// NewStaticProvider creates a provider pinned to identity.
func NewStaticProvider(identity Identity) *StaticProvider {
	return &StaticProvider{identity: identity}
}

func (p *StaticProvider) SignIn(ctx context.Context, email, password string) (Identity, error) {
	if !strings.EqualFold(email, p.identity.Email) {
		return Identity{}, apperrors.ErrInvalidCredentials
	}
	p.signedIn = true
	return p.identity, nil
}

func (p *StaticProvider) SignUp(ctx context.Context, email, password, displayName string) (Identity, error) {
	return Identity{}, apperrors.ErrSignUpUnsupported
}

func (p *StaticProvider) SignOut(ctx context.Context) error {
	p.signedIn = false
	return nil
}

func (p *StaticProvider) Current(ctx context.Context) (Identity, error) {
	if !p.signedIn {
		return Identity{}, apperrors.ErrNotSignedIn
	}
	return p.identity, nil
}

func (p *StaticProvider) UpdateDisplayName(ctx context.Context, displayName string) (Identity, error) {
	if !p.signedIn {
		return Identity{}, apperrors.ErrNotSignedIn
	}
	p.identity.DisplayName = displayName
	return p.identity, nil
}

// CachedProvider wraps another provider and persists the session in the
// local cache, so a signed-in identity survives process restarts.
type CachedProvider struct {
	inner Provider
	cache store.LocalCache
}

// NewCachedProvider wraps inner with session persistence in cache.
func NewCachedProvider(inner Provider, cache store.LocalCache) *CachedProvider {
	return &CachedProvider{inner: inner, cache: cache}
}

func (p *CachedProvider) SignIn(ctx context.Context, email, password string) (Identity, error) {
	identity, err := p.inner.SignIn(ctx, email, password)
	if err != nil {
		return Identity{}, err
	}
	p.persist(identity)
	return identity, nil
}

func (p *CachedProvider) SignUp(ctx context.Context, email, password, displayName string) (Identity, error) {
	identity, err := p.inner.SignUp(ctx, email, password, displayName)
	if err != nil {
		return Identity{}, err
	}
	p.persist(identity)
	return identity, nil
}

func (p *CachedProvider) SignOut(ctx context.Context) error {
	if err := p.inner.SignOut(ctx); err != nil {
		return err
	}
	return p.cache.Delete(sessionCacheKey)
}

// Current returns the cached session if one exists, falling back to the
// wrapped provider. A corrupt cache entry reads as signed out.
func (p *CachedProvider) Current(ctx context.Context) (Identity, error) {
	if raw, ok := p.cache.Get(sessionCacheKey); ok {
		var identity Identity
		if err := json.Unmarshal([]byte(raw), &identity); err == nil && identity.UserID != "" {
			return identity, nil
		}
	}
	identity, err := p.inner.Current(ctx)
	if err != nil {
		return Identity{}, err
	}
	p.persist(identity)
	return identity, nil
}

func (p *CachedProvider) UpdateDisplayName(ctx context.Context, displayName string) (Identity, error) {
	identity, err := p.inner.UpdateDisplayName(ctx, displayName)
	if err != nil {
		return Identity{}, err
	}
	p.persist(identity)
	return identity, nil
}

func (p *CachedProvider) persist(identity Identity) {
	if raw, err := json.Marshal(identity); err == nil {
		_ = p.cache.Set(sessionCacheKey, string(raw))
	}
}
