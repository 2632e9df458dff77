// Package services contains the server-side business logic: registration
// and login, identity resolution for bearer tokens, and the owner-scoped
// garden, flower and account operations.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/soulbloom/internal/common"
	"github.com/dmitrijs2005/soulbloom/internal/logging"
	"github.com/dmitrijs2005/soulbloom/internal/server/auth"
	"github.com/dmitrijs2005/soulbloom/internal/server/models"
	"github.com/dmitrijs2005/soulbloom/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// TokenIssuer mints access tokens for a subject.
type TokenIssuer interface {
	Issue(subject string, now time.Time) (token string, expiresAt time.Time, err error)
}

// IssuedToken is a freshly minted access token and the moment it stops
// being accepted.
type IssuedToken struct {
	Token     string
	ExpiresAt time.Time
}

// RegisterInput carries a registration request. Username defaults to the
// email address when empty.
type RegisterInput struct {
	Email    string
	Username string
	Name     string
	Password string
}

// dummyPassword is hashed once and verified against when the email is
// unknown, so both failed-login paths cost one bcrypt comparison.
const dummyPassword = "soulbloom-no-such-user"

// Authenticator registers users and exchanges credentials for access tokens.
type Authenticator struct {
	db      *sql.DB
	repos   repomanager.RepositoryManager
	hasher  auth.PasswordHasher
	tokens  TokenIssuer
	limiter *LoginLimiter
	log     logging.Logger

	now   func() time.Time
	newID func() string

	dummyOnce   sync.Once
	dummyDigest string
}

// NewAuthenticator wires an Authenticator. limiter may be nil to disable
// login throttling.
func NewAuthenticator(db *sql.DB, m repomanager.RepositoryManager, hasher auth.PasswordHasher,
	tokens TokenIssuer, limiter *LoginLimiter, log logging.Logger) *Authenticator {
	return &Authenticator{
		db:      db,
		repos:   m,
		hasher:  hasher,
		tokens:  tokens,
		limiter: limiter,
		log:     log,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Register creates a user. It fails with common.ErrorAlreadyExists when the
// email or username is taken. The returned user carries no password digest.
func (a *Authenticator) Register(ctx context.Context, in RegisterInput) (u *models.User, err error) {
	ctx, span := startSpan(ctx, "auth.register")
	defer func() { endSpan(span, err) }()

	email := common.NormalizeEmail(in.Email)
	username := strings.TrimSpace(in.Username)
	if username == "" {
		username = email
	}
	if email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", common.ErrInvalidArgument)
	}
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: malformed email", common.ErrInvalidArgument)
	}

	users := a.repos.Users(a.db)

	exists, err := users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, common.ErrorAlreadyExists
	}

	exists, err = users.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if exists {
		return nil, common.ErrorAlreadyExists
	}

	digest, err := a.hasher.Hash(in.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, fmt.Errorf("%w: %w", common.ErrInvalidArgument, err)
		}
		return nil, err
	}

	user := &models.User{
		ID:           a.newID(),
		Email:        email,
		Username:     username,
		Name:         strings.TrimSpace(in.Name),
		PasswordHash: digest,
		CreatedAt:    a.now().UTC(),
	}

	created, err := users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.String("user.id", created.ID))
	a.log.Info(ctx, "user registered", "user_id", created.ID)

	return created.Sanitized(), nil
}

// Login checks the credentials and issues a token whose subject is the
// user's email. Unknown email and wrong password fail with the same
// common.ErrAuthenticationFailed.
func (a *Authenticator) Login(ctx context.Context, email, password string) (t *IssuedToken, err error) {
	ctx, span := startSpan(ctx, "auth.login")
	defer func() { endSpan(span, err) }()

	email = common.NormalizeEmail(email)

	if a.limiter != nil && !a.limiter.Allow(loginKey(ctx, email)) {
		a.log.Warn(ctx, "login throttled")
		return nil, common.ErrTooManyAttempts
	}

	user, err := a.repos.Users(a.db).GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("lookup user: %w", err)
		}
		a.hasher.Verify(password, a.dummy())
		return nil, common.ErrAuthenticationFailed
	}

	if !a.hasher.Verify(password, user.PasswordHash) {
		return nil, common.ErrAuthenticationFailed
	}

	token, exp, err := a.tokens.Issue(user.Email, a.now())
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.String("user.id", user.ID))
	return &IssuedToken{Token: token, ExpiresAt: exp}, nil
}

func (a *Authenticator) dummy() string {
	a.dummyOnce.Do(func() {
		d, err := a.hasher.Hash(dummyPassword)
		if err == nil {
			a.dummyDigest = d
		}
	})
	return a.dummyDigest
}
