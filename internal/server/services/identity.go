package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/soulbloom/internal/common"
	"github.com/dmitrijs2005/soulbloom/internal/logging"
	"github.com/dmitrijs2005/soulbloom/internal/server/models"
	"github.com/dmitrijs2005/soulbloom/internal/server/repositories/repomanager"
)

// TokenValidator checks an access token and returns its subject.
type TokenValidator interface {
	Validate(token string, now time.Time) (string, error)
}

// IdentityResolver turns a bearer token into the user it was issued to.
type IdentityResolver struct {
	db     *sql.DB
	repos  repomanager.RepositoryManager
	tokens TokenValidator
	log    logging.Logger
	now    func() time.Time
}

func NewIdentityResolver(db *sql.DB, m repomanager.RepositoryManager, tokens TokenValidator, log logging.Logger) *IdentityResolver {
	return &IdentityResolver{db: db, repos: m, tokens: tokens, log: log, now: time.Now}
}

// Resolve validates token and loads the user named by its subject. Every
// token failure, and a subject whose user no longer exists, is reported as
// common.ErrorUnauthenticated. Store failures are returned as they are.
func (r *IdentityResolver) Resolve(ctx context.Context, token string) (*models.User, error) {
	subject, err := r.tokens.Validate(token, r.now())
	if err != nil {
		r.log.Debug(ctx, "token rejected", "reason", err.Error())
		return nil, fmt.Errorf("%w: %w", common.ErrorUnauthenticated, err)
	}

	user, err := r.repos.Users(r.db).GetByEmail(ctx, subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			r.log.Debug(ctx, "token subject has no user")
			return nil, common.ErrorUnauthenticated
		}
		return nil, fmt.Errorf("resolve identity: %w", err)
	}

	return user.Sanitized(), nil
}
