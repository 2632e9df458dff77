package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/soulbloom/internal/common"
	"github.com/dmitrijs2005/soulbloom/internal/dbx"
	"github.com/dmitrijs2005/soulbloom/internal/logging"
	"github.com/dmitrijs2005/soulbloom/internal/server/models"
	"github.com/dmitrijs2005/soulbloom/internal/server/repositories/repomanager"
	"go.opentelemetry.io/otel/attribute"
)

// UserPatch holds the mutable account fields. Empty fields are left unchanged.
type UserPatch struct {
	Username string
	Name     string
}

// UserService reads, renames and deletes accounts. Users it returns never
// carry a password digest.
type UserService struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
	log   logging.Logger
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, log logging.Logger) *UserService {
	return &UserService{db: db, repos: m, log: log}
}

func (s *UserService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	u, err := s.repos.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.Sanitized(), nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	list, err := s.repos.Users(s.db).List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		list[i].PasswordHash = ""
	}
	return list, nil
}

// UpdateUser changes username and/or display name. A username held by
// another account fails with common.ErrorAlreadyExists.
func (s *UserService) UpdateUser(ctx context.Context, userID string, patch UserPatch) (u *models.User, err error) {
	ctx, span := startSpan(ctx, "user.update", attribute.String("user.id", userID))
	defer func() { endSpan(span, err) }()

	repo := s.repos.Users(s.db)

	u, err = repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	username := strings.TrimSpace(patch.Username)
	name := strings.TrimSpace(patch.Name)
	if username == "" && name == "" {
		return u.Sanitized(), nil
	}

	if username != "" && username != u.Username {
		taken, err := repo.ExistsByUsername(ctx, username)
		if err != nil {
			return nil, fmt.Errorf("check username: %w", err)
		}
		if taken {
			return nil, common.ErrorAlreadyExists
		}
		u.Username = username
	}
	if name != "" {
		u.Name = name
	}

	u, err = repo.Update(ctx, u)
	if err != nil {
		return nil, err
	}
	return u.Sanitized(), nil
}

// DeleteUser removes the user with all their flowers and gardens in one
// transaction and returns the deleted account. Nothing is removed when any
// step fails.
func (s *UserService) DeleteUser(ctx context.Context, userID string) (u *models.User, err error) {
	ctx, span := startSpan(ctx, "user.delete", attribute.String("user.id", userID))
	defer func() { endSpan(span, err) }()

	var flowers, gardens int64
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		users := s.repos.Users(tx)

		var err error
		u, err = users.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if flowers, err = s.repos.Flowers(tx).DeleteByOwner(ctx, userID); err != nil {
			return fmt.Errorf("delete flowers: %w", err)
		}
		if gardens, err = s.repos.Gardens(tx).DeleteByOwner(ctx, userID); err != nil {
			return fmt.Errorf("delete gardens: %w", err)
		}
		return users.Delete(ctx, userID)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "user deleted", "user_id", userID, "gardens", gardens, "flowers", flowers)
	return u.Sanitized(), nil
}
