package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/alucardavid/samplemed-blog/internal/auth"
	"github.com/alucardavid/samplemed-blog/internal/cache"
	"github.com/alucardavid/samplemed-blog/internal/domain"
	"github.com/alucardavid/samplemed-blog/internal/logger"
	"github.com/alucardavid/samplemed-blog/internal/repository"
)

// UserService encapsulates identity operations. Registration is
// all-or-nothing: the user row and its token pair are created inside
// one transaction, so a token issuance failure leaves no partial
// identity behind.
type UserService struct {
	users  repository.UserRepository
	tokens TokenIssuer
	cache  cache.Flusher
}

// NewUserService creates a new UserService.
func NewUserService(users repository.UserRepository, tokens TokenIssuer, cache cache.Flusher) *UserService {
	return &UserService{users: users, tokens: tokens, cache: cache}
}

// Register creates a credentialed identity and returns the token pair
// bound to it. The raw password is hashed before it touches the store
// and is never returned.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*domain.TokenPair, error) {
	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, domain.NewValidationError("Error creating user: invalid password")
	}

	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
	}

	var pair *domain.TokenPair
	created, err := s.users.Create(ctx, user, func(u *domain.User) error {
		pair, err = s.tokens.Issue(u)
		return err
	})
	if err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			return nil, domain.NewValidationError("Error creating user: username already exists")
		}
		return nil, err
	}

	logger.InfoContext(ctx, "user registered",
		slog.Int64("user_id", created.ID),
		slog.String("username", created.Username))
	return pair, nil
}

// Login verifies credentials and issues a fresh token pair. Invalid
// username and invalid password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, username, password string) (*domain.TokenPair, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, password) {
		return nil, &domain.Error{
			Code:   "invalid_credentials",
			Status: http.StatusUnauthorized,
			Detail: "No active account found with the given credentials",
		}
	}
	return s.tokens.Issue(user)
}

// List returns a page of users.
func (s *UserService) List(ctx context.Context, limit, offset int) ([]domain.User, int64, error) {
	return s.users.List(ctx, limit, offset)
}

// GetProfile returns identity fields plus owned article and comment
// counts, or ErrUserNotFound.
func (s *UserService) GetProfile(ctx context.Context, id int64) (*domain.UserProfile, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	articles, comments, err := s.users.CountActivity(ctx, id)
	if err != nil {
		return nil, err
	}

	return &domain.UserProfile{
		ID:            user.ID,
		Username:      user.Username,
		Email:         user.Email,
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		ArticlesCount: articles,
		CommentsCount: comments,
	}, nil
}

// Update applies the recognized profile fields present in the patch and
// ignores everything else. Password changes are not part of this flow.
func (s *UserService) Update(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	if patch.Username != nil {
		user.Username = *patch.Username
	}
	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.FirstName != nil {
		user.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		user.LastName = *patch.LastName
	}

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			return nil, domain.NewValidationError("Error updating user: username already exists")
		}
		return nil, err
	}
	// Cached article lists embed author fields.
	s.cache.Flush()
	return updated, nil
}

// Delete removes the identity; owned articles and comments cascade, so
// cached lists must be invalidated with them.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Flush()
	return nil
}
