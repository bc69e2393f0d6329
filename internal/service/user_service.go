package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"microblog/internal/model"
	"microblog/internal/token"
)

// UserStore is the credential store the identity provider depends on.
type UserStore interface {
	FindByID(ctx context.Context, id string) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	Create(ctx context.Context, u model.User) error
	Update(ctx context.Context, u model.User) error
}

// UserService owns registration, login and identity lookup. It is the only
// component that ever sees plaintext passwords or password hashes.
type UserService struct {
	store     UserStore
	codec     *token.Codec
	dummyHash []byte
}

func NewUserService(store UserStore, codec *token.Codec) (*UserService, error) {
	// Compared against when login hits an unknown email, so both outcomes
	// cost one bcrypt comparison and response timing does not reveal
	// whether the email exists.
	dummy, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("generate dummy hash: %w", err)
	}

	return &UserService{store: store, codec: codec, dummyHash: dummy}, nil
}

// Register stores a new identity with a freshly salted hash and issues a
// token for it. A duplicate email, including the loser of a concurrent
// registration race, surfaces as model.ErrUserAlreadyExists.
func (s *UserService) Register(ctx context.Context, username string, email string, password string) (model.UserProfile, error) {
	email = strings.TrimSpace(email)

	if _, err := s.store.FindByEmail(ctx, email); err == nil {
		return model.UserProfile{}, model.ErrUserAlreadyExists
	} else if !errors.Is(err, model.ErrUserNotFound) {
		return model.UserProfile{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return model.UserProfile{}, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := model.User{
		ID:           uuid.NewString(),
		Username:     strings.TrimSpace(username),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.store.Create(ctx, user); err != nil {
		return model.UserProfile{}, err
	}

	signed, err := s.codec.Issue(user.ID)
	if err != nil {
		return model.UserProfile{}, fmt.Errorf("issue token: %w", err)
	}

	return model.UserProfile{ID: user.ID, Username: user.Username, Email: user.Email, Token: signed}, nil
}

// Login authenticates by email and password. It fails closed: an unknown
// email and a wrong password both return ok=false with no error, and the
// caller cannot tell which happened.
func (s *UserService) Login(ctx context.Context, email string, password string) (model.UserProfile, bool, error) {
	user, err := s.store.FindByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, model.ErrUserNotFound) {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return model.UserProfile{}, false, nil
	}
	if err != nil {
		return model.UserProfile{}, false, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return model.UserProfile{}, false, nil
	}

	signed, err := s.codec.Issue(user.ID)
	if err != nil {
		return model.UserProfile{}, false, fmt.Errorf("issue token: %w", err)
	}

	return model.UserProfile{ID: user.ID, Username: user.Username, Email: user.Email, Token: signed}, true, nil
}

// GetProfile is the whoami lookup: the stored identity minus anything
// credential-shaped.
func (s *UserService) GetProfile(ctx context.Context, id string) (model.AuthUser, error) {
	user, err := s.store.FindByID(ctx, id)
	if err != nil {
		return model.AuthUser{}, err
	}

	return model.AuthUser{ID: user.ID, Username: user.Username, Email: user.Email}, nil
}

// UpdateProfile applies the non-empty fields of req. The password is
// re-hashed only when one was supplied.
func (s *UserService) UpdateProfile(ctx context.Context, id string, req model.UpdateProfileRequest) (model.AuthUser, error) {
	user, err := s.store.FindByID(ctx, id)
	if err != nil {
		return model.AuthUser{}, err
	}

	if req.Username != "" {
		user.Username = strings.TrimSpace(req.Username)
	}
	if req.Email != "" {
		user.Email = strings.TrimSpace(req.Email)
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return model.AuthUser{}, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.store.Update(ctx, user); err != nil {
		return model.AuthUser{}, err
	}

	return model.AuthUser{ID: user.ID, Username: user.Username, Email: user.Email}, nil
}
