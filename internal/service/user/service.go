package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/repository"
	"github.com/jwalitptl/clinic-api/internal/service"
	"github.com/jwalitptl/clinic-api/internal/service/event"
	"github.com/jwalitptl/clinic-api/pkg/auth"
	apperrors "github.com/jwalitptl/clinic-api/pkg/errors"
	"github.com/jwalitptl/clinic-api/pkg/security"
	"github.com/jwalitptl/clinic-api/pkg/validator"
)

const resource = "user"

var errBadCredentials = apperrors.Unauthorized("invalid email or password")

type UserServicer interface {
	CreateUser(ctx context.Context, req model.RegisterUserRequest) (*model.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
	ListUsers(ctx context.Context, filter model.UserFilter) ([]*model.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, req model.UpdateUserRequest) (*model.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
	Login(ctx context.Context, req model.LoginRequest) (*model.TokenResponse, error)
}

type Service struct {
	store     *repository.Store
	validator *validator.Validator
	events    event.Publisher
	hasher    security.PasswordHasher
	tokens    auth.JWTService
	tokenTTL  time.Duration
}

func NewService(
	store *repository.Store,
	v *validator.Validator,
	events event.Publisher,
	hasher security.PasswordHasher,
	tokens auth.JWTService,
	tokenTTL time.Duration,
) *Service {
	return &Service{
		store:     store,
		validator: v,
		events:    events,
		hasher:    hasher,
		tokens:    tokens,
		tokenTTL:  tokenTTL,
	}
}

func (s *Service) CreateUser(ctx context.Context, req model.RegisterUserRequest) (*model.User, error) {
	req.Normalize()
	if err := s.checkUnique(ctx, model.UserMatch{Name: req.Name, Email: req.Email, Phone: req.Phone}); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(&req); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	user := &model.User{
		Base:         model.NewBase(),
		Name:         req.Name,
		Phone:        req.Phone,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
	}
	if err := s.store.Users.Create(ctx, user); err != nil {
		return nil, service.StoreError(resource, err)
	}

	s.events.Publish(ctx, resource, event.Created, user.ID, user)
	return user, nil
}

func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.store.Users.Get(ctx, id)
	if err != nil {
		return nil, service.StoreError(resource, err)
	}
	return user, nil
}

func (s *Service) ListUsers(ctx context.Context, filter model.UserFilter) ([]*model.User, error) {
	users, err := s.store.Users.List(ctx, filter)
	if err != nil {
		return nil, service.StoreError(resource, err)
	}
	return users, nil
}

// UpdateUser replaces the profile; the password hash changes only when a new password is sent
func (s *Service) UpdateUser(ctx context.Context, id uuid.UUID, req model.UpdateUserRequest) (*model.User, error) {
	user, err := s.store.Users.Get(ctx, id)
	if err != nil {
		return nil, service.StoreError(resource, err)
	}

	req.Normalize()
	if err := s.checkUnique(ctx, model.UserMatch{Name: req.Name, Email: req.Email, Phone: req.Phone, ExcludeID: id}); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(&req); err != nil {
		return nil, err
	}

	if req.Password != "" {
		hash, err := s.hasher.Hash(req.Password)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		user.PasswordHash = hash
	}
	user.Name = req.Name
	user.Phone = req.Phone
	user.Email = req.Email
	user.Role = req.Role
	user.Touch()

	if err := s.store.Users.Update(ctx, user); err != nil {
		return nil, service.StoreError(resource, err)
	}

	s.events.Publish(ctx, resource, event.Updated, user.ID, user)
	return user, nil
}

func (s *Service) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Users.Delete(ctx, id); err != nil {
		return service.StoreError(resource, err)
	}
	s.events.Publish(ctx, resource, event.Deleted, id, nil)
	return nil
}

func (s *Service) Login(ctx context.Context, req model.LoginRequest) (*model.TokenResponse, error) {
	req.Email = model.NormalizeName(req.Email)
	if err := s.validator.Validate(&req); err != nil {
		return nil, err
	}

	user, err := s.store.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errBadCredentials
		}
		return nil, apperrors.Internal(err)
	}
	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, errBadCredentials
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	return &model.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.tokenTTL.Seconds()),
		User:        user,
	}, nil
}

func (s *Service) checkUnique(ctx context.Context, match model.UserMatch) error {
	found, err := s.store.Users.FindFirst(ctx, match)
	return service.Unique(found, err, func(u *model.User) []string {
		var fields []string
		if u.Name == match.Name {
			fields = append(fields, "name")
		}
		if u.Email == match.Email {
			fields = append(fields, "email")
		}
		if u.Phone == match.Phone {
			fields = append(fields, "phone")
		}
		return fields
	}, resource)
}
