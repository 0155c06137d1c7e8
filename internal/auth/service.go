// Package auth implements registration, login and current-user retrieval
// on top of a UserStore and a token Codec.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"golang.org/x/crypto/bcrypt"

	"github.com/minhvu-dev/crm-backend/internal/models"
	"github.com/minhvu-dev/crm-backend/internal/store"
	"github.com/minhvu-dev/crm-backend/internal/token"
)

// Local mobile format: exactly 10 digits, leading zero.
var phonePattern = regexp.MustCompile(`^0\d{9}$`)

type Service struct {
	store store.UserStore
	codec *token.Codec
	log   *slog.Logger
}

func NewService(st store.UserStore, codec *token.Codec, log *slog.Logger) *Service {
	return &Service{store: st, codec: codec, log: log}
}

// ----------- inputs -------------

type RegisterInput struct {
	FullName      string `json:"fullName"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Company       string `json:"company"`
	Password      string `json:"password"`
	AgreedToTerms bool   `json:"agreedToTerms"`
}

func (in RegisterInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.FullName, validation.Required),
		validation.Field(&in.Email, validation.Required, is.Email.Error("invalid email")),
		validation.Field(&in.Phone, validation.Required,
			validation.Match(phonePattern).Error("must be 10 digits starting with 0")),
		validation.Field(&in.Password, validation.Required,
			validation.Length(6, 0).Error("must be at least 6 characters")),
	)
}

type LoginInput struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

func (in LoginInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Email, validation.Required),
		validation.Field(&in.Password, validation.Required),
	)
}

// ----------- operations -------------

// Register validates in, enforces email uniqueness and terms agreement,
// persists the new user and mints a session token.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.PublicUser, string, error) {
	if err := in.Validate(); err != nil {
		return nil, "", Validation(err.Error())
	}

	email := strings.ToLower(in.Email)

	_, err := s.store.FindByEmail(ctx, email)
	if err == nil {
		return nil, "", Validation("email already used")
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, "", s.internal(ctx, "register: email lookup", err)
	}

	if !in.AgreedToTerms {
		return nil, "", Validation("terms not agreed")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", s.internal(ctx, "register: hash password", err)
	}

	u := &models.User{
		FullName:      in.FullName,
		Email:         email,
		Phone:         in.Phone,
		PasswordHash:  string(hash),
		Role:          models.RoleSales,
		IsActive:      true,
		AgreedToTerms: true,
	}
	if in.Company != "" {
		u.Company = &in.Company
	}

	u, err = s.store.Insert(ctx, u)
	if err != nil {
		return nil, "", s.internal(ctx, "register: insert user", err)
	}

	tok, err := s.codec.Encode(u.ID)
	if err != nil {
		return nil, "", s.internal(ctx, "register: mint token", err)
	}

	s.log.Info("new user registered", "email", u.Email, "id", u.ID)
	return u.Public(), tok, nil
}

// Login verifies credentials, records the login time and origin address,
// and mints a session token.
//
// A missing account and a wrong password return the identical error so the
// response does not reveal which one failed.
func (s *Service) Login(ctx context.Context, in LoginInput, remoteIP string) (*models.PublicUser, string, error) {
	if err := in.Validate(); err != nil {
		return nil, "", Validation(err.Error())
	}

	u, err := s.store.FindByEmail(ctx, in.Email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, "", Unauthorized("invalid credentials")
	}
	if err != nil {
		return nil, "", s.internal(ctx, "login: email lookup", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)) != nil {
		return nil, "", Unauthorized("invalid credentials")
	}

	if !u.IsActive {
		return nil, "", Unauthorized("account disabled")
	}

	now := time.Now()
	if err := s.store.UpdateLastLogin(ctx, u.ID, now, remoteIP); err != nil {
		return nil, "", s.internal(ctx, "login: update last login", err)
	}
	u.LastLoginAt = &now
	u.LastLoginIP = &remoteIP

	tok, err := s.codec.Encode(u.ID)
	if err != nil {
		return nil, "", s.internal(ctx, "login: mint token", err)
	}

	s.log.Info("user logged in", "email", u.Email, "id", u.ID)
	return u.Public(), tok, nil
}

// CurrentUser returns the public view of the user a decoded token refers to.
func (s *Service) CurrentUser(ctx context.Context, userID int64) (*models.PublicUser, error) {
	u, err := s.store.FindByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, NotFound("user not found")
	}
	if err != nil {
		return nil, s.internal(ctx, "current user: lookup", err)
	}
	return u.Public(), nil
}

func (s *Service) internal(ctx context.Context, op string, err error) error {
	s.log.ErrorContext(ctx, op, "err", err)
	return &Error{Kind: KindInternal, Message: "something went wrong, please try again"}
}
