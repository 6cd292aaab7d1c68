package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/EuclidesAnchundia/Tutorias/internal/auth"
	"github.com/EuclidesAnchundia/Tutorias/internal/errdefs"
	"github.com/EuclidesAnchundia/Tutorias/internal/model"
)

//go:generate mockgen -destination=mocks/mocks.go -package=mocks . UserStore,TutoringStore

var (
	ErrUserNotFound  = fmt.Errorf("user does not exist: %w", errdefs.ErrNotFound)
	ErrWrongPassword = fmt.Errorf("wrong password: %w", errdefs.ErrAuthentication)
)

type UserStore interface {
	CreateUser(ctx context.Context, u *model.User) error
	FindUserByEmail(email string) (*model.User, error)
	UpdateUser(ctx context.Context, email string, in *model.UpdateUserInput) (*model.User, error)
}

type TokenConfig struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

type AuthService struct {
	users  UserStore
	tokens TokenConfig
	hash   func(string) (string, error)
}

func NewAuthService(users UserStore, tokens TokenConfig) *AuthService {
	return &AuthService{users: users, tokens: tokens, hash: auth.HashPassword}
}

// Register creates an account whose role comes from the email domain.
func (s *AuthService) Register(ctx context.Context, in *model.RegisterInput) (*model.User, error) {
	if in == nil {
		return nil, errdefs.ErrValidation
	}
	in.Names = strings.TrimSpace(in.Names)
	in.Surnames = strings.TrimSpace(in.Surnames)
	in.Email = strings.TrimSpace(in.Email)
	in.Faculty = strings.TrimSpace(in.Faculty)
	in.Major = strings.TrimSpace(in.Major)
	in.Specialty = strings.TrimSpace(in.Specialty)

	if in.Names == "" || in.Surnames == "" || in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("names, surnames, email and password are required: %w", errdefs.ErrValidation)
	}
	if err := checkNewPassword(in.Password, in.PasswordConfirmation); err != nil {
		return nil, err
	}
	role, ok := model.ClassifyEmail(in.Email)
	if !ok {
		return nil, fmt.Errorf("email %s is not an institutional address: %w", in.Email, errdefs.ErrValidation)
	}
	if strings.TrimSpace(in.SecurityQuestion) == "" || strings.TrimSpace(in.SecurityAnswer) == "" {
		return nil, fmt.Errorf("security question and answer are required: %w", errdefs.ErrValidation)
	}

	faculty := in.Faculty
	switch role {
	case model.RoleAdministrator:
		faculty = model.AdministratorFaculty
	default:
		if faculty == "" {
			return nil, fmt.Errorf("faculty is required: %w", errdefs.ErrValidation)
		}
	}
	if role == model.RoleStudent && in.Major == "" {
		return nil, fmt.Errorf("major is required for students: %w", errdefs.ErrValidation)
	}
	if role == model.RoleTutor && in.Specialty == "" {
		return nil, fmt.Errorf("specialty is required for tutors: %w", errdefs.ErrValidation)
	}

	profile, err := model.NewProfile(role, faculty, in.Major, in.Specialty)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errdefs.ErrValidation, err)
	}

	if _, err := s.users.FindUserByEmail(in.Email); err == nil {
		return nil, fmt.Errorf("user %s: %w", in.Email, errdefs.ErrAlreadyExists)
	} else if !errors.Is(err, errdefs.ErrNotFound) {
		return nil, err
	}

	hashed, err := s.hash(in.Password)
	if err != nil {
		return nil, err
	}

	u := &model.User{
		Names:            in.Names,
		Surnames:         in.Surnames,
		Email:            in.Email,
		Password:         hashed,
		Profile:          profile,
		SecurityQuestion: strings.TrimSpace(in.SecurityQuestion),
		SecurityAnswer:   strings.TrimSpace(in.SecurityAnswer),
	}
	if err := s.users.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login checks the credentials and issues a bearer token. An unknown
// account and a wrong password fail with ErrUserNotFound and
// ErrWrongPassword respectively.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, *auth.Token, error) {
	email = strings.TrimSpace(email)
	if _, ok := model.ClassifyEmail(email); !ok {
		return nil, nil, fmt.Errorf("email %s is not an institutional address: %w", email, errdefs.ErrValidation)
	}
	u, err := s.users.FindUserByEmail(email)
	if err != nil {
		if errors.Is(err, errdefs.ErrNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}
	if !auth.CheckPassword(u.Password, password) {
		return nil, nil, ErrWrongPassword
	}

	token, err := auth.Issue(u.Email, string(u.Role()), s.tokens.Issuer, s.tokens.Secret, s.tokens.TTL)
	if err != nil {
		return nil, nil, err
	}
	return u, &token, nil
}

// SecurityQuestion is the first step of password recovery.
func (s *AuthService) SecurityQuestion(_ context.Context, email string) (string, error) {
	u, err := s.users.FindUserByEmail(strings.TrimSpace(email))
	if err != nil {
		return "", err
	}
	return u.SecurityQuestion, nil
}

func (s *AuthService) ResetPassword(ctx context.Context, in *model.ResetPasswordInput) error {
	if in == nil {
		return errdefs.ErrValidation
	}
	email := strings.TrimSpace(in.Email)
	u, err := s.users.FindUserByEmail(email)
	if err != nil {
		return err
	}
	if !strings.EqualFold(strings.TrimSpace(u.SecurityAnswer), strings.TrimSpace(in.SecurityAnswer)) {
		return fmt.Errorf("wrong security answer: %w", errdefs.ErrAuthentication)
	}
	if err := checkNewPassword(in.Password, in.PasswordConfirmation); err != nil {
		return err
	}

	hashed, err := s.hash(in.Password)
	if err != nil {
		return err
	}
	_, err = s.users.UpdateUser(ctx, email, &model.UpdateUserInput{Password: &hashed})
	return err
}

func checkNewPassword(password, confirmation string) error {
	if password != confirmation {
		return fmt.Errorf("passwords do not match: %w", errdefs.ErrValidation)
	}
	return auth.ValidatePassword(password)
}

func (s *AuthService) Me(ctx context.Context) (*model.User, error) {
	email, err := getUserEmail(ctx)
	if err != nil {
		return nil, err
	}
	return s.users.FindUserByEmail(email)
}

// UpdateMe edits the caller's own profile. A new password is hashed.
func (s *AuthService) UpdateMe(ctx context.Context, in *model.UpdateUserInput) (*model.User, error) {
	email, err := getUserEmail(ctx)
	if err != nil {
		return nil, err
	}
	if in.Empty() {
		return nil, fmt.Errorf("nothing to update: %w", errdefs.ErrValidation)
	}
	if in.Password != nil {
		if err := auth.ValidatePassword(*in.Password); err != nil {
			return nil, err
		}
		hashed, err := s.hash(*in.Password)
		if err != nil {
			return nil, err
		}
		in.Password = &hashed
	}
	return s.users.UpdateUser(ctx, email, in)
}
