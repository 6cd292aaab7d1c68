package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/EuclidesAnchundia/Tutorias/internal/auth"
	"github.com/EuclidesAnchundia/Tutorias/internal/errdefs"
	"github.com/EuclidesAnchundia/Tutorias/internal/model"
	"github.com/EuclidesAnchundia/Tutorias/internal/service"
	"github.com/EuclidesAnchundia/Tutorias/internal/service/mocks"
)

var testTokens = service.TokenConfig{Secret: "test-secret", Issuer: "tutorias-test", TTL: time.Hour}

func setupAuth(t *testing.T) (*service.AuthService, *mocks.MockUserStore) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	users := mocks.NewMockUserStore(ctrl)
	return service.NewAuthService(users, testTokens), users
}

func validRegistration() *model.RegisterInput {
	return &model.RegisterInput{
		Names:                "Lucía",
		Surnames:             "Cedeño",
		Email:                "lucia.cedeno@live.uleam.edu.ec",
		Password:             "clave-segura",
		PasswordConfirmation: "clave-segura",
		Faculty:              "Facultad de Ingeniería",
		Major:                "Software",
		SecurityQuestion:     "mascota",
		SecurityAnswer:       "Kira",
	}
}

// ── Register ────────────────────────────────────────────────────────

func TestRegister(t *testing.T) {
	t.Run("Student", func(t *testing.T) {
		svc, users := setupAuth(t)
		in := validRegistration()

		users.EXPECT().FindUserByEmail(in.Email).Return(nil, errdefs.ErrNotFound)
		users.EXPECT().CreateUser(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, u *model.User) error {
			assert.Equal(t, model.RoleStudent, u.Role())
			assert.Equal(t, "Software", u.Major())
			assert.True(t, auth.IsHashed(u.Password))
			return nil
		})

		u, err := svc.Register(context.Background(), in)
		require.NoError(t, err)
		assert.True(t, auth.CheckPassword(u.Password, "clave-segura"))
	})

	t.Run("AdministratorFacultyForced", func(t *testing.T) {
		svc, users := setupAuth(t)
		in := validRegistration()
		in.Email = "root@admin.uleam.edu.ec"
		in.Faculty = ""

		users.EXPECT().FindUserByEmail(in.Email).Return(nil, errdefs.ErrNotFound)
		users.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(nil)

		u, err := svc.Register(context.Background(), in)
		require.NoError(t, err)
		assert.Equal(t, model.AdministratorFaculty, u.Faculty())
	})

	t.Run("Duplicate", func(t *testing.T) {
		svc, users := setupAuth(t)
		in := validRegistration()

		users.EXPECT().FindUserByEmail(in.Email).Return(&model.User{Email: in.Email}, nil)

		_, err := svc.Register(context.Background(), in)
		assert.ErrorIs(t, err, errdefs.ErrAlreadyExists)
	})

	t.Run("LookupFailure", func(t *testing.T) {
		svc, users := setupAuth(t)
		in := validRegistration()
		boom := errors.New("backend down")

		users.EXPECT().FindUserByEmail(in.Email).Return(nil, boom)

		_, err := svc.Register(context.Background(), in)
		assert.ErrorIs(t, err, boom)
	})

	invalid := map[string]func(in *model.RegisterInput){
		"MissingNames":      func(in *model.RegisterInput) { in.Names = "" },
		"BlankNames":        func(in *model.RegisterInput) { in.Names = "   " },
		"BlankSurnames":     func(in *model.RegisterInput) { in.Surnames = "\t " },
		"PasswordTooLong": func(in *model.RegisterInput) {
			in.Password = strings.Repeat("x", auth.MaxPasswordBytes+1)
			in.PasswordConfirmation = in.Password
		},
		"PasswordMismatch":  func(in *model.RegisterInput) { in.PasswordConfirmation = "otra-clave" },
		"ShortPassword":     func(in *model.RegisterInput) { in.Password, in.PasswordConfirmation = "corta", "corta" },
		"ForeignDomain":     func(in *model.RegisterInput) { in.Email = "lucia@gmail.com" },
		"MissingFaculty":    func(in *model.RegisterInput) { in.Faculty = " " },
		"MissingMajor":      func(in *model.RegisterInput) { in.Major = "" },
		"MissingQuestion":   func(in *model.RegisterInput) { in.SecurityQuestion = "" },
		"TutorNoSpecialty":  func(in *model.RegisterInput) { in.Email = "lucia@uleam.edu.ec" },
		"MissingAnswerOnly": func(in *model.RegisterInput) { in.SecurityAnswer = "  " },
	}
	for name, mutate := range invalid {
		t.Run(name, func(t *testing.T) {
			svc, _ := setupAuth(t)
			in := validRegistration()
			mutate(in)

			_, err := svc.Register(context.Background(), in)
			assert.ErrorIs(t, err, errdefs.ErrValidation)
		})
	}
}

// ── Login ───────────────────────────────────────────────────────────

func TestLogin(t *testing.T) {
	hashed, err := auth.HashPassword("tutor12345")
	require.NoError(t, err)
	tutor := &model.User{
		Email:    "carlos.rodriguez@uleam.edu.ec",
		Password: hashed,
		Profile:  model.TutorProfile{Faculty: "FICA", Specialty: "Software"},
	}

	t.Run("IssuesToken", func(t *testing.T) {
		svc, users := setupAuth(t)
		users.EXPECT().FindUserByEmail(tutor.Email).Return(tutor, nil)

		u, token, err := svc.Login(context.Background(), tutor.Email, "tutor12345")
		require.NoError(t, err)
		assert.Equal(t, tutor.Email, u.Email)

		claims, err := auth.Parse(token.AccessToken, testTokens.Secret, testTokens.Issuer)
		require.NoError(t, err)
		assert.Equal(t, tutor.Email, claims.Subject)
		assert.Equal(t, "tutor", claims.Role)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		svc, users := setupAuth(t)
		users.EXPECT().FindUserByEmail(tutor.Email).Return(tutor, nil)

		_, _, err := svc.Login(context.Background(), tutor.Email, "nope")
		assert.ErrorIs(t, err, service.ErrWrongPassword)
		assert.ErrorIs(t, err, errdefs.ErrAuthentication)
		assert.NotErrorIs(t, err, errdefs.ErrNotFound)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		svc, users := setupAuth(t)
		users.EXPECT().FindUserByEmail("nadie@uleam.edu.ec").Return(nil, errdefs.ErrNotFound)

		_, _, err := svc.Login(context.Background(), "nadie@uleam.edu.ec", "x")
		assert.ErrorIs(t, err, service.ErrUserNotFound)
		assert.ErrorIs(t, err, errdefs.ErrNotFound)
		assert.NotErrorIs(t, err, errdefs.ErrAuthentication)
	})

	t.Run("ForeignDomain", func(t *testing.T) {
		svc, _ := setupAuth(t)

		_, _, err := svc.Login(context.Background(), "x@gmail.com", "x")
		assert.ErrorIs(t, err, errdefs.ErrValidation)
	})
}

// ── Password recovery ───────────────────────────────────────────────

func TestPasswordRecovery(t *testing.T) {
	student := &model.User{
		Email:            "ana.lopez@live.uleam.edu.ec",
		SecurityQuestion: "escuela",
		SecurityAnswer:   "San Jose",
		Profile:          model.StudentProfile{Faculty: "Salud", Major: "Medicina"},
	}

	t.Run("Question", func(t *testing.T) {
		svc, users := setupAuth(t)
		users.EXPECT().FindUserByEmail(student.Email).Return(student, nil)

		q, err := svc.SecurityQuestion(context.Background(), student.Email)
		require.NoError(t, err)
		assert.Equal(t, "escuela", q)
	})

	t.Run("QuestionUnknownUser", func(t *testing.T) {
		svc, users := setupAuth(t)
		users.EXPECT().FindUserByEmail("x@live.uleam.edu.ec").Return(nil, errdefs.ErrNotFound)

		_, err := svc.SecurityQuestion(context.Background(), "x@live.uleam.edu.ec")
		assert.ErrorIs(t, err, errdefs.ErrNotFound)
	})

	t.Run("ResetCaseInsensitive", func(t *testing.T) {
		svc, users := setupAuth(t)
		users.EXPECT().FindUserByEmail(student.Email).Return(student, nil)
		users.EXPECT().UpdateUser(gomock.Any(), student.Email, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, in *model.UpdateUserInput) (*model.User, error) {
				require.NotNil(t, in.Password)
				assert.True(t, auth.CheckPassword(*in.Password, "nueva-clave"))
				return student, nil
			})

		err := svc.ResetPassword(context.Background(), &model.ResetPasswordInput{
			Email:                student.Email,
			SecurityAnswer:       "  san jose ",
			Password:             "nueva-clave",
			PasswordConfirmation: "nueva-clave",
		})
		require.NoError(t, err)
	})

	t.Run("WrongAnswer", func(t *testing.T) {
		svc, users := setupAuth(t)
		users.EXPECT().FindUserByEmail(student.Email).Return(student, nil)

		err := svc.ResetPassword(context.Background(), &model.ResetPasswordInput{
			Email: student.Email, SecurityAnswer: "otra", Password: "nueva-clave", PasswordConfirmation: "nueva-clave",
		})
		assert.ErrorIs(t, err, errdefs.ErrAuthentication)
	})

	t.Run("ShortPassword", func(t *testing.T) {
		svc, users := setupAuth(t)
		users.EXPECT().FindUserByEmail(student.Email).Return(student, nil)

		err := svc.ResetPassword(context.Background(), &model.ResetPasswordInput{
			Email: student.Email, SecurityAnswer: "san jose", Password: "corta", PasswordConfirmation: "corta",
		})
		assert.ErrorIs(t, err, errdefs.ErrValidation)
	})
}

// ── Me ──────────────────────────────────────────────────────────────

func TestUpdateMe(t *testing.T) {
	t.Run("NoUserInContext", func(t *testing.T) {
		svc, _ := setupAuth(t)
		_, err := svc.Me(context.Background())
		assert.ErrorIs(t, err, errdefs.ErrAuthentication)
	})

	t.Run("HashesPassword", func(t *testing.T) {
		svc, users := setupAuth(t)
		ctx := userCtx("ana@live.uleam.edu.ec", model.RoleStudent)
		password := "otra-clave-larga"

		users.EXPECT().UpdateUser(gomock.Any(), "ana@live.uleam.edu.ec", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, in *model.UpdateUserInput) (*model.User, error) {
				assert.True(t, auth.IsHashed(*in.Password))
				return &model.User{Email: "ana@live.uleam.edu.ec"}, nil
			})

		_, err := svc.UpdateMe(ctx, &model.UpdateUserInput{Password: &password})
		require.NoError(t, err)
	})

	t.Run("Empty", func(t *testing.T) {
		svc, _ := setupAuth(t)
		_, err := svc.UpdateMe(userCtx("ana@live.uleam.edu.ec", model.RoleStudent), &model.UpdateUserInput{})
		assert.ErrorIs(t, err, errdefs.ErrValidation)
	})
}
