package service_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EuclidesAnchundia/Tutorias/internal/auth"
	"github.com/EuclidesAnchundia/Tutorias/internal/errdefs"
	"github.com/EuclidesAnchundia/Tutorias/internal/kv"
	"github.com/EuclidesAnchundia/Tutorias/internal/model"
	"github.com/EuclidesAnchundia/Tutorias/internal/notifications"
	"github.com/EuclidesAnchundia/Tutorias/internal/service"
	"github.com/EuclidesAnchundia/Tutorias/internal/store"
)

// cheapHash keeps the end-to-end tests fast; bcrypt is covered in auth.
func cheapHash(p string) (string, error) { return p, nil }

func newWorkflow(t *testing.T) (*service.AuthService, *service.TutoringService, *store.Store) {
	t.Helper()
	st := store.New(kv.NewMemory(), nil)
	require.NoError(t, st.Load(context.Background()))
	return service.NewAuthService(st, testTokens), service.NewTutoringService(st, cheapHash), st
}

func register(t *testing.T, svc *service.AuthService, email, faculty, major, specialty string) {
	t.Helper()
	_, err := svc.Register(context.Background(), &model.RegisterInput{
		Names: "N", Surnames: "S", Email: email,
		Password: "password1", PasswordConfirmation: "password1",
		Faculty: faculty, Major: major, Specialty: specialty,
		SecurityQuestion: "q", SecurityAnswer: "a",
	})
	require.NoError(t, err)
}

func TestWorkflow_RegisterThenLogin(t *testing.T) {
	authSvc, _, st := newWorkflow(t)
	register(t, authSvc, "coord@coordtit.uleam.edu.ec", "FICA", "", "")
	register(t, authSvc, "nuevo@live.uleam.edu.ec", "FICA", "Software", "")

	u, token, err := authSvc.Login(context.Background(), "nuevo@live.uleam.edu.ec", "password1")
	require.NoError(t, err)
	assert.Equal(t, model.RoleStudent, u.Role())
	assert.NotEmpty(t, token.AccessToken)
	assert.WithinDuration(t, time.Now().Add(testTokens.TTL), token.ExpiresAt, time.Minute)

	stored, err := st.FindUserByEmail("nuevo@live.uleam.edu.ec")
	require.NoError(t, err)
	assert.True(t, auth.IsHashed(stored.Password))

	coordinatorInbox := st.NotificationsFor("coord@coordtit.uleam.edu.ec")
	require.Len(t, coordinatorInbox, 1)
	assert.Equal(t, model.NotificationNewUser, coordinatorInbox[0].Type)
}

func TestWorkflow_LoginFailuresAreDistinguishable(t *testing.T) {
	authSvc, _, _ := newWorkflow(t)
	register(t, authSvc, "nuevo@live.uleam.edu.ec", "FICA", "Software", "")

	_, _, wrong := authSvc.Login(context.Background(), "nuevo@live.uleam.edu.ec", "bad-password")
	_, _, missing := authSvc.Login(context.Background(), "nadie@live.uleam.edu.ec", "password1")

	assert.ErrorIs(t, wrong, service.ErrWrongPassword)
	assert.ErrorIs(t, missing, service.ErrUserNotFound)
	assert.NotEqual(t, wrong.Error(), missing.Error())
}

func TestWorkflow_DuplicateAssignmentRejected(t *testing.T) {
	authSvc, svc, st := newWorkflow(t)
	register(t, authSvc, "alumno@live.uleam.edu.ec", "FICA", "Software", "")
	register(t, authSvc, "tutor1@uleam.edu.ec", "FICA", "", "Redes")
	register(t, authSvc, "tutor2@uleam.edu.ec", "FICA", "", "Datos")
	coord := userCtx("coord@coordtit.uleam.edu.ec", model.RoleCoordinator)

	_, err := svc.AssignTutor(coord, &model.AssignTutorInput{StudentEmail: "alumno@live.uleam.edu.ec", TutorEmail: "tutor1@uleam.edu.ec"})
	require.NoError(t, err)
	_, err = svc.AssignTutor(coord, &model.AssignTutorInput{StudentEmail: "alumno@live.uleam.edu.ec", TutorEmail: "tutor2@uleam.edu.ec"})
	assert.ErrorIs(t, err, errdefs.ErrAlreadyExists)
	assert.Len(t, st.ListAssignments(), 1)
}

func TestWorkflow_SessionLifecycle(t *testing.T) {
	authSvc, svc, st := newWorkflow(t)
	register(t, authSvc, "alumno@live.uleam.edu.ec", "FICA", "Software", "")
	register(t, authSvc, "tutor1@uleam.edu.ec", "FICA", "", "Redes")
	coord := userCtx("coord@coordtit.uleam.edu.ec", model.RoleCoordinator)
	student := userCtx("alumno@live.uleam.edu.ec", model.RoleStudent)
	tutor := userCtx("tutor1@uleam.edu.ec", model.RoleTutor)

	_, err := svc.AssignTutor(coord, &model.AssignTutorInput{StudentEmail: "alumno@live.uleam.edu.ec", TutorEmail: "tutor1@uleam.edu.ec"})
	require.NoError(t, err)

	ts, err := svc.RequestSession(student, &model.RequestSessionInput{Date: "2024-04-01", Time: "09:00", Subject: "Objetivos"})
	require.NoError(t, err)
	assert.Equal(t, model.SessionPending, ts.Status)

	_, err = svc.AcceptSession(tutor, ts.ID)
	require.NoError(t, err)
	_, err = svc.AcceptSession(tutor, ts.ID)
	assert.ErrorIs(t, err, errdefs.ErrInvalidTransition)

	done, err := svc.CompleteSession(tutor, ts.ID, &model.CompleteSessionInput{Grade: "10", Observations: "Excelente"})
	require.NoError(t, err)
	assert.Equal(t, model.SessionCompleted, done.Status)
	assert.Equal(t, "10", done.Grade)

	_, err = svc.SubmitTopic(student, &model.SubmitTopicInput{Title: "Redes SDN", Description: "Estudio"})
	require.NoError(t, err)
	_, err = svc.UploadFile(student, "avance.pdf", "application/pdf", bytes.NewReader(pdfBytes))
	require.NoError(t, err)
	_, err = svc.SendMessage(tutor, &model.SendMessageInput{StudentEmail: "alumno@live.uleam.edu.ec", Message: "Buen avance"})
	require.NoError(t, err)

	reader := notifications.NewReader(st, notifications.Fixed("alumno@live.uleam.edu.ec"))
	inbox, err := reader.List(context.Background())
	require.NoError(t, err)

	var types []string
	for _, n := range inbox {
		types = append(types, n.Type)
	}
	assert.ElementsMatch(t, []string{
		model.NotificationTutorAssigned,
		model.NotificationAccepted,
		model.NotificationCompleted,
		model.NotificationTutorMessage,
	}, types)

	tutorInbox := st.NotificationsFor("tutor1@uleam.edu.ec")
	var tutorTypes []string
	for _, n := range tutorInbox {
		tutorTypes = append(tutorTypes, n.Type)
	}
	assert.Equal(t, []string{model.NotificationNewRequest, model.NotificationNewTopic, model.NotificationFileUploaded}, tutorTypes)
}
