package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EuclidesAnchundia/Tutorias/internal/auth"
	"github.com/EuclidesAnchundia/Tutorias/internal/errdefs"
	"github.com/EuclidesAnchundia/Tutorias/internal/events"
	"github.com/EuclidesAnchundia/Tutorias/internal/kv"
	"github.com/EuclidesAnchundia/Tutorias/internal/model"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

const (
	studentEmail     = "ana@live.uleam.edu.ec"
	tutorEmail       = "carlos.rodriguez@uleam.edu.ec"
	coordinatorEmail = "ana.martinez@coordtit.uleam.edu.ec"
)

var errBackend = errors.New("backend down")

// faultyKV fails writes to the keys listed in fail.
type faultyKV struct {
	*kv.Memory
	mu   sync.Mutex
	fail map[string]bool
}

func newFaultyKV() *faultyKV {
	return &faultyKV{Memory: kv.NewMemory(), fail: make(map[string]bool)}
}

func (f *faultyKV) failOn(keys ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, k := range keys {
		f.fail[k] = true
	}
}

func (f *faultyKV) Set(ctx context.Context, key string, value []byte) error {
	f.mu.Lock()
	failing := f.fail[key]
	f.mu.Unlock()
	if failing {
		return errBackend
	}
	return f.Memory.Set(ctx, key, value)
}

func sequentialIDs() func() string {
	var n atomic.Int64
	return func() string { return fmt.Sprintf("id-%d", n.Add(1)) }
}

func newTestStore(t *testing.T, backend kv.Store) *Store {
	t.Helper()
	if backend == nil {
		backend = kv.NewMemory()
	}
	s := New(backend, nil,
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(sequentialIDs()),
	)
	require.NoError(t, s.Load(context.Background()))
	return s
}

func student(email string) *model.User {
	return &model.User{
		Names:            "Ana",
		Surnames:         "López",
		Email:            email,
		Password:         "estudiante123",
		Profile:          model.StudentProfile{Faculty: "Facultad de Ciencias de la Salud", Major: "Medicina General"},
		SecurityQuestion: "escuela",
		SecurityAnswer:   "san jose",
	}
}

func tutor(email string) *model.User {
	return &model.User{
		Names:    "Dr. Carlos",
		Surnames: "Rodríguez",
		Email:    email,
		Password: "tutor123",
		Profile:  model.TutorProfile{Faculty: "Facultad de Ingeniería, Industria y Arquitectura", Specialty: "Desarrollo de Software"},
	}
}

func coordinator(email string) *model.User {
	return &model.User{
		Names:    "Dra. Ana",
		Surnames: "Martínez",
		Email:    email,
		Password: "coordinador123",
		Profile:  model.CoordinatorProfile{Faculty: "Facultad de Ingeniería, Industria y Arquitectura"},
	}
}

// withAssignment creates a student, a tutor and the assignment between them.
func withAssignment(t *testing.T, s *Store) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, s.CreateUser(ctx, student(studentEmail)))
	require.NoError(t, s.CreateUser(ctx, tutor(tutorEmail)))
	require.NoError(t, s.SaveAssignment(ctx, &model.Assignment{
		StudentEmail:     studentEmail,
		TutorEmail:       tutorEmail,
		CoordinatorEmail: coordinatorEmail,
	}))
}

func notificationsOfType(s *Store, email, typ string) []model.Notification {
	var out []model.Notification
	for _, n := range s.NotificationsFor(email) {
		if n.Type == typ {
			out = append(out, n)
		}
	}
	return out
}

// ── Users ──

func TestCreateUser_FindReturnsEqualRecord(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	for _, u := range []*model.User{student(studentEmail), tutor(tutorEmail), coordinator(coordinatorEmail)} {
		require.NoError(t, s.CreateUser(ctx, u))
		assert.NotEmpty(t, u.ID)
		assert.Equal(t, fixedNow, u.RegisteredAt)

		got, err := s.FindUserByEmail(u.Email)
		require.NoError(t, err)
		assert.Equal(t, *u, *got)
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, student(studentEmail)))
	err := s.CreateUser(ctx, student(studentEmail))

	assert.ErrorIs(t, err, errdefs.ErrAlreadyExists)
	assert.Len(t, s.ListUsers(), 1)
}

func TestCreateUser_NoProfile(t *testing.T) {
	s := newTestStore(t, nil)
	err := s.CreateUser(context.Background(), &model.User{Email: studentEmail})
	assert.ErrorIs(t, err, errdefs.ErrValidation)
}

func TestCreateUser_NotifiesExistingCoordinators(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, coordinator("c1@coordtit.uleam.edu.ec")))
	require.NoError(t, s.CreateUser(ctx, coordinator("c2@coordtit.uleam.edu.ec")))
	require.NoError(t, s.CreateUser(ctx, student(studentEmail)))

	// c1 heard about c2 and the student, c2 only about the student
	assert.Len(t, s.NotificationsFor("c1@coordtit.uleam.edu.ec"), 2)
	c2 := s.NotificationsFor("c2@coordtit.uleam.edu.ec")
	require.Len(t, c2, 1)
	assert.Equal(t, model.NotificationNewUser, c2[0].Type)
	assert.Equal(t, "Nuevo usuario registrado: Ana López", c2[0].Message)
	assert.False(t, c2[0].Read)
	assert.Empty(t, s.NotificationsFor(studentEmail))
}

func TestUpdateUser(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()
	require.NoError(t, s.CreateUser(ctx, student(studentEmail)))

	t.Run("merges fields", func(t *testing.T) {
		names := "Ana María"
		major := "Enfermería"
		got, err := s.UpdateUser(ctx, studentEmail, &model.UpdateUserInput{Names: &names, Major: &major})
		require.NoError(t, err)
		assert.Equal(t, "Ana María", got.Names)
		assert.Equal(t, "López", got.Surnames)
		assert.Equal(t, "Enfermería", got.Major())

		stored, err := s.FindUserByEmail(studentEmail)
		require.NoError(t, err)
		assert.Equal(t, *got, *stored)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := s.UpdateUser(ctx, "nadie@live.uleam.edu.ec", &model.UpdateUserInput{})
		assert.ErrorIs(t, err, errdefs.ErrNotFound)
	})
}

func TestDeleteUser(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()
	withAssignment(t, s)

	require.NoError(t, s.DeleteUser(ctx, tutorEmail))

	_, err := s.FindUserByEmail(tutorEmail)
	assert.ErrorIs(t, err, errdefs.ErrNotFound)
	// dangling references stay
	assert.Len(t, s.ListAssignments(), 1)
	_, err = s.AssignedTutor(studentEmail)
	assert.ErrorIs(t, err, errdefs.ErrNotFound)

	assert.ErrorIs(t, s.DeleteUser(ctx, tutorEmail), errdefs.ErrNotFound)
}

func TestUserQueries(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()
	require.NoError(t, s.CreateUser(ctx, student(studentEmail)))
	require.NoError(t, s.CreateUser(ctx, tutor(tutorEmail)))
	require.NoError(t, s.CreateUser(ctx, coordinator(coordinatorEmail)))

	assert.Len(t, s.UsersByFaculty("Facultad de Ingeniería, Industria y Arquitectura"), 2)
	assert.Len(t, s.UsersByFaculty("Facultad de Ciencias de la Salud"), 1)
	assert.Empty(t, s.UsersByFaculty("Otra"))

	tutors := s.UsersByRole(model.RoleTutor)
	require.Len(t, tutors, 1)
	assert.Equal(t, tutorEmail, tutors[0].Email)

	both := s.FilterUsers(model.UserFilter{Faculty: "Facultad de Ingeniería, Industria y Arquitectura", Role: model.RoleCoordinator})
	require.Len(t, both, 1)
	assert.Equal(t, coordinatorEmail, both[0].Email)
	assert.Empty(t, s.FilterUsers(model.UserFilter{Faculty: "Facultad de Ciencias de la Salud", Role: model.RoleTutor}))
	assert.Len(t, s.FilterUsers(model.UserFilter{}), 3)
}

func TestValidateCredentials(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, student(studentEmail)))
	hashed := tutor(tutorEmail)
	var err error
	hashed.Password, err = auth.HashPassword("tutor123")
	require.NoError(t, err)
	require.NoError(t, s.CreateUser(ctx, hashed))

	assert.True(t, s.ValidateCredentials(studentEmail, "estudiante123"))
	assert.False(t, s.ValidateCredentials(studentEmail, "wrong"))
	assert.True(t, s.ValidateCredentials(tutorEmail, "tutor123"))
	assert.False(t, s.ValidateCredentials(tutorEmail, "tutor1234"))
	assert.False(t, s.ValidateCredentials("nadie@uleam.edu.ec", "tutor123"))
}

// ── Failure semantics ──

func TestPersistFailureLeavesMemoryUnchanged(t *testing.T) {
	backend := newFaultyKV()
	s := newTestStore(t, backend)
	ctx := context.Background()
	require.NoError(t, s.CreateUser(ctx, student(studentEmail)))

	backend.failOn(kv.KeyUsers, kv.KeyFiles)

	err := s.CreateUser(ctx, tutor(tutorEmail))
	assert.ErrorIs(t, err, errBackend)
	_, err = s.FindUserByEmail(tutorEmail)
	assert.ErrorIs(t, err, errdefs.ErrNotFound)

	names := "Otra"
	_, err = s.UpdateUser(ctx, studentEmail, &model.UpdateUserInput{Names: &names})
	assert.ErrorIs(t, err, errBackend)
	u, err := s.FindUserByEmail(studentEmail)
	require.NoError(t, err)
	assert.Equal(t, "Ana", u.Names)

	err = s.SaveFile(ctx, &model.File{Name: "a.pdf", StudentEmail: studentEmail})
	assert.ErrorIs(t, err, errBackend)
	assert.Empty(t, s.ListFiles())
}

func TestNotificationFailureDoesNotFailPrimaryWrite(t *testing.T) {
	backend := newFaultyKV()
	s := newTestStore(t, backend)
	ctx := context.Background()
	require.NoError(t, s.CreateUser(ctx, coordinator(coordinatorEmail)))

	backend.failOn(kv.KeyNotifications)

	require.NoError(t, s.CreateUser(ctx, student(studentEmail)))
	_, err := s.FindUserByEmail(studentEmail)
	assert.NoError(t, err)
	assert.Empty(t, s.NotificationsFor(coordinatorEmail))
}

// ── Sessions ──

func TestCreateSession(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	ts := &model.TutoringSession{
		StudentEmail: studentEmail,
		TutorEmail:   tutorEmail,
		Date:         "2024-03-10",
		Time:         "10:00",
		Subject:      "Marco teórico",
		Status:       model.SessionCompleted,
	}
	require.NoError(t, s.CreateSession(ctx, ts))

	got, err := s.FindSession(ts.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SessionPending, got.Status)
	assert.Equal(t, fixedNow, got.RequestedAt)

	n := notificationsOfType(s, tutorEmail, model.NotificationNewRequest)
	require.Len(t, n, 1)
	assert.Equal(t, "Nueva solicitud de tutoría: Marco teórico", n[0].Message)

	assert.Len(t, s.SessionsByStudent(studentEmail), 1)
	assert.Len(t, s.SessionsByTutor(tutorEmail), 1)
	assert.Empty(t, s.SessionsByTutor(studentEmail))
}

func TestTransitionSession_AcceptIsNotRepeatable(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	ts := &model.TutoringSession{StudentEmail: studentEmail, TutorEmail: tutorEmail, Subject: "Prototipo"}
	require.NoError(t, s.CreateSession(ctx, ts))

	got, err := s.TransitionSession(ctx, ts.ID, model.ActionAccept, nil)
	require.NoError(t, err)
	assert.Equal(t, model.SessionAccepted, got.Status)

	_, err = s.TransitionSession(ctx, ts.ID, model.ActionAccept, nil)
	assert.ErrorIs(t, err, errdefs.ErrInvalidTransition)

	accepted := notificationsOfType(s, studentEmail, model.NotificationAccepted)
	require.Len(t, accepted, 1)
	assert.Equal(t, `Tu tutoría "Prototipo" ha sido aceptada`, accepted[0].Message)
}

func TestTransitionSession(t *testing.T) {
	ctx := context.Background()

	t.Run("reject records reason", func(t *testing.T) {
		s := newTestStore(t, nil)
		ts := &model.TutoringSession{StudentEmail: studentEmail, TutorEmail: tutorEmail, Subject: "Tema"}
		require.NoError(t, s.CreateSession(ctx, ts))

		reason := "Horario no disponible"
		got, err := s.TransitionSession(ctx, ts.ID, model.ActionReject, &model.TransitionInput{RejectionReason: &reason})
		require.NoError(t, err)
		assert.Equal(t, model.SessionRejected, got.Status)
		assert.Equal(t, reason, got.RejectionReason)
		assert.Len(t, notificationsOfType(s, studentEmail, model.NotificationRejected), 1)

		_, err = s.TransitionSession(ctx, ts.ID, model.ActionComplete, nil)
		assert.ErrorIs(t, err, errdefs.ErrInvalidTransition)
		assert.Empty(t, notificationsOfType(s, studentEmail, model.NotificationCompleted))
	})

	t.Run("accept then complete with grade", func(t *testing.T) {
		s := newTestStore(t, nil)
		ts := &model.TutoringSession{StudentEmail: studentEmail, TutorEmail: tutorEmail, Subject: "Tema"}
		require.NoError(t, s.CreateSession(ctx, ts))

		_, err := s.TransitionSession(ctx, ts.ID, model.ActionAccept, nil)
		require.NoError(t, err)
		grade, obs := "Excelente", "Buen avance"
		got, err := s.TransitionSession(ctx, ts.ID, model.ActionComplete, &model.TransitionInput{Grade: &grade, Observations: &obs})
		require.NoError(t, err)
		assert.Equal(t, model.SessionCompleted, got.Status)
		assert.Equal(t, "Excelente", got.Grade)
		assert.Equal(t, "Buen avance", got.Observations)

		completed := notificationsOfType(s, studentEmail, model.NotificationCompleted)
		require.Len(t, completed, 1)
		assert.Equal(t, `Tu tutoría "Tema" ha sido completada`, completed[0].Message)
	})

	t.Run("unknown session", func(t *testing.T) {
		s := newTestStore(t, nil)
		_, err := s.TransitionSession(ctx, "missing", model.ActionAccept, nil)
		assert.ErrorIs(t, err, errdefs.ErrNotFound)
	})
}

func TestUpdateSession_KeepsStatus(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	ts := &model.TutoringSession{StudentEmail: studentEmail, TutorEmail: tutorEmail, Subject: "Tema", Date: "2024-03-10"}
	require.NoError(t, s.CreateSession(ctx, ts))

	date := "2024-03-11"
	got, err := s.UpdateSession(ctx, ts.ID, &model.UpdateSessionInput{Date: &date})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-11", got.Date)
	assert.Equal(t, model.SessionPending, got.Status)

	_, err = s.UpdateSession(ctx, "missing", &model.UpdateSessionInput{Date: &date})
	assert.ErrorIs(t, err, errdefs.ErrNotFound)
}

// ── Topics ──

func TestSaveTopic_OnePerStudentSecondWins(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	first := &model.Topic{StudentEmail: studentEmail, Title: "Primero", Description: "a"}
	require.NoError(t, s.SaveTopic(ctx, first))
	second := &model.Topic{StudentEmail: studentEmail, Title: "Segundo", Description: "b"}
	require.NoError(t, s.SaveTopic(ctx, second))

	topics := s.ListTopics()
	require.Len(t, topics, 1)
	assert.Equal(t, "Segundo", topics[0].Title)
	assert.Equal(t, "b", topics[0].Description)
	assert.Equal(t, first.ID, topics[0].ID)

	got, err := s.TopicByStudent(studentEmail)
	require.NoError(t, err)
	assert.Equal(t, topics[0], *got)
}

func TestTopicScenario_SubmitAndApprove(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()
	withAssignment(t, s)

	topic := &model.Topic{StudentEmail: studentEmail, Title: "Diabetes en adultos mayores"}
	require.NoError(t, s.SaveTopic(ctx, topic))

	newTopic := notificationsOfType(s, tutorEmail, model.NotificationNewTopic)
	require.Len(t, newTopic, 1)
	assert.Equal(t, "El estudiante ha propuesto un nuevo tema: Diabetes en adultos mayores", newTopic[0].Message)

	reviewed, err := s.ReviewTopic(ctx, topic.ID, true, "")
	require.NoError(t, err)
	assert.True(t, reviewed.Approved)
	require.NotNil(t, reviewed.ReviewedAt)
	assert.Equal(t, fixedNow, *reviewed.ReviewedAt)

	approved := notificationsOfType(s, studentEmail, model.NotificationTopicApproved)
	require.Len(t, approved, 1)
	assert.Equal(t, `Tu tema "Diabetes en adultos mayores" ha sido aprobado`, approved[0].Message)
}

func TestReviewTopic_RejectWithObservations(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	topic := &model.Topic{StudentEmail: studentEmail, Title: "Puentes"}
	require.NoError(t, s.SaveTopic(ctx, topic))
	// no assigned tutor, nobody told
	assert.Empty(t, s.Snapshot().Notifications)

	got, err := s.ReviewTopic(ctx, topic.ID, false, "Falta alcance")
	require.NoError(t, err)
	assert.False(t, got.Approved)
	assert.Equal(t, "Falta alcance", got.Observations)

	rejected := notificationsOfType(s, studentEmail, model.NotificationTopicRejected)
	require.Len(t, rejected, 1)
	assert.Equal(t, `Tu tema "Puentes" ha sido rechazado. Observaciones: Falta alcance`, rejected[0].Message)

	_, err = s.ReviewTopic(ctx, "missing", true, "")
	assert.ErrorIs(t, err, errdefs.ErrNotFound)
}

func TestUpdateTopic(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	topic := &model.Topic{StudentEmail: studentEmail, Title: "Viejo"}
	require.NoError(t, s.SaveTopic(ctx, topic))

	title := "Nuevo"
	got, err := s.UpdateTopic(ctx, topic.ID, &model.UpdateTopicInput{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Nuevo", got.Title)

	found, err := s.FindTopic(topic.ID)
	require.NoError(t, err)
	assert.Equal(t, *got, *found)

	_, err = s.TopicByStudent("nadie@live.uleam.edu.ec")
	assert.ErrorIs(t, err, errdefs.ErrNotFound)
}

// ── Files ──

func TestFiles(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()
	withAssignment(t, s)

	f := &model.File{Name: "Capitulo1.pdf", MimeType: "application/pdf", Size: 1024, Content: "data:application/pdf;base64,JVBERi0=", StudentEmail: studentEmail}
	require.NoError(t, s.SaveFile(ctx, f))
	assert.Equal(t, fixedNow, f.UploadedAt)

	uploaded := notificationsOfType(s, tutorEmail, model.NotificationFileUploaded)
	require.Len(t, uploaded, 1)
	assert.Equal(t, "El estudiante ha subido un nuevo archivo: Capitulo1.pdf", uploaded[0].Message)

	name := "Capitulo1_v2.pdf"
	got, err := s.UpdateFile(ctx, f.ID, &model.UpdateFileInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, got.Name)
	updated := notificationsOfType(s, tutorEmail, model.NotificationFileUpdated)
	require.Len(t, updated, 1)
	assert.Equal(t, "El estudiante ha actualizado el archivo: Capitulo1_v2.pdf", updated[0].Message)

	assert.Len(t, s.FilesByStudent(studentEmail), 1)

	require.NoError(t, s.DeleteFile(ctx, f.ID))
	assert.Empty(t, s.ListFiles())
	assert.ErrorIs(t, s.DeleteFile(ctx, f.ID), errdefs.ErrNotFound)
	_, err = s.FindFile(f.ID)
	assert.ErrorIs(t, err, errdefs.ErrNotFound)
	_, err = s.UpdateFile(ctx, f.ID, &model.UpdateFileInput{Name: &name})
	assert.ErrorIs(t, err, errdefs.ErrNotFound)
}

// ── Assignments ──

func TestAssignments(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()
	withAssignment(t, s)

	got, err := s.AssignedTutor(studentEmail)
	require.NoError(t, err)
	assert.Equal(t, tutorEmail, got.Email)

	assigned := notificationsOfType(s, studentEmail, model.NotificationTutorAssigned)
	require.Len(t, assigned, 1)
	assert.Equal(t, "Se te ha asignado un tutor para tu proceso de titulación", assigned[0].Message)

	students := s.AssignedStudents(tutorEmail)
	require.Len(t, students, 1)
	assert.Equal(t, studentEmail, students[0].Email)

	a, err := s.AssignmentByStudent(studentEmail)
	require.NoError(t, err)
	found, err := s.FindAssignment(a.ID)
	require.NoError(t, err)
	assert.Equal(t, *a, *found)

	require.NoError(t, s.DeleteAssignment(ctx, a.ID))
	_, err = s.AssignedTutor(studentEmail)
	assert.ErrorIs(t, err, errdefs.ErrNotFound)
	assert.ErrorIs(t, s.DeleteAssignment(ctx, a.ID), errdefs.ErrNotFound)
}

func TestSaveAssignment_OnePerStudent(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()
	withAssignment(t, s)

	err := s.SaveAssignment(ctx, &model.Assignment{StudentEmail: studentEmail, TutorEmail: "otro@uleam.edu.ec"})
	assert.ErrorIs(t, err, errdefs.ErrAlreadyExists)
	assert.Len(t, s.ListAssignments(), 1)
	assert.Len(t, notificationsOfType(s, studentEmail, model.NotificationTutorAssigned), 1)
}

func TestSaveAssignment_ConcurrentSingleWinner(t *testing.T) {
	s := New(kv.NewMemory(), nil)
	ctx := context.Background()

	var (
		wg       sync.WaitGroup
		saved    atomic.Int32
		rejected atomic.Int32
	)
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.SaveAssignment(ctx, &model.Assignment{
				StudentEmail: studentEmail,
				TutorEmail:   fmt.Sprintf("tutor%d@uleam.edu.ec", i),
			})
			switch {
			case err == nil:
				saved.Add(1)
			case errors.Is(err, errdefs.ErrAlreadyExists):
				rejected.Add(1)
			default:
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, saved.Load())
	assert.EqualValues(t, 49, rejected.Load())
	assert.Len(t, s.ListAssignments(), 1)
}

// ── Notifications ──

func TestNotifications(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	n, err := s.CreateNotification(ctx, studentEmail, model.NotificationTutorMessage, "Mensaje de tu tutor: hola", map[string]string{"de": tutorEmail})
	require.NoError(t, err)
	assert.False(t, n.Read)
	assert.JSONEq(t, `{"de":"carlos.rodriguez@uleam.edu.ec"}`, string(n.Payload))

	_, err = s.CreateNotification(ctx, studentEmail, model.NotificationTutorMessage, "otro", nil)
	require.NoError(t, err)
	_, err = s.CreateNotification(ctx, tutorEmail, model.NotificationTutorMessage, "ajeno", nil)
	require.NoError(t, err)

	require.NoError(t, s.MarkNotificationRead(ctx, n.ID))
	require.NoError(t, s.MarkNotificationRead(ctx, n.ID))
	found, err := s.FindNotification(n.ID)
	require.NoError(t, err)
	assert.True(t, found.Read)
	assert.ErrorIs(t, s.MarkNotificationRead(ctx, "missing"), errdefs.ErrNotFound)

	changed, err := s.MarkAllNotificationsRead(ctx, studentEmail)
	require.NoError(t, err)
	assert.Equal(t, 1, changed)
	changed, err = s.MarkAllNotificationsRead(ctx, studentEmail)
	require.NoError(t, err)
	assert.Zero(t, changed)

	other := s.NotificationsFor(tutorEmail)
	require.Len(t, other, 1)
	assert.False(t, other[0].Read)
}

func TestConcurrentWrites(t *testing.T) {
	s := New(kv.NewMemory(), nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.CreateNotification(ctx, studentEmail, model.NotificationTutorMessage, fmt.Sprint(i), nil)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Len(t, s.NotificationsFor(studentEmail), 20)
}

// ── Stats, reset, seed ──

func TestSeedAndStats(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	seeded, err := s.Seed(ctx, nil)
	require.NoError(t, err)
	assert.True(t, seeded)

	seeded, err = s.Seed(ctx, nil)
	require.NoError(t, err)
	assert.False(t, seeded)

	st := s.Stats()
	assert.Equal(t, 13, st.TotalUsers)
	assert.Equal(t, 4, st.TotalStudents)
	assert.Equal(t, 4, st.TotalTutors)
	assert.Equal(t, 3, st.TotalCoordinators)
	assert.Equal(t, 4, st.TotalSessions)
	assert.Equal(t, 2, st.CompletedSessions)
	assert.Equal(t, 3, st.TotalTopics)
	assert.Equal(t, 3, st.TotalFiles)
	assert.Equal(t, map[string]int{
		"Facultad de Ingeniería, Industria y Arquitectura":              5,
		"Facultad de Ciencias de la Salud":                              3,
		"Facultad de Ciencias Administrativas, Contables y Comerciales": 4,
		"Sistemas": 1,
	}, st.FacultiesActivity)

	assignedTutor, err := s.AssignedTutor("maria.gonzalez@live.uleam.edu.ec")
	require.NoError(t, err)
	assert.Equal(t, "carlos.rodriguez@uleam.edu.ec", assignedTutor.Email)
	assert.True(t, s.ValidateCredentials("admin@admin.uleam.edu.ec", "admin123"))
	assert.Len(t, s.NotificationsFor("maria.gonzalez@live.uleam.edu.ec"), 2)
}

func TestSeed_Hashes(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	hash := func(p string) (string, error) { return "hashed:" + p, nil }
	_, err := s.Seed(ctx, hash)
	require.NoError(t, err)
	u, err := s.FindUserByEmail("juan.perez@live.uleam.edu.ec")
	require.NoError(t, err)
	assert.Equal(t, "hashed:estudiante123", u.Password)

	s2 := newTestStore(t, nil)
	_, err = s2.Seed(ctx, func(string) (string, error) { return "", errBackend })
	assert.ErrorIs(t, err, errBackend)
	assert.Empty(t, s2.ListUsers())
}

func TestForceSeed(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()
	require.NoError(t, s.CreateUser(ctx, student("extra@live.uleam.edu.ec")))

	require.NoError(t, s.ForceSeed(ctx, nil))

	_, err := s.FindUserByEmail("extra@live.uleam.edu.ec")
	assert.ErrorIs(t, err, errdefs.ErrNotFound)
	assert.Len(t, s.ListUsers(), 13)
}

func TestReset_EmptiesEveryCollection(t *testing.T) {
	backend := kv.NewMemory()
	s := newTestStore(t, backend)
	ctx := context.Background()
	_, err := s.Seed(ctx, nil)
	require.NoError(t, err)

	require.NoError(t, s.Reset(ctx))

	assert.Empty(t, s.ListUsers())
	assert.Empty(t, s.ListSessions())
	assert.Empty(t, s.ListTopics())
	assert.Empty(t, s.ListFiles())
	assert.Empty(t, s.ListAssignments())
	assert.Empty(t, s.Snapshot().Notifications)
	assert.Equal(t, 0, s.Stats().TotalUsers)

	for _, key := range kv.CollectionKeys {
		raw, err := backend.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "[]", string(raw), key)
	}
}

// ── Persistence ──

func TestRoundTripThroughBackend(t *testing.T) {
	backend := kv.NewMemory()
	ctx := context.Background()

	s := newTestStore(t, backend)
	_, err := s.Seed(ctx, nil)
	require.NoError(t, err)
	reviewedAt := fixedNow
	_, err = s.UpdateTopic(ctx, s.ListTopics()[0].ID, &model.UpdateTopicInput{ReviewedAt: &reviewedAt})
	require.NoError(t, err)
	_, err = s.CreateNotification(ctx, studentEmail, model.NotificationTutorMessage, "hola", map[string]int{"n": 1})
	require.NoError(t, err)

	reloaded := newTestStore(t, backend)
	assert.Equal(t, s.Snapshot(), reloaded.Snapshot())
}

func TestLoad_DropsCorruptCollection(t *testing.T) {
	backend := kv.NewMemory()
	ctx := context.Background()
	require.NoError(t, backend.Set(ctx, kv.KeyTopics, []byte("{not json")))
	require.NoError(t, backend.Set(ctx, kv.KeyUsers, []byte(`[{"id":"1","email":"x@uleam.edu.ec","rol":"tutor"}]`)))

	s := newTestStore(t, backend)

	assert.Empty(t, s.ListTopics())
	assert.Len(t, s.ListUsers(), 1)
	_, err := backend.Get(ctx, kv.KeyTopics)
	assert.ErrorIs(t, err, kv.ErrNotFound)
}

func TestImport(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	snap := Snapshot{
		Users:  []model.User{*student(studentEmail)},
		Topics: []model.Topic{{ID: "t1", StudentEmail: studentEmail, Title: "Importado"}},
	}
	require.NoError(t, s.Import(ctx, snap))

	assert.Len(t, s.ListUsers(), 1)
	got, err := s.TopicByStudent(studentEmail)
	require.NoError(t, err)
	assert.Equal(t, "Importado", got.Title)
	assert.Empty(t, s.ListSessions())
}

func TestWatch_ReloadsForeignChanges(t *testing.T) {
	backend := kv.NewMemory()
	bus := events.NewLocal()
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	writer := New(backend, bus, WithOrigin("writer"))
	reader := New(backend, bus, WithOrigin("reader"))
	require.NoError(t, reader.Load(ctx))

	done := make(chan error, 1)
	go func() { done <- reader.Watch(ctx) }()

	require.Eventually(t, func() bool {
		if _, err := writer.CreateNotification(ctx, studentEmail, model.NotificationTutorMessage, "hola", nil); err != nil {
			return false
		}
		return len(reader.NotificationsFor(studentEmail)) > 0
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestImport_ReplacesEveryCollection(t *testing.T) {
	ctx := context.Background()
	source := newTestStore(t, kv.NewMemory())
	_, err := source.Seed(ctx, nil)
	require.NoError(t, err)
	dump := source.Snapshot()

	backend := kv.NewMemory()
	target := newTestStore(t, backend)
	require.NoError(t, target.CreateUser(ctx, &model.User{
		Email:   "otro@live.uleam.edu.ec",
		Profile: model.StudentProfile{Faculty: "F", Major: "M"},
	}))

	require.NoError(t, target.Import(ctx, dump))
	assert.Equal(t, dump, target.Snapshot())

	_, err = target.FindUserByEmail("otro@live.uleam.edu.ec")
	assert.ErrorIs(t, err, errdefs.ErrNotFound)

	reloaded := newTestStore(t, backend)
	assert.Equal(t, dump, reloaded.Snapshot())
}
