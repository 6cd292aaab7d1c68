package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/EuclidesAnchundia/Tutorias/common_library/logging"
	"github.com/EuclidesAnchundia/Tutorias/internal/auth"
	"github.com/EuclidesAnchundia/Tutorias/internal/errdefs"
	"github.com/EuclidesAnchundia/Tutorias/internal/ingest"
	"github.com/EuclidesAnchundia/Tutorias/internal/model"
	"github.com/EuclidesAnchundia/Tutorias/internal/store"
)

type TutoringStore interface {
	FindUserByEmail(email string) (*model.User, error)
	ListUsers() []model.User
	UpdateUser(ctx context.Context, email string, in *model.UpdateUserInput) (*model.User, error)
	DeleteUser(ctx context.Context, email string) error

	SaveAssignment(ctx context.Context, a *model.Assignment) error
	DeleteAssignment(ctx context.Context, id string) error
	ListAssignments() []model.Assignment
	AssignedTutor(studentEmail string) (*model.User, error)
	AssignedStudents(tutorEmail string) []model.User

	CreateSession(ctx context.Context, ts *model.TutoringSession) error
	TransitionSession(ctx context.Context, id string, action model.SessionAction, in *model.TransitionInput) (*model.TutoringSession, error)
	FindSession(id string) (*model.TutoringSession, error)
	ListSessions() []model.TutoringSession
	SessionsByStudent(email string) []model.TutoringSession
	SessionsByTutor(email string) []model.TutoringSession

	SaveTopic(ctx context.Context, t *model.Topic) error
	ReviewTopic(ctx context.Context, id string, approved bool, observations string) (*model.Topic, error)
	FindTopic(id string) (*model.Topic, error)
	TopicByStudent(email string) (*model.Topic, error)
	ListTopics() []model.Topic

	SaveFile(ctx context.Context, f *model.File) error
	UpdateFile(ctx context.Context, id string, in *model.UpdateFileInput) (*model.File, error)
	DeleteFile(ctx context.Context, id string) error
	FindFile(id string) (*model.File, error)
	ListFiles() []model.File
	FilesByStudent(email string) []model.File

	CreateNotification(ctx context.Context, email, typ, message string, payload any) (*model.Notification, error)

	Stats() model.Stats
	Reset(ctx context.Context) error
	Seed(ctx context.Context, hash store.PasswordHasher) (bool, error)
	ForceSeed(ctx context.Context, hash store.PasswordHasher) error
}

type TutoringService struct {
	store TutoringStore
	hash  store.PasswordHasher
}

func NewTutoringService(st TutoringStore, hash store.PasswordHasher) *TutoringService {
	return &TutoringService{store: st, hash: hash}
}

// ── Coordinator ──

// AssignTutor links a student to a tutor. A student has at most one
// assignment; the store rejects a second one with ErrAlreadyExists.
func (s *TutoringService) AssignTutor(ctx context.Context, in *model.AssignTutorInput) (*model.Assignment, error) {
	coordinator, err := ensureCurrentUserRole(ctx, model.RoleCoordinator)
	if err != nil {
		return nil, err
	}
	if in == nil || in.StudentEmail == "" || in.TutorEmail == "" {
		return nil, fmt.Errorf("student and tutor are required: %w", errdefs.ErrValidation)
	}
	if err := s.ensureUserRole(in.StudentEmail, model.RoleStudent); err != nil {
		return nil, err
	}
	if err := s.ensureUserRole(in.TutorEmail, model.RoleTutor); err != nil {
		return nil, err
	}

	a := &model.Assignment{
		StudentEmail:     in.StudentEmail,
		TutorEmail:       in.TutorEmail,
		CoordinatorEmail: coordinator,
	}
	if err := s.store.SaveAssignment(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *TutoringService) Unassign(ctx context.Context, id string) error {
	if _, err := ensureCurrentUserRole(ctx, model.RoleCoordinator); err != nil {
		return err
	}
	return s.store.DeleteAssignment(ctx, id)
}

func (s *TutoringService) Assignments(ctx context.Context) ([]model.Assignment, error) {
	if _, err := ensureCurrentUserRole(ctx, model.RoleCoordinator, model.RoleAdministrator); err != nil {
		return nil, err
	}
	return s.store.ListAssignments(), nil
}

func (s *TutoringService) ensureUserRole(email string, role model.Role) error {
	u, err := s.store.FindUserByEmail(email)
	if err != nil {
		return err
	}
	if u.Role() != role {
		return fmt.Errorf("%s is not a %s: %w", email, role, errdefs.ErrValidation)
	}
	return nil
}

// ── Student ──

func (s *TutoringService) RequestSession(ctx context.Context, in *model.RequestSessionInput) (*model.TutoringSession, error) {
	student, err := ensureCurrentUserRole(ctx, model.RoleStudent)
	if err != nil {
		return nil, err
	}
	if in == nil || strings.TrimSpace(in.Date) == "" || strings.TrimSpace(in.Time) == "" || strings.TrimSpace(in.Subject) == "" {
		return nil, fmt.Errorf("date, time and subject are required: %w", errdefs.ErrValidation)
	}
	tutor, err := s.store.AssignedTutor(student)
	if err != nil {
		if errors.Is(err, errdefs.ErrNotFound) {
			return nil, fmt.Errorf("no tutor assigned: %w", errdefs.ErrValidation)
		}
		return nil, err
	}

	ts := &model.TutoringSession{
		StudentEmail: student,
		TutorEmail:   tutor.Email,
		Date:         strings.TrimSpace(in.Date),
		Time:         strings.TrimSpace(in.Time),
		Subject:      strings.TrimSpace(in.Subject),
		Description:  strings.TrimSpace(in.Description),
	}
	if err := s.store.CreateSession(ctx, ts); err != nil {
		return nil, err
	}
	return ts, nil
}

func (s *TutoringService) SubmitTopic(ctx context.Context, in *model.SubmitTopicInput) (*model.Topic, error) {
	student, err := ensureCurrentUserRole(ctx, model.RoleStudent)
	if err != nil {
		return nil, err
	}
	if in == nil || strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Description) == "" {
		return nil, fmt.Errorf("title and description are required: %w", errdefs.ErrValidation)
	}
	t := &model.Topic{
		StudentEmail: student,
		Title:        strings.TrimSpace(in.Title),
		Description:  strings.TrimSpace(in.Description),
	}
	if err := s.store.SaveTopic(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// UploadFile validates r as a PDF and stores it for the calling student.
func (s *TutoringService) UploadFile(ctx context.Context, name, mimeType string, r io.Reader) (*model.File, error) {
	student, err := ensureCurrentUserRole(ctx, model.RoleStudent)
	if err != nil {
		return nil, err
	}
	doc, err := ingest.PDF(name, mimeType, r)
	if err != nil {
		return nil, err
	}
	f := &model.File{
		Name:         doc.Name,
		MimeType:     doc.MimeType,
		Size:         doc.Size,
		Content:      doc.Content,
		StudentEmail: student,
	}
	if err := s.store.SaveFile(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// ReplaceFile swaps the content of one of the caller's files.
func (s *TutoringService) ReplaceFile(ctx context.Context, id, name, mimeType string, r io.Reader) (*model.File, error) {
	if _, err := s.ownFile(ctx, id); err != nil {
		return nil, err
	}
	doc, err := ingest.PDF(name, mimeType, r)
	if err != nil {
		return nil, err
	}
	return s.store.UpdateFile(ctx, id, &model.UpdateFileInput{
		Name:     &doc.Name,
		MimeType: &doc.MimeType,
		Size:     &doc.Size,
		Content:  &doc.Content,
	})
}

func (s *TutoringService) DeleteFile(ctx context.Context, id string) error {
	if _, err := s.ownFile(ctx, id); err != nil {
		return err
	}
	return s.store.DeleteFile(ctx, id)
}

func (s *TutoringService) ownFile(ctx context.Context, id string) (*model.File, error) {
	student, err := ensureCurrentUserRole(ctx, model.RoleStudent)
	if err != nil {
		return nil, err
	}
	f, err := s.store.FindFile(id)
	if err != nil {
		return nil, err
	}
	if f.StudentEmail != student {
		return nil, errdefs.ErrPermissionDenied
	}
	return f, nil
}

func (s *TutoringService) MySessions(ctx context.Context) ([]model.TutoringSession, error) {
	student, err := ensureCurrentUserRole(ctx, model.RoleStudent)
	if err != nil {
		return nil, err
	}
	return s.store.SessionsByStudent(student), nil
}

func (s *TutoringService) MyTopic(ctx context.Context) (*model.Topic, error) {
	student, err := ensureCurrentUserRole(ctx, model.RoleStudent)
	if err != nil {
		return nil, err
	}
	return s.store.TopicByStudent(student)
}

func (s *TutoringService) MyFiles(ctx context.Context) ([]model.File, error) {
	student, err := ensureCurrentUserRole(ctx, model.RoleStudent)
	if err != nil {
		return nil, err
	}
	return s.store.FilesByStudent(student), nil
}

func (s *TutoringService) MyTutor(ctx context.Context) (*model.User, error) {
	student, err := ensureCurrentUserRole(ctx, model.RoleStudent)
	if err != nil {
		return nil, err
	}
	return s.store.AssignedTutor(student)
}

// ── Tutor ──

func (s *TutoringService) AcceptSession(ctx context.Context, id string) (*model.TutoringSession, error) {
	return s.transition(ctx, id, model.ActionAccept, nil)
}

func (s *TutoringService) RejectSession(ctx context.Context, id, reason string) (*model.TutoringSession, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("a rejection reason is required: %w", errdefs.ErrValidation)
	}
	return s.transition(ctx, id, model.ActionReject, &model.TransitionInput{RejectionReason: &reason})
}

func (s *TutoringService) CompleteSession(ctx context.Context, id string, in *model.CompleteSessionInput) (*model.TutoringSession, error) {
	if in == nil {
		in = &model.CompleteSessionInput{}
	}
	grade := strings.TrimSpace(in.Grade)
	observations := strings.TrimSpace(in.Observations)
	return s.transition(ctx, id, model.ActionComplete, &model.TransitionInput{Grade: &grade, Observations: &observations})
}

func (s *TutoringService) transition(ctx context.Context, id string, action model.SessionAction, in *model.TransitionInput) (*model.TutoringSession, error) {
	tutor, err := ensureCurrentUserRole(ctx, model.RoleTutor)
	if err != nil {
		return nil, err
	}
	ts, err := s.store.FindSession(id)
	if err != nil {
		return nil, err
	}
	if ts.TutorEmail != tutor {
		return nil, errdefs.ErrPermissionDenied
	}

	updated, err := s.store.TransitionSession(ctx, id, action, in)
	if err != nil {
		return nil, err
	}
	if logger, ok := logging.GetFromContext(ctx); ok {
		logger.Info(ctx, "Session transitioned", zap.String("session_id", id), zap.String("status", updated.Status.String()))
	}
	return updated, nil
}

// ReviewTopic approves or rejects a topic of one of the tutor's students.
func (s *TutoringService) ReviewTopic(ctx context.Context, id string, in *model.ReviewTopicInput) (*model.Topic, error) {
	tutor, err := ensureCurrentUserRole(ctx, model.RoleTutor)
	if err != nil {
		return nil, err
	}
	if in == nil {
		return nil, errdefs.ErrValidation
	}
	t, err := s.store.FindTopic(id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureAssigned(tutor, t.StudentEmail); err != nil {
		return nil, err
	}
	return s.store.ReviewTopic(ctx, id, in.Approved, strings.TrimSpace(in.Observations))
}

// SendMessage leaves a MENSAJE_TUTOR notification for an assigned student.
func (s *TutoringService) SendMessage(ctx context.Context, in *model.SendMessageInput) (*model.Notification, error) {
	tutor, err := ensureCurrentUserRole(ctx, model.RoleTutor)
	if err != nil {
		return nil, err
	}
	if in == nil || strings.TrimSpace(in.Message) == "" || in.StudentEmail == "" {
		return nil, fmt.Errorf("student and message are required: %w", errdefs.ErrValidation)
	}
	if err := s.ensureAssigned(tutor, in.StudentEmail); err != nil {
		return nil, err
	}
	msg := strings.TrimSpace(in.Message)
	return s.store.CreateNotification(ctx, in.StudentEmail, model.NotificationTutorMessage,
		"Mensaje de tu tutor: "+msg, map[string]string{"tutorEmail": tutor})
}

func (s *TutoringService) ensureAssigned(tutorEmail, studentEmail string) error {
	assigned, err := s.store.AssignedTutor(studentEmail)
	if err != nil {
		if errors.Is(err, errdefs.ErrNotFound) {
			return errdefs.ErrPermissionDenied
		}
		return err
	}
	if assigned.Email != tutorEmail {
		return errdefs.ErrPermissionDenied
	}
	return nil
}

func (s *TutoringService) MyStudents(ctx context.Context) ([]model.User, error) {
	tutor, err := ensureCurrentUserRole(ctx, model.RoleTutor)
	if err != nil {
		return nil, err
	}
	return s.store.AssignedStudents(tutor), nil
}

func (s *TutoringService) TutorSessions(ctx context.Context) ([]model.TutoringSession, error) {
	tutor, err := ensureCurrentUserRole(ctx, model.RoleTutor)
	if err != nil {
		return nil, err
	}
	return s.store.SessionsByTutor(tutor), nil
}

// ── Role-scoped listings ──

// Sessions returns what the caller may see: their own as student or tutor,
// everything as coordinator or administrator.
func (s *TutoringService) Sessions(ctx context.Context) ([]model.TutoringSession, error) {
	role, err := getRole(ctx)
	if err != nil {
		return nil, err
	}
	switch role {
	case model.RoleStudent:
		return s.MySessions(ctx)
	case model.RoleTutor:
		return s.TutorSessions(ctx)
	default:
		return s.store.ListSessions(), nil
	}
}

func (s *TutoringService) Topics(ctx context.Context) ([]model.Topic, error) {
	email, err := getUserEmail(ctx)
	if err != nil {
		return nil, err
	}
	role, err := getRole(ctx)
	if err != nil {
		return nil, err
	}
	switch role {
	case model.RoleStudent:
		t, err := s.store.TopicByStudent(email)
		if errors.Is(err, errdefs.ErrNotFound) {
			return []model.Topic{}, nil
		}
		if err != nil {
			return nil, err
		}
		return []model.Topic{*t}, nil
	case model.RoleTutor:
		out := []model.Topic{}
		for _, student := range s.store.AssignedStudents(email) {
			if t, err := s.store.TopicByStudent(student.Email); err == nil {
				out = append(out, *t)
			}
		}
		return out, nil
	default:
		return s.store.ListTopics(), nil
	}
}

func (s *TutoringService) Files(ctx context.Context) ([]model.File, error) {
	email, err := getUserEmail(ctx)
	if err != nil {
		return nil, err
	}
	role, err := getRole(ctx)
	if err != nil {
		return nil, err
	}
	switch role {
	case model.RoleStudent:
		return s.store.FilesByStudent(email), nil
	case model.RoleTutor:
		out := []model.File{}
		for _, student := range s.store.AssignedStudents(email) {
			out = append(out, s.store.FilesByStudent(student.Email)...)
		}
		return out, nil
	default:
		return s.store.ListFiles(), nil
	}
}

// File returns one file when the caller may see it: the owner, the owner's
// tutor, coordinators and administrators.
func (s *TutoringService) File(ctx context.Context, id string) (*model.File, error) {
	email, err := getUserEmail(ctx)
	if err != nil {
		return nil, err
	}
	role, err := getRole(ctx)
	if err != nil {
		return nil, err
	}
	f, err := s.store.FindFile(id)
	if err != nil {
		return nil, err
	}
	switch role {
	case model.RoleStudent:
		if f.StudentEmail != email {
			return nil, errdefs.ErrPermissionDenied
		}
	case model.RoleTutor:
		if err := s.ensureAssigned(email, f.StudentEmail); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// ── Administration ──

func (s *TutoringService) ListUsers(ctx context.Context, filter model.UserFilter) ([]model.User, error) {
	if _, err := ensureCurrentUserRole(ctx, model.RoleAdministrator, model.RoleCoordinator); err != nil {
		return nil, err
	}
	out := []model.User{}
	for _, u := range s.store.ListUsers() {
		if filter.Match(&u) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *TutoringService) UsersByFaculty(ctx context.Context, faculty string) ([]model.User, error) {
	return s.ListUsers(ctx, model.UserFilter{Faculty: faculty})
}

func (s *TutoringService) UpdateUser(ctx context.Context, email string, in *model.UpdateUserInput) (*model.User, error) {
	if _, err := ensureCurrentUserRole(ctx, model.RoleAdministrator); err != nil {
		return nil, err
	}
	if in.Empty() {
		return nil, fmt.Errorf("nothing to update: %w", errdefs.ErrValidation)
	}
	if in.Password != nil {
		if err := auth.ValidatePassword(*in.Password); err != nil {
			return nil, err
		}
		if s.hash != nil {
			hashed, err := s.hash(*in.Password)
			if err != nil {
				return nil, err
			}
			in.Password = &hashed
		}
	}
	return s.store.UpdateUser(ctx, email, in)
}

func (s *TutoringService) DeleteUser(ctx context.Context, email string) error {
	current, err := ensureCurrentUserRole(ctx, model.RoleAdministrator)
	if err != nil {
		return err
	}
	if current == email {
		return fmt.Errorf("administrators cannot delete themselves: %w", errdefs.ErrValidation)
	}
	return s.store.DeleteUser(ctx, email)
}

func (s *TutoringService) Stats(ctx context.Context) (model.Stats, error) {
	if _, err := ensureCurrentUserRole(ctx, model.RoleAdministrator, model.RoleCoordinator); err != nil {
		return model.Stats{}, err
	}
	return s.store.Stats(), nil
}

func (s *TutoringService) Reset(ctx context.Context) error {
	if _, err := ensureCurrentUserRole(ctx, model.RoleAdministrator); err != nil {
		return err
	}
	return s.store.Reset(ctx)
}

// Seed loads the demo dataset. Without force it only runs on an empty
// user collection and reports whether it did.
func (s *TutoringService) Seed(ctx context.Context, force bool) (bool, error) {
	if _, err := ensureCurrentUserRole(ctx, model.RoleAdministrator); err != nil {
		return false, err
	}
	if force {
		if err := s.store.ForceSeed(ctx, s.hash); err != nil {
			return false, err
		}
		return true, nil
	}
	return s.store.Seed(ctx, s.hash)
}
