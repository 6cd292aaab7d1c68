package store

import (
	"context"
	"fmt"
	"slices"

	"github.com/EuclidesAnchundia/Tutorias/internal/errdefs"
	"github.com/EuclidesAnchundia/Tutorias/internal/kv"
	"github.com/EuclidesAnchundia/Tutorias/internal/model"
)

// SaveFile appends f and tells the student's assigned tutor.
func (s *Store) SaveFile(ctx context.Context, f *model.File) error {
	if f == nil {
		return fmt.Errorf("nil file: %w", errdefs.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if f.ID == "" {
		f.ID = s.newID()
	}
	if f.UploadedAt.IsZero() {
		f.UploadedAt = s.timestamp()
	}

	next := append(slices.Clone(s.files), *f)
	if err := persistLocked(ctx, s, kv.KeyFiles, next); err != nil {
		return err
	}
	s.files = next

	if tutor, ok := s.assignedTutorLocked(f.StudentEmail); ok {
		s.notifyLocked(ctx, []string{tutor.Email}, model.NotificationFileUploaded,
			fmt.Sprintf("El estudiante ha subido un nuevo archivo: %s", f.Name), nil)
	}
	return nil
}

// UpdateFile merges in and tells the owner's assigned tutor.
func (s *Store) UpdateFile(ctx context.Context, id string, in *model.UpdateFileInput) (*model.File, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.fileIndexLocked(id)
	if i < 0 {
		return nil, fmt.Errorf("file %s: %w", id, errdefs.ErrNotFound)
	}

	next := slices.Clone(s.files)
	next[i] = in.Apply(next[i])
	if err := persistLocked(ctx, s, kv.KeyFiles, next); err != nil {
		return nil, err
	}
	s.files = next

	updated := next[i]
	if tutor, ok := s.assignedTutorLocked(updated.StudentEmail); ok {
		s.notifyLocked(ctx, []string{tutor.Email}, model.NotificationFileUpdated,
			fmt.Sprintf("El estudiante ha actualizado el archivo: %s", updated.Name), nil)
	}
	return &updated, nil
}

func (s *Store) DeleteFile(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := slices.DeleteFunc(slices.Clone(s.files), func(f model.File) bool { return f.ID == id })
	if len(next) == len(s.files) {
		return fmt.Errorf("file %s: %w", id, errdefs.ErrNotFound)
	}
	if err := persistLocked(ctx, s, kv.KeyFiles, next); err != nil {
		return err
	}
	s.files = next
	return nil
}

func (s *Store) FindFile(id string) (*model.File, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.fileIndexLocked(id)
	if i < 0 {
		return nil, fmt.Errorf("file %s: %w", id, errdefs.ErrNotFound)
	}
	f := s.files[i]
	return &f, nil
}

func (s *Store) ListFiles() []model.File {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.files)
}

func (s *Store) FilesByStudent(email string) []model.File {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.File
	for _, f := range s.files {
		if f.StudentEmail == email {
			out = append(out, f)
		}
	}
	return out
}

func (s *Store) fileIndexLocked(id string) int {
	return slices.IndexFunc(s.files, func(f model.File) bool { return f.ID == id })
}
