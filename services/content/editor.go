// File: services/content/editor.go
package content

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cursos/models"
	"cursos/services/backend"
	"cursos/services/session"
	"cursos/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func draftKey(userID, courseID int64) string {
	return fmt.Sprintf("%s%d:%d", utils.DraftPrefix, userID, courseID)
}

func userDraftPrefix(userID int64) string {
	return fmt.Sprintf("%s%d:", utils.DraftPrefix, userID)
}

func documentHash(doc models.ContentDocument) string {
	doc.Normalize()
	data, _ := json.Marshal(doc)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func (s *DefaultEditorService) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}

func (s *DefaultEditorService) readDraft(ctx context.Context, key string) (*Draft, error) {
	data, err := s.Store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	var d Draft
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to decode draft %s: %w", key, err)
	}
	d.Document.Normalize()
	return &d, nil
}

func (s *DefaultEditorService) writeDraft(ctx context.Context, key string, d *Draft) error {
	d.Document.Normalize()
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}
	if err := s.Store.Set(ctx, key, data, s.TTL); err != nil {
		return fmt.Errorf("failed to store draft: %w", err)
	}
	return nil
}

// fetch builds a fresh draft from the backend. Only a missing document (404) starts empty;
// any other failure is returned so no draft is written over real content.
func (s *DefaultEditorService) fetch(ctx context.Context, sess *models.Session, courseID int64) (*Draft, error) {
	logger := utils.GetLogger().With(zap.Int64("courseID", courseID))
	d := &Draft{CourseID: courseID, LoadedAt: time.Now()}

	if course, err := s.API.FindCourse(ctx, sess.Token, courseID); err != nil {
		logger.Warn("Could not load course name for editor", zap.Error(err))
	} else {
		d.CourseName = course.Name
	}

	doc, err := s.API.GetContent(ctx, sess.Token, courseID)
	switch {
	case err == nil:
		d.Document = doc.Clone()
	case backend.IsNotFound(err):
		logger.Info("No stored content, starting empty")
		d.Document = models.ContentDocument{Modules: []models.Module{}}
	default:
		return nil, fmt.Errorf("load content of course %d: %w", courseID, err)
	}
	d.Document.Normalize()
	d.BaseHash = documentHash(d.Document)
	return d, nil
}

// current returns the stored draft or loads a new one. Callers hold the draft lock.
func (s *DefaultEditorService) current(ctx context.Context, sess *models.Session, courseID int64) (*Draft, error) {
	key := draftKey(sess.User.ID, courseID)
	d, err := s.readDraft(ctx, key)
	if err == nil {
		return d, nil
	}
	if !errors.Is(err, utils.ErrCacheMiss) {
		utils.GetLogger().Warn("Discarding unreadable draft", zap.String("key", key), zap.Error(err))
	}
	d, err = s.fetch(ctx, sess, courseID)
	if err != nil {
		return nil, err
	}
	if err := s.writeDraft(ctx, key, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Load returns the working draft, creating it from the backend on first use.
func (s *DefaultEditorService) Load(ctx context.Context, sess *models.Session, courseID int64) (*Draft, error) {
	unlock := s.locks.Lock(draftKey(sess.User.ID, courseID))
	defer unlock()
	return s.current(ctx, sess, courseID)
}

// Discard drops local changes; the next Load starts from the backend again.
func (s *DefaultEditorService) Discard(ctx context.Context, sess *models.Session, courseID int64) error {
	key := draftKey(sess.User.ID, courseID)
	unlock := s.locks.Lock(key)
	defer unlock()
	return s.Store.Delete(ctx, key)
}

func (s *DefaultEditorService) mutate(ctx context.Context, sess *models.Session, courseID int64, fn func(*models.ContentDocument) error) (*Draft, error) {
	key := draftKey(sess.User.ID, courseID)
	unlock := s.locks.Lock(key)
	defer unlock()

	d, err := s.current(ctx, sess, courseID)
	if err != nil {
		return nil, err
	}
	doc := d.Document.Clone()
	if err := fn(&doc); err != nil {
		return nil, err
	}
	d.Document = doc
	d.Dirty = true
	if err := s.writeDraft(ctx, key, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *DefaultEditorService) AddModule(ctx context.Context, sess *models.Session, courseID int64, in ModuleInput) (*Draft, error) {
	id := s.newID()
	return s.mutate(ctx, sess, courseID, func(doc *models.ContentDocument) error {
		return addModule(doc, id, in)
	})
}

func (s *DefaultEditorService) RenameModule(ctx context.Context, sess *models.Session, courseID int64, moduleID string, in ModuleInput) (*Draft, error) {
	return s.mutate(ctx, sess, courseID, func(doc *models.ContentDocument) error {
		return renameModule(doc, moduleID, in)
	})
}

func (s *DefaultEditorService) DeleteModule(ctx context.Context, sess *models.Session, courseID int64, moduleID string) (*Draft, error) {
	return s.mutate(ctx, sess, courseID, func(doc *models.ContentDocument) error {
		return deleteModule(doc, moduleID)
	})
}

func (s *DefaultEditorService) MoveModule(ctx context.Context, sess *models.Session, courseID int64, moduleID string, index int) (*Draft, error) {
	return s.mutate(ctx, sess, courseID, func(doc *models.ContentDocument) error {
		return moveModule(doc, moduleID, index)
	})
}

func (s *DefaultEditorService) AddLesson(ctx context.Context, sess *models.Session, courseID int64, moduleID string, in LessonInput) (*Draft, error) {
	id := s.newID()
	return s.mutate(ctx, sess, courseID, func(doc *models.ContentDocument) error {
		return addLesson(doc, moduleID, id, in)
	})
}

func (s *DefaultEditorService) EditLesson(ctx context.Context, sess *models.Session, courseID int64, moduleID, lessonID string, in LessonInput) (*Draft, error) {
	return s.mutate(ctx, sess, courseID, func(doc *models.ContentDocument) error {
		return editLesson(doc, moduleID, lessonID, in)
	})
}

func (s *DefaultEditorService) DeleteLesson(ctx context.Context, sess *models.Session, courseID int64, moduleID, lessonID string) (*Draft, error) {
	return s.mutate(ctx, sess, courseID, func(doc *models.ContentDocument) error {
		return deleteLesson(doc, moduleID, lessonID)
	})
}

// Save overwrites the backend document with the draft. The last writer wins; a backend
// document that changed since the draft was loaded is only logged.
func (s *DefaultEditorService) Save(ctx context.Context, sess *models.Session, courseID int64) (*Draft, error) {
	key := draftKey(sess.User.ID, courseID)
	unlock := s.locks.Lock(key)
	defer unlock()

	d, err := s.current(ctx, sess, courseID)
	if err != nil {
		return nil, err
	}

	if remote, err := s.API.GetContent(ctx, sess.Token, courseID); err == nil {
		if h := documentHash(*remote); h != d.BaseHash {
			utils.GetLogger().Warn("Overwriting content changed since the draft was loaded",
				zap.Int64("courseID", courseID), zap.Int64("userID", sess.User.ID))
		}
	}

	if err := s.API.SaveContent(ctx, sess.Token, courseID, d.Document); err != nil {
		return nil, fmt.Errorf("save content of course %d: %w", courseID, err)
	}
	if err := s.Store.Delete(ctx, key); err != nil {
		utils.GetLogger().Warn("Failed to drop saved draft", zap.String("key", key), zap.Error(err))
	}
	d.Dirty = false
	d.BaseHash = documentHash(d.Document)
	return d, nil
}

// DropUserDrafts is a session subscriber: signing out discards that user's drafts.
func (s *DefaultEditorService) DropUserDrafts(e session.Event) {
	if e.Kind != session.EventCleared || e.Previous == nil {
		return
	}
	ctx := e.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	if err := s.Store.DeletePrefix(ctx, userDraftPrefix(e.Previous.User.ID)); err != nil {
		utils.GetLogger().Warn("Failed to drop drafts on sign out", zap.Int64("userID", e.Previous.User.ID), zap.Error(err))
	}
}
