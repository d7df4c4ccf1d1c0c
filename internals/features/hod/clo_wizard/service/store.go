// file: internals/features/hod/clo_wizard/service/store.go
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"obehod_backend/internals/features/hod/clo_wizard/model"
	"obehod_backend/internals/hodapi"
)

var ErrSessionNotFound = errors.New("wizard session not found")

// Session is one user's wizard between requests.
type Session struct {
	ID        uuid.UUID
	Owner     string
	Wizard    *Wizard
	ExpiresAt time.Time
}

type Store interface {
	Save(ctx context.Context, s *Session) error
	Load(ctx context.Context, id uuid.UUID) (*Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteExpired removes sessions that expired before now.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

func encodeWizard(w *Wizard) ([]byte, error) {
	b, err := sonic.Marshal(w)
	if err != nil {
		return nil, fmt.Errorf("encode wizard: %w", err)
	}
	return b, nil
}

func decodeWizard(b []byte) (*Wizard, error) {
	var w Wizard
	if err := sonic.Unmarshal(b, &w); err != nil {
		return nil, fmt.Errorf("decode wizard: %w", err)
	}
	if w.Total < 1 {
		return nil, fmt.Errorf("decode wizard: no steps")
	}
	w.Restore()
	return &w, nil
}

/* ============================================
   Memory
============================================ */

type memoryEntry struct {
	owner     string
	state     []byte
	expiresAt time.Time
}

// MemoryStore keeps sessions in process. Wizards are stored encoded so
// callers never share state with the store.
type MemoryStore struct {
	mu   sync.Mutex
	rows map[uuid.UUID]memoryEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rows: map[uuid.UUID]memoryEntry{}}
}

func (m *MemoryStore) Save(_ context.Context, s *Session) error {
	b, err := encodeWizard(s.Wizard)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.rows[s.ID] = memoryEntry{owner: s.Owner, state: b, expiresAt: s.ExpiresAt}
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Load(_ context.Context, id uuid.UUID) (*Session, error) {
	m.mu.Lock()
	e, ok := m.rows[id]
	m.mu.Unlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	w, err := decodeWizard(e.state)
	if err != nil {
		return nil, err
	}
	return &Session{ID: id, Owner: e.owner, Wizard: w, ExpiresAt: e.expiresAt}, nil
}

func (m *MemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	delete(m.rows, id)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, e := range m.rows {
		if e.expiresAt.Before(now) {
			delete(m.rows, id)
			n++
		}
	}
	return n, nil
}

/* ============================================
   Postgres (gorm)
============================================ */

type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore { return &GormStore{DB: db} }

// sessionUpdateColumns are rewritten when a session is saved again;
// clo_wizard_session_created_at keeps its first value.
var sessionUpdateColumns = []string{
	"clo_wizard_session_owner",
	"clo_wizard_session_course_id",
	"clo_wizard_session_mode",
	"clo_wizard_session_total",
	"clo_wizard_session_step",
	"clo_wizard_session_done",
	"clo_wizard_session_state",
	"clo_wizard_session_saved_ids",
	"clo_wizard_session_expires_at",
	"clo_wizard_session_updated_at",
}

func (g *GormStore) Save(ctx context.Context, s *Session) error {
	row, err := sessionRow(s)
	if err != nil {
		return err
	}
	err = g.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "clo_wizard_session_id"}},
			DoUpdates: clause.AssignmentColumns(sessionUpdateColumns),
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("save wizard session: %w", err)
	}
	return nil
}

func (g *GormStore) Load(ctx context.Context, id uuid.UUID) (*Session, error) {
	var row model.CLOWizardSessionModel
	err := g.DB.WithContext(ctx).
		Where("clo_wizard_session_id = ?", id).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load wizard session: %w", err)
	}
	return sessionFromRow(row)
}

func sessionRow(s *Session) (model.CLOWizardSessionModel, error) {
	b, err := encodeWizard(s.Wizard)
	if err != nil {
		return model.CLOWizardSessionModel{}, err
	}
	saved := make(pq.StringArray, len(s.Wizard.Saved))
	for i, id := range s.Wizard.Saved {
		saved[i] = id.String()
	}
	return model.CLOWizardSessionModel{
		CLOWizardSessionID:        s.ID,
		CLOWizardSessionOwner:     s.Owner,
		CLOWizardSessionCourseID:  s.Wizard.CourseID.String(),
		CLOWizardSessionMode:      s.Wizard.Mode,
		CLOWizardSessionTotal:     s.Wizard.Total,
		CLOWizardSessionStep:      s.Wizard.Step,
		CLOWizardSessionDone:      s.Wizard.Done,
		CLOWizardSessionState:     datatypes.JSON(b),
		CLOWizardSessionSavedIDs:  saved,
		CLOWizardSessionExpiresAt: s.ExpiresAt,
	}, nil
}

func sessionFromRow(row model.CLOWizardSessionModel) (*Session, error) {
	w, err := decodeWizard(row.CLOWizardSessionState)
	if err != nil {
		return nil, err
	}
	// columns win over the blob for the saved ids
	for i, s := range row.CLOWizardSessionSavedIDs {
		if i < len(w.Saved) && s != "" {
			w.Saved[i] = hodapi.ID(s)
		}
	}
	return &Session{
		ID:        row.CLOWizardSessionID,
		Owner:     row.CLOWizardSessionOwner,
		Wizard:    w,
		ExpiresAt: row.CLOWizardSessionExpiresAt,
	}, nil
}

func (g *GormStore) Delete(ctx context.Context, id uuid.UUID) error {
	return g.DB.WithContext(ctx).
		Where("clo_wizard_session_id = ?", id).
		Delete(&model.CLOWizardSessionModel{}).Error
}

func (g *GormStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := g.DB.WithContext(ctx).
		Where("clo_wizard_session_expires_at < ?", now).
		Delete(&model.CLOWizardSessionModel{})
	return res.RowsAffected, res.Error
}
