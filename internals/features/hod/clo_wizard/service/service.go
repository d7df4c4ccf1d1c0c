// file: internals/features/hod/clo_wizard/service/service.go
package service

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"obehod_backend/internals/hodapi"
)

const DefaultTTL = 2 * time.Hour

// CLOBackend is what the wizard service needs from the CLO resource.
type CLOBackend interface {
	CLOSaver
	ValidateCount(ctx context.Context, courseID hodapi.ID, count int) (hodapi.Result[hodapi.CLOCount], error)
}

// Service keeps wizards in a Store between requests. Operations on one
// session are serialised; sessions expire after TTL of inactivity.
type Service struct {
	clos  CLOBackend
	store Store
	ttl   time.Duration
	now   func() time.Time

	mu    sync.Mutex
	locks map[uuid.UUID]*sessionLock
}

// sessionLock is held by the requests working on one session. The entry
// is dropped when the last holder releases it.
type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func NewService(clos CLOBackend, store Store, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{
		clos:  clos,
		store: store,
		ttl:   ttl,
		now:   time.Now,
		locks: map[uuid.UUID]*sessionLock{},
	}
}

func (s *Service) lock(id uuid.UUID) func() {
	s.mu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &sessionLock{}
		s.locks[id] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		s.mu.Lock()
		if l.refs--; l.refs == 0 {
			delete(s.locks, id)
		}
		s.mu.Unlock()
	}
}

func (s *Service) create(ctx context.Context, owner string, w *Wizard) (View, error) {
	sess := &Session{ID: uuid.New(), Owner: owner, Wizard: w, ExpiresAt: s.now().Add(s.ttl)}
	if err := s.store.Save(ctx, sess); err != nil {
		return View{}, err
	}
	log.Printf("[WIZARD] session %s opened by %q (%s, %d step(s), course %s)", sess.ID, owner, w.Mode, w.Total, w.CourseID)
	v := w.View()
	v.SessionID = sess.ID.String()
	return v, nil
}

// Start checks the requested count with the backend and opens a create
// wizard for it.
func (s *Service) Start(ctx context.Context, owner string, courseID hodapi.ID, count int, drafts ...Form) (View, error) {
	w, err := NewCreate(courseID, count, drafts...)
	if err != nil {
		return View{}, err
	}

	res, err := s.clos.ValidateCount(ctx, courseID, count)
	if err != nil {
		return View{}, err
	}
	if !res.Data.Allowed() {
		msg := res.Data.Message
		if msg == "" {
			msg = "This course cannot take that many CLOs"
		}
		return View{}, fiber.NewError(fiber.StatusUnprocessableEntity, msg)
	}
	return s.create(ctx, owner, w)
}

// Edit opens a one-step wizard editing clo.
func (s *Service) Edit(ctx context.Context, owner string, courseID hodapi.ID, clo hodapi.CLO) (View, error) {
	if clo.ID.IsZero() {
		return View{}, fiber.NewError(fiber.StatusNotFound, "CLO not found")
	}
	return s.create(ctx, owner, NewEdit(courseID, clo))
}

// do loads the session, runs fn and stores the result. The wizard is saved
// even when fn fails so the form survives for retry.
func (s *Service) do(ctx context.Context, owner string, id uuid.UUID, fn func(w *Wizard) error) (View, error) {
	unlock := s.lock(id)
	defer unlock()

	sess, err := s.store.Load(ctx, id)
	if err != nil {
		return View{}, err
	}
	if sess.Owner != owner || sess.ExpiresAt.Before(s.now()) {
		return View{}, ErrSessionNotFound
	}

	opErr := fn(sess.Wizard)
	if errors.Is(opErr, ErrWizardDone) || errors.Is(opErr, ErrBadStep) {
		v := sess.Wizard.View()
		v.SessionID = id.String()
		return v, opErr
	}

	sess.ExpiresAt = s.now().Add(s.ttl)
	if err := s.store.Save(ctx, sess); err != nil {
		return View{}, err
	}
	v := sess.Wizard.View()
	v.SessionID = id.String()
	return v, opErr
}

func (s *Service) Get(ctx context.Context, owner string, id uuid.UUID) (View, error) {
	return s.do(ctx, owner, id, func(*Wizard) error { return nil })
}

func (s *Service) SetForm(ctx context.Context, owner string, id uuid.UUID, f Form) (View, error) {
	return s.do(ctx, owner, id, func(w *Wizard) error { return w.SetForm(f) })
}

func (s *Service) Prev(ctx context.Context, owner string, id uuid.UUID) (View, error) {
	return s.do(ctx, owner, id, func(w *Wizard) error { return w.Prev() })
}

func (s *Service) GoTo(ctx context.Context, owner string, id uuid.UUID, step int) (View, error) {
	return s.do(ctx, owner, id, func(w *Wizard) error { return w.GoTo(step) })
}

// Submit saves the current step. A finished wizard's session is removed.
func (s *Service) Submit(ctx context.Context, owner string, id uuid.UUID) (View, error) {
	v, err := s.do(ctx, owner, id, func(w *Wizard) error {
		err := w.Submit(ctx, s.clos)
		if err != nil && !IsValidation(err) {
			log.Printf("[WIZARD] session %s step %d save failed: %v", id, w.Step, err)
		}
		return err
	})
	if err == nil && v.Done {
		log.Printf("[WIZARD] session %s finished", id)
		if derr := s.store.Delete(ctx, id); derr != nil {
			log.Printf("[WIZARD] session %s cleanup failed: %v", id, derr)
		}
	}
	return v, err
}

// Discard drops the session; CLOs already submitted stay saved.
func (s *Service) Discard(ctx context.Context, owner string, id uuid.UUID) error {
	unlock := s.lock(id)
	defer unlock()

	sess, err := s.store.Load(ctx, id)
	if err != nil {
		return err
	}
	if sess.Owner != owner {
		return ErrSessionNotFound
	}
	return s.store.Delete(ctx, id)
}

// PurgeExpired removes every session past its expiry.
func (s *Service) PurgeExpired(ctx context.Context) (int64, error) {
	return s.store.DeleteExpired(ctx, s.now())
}
