package service

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"obehod_backend/internals/hodapi"
	"obehod_backend/internals/hodapi/hodapitest"
)

func newTestService(clos CLOBackend) (*Service, *MemoryStore) {
	store := NewMemoryStore()
	return NewService(clos, store, time.Hour), store
}

func (s *Service) heldLocks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.locks)
}

func TestService_StartChecksCountWithBackend(t *testing.T) {
	be := hodapitest.New(t)
	be.JSON("POST /hod/course/{courseId}/clo-count", http.StatusOK, map[string]any{"valid": false, "message": "Course already has 5 CLOs"})
	svc, _ := newTestService(be.Client().CLOs)

	_, err := svc.Start(context.Background(), "u1", "c1", 3)

	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusUnprocessableEntity, fe.Code)
	assert.Equal(t, "Course already has 5 CLOs", fe.Message)
}

func TestService_FullRunAgainstBackend(t *testing.T) {
	be := hodapitest.New(t)
	be.JSON("POST /hod/course/{courseId}/clo-count", http.StatusOK, map[string]any{"valid": true})
	be.Handle("POST /hod/clo/createClo/{courseId}", func(w http.ResponseWriter, r *http.Request) {
		hodapitest.Reply(w, http.StatusCreated, map[string]any{"clo": map[string]any{"id": 7, "cloCode": "CLO1"}})
	})
	svc, store := newTestService(be.Client().CLOs)
	ctx := context.Background()

	v, err := svc.Start(ctx, "u1", "c1", 1)
	require.NoError(t, err)
	id := uuid.MustParse(v.SessionID)

	_, err = svc.SetForm(ctx, "u1", id, Form{Description: "Explain ACID", BloomLevel: "understand", Threshold: 99})
	require.NoError(t, err)

	v, err = svc.Submit(ctx, "u1", id)
	require.NoError(t, err)
	assert.True(t, v.Done)
	assert.Equal(t, 1, be.Calls("POST /hod/clo/createClo/{courseId}"))

	_, err = store.Load(ctx, id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Zero(t, svc.heldLocks())
}

func TestService_SessionLocksAreReleased(t *testing.T) {
	svc, _ := newTestService(&fakeCLOs{})
	ctx := context.Background()

	v, err := svc.Start(ctx, "u1", "c1", 2)
	require.NoError(t, err)
	id := uuid.MustParse(v.SessionID)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Get(ctx, "u1", id)
		}()
	}
	wg.Wait()
	assert.Zero(t, svc.heldLocks())

	_, err = svc.Get(ctx, "u1", uuid.New())
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Zero(t, svc.heldLocks())
}

func TestService_FailureIsPersistedWithForm(t *testing.T) {
	be := hodapitest.New(t)
	be.JSON("POST /hod/course/{courseId}/clo-count", http.StatusOK, map[string]any{})
	be.JSON("POST /hod/clo/createClo/{courseId}", http.StatusBadRequest, map[string]any{"error": "Duplicate CLO code"})
	svc, _ := newTestService(be.Client().CLOs)
	ctx := context.Background()

	v, err := svc.Start(ctx, "u1", "c1", 2)
	require.NoError(t, err)
	id := uuid.MustParse(v.SessionID)

	_, err = svc.SetForm(ctx, "u1", id, Form{Description: "Keep", BloomLevel: hodapi.BloomApply, Threshold: 50})
	require.NoError(t, err)
	v, err = svc.Submit(ctx, "u1", id)
	require.Error(t, err)
	assert.Equal(t, "Duplicate CLO code", v.Error)

	v, err = svc.Get(ctx, "u1", id)
	require.NoError(t, err)
	assert.Equal(t, 1, v.Step)
	assert.Equal(t, "Keep", v.Form.Description)
	assert.Equal(t, "Duplicate CLO code", v.Error)
}

func TestService_OtherOwnersCannotSeeSession(t *testing.T) {
	svc, _ := newTestService(&fakeCLOs{})
	ctx := context.Background()

	v, err := svc.Edit(ctx, "u1", "c1", hodapi.CLO{ID: "9", Description: "x", BloomLevel: hodapi.BloomApply, Threshold: 50})
	require.NoError(t, err)
	id := uuid.MustParse(v.SessionID)

	_, err = svc.Get(ctx, "u2", id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, svc.Discard(ctx, "u2", id), ErrSessionNotFound)

	require.NoError(t, svc.Discard(ctx, "u1", id))
	_, err = svc.Get(ctx, "u1", id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestService_ExpiredSessionsArePurged(t *testing.T) {
	svc, store := newTestService(&fakeCLOs{})
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	v, err := svc.Start(ctx, "u1", "c1", 2)
	require.NoError(t, err)
	id := uuid.MustParse(v.SessionID)

	now = now.Add(2 * time.Hour)
	_, err = svc.Get(ctx, "u1", id)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	n, err := svc.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	_, err = store.Load(ctx, id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Zero(t, svc.heldLocks())
}
