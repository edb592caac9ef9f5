package scheduler

import (
	"testing"
	"time"

	"farm-advisor/internal/models"
	"farm-advisor/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestSweeper_StartStop(t *testing.T) {
	store := services.NewSessionStore(time.Minute, 10, models.LangEN, zap.NewNop())
	s := NewSweeper(store, "@every 1h", zap.NewNop())

	require.NoError(t, s.Start())
	require.NoError(t, s.Start())

	status := s.GetStatus()
	assert.Equal(t, true, status["running"])
	assert.Contains(t, status, "next_run")

	s.Stop()
	s.Stop()
	assert.Equal(t, false, s.GetStatus()["running"])
}

func TestSweeper_InvalidSchedule(t *testing.T) {
	store := services.NewSessionStore(time.Minute, 10, models.LangEN, zap.NewNop())
	s := NewSweeper(store, "every so often", zap.NewNop())

	assert.Error(t, s.Start())
	assert.Equal(t, false, s.GetStatus()["running"])
}

func TestSweeper_ForceRunRemovesExpired(t *testing.T) {
	store := services.NewSessionStore(20*time.Millisecond, 10, models.LangEN, zap.NewNop())
	store.Create()
	store.Create()
	time.Sleep(40 * time.Millisecond)
	fresh := store.Create()

	s := NewSweeper(store, "@every 1h", zap.NewNop())
	s.ForceRun()

	status := s.GetStatus()
	assert.Equal(t, 2, status["last_swept"])
	assert.Equal(t, 2, status["total_swept"])
	assert.Equal(t, 1, store.Len())
	_, ok := store.Get(fresh.ID)
	assert.True(t, ok)
}

func TestSweeper_RunsOnSchedule(t *testing.T) {
	store := services.NewSessionStore(10*time.Millisecond, 10, models.LangEN, zap.NewNop())
	store.Create()

	s := NewSweeper(store, "@every 1s", zap.NewNop())
	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Eventually(t, func() bool {
		return store.Len() == 0
	}, 3*time.Second, 50*time.Millisecond)
}
