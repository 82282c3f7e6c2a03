package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/kidtask-api/internal/models"
	"github.com/noah-isme/kidtask-api/internal/repository"
)

type dashboardFixture struct {
	db    *gorm.DB
	repo  repository.BoardRepository
	mini  *miniredis.Miniredis
	redis *redis.Client
}

func newDashboardFixture(t *testing.T) dashboardFixture {
	t.Helper()

	mini := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.BoardModels()...))

	return dashboardFixture{
		db:    db,
		repo:  repository.NewBoardRepository(db),
		mini:  mini,
		redis: client,
	}
}

type recordingPublisher struct {
	mu          sync.Mutex
	assignments []TaskAssignment
	err         error
}

func (p *recordingPublisher) Publish(_ context.Context, assignment TaskAssignment) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.assignments = append(p.assignments, assignment)
	return nil
}

func (p *recordingPublisher) published() []TaskAssignment {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]TaskAssignment(nil), p.assignments...)
}

func strPtr(value string) *string {
	return &value
}

func intPtr(value int) *int {
	return &value
}
