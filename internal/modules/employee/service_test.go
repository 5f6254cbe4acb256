package employee

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/georgemunganga/usedbooks-backend/internal/platform/apperr"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type memRepo struct {
	rows map[int64]*Employee
}

func (m *memRepo) Create(_ context.Context, e *Employee) error {
	e.ID = int64(len(m.rows) + 1)
	e.Status = StatusActive
	cp := *e
	m.rows[e.ID] = &cp
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id int64) (*Employee, error) {
	e, ok := m.rows[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *e
	return &cp, nil
}

func (m *memRepo) CountActive(context.Context) (int, error) {
	n := 0
	for _, e := range m.rows {
		if e.Active() {
			n++
		}
	}
	return n, nil
}

func (m *memRepo) MarkTerminated(_ context.Context, id int64) (int64, error) {
	e, ok := m.rows[id]
	if !ok || !e.Active() {
		return 0, nil
	}
	e.Status = StatusTerminated
	return 1, nil
}

func newTestService() (*service, *memRepo, *test.Hook) {
	logger, hook := test.NewNullLogger()
	repo := &memRepo{rows: map[int64]*Employee{}}
	return &service{repo: repo, logger: logger, cost: bcrypt.MinCost}, repo, hook
}

var clerk = HireRequest{FirstName: "Sam", LastName: "Reyes", Phone: "555-0100", AccessLevel: AccessClerk, Passcode: "4321"}

func TestHireHashesPasscode(t *testing.T) {
	svc, repo, _ := newTestService()

	e, err := svc.Hire(context.Background(), clerk)
	require.NoError(t, err)
	assert.Equal(t, StatusActive, e.Status)

	stored := repo.rows[e.ID]
	assert.NotEqual(t, "4321", stored.PasscodeHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasscodeHash), []byte("4321")))
}

func TestHireRejectsUnknownAccessLevel(t *testing.T) {
	svc, repo, _ := newTestService()
	req := clerk
	req.AccessLevel = "owner"

	_, err := svc.Hire(context.Background(), req)
	assert.True(t, errors.Is(err, apperr.ErrValidation))
	assert.Empty(t, repo.rows)
}

func TestTerminate(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()
	e, err := svc.Hire(ctx, clerk)
	require.NoError(t, err)

	require.NoError(t, svc.Terminate(ctx, e.ID))
	assert.Equal(t, StatusTerminated, repo.rows[e.ID].Status)

	err = svc.Terminate(ctx, e.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
	assert.Equal(t, "No employee found with ID: 1", err.Error())
}

func TestBootstrapOnlyWhenNobodyActive(t *testing.T) {
	svc, repo, hook := newTestService()
	ctx := context.Background()

	e, err := svc.Bootstrap(ctx, clerk)
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, AccessManager, e.AccessLevel)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)

	again, err := svc.Bootstrap(ctx, clerk)
	require.NoError(t, err)
	assert.Nil(t, again)
	assert.Len(t, repo.rows, 1)
}
