package project

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"obrago/internal/pkg/date"
	"obrago/internal/scope"
	"obrago/internal/workflow"
)

type fixedRefs int64

func (f fixedRefs) CountByProject(context.Context, string, string) (int64, error) {
	return int64(f), nil
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: fmt.Sprintf("file:project_%s?mode=memory&cache=shared", t.Name())}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Project{}))
	return db
}

func setupTestService(t *testing.T, refs ...ReferenceCounter) *Service {
	t.Helper()
	return NewService(NewRepository(setupTestDB(t)), refs...)
}

func newRequest(nome string) CreateRequest {
	return CreateRequest{
		Nome:        nome,
		Cliente:     "Construtora Silva",
		Endereco:    "Rua A, 100",
		Orcamento:   decimal.NewFromInt(150000),
		DataInicio:  date.New(2025, time.January, 10),
		PrevisaoFim: date.New(2025, time.December, 20),
	}
}

func TestCreate_Defaults(t *testing.T) {
	svc := setupTestService(t)

	p, err := svc.Create(context.Background(), "alice", newRequest("Residencial Aurora"))
	require.NoError(t, err)

	assert.Equal(t, workflow.WorkInProgress, p.Status)
	assert.Equal(t, 0, p.Progresso)
	assert.Equal(t, 1, p.Version)
	assert.True(t, p.Orcamento.Equal(decimal.NewFromInt(150000)))

	got, err := svc.Get(context.Background(), "alice", p.ID)
	require.NoError(t, err)
	assert.Equal(t, date.New(2025, time.January, 10), got.DataInicio)
	assert.True(t, got.Orcamento.Equal(decimal.NewFromInt(150000)))
}

func TestCreate_Validation(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	req := newRequest("Obra")
	req.Orcamento = decimal.NewFromInt(-1)
	_, err := svc.Create(ctx, "alice", req)
	assert.ErrorIs(t, err, ErrNegativeBudget)

	req = newRequest("Obra")
	req.PrevisaoFim = date.New(2024, time.January, 1)
	_, err = svc.Create(ctx, "alice", req)
	assert.ErrorIs(t, err, ErrDateOrder)

	req = newRequest("Obra")
	req.Status = "Cancelada"
	_, err = svc.Create(ctx, "alice", req)
	assert.ErrorIs(t, err, workflow.ErrUnknownState)
}

func TestOwnerIsolation(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, "alice", newRequest("Casa Alice"))
	require.NoError(t, err)

	items, err := svc.List(ctx, "bob", ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = svc.Get(ctx, "bob", p.ID)
	assert.ErrorIs(t, err, scope.ErrNotFound)

	_, err = svc.UpdateProgress(ctx, "bob", p.ID, ProgressRequest{Progresso: intPtr(50), Version: 1})
	assert.ErrorIs(t, err, scope.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, "bob", p.ID), scope.ErrNotFound)

	ok, err := svc.Exists(ctx, "bob", p.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUpdate_StaleVersion(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, "alice", newRequest("Galpão"))
	require.NoError(t, err)

	first := UpdateRequest{CreateRequest: newRequest("Galpão Norte"), Version: 1}
	updated, err := svc.Update(ctx, "alice", p.ID, first)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Version)

	second := UpdateRequest{CreateRequest: newRequest("Galpão Sul"), Version: 1}
	_, err = svc.Update(ctx, "alice", p.ID, second)
	assert.ErrorIs(t, err, scope.ErrVersionConflict)

	got, err := svc.Get(ctx, "alice", p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Galpão Norte", got.Nome)
}

func TestUpdateStatus(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, "alice", newRequest("Ponte"))
	require.NoError(t, err)

	done, err := svc.UpdateStatus(ctx, "alice", p.ID, StatusRequest{Status: string(workflow.WorkDone), Version: 1})
	require.NoError(t, err)
	assert.Equal(t, workflow.WorkDone, done.Status)
	assert.Equal(t, 100, done.Progresso)

	_, err = svc.UpdateStatus(ctx, "alice", p.ID, StatusRequest{Status: string(workflow.WorkPending), Version: done.Version})
	var terr *workflow.TransitionError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "Concluída", terr.From)
	assert.ErrorIs(t, err, workflow.ErrInvalidTransition)
}

func TestUpdateProgress(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	req := newRequest("Muro")
	req.Status = string(workflow.WorkPending)
	p, err := svc.Create(ctx, "alice", req)
	require.NoError(t, err)
	assert.Equal(t, workflow.WorkPending, p.Status)

	p, err = svc.UpdateProgress(ctx, "alice", p.ID, ProgressRequest{Progresso: intPtr(140), Version: p.Version})
	require.NoError(t, err)
	assert.Equal(t, 100, p.Progresso)
	assert.Equal(t, workflow.WorkDone, p.Status)

	p, err = svc.UpdateProgress(ctx, "alice", p.ID, ProgressRequest{Progresso: intPtr(-5), Version: p.Version})
	require.NoError(t, err)
	assert.Equal(t, 0, p.Progresso)
	assert.Equal(t, workflow.WorkInProgress, p.Status)
}

func TestList_Filters(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "alice", newRequest("Residencial Aurora"))
	require.NoError(t, err)
	req := newRequest("Escola Municipal")
	req.Status = string(workflow.WorkDelayed)
	_, err = svc.Create(ctx, "alice", req)
	require.NoError(t, err)

	items, err := svc.List(ctx, "alice", ListFilter{Search: "aurora"})
	require.NoError(t, err)
	require.Len(t, items, 1)

	items, err = svc.List(ctx, "alice", ListFilter{Status: "Atrasada"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Escola Municipal", items[0].Nome)

	_, err = svc.List(ctx, "alice", ListFilter{Status: "Parada"})
	assert.ErrorIs(t, err, workflow.ErrUnknownState)
}

func TestDelete_RefusedWhileReferenced(t *testing.T) {
	svc := setupTestService(t, fixedRefs(0), fixedRefs(2))
	ctx := context.Background()

	p, err := svc.Create(ctx, "alice", newRequest("Reforma"))
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, "alice", p.ID), ErrProjectInUse)

	svc.refs = nil
	require.NoError(t, svc.Delete(ctx, "alice", p.ID))
	_, err = svc.Get(ctx, "alice", p.ID)
	assert.ErrorIs(t, err, scope.ErrNotFound)
}

func intPtr(v int) *int { return &v }

func TestCounts(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	dueMarch := newRequest("Due March")
	dueMarch.PrevisaoFim = date.New(2025, time.March, 28)
	_, err := svc.Create(ctx, "alice", dueMarch)
	require.NoError(t, err)

	_, err = svc.Create(ctx, "alice", newRequest("Due December"))
	require.NoError(t, err)

	done := newRequest("Finished")
	done.PrevisaoFim = date.New(2025, time.March, 10)
	done.Status = string(workflow.WorkDone)
	_, err = svc.Create(ctx, "alice", done)
	require.NoError(t, err)

	active, finishing, err := svc.Counts(ctx, "alice",
		time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.March, 31, 23, 59, 59, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, int64(2), active)
	assert.Equal(t, int64(1), finishing)
}
