package quote

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

var fixedNow = time.UnixMilli(1736942400123).UTC()

func setupTestService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: fmt.Sprintf("file:quote_%s?mode=memory&cache=shared", t.Name())}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Quote{}))
	svc := NewService(NewRepository(db))
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func proposal() CreateRequest {
	return CreateRequest{
		Cliente:  "Maria Oliveira",
		Obra:     "Reforma Cozinha",
		Valor:    decimal.NewFromInt(25000),
		Validade: date.Of(fixedNow).AddDays(30),
	}
}

func TestNextNumber(t *testing.T) {
	svc := setupTestService(t)
	assert.Equal(t, "ORC-400123", svc.NextNumber())
}

func TestCreate_GeneratesNumber(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	q, err := svc.Create(ctx, "alice", proposal())
	require.NoError(t, err)
	assert.Equal(t, "ORC-400123", q.Numero)
	assert.Equal(t, StatusDraft, q.Status)
	assert.Equal(t, date.Of(fixedNow), q.DataCriacao)

	req := proposal()
	req.Numero = "ORC-001"
	q, err = svc.Create(ctx, "alice", req)
	require.NoError(t, err)
	assert.Equal(t, "ORC-001", q.Numero)
}

func TestCreate_Validation(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	req := proposal()
	req.Valor = decimal.Zero
	_, err := svc.Create(ctx, "alice", req)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	req = proposal()
	req.Validade = date.Date{}
	_, err = svc.Create(ctx, "alice", req)
	assert.ErrorIs(t, err, ErrMissingValidity)

	req = proposal()
	req.Validade = date.Of(fixedNow).AddDays(-1)
	_, err = svc.Create(ctx, "alice", req)
	assert.ErrorIs(t, err, ErrExpiredValidity)
}

func TestStatusFlow(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	q, err := svc.Create(ctx, "alice", proposal())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, "alice", q.ID, StatusRequest{Status: string(StatusAccepted), Version: q.Version})
	var terr *workflow.TransitionError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "Rascunho", terr.From)
	assert.Equal(t, "Aceito", terr.To)

	q, err = svc.UpdateStatus(ctx, "alice", q.ID, StatusRequest{Status: string(StatusSent), Version: q.Version})
	require.NoError(t, err)
	q, err = svc.UpdateStatus(ctx, "alice", q.ID, StatusRequest{Status: string(StatusAccepted), Version: q.Version})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, "alice", q.ID, StatusRequest{Status: string(StatusDraft), Version: q.Version})
	assert.ErrorIs(t, err, workflow.ErrInvalidTransition)

	_, err = svc.Update(ctx, "alice", q.ID, UpdateRequest{CreateRequest: proposal(), Version: q.Version})
	assert.ErrorIs(t, err, ErrQuoteLocked)
}

func TestUpdate_KeepsNumberAndChecksVersion(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	q, err := svc.Create(ctx, "alice", proposal())
	require.NoError(t, err)

	req := UpdateRequest{CreateRequest: proposal(), Version: 1}
	req.Valor = decimal.NewFromInt(27000)
	updated, err := svc.Update(ctx, "alice", q.ID, req)
	require.NoError(t, err)
	assert.Equal(t, q.Numero, updated.Numero)
	assert.True(t, updated.Valor.Equal(decimal.NewFromInt(27000)))

	_, err = svc.Update(ctx, "alice", q.ID, req)
	assert.ErrorIs(t, err, scope.ErrVersionConflict)

	_, err = svc.Get(ctx, "bob", q.ID)
	assert.ErrorIs(t, err, scope.ErrNotFound)
}

func TestList_ValidityRange(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()
	today := date.Of(fixedNow)

	for _, days := range []int{10, 40, 90} {
		req := proposal()
		req.Validade = today.AddDays(days)
		_, err := svc.Create(ctx, "alice", req)
		require.NoError(t, err)
	}

	items, err := svc.List(ctx, "alice", ListFilter{ValidFrom: today.AddDays(10), ValidUntil: today.AddDays(40)})
	require.NoError(t, err)
	assert.Len(t, items, 2)

	_, err = svc.List(ctx, "alice", ListFilter{Status: "Arquivado"})
	assert.ErrorIs(t, err, workflow.ErrUnknownState)
}
