package crew

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"obrago/internal/scope"
	"obrago/internal/workflow"
)

func setupTestService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: fmt.Sprintf("file:crew_%s?mode=memory&cache=shared", t.Name())}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Member{}))
	return NewService(NewRepository(db))
}

func member(nome, funcao string) CreateRequest {
	return CreateRequest{
		Nome:             nome,
		Funcao:           funcao,
		Telefone:         "(11) 99999-0000",
		ValorRemuneracao: decimal.RequireFromString("180.00"),
	}
}

func TestCreate_Defaults(t *testing.T) {
	svc := setupTestService(t)

	m, err := svc.Create(context.Background(), "alice", member("José", "Pedreiro"))
	require.NoError(t, err)
	assert.Equal(t, StatusActive, m.Status)
	assert.Equal(t, PayDaily, m.TipoRemuneracao)
	assert.Nil(t, m.Email)
}

func TestCreate_Validation(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	req := member("José", "Pedreiro")
	req.TipoRemuneracao = "hora"
	_, err := svc.Create(ctx, "alice", req)
	assert.ErrorIs(t, err, ErrInvalidPayType)

	req = member("José", "Pedreiro")
	req.ValorRemuneracao = decimal.NewFromInt(-10)
	_, err = svc.Create(ctx, "alice", req)
	assert.ErrorIs(t, err, ErrNegativePayment)

	req = member("José", "Pedreiro")
	req.Status = "Demitido"
	_, err = svc.Create(ctx, "alice", req)
	assert.ErrorIs(t, err, workflow.ErrUnknownState)
}

func TestStatusMovesFreely(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	m, err := svc.Create(ctx, "alice", member("Ana", "Eletricista"))
	require.NoError(t, err)

	for i, to := range []Status{StatusVacation, StatusInactive, StatusActive, StatusInactive, StatusVacation} {
		m, err = svc.UpdateStatus(ctx, "alice", m.ID, StatusRequest{Status: string(to), Version: m.Version})
		require.NoError(t, err, "step %d", i)
		assert.Equal(t, to, m.Status)
	}

	_, err = svc.UpdateStatus(ctx, "alice", m.ID, StatusRequest{Status: "Demitido", Version: m.Version})
	assert.ErrorIs(t, err, workflow.ErrUnknownState)
}

func TestUpdate_StaleVersionAndIsolation(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	m, err := svc.Create(ctx, "alice", member("Ana", "Eletricista"))
	require.NoError(t, err)

	req := UpdateRequest{CreateRequest: member("Ana Souza", "Eletricista"), Version: 1}
	req.TipoRemuneracao = string(PaySalary)
	req.Email = "ana@obra.com"
	updated, err := svc.Update(ctx, "alice", m.ID, req)
	require.NoError(t, err)
	assert.Equal(t, PaySalary, updated.TipoRemuneracao)
	require.NotNil(t, updated.Email)
	assert.Equal(t, "ana@obra.com", *updated.Email)

	_, err = svc.Update(ctx, "alice", m.ID, req)
	assert.ErrorIs(t, err, scope.ErrVersionConflict)

	_, err = svc.Update(ctx, "bob", m.ID, UpdateRequest{CreateRequest: member("x", "y"), Version: 2})
	assert.ErrorIs(t, err, scope.ErrNotFound)
}

func TestListOptionsAndCounts(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "alice", member("José", "Pedreiro"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, "alice", member("Ana", "Eletricista"))
	require.NoError(t, err)
	req := member("Paulo", "Pedreiro")
	req.Status = string(StatusVacation)
	_, err = svc.Create(ctx, "alice", req)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "bob", member("Bruno", "Pintor"))
	require.NoError(t, err)

	items, err := svc.List(ctx, "alice", ListFilter{Funcao: "Pedreiro"})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "José", items[0].Nome)

	opts, err := svc.Options(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"Eletricista", "Pedreiro"}, opts.Funcoes)
	assert.Equal(t, []string{"Ativo", "Férias"}, opts.Status)

	active, total, err := svc.CountActive(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(2), active)
	assert.Equal(t, int64(3), total)
}
