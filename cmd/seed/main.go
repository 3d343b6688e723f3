package main

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"obrago/internal/config"
	"obrago/internal/database"
	"obrago/internal/domain/account"
	"obrago/internal/domain/crew"
	"obrago/internal/domain/finance"
	"obrago/internal/domain/material"
	"obrago/internal/domain/project"
	"obrago/internal/domain/quote"
	"obrago/internal/domain/schedule"
	"obrago/internal/pkg/date"
	"obrago/internal/pkg/jwt"
	"obrago/internal/pkg/logger"
	"obrago/internal/workflow"
)

type noopNotifier struct{}

func (noopNotifier) SignOut(context.Context, string) {}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.AppEnv, ServiceName: "obrago-seed"}); err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.L().Fatal("db connect failed", zap.Error(err))
	}
	logger.L().Info("running migrations")
	if err := database.Migrate(db, database.Models()...); err != nil {
		logger.L().Fatal("migrate failed", zap.Error(err))
	}

	ctx := context.Background()
	repo := account.NewRepository(db)
	accounts := account.NewService(repo, jwt.New(cfg.JWTSecret, cfg.JWTAccessTTL), noopNotifier{}, cfg.RecoveryPepper, cfg.RecoveryTokenTTL)

	adminEmail := getEnv("SEED_ADMIN_EMAIL", "admin@obrago.local")
	adminPassword := getEnv("SEED_ADMIN_PASSWORD", "admin123")
	if cfg.IsProduction() && os.Getenv("SEED_ADMIN_PASSWORD") == "" {
		logger.L().Fatal("SEED_ADMIN_PASSWORD is required in production")
	}
	if _, err := ensureProfile(ctx, accounts, repo, "Administrador", adminEmail, adminPassword, account.RoleAdmin); err != nil {
		logger.L().Fatal("seed admin failed", zap.Error(err))
	}
	logger.L().Info("admin ready", zap.String("email", adminEmail))

	if os.Getenv("SEED_DEMO") == "false" {
		return
	}

	demo, err := ensureProfile(ctx, accounts, repo, "Construtora Demo", "demo@obrago.local", "demo123", account.RoleUser)
	if err != nil {
		logger.L().Fatal("seed demo user failed", zap.Error(err))
	}
	if err := seedDemo(ctx, db, demo.ID); err != nil {
		logger.L().Fatal("seed demo rows failed", zap.Error(err))
	}
	logger.L().Info("seed completed", zap.String("demo_user", "demo@obrago.local / demo123"))
}

// ensureProfile creates the profile when missing and forces its role. The
// subscription is activated for a month.
func ensureProfile(ctx context.Context, accounts *account.Service, repo account.Repository, name, email, password string, role account.Role) (*account.Profile, error) {
	p, err := accounts.SignUp(ctx, account.SignUpRequest{Name: name, Email: email, Password: password})
	switch {
	case errors.Is(err, account.ErrEmailAlreadyExists):
		if p, err = repo.GetByEmail(ctx, email); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	}

	now := time.Now().UTC()
	err = repo.UpdateFields(ctx, p.ID, map[string]any{
		"role":                    role,
		"subscription_status":     account.SubscriptionActive,
		"subscription_expires_at": now.AddDate(0, 1, 0),
		"approved_at":             now,
	})
	return p, err
}

// seedDemo fills an empty demo account. Accounts that already own projects
// are left alone.
func seedDemo(ctx context.Context, db *gorm.DB, ownerID string) error {
	projectRepo := project.NewRepository(db)
	materials := material.NewService(material.NewRepository(db), projectRepo)
	finances := finance.NewService(finance.NewRepository(db), projectRepo)
	steps := schedule.NewService(schedule.NewRepository(db), projectRepo)
	projects := project.NewService(projectRepo, steps, materials, finances)
	members := crew.NewService(crew.NewRepository(db))
	quotes := quote.NewService(quote.NewRepository(db))

	existing, err := projects.List(ctx, ownerID, project.ListFilter{Limit: 1})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		logger.L().Info("demo account already seeded")
		return nil
	}

	today := date.Of(time.Now())
	residencial, err := projects.Create(ctx, ownerID, project.CreateRequest{
		Nome:        "Residencial Jardim das Flores",
		Cliente:     "Maria Silva",
		Endereco:    "Rua das Palmeiras, 120 - Campinas/SP",
		Orcamento:   decimal.NewFromInt(450000),
		DataInicio:  today.AddDays(-60),
		PrevisaoFim: today.AddDays(120),
		Progresso:   35,
	})
	if err != nil {
		return err
	}
	if _, err := projects.Create(ctx, ownerID, project.CreateRequest{
		Nome:        "Reforma Loja Centro",
		Cliente:     "Comercial Souza Ltda",
		Endereco:    "Av. Brasil, 845 - Centro",
		Orcamento:   decimal.NewFromInt(85000),
		DataInicio:  today.AddDays(-20),
		PrevisaoFim: today.AddDays(10),
		Progresso:   80,
	}); err != nil {
		return err
	}

	for _, m := range []crew.CreateRequest{
		{Nome: "João Pereira", Funcao: "Pedreiro", Telefone: "(19) 99999-0001", TipoRemuneracao: string(crew.PayDaily), ValorRemuneracao: decimal.NewFromInt(250)},
		{Nome: "Carlos Lima", Funcao: "Eletricista", Telefone: "(19) 99999-0002", TipoRemuneracao: string(crew.PaySalary), ValorRemuneracao: decimal.NewFromInt(4200)},
		{Nome: "Ana Costa", Funcao: "Engenheira", Telefone: "(19) 99999-0003", Email: "ana.costa@obrago.local", TipoRemuneracao: string(crew.PaySalary), ValorRemuneracao: decimal.NewFromInt(9500)},
	} {
		if _, err := members.Create(ctx, ownerID, m); err != nil {
			return err
		}
	}

	for _, m := range []material.CreateRequest{
		{Nome: "Cimento CP-II 50kg", Quantidade: decimal.NewFromInt(200), Valor: decimal.RequireFromString("38.90"), Fornecedor: "Votorantim", ObraID: residencial.ID},
		{Nome: "Vergalhão 10mm", Quantidade: decimal.NewFromInt(120), Valor: decimal.RequireFromString("52.50"), Fornecedor: "Gerdau", ObraID: residencial.ID},
	} {
		if _, err := materials.Create(ctx, ownerID, m); err != nil {
			return err
		}
	}

	for _, t := range []finance.CreateRequest{
		{Descricao: "Entrada contrato", Valor: decimal.NewFromInt(150000), Tipo: string(finance.KindIncome), Categoria: "Recebimento de Cliente", Data: today.AddDays(-30), ObraID: residencial.ID},
		{Descricao: "Compra de cimento", Valor: decimal.NewFromInt(7780), Tipo: string(finance.KindExpense), Categoria: "Materiais", Data: today.AddDays(-25), ObraID: residencial.ID},
		{Descricao: "Folha quinzenal", Valor: decimal.NewFromInt(18000), Tipo: string(finance.KindExpense), Categoria: "Mão de Obra", Data: today.AddDays(-10)},
	} {
		if _, err := finances.Create(ctx, ownerID, t); err != nil {
			return err
		}
	}

	for _, s := range []schedule.CreateRequest{
		{Nome: "Fundação", ObraID: residencial.ID, DataInicio: today.AddDays(-60), DataFim: today.AddDays(-30), Responsavel: "João Pereira", Status: string(workflow.WorkDone)},
		{Nome: "Estrutura", ObraID: residencial.ID, DataInicio: today.AddDays(-29), DataFim: today.AddDays(30), Responsavel: "Ana Costa", Status: string(workflow.WorkInProgress), Progresso: 40},
		{Nome: "Instalações elétricas", ObraID: residencial.ID, DataInicio: today.AddDays(31), DataFim: today.AddDays(70), Responsavel: "Carlos Lima"},
	} {
		if _, err := steps.Create(ctx, ownerID, s); err != nil {
			return err
		}
	}

	_, err = quotes.Create(ctx, ownerID, quote.CreateRequest{
		Cliente:  "Pedro Almeida",
		Obra:     "Casa de praia em Ubatuba",
		Valor:    decimal.NewFromInt(320000),
		Validade: today.AddDays(30),
	})
	return err
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
