package dashboard

import (
	"github.com/shopspring/decimal"

	"obrago/internal/domain/project"
	"obrago/internal/domain/schedule"
)

// Overview is the owner's dashboard. Every figure is recomputed from rows.
type Overview struct {
	ActiveProjects        int64             `json:"obras_ativas"`
	ProjectsFinishing     int64             `json:"obras_finalizando_mes"`
	CrewTotal             int64             `json:"funcionarios"`
	CrewActive            int64             `json:"funcionarios_ativos"`
	MonthlyRevenue        decimal.Decimal   `json:"receita_mensal"`
	Month                 string            `json:"mes"`
	PendingMaterials      int64             `json:"materiais_pendentes"`
	PendingMaterialsValue decimal.Decimal   `json:"valor_materiais_pendentes"`
	RecentProjects        []project.Project `json:"obras_recentes"`
	UpcomingSteps         []schedule.Step   `json:"proximas_etapas"`
}
