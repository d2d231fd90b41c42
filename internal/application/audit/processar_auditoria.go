package audit

import (
	"context"
	"errors"

	"github.com/contaudit/auditoria-monofasico/internal/domain"
	"github.com/contaudit/auditoria-monofasico/internal/domain/audit"
	"github.com/contaudit/auditoria-monofasico/internal/domain/entity"
	"github.com/contaudit/auditoria-monofasico/pkg/logger"
)

// ProcessarAuditoriaUseCase orquestra a auditoria completa de uma empresa num
// intervalo de competências: para cada mês roda classificação, cruzamento e
// cálculo de indevidos, nessa ordem. As competências são processadas de forma
// estritamente sequencial e independente; não há resultado cruzado entre meses.
type ProcessarAuditoriaUseCase struct {
	classificar *ClassificarCompetenciaUseCase
	cruzar      *CruzarCompetenciaUseCase
	calcular    *CalcularIndevidosUseCase
	log         *logger.Logger
}

// NewProcessarAuditoriaUseCase constrói o orquestrador.
func NewProcessarAuditoriaUseCase(
	classificar *ClassificarCompetenciaUseCase,
	cruzar *CruzarCompetenciaUseCase,
	calcular *CalcularIndevidosUseCase,
	log *logger.Logger,
) *ProcessarAuditoriaUseCase {
	return &ProcessarAuditoriaUseCase{
		classificar: classificar,
		cruzar:      cruzar,
		calcular:    calcular,
		log:         log,
	}
}

// CompetenciaProcessada resume o que aconteceu em um mês da auditoria.
type CompetenciaProcessada struct {
	AnoMes             string
	ItensClassificados int
	// Pulada indica que a competência não existe no PGDAS e foi ignorada.
	Pulada    bool
	Resultado *entity.ResultadoAuditoria
}

// Executar roda a auditoria para todas as competências entre inicial e final
// (inclusive). Uma competência sem declaração PGDAS é pulada silenciosamente e
// não aborta as demais. Cada etapa confirma a própria transação, então um
// aborto do processo deixa os meses já confirmados válidos e a execução pode
// ser retomada de qualquer ponto.
func (uc *ProcessarAuditoriaUseCase) Executar(ctx context.Context, empresaID, anoMesInicial, anoMesFinal string) ([]CompetenciaProcessada, error) {
	competencias, err := audit.IntervaloCompetencias(anoMesInicial, anoMesFinal)
	if err != nil {
		return nil, err
	}

	processadas := make([]CompetenciaProcessada, 0, len(competencias))
	for _, competencia := range competencias {
		anoMes := competencia.String()

		itens, err := uc.classificar.Executar(ctx, empresaID, anoMes)
		if err != nil {
			return processadas, err
		}

		resultado, err := uc.cruzar.Executar(ctx, empresaID, anoMes)
		if err != nil {
			if errors.Is(err, domain.ErrCompetenciaNaoEncontrada) {
				uc.log.Debug().
					Str("empresa_id", empresaID).
					Str("ano_mes", anoMes).
					Msg("competência sem declaração PGDAS; pulando")
				processadas = append(processadas, CompetenciaProcessada{
					AnoMes:             anoMes,
					ItensClassificados: itens,
					Pulada:             true,
				})
				continue
			}
			return processadas, err
		}

		resultado, err = uc.calcular.Executar(ctx, empresaID, anoMes)
		if err != nil {
			return processadas, err
		}

		uc.log.Info().
			Str("empresa_id", empresaID).
			Str("ano_mes", anoMes).
			Int("itens_classificados", itens).
			Str("diferenca_base", resultado.DiferencaBase.String()).
			Msg("competência auditada")

		processadas = append(processadas, CompetenciaProcessada{
			AnoMes:             anoMes,
			ItensClassificados: itens,
			Resultado:          resultado,
		})
	}
	return processadas, nil
}
