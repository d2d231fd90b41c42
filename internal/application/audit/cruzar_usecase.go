package audit

import (
	"context"

	"github.com/google/uuid"

	"github.com/contaudit/auditoria-monofasico/internal/domain"
	"github.com/contaudit/auditoria-monofasico/internal/domain/audit"
	"github.com/contaudit/auditoria-monofasico/internal/domain/entity"
	"github.com/contaudit/auditoria-monofasico/internal/domain/repository"
)

// CruzarCompetenciaUseCase cruza a base monofásica encontrada nos XML com a
// declarada no PGDAS-D e grava o resultado em ResultadoAuditoria.
type CruzarCompetenciaUseCase struct {
	txRunner TxRunner
}

// NewCruzarCompetenciaUseCase constrói o caso de uso.
func NewCruzarCompetenciaUseCase(txRunner TxRunner) *CruzarCompetenciaUseCase {
	return &CruzarCompetenciaUseCase{txRunner: txRunner}
}

// Executar cruza os valores da competência:
//   - base_monofasica_xml: soma dos itens classificados como monofásicos.
//   - base_monofasica_pgdas: receita monofásica declarada.
//   - diferenca_base: xml menos pgdas.
//
// Devolve ErrCompetenciaNaoEncontrada quando a empresa não tem a competência
// no PGDAS; o chamador deve pular e seguir. Não toca nos campos de indevido.
// Reexecutar com dados inalterados produz valores idênticos.
func (uc *CruzarCompetenciaUseCase) Executar(ctx context.Context, empresaID, anoMes string) (*entity.ResultadoAuditoria, error) {
	competencia, err := audit.ParseCompetencia(anoMes)
	if err != nil {
		return nil, err
	}
	inicio, fim := competencia.Intervalo()

	var resultado *entity.ResultadoAuditoria
	err = uc.txRunner.Run(ctx, func(
		notaRepo repository.NotaFiscalRepository,
		_ repository.NCMMonofasicoRepository,
		competenciaRepo repository.CompetenciaPGDASRepository,
		resultadoRepo repository.ResultadoAuditoriaRepository,
		_ repository.AnexoAliquotaRepository,
	) error {
		comp, err := competenciaRepo.GetByEmpresaAnoMes(empresaID, anoMes)
		if err != nil {
			return err
		}
		if comp == nil {
			return domain.ErrCompetenciaNaoEncontrada
		}

		baseXML, err := notaRepo.SomaMonofasica(empresaID, inicio, fim)
		if err != nil {
			return err
		}
		basePGDAS := comp.ReceitaMonofasicaDeclarada

		res, err := lookupOuCriarResultado(resultadoRepo, empresaID, comp.ID)
		if err != nil {
			return err
		}
		res.BaseMonofasicaXML = baseXML
		res.BaseMonofasicaPGDAS = basePGDAS
		res.DiferencaBase = baseXML.Sub(basePGDAS)
		if err := resultadoRepo.AtualizarBases(res); err != nil {
			return err
		}
		resultado = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resultado, nil
}

// lookupOuCriarResultado recupera o resultado da empresa + competência ou cria
// um novo com todos os campos monetários zerados. Garante unicidade por
// (empresa, competência) sem depender de constraint para o caminho feliz.
func lookupOuCriarResultado(
	resultadoRepo repository.ResultadoAuditoriaRepository,
	empresaID, competenciaID string,
) (*entity.ResultadoAuditoria, error) {
	existente, err := resultadoRepo.GetByEmpresaCompetencia(empresaID, competenciaID)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return existente, nil
	}
	novo := &entity.ResultadoAuditoria{
		ID:            uuid.New().String(),
		EmpresaID:     empresaID,
		CompetenciaID: competenciaID,
	}
	if err := resultadoRepo.Create(novo); err != nil {
		return nil, err
	}
	return novo, nil
}
