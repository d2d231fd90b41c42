package audit

import (
	"context"

	"github.com/contaudit/auditoria-monofasico/internal/domain/audit"
	"github.com/contaudit/auditoria-monofasico/internal/domain/repository"
)

// ClassificarCompetenciaUseCase percorre todos os itens das notas de uma
// empresa emitidas dentro de uma competência e aplica a classificação
// monofásico / inconsistente / não monofásico, persistindo os flags.
type ClassificarCompetenciaUseCase struct {
	txRunner TxRunner
}

// NewClassificarCompetenciaUseCase constrói o caso de uso.
func NewClassificarCompetenciaUseCase(txRunner TxRunner) *ClassificarCompetenciaUseCase {
	return &ClassificarCompetenciaUseCase{txRunner: txRunner}
}

// Executar classifica todos os itens da competência e devolve a quantidade de
// itens processados. Toda a passada roda dentro de uma única transação.
func (uc *ClassificarCompetenciaUseCase) Executar(ctx context.Context, empresaID, anoMes string) (int, error) {
	competencia, err := audit.ParseCompetencia(anoMes)
	if err != nil {
		return 0, err
	}
	inicio, fim := competencia.Intervalo()

	itensProcessados := 0
	err = uc.txRunner.Run(ctx, func(
		notaRepo repository.NotaFiscalRepository,
		ncmRepo repository.NCMMonofasicoRepository,
		_ repository.CompetenciaPGDASRepository,
		_ repository.ResultadoAuditoriaRepository,
		_ repository.AnexoAliquotaRepository,
	) error {
		notas, err := notaRepo.ListByEmpresaPeriodo(empresaID, inicio, fim)
		if err != nil {
			return err
		}
		for _, nota := range notas {
			itens, err := notaRepo.ListItens(nota.ID)
			if err != nil {
				return err
			}
			for _, item := range itens {
				vigente, err := ncmRepo.VigenteEm(item.NCM, nota.DataEmissao)
				if err != nil {
					return err
				}
				audit.Classificar(item, vigente)
				if err := notaRepo.AtualizarFlagsItem(item); err != nil {
					return err
				}
				itensProcessados++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return itensProcessados, nil
}
