package audit

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/contaudit/auditoria-monofasico/internal/domain"
	"github.com/contaudit/auditoria-monofasico/internal/domain/entity"
	"github.com/contaudit/auditoria-monofasico/internal/domain/repository"
)

// CalcularIndevidosUseCase estima os valores de PIS/COFINS pagos a maior a
// partir de um ResultadoAuditoria já cruzado e das alíquotas da competência.
//
// Toda a aritmética monetária usa decimal de ponto fixo; o arredondamento para
// duas casas acontece apenas na fronteira de persistência, nunca no meio do
// encadeamento de multiplicações.
type CalcularIndevidosUseCase struct {
	txRunner TxRunner
}

// NewCalcularIndevidosUseCase constrói o caso de uso.
func NewCalcularIndevidosUseCase(txRunner TxRunner) *CalcularIndevidosUseCase {
	return &CalcularIndevidosUseCase{txRunner: txRunner}
}

// Executar calcula os indevidos da competência (empresa + ano_mes).
//
// Devolve ErrCompetenciaNaoEncontrada quando não há competência PGDAS e
// ErrResultadoNaoEncontrado quando o cruzamento ainda não rodou. Reexecutar
// com dados inalterados regrava exatamente os mesmos valores.
func (uc *CalcularIndevidosUseCase) Executar(ctx context.Context, empresaID, anoMes string) (*entity.ResultadoAuditoria, error) {
	var resultado *entity.ResultadoAuditoria
	err := uc.txRunner.Run(ctx, func(
		_ repository.NotaFiscalRepository,
		_ repository.NCMMonofasicoRepository,
		competenciaRepo repository.CompetenciaPGDASRepository,
		resultadoRepo repository.ResultadoAuditoriaRepository,
		anexoRepo repository.AnexoAliquotaRepository,
	) error {
		comp, err := competenciaRepo.GetByEmpresaAnoMes(empresaID, anoMes)
		if err != nil {
			return err
		}
		if comp == nil {
			return domain.ErrCompetenciaNaoEncontrada
		}
		res, err := resultadoRepo.GetByEmpresaCompetencia(empresaID, comp.ID)
		if err != nil {
			return err
		}
		if res == nil {
			return domain.ErrResultadoNaoEncontrado
		}

		if err := uc.calcular(res, comp, competenciaRepo, resultadoRepo, anexoRepo); err != nil {
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

// calcular aplica as regras de estimativa sobre um resultado já carregado.
func (uc *CalcularIndevidosUseCase) calcular(
	res *entity.ResultadoAuditoria,
	comp *entity.CompetenciaPGDAS,
	competenciaRepo repository.CompetenciaPGDASRepository,
	resultadoRepo repository.ResultadoAuditoriaRepository,
	anexoRepo repository.AnexoAliquotaRepository,
) error {
	// Diferença não positiva: não houve pagamento a maior. Zero explícito nos
	// três campos (zero significa "calculado, sem impacto"; nulo significaria
	// falta de parametrização).
	if !res.DiferencaBase.IsPositive() {
		zero := decimal.NewNullDecimal(decimal.Zero)
		res.PISIndevido = zero
		res.COFINSIndevido = zero
		res.TotalIndevido = zero
		return resultadoRepo.AtualizarIndevidos(res)
	}

	aliquotaEfetiva, err := garantirAliquotaEfetiva(comp, competenciaRepo)
	if err != nil {
		return err
	}

	faixa, err := anexoRepo.FaixaPara(comp.Anexo, comp.ReceitaBruta12m)
	if err != nil {
		return err
	}
	if faixa == nil {
		// Sem faixa configurada não há como partilhar a alíquota: gravamos nulo
		// para sinalizar a falta de parametrização. Não é erro.
		res.PISIndevido = decimal.NullDecimal{}
		res.COFINSIndevido = decimal.NullDecimal{}
		res.TotalIndevido = decimal.NullDecimal{}
		return resultadoRepo.AtualizarIndevidos(res)
	}

	aliquotaPIS := aliquotaEfetiva.Mul(faixa.PercentualPIS)
	aliquotaCOFINS := aliquotaEfetiva.Mul(faixa.PercentualCOFINS)

	// O total soma os produtos sem arredondamento; cada campo é arredondado
	// para duas casas de forma independente, só na gravação.
	pis := res.DiferencaBase.Mul(aliquotaPIS)
	cofins := res.DiferencaBase.Mul(aliquotaCOFINS)

	res.PISIndevido = decimal.NewNullDecimal(pis.Round(2))
	res.COFINSIndevido = decimal.NewNullDecimal(cofins.Round(2))
	res.TotalIndevido = decimal.NewNullDecimal(pis.Add(cofins).Round(2))
	return resultadoRepo.AtualizarIndevidos(res)
}

// garantirAliquotaEfetiva devolve a alíquota efetiva da competência,
// calculando e memoizando na primeira vez:
//
//	aliquota_efetiva = (receita_12m * aliquota_nominal - parcela_a_deduzir) / receita_12m
//
// Uma vez gravada, o valor memoizado é sempre reusado, mesmo que alíquota
// nominal ou parcela a deduzir mudem depois. Receita de 12 meses igual a zero
// resolve para alíquota zero (evita divisão por zero) e também memoiza.
func garantirAliquotaEfetiva(
	comp *entity.CompetenciaPGDAS,
	competenciaRepo repository.CompetenciaPGDASRepository,
) (decimal.Decimal, error) {
	if comp.AliquotaEfetiva.Valid {
		return comp.AliquotaEfetiva.Decimal, nil
	}

	receita12m := comp.ReceitaBruta12m
	if receita12m.IsZero() {
		if err := competenciaRepo.AtualizarAliquotaEfetiva(comp.ID, decimal.Zero); err != nil {
			return decimal.Decimal{}, err
		}
		comp.AliquotaEfetiva = decimal.NewNullDecimal(decimal.Zero)
		return decimal.Zero, nil
	}

	nominal := decimal.Zero
	if comp.AliquotaNominal.Valid {
		nominal = comp.AliquotaNominal.Decimal
	}
	parcela := decimal.Zero
	if comp.ParcelaADeduzir.Valid {
		parcela = comp.ParcelaADeduzir.Decimal
	}

	aliquota := receita12m.Mul(nominal).Sub(parcela).Div(receita12m)
	if err := competenciaRepo.AtualizarAliquotaEfetiva(comp.ID, aliquota); err != nil {
		return decimal.Decimal{}, err
	}
	comp.AliquotaEfetiva = decimal.NewNullDecimal(aliquota)
	return aliquota, nil
}
