package ingest

import (
	"context"
	"io"

	"github.com/google/uuid"

	appaudit "github.com/contaudit/auditoria-monofasico/internal/application/audit"
	"github.com/contaudit/auditoria-monofasico/internal/domain"
	"github.com/contaudit/auditoria-monofasico/internal/domain/audit"
	"github.com/contaudit/auditoria-monofasico/internal/domain/entity"
	"github.com/contaudit/auditoria-monofasico/internal/domain/repository"
	"github.com/contaudit/auditoria-monofasico/pkg/logger"
)

// ResultadoImportacaoPGDAS resume uma importação de arquivo PGDAS-D.
type ResultadoImportacaoPGDAS struct {
	Importadas int // competências criadas ou atualizadas
	Rejeitadas int // registros sem ano_mes válido, abortados individualmente
}

// ImportarPGDASUseCase importa um arquivo do PGDAS-D (CSV) para as
// competências da empresa. Registros já existentes para o mesmo (empresa,
// ano_mes) têm os campos financeiros sobrescritos.
type ImportarPGDASUseCase struct {
	empresaRepo repository.EmpresaRepository
	txRunner    appaudit.TxRunner
	reader      PGDASReader
	log         *logger.Logger
}

// NewImportarPGDASUseCase constrói o caso de uso.
func NewImportarPGDASUseCase(
	empresaRepo repository.EmpresaRepository,
	txRunner appaudit.TxRunner,
	reader PGDASReader,
	log *logger.Logger,
) *ImportarPGDASUseCase {
	return &ImportarPGDASUseCase{empresaRepo: empresaRepo, txRunner: txRunner, reader: reader, log: log}
}

// Executar lê o arquivo e grava as competências da empresa do CNPJ informado,
// criando a empresa no primeiro uso. Um registro sem ano_mes válido é
// descartado individualmente (e contado em Rejeitadas) sem abortar o restante
// do arquivo; o arquivo inteiro é confirmado numa única transação.
func (uc *ImportarPGDASUseCase) Executar(ctx context.Context, cnpj, razaoSocial string, arquivo io.Reader) (ResultadoImportacaoPGDAS, error) {
	var resultado ResultadoImportacaoPGDAS

	empresa, err := buscarOuCriarEmpresa(uc.empresaRepo, cnpj, razaoSocial)
	if err != nil {
		return resultado, err
	}

	registros, err := uc.reader.Ler(arquivo)
	if err != nil {
		return resultado, err
	}

	err = uc.txRunner.Run(ctx, func(
		_ repository.NotaFiscalRepository,
		_ repository.NCMMonofasicoRepository,
		competenciaRepo repository.CompetenciaPGDASRepository,
		_ repository.ResultadoAuditoriaRepository,
		_ repository.AnexoAliquotaRepository,
	) error {
		for _, registro := range registros {
			if err := validarAnoMes(registro.AnoMes); err != nil {
				uc.log.Warn().
					Err(err).
					Str("cnpj", cnpj).
					Str("ano_mes", registro.AnoMes).
					Msg("registro PGDAS descartado")
				resultado.Rejeitadas++
				continue
			}
			competencia := &entity.CompetenciaPGDAS{
				ID:                            uuid.New().String(),
				EmpresaID:                     empresa.ID,
				AnoMes:                        registro.AnoMes,
				Anexo:                         registro.Anexo,
				ReceitaBrutaTotal:             registro.ReceitaBrutaTotal,
				ReceitaMonofasicaDeclarada:    registro.ReceitaMonofasicaDeclarada,
				ReceitaSubstituicaoTributaria: registro.ReceitaSubstituicaoTributaria,
				ReceitaOutrasExclusoes:        registro.ReceitaOutrasExclusoes,
				ReceitaBruta12m:               registro.ReceitaBruta12m,
				AliquotaNominal:               registro.AliquotaNominal,
				ParcelaADeduzir:               registro.ParcelaADeduzir,
				AliquotaEfetiva:               registro.AliquotaEfetiva,
			}
			if err := competenciaRepo.Upsert(competencia); err != nil {
				return err
			}
			resultado.Importadas++
		}
		return nil
	})
	if err != nil {
		return ResultadoImportacaoPGDAS{}, err
	}
	return resultado, nil
}

// validarAnoMes exige o campo ano_mes e o formato AAAA-MM.
func validarAnoMes(anoMes string) error {
	if anoMes == "" {
		return domain.ErrCampoObrigatorioAusente
	}
	_, err := audit.ParseCompetencia(anoMes)
	return err
}
