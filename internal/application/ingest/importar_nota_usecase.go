package ingest

import (
	"context"
	"time"

	"github.com/google/uuid"

	appaudit "github.com/contaudit/auditoria-monofasico/internal/application/audit"
	"github.com/contaudit/auditoria-monofasico/internal/domain"
	"github.com/contaudit/auditoria-monofasico/internal/domain/entity"
	"github.com/contaudit/auditoria-monofasico/internal/domain/repository"
)

// ImportarNotaUseCase importa um XML de NF-e para o banco: extrai cabeçalho e
// itens via parser e persiste tudo numa transação, vinculado à empresa.
// Assume-se que a nota chega validada pela SEFAZ; a importação não revalida
// assinatura nem schema.
type ImportarNotaUseCase struct {
	empresaRepo repository.EmpresaRepository
	txRunner    appaudit.TxRunner
	parser      NotaFiscalParser
}

// NewImportarNotaUseCase constrói o caso de uso.
func NewImportarNotaUseCase(
	empresaRepo repository.EmpresaRepository,
	txRunner appaudit.TxRunner,
	parser NotaFiscalParser,
) *ImportarNotaUseCase {
	return &ImportarNotaUseCase{empresaRepo: empresaRepo, txRunner: txRunner, parser: parser}
}

// Executar importa o conteúdo XML para a empresa do CNPJ informado, criando a
// empresa no primeiro uso. Chave de acesso repetida devolve ErrDuplicate.
func (uc *ImportarNotaUseCase) Executar(ctx context.Context, cnpj, razaoSocial string, conteudoXML []byte) (*entity.NotaFiscal, error) {
	empresa, err := buscarOuCriarEmpresa(uc.empresaRepo, cnpj, razaoSocial)
	if err != nil {
		return nil, err
	}

	importada, err := uc.parser.Parse(conteudoXML)
	if err != nil {
		return nil, err
	}

	nota := importada.Nota
	nota.ID = uuid.New().String()
	nota.EmpresaID = empresa.ID
	nota.CreatedAt = time.Now()

	err = uc.txRunner.Run(ctx, func(
		notaRepo repository.NotaFiscalRepository,
		_ repository.NCMMonofasicoRepository,
		_ repository.CompetenciaPGDASRepository,
		_ repository.ResultadoAuditoriaRepository,
		_ repository.AnexoAliquotaRepository,
	) error {
		existente, err := notaRepo.GetByChave(nota.Chave)
		if err != nil {
			return err
		}
		if existente != nil {
			return domain.ErrDuplicate
		}
		if err := notaRepo.Create(&nota); err != nil {
			return err
		}
		for i := range importada.Itens {
			item := importada.Itens[i]
			item.ID = uuid.New().String()
			item.NotaID = nota.ID
			if err := notaRepo.CreateItem(&item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &nota, nil
}
