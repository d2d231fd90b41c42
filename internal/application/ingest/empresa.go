package ingest

import (
	"time"

	"github.com/google/uuid"

	"github.com/contaudit/auditoria-monofasico/internal/domain"
	"github.com/contaudit/auditoria-monofasico/internal/domain/entity"
	"github.com/contaudit/auditoria-monofasico/internal/domain/repository"
)

// buscarOuCriarEmpresa busca a empresa pelo CNPJ ou cria um novo cadastro.
// Se a empresa já existe sem razão social e ela veio preenchida agora, o campo
// é completado.
func buscarOuCriarEmpresa(empresaRepo repository.EmpresaRepository, cnpj, razaoSocial string) (*entity.Empresa, error) {
	if cnpj == "" {
		return nil, domain.ErrCampoObrigatorioAusente
	}

	empresa, err := empresaRepo.GetByCNPJ(cnpj)
	if err != nil {
		return nil, err
	}
	if empresa != nil {
		if razaoSocial != "" && empresa.RazaoSocial == "" {
			empresa.RazaoSocial = razaoSocial
			empresa.UpdatedAt = time.Now()
			if err := empresaRepo.Update(empresa); err != nil {
				return nil, err
			}
		}
		return empresa, nil
	}

	now := time.Now()
	nova := &entity.Empresa{
		ID:          uuid.New().String(),
		CNPJ:        cnpj,
		RazaoSocial: razaoSocial,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := empresaRepo.Create(nova); err != nil {
		return nil, err
	}
	return nova, nil
}
