package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/contaudit/auditoria-monofasico/internal/application/dto"
	"github.com/contaudit/auditoria-monofasico/internal/domain"
	"github.com/contaudit/auditoria-monofasico/internal/domain/entity"
	"github.com/contaudit/auditoria-monofasico/internal/domain/repository"
)

// EmpresaUseCase aplica as regras de cadastro de empresas auditadas.
type EmpresaUseCase struct {
	repo repository.EmpresaRepository
}

// NewEmpresaUseCase constrói o caso de uso com o porto de persistência.
func NewEmpresaUseCase(repo repository.EmpresaRepository) *EmpresaUseCase {
	return &EmpresaUseCase{repo: repo}
}

// Create cadastra uma empresa. Devolve domain.ErrDuplicate se o CNPJ já existe.
func (uc *EmpresaUseCase) Create(in dto.CreateEmpresaRequest) (*dto.EmpresaResponse, error) {
	if in.CNPJ == "" || in.RazaoSocial == "" {
		return nil, domain.ErrInvalidInput
	}
	existente, _ := uc.repo.GetByCNPJ(in.CNPJ)
	if existente != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	empresa := &entity.Empresa{
		ID:            uuid.New().String(),
		CNPJ:          in.CNPJ,
		RazaoSocial:   in.RazaoSocial,
		NomeFantasia:  in.NomeFantasia,
		CNAEPrincipal: in.CNAEPrincipal,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(empresa); err != nil {
		return nil, err
	}
	return entityToEmpresaResponse(empresa), nil
}

// GetByCNPJ busca uma empresa pelo CNPJ. Devolve (nil, nil) se não existe.
func (uc *EmpresaUseCase) GetByCNPJ(cnpj string) (*dto.EmpresaResponse, error) {
	empresa, err := uc.repo.GetByCNPJ(cnpj)
	if err != nil {
		return nil, err
	}
	return entityToEmpresaResponse(empresa), nil
}

// List lista empresas com paginação.
func (uc *EmpresaUseCase) List(limit, offset int) (*dto.EmpresaListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.EmpresaResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *entityToEmpresaResponse(e))
	}
	return &dto.EmpresaListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func entityToEmpresaResponse(e *entity.Empresa) *dto.EmpresaResponse {
	if e == nil {
		return nil
	}
	return &dto.EmpresaResponse{
		ID:            e.ID,
		CNPJ:          e.CNPJ,
		RazaoSocial:   e.RazaoSocial,
		NomeFantasia:  e.NomeFantasia,
		CNAEPrincipal: e.CNAEPrincipal,
		CreatedAt:     e.CreatedAt,
	}
}
