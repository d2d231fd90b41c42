package dto

import "time"

// CreateEmpresaRequest payload de cadastro de empresa.
type CreateEmpresaRequest struct {
	CNPJ          string `json:"cnpj"`
	RazaoSocial   string `json:"razao_social"`
	NomeFantasia  string `json:"nome_fantasia"`
	CNAEPrincipal string `json:"cnae_principal"`
}

// EmpresaResponse representação de empresa na API.
type EmpresaResponse struct {
	ID            string    `json:"id"`
	CNPJ          string    `json:"cnpj"`
	RazaoSocial   string    `json:"razao_social"`
	NomeFantasia  string    `json:"nome_fantasia,omitempty"`
	CNAEPrincipal string    `json:"cnae_principal,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// EmpresaListResponse lista paginada de empresas.
type EmpresaListResponse struct {
	Items []EmpresaResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
