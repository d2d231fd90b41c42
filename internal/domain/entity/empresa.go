package entity

import "time"

// Empresa representa a empresa auditada (optante do Simples Nacional).
// Identificada pelo CNPJ; possui notas fiscais, competências PGDAS e resultados.
type Empresa struct {
	ID                string
	CNPJ              string
	RazaoSocial       string
	NomeFantasia      string
	CNAEPrincipal     string
	DataInicioSimples *time.Time
	DataFimSimples    *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
