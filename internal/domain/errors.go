package domain

import (
	"errors"
	"fmt"
)

// Erros de domínio (sem dependências externas).
var (
	ErrInvalidInput             = errors.New("entrada inválida")
	ErrDuplicate                = errors.New("recurso duplicado")
	ErrEmpresaNaoEncontrada     = errors.New("empresa não encontrada")
	ErrCompetenciaNaoEncontrada = errors.New("competência PGDAS não encontrada")
	ErrCompetenciaInvalida      = errors.New("competência inválida: formato esperado AAAA-MM")
	ErrXMLInvalido              = errors.New("arquivo XML não contém NF-e válida")
	ErrResultadoNaoEncontrado   = errors.New("resultado de auditoria não encontrado")

	// ErrCampoObrigatorioAusente especializa ErrInvalidInput; errors.Is casa
	// com os dois.
	ErrCampoObrigatorioAusente = fmt.Errorf("%w: campo obrigatório ausente", ErrInvalidInput)
)
