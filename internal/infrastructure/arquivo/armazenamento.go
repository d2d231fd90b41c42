// Package arquivo guarda em disco cópias dos arquivos que passam pela
// auditoria: uploads recebidos e relatórios gerados.
package arquivo

import (
	"fmt"
	"os"
	"path/filepath"
)

// Armazenamento grava arquivos sob uma pasta raiz, criando subpastas sob
// demanda.
type Armazenamento struct {
	raiz string
}

// NewArmazenamento constrói o armazenamento ancorado na pasta raiz.
func NewArmazenamento(raiz string) *Armazenamento {
	return &Armazenamento{raiz: raiz}
}

// Salvar grava o conteúdo em raiz/subpasta/nome e devolve o caminho completo.
// Do nome só é usado o componente final, para impedir escape da raiz.
func (a *Armazenamento) Salvar(subpasta, nome string, conteudo []byte) (string, error) {
	dir := filepath.Join(a.raiz, subpasta)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("criar pasta %s: %w", dir, err)
	}
	caminho := filepath.Join(dir, filepath.Base(nome))
	if err := os.WriteFile(caminho, conteudo, 0o644); err != nil {
		return "", fmt.Errorf("gravar %s: %w", caminho, err)
	}
	return caminho, nil
}
