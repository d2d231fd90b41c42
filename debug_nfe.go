package main

import (
	"fmt"
	"os"

	"github.com/contaudit/auditoria-monofasico/internal/infrastructure/nfe"
)

func main() {
	// Caminho de um XML real exportado do portal. Ajuste antes de rodar.
	xmlPath := "C:/Users/contaudit/Downloads/35230712345678000195550010000001231000001234.xml"

	fmt.Println("🔍 DIAGNÓSTICO DE XML DE NF-e")
	fmt.Println("-----------------------------")
	fmt.Printf("📂 Tentando ler: %s\n", xmlPath)

	conteudo, err := os.ReadFile(xmlPath)
	if err != nil {
		fmt.Println("\n❌ ERRO DE ARQUIVO:")
		fmt.Printf("   Detalhe técnico: %v\n", err)
		return
	}
	fmt.Printf("✅ Arquivo encontrado. Tamanho: %d bytes\n", len(conteudo))

	fmt.Println("\n📄 Tentando interpretar a NF-e...")
	importada, err := nfe.NewParser().Parse(conteudo)
	if err != nil {
		fmt.Println("\n❌ ERRO DE FORMATO:")
		fmt.Printf("   O arquivo existe mas não parece uma NF-e válida.\n")
		fmt.Printf("   Detalhe técnico: %v\n", err)
		return
	}

	fmt.Println("\n✨ SUCESSO! Campos extraídos:")
	fmt.Printf("   Chave:    %s\n", importada.Nota.Chave)
	fmt.Printf("   Emitente: %s\n", importada.Nota.CNPJEmitente)
	fmt.Printf("   Emissão:  %s\n", importada.Nota.DataEmissao)
	fmt.Printf("   Total:    %s\n", importada.Nota.ValorTotal)
	fmt.Printf("   Itens:    %d\n", len(importada.Itens))
	for _, item := range importada.Itens {
		fmt.Printf("     - NCM %s CST PIS %s CST COFINS %s valor %s\n",
			item.NCM, item.CSTPIS, item.CSTCOFINS, item.ValorTotal)
	}
}
