// seed_tabelas gera o script SQL que popula as tabelas paramétricas da
// auditoria: faixas do Anexo I do Simples Nacional (vigentes desde 2018,
// LC 155/2016) e um catálogo inicial de NCMs monofásicos de PIS/COFINS
// (medicamentos, perfumaria, bebidas frias, autopeças e pneus).
//
// Uso: go run ./cmd/seed_tabelas
// Escreve: internal/infrastructure/postgres/migrations/006_seed_tabelas_referencia.sql
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type faixaAnexo struct {
	anexo            string
	faixa            int
	receitaMin       string
	receitaMax       string
	aliquotaNominal  string
	parcelaDeduzir   string
	percentualPIS    string
	percentualCOFINS string
}

// Anexo I (comércio), repartição de PIS/COFINS conforme a tabela de
// distribuição da LC 123/2006.
var faixasAnexoI = []faixaAnexo{
	{"I", 1, "0.00", "180000.00", "0.0400", "0.00", "0.0276", "0.1274"},
	{"I", 2, "180000.01", "360000.00", "0.0730", "5940.00", "0.0276", "0.1274"},
	{"I", 3, "360000.01", "720000.00", "0.0950", "13860.00", "0.0276", "0.1274"},
	{"I", 4, "720000.01", "1800000.00", "0.1070", "22500.00", "0.0276", "0.1274"},
	{"I", 5, "1800000.01", "3600000.00", "0.1430", "87300.00", "0.0276", "0.1274"},
	{"I", 6, "3600000.01", "4800000.00", "0.1900", "378000.00", "0.0613", "0.2827"},
}

type ncmCatalogo struct {
	ncm            string
	descricao      string
	setor          string
	inicioVigencia string
}

// Catálogo inicial: NCMs sujeitos à tributação concentrada. Vigências em
// aberto (data_fim_vigencia NULL); cada linha cita a lei instituidora no setor.
var ncmsIniciais = []ncmCatalogo{
	{"30049099", "Medicamentos de uso humano, outros", "Farmacêutico (Lei 10.147/2000)", "2001-01-01"},
	{"30049069", "Medicamentos contendo hormônios", "Farmacêutico (Lei 10.147/2000)", "2001-01-01"},
	{"33030010", "Perfumes (extratos)", "Perfumaria (Lei 10.147/2000)", "2001-01-01"},
	{"33041000", "Produtos de maquiagem para os lábios", "Perfumaria (Lei 10.147/2000)", "2001-01-01"},
	{"33051000", "Xampus para os cabelos", "Higiene pessoal (Lei 10.147/2000)", "2001-01-01"},
	{"34011190", "Sabões de toucador, outros", "Higiene pessoal (Lei 10.147/2000)", "2001-01-01"},
	{"22021000", "Refrigerantes e águas aromatizadas", "Bebidas frias (Lei 13.097/2015)", "2015-05-01"},
	{"22030000", "Cervejas de malte", "Bebidas frias (Lei 13.097/2015)", "2015-05-01"},
	{"22011000", "Águas minerais e gaseificadas", "Bebidas frias (Lei 13.097/2015)", "2015-05-01"},
	{"40111000", "Pneus novos para automóveis de passageiros", "Pneumáticos (Lei 10.485/2002)", "2002-11-01"},
	{"40131010", "Câmaras de ar para pneus de automóveis", "Pneumáticos (Lei 10.485/2002)", "2002-11-01"},
	{"84099112", "Pistões para motores de ignição por centelha", "Autopeças (Lei 10.485/2002)", "2002-11-01"},
	{"85113020", "Distribuidores e bobinas de ignição", "Autopeças (Lei 10.485/2002)", "2002-11-01"},
}

func main() {
	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "006_seed_tabelas_referencia.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Criar arquivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	out.WriteString("-- Tabelas paramétricas da auditoria monofásica\n")
	out.WriteString("-- Gerado por cmd/seed_tabelas\n\n")

	out.WriteString("-- 1. Faixas do Anexo I (Simples Nacional, vigentes desde 2018)\n")
	for _, f := range faixasAnexoI {
		fmt.Fprintf(out, "INSERT INTO anexos_aliquotas (id, anexo, faixa, receita_bruta_min, receita_bruta_max, aliquota_nominal, parcela_a_deduzir, percentual_pis, percentual_cofins)\n")
		fmt.Fprintf(out, "VALUES (gen_random_uuid(), '%s', %d, %s, %s, %s, %s, %s, %s)\n",
			f.anexo, f.faixa, f.receitaMin, f.receitaMax,
			f.aliquotaNominal, f.parcelaDeduzir, f.percentualPIS, f.percentualCOFINS)
		out.WriteString("ON CONFLICT (anexo, faixa) DO UPDATE SET\n")
		out.WriteString("  receita_bruta_min = EXCLUDED.receita_bruta_min,\n")
		out.WriteString("  receita_bruta_max = EXCLUDED.receita_bruta_max,\n")
		out.WriteString("  aliquota_nominal = EXCLUDED.aliquota_nominal,\n")
		out.WriteString("  parcela_a_deduzir = EXCLUDED.parcela_a_deduzir,\n")
		out.WriteString("  percentual_pis = EXCLUDED.percentual_pis,\n")
		out.WriteString("  percentual_cofins = EXCLUDED.percentual_cofins;\n\n")
	}

	out.WriteString("-- 2. Catálogo inicial de NCMs monofásicos (vigência em aberto)\n")
	for _, n := range ncmsIniciais {
		fmt.Fprintf(out, "INSERT INTO ncm_monofasicos (id, ncm, descricao, setor, data_inicio_vigencia, data_fim_vigencia, flag_monofasico)\n")
		fmt.Fprintf(out, "SELECT gen_random_uuid(), '%s', '%s', '%s', '%s', NULL, TRUE\n",
			n.ncm, escapeSQL(n.descricao), escapeSQL(n.setor), n.inicioVigencia)
		fmt.Fprintf(out, "WHERE NOT EXISTS (SELECT 1 FROM ncm_monofasicos WHERE ncm = '%s' AND data_inicio_vigencia = '%s');\n",
			n.ncm, n.inicioVigencia)
	}

	fmt.Printf("Gerado %s: %d faixas, %d NCMs\n", outPath, len(faixasAnexoI), len(ncmsIniciais))
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
