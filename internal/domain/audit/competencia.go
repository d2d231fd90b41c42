package audit

import (
	"fmt"
	"time"

	"github.com/contaudit/auditoria-monofasico/internal/domain"
)

// Competencia identifica um mês de apuração no formato AAAA-MM.
// A representação em string é usada como chave de armazenamento e como valor
// de filtro por intervalo: a ordem lexicográfica equivale à cronológica.
type Competencia struct {
	Ano int
	Mes time.Month
}

// ParseCompetencia interpreta um token "AAAA-MM".
func ParseCompetencia(anoMes string) (Competencia, error) {
	t, err := time.Parse("2006-01", anoMes)
	if err != nil {
		return Competencia{}, fmt.Errorf("%w: %q", domain.ErrCompetenciaInvalida, anoMes)
	}
	return Competencia{Ano: t.Year(), Mes: t.Month()}, nil
}

// CompetenciaDe deriva a competência a partir de uma data (ex.: emissão da nota).
func CompetenciaDe(data time.Time) Competencia {
	return Competencia{Ano: data.Year(), Mes: data.Month()}
}

// String devolve o token AAAA-MM.
func (c Competencia) String() string {
	return fmt.Sprintf("%04d-%02d", c.Ano, int(c.Mes))
}

// Intervalo devolve o intervalo semiaberto [início, início+1mês) da
// competência. Nenhuma normalização de fuso é aplicada: as notas são filtradas
// pelo timestamp armazenado tal como importado.
func (c Competencia) Intervalo() (inicio, fim time.Time) {
	inicio = time.Date(c.Ano, c.Mes, 1, 0, 0, 0, 0, time.UTC)
	fim = inicio.AddDate(0, 1, 0)
	return inicio, fim
}

// Proxima devolve a competência seguinte, tratando a virada de ano (12 -> 01).
func (c Competencia) Proxima() Competencia {
	if c.Mes == time.December {
		return Competencia{Ano: c.Ano + 1, Mes: time.January}
	}
	return Competencia{Ano: c.Ano, Mes: c.Mes + 1}
}

// Antes informa se c é cronologicamente anterior a outra.
func (c Competencia) Antes(outra Competencia) bool {
	if c.Ano != outra.Ano {
		return c.Ano < outra.Ano
	}
	return c.Mes < outra.Mes
}

// IntervaloCompetencias enumera todas as competências entre inicial e final,
// inclusive nos dois extremos.
func IntervaloCompetencias(inicial, final string) ([]Competencia, error) {
	ini, err := ParseCompetencia(inicial)
	if err != nil {
		return nil, err
	}
	fim, err := ParseCompetencia(final)
	if err != nil {
		return nil, err
	}
	if fim.Antes(ini) {
		return nil, fmt.Errorf("%w: final %s anterior à inicial %s", domain.ErrCompetenciaInvalida, final, inicial)
	}

	var competencias []Competencia
	for atual := ini; !fim.Antes(atual); atual = atual.Proxima() {
		competencias = append(competencias, atual)
	}
	return competencias, nil
}
