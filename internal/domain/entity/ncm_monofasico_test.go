package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/contaudit/auditoria-monofasico/internal/domain/entity"
)

func TestNCMMonofasicoVigenteEm(t *testing.T) {
	inicio := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	fim := time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		nome    string
		linha   entity.NCMMonofasico
		data    time.Time
		vigente bool
	}{
		{
			nome:    "véspera do início não está coberta",
			linha:   entity.NCMMonofasico{DataInicioVigencia: inicio, FlagMonofasico: true},
			data:    time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC),
			vigente: false,
		},
		{
			nome:    "primeiro dia de vigência está coberto",
			linha:   entity.NCMMonofasico{DataInicioVigencia: inicio, FlagMonofasico: true},
			data:    inicio,
			vigente: true,
		},
		{
			nome:    "fim nulo significa vigência em aberto",
			linha:   entity.NCMMonofasico{DataInicioVigencia: inicio, FlagMonofasico: true},
			data:    time.Date(2030, time.June, 15, 0, 0, 0, 0, time.UTC),
			vigente: true,
		},
		{
			nome:    "último dia da janela fechada é inclusivo",
			linha:   entity.NCMMonofasico{DataInicioVigencia: inicio, DataFimVigencia: &fim, FlagMonofasico: true},
			data:    fim,
			vigente: true,
		},
		{
			nome:    "dia seguinte ao fim não está coberto",
			linha:   entity.NCMMonofasico{DataInicioVigencia: inicio, DataFimVigencia: &fim, FlagMonofasico: true},
			data:    time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
			vigente: false,
		},
		{
			nome:    "linha inativa nunca cobre",
			linha:   entity.NCMMonofasico{DataInicioVigencia: inicio, FlagMonofasico: false},
			data:    inicio,
			vigente: false,
		},
		{
			nome:    "compara só a data, ignorando a hora da emissão",
			linha:   entity.NCMMonofasico{DataInicioVigencia: inicio, FlagMonofasico: true},
			data:    time.Date(2024, time.January, 1, 23, 59, 59, 0, time.FixedZone("", -3*3600)),
			vigente: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.nome, func(t *testing.T) {
			assert.Equal(t, tt.vigente, tt.linha.VigenteEm(tt.data))
		})
	}
}
