package entity

import "time"

// NCMMonofasico é uma linha da tabela de referência de NCMs sujeitos ao regime
// monofásico de PIS/COFINS, com janela de vigência parametrizável.
// DataFimVigencia nula significa vigência em aberto. Janelas do mesmo NCM podem
// se sobrepor; a consulta considera qualquer linha ativa que cubra a data.
type NCMMonofasico struct {
	ID                 string
	NCM                string
	Descricao          string
	Setor              string
	DataInicioVigencia time.Time
	DataFimVigencia    *time.Time
	FlagMonofasico     bool
}

// VigenteEm diz se esta linha cobre a data, com granularidade de dia e limites
// inclusivos. A consulta SQL do repositório aplica o mesmo predicado.
func (n *NCMMonofasico) VigenteEm(data time.Time) bool {
	if !n.FlagMonofasico {
		return false
	}
	dia := diaDe(data)
	if dia.Before(diaDe(n.DataInicioVigencia)) {
		return false
	}
	return n.DataFimVigencia == nil || !dia.After(diaDe(*n.DataFimVigencia))
}

func diaDe(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
