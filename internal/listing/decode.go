package listing

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Dataset is the envelope form written by the backend scraper. The bare
// array form of earlier releases is accepted on decode only.
type Dataset struct {
	UpdatedAt string     `json:"updated_at,omitempty"`
	Records   []*Listing `json:"records"`
}

// rawRecord is a Listing plus the alias fields older releases used.
type rawRecord struct {
	Listing

	CodigoValidacion string `json:"codigo_validacion,omitempty"`
	PrecioMinimo     *int64 `json:"precio_minimo,omitempty"`
	Deudor           string `json:"deudor,omitempty"`
}

// DecodeDataset decodes dataset bytes in either wire shape into a uniform
// record list. Individual malformed or empty records are skipped; only
// malformed JSON at the top level is an error.
func DecodeDataset(data []byte) (*Dataset, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty dataset")
	}

	var (
		updatedAt string
		raw       []*rawRecord
	)

	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, fmt.Errorf("parsing dataset array: %w", err)
		}
	} else {
		var envelope struct {
			UpdatedAt string       `json:"updated_at"`
			Records   []*rawRecord `json:"records"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, fmt.Errorf("parsing dataset envelope: %w", err)
		}
		updatedAt = envelope.UpdatedAt
		raw = envelope.Records
	}

	ds := &Dataset{
		UpdatedAt: updatedAt,
		Records:   make([]*Listing, 0, len(raw)),
	}
	for _, r := range raw {
		if r == nil {
			continue
		}
		if l := r.canonical(); l != nil {
			ds.Records = append(ds.Records, l)
		}
	}

	return ds, nil
}

// canonical resolves field aliases and fills derived fields, returning nil
// for records with no identifying content.
func (r *rawRecord) canonical() *Listing {
	l := r.Listing

	if l.ID == "" && r.CodigoValidacion != "" {
		l.ID = r.CodigoValidacion
	}
	if l.ValorMinimo == nil && r.PrecioMinimo != nil {
		v := *r.PrecioMinimo
		l.ValorMinimo = &v
	}
	if l.DeudorNombre == "" && r.Deudor != "" {
		l.DeudorNombre = r.Deudor
	}

	normalizeDates(&l)

	if l.ID == "" && l.Descripcion == "" && l.DeudorNombre == "" &&
		l.TipoRemate == "" && l.TipoInmueble == "" && l.TipoBienes == "" {
		return nil
	}

	if l.ID == "" {
		l.ID = GenerateID(l.Source, l.identity())
	}

	return &l
}

// normalizeDates rewrites the date fields into the canonical spellings.
// Unparseable auction-date text moves to FechaTexto; the record survives.
func normalizeDates(l *Listing) {
	if l.FechaRemate != "" {
		if t := ParseDate(l.FechaRemate); !t.IsZero() {
			l.FechaRemate = FormatDate(t)
		} else {
			if l.FechaTexto == "" {
				l.FechaTexto = l.FechaRemate
			}
			l.FechaRemate = ""
		}
	}
	if l.FechaPublicacion != "" {
		if t := ParseDate(l.FechaPublicacion); !t.IsZero() {
			l.FechaPublicacion = t.Format("2006-01-02")
		}
	}
}
