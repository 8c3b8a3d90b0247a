package filter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"rematierra/internal/listing"
)

// Parse builds a Filter from a compact criteria expression: whitespace
// separated key:value tokens, values optionally double-quoted.
//
// Supported keys:
//
//	tipo:       bien category (repeatable)
//	region:     region substring (repeatable)
//	comuna:     comuna substring (repeatable)
//	fuente:     source tag (repeatable; "source:" accepted as alias)
//	q:          keyword (repeatable)
//	campo:      keyword match field (repeatable)
//	modo:       any | all
//	desde:      minimum auction date (YYYY-MM-DD)
//	hasta:      maximum auction date (YYYY-MM-DD)
//	min:        minimum price in CLP
//	max:        maximum price in CLP
//	confecha:   si | no
//
// Example: `region:Valparaíso tipo:inmueble desde:2025-10-01 q:"casa quinta"`
func Parse(expr string) (*Filter, error) {
	f := NewFilter()

	tokens, err := tokenize(expr)
	if err != nil {
		return nil, err
	}

	for _, token := range tokens {
		key, value, ok := strings.Cut(token, ":")
		if !ok || value == "" {
			return nil, fmt.Errorf("criterio inválido %q: se espera clave:valor", token)
		}

		switch strings.ToLower(key) {
		case "tipo":
			f.Tipos = append(f.Tipos, value)
		case "region":
			f.Regiones = append(f.Regiones, value)
		case "comuna":
			f.Comunas = append(f.Comunas, value)
		case "fuente", "source":
			f.Sources = append(f.Sources, value)
		case "q":
			f.Keywords = append(f.Keywords, value)
		case "campo":
			f.MatchFields = append(f.MatchFields, value)
		case "modo":
			mode := strings.ToLower(value)
			if mode != MatchAny && mode != MatchAll {
				return nil, fmt.Errorf("modo inválido %q: debe ser any o all", value)
			}
			f.MatchMode = mode
		case "desde":
			t := listing.ParseDate(value)
			if t.IsZero() {
				return nil, fmt.Errorf("fecha inválida en desde:%s", value)
			}
			f.DateFrom = &t
		case "hasta":
			t := listing.ParseDate(value)
			if t.IsZero() {
				return nil, fmt.Errorf("fecha inválida en hasta:%s", value)
			}
			// inclusive upper bound
			end := t.Add(24*time.Hour - time.Second)
			f.DateTo = &end
		case "min":
			n, err := strconv.ParseInt(value, 10, 64)
			if err != nil || n < 0 {
				return nil, fmt.Errorf("monto inválido en min:%s", value)
			}
			f.MinPrice = n
		case "max":
			n, err := strconv.ParseInt(value, 10, 64)
			if err != nil || n < 0 {
				return nil, fmt.Errorf("monto inválido en max:%s", value)
			}
			f.MaxPrice = n
		case "confecha":
			switch strings.ToLower(value) {
			case "si", "sí", "true":
				f.ConFecha = true
			case "no", "false":
				f.ConFecha = false
			default:
				return nil, fmt.Errorf("valor inválido en confecha:%s (si/no)", value)
			}
		default:
			return nil, fmt.Errorf("clave desconocida %q en el filtro", key)
		}
	}

	if f.DateFrom != nil && f.DateTo != nil && f.DateFrom.After(*f.DateTo) {
		return nil, fmt.Errorf("desde (%s) es posterior a hasta (%s)",
			f.DateFrom.Format("2006-01-02"), f.DateTo.Format("2006-01-02"))
	}
	if f.MinPrice > 0 && f.MaxPrice > 0 && f.MinPrice > f.MaxPrice {
		return nil, fmt.Errorf("min (%d) es mayor que max (%d)", f.MinPrice, f.MaxPrice)
	}

	return f, nil
}

// tokenize splits the expression on whitespace, keeping double-quoted
// values (which may follow a key:) together.
func tokenize(expr string) ([]string, error) {
	var (
		tokens  []string
		current strings.Builder
		quoted  bool
	)

	for _, r := range expr {
		switch {
		case r == '"':
			quoted = !quoted
		case !quoted && (r == ' ' || r == '\t' || r == '\n'):
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}
	if quoted {
		return nil, fmt.Errorf("comillas sin cerrar en el filtro")
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens, nil
}
