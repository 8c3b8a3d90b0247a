package listing

import (
	"crypto/sha1"
	"fmt"
	"strings"
)

// Listing represents a single remate publication in canonical form.
// JSON field names follow the dataset files written by earlier releases.
type Listing struct {
	ID        string `json:"id"`
	Source    string `json:"source"`
	SourceURL string `json:"source_url"`

	TipoBien          string `json:"tipo_bien,omitempty"`
	TipoRemate        string `json:"tipo_remate,omitempty"`
	TipoInmueble      string `json:"tipo_inmueble,omitempty"`
	TipoBienes        string `json:"tipo_bienes,omitempty"`
	TipoProcedimiento string `json:"tipo_procedimiento,omitempty"`

	Descripcion  string `json:"descripcion,omitempty"`
	DeudorNombre string `json:"deudor_nombre,omitempty"`
	DeudorRut    string `json:"deudor_rut,omitempty"`
	Martillero   string `json:"martillero,omitempty"`
	Liquidador   string `json:"liquidador,omitempty"`
	Tribunal     string `json:"tribunal,omitempty"`
	RolCausa     string `json:"rol_causa,omitempty"`

	Region     string `json:"region,omitempty"`
	Comuna     string `json:"comuna,omitempty"`
	Direccion  string `json:"direccion,omitempty"`
	Superficie string `json:"superficie,omitempty"`

	ValorMinimo *int64 `json:"valor_minimo,omitempty"`
	Moneda      string `json:"moneda,omitempty"`
	Comision    string `json:"comision,omitempty"`

	// FechaPublicacion is YYYY-MM-DD; FechaRemate is YYYY-MM-DD with an
	// optional " HH:MM" suffix. FechaTexto keeps the verbatim source text
	// when the date could not be normalized.
	FechaPublicacion string `json:"fecha_publicacion,omitempty"`
	FechaRemate      string `json:"fecha_remate,omitempty"`
	FechaTexto       string `json:"fecha_texto,omitempty"`

	EntePublicador string `json:"ente_publicador,omitempty"`
	Procedimiento  string `json:"procedimiento,omitempty"`
}

// GenerateID creates a deterministic ID for a listing based on its source
// and stable raw identity fields.
func GenerateID(source, raw string) string {
	h := sha1.New()
	h.Write([]byte(source + "|" + raw))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// Categoria returns the categorical "kind" of the listing. Earlier dataset
// releases carried it as tipo_remate, later ones as tipo_bien.
func (l *Listing) Categoria() string {
	if l.TipoBien != "" {
		return l.TipoBien
	}
	return l.TipoRemate
}

// Titulo returns the best available display title for the listing.
func (l *Listing) Titulo() string {
	switch {
	case l.Descripcion != "":
		return l.Descripcion
	case l.TipoBienes != "":
		return l.TipoBienes
	case l.TipoInmueble != "":
		return l.TipoInmueble
	default:
		return "(sin descripcion disponible)"
	}
}

// FieldText stringizes a named Listing field for keyword matching.
// Unknown field names yield "".
func FieldText(l *Listing, field string) string {
	switch field {
	case "descripcion":
		return l.Descripcion
	case "tipo_bien":
		return l.Categoria()
	case "tipo_remate":
		return l.TipoRemate
	case "tipo_inmueble":
		return l.TipoInmueble
	case "tipo_bienes":
		return l.TipoBienes
	case "tipo_procedimiento":
		return l.TipoProcedimiento
	case "deudor_nombre":
		return l.DeudorNombre
	case "deudor_rut":
		return l.DeudorRut
	case "martillero":
		return l.Martillero
	case "liquidador":
		return l.Liquidador
	case "tribunal":
		return l.Tribunal
	case "rol_causa":
		return l.RolCausa
	case "region":
		return l.Region
	case "comuna":
		return l.Comuna
	case "direccion":
		return l.Direccion
	case "superficie":
		return l.Superficie
	case "ente_publicador":
		return l.EntePublicador
	case "procedimiento":
		return l.Procedimiento
	default:
		return ""
	}
}

// KnownFields lists the Listing fields accepted by FieldText, in a stable
// order suitable for error messages.
func KnownFields() []string {
	return []string{
		"descripcion", "tipo_bien", "tipo_remate", "tipo_inmueble",
		"tipo_bienes", "tipo_procedimiento", "deudor_nombre", "deudor_rut",
		"martillero", "liquidador", "tribunal", "rol_causa",
		"region", "comuna", "direccion", "superficie",
		"ente_publicador", "procedimiento",
	}
}

// identity returns the raw material for a generated ID: the fields that
// stay stable when a source republishes the same remate.
func (l *Listing) identity() string {
	parts := []string{
		l.TipoRemate, l.TipoInmueble, l.DeudorNombre, l.Martillero,
		l.Region, l.Comuna, l.FechaRemate, l.FechaPublicacion, l.SourceURL,
	}
	return strings.Join(parts, "|")
}
