// Package listing provides the canonical record type for Chilean
// judicial-auction publications ("remates").
//
// The listing package handles record representation, deterministic
// identification, date normalization, and decoding of the heterogeneous
// dataset shapes produced by the different scrapers over time: a bare JSON
// array of flat records as well as the {"updated_at": ..., "records": [...]}
// envelope, with field names that drifted between releases
// (tipo_remate/tipo_bien, precio_minimo/valor_minimo, deudor/deudor_nombre).
package listing
