// Package scrape provides the source loaders that build remate listings
// from the public Chilean auction sites.
//
// Two HTML sources are parsed with fixed selectors: the Boletín Concursal
// publications table and the Bienes Nacionales auction cards. A third
// source talks to the Boletín's DataTables JSON endpoints directly, after
// bootstrapping the CSRF token from the landing page. Selectors and
// endpoints are fixed per source; this is not a general scraping engine.
package scrape
