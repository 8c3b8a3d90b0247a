package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rematierra/internal/dataset"
	"rematierra/internal/filter"
	"rematierra/internal/listing"
	"rematierra/internal/logger"
)

// filterFlags carries the filtering flags shared by list, report and
// presets save.
type filterFlags struct {
	expr        string
	keywords    []string
	matchFields []string
	matchMode   string
	preset      string
}

func (ff *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&ff.expr, "filter", "f", "", "Filter expression, e.g. 'region:valparaiso min:20000000 q:casa'")
	cmd.Flags().StringSliceVarP(&ff.keywords, "keywords", "k", nil, "Keywords to match (repeatable)")
	cmd.Flags().StringSliceVar(&ff.matchFields, "match-fields", nil, "Fields searched for keywords (default descripcion,tipo_bienes,tipo_bien,tipo_procedimiento)")
	cmd.Flags().StringVar(&ff.matchMode, "match-mode", "", "Keyword match mode: any or all")
	cmd.Flags().StringVarP(&ff.preset, "preset", "p", "", "Start from a saved preset")
}

// build assembles the effective filter: preset first, then the filter
// expression, then the keyword flags on top.
func (ff *filterFlags) build() (*filter.Filter, error) {
	f := filter.NewFilter()

	if ff.preset != "" {
		store, err := presetStore()
		if err != nil {
			return nil, err
		}
		p, err := store.Get(ff.preset)
		if err != nil {
			return nil, err
		}
		f = p.Filter.Clone()
	}

	if ff.expr != "" {
		parsed, err := filter.Parse(ff.expr)
		if err != nil {
			return nil, err
		}
		mergeFilter(f, parsed)
	}

	if len(ff.keywords) > 0 {
		f.Keywords = append(f.Keywords, ff.keywords...)
	}
	if len(ff.matchFields) > 0 {
		fields, unknown := filter.ResolveMatchFields(ff.matchFields)
		for _, u := range unknown {
			logger.L().Warn("unknown match field ignored", zap.String("field", u))
		}
		f.MatchFields = fields
	} else if len(f.MatchFields) == 0 && len(cfg.MatchFields) > 0 {
		// Configured default, only when neither flag nor preset chose.
		fields, unknown := filter.ResolveMatchFields(cfg.MatchFields)
		for _, u := range unknown {
			logger.L().Warn("unknown match field in config ignored", zap.String("field", u))
		}
		f.MatchFields = fields
	}
	if ff.matchMode != "" {
		switch strings.ToLower(ff.matchMode) {
		case filter.MatchAny, filter.MatchAll:
			f.MatchMode = strings.ToLower(ff.matchMode)
		default:
			return nil, fmt.Errorf("modo de coincidencia desconocido: %q (use any o all)", ff.matchMode)
		}
	}

	return f, nil
}

// mergeFilter overlays src on dst: list criteria append, scalar criteria
// from src win when set.
func mergeFilter(dst, src *filter.Filter) {
	dst.Tipos = appendUnique(dst.Tipos, src.Tipos)
	dst.Regiones = appendUnique(dst.Regiones, src.Regiones)
	dst.Comunas = appendUnique(dst.Comunas, src.Comunas)
	dst.Sources = appendUnique(dst.Sources, src.Sources)
	dst.Keywords = appendUnique(dst.Keywords, src.Keywords)
	if len(src.MatchFields) > 0 {
		dst.MatchFields = src.MatchFields
	}
	if src.MatchMode != "" {
		dst.MatchMode = src.MatchMode
	}
	if src.DateFrom != nil {
		dst.DateFrom = src.DateFrom
	}
	if src.DateTo != nil {
		dst.DateTo = src.DateTo
	}
	if src.MinPrice > 0 {
		dst.MinPrice = src.MinPrice
	}
	if src.MaxPrice > 0 {
		dst.MaxPrice = src.MaxPrice
	}
	if src.ConFecha {
		dst.ConFecha = true
	}
}

func appendUnique(dst, src []string) []string {
	for _, v := range src {
		found := false
		for _, existing := range dst {
			if existing == v {
				found = true
				break
			}
		}
		if !found {
			dst = append(dst, v)
		}
	}
	return dst
}

// inputFlags selects the dataset to read: a local file or a remote URL.
type inputFlags struct {
	input string
	url   string
}

func (in *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&in.input, "input", "i", "", "Dataset JSON file (default the configured dataset path)")
	cmd.Flags().StringVar(&in.url, "url", "", "Fetch the dataset JSON from a URL instead of a file")
}

func (in *inputFlags) load(ctx context.Context) ([]*listing.Listing, error) {
	if in.input != "" && in.url != "" {
		return nil, fmt.Errorf("--input y --url son excluyentes")
	}
	if in.url != "" {
		ds, err := dataset.FetchJSON(ctx, in.url, cfg.UserAgent, cfg.HTTPTimeout())
		if err != nil {
			return nil, err
		}
		return ds.Records, nil
	}

	path := in.input
	if path == "" {
		path = cfg.DatasetPath
	}
	ds, err := dataset.Load(path)
	if err != nil {
		if os.IsNotExist(err) && in.input == "" {
			return nil, fmt.Errorf("no existe el dataset %s; ejecute 'rematierra fetch' primero", path)
		}
		return nil, err
	}
	return ds.Records, nil
}

func presetStore() (*dataset.PresetStore, error) {
	return dataset.NewPresetStore(cfg.DataDir)
}

// openOutput returns stdout when path is empty.
func openOutput(path string) (*os.File, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, nil, fmt.Errorf("creating output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating output file: %w", err)
	}
	return f, func() { f.Close() }, nil
}

func parseDateFlag(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("fecha inválida %q (use AAAA-MM-DD)", value)
	}
	return &t, nil
}
