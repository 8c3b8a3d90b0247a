package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rematierra/internal/dataset"
	"rematierra/internal/listing"
	"rematierra/internal/logger"
	"rematierra/internal/scrape"
)

func newFetchCmd() *cobra.Command {
	var (
		source       string
		output       string
		merge        bool
		lookbackDays int
		startDate    string
		endDate      string
		month        string
		limit        int
		onlyMatching bool
		keywords     []string
		matchFields  []string
		matchMode    string
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Descarga remates desde las fuentes públicas y los guarda en el dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end, err := resolveWindow(startDate, endDate, month, lookbackDays)
			if err != nil {
				return err
			}

			opts := scrape.Options{
				BoletinBaseURL: cfg.BoletinBaseURL,
				BienesBaseURL:  cfg.BienesBaseURL,
				UserAgent:      cfg.UserAgent,
				Timeout:        cfg.HTTPTimeout(),
			}
			sources, err := buildSources(source, opts, start, end, limit)
			if err != nil {
				return err
			}

			var fetched []*listing.Listing
			var failures []string
			for _, src := range sources {
				records, err := src.Fetch(cmd.Context())
				if err != nil {
					logger.L().Warn("source failed",
						zap.String("source", src.Name()),
						zap.Error(err))
					failures = append(failures, fmt.Sprintf("%s: %v", src.Name(), err))
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d remates\n", src.Name(), len(records))
				fetched = append(fetched, records...)
			}
			if len(fetched) == 0 && len(failures) > 0 {
				return fmt.Errorf("todas las fuentes fallaron: %s", strings.Join(failures, "; "))
			}

			if onlyMatching {
				if len(keywords) == 0 {
					logger.L().Warn("--only-matching sin --keywords; se guardan todos los remates")
				} else {
					ff := filterFlags{keywords: keywords, matchFields: matchFields, matchMode: matchMode}
					f, err := ff.build()
					if err != nil {
						return err
					}
					before := len(fetched)
					fetched = f.Apply(fetched)
					logger.L().Debug("kept matching records",
						zap.Int("before", before),
						zap.Int("after", len(fetched)))
				}
			}

			path := output
			if path == "" {
				path = cfg.DatasetPath
			}

			if merge {
				existing, err := dataset.Load(path)
				if err != nil && !os.IsNotExist(err) {
					return err
				}
				if existing != nil {
					fetched = dataset.Merge(existing.Records, fetched)
				}
			}

			if err := dataset.Save(path, fetched); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Se guardaron %d remates en %s\n", len(fetched), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&source, "source", "s", "all", "Source: boletin, bienes, boletin-api or all")
	cmd.Flags().StringVar(&output, "output", "", "Dataset file to write (default the configured dataset path)")
	cmd.Flags().BoolVar(&merge, "merge", false, "Merge with the existing dataset instead of replacing it")
	cmd.Flags().IntVar(&lookbackDays, "lookback-days", 30, "How many days of publications to sweep from the Boletín API")
	cmd.Flags().StringVar(&startDate, "start-date", "", "Publication window start, AAAA-MM-DD")
	cmd.Flags().StringVar(&endDate, "end-date", "", "Publication window end, AAAA-MM-DD")
	cmd.Flags().StringVar(&month, "month", "", "Sweep a whole month, AAAA-MM (overrides the other window flags)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Stop the API sweep after N records (0 = all)")
	cmd.Flags().BoolVar(&onlyMatching, "only-matching", false, "Keep only records matching --keywords")
	cmd.Flags().StringSliceVarP(&keywords, "keywords", "k", nil, "Keywords for --only-matching (repeatable)")
	cmd.Flags().StringSliceVar(&matchFields, "match-fields", nil, "Fields searched for keywords")
	cmd.Flags().StringVar(&matchMode, "match-mode", "", "Keyword match mode: any or all")

	return cmd
}

// resolveWindow turns the window flags into a publication date range.
// --month wins over the explicit dates; otherwise lookback-days fills in
// a missing start.
func resolveWindow(startDate, endDate, month string, lookbackDays int) (time.Time, time.Time, error) {
	if month != "" {
		if startDate != "" || endDate != "" {
			logger.L().Warn("--month overrides --start-date and --end-date")
		}
		first, err := time.Parse("2006-01", month)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("mes inválido %q (use AAAA-MM)", month)
		}
		last := first.AddDate(0, 1, 0).Add(-time.Second)
		return first, last, nil
	}

	var start, end time.Time
	if startDate != "" {
		t, err := parseDateFlag(startDate)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		start = *t
	}
	if endDate != "" {
		t, err := parseDateFlag(endDate)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		end = t.AddDate(0, 0, 1).Add(-time.Second)
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("la fecha de término es anterior a la de inicio")
	}

	// The lookback caps how far back a sweep goes, even past an explicit
	// start date.
	if lookbackDays > 0 {
		cutoff := time.Now().AddDate(0, 0, -lookbackDays)
		if start.Before(cutoff) {
			start = cutoff
		}
	}
	return start, end, nil
}

func buildSources(name string, opts scrape.Options, start, end time.Time, limit int) ([]scrape.Source, error) {
	boletinAPI := func() scrape.Source {
		src := scrape.NewBoletinAPI(opts)
		src.StartDate = start
		src.EndDate = end
		src.Limit = limit
		return src
	}

	switch strings.ToLower(name) {
	case "boletin":
		return []scrape.Source{scrape.NewBoletinTable(opts)}, nil
	case "bienes":
		return []scrape.Source{scrape.NewBienesCards(opts)}, nil
	case "boletin-api":
		return []scrape.Source{boletinAPI()}, nil
	case "all":
		return []scrape.Source{boletinAPI(), scrape.NewBienesCards(opts)}, nil
	default:
		return nil, fmt.Errorf("fuente desconocida %q (use boletin, bienes, boletin-api o all)", name)
	}
}
