// Package pipeline runs the per-environment extract-transform stages and
// assembles the final reports.
//
// Environments are processed strictly one after another. Each environment's
// outcome is collected as a value instead of being raised: an unreachable
// environment logs a warning and the run continues. Only when every
// environment fails does a run abort, before any file is written.
package pipeline

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ifrc-go/localunits-report/internal/config"
	"github.com/ifrc-go/localunits-report/pkg/goapi"
	"github.com/ifrc-go/localunits-report/pkg/pagination"
	"github.com/ifrc-go/localunits-report/pkg/report"
)

// ErrNoEnvironments is returned when no environment could be fetched.
var ErrNoEnvironments = errors.New("could not fetch data from any environment")

// Options holds the parameters shared by both reports.
type Options struct {
	// Environments are processed in order.
	Environments []config.Environment

	// Limit is the page size for paginated requests.
	Limit int

	// OutputPath overrides the default output file when non-empty.
	OutputPath string
}

// SummaryTallyForEnv fetches all local units for one environment and tallies
// them by type name.
func SummaryTallyForEnv(ctx context.Context, c pagination.Client, env config.Environment, limit int) (report.TypeTally, error) {
	units, err := pagination.FetchAll[goapi.LocalUnit](ctx, c, env.LocalUnitsURL, pagination.Config{
		Limit: limit,
		Label: env.Name + "/local-units",
	})
	if err != nil {
		return nil, err
	}

	tally := report.CountTypes(units)
	log.Info().
		Str("env", env.Name).
		Int("records", len(units)).
		Int("types", len(tally)).
		Msg("Environment tallied")

	return tally, nil
}

// TreemapSheetForEnv fetches the country listing and all local units for one
// environment and produces its (type, region) report sheet. Country ids that
// resolve to no region are reported once as a warning, not a failure.
func TreemapSheetForEnv(ctx context.Context, c pagination.Client, env config.Environment, limit int) (report.TreemapSheet, error) {
	countries, err := pagination.FetchAll[goapi.Country](ctx, c, env.CountryURL, pagination.Config{
		Limit: limit,
		Label: env.Name + "/countries",
	})
	if err != nil {
		return report.TreemapSheet{}, err
	}

	regions := report.BuildCountryRegions(countries)
	log.Info().
		Str("env", env.Name).
		Int("countries", len(regions)).
		Msg("Country regions mapped")

	units, err := pagination.FetchAll[goapi.LocalUnit](ctx, c, env.LocalUnitsURL, pagination.Config{
		Limit: limit,
		Label: env.Name + "/local-units",
	})
	if err != nil {
		return report.TreemapSheet{}, err
	}

	tally, unresolved := report.CountTypeRegions(units, regions)
	if len(unresolved) > 0 {
		log.Warn().
			Str("env", env.Name).
			Strs("country_ids", unresolved).
			Msg("Country ids could not be mapped to a region")
	}

	log.Info().
		Str("env", env.Name).
		Int("records", len(units)).
		Int("combinations", len(tally)).
		Msg("Environment tallied")

	return report.TreemapSheet{
		Name: report.SheetName(env.Name),
		Rows: report.BuildTreemap(tally),
	}, nil
}

// RunSummary executes the type-count report end to end and writes the
// workbook. Unreachable environments are skipped; ErrNoEnvironments is
// returned when none succeeds.
func RunSummary(ctx context.Context, c pagination.Client, opts Options) error {
	tallies := make(map[string]report.TypeTally)

	for _, env := range opts.Environments {
		log.Info().
			Str("env", env.Name).
			Str("url", env.LocalUnitsURL).
			Msg("Fetching environment")

		tally, err := SummaryTallyForEnv(ctx, c, env, opts.Limit)
		if err != nil {
			logSkip(env.Name, err)
			continue
		}
		tallies[env.Name] = tally
	}

	if len(tallies) == 0 {
		return ErrNoEnvironments
	}

	table := report.BuildSummary(envNames(opts.Environments), tallies)

	out := opts.OutputPath
	if out == "" {
		out = report.SummaryFile
	}
	if err := report.WriteSummary(out, table); err != nil {
		return err
	}

	log.Info().
		Str("file", out).
		Strs("environments", table.Envs).
		Int("categories", len(table.Categories)).
		Msg("Summary report saved")

	return nil
}

// RunTreemap executes the (type, region) report end to end and writes one
// sheet per reachable environment.
func RunTreemap(ctx context.Context, c pagination.Client, opts Options) error {
	var sheets []report.TreemapSheet

	for _, env := range opts.Environments {
		log.Info().
			Str("env", env.Name).
			Str("url", env.LocalUnitsURL).
			Msg("Processing environment")

		sheet, err := TreemapSheetForEnv(ctx, c, env, opts.Limit)
		if err != nil {
			logSkip(env.Name, err)
			continue
		}
		sheets = append(sheets, sheet)
	}

	if len(sheets) == 0 {
		return ErrNoEnvironments
	}

	out := opts.OutputPath
	if out == "" {
		out = report.TreemapFile
	}
	if err := report.WriteTreemap(out, sheets); err != nil {
		return err
	}

	names := make([]string, len(sheets))
	for i, sheet := range sheets {
		names[i] = sheet.Name
	}
	log.Info().
		Str("file", out).
		Str("sheets", strings.Join(names, ", ")).
		Msg("Treemap report saved")

	return nil
}

// logSkip records the one failure-isolation policy in the system: an
// unreachable environment is logged and skipped, the run continues.
func logSkip(env string, err error) {
	event := log.Warn().Str("env", env).Err(err)

	var apiErr *goapi.APIError
	if errors.As(err, &apiErr) {
		event = event.Str("error_class", string(apiErr.Class))
		if apiErr.Class == goapi.ErrorClassNetwork {
			event = event.Str("hint", "the server may be on an internal network or VPN")
		}
	}

	event.Msg("Skipping environment")
}

func envNames(envs []config.Environment) []string {
	names := make([]string, len(envs))
	for i, env := range envs {
		names[i] = env.Name
	}
	return names
}
