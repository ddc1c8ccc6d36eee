package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"bodygraph-backend/internal/chart"
	"bodygraph-backend/internal/config"
	"bodygraph-backend/internal/di"
	"bodygraph-backend/pkg/api"
)

type chartFlags struct {
	date    string
	time    string
	city    string
	country string

	lat float64
	lon float64
	tz  string

	out string
}

func newChartCmd() *cobra.Command {
	var flags chartFlags

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Compute a chart for a birth date, time and place",
		Example: `  bodygraph chart --date 1990-05-14 --time 08:30 --city Albuquerque --country USA
  bodygraph chart --date 1990-05-14 --time 08:30 --city Albuquerque --country USA \
    --lat 35.08 --lon -106.65 --tz America/Denver`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChart(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.date, "date", "", "birth date, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&flags.time, "time", "", "local birth time, HH:MM (required)")
	cmd.Flags().StringVar(&flags.city, "city", "", "birth city (required)")
	cmd.Flags().StringVar(&flags.country, "country", "", "birth country (required)")
	cmd.Flags().Float64Var(&flags.lat, "lat", 0, "latitude override, skips geocoding with --lon")
	cmd.Flags().Float64Var(&flags.lon, "lon", 0, "longitude override, skips geocoding with --lat")
	cmd.Flags().StringVar(&flags.tz, "tz", "", "IANA timezone override, skips timezone lookup")
	cmd.Flags().StringVar(&flags.out, "out", "", "write JSON to file instead of stdout")

	cobra.CheckErr(cmd.MarkFlagRequired("date"))
	cobra.CheckErr(cmd.MarkFlagRequired("time"))
	cobra.CheckErr(cmd.MarkFlagRequired("city"))
	cobra.CheckErr(cmd.MarkFlagRequired("country"))

	return cmd
}

func runChart(cmd *cobra.Command, flags chartFlags) error {
	localTime, err := time.Parse("2006-01-02 15:04", flags.date+" "+flags.time)
	if err != nil {
		return fmt.Errorf("invalid date/time: %w", err)
	}

	info, err := chart.NewBirthInfo(flags.date, localTime, flags.city, flags.country)
	if err != nil {
		return err
	}

	var ov chart.Overrides
	if cmd.Flags().Changed("lat") && cmd.Flags().Changed("lon") {
		ov.Latitude = &flags.lat
		ov.Longitude = &flags.lon
	}
	ov.Timezone = flags.tz

	service, logger, err := buildChartService()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	graph, err := service.BuildBodygraph(cmd.Context(), info, ov)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(api.NewChartResponse(graph), "", "  ")
	if err != nil {
		return err
	}

	if flags.out != "" {
		return os.WriteFile(flags.out, append(data, '\n'), 0o644)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

// buildChartService wires the chart pipeline for one-shot CLI use, quieter
// than the server: warnings and errors only.
func buildChartService() (*chart.Service, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	logger, err := zapCfg.Build()
	if err != nil {
		return nil, nil, err
	}

	metrics := di.ProvideMetrics(cfg)
	wheel, err := di.ProvideWheel()
	if err != nil {
		return nil, nil, err
	}

	cache := di.ProvideGeocodeCache(cfg)
	geocoder := di.ProvideGeocoder(cfg, cache, logger, metrics)
	timezones := di.ProvideTimezoneResolver(cfg, logger)
	provider := di.ProvideEphemeris(cfg, logger, metrics)

	return di.ProvideChartService(geocoder, timezones, provider, wheel, logger, metrics), logger, nil
}
