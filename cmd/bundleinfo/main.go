package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/jmarren/segplay/pkg/audioout"
	"github.com/jmarren/segplay/pkg/segplay"
)

// playbackMeta is the free-form metadata shape our own catalogs carry.
// Other producers may attach anything; unknown shapes just print raw.
type playbackMeta struct {
	Gain     float64 `json:"gain"`
	Category string  `json:"category"`
}

func main() {

	logger := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.TimeOnly,
	}).With().Timestamp().Logger()

	dir := flag.String("dir", "", "Bundle directory")
	catalog := flag.String("catalog", "sounds", "Catalog name inside the bundle")
	probe := flag.Bool("probe", false, "Decode each resource and report its duration")
	debug := flag.Bool("debug", false, "set log level to debug")

	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	if *dir == "" {
		flag.Usage()
		return
	}

	bundle, err := segplay.OpenBundle(*dir, logger)
	if err != nil {
		logger.Fatal().Err(err).Send()
	}

	data, err := bundle.Resolve(*catalog, "json", nil)
	if err != nil {
		logger.Fatal().Err(err).Send()
	}
	cat, err := segplay.DecodeCatalog(*catalog, data)
	if err != nil {
		logger.Fatal().Err(err).Send()
	}

	fmt.Printf("catalog %s: %d items\n", cat.ID, len(cat.Items))
	for _, item := range cat.Items {
		line := fmt.Sprintf("  %-20s %s.%s", item.ID, item.File, item.Ext)

		if !item.Metadata.IsNull() {
			if meta, err := segplay.As[playbackMeta](item.Metadata); err == nil && (meta.Gain != 0 || meta.Category != "") {
				line += fmt.Sprintf("  gain=%.2f category=%s", meta.Gain, meta.Category)
			} else {
				line += fmt.Sprintf("  metadata=%s", item.Metadata)
			}
		}

		if *probe {
			raw, err := bundle.Resolve(item.File, item.Ext, cat.Scope)
			if err != nil {
				logger.Warn().Err(err).Str("id", item.ID).Msg("Resolve")
			} else if d, err := audioout.Probe(raw); err != nil {
				logger.Warn().Err(err).Str("id", item.ID).Msg("Probe")
			} else {
				line += fmt.Sprintf("  %s", segplay.Round(d))
			}
		}

		fmt.Println(line)
	}
}
