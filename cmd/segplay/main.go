package main

import (
	"flag"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"

	"github.com/jmarren/segplay/pkg/audioout"
	"github.com/jmarren/segplay/pkg/segplay"
)

func main() {

	logger := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.TimeOnly,
	}).With().Timestamp().Logger()

	file := flag.String("file", "", "Audio file to play (wav, mp3, ogg)")
	dir := flag.String("dir", "", "Bundle directory with catalogs")
	catalog := flag.String("catalog", "sounds", "Catalog name inside the bundle")
	resource := flag.String("resource", "", "Resource id to play from the bundle")
	start := flag.Duration("start", 0, "Segment start")
	end := flag.Duration("end", 0, "Segment end, 0 for whole file")
	loops := flag.Int("loops", 0, "Extra segment plays, -1 loops forever")
	volume := flag.Float64("volume", 1.0, "Volume 0..1")
	jsonEvents := flag.Bool("jsonlog", false, "Log playback events as JSON")
	debug := flag.Bool("debug", false, "set log level to debug")

	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	if *file == "" && (*dir == "" || *resource == "") {
		flag.Usage()
		return
	}
	if !audioout.AudioAvailable {
		logger.Warn().Msg("Audio output not available in this build, timing only")
	}

	var data []byte
	var err error
	if *file != "" {
		data, err = os.ReadFile(*file)
		if err != nil {
			logger.Fatal().Err(err).Send()
		}
	} else {
		bundle, err := segplay.OpenBundle(*dir, logger)
		if err != nil {
			logger.Fatal().Err(err).Send()
		}
		lib := segplay.NewLibrary(bundle, logger)
		if err := lib.AddCatalog(*catalog); err != nil {
			logger.Fatal().Err(err).Send()
		}
		data, err = lib.LoadResource(*resource)
		if err != nil {
			logger.Fatal().Err(err).Send()
		}
	}

	player := segplay.NewSegmentPlayer(audioout.NewDevice(logger), segplay.WallClock{}, logger)
	if *jsonEvents {
		player.SetEventLogger(segplay.NewJsonEventLogger(logger))
	} else {
		player.SetEventLogger(segplay.NewTextEventLogger(logger))
	}

	done := make(chan struct{})
	player.OnFinished(func() { close(done) })

	if err := player.Load(data); err != nil {
		logger.Fatal().Err(err).Send()
	}
	player.SetVolume(*volume)

	if *end > 0 {
		err = player.PlaySegment(*start, *end, segplay.LoopSpec(*loops))
	} else {
		err = player.Play()
	}
	if err != nil {
		logger.Fatal().Err(err).Send()
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-interrupt:
			player.Stop()
			return
		case <-ticker.C:
			if !player.IsPlaying() && player.State() != segplay.StatePausedSegment {
				return
			}
		}
	}
}
