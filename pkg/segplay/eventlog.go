package segplay

import (
	"time"

	"github.com/rs/zerolog"
)

// EventLogger receives playback diagnostics from the player
type EventLogger interface {
	LogStateChange(playing bool)
	LogLoopRestart(remaining int, drift time.Duration)
	LogRangeClamped(start, end, clampedStart, clampedEnd time.Duration)
}

// textEventLogger logs in human-readable text format
type textEventLogger struct {
	logger zerolog.Logger
}

func NewTextEventLogger(logger zerolog.Logger) EventLogger {
	return &textEventLogger{logger: logger}
}

func (o *textEventLogger) LogStateChange(playing bool) {
	if playing {
		o.logger.Info().Msg("Playing")
	} else {
		o.logger.Info().Msg("Not playing")
	}
}

func (o *textEventLogger) LogLoopRestart(remaining int, drift time.Duration) {
	if remaining >= 0 {
		o.logger.Debug().Msgf("Loop restart, %d left, drift %s", remaining, drift)
	} else {
		o.logger.Debug().Msgf("Loop restart, looping forever, drift %s", drift)
	}
}

func (o *textEventLogger) LogRangeClamped(start, end, clampedStart, clampedEnd time.Duration) {
	o.logger.Warn().Msgf("Requested range %s-%s clamped to %s-%s", start, end, clampedStart, clampedEnd)
}

// jsonEventLogger logs in structured JSON format
type jsonEventLogger struct {
	logger zerolog.Logger
}

func NewJsonEventLogger(logger zerolog.Logger) EventLogger {
	return &jsonEventLogger{logger: logger}
}

func (o *jsonEventLogger) LogStateChange(playing bool) {
	o.logger.Info().Bool("playing", playing).Msg("state change")
}

func (o *jsonEventLogger) LogLoopRestart(remaining int, drift time.Duration) {
	o.logger.Debug().Int("remaining", remaining).Dur("drift", drift).Msg("loop restart")
}

func (o *jsonEventLogger) LogRangeClamped(start, end, clampedStart, clampedEnd time.Duration) {
	o.logger.Warn().Dur("start", start).Dur("end", end).Dur("clampedStart", clampedStart).Dur("clampedEnd", clampedEnd).Msg("range clamped")
}
