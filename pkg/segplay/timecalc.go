package segplay

import "time"

// Frames2Duration converts a frame count at the given sample rate to a
// time.Duration
func Frames2Duration(frames int64, sampleRate int) time.Duration {
	secs := frames / int64(sampleRate)
	nsecs := (frames % int64(sampleRate)) * 1000000000 / int64(sampleRate)
	return time.Duration(secs)*time.Second + time.Duration(nsecs)*time.Nanosecond
}

// Duration2Frames converts a duration to a frame count at the given sample
// rate. Calculated in two parts to avoid overflow for long durations.
func Duration2Frames(duration time.Duration, sampleRate int) int64 {
	secs := duration / time.Second
	nsecs := duration % time.Second * time.Nanosecond

	return int64(secs)*int64(sampleRate) + int64(nsecs)*int64(sampleRate)/int64(time.Second)
}

// RoundTo rounds a duration down to a multiple of to
func RoundTo(in time.Duration, to time.Duration) time.Duration {
	return in / to * to
}

// Round rounds a duration to 10 milliseconds
func Round(in time.Duration) time.Duration {
	return RoundTo(in, time.Millisecond*10)
}
