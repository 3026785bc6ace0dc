package repair

import "strconv"

// Strategy selects how aggressively the remux rewrites the container.
type Strategy int

const (
	// StrategyTolerantRemux regenerates timestamps and ignores minor decode
	// errors while copying every stream.
	StrategyTolerantRemux Strategy = iota
	// StrategyForcedRemux additionally raises the muxing queue bound for
	// files whose interleaving is too broken for the default queue.
	StrategyForcedRemux
)

const forcedMuxingQueueSize = 9999

// Args builds the ffmpeg argument vector for the strategy. Input and output
// paths are passed as discrete arguments, never interpolated into a shell
// string.
func (s Strategy) Args(inputPath, outputPath string) []string {
	args := []string{
		"-nostdin",
		"-v", "error",
		"-err_detect", "ignore_err",
		"-fflags", "+genpts+igndts",
		"-i", inputPath,
		"-map", "0",
		"-c", "copy",
		"-avoid_negative_ts", "make_zero",
	}
	if s == StrategyForcedRemux {
		args = append(args, "-max_muxing_queue_size", strconv.Itoa(forcedMuxingQueueSize))
	}
	return append(args, "-y", outputPath)
}

// String names the strategy for logs.
func (s Strategy) String() string {
	if s == StrategyForcedRemux {
		return "forced-remux"
	}
	return "tolerant-remux"
}
