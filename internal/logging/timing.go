package logging

import "time"

// Since logs the time elapsed from start at debug level. Intended for defer:
//
//	defer logging.Since(time.Now(), "list nodes")
func Since(start time.Time, name string, args ...any) {
	if !IsEnabled() {
		return
	}
	d := time.Since(start)
	Get().Debug(name, append([]any{"duration", d.String(), "ms", d.Milliseconds()}, args...)...)
}
