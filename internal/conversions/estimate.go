package conversions

import "fmt"

// EstimateSeconds: четверть длительности + 30с накладных + минута за каждую заявку впереди.
func EstimateSeconds(durationSeconds, queueLen int) int {
	return ceilDiv(durationSeconds, 4) + 30 + queueLen*60
}

func Humanize(totalSeconds int) string {
	switch {
	case totalSeconds < 60:
		return "less than a minute"
	case totalSeconds < 3600:
		return fmt.Sprintf("about %d minutes", ceilDiv(totalSeconds, 60))
	default:
		hours := totalSeconds / 3600
		minutes := ceilDiv(totalSeconds%3600, 60)
		return fmt.Sprintf("about %d %s and %d %s",
			hours, plural(hours, "hour"), minutes, plural(minutes, "minute"))
	}
}

func plural(n int, word string) string {
	if n != 1 {
		return word + "s"
	}
	return word
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
