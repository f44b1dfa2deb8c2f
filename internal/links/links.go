// Package links распознаёт ссылки на видео поддерживаемых платформ.
package links

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

const PlatformUnknown = "Unknown"

var supportedDomains = []string{
	"youtube.com", "youtu.be",
	"twitch.tv",
	"instagram.com",
	"facebook.com", "fb.com",
	"vimeo.com",
	"dailymotion.com",
	"tiktok.com",
}

// порядок важен: первое совпадение побеждает
var platforms = []struct {
	name    string
	markers []string
}{
	{"YouTube", []string{"youtube", "youtu.be"}},
	{"Twitch", []string{"twitch"}},
	{"Instagram", []string{"instagram"}},
	{"Facebook", []string{"facebook", "fb.com"}},
	{"Vimeo", []string{"vimeo"}},
	{"Dailymotion", []string{"dailymotion"}},
	{"TikTok", []string{"tiktok"}},
}

var (
	hoursRe   = regexp.MustCompile(`(\d+)h`)
	minutesRe = regexp.MustCompile(`(\d+)m`)
	secondsRe = regexp.MustCompile(`(\d+)s`)
)

// parse принимает только абсолютные ссылки: схема и хост обязательны.
func parse(raw string) (*url.URL, bool) {
	if raw == "" {
		return nil, false
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, false
	}
	return u, true
}

func IsSupported(raw string) bool {
	u, ok := parse(raw)
	if !ok {
		return false
	}
	host := u.Hostname()
	for _, d := range supportedDomains {
		if strings.Contains(host, d) {
			return true
		}
	}
	return false
}

// Platform возвращает отображаемое имя платформы или "Unknown".
func Platform(raw string) string {
	u, ok := parse(raw)
	if !ok {
		return PlatformUnknown
	}
	host := u.Hostname()
	for _, p := range platforms {
		for _, m := range p.markers {
			if strings.Contains(host, m) {
				return p.name
			}
		}
	}
	return PlatformUnknown
}

// StartTimestamp достаёт стартовую секунду из ?t=1h2m3s, ?t=125 или #t=45.
func StartTimestamp(raw string) (int, bool) {
	u, ok := parse(raw)
	if !ok {
		return 0, false
	}

	if t := u.Query().Get("t"); t != "" {
		if strings.ContainsAny(t, "hms") {
			return unitSeconds(hoursRe, t)*3600 +
				unitSeconds(minutesRe, t)*60 +
				unitSeconds(secondsRe, t), true
		}
		return leadingInt(t)
	}

	for _, p := range strings.Split(u.Fragment, "&") {
		if v, found := strings.CutPrefix(p, "t="); found {
			return leadingInt(v)
		}
	}
	return 0, false
}

func unitSeconds(re *regexp.Regexp, s string) int {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// leadingInt разбирает ведущие цифры: "90" -> 90, "12abc" -> 12, "abc" -> нет.
func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
