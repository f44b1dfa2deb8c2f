package links

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSupported(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://www.youtube.com/watch?v=abc", true},
		{"https://youtu.be/abc", true},
		{"https://m.twitch.tv/videos/1", true},
		{"https://www.instagram.com/reel/x", true},
		{"https://facebook.com/watch/?v=1", true},
		{"https://fb.com/video/1", true},
		{"https://vimeo.com/123", true},
		{"https://www.dailymotion.com/video/x", true},
		{"https://www.tiktok.com/@u/video/1", true},
		{"https://example.com/watch?v=abc", false},
		{"https://rutube.ru/video/1", false},
		{"youtube.com/watch?v=abc", false},
		{"just some text", false},
		{"", false},
		{"http://[::1", false},
		{"https://example.com/?next=youtube.com", false},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSupported(tt.url))
		})
	}
}

func TestPlatform(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.youtube.com/watch?v=abc", "YouTube"},
		{"https://youtu.be/abc", "YouTube"},
		{"https://www.twitch.tv/videos/1", "Twitch"},
		{"https://instagram.com/p/1", "Instagram"},
		{"https://www.facebook.com/watch", "Facebook"},
		{"https://fb.com/1", "Facebook"},
		{"https://vimeo.com/1", "Vimeo"},
		{"https://dailymotion.com/video/1", "Dailymotion"},
		{"https://tiktok.com/@a/video/1", "TikTok"},
		{"https://example.com", PlatformUnknown},
		{"not a url", PlatformUnknown},
		// первое совпадение побеждает
		{"https://youtube.twitch.tv/x", "YouTube"},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, Platform(tt.url))
		})
	}
}

func TestStartTimestamp(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		want   int
		wantOK bool
	}{
		{"hms", "https://youtube.com/watch?v=x&t=1h2m30s", 3750, true},
		{"minutes and seconds", "https://youtube.com/watch?v=x&t=2m30s", 150, true},
		{"seconds suffix", "https://youtu.be/x?t=120s", 120, true},
		{"numeric", "https://youtube.com/watch?v=x&t=125", 125, true},
		{"numeric with junk", "https://youtube.com/watch?v=x&t=90abc", 90, true},
		{"fragment", "https://youtube.com/watch?v=x#t=45", 45, true},
		{"fragment among params", "https://vimeo.com/1#foo=1&t=30", 30, true},
		{"no timestamp", "https://youtube.com/watch?v=no-timestamp", 0, false},
		{"not numeric", "https://youtube.com/watch?v=x&t=abc", 0, false},
		{"empty t falls back to fragment", "https://youtube.com/watch?t=#t=12", 12, true},
		{"bad url", "::::", 0, false},
		{"empty", "", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := StartTimestamp(tt.url)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
