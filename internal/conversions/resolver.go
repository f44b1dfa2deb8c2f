package conversions

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"

	"github.com/Spok95/telegisto-bot/internal/apperr"
	"github.com/Spok95/telegisto-bot/internal/links"
)

// MetadataResolver отдаёт название и длительность видео по ссылке.
// Если видео недоступно — ошибка вида apperr.KindDownload.
type MetadataResolver interface {
	Resolve(ctx context.Context, url string) (Metadata, error)
}

const (
	minDurationSeconds = 3 * 60
	durationSpread     = 27 * 60
)

var sampleTitles = map[string][]string{
	"YouTube": {
		"How to Build a Web App in 10 Minutes",
		"The Future of AI Explained",
		"Learn JavaScript in 2023",
		"Top 10 Programming Languages",
		"Building Microservices Architecture",
	},
	"Twitch": {
		"Coding Session: Building a Game",
		"Live Coding: React App from Scratch",
		"Gaming Stream Highlights",
		"Tech Talk: Future of Web Development",
		"Hackathon Live Stream",
	},
	"Instagram": {
		"Travel Vlog: Tokyo Adventure",
		"Cooking Tutorial: Perfect Pasta",
		"Fitness Routine for Developers",
		"Tech Review: Latest Gadgets",
		"Day in the Life of a Developer",
	},
	"Facebook": {
		"Conference Talk: Scaling Applications",
		"Product Launch Event",
		"Tech Meetup Highlights",
		"Interview with Tech Leaders",
		"Workshop: Cloud Deployment",
	},
	links.PlatformUnknown: {
		"Interesting Video Content",
		"Educational Tutorial",
		"Entertainment Stream",
		"Informative Presentation",
		"Creative Content",
	},
}

// SimulatedResolver выдумывает метаданные: реального запроса к платформам нет.
type SimulatedResolver struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewSimulatedResolver(seed uint64) *SimulatedResolver {
	return &SimulatedResolver{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (r *SimulatedResolver) Resolve(ctx context.Context, url string) (Metadata, error) {
	if err := ctx.Err(); err != nil {
		return Metadata{}, contextError(err)
	}

	titles, ok := sampleTitles[links.Platform(url)]
	if !ok {
		titles = sampleTitles[links.PlatformUnknown]
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return Metadata{
		Title:           titles[r.rnd.IntN(len(titles))],
		DurationSeconds: minDurationSeconds + r.rnd.IntN(durationSpread),
	}, nil
}

// contextError: отмена запроса — не ошибка загрузки.
func contextError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperr.Wrap(apperr.KindTimeout, "resolve video metadata", err)
	}
	return apperr.Wrap(apperr.KindQueue, "resolve video metadata", err)
}
