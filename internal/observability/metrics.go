// Package observability provides metrics and tracing for the application.
package observability

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bioainexus_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// CaptchaChallenges counts issued arithmetic challenges.
	CaptchaChallenges = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bioainexus_captcha_challenges_total",
		Help: "Total number of captcha challenges issued",
	})

	// CaptchaRejections counts comment submissions rejected by the captcha gate.
	CaptchaRejections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bioainexus_captcha_rejections_total",
		Help: "Total number of comment submissions rejected by the captcha",
	})

	// EngagementToggles counts like/bookmark toggles by kind and resulting state.
	EngagementToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bioainexus_engagement_toggles_total",
		Help: "Total number of like/bookmark toggles by kind and resulting state",
	}, []string{"kind", "state"})

	// SitemapRenders counts sitemap generations.
	SitemapRenders = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bioainexus_sitemap_renders_total",
		Help: "Total number of sitemap.xml renders",
	})
)

var (
	promOnce sync.Once
	promMW   *fiberprometheus.FiberPrometheus
)

// InitMetrics creates the Prometheus middleware for the Fiber app. The
// middleware registers collectors on the default registry, so it is built
// once and shared across server instances.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		promMW = fiberprometheus.New(serviceName)
	})
	return promMW
}
