// Package metrics holds the process-wide Prometheus counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UpdatesTotal counts inbound Telegram updates.
	UpdatesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bot_updates_total",
		Help: "Number of Telegram updates processed.",
	})

	// HandlerErrorsTotal counts updates that ended in the generic error reply.
	HandlerErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bot_handler_errors_total",
		Help: "Number of updates whose handler returned an error.",
	})

	// PostsCreatedTotal counts published posts.
	PostsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bot_posts_created_total",
		Help: "Number of posts created.",
	})

	// SearchesTotal counts executed searches, full-text and title.
	SearchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bot_searches_total",
		Help: "Number of searches run.",
	})
)
