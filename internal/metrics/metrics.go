// Package metrics exposes the gateway's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Verifications counts reference-number checks by outcome:
	// match, miss or error.
	Verifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reminisce_reference_verifications_total",
		Help: "Reference number verification attempts by outcome.",
	}, []string{"outcome"})

	// ImageUploads counts gated image batch submissions by outcome.
	ImageUploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reminisce_image_uploads_total",
		Help: "Gated image upload batches by outcome.",
	}, []string{"outcome"})

	// Reports counts gated report submissions by outcome.
	Reports = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reminisce_reports_total",
		Help: "Gated report submissions by outcome.",
	}, []string{"outcome"})
)
