package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks handler latency by route and status.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "oneday_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "route", "status"},
	)

	// Bookings counts booking attempts by result: booked, full,
	// profile_incomplete, cancelled, completed.
	Bookings = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oneday_bookings_total",
			Help: "Booking lifecycle events by result",
		},
		[]string{"result"},
	)

	CouponRedemptions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "oneday_coupon_redemptions_total",
		Help: "Coupons marked as used",
	})

	MembershipPurchases = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oneday_membership_purchases_total",
			Help: "Membership purchases by plan",
		},
		[]string{"plan"},
	)

	MatchOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oneday_match_outcomes_total",
			Help: "Confirmed selections by outcome",
		},
		[]string{"outcome"},
	)

	ChatMessages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oneday_chat_messages_total",
			Help: "Chat messages by sender",
		},
		[]string{"sender"},
	)

	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "oneday_active_sessions",
		Help: "Sessions currently held in memory",
	})
)

// RecordRequestDuration records the duration of one HTTP request.
func RecordRequestDuration(method, route, status string, seconds float64) {
	HTTPRequestDuration.WithLabelValues(method, route, status).Observe(seconds)
}
