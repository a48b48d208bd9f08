package middleware

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RLRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limiter_requests_total",
			Help: "Total requests seen by the rate limiter",
		},
		[]string{"endpoint"},
	)
	RLBlocked = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limiter_blocked_total",
			Help: "Total requests blocked by the rate limiter",
		},
		[]string{"endpoint"},
	)
	GuestTokens = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "hub_guest_tokens_total",
			Help: "Guest identities minted",
		},
	)
	RoomsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hub_rooms_created_total",
			Help: "Rooms created since startup",
		},
		[]string{"game"},
	)
	PlayersJoined = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "hub_players_joined_total",
			Help: "Successful room joins",
		},
	)
	ActionsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hub_actions_total",
			Help: "Game actions accepted by the engine",
		},
		[]string{"kind"},
	)
)

func init() {
	prometheus.MustRegister(RLRequests)
	prometheus.MustRegister(RLBlocked)
	prometheus.MustRegister(GuestTokens)
	prometheus.MustRegister(RoomsCreated)
	prometheus.MustRegister(PlayersJoined)
	prometheus.MustRegister(ActionsProcessed)
}

// RegisterRoomsGauge exposes the live room count. Called once at startup
// with the registry's counter.
func RegisterRoomsGauge(count func() int) {
	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "hub_rooms_active",
			Help: "Rooms currently alive in the registry",
		},
		func() float64 { return float64(count()) },
	))
}
