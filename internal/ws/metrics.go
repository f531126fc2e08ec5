package ws

import "github.com/prometheus/client_golang/prometheus"

var (
	roomsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rps_rooms_created_total",
		Help: "Total rooms created",
	})
	roundsResolved = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rps_rounds_resolved_total",
		Help: "Total rounds resolved",
	})
	gamesFinished = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rps_games_finished_total",
		Help: "Total games played to completion",
	})
	activeRooms = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "rps_active_rooms",
		Help: "Rooms currently in the directory",
	})
)

func init() {
	prometheus.MustRegister(roomsCreated)
	prometheus.MustRegister(roundsResolved)
	prometheus.MustRegister(gamesFinished)
	prometheus.MustRegister(activeRooms)
}
