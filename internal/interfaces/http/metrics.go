package http

import (
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Contadores del procesador de movimientos, etiquetados por tipo.
var (
	movementsApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_movements_applied_total",
		Help: "Movimientos aplicados al ledger, por tipo.",
	}, []string{"type"})

	movementsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_movements_rejected_total",
		Help: "Movimientos rechazados, por tipo.",
	}, []string{"type"})
)

// MetricsHandler expone el registro Prometheus en formato de texto.
func MetricsHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
