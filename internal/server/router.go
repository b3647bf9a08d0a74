package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	ordercontroller "saajhamandi/internal/order/controller"
	"saajhamandi/internal/product"
	voicecontroller "saajhamandi/internal/voiceorder/controller"
)

// Handlers groups the controllers mounted under /api/v1.
type Handlers struct {
	Products    *product.Controller
	VoiceOrders *voicecontroller.VoiceOrderController
	Orders      *ordercontroller.OrderController
	Health      http.Handler
}

// NewRouter builds the chi router. Global middlewares run for every route;
// the voice-session routes additionally pass through sessionMiddlewares.
func NewRouter(h Handlers, sessionMiddlewares []func(http.Handler) http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	for _, mw := range middlewares {
		r.Use(mw)
	}

	if h.Health != nil {
		r.Method(http.MethodGet, "/health", h.Health)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", h.Products.HandleListProducts)
		r.Get("/products/{name}", h.Products.HandleGetProduct)

		r.Route("/voice-sessions", func(r chi.Router) {
			for _, mw := range sessionMiddlewares {
				r.Use(mw)
			}

			vc := h.VoiceOrders
			r.Post("/", vc.CreateSession)
			r.Route("/{sessionId}", func(r chi.Router) {
				r.Get("/", vc.GetSession)
				r.Post("/recording", vc.StartRecording)
				r.Delete("/recording", vc.CancelRecording)
				r.Post("/transcript", vc.SubmitTranscript)
				r.Post("/capture-error", vc.ReportCaptureError)
				r.Post("/back", vc.Back)
				r.Post("/checkout", vc.Checkout)
				r.Put("/payment-method", vc.SelectPaymentMethod)
				r.Post("/payment", vc.SubmitPayment)
				r.Post("/restart", vc.Restart)
			})
		})

		r.Get("/orders", h.Orders.ListOrders)
		r.Get("/orders/{orderNumber}", h.Orders.GetOrder)
	})

	return r
}
