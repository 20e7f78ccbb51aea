package wire

import (
	"net/http"

	"wedding-marketplace/internal/adaptor"
	"wedding-marketplace/internal/data/repository"
	"wedding-marketplace/internal/usecase"
	"wedding-marketplace/pkg/middleware"
	"wedding-marketplace/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds the service and handler graph and mounts all routes.
func Wiring(repo *repository.Repository, gateway usecase.PaymentGateway, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, gateway, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, config, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	wireAuth(r, handler.Auth, repo, logger)
	wireVendor(r, handler.Vendor, repo, logger)
	wireBooking(r, handler.Booking, repo, logger)
	wirePayment(r, handler.Payment, repo, logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
