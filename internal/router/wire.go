package router

import (
	"time"

	"github.com/jwalitptl/clinic-api/internal/handler/category"
	"github.com/jwalitptl/clinic-api/internal/handler/disease"
	"github.com/jwalitptl/clinic-api/internal/handler/health"
	"github.com/jwalitptl/clinic-api/internal/handler/healthcheck"
	"github.com/jwalitptl/clinic-api/internal/handler/medicine"
	"github.com/jwalitptl/clinic-api/internal/handler/patient"
	"github.com/jwalitptl/clinic-api/internal/handler/payment"
	"github.com/jwalitptl/clinic-api/internal/handler/prescription"
	"github.com/jwalitptl/clinic-api/internal/handler/prometheus"
	"github.com/jwalitptl/clinic-api/internal/handler/user"
	"github.com/jwalitptl/clinic-api/internal/middleware"
	"github.com/jwalitptl/clinic-api/internal/repository"
	categoryService "github.com/jwalitptl/clinic-api/internal/service/category"
	diseaseService "github.com/jwalitptl/clinic-api/internal/service/disease"
	"github.com/jwalitptl/clinic-api/internal/service/event"
	healthCheckService "github.com/jwalitptl/clinic-api/internal/service/healthcheck"
	medicineService "github.com/jwalitptl/clinic-api/internal/service/medicine"
	patientService "github.com/jwalitptl/clinic-api/internal/service/patient"
	paymentService "github.com/jwalitptl/clinic-api/internal/service/payment"
	prescriptionService "github.com/jwalitptl/clinic-api/internal/service/prescription"
	userService "github.com/jwalitptl/clinic-api/internal/service/user"
	"github.com/jwalitptl/clinic-api/pkg/auth"
	"github.com/jwalitptl/clinic-api/pkg/metrics"
	"github.com/jwalitptl/clinic-api/pkg/security"
	"github.com/jwalitptl/clinic-api/pkg/validator"
)

// Dependencies are the shared pieces every resource service is built from
type Dependencies struct {
	Store       *repository.Store
	Validator   *validator.Validator
	Events      event.Publisher
	Hasher      security.PasswordHasher
	Tokens      auth.JWTService
	TokenTTL    time.Duration
	Metrics     *metrics.Metrics
	RequireAuth bool
}

// Build wires services and handlers for every resource and registers their routes
func Build(deps Dependencies, config RouterConfig) *Router {
	store, v, events := deps.Store, deps.Validator, deps.Events

	users := userService.NewService(store, v, events, deps.Hasher, deps.Tokens, deps.TokenTTL)

	resources := []Handler{
		patient.NewHandler(patientService.NewService(store, v, events)),
		category.NewHandler(categoryService.NewService(store, v, events)),
		medicine.NewHandler(medicineService.NewService(store, v, events)),
		disease.NewHandler(diseaseService.NewService(store, v, events)),
		healthcheck.NewHandler(healthCheckService.NewService(store, v, events)),
		prescription.NewHandler(prescriptionService.NewService(store, v, events)),
		prescription.NewLineItemHandler(prescriptionService.NewLineItemService(store, v, events)),
		payment.NewHandler(paymentService.NewService(store, v, events)),
	}

	var authMiddleware *middleware.AuthMiddleware
	if deps.RequireAuth {
		authMiddleware = middleware.NewAuthMiddleware(deps.Tokens)
	}

	r := NewRouter(
		authMiddleware,
		health.NewHandler(store.Health),
		prometheus.New(deps.Metrics),
		[]PublicHandler{user.NewHandler(users)},
		resources,
		config,
	)
	r.Setup()
	return r
}
