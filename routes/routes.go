package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"thari.in/powerloom/handlers"
	"thari.in/powerloom/middleware"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes() http.Handler {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	// =====================================================
	// Public Routes (no authentication)
	// =====================================================
	api.HandleFunc("/auth/login", handlers.Login).Methods("POST")

	api.HandleFunc("/dashboard/overview", handlers.GetDashboardOverview).Methods("GET")
	api.HandleFunc("/analytics/production-trend", handlers.GetProductionTrend).Methods("GET")
	api.HandleFunc("/analytics/fabric-distribution", handlers.GetFabricDistribution).Methods("GET")
	api.HandleFunc("/analytics/machine-quality", handlers.GetMachineQuality).Methods("GET")
	api.HandleFunc("/analytics/workshop-machine-production", handlers.GetWorkshopMachineProduction).Methods("GET")

	api.HandleFunc("/reports/beam-details", handlers.GetBeamReport).Methods("GET")
	api.HandleFunc("/reports/beam-details/export", handlers.ExportBeamReport).Methods("GET")
	api.HandleFunc("/reports/delivery-details", handlers.GetDeliveryReport).Methods("GET")
	api.HandleFunc("/reports/delivery-details/export", handlers.ExportDeliveryReport).Methods("GET")

	api.HandleFunc("/beams", handlers.GetAllBeams).Methods("GET")
	api.HandleFunc("/beams/{id}", handlers.GetBeamDetails).Methods("GET")
	api.HandleFunc("/workshops", handlers.GetAllWorkshops).Methods("GET")
	api.HandleFunc("/workshops/{id}/machines", handlers.GetWorkshopMachines).Methods("GET")
	api.HandleFunc("/machines/all", handlers.GetAllMachines).Methods("GET")
	api.HandleFunc("/customers", handlers.GetAllCustomers).Methods("GET")
	api.HandleFunc("/design-presets", handlers.GetDesignPresets).Methods("GET")

	// =====================================================
	// Protected Routes (require JWT authentication)
	// =====================================================
	protect := func(h http.HandlerFunc) http.Handler {
		return middleware.JWTMiddleware(h)
	}

	api.Handle("/auth/reset-password", protect(handlers.ResetPassword)).Methods("POST")
	api.Handle("/admin/reset-database", protect(handlers.ResetDatabase)).Methods("POST")

	api.Handle("/beams/start", protect(handlers.StartBeam)).Methods("POST")
	api.Handle("/beams/{id}/end", protect(handlers.EndBeam)).Methods("POST")
	api.Handle("/beams/{id}", protect(handlers.DeleteBeam)).Methods("DELETE")

	api.Handle("/deliveries", protect(handlers.AddDelivery)).Methods("POST")
	api.Handle("/deliveries/add", protect(handlers.AddDelivery)).Methods("POST")
	api.Handle("/deliveries/{id}", protect(handlers.DeleteDelivery)).Methods("DELETE")

	api.Handle("/workshops", protect(handlers.CreateWorkshop)).Methods("POST")
	api.Handle("/workshops/{id}", protect(handlers.DeleteWorkshop)).Methods("DELETE")

	api.Handle("/machines", protect(handlers.CreateMachine)).Methods("POST")
	api.Handle("/machines/{id}", protect(handlers.DeleteMachine)).Methods("DELETE")

	api.Handle("/customers", protect(handlers.CreateCustomer)).Methods("POST")
	api.Handle("/customers/{id}/status", protect(handlers.ToggleCustomerStatus)).Methods("PUT")
	api.Handle("/customers/{id}", protect(handlers.DeleteCustomer)).Methods("DELETE")

	api.Handle("/design-presets", protect(handlers.CreateDesignPreset)).Methods("POST")
	api.Handle("/design-presets/{id}", protect(handlers.DeleteDesignPreset)).Methods("DELETE")

	return r
}
