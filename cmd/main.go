package main

import (
	"net/http"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/uyildiz/vehicle-maintenance/internal/auth"
	"github.com/uyildiz/vehicle-maintenance/internal/db"
	"github.com/uyildiz/vehicle-maintenance/internal/handlers"
	"github.com/uyildiz/vehicle-maintenance/internal/middleware"
	"github.com/uyildiz/vehicle-maintenance/internal/telemetry"
)

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// buildMux wires every route with auth and rate limiting applied.
func buildMux(authService *auth.Service, vehicles db.VehicleCollection, records db.RecordCollection, users db.UserCollection) http.Handler {
	authHandler := handlers.NewAuthHandler(authService, users)
	vehicleHandler := handlers.NewVehicleHandler(vehicles, records)
	recordHandler := handlers.NewRecordHandler(records, vehicles)
	reportHandler := handlers.NewReportHandler(vehicles, records)

	authMW := middleware.NewAuthMiddleware(authService)
	perm := authMW.RequirePermission

	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthHandler)
	mux.HandleFunc("/api/auth/login", authHandler.Login)
	mux.HandleFunc("/api/auth/register", authHandler.Register)

	mux.Handle("/api/vehicles", guard(perm, http.HandlerFunc(vehicleHandler.Collection), "view_vehicles", "manage_vehicles"))
	mux.Handle("/api/vehicles/", guard(perm, http.HandlerFunc(vehicleHandler.Item), "view_vehicles", "manage_vehicles"))
	mux.Handle("/api/records", guard(perm, http.HandlerFunc(recordHandler.Collection), "view_records", "manage_records"))
	mux.Handle("/api/records/", guard(perm, http.HandlerFunc(recordHandler.Item), "view_records", "manage_records"))
	mux.Handle("/api/reports/due", perm("view_reports")(http.HandlerFunc(reportHandler.Due)))
	mux.Handle("/api/reports/spend", perm("view_reports")(http.HandlerFunc(reportHandler.Spend)))
	mux.Handle("/api/reports/export", perm("export_reports")(http.HandlerFunc(reportHandler.Export)))

	rateLimiter := middleware.NewRateLimitMiddleware()
	return rateLimiter.RateLimit(300, 60)(authMW.Authenticate(mux))
}

// guard picks the read or write permission based on the request method.
func guard(perm func(string) func(http.Handler) http.Handler, next http.Handler, readAction, writeAction string) http.Handler {
	readGuarded := perm(readAction)(next)
	writeGuarded := perm(writeAction)(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			readGuarded.ServeHTTP(w, r)
			return
		}
		writeGuarded.ServeHTTP(w, r)
	})
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found, using environment as-is")
	}
	log.SetFormatter(&log.JSONFormatter{})

	client, err := db.ConnectMongo()
	if err != nil {
		log.WithError(err).Fatal("failed to connect to MongoDB")
	}
	log.Info("connected to MongoDB")

	database := db.Database(client)
	vehicles := &db.MongoVehicleCollection{Collection: database.Collection("vehicles")}
	records := &db.MongoRecordCollection{Collection: database.Collection("service_records")}
	users := &db.MongoUserCollection{Collection: database.Collection("users")}

	authService, err := auth.NewService()
	if err != nil {
		log.WithError(err).Fatal("failed to create auth service")
	}

	// Odometer ingest is optional; without a broker the API still serves.
	if cfg := telemetry.ConfigFromEnv(); cfg.Broker != "" {
		listener, err := telemetry.NewOdometerListener(cfg, vehicles)
		if err != nil {
			log.WithError(err).Error("odometer listener disabled")
		} else {
			defer listener.Close()
			log.WithField("broker", cfg.Broker).Info("odometer listener running")
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.WithField("port", port).Info("HTTP server listening")
	log.Fatal(http.ListenAndServe(":"+port, buildMux(authService, vehicles, records, users)))
}
