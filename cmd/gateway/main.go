package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	api "github.com/autocheck-dev/autocheck/internal/api/http"
	"github.com/autocheck-dev/autocheck/internal/audit"
	auth "github.com/autocheck-dev/autocheck/internal/auth/middleware"
	"github.com/autocheck-dev/autocheck/internal/checklist"
	"github.com/autocheck-dev/autocheck/internal/config"
	"github.com/autocheck-dev/autocheck/internal/db"
	"github.com/autocheck-dev/autocheck/internal/inspection"
	"github.com/autocheck-dev/autocheck/internal/mechanic"
	"github.com/autocheck-dev/autocheck/internal/notify"
	"github.com/autocheck-dev/autocheck/internal/rbac"
	"github.com/autocheck-dev/autocheck/internal/session"
	"github.com/autocheck-dev/autocheck/internal/storage"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}

	inspections := inspection.NewSQLStore(dbh, cfg.DBDriver)
	mechanics := mechanic.NewStore(dbh)
	events := audit.NewEventRepo(dbh, "")
	sessions := session.NewManager()
	hook := notify.NewWebhook(cfg.WebhookURL, cfg.WebhookTimeout)

	registry := checklist.BuiltinRegistry()

	bs, err := storage.NewFSStore(cfg.BlobBasePath)
	if err != nil {
		log.Fatalf("blob store: %v", err)
	}

	if n, err := api.ReloadChecklists(registry, bs); err != nil {
		log.Fatalf("reload checklists: %v", err)
	} else if n > 0 {
		log.Printf("reloaded %d stored checklist(s)", n)
	}

	authSvc := auth.NewAuthService(cfg.AuthSecret)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	origins := cfg.CORSOriginsOffline
	if cfg.Mode == config.ModeOnline {
		origins = cfg.CORSOriginsOnline
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/login", auth.MechanicLoginHandler(authSvc, mechanics))
	r.Post("/auth/admin/login", auth.AdminLoginHandler(authSvc, cfg.AdminUser, cfg.AdminPassHash))

	// assets routes (protected)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))
		pr.Use(auth.RequireActiveMechanic(dbh))
		pr.Route("/assets", func(ar chi.Router) {
			api.MountAssets(ar, bs, sessions)
		})
	})

	// Protected API (JWT → role in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))
		pr.Use(auth.RequireActiveMechanic(dbh))

		pr.With(rbac.Require("checklist:view")).
			Get("/checklists", api.ListChecklistsHandler(registry))
		pr.With(rbac.Require("checklist:view")).
			Get("/checklists/{checklistID}", api.GetChecklistHandler(registry))
		pr.With(rbac.Require("checklist:create")).
			Post("/checklists", api.UploadChecklistHandler(registry, bs))

		// Wizard flow
		pr.With(rbac.Require("wizard:start")).
			Post("/wizard/start", api.StartWizardHandler(registry, sessions))
		pr.With(rbac.Require("wizard:step")).
			Get("/wizard/{sessionID}", api.WizardStateHandler(sessions))
		pr.With(rbac.Require("wizard:step")).
			Post("/wizard/{sessionID}/begin", api.BeginWizardHandler(sessions))
		pr.With(rbac.Require("wizard:step")).
			Post("/wizard/{sessionID}/next", api.NextWizardHandler(sessions))
		pr.With(rbac.Require("wizard:step")).
			Post("/wizard/{sessionID}/back", api.BackWizardHandler(sessions))
		pr.With(rbac.Require("wizard:step")).
			Post("/wizard/{sessionID}/cancel", api.CancelWizardHandler(sessions))
		pr.With(rbac.Require("wizard:step")).
			Post("/wizard/{sessionID}/submit", api.SubmitWizardHandler(sessions, inspections, events, hook))

		// Inspection records
		pr.With(rbac.RequireAny("inspection:view-own", "inspection:view-all")).
			Get("/inspections", api.ListInspectionsHandler(inspections))
		pr.With(rbac.RequireAny("inspection:view-own", "inspection:view-all")).
			Get("/inspections/{inspectionID}", api.GetInspectionHandler(inspections))
		pr.With(rbac.Require("inspection:delete")).
			Delete("/inspections/{inspectionID}", api.DeleteInspectionHandler(inspections, bs, events))

		// Mechanic management (admin)
		pr.With(rbac.Require("mechanic:manage")).
			Get("/mechanics", api.ListMechanicsHandler(mechanics))
		pr.With(rbac.Require("mechanic:manage")).
			Post("/mechanics", api.CreateMechanicHandler(mechanics, events))
		pr.With(rbac.Require("mechanic:manage")).
			Put("/mechanics/{mechanicID}", api.UpdateMechanicHandler(mechanics))
		pr.With(rbac.Require("mechanic:manage")).
			Post("/mechanics/{mechanicID}/pin", api.SetMechanicPINHandler(mechanics))
		pr.With(rbac.Require("mechanic:manage")).
			Post("/mechanics/{mechanicID}/active", api.SetMechanicActiveHandler(mechanics, events))

		// Admin: storage and audit
		pr.With(rbac.Require("storage:manage")).
			Get("/admin/storage/info", api.StorageInfoHandler(bs))
		pr.With(rbac.Require("storage:manage")).
			Post("/admin/storage/cleanup", api.StorageCleanupHandler(bs, inspections, sessions))
		pr.With(rbac.Require("audit:view")).
			Get("/admin/audit", api.AuditSearchHandler(events))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (mode=%s, db=%s)", cfg.HTTPAddr, cfg.Mode, cfg.DBDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
