package main

import (
	"github.com/asbbic/membership/pkg/token"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) router() {
	r := s.Factory.Router

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(s.Factory.Middleware.LoggerMiddleware)

	r.Get("/healthz", s.Handlers.HealthCheckHandler)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/verify/{id}", s.Handlers.VerifyMember)

	r.Route("/api", func(r chi.Router) {
		r.Route("/members", func(r chi.Router) {
			r.Post("/", s.Handlers.CreateMember)

			r.Group(func(r chi.Router) {
				r.Use(s.Factory.Middleware.RequireAuth)
				r.Use(s.Factory.Middleware.RequireRole(token.RoleAdmin))

				r.Get("/", s.Handlers.ListMembers)
				r.Get("/{id}", s.Handlers.GetMember)
				r.Get("/{id}/photo", s.Handlers.MemberPhoto)
				r.Patch("/{id}/status", s.Handlers.UpdateMemberStatus)
				r.Delete("/{id}", s.Handlers.DeleteMember)
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", s.Handlers.Login)
			r.Post("/logout", s.Handlers.Logout)

			r.Group(func(r chi.Router) {
				r.Use(s.Factory.Middleware.RequireAuth)
				r.Use(s.Factory.Middleware.RequireRole(token.RoleAdmin))

				r.Get("/dashboard/stats", s.Handlers.DashboardStats)
				r.Get("/dashboard/recent", s.Handlers.RecentMembers)
				r.Get("/members/export", s.Handlers.ExportMembersCSV)
				r.Get("/members/export.xlsx", s.Handlers.ExportMembersXLSX)
			})
		})
	})
}
