package service

import (
	"context"
	"fmt"

	"github.com/carebridge/hms/internal/domain"
	"github.com/carebridge/hms/internal/domain/appointment"
	"github.com/carebridge/hms/internal/domain/billing"
	"github.com/carebridge/hms/internal/domain/doctor"
	"github.com/carebridge/hms/internal/domain/patient"
	"go.uber.org/zap"
)

const dashboardCacheKey = "dashboard_stats"

// DashboardStats is the admin landing-page aggregate.
type DashboardStats struct {
	Doctors      int64                    `json:"doctors"`
	Patients     int64                    `json:"patients"`
	Appointments appointment.StatusCounts `json:"appointments"`
	Revenue      billing.RevenueSummary   `json:"revenue"`
}

// StatsCache is the slice of the cache the dashboard needs. Reads that fail
// are reported as misses.
type StatsCache interface {
	GetJSON(ctx context.Context, key string, dest any) bool
	SetJSON(ctx context.Context, key string, v any) error
}

type DashboardService struct {
	doctorRepo      doctor.Repository
	patientRepo     patient.Repository
	appointmentRepo appointment.Repository
	invoiceRepo     billing.Repository
	cache           StatsCache
	log             *zap.Logger
}

func NewDashboardService(
	doctorRepo doctor.Repository,
	patientRepo patient.Repository,
	appointmentRepo appointment.Repository,
	invoiceRepo billing.Repository,
	cache StatsCache,
	log *zap.Logger,
) *DashboardService {
	return &DashboardService{
		doctorRepo:      doctorRepo,
		patientRepo:     patientRepo,
		appointmentRepo: appointmentRepo,
		invoiceRepo:     invoiceRepo,
		cache:           cache,
		log:             log,
	}
}

// Stats returns the admin dashboard aggregate, served from cache when fresh.
// A stale window up to the cache TTL is acceptable. Returns whether the
// result came from cache so callers can account for it.
func (s *DashboardService) Stats(ctx context.Context, claims *domain.Claims) (*DashboardStats, bool, error) {
	if claims.Role != domain.RoleAdmin {
		return nil, false, ErrForbidden
	}

	var cached DashboardStats
	if s.cache.GetJSON(ctx, dashboardCacheKey, &cached) {
		return &cached, true, nil
	}

	stats, err := s.compute(ctx, claims)
	if err != nil {
		return nil, false, err
	}

	if err := s.cache.SetJSON(ctx, dashboardCacheKey, stats); err != nil {
		// Serving uncached stats beats failing the request.
		s.log.Warn("failed to cache dashboard stats", zap.Error(err))
	}

	return stats, false, nil
}

func (s *DashboardService) compute(ctx context.Context, claims *domain.Claims) (*DashboardStats, error) {
	doctors, err := s.doctorRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting doctors: %w", err)
	}

	patients, err := s.patientRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting patients: %w", err)
	}

	counts, err := s.appointmentRepo.CountByStatus(ctx, domain.ScopeFor(claims))
	if err != nil {
		return nil, fmt.Errorf("counting appointments: %w", err)
	}

	revenue, err := s.invoiceRepo.Summarize(ctx)
	if err != nil {
		return nil, fmt.Errorf("summarizing revenue: %w", err)
	}

	return &DashboardStats{
		Doctors:      doctors,
		Patients:     patients,
		Appointments: *counts,
		Revenue:      *revenue,
	}, nil
}
