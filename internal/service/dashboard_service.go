package service

import (
	"math"
	"time"

	"go-datamonitor/internal/repository"
)

const (
	topParameterCount = 5
	recentWindow      = 24 * time.Hour

	DefaultTrendDays = 30
	MaxTrendDays     = 365
)

type DashboardService interface {
	GetStats(unitID *uint) (*DashboardStats, error)
	GetTrend(unitID *uint, parameter string, days int) ([]repository.TrendPoint, error)
	GetParameterAverages(unitID *uint) ([]repository.ParameterAverage, error)
	GetUnitCounts() ([]repository.UnitCount, error)
}

type DashboardStats struct {
	TotalMeasurements   int64                       `json:"total_measurements"`
	ValidMeasurements   int64                       `json:"valid_measurements"`
	InvalidMeasurements int64                       `json:"invalid_measurements"`
	RecentMeasurements  int64                       `json:"recent_measurements"` // last 24h
	ValidationRate      float64                     `json:"validation_rate"`     // percent, 2 dp
	TopParameters       []repository.ParameterCount `json:"top_parameters"`
	GeneratedAt         time.Time                   `json:"generated_at"`
}

type dashboardService struct {
	repo repository.MeasurementRepository
	now  func() time.Time
}

// NewDashboardService uses now as the clock; nil means time.Now.
func NewDashboardService(repo repository.MeasurementRepository, now func() time.Time) DashboardService {
	if now == nil {
		now = time.Now
	}
	return &dashboardService{repo: repo, now: now}
}

func (s *dashboardService) GetStats(unitID *uint) (*DashboardStats, error) {
	now := s.now().UTC()
	raw, err := s.repo.GetStats(unitID, now.Add(-recentWindow), topParameterCount)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		TotalMeasurements:   raw.Total,
		ValidMeasurements:   raw.Valid,
		InvalidMeasurements: raw.Total - raw.Valid,
		RecentMeasurements:  raw.Recent,
		ValidationRate:      ValidationRate(raw.Valid, raw.Total),
		TopParameters:       raw.TopParameters,
		GeneratedAt:         now,
	}
	if stats.TopParameters == nil {
		stats.TopParameters = []repository.ParameterCount{}
	}
	return stats, nil
}

// ValidationRate is valid/total as a percentage rounded half away from zero
// to two decimals, or 0 when total is 0.
func ValidationRate(valid, total int64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(valid)/float64(total)*100*100) / 100
}

func (s *dashboardService) GetTrend(unitID *uint, parameter string, days int) ([]repository.TrendPoint, error) {
	if days <= 0 {
		days = DefaultTrendDays
	}
	if days > MaxTrendDays {
		days = MaxTrendDays
	}
	since := s.now().UTC().AddDate(0, 0, -days)
	return s.repo.GetDailyTrend(unitID, parameter, since)
}

func (s *dashboardService) GetParameterAverages(unitID *uint) ([]repository.ParameterAverage, error) {
	return s.repo.GetParameterAverages(unitID)
}

func (s *dashboardService) GetUnitCounts() ([]repository.UnitCount, error) {
	return s.repo.GetUnitCounts()
}
