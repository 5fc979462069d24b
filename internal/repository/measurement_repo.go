package repository

import (
	"sort"
	"strings"
	"time"

	"go-datamonitor/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MeasurementFilter narrows list and export queries. Zero fields are ignored.
type MeasurementFilter struct {
	UnitID    *uint
	From      *time.Time // inclusive
	To        *time.Time // inclusive
	Parameter string     // substring match
}

type MeasurementRepository interface {
	WithTx(tx *gorm.DB) MeasurementRepository
	Create(m *model.Measurement) error
	CreateInBatches(ms []model.Measurement, batchSize int) error
	Update(m *model.Measurement) error
	Delete(id uint) (bool, error)
	FindByID(id uint) (*model.Measurement, error)
	FindAll(filter MeasurementFilter) ([]model.Measurement, error)
	FindRecent(limit int, unitID *uint) ([]model.Measurement, error)
	ParameterNames(unitID *uint) ([]string, error)
	Count() (int64, error)

	GetStats(unitID *uint, since time.Time, topN int) (*MeasurementStats, error)
	GetDailyTrend(unitID *uint, parameter string, since time.Time) ([]TrendPoint, error)
	GetParameterAverages(unitID *uint) ([]ParameterAverage, error)
	GetUnitCounts() ([]UnitCount, error)
}

// MeasurementStats holds raw counts for the dashboard.
type MeasurementStats struct {
	Total         int64
	Valid         int64
	Recent        int64
	TopParameters []ParameterCount
}

// ParameterCount is one entry of the most recorded parameters.
type ParameterCount struct {
	ParameterName string `gorm:"column:parameter_name" json:"parameter_name"`
	Count         int64  `gorm:"column:total" json:"count"`
}

// TrendPoint is the daily average for the trend chart.
type TrendPoint struct {
	Date    string  `json:"date"`
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

// ParameterAverage is one bar of the average-by-parameter chart.
type ParameterAverage struct {
	ParameterName string  `gorm:"column:parameter_name" json:"parameter_name"`
	Average       float64 `gorm:"column:average" json:"average"`
	Count         int64   `gorm:"column:total" json:"count"`
}

// UnitCount is one slice of the count-by-unit chart.
type UnitCount struct {
	UnitID   uint   `gorm:"column:unit_id" json:"unit_id"`
	UnitName string `gorm:"column:unit_name" json:"unit_name"`
	Count    int64  `gorm:"column:total" json:"count"`
}

type measurementRepo struct {
	db *gorm.DB
}

func NewMeasurementRepo(db *gorm.DB) MeasurementRepository {
	return &measurementRepo{db}
}

func (r *measurementRepo) WithTx(tx *gorm.DB) MeasurementRepository {
	return &measurementRepo{tx}
}

func (r *measurementRepo) Create(m *model.Measurement) error {
	return r.db.Omit(clause.Associations).Create(m).Error
}

func (r *measurementRepo) CreateInBatches(ms []model.Measurement, batchSize int) error {
	if len(ms) == 0 {
		return nil
	}
	return r.db.Omit(clause.Associations).CreateInBatches(&ms, batchSize).Error
}

func (r *measurementRepo) Update(m *model.Measurement) error {
	return r.db.Omit(clause.Associations).Save(m).Error
}

func (r *measurementRepo) Delete(id uint) (bool, error) {
	res := r.db.Delete(&model.Measurement{}, id)
	return res.RowsAffected > 0, res.Error
}

func (r *measurementRepo) FindByID(id uint) (*model.Measurement, error) {
	var m model.Measurement
	if err := r.db.Preload("User").Preload("Unit").First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// FindAll returns matching measurements newest first.
func (r *measurementRepo) FindAll(filter MeasurementFilter) ([]model.Measurement, error) {
	var ms []model.Measurement
	q := r.scoped(filter.UnitID)
	if filter.From != nil {
		q = q.Where("recorded_at >= ?", filter.From.UTC())
	}
	if filter.To != nil {
		q = q.Where("recorded_at <= ?", filter.To.UTC())
	}
	if filter.Parameter != "" {
		q = q.Where(`parameter_name LIKE ? ESCAPE '\'`, "%"+escapeLike(filter.Parameter)+"%")
	}
	err := q.Preload("User").Preload("Unit").
		Order("recorded_at DESC, id DESC").
		Find(&ms).Error
	return ms, err
}

func (r *measurementRepo) FindRecent(limit int, unitID *uint) ([]model.Measurement, error) {
	var ms []model.Measurement
	err := r.scoped(unitID).Preload("User").Preload("Unit").
		Order("recorded_at DESC, id DESC").
		Limit(limit).
		Find(&ms).Error
	return ms, err
}

func (r *measurementRepo) ParameterNames(unitID *uint) ([]string, error) {
	var names []string
	err := r.scoped(unitID).Distinct("parameter_name").Order("parameter_name ASC").Pluck("parameter_name", &names).Error
	return names, err
}

func (r *measurementRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Measurement{}).Count(&count).Error
	return count, err
}

func (r *measurementRepo) GetStats(unitID *uint, since time.Time, topN int) (*MeasurementStats, error) {
	var stats MeasurementStats

	if err := r.scoped(unitID).Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := r.scoped(unitID).Where("is_valid = ?", true).Count(&stats.Valid).Error; err != nil {
		return nil, err
	}
	if err := r.scoped(unitID).Where("recorded_at >= ?", since.UTC()).Count(&stats.Recent).Error; err != nil {
		return nil, err
	}

	var counts []ParameterCount
	err := r.scoped(unitID).
		Select("parameter_name, COUNT(*) AS total").
		Group("parameter_name").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	stats.TopParameters = TopParameters(counts, topN)
	return &stats, nil
}

// TopParameters orders counts by count descending, ties by name in byte
// order regardless of database collation, and keeps the first n.
func TopParameters(counts []ParameterCount, n int) []ParameterCount {
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].ParameterName < counts[j].ParameterName
	})
	if n >= 0 && len(counts) > n {
		counts = counts[:n]
	}
	return counts
}

// GetDailyTrend aggregates per calendar day (UTC) since the given time.
// An empty parameter covers every parameter.
func (r *measurementRepo) GetDailyTrend(unitID *uint, parameter string, since time.Time) ([]TrendPoint, error) {
	results := []TrendPoint{}

	q := r.scoped(unitID).Where("recorded_at >= ?", since.UTC())
	if parameter != "" {
		q = q.Where("parameter_name = ?", parameter)
	}
	rows, err := q.
		Select("DATE(recorded_at) AS day, AVG(value) AS average, COUNT(*) AS total").
		Group("DATE(recorded_at)").
		Order("day ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var p TrendPoint
		var day string
		if err := rows.Scan(&day, &p.Average, &p.Count); err != nil {
			return nil, err
		}
		// postgres returns a full timestamp for DATE(), sqlite a plain date
		if len(day) > 10 {
			day = day[:10]
		}
		p.Date = day
		results = append(results, p)
	}
	return results, rows.Err()
}

func (r *measurementRepo) GetParameterAverages(unitID *uint) ([]ParameterAverage, error) {
	results := []ParameterAverage{}
	err := r.scoped(unitID).
		Select("parameter_name, AVG(value) AS average, COUNT(*) AS total").
		Group("parameter_name").
		Order("parameter_name ASC").
		Scan(&results).Error
	return results, err
}

func (r *measurementRepo) GetUnitCounts() ([]UnitCount, error) {
	results := []UnitCount{}
	err := r.db.Model(&model.Measurement{}).
		Select("units.id AS unit_id, units.name AS unit_name, COUNT(measurements.id) AS total").
		Joins("JOIN units ON units.id = measurements.unit_id").
		Group("units.id, units.name").
		Order("units.name ASC").
		Scan(&results).Error
	return results, err
}

func (r *measurementRepo) scoped(unitID *uint) *gorm.DB {
	q := r.db.Model(&model.Measurement{})
	if unitID != nil {
		q = q.Where("unit_id = ?", *unitID)
	}
	return q
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
