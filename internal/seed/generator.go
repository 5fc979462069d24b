// Package seed creates the default units and admin account and fills an
// empty store with synthetic measurements for demos.
package seed

import (
	"errors"
	"log"
	"math/rand"
	"sync"
	"time"

	"go-datamonitor/internal/metrics"
	"go-datamonitor/internal/model"
	"go-datamonitor/internal/repository"
	"go-datamonitor/internal/ws"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrNoAdmin = errors.New("seed: admin user not found")
	ErrNoUnits = errors.New("seed: no units found")
)

const (
	Days              = 30
	minReadingsPerDay = 3
	maxReadingsPerDay = 8
	notesChance       = 0.7
	invalidChance     = 0.05
	batchSize         = 500

	InvalidMessage = "Value outside normal range"
)

type Generator struct {
	measurements repository.MeasurementRepository
	units        repository.UnitRepository
	users        repository.UserRepository
	adminEmail   string
	events       ws.Publisher
	metrics      *metrics.Metrics

	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// NewGenerator draws every random value from rng, so a fixed seed gives
// the same data set for the same clock.
func NewGenerator(
	measurements repository.MeasurementRepository,
	units repository.UnitRepository,
	users repository.UserRepository,
	adminEmail string,
	rng *rand.Rand,
	now func() time.Time,
	events ws.Publisher,
	m *metrics.Metrics,
) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{
		measurements: measurements,
		units:        units,
		users:        users,
		adminEmail:   adminEmail,
		events:       events,
		metrics:      m,
		rng:          rng,
		now:          now,
	}
}

// Generate inserts 30 days of readings for every unit and returns how many
// rows were written. It does nothing when any measurement already exists.
func (g *Generator) Generate() (int, error) {
	// rand.Rand is not safe for concurrent use
	g.mu.Lock()
	defer g.mu.Unlock()

	existing, err := g.measurements.Count()
	if err != nil {
		return 0, err
	}
	if existing > 0 {
		log.Printf("Mock data already exists (%d measurements), skipping", existing)
		return 0, nil
	}

	admin, err := g.users.FindByEmail(g.adminEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNoAdmin
		}
		return 0, err
	}
	units, err := g.units.FindAll()
	if err != nil {
		return 0, err
	}
	if len(units) == 0 {
		return 0, ErrNoUnits
	}

	rows := g.build(admin, units)
	if err := g.measurements.CreateInBatches(rows, batchSize); err != nil {
		return 0, err
	}

	log.Printf("Seeded %d mock measurements", len(rows))
	g.metrics.Seeded(len(rows))
	if g.events != nil {
		g.events.Publish(ws.Event{
			Type:    "measurement",
			Action:  "seeded",
			Data:    map[string]int{"count": len(rows)},
			ActorID: model.SystemActor,
		})
	}
	return len(rows), nil
}

func (g *Generator) build(admin *model.User, units []model.Unit) []model.Measurement {
	var rows []model.Measurement
	start := g.now().UTC().AddDate(0, 0, -Days)

	for day := 0; day < Days; day++ {
		date := start.AddDate(0, 0, day)
		for _, unit := range units {
			templates := TemplatesFor(unit.Code)
			readings := minReadingsPerDay + g.rng.Intn(maxReadingsPerDay-minReadingsPerDay+1)
			for r := 0; r < readings; r++ {
				at := date.
					Add(time.Duration(g.rng.Intn(24)) * time.Hour).
					Add(time.Duration(g.rng.Intn(60)) * time.Minute)
				for _, t := range templates {
					rows = append(rows, g.reading(t, at, admin.ID, unit.ID))
				}
			}
		}
	}
	return rows
}

func (g *Generator) reading(t Template, at time.Time, userID uuid.UUID, unitID uint) model.Measurement {
	m := model.Measurement{
		ParameterName: t.Name,
		Value:         g.value(t.Name),
		UnitOfMeasure: t.Unit,
		Timestamp:     at,
		UserID:        userID,
		UnitID:        unitID,
		MinValue:      decimal.NewNullDecimal(t.Min),
		MaxValue:      decimal.NewNullDecimal(t.Max),
		Notes:         g.notes(),
		IsValid:       true,
	}
	if g.rng.Float64() < invalidChance {
		msg := InvalidMessage
		m.IsValid = false
		m.ValidationMessage = &msg
	}
	m.Stamp(model.SystemActor)
	return m
}

func (g *Generator) value(parameter string) decimal.Decimal {
	s, ok := valueSpreads[parameter]
	if !ok {
		s = defaultSpread
	}
	return decimal.NewFromFloat(s.low + g.rng.Float64()*s.width).Round(2)
}

func (g *Generator) notes() *string {
	if g.rng.Float64() >= notesChance {
		return nil
	}
	n := canned[g.rng.Intn(len(canned))]
	return &n
}
