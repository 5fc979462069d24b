package repository

import (
	"testing"
	"time"

	"go-datamonitor/internal/testutil"

	"gorm.io/gorm"
)

type fixture struct {
	db      *gorm.DB
	repo    MeasurementRepository
	unitA   uint
	unitB   uint
	base    time.Time
	created []uint
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	a := testutil.CreateUnit(t, db, "PROC-A", "Process A")
	b := testutil.CreateUnit(t, db, "QC-LAB", "Quality Lab")
	user := testutil.CreateUser(t, db, "eng@example.com", &a.ID)

	f := &fixture{
		db:    db,
		repo:  NewMeasurementRepo(db),
		unitA: a.ID,
		unitB: b.ID,
		base:  time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
	}
	rows := []struct {
		unit  uint
		param string
		value string
		valid bool
		at    time.Time
	}{
		{a.ID, "Temperature", "10", true, f.base.Add(-48 * time.Hour)},
		{a.ID, "Temperature", "20", true, f.base.Add(-47 * time.Hour)},
		{a.ID, "Pressure", "2.5", false, f.base.Add(-1 * time.Hour)},
		{b.ID, "pH Level", "7", true, f.base},
		{b.ID, "Flow_Rate", "3", true, f.base},
	}
	for _, r := range rows {
		m := testutil.CreateMeasurement(t, db, user.ID, r.unit, r.param, r.value, r.valid, r.at)
		f.created = append(f.created, m.ID)
	}
	return f
}

func TestMeasurementRepoFindAllNewestFirst(t *testing.T) {
	f := newFixture(t)

	ms, err := f.repo.FindAll(MeasurementFilter{})
	if err != nil {
		t.Fatalf("find all failed: %v", err)
	}
	if len(ms) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(ms))
	}
	// same timestamp: higher id first
	if ms[0].ID != f.created[4] || ms[1].ID != f.created[3] {
		t.Fatalf("expected id tie-break, got %d, %d", ms[0].ID, ms[1].ID)
	}
	if ms[4].ID != f.created[0] {
		t.Fatalf("expected oldest last, got %d", ms[4].ID)
	}
	if ms[0].User == nil || ms[0].Unit == nil {
		t.Fatalf("expected user and unit preloaded")
	}
}

func TestMeasurementRepoFindAllFilters(t *testing.T) {
	f := newFixture(t)

	from := f.base.Add(-47 * time.Hour)
	to := f.base.Add(-1 * time.Hour)
	ms, err := f.repo.FindAll(MeasurementFilter{From: &from, To: &to})
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if len(ms) != 2 {
		t.Fatalf("expected inclusive range to match 2 rows, got %d", len(ms))
	}

	ms, err = f.repo.FindAll(MeasurementFilter{UnitID: &f.unitB})
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if len(ms) != 2 {
		t.Fatalf("expected 2 rows for unit B, got %d", len(ms))
	}

	ms, err = f.repo.FindAll(MeasurementFilter{Parameter: "emper"})
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if len(ms) != 2 {
		t.Fatalf("expected 2 temperature rows, got %d", len(ms))
	}

	// underscore is literal, not a wildcard
	ms, err = f.repo.FindAll(MeasurementFilter{Parameter: "w_R"})
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if len(ms) != 1 || ms[0].ParameterName != "Flow_Rate" {
		t.Fatalf("expected only Flow_Rate, got %d rows", len(ms))
	}
}

func TestMeasurementRepoRecentAndParameterNames(t *testing.T) {
	f := newFixture(t)

	recent, err := f.repo.FindRecent(2, nil)
	if err != nil {
		t.Fatalf("recent failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(recent))
	}

	names, err := f.repo.ParameterNames(&f.unitA)
	if err != nil {
		t.Fatalf("parameter names failed: %v", err)
	}
	if len(names) != 2 || names[0] != "Pressure" || names[1] != "Temperature" {
		t.Fatalf("unexpected names: %v", names)
	}
}

func TestMeasurementRepoDelete(t *testing.T) {
	f := newFixture(t)

	deleted, err := f.repo.Delete(f.created[0])
	if err != nil || !deleted {
		t.Fatalf("expected delete, got %v %v", deleted, err)
	}
	deleted, err = f.repo.Delete(f.created[0])
	if err != nil || deleted {
		t.Fatalf("expected second delete to report false, got %v %v", deleted, err)
	}
}

func TestMeasurementRepoStats(t *testing.T) {
	f := newFixture(t)

	stats, err := f.repo.GetStats(nil, f.base.Add(-24*time.Hour), 5)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.Total != 5 || stats.Valid != 4 || stats.Recent != 3 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if len(stats.TopParameters) != 4 {
		t.Fatalf("expected 4 parameters, got %d", len(stats.TopParameters))
	}
	want := []string{"Temperature", "Flow_Rate", "Pressure", "pH Level"}
	for i, name := range want {
		if stats.TopParameters[i].ParameterName != name {
			t.Fatalf("top[%d] = %q, want %q", i, stats.TopParameters[i].ParameterName, name)
		}
	}
	if stats.TopParameters[0].Count != 2 {
		t.Fatalf("expected Temperature count 2, got %d", stats.TopParameters[0].Count)
	}

	scoped, err := f.repo.GetStats(&f.unitB, f.base.Add(-24*time.Hour), 1)
	if err != nil {
		t.Fatalf("scoped stats failed: %v", err)
	}
	if scoped.Total != 2 || len(scoped.TopParameters) != 1 || scoped.TopParameters[0].ParameterName != "Flow_Rate" {
		t.Fatalf("unexpected scoped stats: %+v", scoped)
	}
}

func TestMeasurementRepoChartSeries(t *testing.T) {
	f := newFixture(t)

	trend, err := f.repo.GetDailyTrend(nil, "Temperature", f.base.Add(-72*time.Hour))
	if err != nil {
		t.Fatalf("trend failed: %v", err)
	}
	if len(trend) != 1 || trend[0].Date != "2026-03-08" || trend[0].Average != 15 || trend[0].Count != 2 {
		t.Fatalf("unexpected trend: %+v", trend)
	}

	avgs, err := f.repo.GetParameterAverages(&f.unitA)
	if err != nil {
		t.Fatalf("averages failed: %v", err)
	}
	if len(avgs) != 2 || avgs[0].ParameterName != "Pressure" || avgs[0].Average != 2.5 || avgs[1].Average != 15 {
		t.Fatalf("unexpected averages: %+v", avgs)
	}

	counts, err := f.repo.GetUnitCounts()
	if err != nil {
		t.Fatalf("unit counts failed: %v", err)
	}
	if len(counts) != 2 || counts[0].UnitName != "Process A" || counts[0].Count != 3 || counts[1].Count != 2 {
		t.Fatalf("unexpected unit counts: %+v", counts)
	}
}

func TestTopParametersTiesInByteOrder(t *testing.T) {
	counts := []ParameterCount{
		{ParameterName: "pH Level", Count: 2},
		{ParameterName: "Pressure", Count: 2},
		{ParameterName: "flow", Count: 5},
		{ParameterName: "Zinc", Count: 2},
		{ParameterName: "Alpha", Count: 1},
	}

	got := TopParameters(counts, 4)
	want := []string{"flow", "Pressure", "Zinc", "pH Level"}
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %+v", len(want), got)
	}
	for i, name := range want {
		if got[i].ParameterName != name {
			t.Fatalf("position %d: expected %s, got %+v", i, name, got)
		}
	}

	if all := TopParameters(nil, 5); len(all) != 0 {
		t.Fatalf("expected empty result, got %+v", all)
	}
}
