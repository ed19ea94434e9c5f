package fixture

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
	"time"

	"github.com/tsinsights/timesheet_insights_app/internal/core/domain"
	"github.com/tsinsights/timesheet_insights_app/internal/core/ports/upstream"
)

var (
	projects  = []string{"Website Redesign", "Mobile App", "Data Migration", "Internal Tools", "Client Portal"}
	employees = []string{"Aisha Khan", "Ben Carter", "Chloe Davis", "Dev Patel", "Elena Rossi"}
	jobs      = []string{"Development", "Design", "Testing", "Meetings", ""}
	clients   = []string{"Acme Corp", "Globex", "Initech"}
)

// Generator produces synthetic timesheet records for environments without a
// linked upstream. Output is deterministic for a fixed (user, interval) so
// repeated syncs over the same window are idempotent.
type Generator struct{}

// NewGenerator creates a fixture record generator.
func NewGenerator() *Generator {
	return &Generator{}
}

var _ upstream.RecordSource = (*Generator)(nil)

// Name implements upstream.RecordSource.
func (g *Generator) Name() string {
	return upstream.SourceFixture
}

// FetchRecords implements upstream.RecordSource.
func (g *Generator) FetchRecords(_ context.Context, userID string, rng domain.DateRange) ([]domain.RawTimesheetRecord, error) {
	rnd := rand.New(rand.NewSource(seedFor(userID, rng)))

	var records []domain.RawTimesheetRecord
	for day := rng.Start; !day.After(rng.End); day = day.AddDate(0, 0, 1) {
		// Weekends are left empty to keep the charts plausible.
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}
		count := 1 + rnd.Intn(3)
		for i := 0; i < count; i++ {
			billable := quarterHours(rnd, 1, 6)
			nonBillable := quarterHours(rnd, 0, 2)
			records = append(records, domain.RawTimesheetRecord{
				RecordID:         fmt.Sprintf("fx-%s-%d", day.Format("20060102"), i),
				WorkDate:         day,
				ProjectName:      projects[rnd.Intn(len(projects))],
				EmployeeName:     employees[rnd.Intn(len(employees))],
				JobName:          jobs[rnd.Intn(len(jobs))],
				ClientName:       clients[rnd.Intn(len(clients))],
				BillableHours:    billable,
				NonBillableHours: nonBillable,
				TotalHours:       billable + nonBillable,
				ApprovalStatus:   "approved",
				Notes:            "generated fixture record",
			})
		}
	}
	return records, nil
}

func seedFor(userID string, rng domain.DateRange) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(userID))
	_, _ = h.Write([]byte(rng.Start.Format("2006-01-02")))
	_, _ = h.Write([]byte(rng.End.Format("2006-01-02")))
	return int64(h.Sum64())
}

// quarterHours returns a value in [min, max] rounded to quarter hours.
func quarterHours(rnd *rand.Rand, min, max int) float64 {
	quarters := rnd.Intn((max-min)*4+1) + min*4
	return float64(quarters) / 4
}
