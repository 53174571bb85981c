package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	dbtypes "github.com/minicrmhq/minicrm-backend/pkg/db/types"
)

type fakeCounter struct {
	customers int64
	points    int64
	upcoming  int64

	gotFrom dbtypes.Date
	gotTo   dbtypes.Date
}

func (f *fakeCounter) CountByStore(ctx context.Context, storeID uuid.UUID) (int64, error) {
	return f.customers, nil
}

func (f *fakeCounter) SumPointsByStore(ctx context.Context, storeID uuid.UUID) (int64, error) {
	return f.points, nil
}

func (f *fakeCounter) CountUpcoming(ctx context.Context, storeID uuid.UUID, from, to dbtypes.Date) (int64, error) {
	f.gotFrom = from
	f.gotTo = to
	return f.upcoming, nil
}

func TestService_Stats(t *testing.T) {
	deps := &fakeCounter{customers: 10, points: 1234, upcoming: 3}
	svc, err := NewService(deps, deps, deps)
	if err != nil {
		t.Fatalf("NewService error: %v", err)
	}
	fixed := time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC) // a Tuesday
	svc.(*service).now = func() time.Time { return fixed }

	got, err := svc.Stats(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Stats error: %v", err)
	}
	if got.TotalCustomers != 10 {
		t.Fatalf("total = %d, want 10", got.TotalCustomers)
	}
	if got.ActiveCustomers != 7 {
		t.Fatalf("active = %d, want 7 (70%% of 10, floored)", got.ActiveCustomers)
	}
	if got.UpcomingReminders != 3 || got.TotalPoints != 1234 {
		t.Fatalf("unexpected stats: %+v", got)
	}
	if got.Message != MessageOfTheDay(fixed) {
		t.Fatalf("message = %q", got.Message)
	}

	wantFrom := dbtypes.NewDate(2026, 9, 1)
	wantTo := dbtypes.NewDate(2026, 9, 8)
	if deps.gotFrom != wantFrom || deps.gotTo != wantTo {
		t.Fatalf("window = [%s, %s], want [%s, %s]", deps.gotFrom, deps.gotTo, wantFrom, wantTo)
	}
}

func TestService_StatsFloorsActiveCustomers(t *testing.T) {
	deps := &fakeCounter{customers: 9}
	svc, err := NewService(deps, deps, deps)
	if err != nil {
		t.Fatalf("NewService error: %v", err)
	}

	got, err := svc.Stats(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Stats error: %v", err)
	}
	if got.ActiveCustomers != 6 {
		t.Fatalf("active = %d, want 6 (9 * 0.7 floored)", got.ActiveCustomers)
	}
}

func TestMessageOfTheDayRotates(t *testing.T) {
	sunday := time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)
	seen := make(map[string]struct{})
	for i := 0; i < 7; i++ {
		seen[MessageOfTheDay(sunday.AddDate(0, 0, i))] = struct{}{}
	}
	if len(seen) != len(motivationalMessages) {
		t.Fatalf("saw %d distinct messages over a week, want %d", len(seen), len(motivationalMessages))
	}

	if MessageOfTheDay(sunday) != motivationalMessages[0] {
		t.Fatalf("sunday message = %q, want first entry", MessageOfTheDay(sunday))
	}
}
