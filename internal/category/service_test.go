package category

import (
	"context"
	"testing"
	"time"

	"github.com/fer-gc05/AventuraLocalApi/internal/cache"

	"github.com/pashagolub/pgxmock/v3"
)

var categoryColumns = []string{"id", "name", "description", "icon", "created_at"}

func categoryRow(id, name string) []any {
	return []any{id, name, "desc", "icon.svg", time.Now()}
}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	t.Cleanup(mock.Close)
	return mock
}

func TestPopularContentSum(t *testing.T) {
	mock := newMock(t)
	columns := append(append([]string{}, categoryColumns...), "destinations_count", "events_count", "communities_count")
	mock.ExpectQuery(`SELECT c.id, c.name`).
		WithArgs(2).
		WillReturnRows(pgxmock.NewRows(columns).
			AddRow(append(categoryRow("c1", "Ecoturismo"), int64(10), int64(5), int64(3))...).
			AddRow(append(categoryRow("c2", "Gastronomia"), int64(4), int64(2), int64(1))...))

	svc := NewService(mock, cache.New(nil))
	popular, err := svc.Popular(context.Background(), 2)
	if err != nil {
		t.Fatalf("popular: %v", err)
	}
	first := popular[0].DestinationsCount + popular[0].EventsCount + popular[0].CommunitiesCount
	second := popular[1].DestinationsCount + popular[1].EventsCount + popular[1].CommunitiesCount
	if first < second {
		t.Fatalf("popular not sorted by content sum: %d < %d", first, second)
	}
}

func TestStatistics(t *testing.T) {
	mock := newMock(t)

	mock.ExpectQuery(`SELECT id, name, description`).
		WithArgs("c1").
		WillReturnRows(pgxmock.NewRows(categoryColumns).AddRow(categoryRow("c1", "Ecoturismo")...))

	mock.ExpectQuery(`SELECT`).
		WithArgs("c1").
		WillReturnRows(pgxmock.NewRows([]string{"destinations", "events", "communities", "active"}).
			AddRow(int64(10), int64(6), int64(4), int64(2)))

	mock.ExpectQuery(`SELECT d.id, d.name`).
		WithArgs("c1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "favorites_count"}).
			AddRow("d1", "Playa Blanca", int64(20)).
			AddRow("d2", "Mercado", int64(8)))

	mock.ExpectQuery(`SELECT COUNT\(\*\) FILTER`).
		WithArgs("c1").
		WillReturnRows(pgxmock.NewRows([]string{"active", "total"}).AddRow(int64(30), int64(90)))

	mock.ExpectQuery(`SELECT`).
		WithArgs("c1").
		WillReturnRows(pgxmock.NewRows([]string{"last_month"}).AddRow(int64(16)))

	svc := NewService(mock, cache.New(nil))
	st, err := svc.Statistics(context.Background(), "c1")
	if err != nil {
		t.Fatalf("statistics: %v", err)
	}
	if st.TotalDestinations != 10 || st.ActiveEvents != 2 {
		t.Fatalf("unexpected totals: %+v", st)
	}
	if st.UserEngagement != 33.33 {
		t.Fatalf("expected 30/90 = 33.33, got %v", st.UserEngagement)
	}
	// (20 - 16) / 16 = 25%
	if st.GrowthRate != 25.0 {
		t.Fatalf("expected growth 25, got %v", st.GrowthRate)
	}
	if len(st.PopularDestinations) != 2 || st.PopularDestinations[0].ID != "d1" {
		t.Fatalf("unexpected popular destinations: %+v", st.PopularDestinations)
	}
}

func TestStatisticsZeroDenominators(t *testing.T) {
	mock := newMock(t)

	mock.ExpectQuery(`SELECT id, name, description`).
		WithArgs("c1").
		WillReturnRows(pgxmock.NewRows(categoryColumns).AddRow(categoryRow("c1", "Nueva")...))
	mock.ExpectQuery(`SELECT`).
		WithArgs("c1").
		WillReturnRows(pgxmock.NewRows([]string{"destinations", "events", "communities", "active"}).
			AddRow(int64(0), int64(0), int64(0), int64(0)))
	mock.ExpectQuery(`SELECT d.id, d.name`).
		WithArgs("c1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "favorites_count"}))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FILTER`).
		WithArgs("c1").
		WillReturnRows(pgxmock.NewRows([]string{"active", "total"}).AddRow(int64(0), int64(0)))
	mock.ExpectQuery(`SELECT`).
		WithArgs("c1").
		WillReturnRows(pgxmock.NewRows([]string{"last_month"}).AddRow(int64(0)))

	svc := NewService(mock, cache.New(nil))
	st, err := svc.Statistics(context.Background(), "c1")
	if err != nil {
		t.Fatalf("statistics: %v", err)
	}
	if st.UserEngagement != 0 || st.GrowthRate != 0 {
		t.Fatalf("zero denominators should resolve to 0: %+v", st)
	}
}
