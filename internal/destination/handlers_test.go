package destination

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fer-gc05/AventuraLocalApi/internal/cache"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
)

func passthrough(c *fiber.Ctx) error { return c.Next() }

func adminLocals(c *fiber.Ctx) error {
	c.Locals("user_id", "user-1")
	c.Locals("role", "admin")
	return c.Next()
}

func TestNearbyHandler(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, name, description, address, city`).
		WithArgs("d1").
		WillReturnRows(pgxmock.NewRows(destColumns).AddRow(destRow("d1", "Playa Blanca", ptr(9.3747), ptr(-75.7556))...))
	mock.ExpectQuery(`SELECT id, name, description, address, city`).
		WithArgs("d1").
		WillReturnRows(pgxmock.NewRows(destColumns).
			AddRow(destRow("d2", "Mercado Publico de Lorica", ptr(9.2361), ptr(-75.8139))...))

	app := fiber.New()
	RegisterRoutes(app.Group("/destinations"), NewService(mock, cache.New(nil)), passthrough)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/destinations/nearby?destination_id=d1&radius=20", nil))
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("nearby status: %v %d", err, resp.StatusCode)
	}

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Origin   NearbyOrigin        `json:"origin"`
			RadiusKm float64             `json:"radius_km"`
			Results  []NearbyDestination `json:"results"`
			Count    int                 `json:"count"`
		} `json:"data"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	if !body.Success || body.Data.Origin.ID != "d1" || body.Data.RadiusKm != 20 || body.Data.Count != 1 {
		t.Fatalf("unexpected nearby body: %+v", body)
	}
}

func TestNearbyHandlerBadRadius(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app.Group("/destinations"), NewService(nil, cache.New(nil)), passthrough)

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/destinations/nearby?destination_id=d1&radius=-2", nil))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestNearbyHandlerOriginMissing(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, name, description, address, city`).
		WithArgs("ghost").
		WillReturnError(pgx.ErrNoRows)

	app := fiber.New()
	RegisterRoutes(app.Group("/destinations"), NewService(mock, cache.New(nil)), passthrough)

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/destinations/nearby?destination_id=ghost&radius=20", nil))
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}

	var body map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&body)
	if body["success"] != false {
		t.Fatalf("expected success=false envelope")
	}
}

func TestPopularHandlerEmpty(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	columns := append(append([]string{}, destColumns...), "reviews_count", "events_count")
	mock.ExpectQuery(`SELECT d.id, d.name`).
		WithArgs(10).
		WillReturnRows(pgxmock.NewRows(columns))

	app := fiber.New()
	RegisterRoutes(app.Group("/destinations"), NewService(mock, cache.New(nil)), passthrough)

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/destinations/popular", nil))
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for empty popular, got %d", resp.StatusCode)
	}
}

func TestRestoreHandlerRequiresAdmin(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app.Group("/destinations"), NewService(nil, cache.New(nil)), passthrough)

	resp, _ := app.Test(httptest.NewRequest(http.MethodPost, "/destinations/d1/restore", nil))
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 without admin role, got %d", resp.StatusCode)
	}
}

func TestRestoreHandlerAsAdmin(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`UPDATE destinations SET deleted_at=NULL`).
		WithArgs("d1").
		WillReturnRows(pgxmock.NewRows(destColumns).AddRow(destRow("d1", "Playa Blanca", ptr(9.3), ptr(-75.7))...))

	app := fiber.New()
	RegisterRoutes(app.Group("/destinations"), NewService(mock, cache.New(nil)), adminLocals)

	resp, _ := app.Test(httptest.NewRequest(http.MethodPost, "/destinations/d1/restore", nil))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for admin restore, got %d", resp.StatusCode)
	}
}
