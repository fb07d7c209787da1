package respond

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestEnvelopes(t *testing.T) {
	app := fiber.New()
	app.Get("/ok", func(c *fiber.Ctx) error { return OK(c, "fetched", fiber.Map{"id": 1}) })
	app.Get("/missing", func(c *fiber.Ctx) error { return NotFound(c, "not found") })
	app.Get("/broken", func(c *fiber.Ctx) error { return Internal(c, "failed", errors.New("boom")) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ok", nil))
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("ok status: %v", err)
	}
	var body map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&body)
	if body["success"] != true || body["message"] != "fetched" {
		t.Fatalf("unexpected ok body: %v", body)
	}

	resp, _ = app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil))
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404")
	}
	body = map[string]any{}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	if body["success"] != false {
		t.Fatalf("expected success=false on 404")
	}
	if _, present := body["error"]; present {
		t.Fatalf("404 envelope must not carry error field")
	}

	resp, _ = app.Test(httptest.NewRequest(http.MethodGet, "/broken", nil))
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500")
	}
	body = map[string]any{}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	if body["error"] != "boom" {
		t.Fatalf("expected error detail, got %v", body)
	}
}
