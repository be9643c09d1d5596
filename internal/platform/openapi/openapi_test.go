package openapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func buildTestGenerator() *Generator {
	reg := NewRegistry()
	reg.AddOperation(Operation{
		Method:  http.MethodGet,
		Path:    "/api/patients",
		Summary: "List all patients",
		Tag:     "Patients",
		Secured: true,
		Responses: map[int]string{
			200: "List of patients",
			401: "Unauthorized",
		},
	})
	reg.AddOperation(Operation{
		Method:     http.MethodPut,
		Path:       "/api/patients/:id",
		Summary:    "Update patient vitals",
		Tag:        "Patients",
		Secured:    true,
		RequestRef: "UpdateVitalsInput",
		Responses: map[int]string{
			200: "Updated patient",
			404: "Patient not found",
		},
	})
	reg.AddSchema("UpdateVitalsInput", map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"temperature": map[string]string{"type": "number"},
		},
	})
	return NewGenerator(reg, "Patient Vitals API", "1.0.0")
}

func TestGeneratePathsAndParams(t *testing.T) {
	doc := buildTestGenerator().Generate()

	paths, ok := doc["paths"].(map[string]interface{})
	if !ok {
		t.Fatal("paths missing from document")
	}

	if _, ok := paths["/api/patients"]; !ok {
		t.Error("/api/patients missing from paths")
	}
	item, ok := paths["/api/patients/{id}"].(map[string]interface{})
	if !ok {
		t.Fatal("/api/patients/{id} missing; :id not converted")
	}

	put, ok := item["put"].(map[string]interface{})
	if !ok {
		t.Fatal("put operation missing")
	}
	params, ok := put["parameters"].([]map[string]interface{})
	if !ok || len(params) != 1 {
		t.Fatalf("parameters = %v, want one path parameter", put["parameters"])
	}
	if params[0]["name"] != "id" {
		t.Errorf("parameter name = %v, want id", params[0]["name"])
	}
	if _, ok := put["requestBody"]; !ok {
		t.Error("requestBody missing for operation with RequestRef")
	}
}

func TestGenerateSecurityScheme(t *testing.T) {
	doc := buildTestGenerator().Generate()

	components := doc["components"].(map[string]interface{})
	schemes := components["securitySchemes"].(map[string]interface{})
	bearer, ok := schemes["bearerAuth"].(map[string]string)
	if !ok {
		t.Fatal("bearerAuth security scheme missing")
	}
	if bearer["scheme"] != "bearer" || bearer["bearerFormat"] != "JWT" {
		t.Errorf("bearerAuth = %v", bearer)
	}

	schemas := components["schemas"].(map[string]interface{})
	if _, ok := schemas["UpdateVitalsInput"]; !ok {
		t.Error("registered schema missing from components")
	}
}

func TestHandlerServesJSON(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/docs", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := buildTestGenerator().Handler()(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode document: %v", err)
	}
	if doc["openapi"] != "3.0.0" {
		t.Errorf("openapi version = %v, want 3.0.0", doc["openapi"])
	}
	info := doc["info"].(map[string]interface{})
	if info["title"] != "Patient Vitals API" {
		t.Errorf("title = %v", info["title"])
	}
}
