package patient

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/vitals/vitals/internal/platform/openapi"
)

// Handler exposes the patient HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler creates a patient Handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the patient routes on the given group and records
// them in the API documentation registry. Threshold routes register before
// /:id so the literal segments win.
func (h *Handler) RegisterRoutes(g *echo.Group, docs *openapi.Registry) {
	g.POST("", h.create)
	g.GET("", h.list)
	g.GET("/highBP", h.listHighBP)
	g.GET("/lowBP", h.listLowBP)
	g.GET("/hasFever", h.listFever)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.remove)

	h.registerDocs(docs)
}

func (h *Handler) registerDocs(docs *openapi.Registry) {
	numberProp := map[string]string{"type": "number"}
	docs.AddSchema("CreatePatientInput", map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"name":                   map[string]string{"type": "string"},
			"age":                    map[string]string{"type": "integer"},
			"systolicbloodPressure":  numberProp,
			"diastolicbloodPressure": numberProp,
			"pulseRate":              numberProp,
			"temperature":            numberProp,
		},
		"required": []string{"name", "age", "systolicbloodPressure", "diastolicbloodPressure", "pulseRate", "temperature"},
	})
	docs.AddSchema("UpdateVitalsInput", map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"systolicbloodPressure":  numberProp,
			"diastolicbloodPressure": numberProp,
			"pulseRate":              numberProp,
			"temperature":            numberProp,
		},
	})
	docs.AddSchema("Patient", map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"id":                     map[string]string{"type": "string", "format": "uuid"},
			"name":                   map[string]string{"type": "string"},
			"age":                    map[string]string{"type": "integer"},
			"systolicbloodPressure":  numberProp,
			"diastolicbloodPressure": numberProp,
			"pulseRate":              numberProp,
			"temperature":            numberProp,
			"hasFever":               map[string]string{"type": "boolean"},
			"medication":             map[string]string{"type": "string"},
			"createdAt":              map[string]string{"type": "string", "format": "date-time"},
			"updatedAt":              map[string]string{"type": "string", "format": "date-time"},
		},
	})

	ops := []openapi.Operation{
		{Method: http.MethodPost, Path: "/api/patients", Summary: "Create a patient record", Tag: "Patients", Secured: true, RequestRef: "CreatePatientInput",
			Responses: map[int]string{201: "Created patient", 400: "Missing required fields", 401: "Unauthorized"}},
		{Method: http.MethodGet, Path: "/api/patients", Summary: "List all patients", Tag: "Patients", Secured: true,
			Responses: map[int]string{200: "List of patients", 401: "Unauthorized"}},
		{Method: http.MethodGet, Path: "/api/patients/highBP", Summary: "List patients with high systolic blood pressure", Tag: "Patients", Secured: true,
			Responses: map[int]string{200: "List of patients", 401: "Unauthorized"}},
		{Method: http.MethodGet, Path: "/api/patients/lowBP", Summary: "List patients with low diastolic blood pressure", Tag: "Patients", Secured: true,
			Responses: map[int]string{200: "List of patients", 401: "Unauthorized"}},
		{Method: http.MethodGet, Path: "/api/patients/hasFever", Summary: "List patients with a fever", Tag: "Patients", Secured: true,
			Responses: map[int]string{200: "List of patients", 401: "Unauthorized"}},
		{Method: http.MethodGet, Path: "/api/patients/:id", Summary: "Get a patient by id", Tag: "Patients", Secured: true,
			Responses: map[int]string{200: "Patient", 400: "Invalid patient id", 404: "Patient not found", 401: "Unauthorized"}},
		{Method: http.MethodPut, Path: "/api/patients/:id", Summary: "Update patient vitals", Tag: "Patients", Secured: true, RequestRef: "UpdateVitalsInput",
			Responses: map[int]string{200: "Updated patient", 400: "Invalid patient id", 404: "Patient not found", 401: "Unauthorized"}},
		{Method: http.MethodDelete, Path: "/api/patients/:id", Summary: "Delete a patient", Tag: "Patients", Secured: true,
			Responses: map[int]string{200: "Patient removed", 400: "Invalid patient id", 404: "Patient not found", 401: "Unauthorized"}},
	}
	for _, op := range ops {
		docs.AddOperation(op)
	}
}

// parseID validates the path id before any repository call.
func parseID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid patient id")
	}
	return id, nil
}

func (h *Handler) create(c echo.Context) error {
	var input CreatePatientInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	p, err := h.service.Create(c.Request().Context(), input)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			return echo.NewHTTPError(http.StatusBadRequest, "All fields are required")
		}
		return err
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) list(c echo.Context) error {
	patients, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, patients)
}

func (h *Handler) get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	p, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Patient not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var input UpdateVitalsInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	p, err := h.service.UpdateVitals(c.Request().Context(), id, input)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Patient not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) remove(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Patient not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Patient removed"})
}

func (h *Handler) listHighBP(c echo.Context) error {
	patients, err := h.service.ListHighBP(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, patients)
}

func (h *Handler) listLowBP(c echo.Context) error {
	patients, err := h.service.ListLowBP(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, patients)
}

func (h *Handler) listFever(c echo.Context) error {
	patients, err := h.service.ListFever(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, patients)
}
