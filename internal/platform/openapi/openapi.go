// Package openapi builds the served OpenAPI 3.0 description from route
// annotations registered by the domain handlers.
package openapi

import (
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/labstack/echo/v4"
)

// Operation describes one registered route for the generated document.
type Operation struct {
	Method     string
	Path       string
	Summary    string
	Tag        string
	Secured    bool
	RequestRef string
	Responses  map[int]string
}

// Registry collects operations and component schemas as handlers register
// their routes.
type Registry struct {
	mu         sync.Mutex
	operations []Operation
	schemas    map[string]map[string]interface{}
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		schemas: make(map[string]map[string]interface{}),
	}
}

// AddOperation records a route for inclusion in the generated document.
func (r *Registry) AddOperation(op Operation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.operations = append(r.operations, op)
}

// AddSchema registers a named component schema.
func (r *Registry) AddSchema(name string, schema map[string]interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.schemas[name] = schema
}

// Generator renders the OpenAPI document for a Registry.
type Generator struct {
	registry *Registry
	title    string
	version  string
}

// NewGenerator creates a Generator for the given registry.
func NewGenerator(registry *Registry, title, version string) *Generator {
	return &Generator{
		registry: registry,
		title:    title,
		version:  version,
	}
}

// Generate builds the OpenAPI 3.0 document as a generic map ready for JSON
// encoding.
func (g *Generator) Generate() map[string]interface{} {
	g.registry.mu.Lock()
	defer g.registry.mu.Unlock()

	paths := make(map[string]interface{})
	for _, op := range g.registry.operations {
		path := echoPathToOpenAPI(op.Path)
		item, _ := paths[path].(map[string]interface{})
		if item == nil {
			item = make(map[string]interface{})
			paths[path] = item
		}

		entry := map[string]interface{}{
			"summary":   op.Summary,
			"tags":      []string{op.Tag},
			"responses": buildResponses(op.Responses),
		}
		if op.Secured {
			entry["security"] = []map[string][]string{{"bearerAuth": {}}}
		}
		if op.RequestRef != "" {
			entry["requestBody"] = map[string]interface{}{
				"required": true,
				"content": map[string]interface{}{
					"application/json": map[string]interface{}{
						"schema": map[string]string{"$ref": "#/components/schemas/" + op.RequestRef},
					},
				},
			}
		}
		if params := pathParameters(path); len(params) > 0 {
			entry["parameters"] = params
		}

		item[strings.ToLower(op.Method)] = entry
	}

	schemas := make(map[string]interface{}, len(g.registry.schemas))
	for name, schema := range g.registry.schemas {
		schemas[name] = schema
	}

	return map[string]interface{}{
		"openapi": "3.0.0",
		"info": map[string]interface{}{
			"title":   g.title,
			"version": g.version,
		},
		"paths": paths,
		"components": map[string]interface{}{
			"securitySchemes": map[string]interface{}{
				"bearerAuth": map[string]string{
					"type":         "http",
					"scheme":       "bearer",
					"bearerFormat": "JWT",
				},
			},
			"schemas": schemas,
		},
	}
}

// Handler serves the generated document as JSON.
func (g *Generator) Handler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, g.Generate())
	}
}

// echoPathToOpenAPI converts echo-style :param segments to OpenAPI {param}
// segments.
func echoPathToOpenAPI(path string) string {
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if strings.HasPrefix(seg, ":") {
			segments[i] = "{" + seg[1:] + "}"
		}
	}
	return strings.Join(segments, "/")
}

func pathParameters(path string) []map[string]interface{} {
	var params []map[string]interface{}
	for _, seg := range strings.Split(path, "/") {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			params = append(params, map[string]interface{}{
				"name":     strings.Trim(seg, "{}"),
				"in":       "path",
				"required": true,
				"schema":   map[string]string{"type": "string"},
			})
		}
	}
	return params
}

func buildResponses(responses map[int]string) map[string]interface{} {
	out := make(map[string]interface{}, len(responses))
	for code, description := range responses {
		out[strconv.Itoa(code)] = map[string]string{"description": description}
	}
	return out
}
