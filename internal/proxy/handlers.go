package proxy

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/zoro11031/routegen/internal/common"
)

// Resource names a backend collection served under /api/{Plural}/:id
type Resource struct {
	Name   string
	Plural string
}

// Customers is the resource the generated route file handles
var Customers = Resource{Name: "customer", Plural: "customers"}

// resourceHandlers proxies GET/PUT/DELETE for one resource.
type resourceHandlers struct {
	resource Resource
	sessions *SessionResolver
	upstream *Upstream
	logger   *slog.Logger

	label string // "Customer"
	tag   string // "CUSTOMER"
}

func newResourceHandlers(resource Resource, sessions *SessionResolver, upstream *Upstream, logger *slog.Logger) *resourceHandlers {
	return &resourceHandlers{
		resource: resource,
		sessions: sessions,
		upstream: upstream,
		logger:   logger,
		label:    cases.Title(language.English).String(resource.Name),
		tag:      cases.Upper(language.English).String(resource.Name),
	}
}

func (h *resourceHandlers) register(r gin.IRouter) {
	path := fmt.Sprintf("/api/%s/:id", h.resource.Plural)
	r.GET(path, h.handleGet)
	r.PUT(path, h.handlePut)
	r.DELETE(path, h.handleDelete)
}

// authorize resolves the session and id, writing the error response itself on failure.
func (h *resourceHandlers) authorize(c *gin.Context) (Session, string, bool) {
	session, err := h.sessions.Resolve(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return Session{}, "", false
	}

	id := c.Param("id")
	if err := common.ValidateResourceID(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": h.label + " not found"})
		return Session{}, "", false
	}
	return session, id, true
}

func (h *resourceHandlers) internalError(c *gin.Context, method string, err error) {
	h.logger.Error(fmt.Sprintf("[%s %s] error", h.tag, method),
		"error", err,
		"id", c.Param("id"),
		"request_id", requestIDFrom(c),
	)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

func (h *resourceHandlers) handleGet(c *gin.Context) {
	session, id, ok := h.authorize(c)
	if !ok {
		return
	}

	header := http.Header{}
	header.Set("Cache-Control", "no-store")

	resp, err := h.upstream.Do(c.Request.Context(), http.MethodGet, h.resource.Plural, id, session.BearerToken(), requestIDFrom(c), nil, header)
	if err != nil {
		h.internalError(c, http.MethodGet, err)
		return
	}
	if !resp.ok() {
		c.JSON(http.StatusNotFound, gin.H{"error": h.label + " not found"})
		return
	}
	if !json.Valid(resp.Body) {
		h.internalError(c, http.MethodGet, fmt.Errorf("upstream returned invalid JSON"))
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", resp.Body)
}

func (h *resourceHandlers) handlePut(c *gin.Context) {
	session, id, ok := h.authorize(c)
	if !ok {
		return
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
	if err != nil {
		h.internalError(c, http.MethodPut, fmt.Errorf("failed to read request body: %w", err))
		return
	}
	if !json.Valid(body) {
		h.internalError(c, http.MethodPut, fmt.Errorf("request body is not valid JSON"))
		return
	}

	wrapped, err := json.Marshal(map[string]json.RawMessage{"data": body})
	if err != nil {
		h.internalError(c, http.MethodPut, err)
		return
	}

	header := http.Header{}
	header.Set("Content-Type", "application/json")

	resp, err := h.upstream.Do(c.Request.Context(), http.MethodPut, h.resource.Plural, id, session.BearerToken(), requestIDFrom(c), wrapped, header)
	if err != nil {
		h.internalError(c, http.MethodPut, err)
		return
	}
	if !resp.ok() {
		c.JSON(resp.StatusCode, gin.H{"error": "Failed to update " + strings.ToLower(h.resource.Name)})
		return
	}
	if !json.Valid(resp.Body) {
		h.internalError(c, http.MethodPut, fmt.Errorf("upstream returned invalid JSON"))
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", resp.Body)
}

func (h *resourceHandlers) handleDelete(c *gin.Context) {
	session, id, ok := h.authorize(c)
	if !ok {
		return
	}

	resp, err := h.upstream.Do(c.Request.Context(), http.MethodDelete, h.resource.Plural, id, session.BearerToken(), requestIDFrom(c), nil, nil)
	if err != nil {
		h.internalError(c, http.MethodDelete, err)
		return
	}
	if !resp.ok() {
		c.JSON(resp.StatusCode, gin.H{"error": "Failed to delete " + strings.ToLower(h.resource.Name)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
