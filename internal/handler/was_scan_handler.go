// Copyright (c) 2025 Lazycat Apps
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package handler provides HTTP request handlers for the sandbox Security Center.
package handler

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/lazycatapps/wasscan/internal/models"
	apperrors "github.com/lazycatapps/wasscan/internal/pkg/errors"
	"github.com/lazycatapps/wasscan/internal/pkg/logger"
	"github.com/lazycatapps/wasscan/internal/service"

	"github.com/gin-gonic/gin"
)

// WasScanHandler handles /rest/wasScan requests.
type WasScanHandler struct {
	service service.WasScanService
	logger  logger.Logger
}

// NewWasScanHandler creates a new WAS scan handler instance.
func NewWasScanHandler(svc service.WasScanService, log logger.Logger) *WasScanHandler {
	return &WasScanHandler{
		service: svc,
		logger:  log,
	}
}

// RespondOK writes payload inside the Security Center envelope.
func RespondOK(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, models.NewEnvelope(payload, time.Now()))
}

// RespondError maps err to an HTTP status and envelope error_code.
func RespondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	msg := err.Error()

	var appErr *apperrors.AppError
	if stderrors.As(err, &appErr) {
		status = appErr.StatusCode
		msg = appErr.Message
	}

	code := models.ErrorCodeInternal
	switch status {
	case http.StatusBadRequest:
		code = models.ErrorCodeInvalidInput
	case http.StatusNotFound:
		code = models.ErrorCodeNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		code = models.ErrorCodeUnauthorized
	}

	c.AbortWithStatusJSON(status, models.NewErrorEnvelope(code, msg, time.Now()))
}

// parseFields splits the comma-separated fields query parameter.
func parseFields(c *gin.Context) []string {
	raw := c.Query("fields")
	if raw == "" {
		return nil
	}
	var fields []string
	for _, f := range strings.Split(raw, ",") {
		if f = strings.TrimSpace(f); f != "" {
			fields = append(fields, f)
		}
	}
	return fields
}

func (h *WasScanHandler) respondScan(c *gin.Context, scan *models.WasScan, fields []string) {
	out, err := service.Project(scan, fields)
	if err != nil {
		RespondError(c, apperrors.WrapInternal(err, "Failed to render scan"))
		return
	}
	RespondOK(c, out)
}

// Create handles POST /rest/wasScan
func (h *WasScanHandler) Create(c *gin.Context) {
	var in models.WasScanInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.logger.Error("Invalid WAS scan request: %v", err)
		RespondError(c, apperrors.WrapInvalidInput(err, fmt.Sprintf("Invalid request: %v", err)))
		return
	}

	scan, err := h.service.Create(&in)
	if err != nil {
		RespondError(c, err)
		return
	}
	h.respondScan(c, scan, nil)
}

// List handles GET /rest/wasScan
func (h *WasScanHandler) List(c *gin.Context) {
	fields := parseFields(c)

	scans, err := h.service.List()
	if err != nil {
		RespondError(c, err)
		return
	}

	out := make([]map[string]interface{}, 0, len(scans))
	for _, scan := range scans {
		m, err := service.Project(scan, fields)
		if err != nil {
			RespondError(c, apperrors.WrapInternal(err, "Failed to render scan"))
			return
		}
		out = append(out, m)
	}
	RespondOK(c, out)
}

// Get handles GET /rest/wasScan/:id
func (h *WasScanHandler) Get(c *gin.Context) {
	scan, err := h.service.Get(c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	h.respondScan(c, scan, parseFields(c))
}

// Update handles PATCH /rest/wasScan/:id
func (h *WasScanHandler) Update(c *gin.Context) {
	var in models.WasScanInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.logger.Error("Invalid WAS scan update: %v", err)
		RespondError(c, apperrors.WrapInvalidInput(err, fmt.Sprintf("Invalid request: %v", err)))
		return
	}

	scan, err := h.service.Update(c.Param("id"), &in)
	if err != nil {
		RespondError(c, err)
		return
	}
	h.respondScan(c, scan, nil)
}

// Delete handles DELETE /rest/wasScan/:id
func (h *WasScanHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Param("id")); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, "")
}

// Copy handles POST /rest/wasScan/:id/copy
func (h *WasScanHandler) Copy(c *gin.Context) {
	var in models.CopyInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, apperrors.WrapInvalidInput(err, fmt.Sprintf("Invalid request: %v", err)))
		return
	}

	scan, err := h.service.Copy(c.Param("id"), &in)
	if err != nil {
		RespondError(c, err)
		return
	}
	h.respondScan(c, scan, nil)
}
