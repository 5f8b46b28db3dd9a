// server/internal/api/handlers/shipment_handler.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"freight-shipment-api-server/internal/api/middleware"
	"freight-shipment-api-server/internal/models"
	"freight-shipment-api-server/internal/s3"
	"freight-shipment-api-server/internal/shipment"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ShipmentHandler struct {
	Service    *shipment.Service
	S3Uploader *s3.Uploader
}

// --- Structs for request bodies ---

type AddShipmentMsgRequest struct {
	Txt string `json:"txt" binding:"required"`
}

// shipmentResponse decorates a shipment with its current risk state.
type shipmentResponse struct {
	models.Shipment
	AtRisk *bool `json:"atRisk,omitempty"`
}

// --- Handlers ---

func (h *ShipmentHandler) GetShipments(c *gin.Context) {
	filter := models.ShipmentFilter{
		Txt:       c.Query("txt"),
		SortField: c.Query("sortField"),
		SortDir:   1,
	}
	if dir, err := strconv.Atoi(c.Query("sortDir")); err == nil {
		filter.SortDir = dir
	}
	if minSpeed, err := strconv.ParseFloat(c.Query("minSpeed"), 64); err == nil {
		filter.MinSpeed = minSpeed
	}
	if pageIdx, err := strconv.Atoi(c.Query("pageIdx")); err == nil && pageIdx >= 0 {
		filter.PageIdx = &pageIdx
	}

	shipments, err := h.Service.Query(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "Failed to get shipments")
		return
	}
	if shipments == nil {
		shipments = []models.Shipment{}
	}

	c.JSON(http.StatusOK, shipments)
}

func (h *ShipmentHandler) GetShipmentByID(c *gin.Context) {
	record, err := h.Service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get shipment")
		return
	}

	resp := shipmentResponse{Shipment: record}
	if atRisk, err := shipment.IsAtRisk(record, time.Now()); err == nil {
		resp.AtRisk = &atRisk
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ShipmentHandler) AddShipment(c *gin.Context) {
	loggedinUser, _ := middleware.LoggedinUser(c)

	var record models.Shipment
	if err := c.ShouldBindJSON(&record); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	added, err := h.Service.Add(c.Request.Context(), record, loggedinUser)
	if err != nil {
		respondError(c, err, "Failed to add shipment")
		return
	}

	c.JSON(http.StatusCreated, added)
}

func (h *ShipmentHandler) UpdateShipment(c *gin.Context) {
	loggedinUser, _ := middleware.LoggedinUser(c)

	var record models.Shipment
	if err := c.ShouldBindJSON(&record); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// The path is authoritative for the id.
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": shipment.ErrInvalidID.Error()})
		return
	}
	record.ID = oid

	updated, err := h.Service.Update(c.Request.Context(), record, loggedinUser)
	if err != nil {
		respondError(c, err, "Failed to update shipment")
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *ShipmentHandler) RemoveShipment(c *gin.Context) {
	loggedinUser, _ := middleware.LoggedinUser(c)

	removedID, err := h.Service.Remove(c.Request.Context(), c.Param("id"), loggedinUser)
	if err != nil {
		respondError(c, err, "Failed to remove shipment")
		return
	}

	c.JSON(http.StatusOK, gin.H{"removedId": removedID})
}

func (h *ShipmentHandler) AddShipmentMsg(c *gin.Context) {
	loggedinUser, _ := middleware.LoggedinUser(c)

	var req AddShipmentMsgRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.Service.AddMsg(c.Request.Context(), c.Param("id"), req.Txt, loggedinUser)
	if err != nil {
		respondError(c, err, "Failed to add shipment msg")
		return
	}

	c.JSON(http.StatusCreated, msg)
}

func (h *ShipmentHandler) RemoveShipmentMsg(c *gin.Context) {
	removedID, err := h.Service.RemoveMsg(c.Request.Context(), c.Param("id"), c.Param("msgId"))
	if err != nil {
		respondError(c, err, "Failed to remove shipment msg")
		return
	}

	c.JSON(http.StatusOK, gin.H{"removedId": removedID})
}

// UploadDeliveryPhoto stores a proof-of-delivery photo in S3 and records
// its URL on the shipment.
func (h *ShipmentHandler) UploadDeliveryPhoto(c *gin.Context) {
	shipmentID := c.Param("id")

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Photo file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	objectKey := fmt.Sprintf("shipments/%s/delivery/%s%s", shipmentID, uuid.New().String(), filepath.Ext(fileHeader.Filename))
	url, err := h.S3Uploader.UploadFile(c.Request.Context(), file, objectKey, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload photo", "details": err.Error()})
		return
	}

	if err := h.Service.SetDeliveryPhoto(c.Request.Context(), shipmentID, url); err != nil {
		respondError(c, err, "Failed to save photo URL")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "photoUrl": url})
}

// respondError maps service errors to HTTP statuses.
func respondError(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, shipment.ErrInvalidID), errors.Is(err, shipment.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, shipment.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, shipment.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}
