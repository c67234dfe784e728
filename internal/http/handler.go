package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"fleet-service/internal/http/middleware"
	"fleet-service/internal/model"
	"fleet-service/internal/repository"
	"fleet-service/internal/service"
)

type Handler struct {
	rosterService *service.RosterService
	tripService   *service.TripService
	ticketService *service.ServiceTicketService
	log           zerolog.Logger
}

func NewHandler(
	rosterService *service.RosterService,
	tripService *service.TripService,
	ticketService *service.ServiceTicketService,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		rosterService: rosterService,
		tripService:   tripService,
		ticketService: ticketService,
		log:           log,
	}
}

func (h *Handler) Register(r *gin.Engine, authMiddleware gin.HandlerFunc) {
	protected := r.Group("/")
	protected.Use(authMiddleware)

	admin := protected.Group("/admin")
	admin.Use(requireRole(model.RoleAdmin))
	{
		admin.GET("/rosters", h.listRosters)
		admin.POST("/rosters", h.createRoster)
		admin.GET("/rosters/:id", h.getRoster)
		admin.PUT("/rosters/:id", h.updateRoster)
		admin.PUT("/rosters/:id/status", h.changeRosterStatus)
		admin.POST("/rosters/:id/validate", h.validateRoster)
		admin.POST("/rosters/import-csv", h.importRostersCSV)
		admin.GET("/rosters/:id/trips", h.listTrips)
		admin.GET("/rosters/:id/driver-logs", h.listDriverLogs)
		admin.GET("/rosters/:id/vehicle-logs", h.listVehicleLogs)

		admin.GET("/service-tickets", h.listServiceTickets)
		admin.POST("/service-tickets", h.createServiceTicket)
		admin.GET("/service-tickets/:id", h.getServiceTicket)
		admin.PUT("/service-tickets/:id/status", h.changeServiceTicketStatus)
	}

	driver := protected.Group("/driver")
	driver.Use(requireRole(model.RoleDriver))
	{
		driver.GET("/rosters", h.listRosters)
		driver.GET("/rosters/:id", h.getRoster)
		driver.GET("/rosters/:id/trip", h.getActiveTrip)
		driver.GET("/rosters/:id/trips", h.listTrips)

		driver.POST("/trips/start-ride", h.startRide)
		driver.POST("/trips/:id/check-in", h.checkIn)
		driver.POST("/trips/:id/check-out", h.checkOut)
		driver.POST("/trips/:id/end-ride", h.endRide)
	}
}

func requireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := middleware.MustPrincipal(c)
		if !ok || principal.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, errorResponse("permission denied"))
			return
		}
		c.Next()
	}
}

type rosterRequest struct {
	ClientStoreID        string   `json:"client_store_id" binding:"required"`
	Type                 string   `json:"type"`
	Status               string   `json:"status"`
	DriverID             *string  `json:"driver_id"`
	VehicleID            *string  `json:"vehicle_id"`
	StartDate            string   `json:"start_date" binding:"required"`
	EndDate              string   `json:"end_date" binding:"required"`
	Holiday              []string `json:"holiday"`
	SlotStartTime        string   `json:"slot_start_time" binding:"required"`
	SlotEndTime          string   `json:"slot_end_time" binding:"required"`
	DestinationStationID string   `json:"destination_station_id" binding:"required"`
	Remarks              *string  `json:"remarks"`
}

func (r rosterRequest) toInput() service.SaveRosterInput {
	return service.SaveRosterInput{
		ClientStoreID:        r.ClientStoreID,
		Type:                 model.RosterType(strings.ToUpper(r.Type)),
		Status:               model.RosterStatus(strings.ToUpper(r.Status)),
		DriverID:             r.DriverID,
		VehicleID:            r.VehicleID,
		StartDate:            r.StartDate,
		EndDate:              r.EndDate,
		Holiday:              r.Holiday,
		SlotStartTime:        r.SlotStartTime,
		SlotEndTime:          r.SlotEndTime,
		DestinationStationID: r.DestinationStationID,
		Remarks:              r.Remarks,
	}
}

func (h *Handler) createRoster(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req rosterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	roster, err := h.rosterService.Create(c.Request.Context(), principal, req.toInput())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(roster))
}

func (h *Handler) updateRoster(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid roster id"))
		return
	}

	var req rosterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	roster, err := h.rosterService.Update(c.Request.Context(), principal, id, req.toInput())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(roster))
}

func (h *Handler) getRoster(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid roster id"))
		return
	}

	roster, err := h.rosterService.Get(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(roster))
}

func (h *Handler) listRosters(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	filter := repository.RosterListFilter{}

	if status := strings.TrimSpace(c.Query("status")); status != "" {
		rs := model.RosterStatus(strings.ToUpper(status))
		filter.Status = &rs
	}
	if rosterType := strings.TrimSpace(c.Query("type")); rosterType != "" {
		rt := model.RosterType(strings.ToUpper(rosterType))
		filter.Type = &rt
	}
	if city := strings.TrimSpace(c.Query("city")); city != "" {
		filter.City = &city
	}
	if clientID := strings.TrimSpace(c.Query("client_id")); clientID != "" {
		id, err := uuid.Parse(clientID)
		if err == nil {
			filter.ClientID = &id
		}
	}
	if driverID := strings.TrimSpace(c.Query("driver_id")); driverID != "" {
		id, err := uuid.Parse(driverID)
		if err == nil {
			filter.DriverID = &id
		}
	}

	rosters, err := h.rosterService.List(c.Request.Context(), principal, filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(rosters))
}

func (h *Handler) changeRosterStatus(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid roster id"))
		return
	}

	var req struct {
		Status  string `json:"status" binding:"required"`
		Remarks string `json:"remarks"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	status := model.RosterStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	roster, err := h.rosterService.ChangeStatus(c.Request.Context(), principal, id, status, strings.TrimSpace(req.Remarks))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(roster))
}

func (h *Handler) validateRoster(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid roster id"))
		return
	}

	roster, err := h.rosterService.Get(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	if err := h.rosterService.Validate(c.Request.Context(), roster); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"message": "roster is valid"}))
}

func (h *Handler) importRostersCSV(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("file is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("cannot open file"))
		return
	}
	defer file.Close()

	result, err := h.rosterService.ImportCSV(c.Request.Context(), principal, file)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(result))
}

func (h *Handler) startRide(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req struct {
		RosterID      string   `json:"roster_id" binding:"required"`
		StartKm       float64  `json:"start_km"`
		VehiclePhotos []string `json:"vehicle_photos"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	trip, err := h.tripService.StartRide(c.Request.Context(), principal, service.StartRideInput{
		RosterID:      req.RosterID,
		StartKm:       req.StartKm,
		VehiclePhotos: req.VehiclePhotos,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(trip))
}

func (h *Handler) checkIn(c *gin.Context) {
	h.tripCheckpoint(c, h.tripService.CheckIn)
}

func (h *Handler) checkOut(c *gin.Context) {
	h.tripCheckpoint(c, h.tripService.CheckOut)
}

type checkpointFunc func(ctx context.Context, principal model.Principal, input service.CheckpointInput) (*model.Trip, error)

func (h *Handler) tripCheckpoint(c *gin.Context, apply checkpointFunc) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid trip id"))
		return
	}

	var req struct {
		Lat  float64 `json:"lat"`
		Long float64 `json:"long"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	trip, err := apply(c.Request.Context(), principal, service.CheckpointInput{
		TripID: id,
		Lat:    req.Lat,
		Long:   req.Long,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(trip))
}

func (h *Handler) endRide(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid trip id"))
		return
	}

	var req struct {
		EndKm          float64 `json:"end_km"`
		TripSheetPhoto string  `json:"trip_sheet_photo"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	trip, err := h.tripService.EndRide(c.Request.Context(), principal, service.EndRideInput{
		TripID:         id,
		EndKm:          req.EndKm,
		TripSheetPhoto: req.TripSheetPhoto,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(trip))
}

func (h *Handler) getActiveTrip(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid roster id"))
		return
	}

	trip, err := h.tripService.ActiveTripForRoster(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(trip))
}

func (h *Handler) listTrips(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid roster id"))
		return
	}

	trips, err := h.tripService.ListByRoster(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(trips))
}

func (h *Handler) listDriverLogs(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid roster id"))
		return
	}

	logs, err := h.rosterService.DriverLogs(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(logs))
}

func (h *Handler) listVehicleLogs(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid roster id"))
		return
	}

	logs, err := h.rosterService.VehicleLogs(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(logs))
}

func (h *Handler) createServiceTicket(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req struct {
		VehicleID    string   `json:"vehicle_id" binding:"required"`
		IssueType    string   `json:"issue_type" binding:"required"`
		IssueSubtype string   `json:"issue_subtype"`
		Description  string   `json:"description"`
		Address      string   `json:"address"`
		Latitude     *float64 `json:"latitude"`
		Longitude    *float64 `json:"longitude"`
		Priority     string   `json:"priority"`
		Photos       []string `json:"photos"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	ticket, err := h.ticketService.Create(c.Request.Context(), principal, service.CreateTicketInput{
		VehicleID:    req.VehicleID,
		IssueType:    model.ServiceIssueType(strings.ToUpper(req.IssueType)),
		IssueSubtype: req.IssueSubtype,
		Description:  req.Description,
		Address:      req.Address,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		Priority:     model.ServicePriority(strings.ToUpper(req.Priority)),
		Photos:       req.Photos,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(ticket))
}

func (h *Handler) getServiceTicket(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid service ticket id"))
		return
	}

	ticket, err := h.ticketService.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(ticket))
}

func (h *Handler) listServiceTickets(c *gin.Context) {
	filter := repository.ServiceTicketListFilter{}

	if status := strings.TrimSpace(c.Query("status")); status != "" {
		ss := model.ServiceStatus(strings.ToUpper(status))
		filter.Status = &ss
	}
	if vehicleID := strings.TrimSpace(c.Query("vehicle_id")); vehicleID != "" {
		id, err := uuid.Parse(vehicleID)
		if err == nil {
			filter.VehicleID = &id
		}
	}

	tickets, err := h.ticketService.List(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(tickets))
}

func (h *Handler) changeServiceTicketStatus(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid service ticket id"))
		return
	}

	var req struct {
		Status  string `json:"status" binding:"required"`
		Remarks string `json:"remarks"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	status := model.ServiceStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	ticket, err := h.ticketService.ChangeStatus(c.Request.Context(), principal, id, status, strings.TrimSpace(req.Remarks))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(ticket))
}

func (h *Handler) handleError(c *gin.Context, err error) {
	var protocolErr *service.ProtocolError
	if errors.As(err, &protocolErr) {
		c.JSON(protocolErr.Status, gin.H{
			"code":  protocolErr.Code,
			"error": protocolErr.Message,
		})
		return
	}

	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, errorResponse(validationErr.Reason))
		return
	}

	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, errorResponse(err.Error()))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse(err.Error()))
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, errorResponse(err.Error()))
	default:
		h.log.Error().Err(err).Msg("handler error")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
	}
}

func successResponse(data interface{}) gin.H {
	return gin.H{
		"data": data,
	}
}

func errorResponse(message string) gin.H {
	return gin.H{
		"error": message,
	}
}
