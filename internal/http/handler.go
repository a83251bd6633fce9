package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"intervention-service/internal/http/middleware"
	"intervention-service/internal/model"
	"intervention-service/internal/service"
)

type Handler struct {
	zoneService         *service.ZoneService
	userService         *service.UserService
	typeService         *service.InterventionTypeService
	interventionService *service.InterventionService
	planningService     *service.PlanningService
	log                 zerolog.Logger
}

func NewHandler(
	zoneService *service.ZoneService,
	userService *service.UserService,
	typeService *service.InterventionTypeService,
	interventionService *service.InterventionService,
	planningService *service.PlanningService,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		zoneService:         zoneService,
		userService:         userService,
		typeService:         typeService,
		interventionService: interventionService,
		planningService:     planningService,
		log:                 log,
	}
}

// Register wires the dashboard routes. Paths match what the admin front-end
// consumes; responses are plain JSON bodies, errors are {"error": message}.
func (h *Handler) Register(r *gin.Engine, authMiddleware gin.HandlerFunc) {
	r.POST("/login_check", h.login)

	protected := r.Group("/")
	protected.Use(authMiddleware)

	zones := protected.Group("/zones")
	{
		zones.GET("", h.listZones)
		zones.POST("", h.createZone)
		zones.PUT("/:id/edit", h.updateZone)
		zones.DELETE("/:id", h.deleteZone)
	}

	users := protected.Group("/users")
	{
		users.GET("", h.listUsers)
		users.POST("", h.createUser)
		users.GET("/role-ROLE_TECHNICIEN", h.listTechnicians)
		users.GET("/:id", h.getUser)
		users.PUT("/:id", h.updateUser)
		users.DELETE("/:id", h.deleteUser)
	}

	types := protected.Group("/types-intervention")
	{
		types.GET("", h.listInterventionTypes)
		types.POST("", h.createInterventionType)
		types.GET("/:id", h.getInterventionType)
		types.PUT("/:id", h.updateInterventionType)
		types.DELETE("/:id", h.deleteInterventionType)
	}

	planningModels := protected.Group("/modeles-planning")
	{
		planningModels.GET("", h.listPlanningModels)
		planningModels.POST("", h.createPlanningModel)
		planningModels.GET("/:id", h.getPlanningModel)
		planningModels.DELETE("/:id", h.deletePlanningModel)
	}

	slots := protected.Group("/modele-interventions")
	{
		slots.POST("", h.createModelIntervention)
		slots.DELETE("/:id", h.deleteModelIntervention)
	}

	interventions := protected.Group("/interventions")
	{
		interventions.POST("", h.createIntervention)
		interventions.GET("/stats", h.interventionStats)
		interventions.GET("/next-interventions", h.nextInterventions)
		interventions.GET("/mine", h.myInterventions)
		interventions.GET("/technicien/:id", h.interventionsByTechnician)
		interventions.DELETE("/delete", h.bulkDeleteInterventions)
		interventions.DELETE("/:id", h.deleteIntervention)
	}

	protected.POST("/new-interventions", h.generateInterventions)
}

func (h *Handler) login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	token, err := h.userService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

type zoneRequest struct {
	Name        string             `json:"name" binding:"required"`
	Color       string             `json:"color" binding:"required"`
	Coordinates []model.Coordinate `json:"coordinates" binding:"required"`
	Technician  *struct {
		ID int64 `json:"id"`
	} `json:"technician"`
}

func (r zoneRequest) toInput() service.ZoneInput {
	input := service.ZoneInput{
		Name:        r.Name,
		Color:       r.Color,
		Coordinates: r.Coordinates,
	}
	if r.Technician != nil {
		input.TechnicianID = &r.Technician.ID
	}
	return input
}

func (h *Handler) listZones(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	zones, err := h.zoneService.List(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, zones)
}

func (h *Handler) createZone(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req zoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	zone, err := h.zoneService.Create(c.Request.Context(), principal, req.toInput())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": zone.ID})
}

func (h *Handler) updateZone(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid zone id"))
		return
	}

	var req zoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	zone, err := h.zoneService.Update(c.Request.Context(), principal, id, req.toInput())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, zone)
}

func (h *Handler) deleteZone(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid zone id"))
		return
	}

	if err := h.zoneService.Delete(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) listUsers(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	users, err := h.userService.List(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

func (h *Handler) createUser(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req struct {
		Email     string   `json:"email" binding:"required"`
		Password  string   `json:"password" binding:"required"`
		FirstName string   `json:"first_name"`
		LastName  string   `json:"last_name"`
		Roles     []string `json:"roles"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	user, err := h.userService.Create(c.Request.Context(), principal, service.CreateUserInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Roles:     req.Roles,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *Handler) listTechnicians(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	technicians, err := h.userService.ListTechnicians(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, technicians)
}

func (h *Handler) getUser(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid user id"))
		return
	}

	user, err := h.userService.Get(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *Handler) updateUser(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid user id"))
		return
	}

	var req struct {
		Email     string   `json:"email"`
		FirstName string   `json:"first_name"`
		LastName  string   `json:"last_name"`
		Roles     []string `json:"roles"`
		Password  string   `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	user, err := h.userService.Update(c.Request.Context(), principal, id, service.UpdateUserInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Roles:     req.Roles,
		Password:  req.Password,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *Handler) deleteUser(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid user id"))
		return
	}

	if err := h.userService.Delete(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

type interventionTypeRequest struct {
	Name          string  `json:"name" binding:"required"`
	Duration      string  `json:"duration" binding:"required"`
	StartingPrice float64 `json:"starting_price"`
}

func (h *Handler) listInterventionTypes(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	types, err := h.typeService.List(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, types)
}

func (h *Handler) createInterventionType(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req interventionTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	interventionType, err := h.typeService.Create(c.Request.Context(), principal, service.InterventionTypeInput{
		Name:          req.Name,
		Duration:      req.Duration,
		StartingPrice: req.StartingPrice,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, interventionType)
}

func (h *Handler) getInterventionType(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid type id"))
		return
	}

	interventionType, err := h.typeService.Get(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, interventionType)
}

func (h *Handler) updateInterventionType(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid type id"))
		return
	}

	var req interventionTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	interventionType, err := h.typeService.Update(c.Request.Context(), principal, id, service.InterventionTypeInput{
		Name:          req.Name,
		Duration:      req.Duration,
		StartingPrice: req.StartingPrice,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, interventionType)
}

func (h *Handler) deleteInterventionType(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid type id"))
		return
	}

	if err := h.typeService.Delete(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) listPlanningModels(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	models, err := h.planningService.ListModels(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, models)
}

func (h *Handler) createPlanningModel(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	planningModel, err := h.planningService.CreateModel(c.Request.Context(), principal, req.Name)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, planningModel)
}

func (h *Handler) getPlanningModel(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid model id"))
		return
	}

	planningModel, err := h.planningService.GetModel(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, planningModel)
}

func (h *Handler) deletePlanningModel(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid model id"))
		return
	}

	if err := h.planningService.DeleteModel(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) createModelIntervention(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req struct {
		PlanningModelID    int64  `json:"planning_model" binding:"required"`
		InterventionTypeID int64  `json:"intervention_type" binding:"required"`
		InterventionTime   string `json:"intervention_time" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	slot, err := h.planningService.CreateSlot(c.Request.Context(), principal, service.CreateSlotInput{
		PlanningModelID:    req.PlanningModelID,
		InterventionTypeID: req.InterventionTypeID,
		InterventionTime:   req.InterventionTime,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, slot)
}

func (h *Handler) deleteModelIntervention(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid slot id"))
		return
	}

	if err := h.planningService.DeleteSlot(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) createIntervention(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req struct {
		InterventionTypeID int64  `json:"intervention_type" binding:"required"`
		TechnicianID       *int64 `json:"technician"`
		StartAt            string `json:"start_at" binding:"required"`
		Address            string `json:"address"`
		ClientName         string `json:"client_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	intervention, err := h.interventionService.Create(c.Request.Context(), principal, service.CreateInterventionInput{
		InterventionTypeID: req.InterventionTypeID,
		TechnicianID:       req.TechnicianID,
		StartAt:            req.StartAt,
		Address:            req.Address,
		ClientName:         req.ClientName,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, intervention)
}

func (h *Handler) deleteIntervention(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid intervention id"))
		return
	}

	if err := h.interventionService.Delete(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) bulkDeleteInterventions(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req struct {
		Technicians []int64 `json:"technicians" binding:"required"`
		From        string  `json:"from" binding:"required"`
		To          string  `json:"to" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	deleted, err := h.interventionService.BulkDelete(c.Request.Context(), principal, service.BulkDeleteInput{
		TechnicianIDs: req.Technicians,
		From:          req.From,
		To:            req.To,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

func (h *Handler) interventionStats(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	stats, err := h.interventionService.Stats(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *Handler) nextInterventions(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	upcoming, err := h.interventionService.Upcoming(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, upcoming)
}

func (h *Handler) myInterventions(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	from, to := rangeQuery(c)
	interventions, err := h.interventionService.ListByTechnician(c.Request.Context(), principal, principal.UserID, from, to)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, interventions)
}

func (h *Handler) interventionsByTechnician(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid technician id"))
		return
	}

	from, to := rangeQuery(c)
	interventions, err := h.interventionService.ListByTechnician(c.Request.Context(), principal, id, from, to)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, interventions)
}

func (h *Handler) generateInterventions(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req struct {
		Model       int64   `json:"model" binding:"required"`
		Technicians []int64 `json:"technicians" binding:"required"`
		From        string  `json:"from" binding:"required"`
		To          string  `json:"to" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	created, err := h.planningService.Generate(c.Request.Context(), principal, service.GenerateInput{
		PlanningModelID: req.Model,
		TechnicianIDs:   req.Technicians,
		From:            req.From,
		To:              req.To,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"created": created})
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, errorResponse(err.Error()))
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

func errorResponse(message string) gin.H {
	return gin.H{
		"error": message,
	}
}

func parseID(raw string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
}

func rangeQuery(c *gin.Context) (*time.Time, *time.Time) {
	var from, to *time.Time
	if raw := c.Query("from"); raw != "" {
		if parsed, err := time.Parse("2006-01-02", raw); err == nil {
			from = &parsed
		}
	}
	if raw := c.Query("to"); raw != "" {
		if parsed, err := time.Parse("2006-01-02", raw); err == nil {
			end := parsed.AddDate(0, 0, 1)
			to = &end
		}
	}
	return from, to
}
