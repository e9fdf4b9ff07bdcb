package handler

import (
	"errors"
	"net/http"
	"strconv"

	"gymbeauty/internal/middleware"
	"gymbeauty/internal/model"
	"gymbeauty/internal/service"
	"gymbeauty/pkg/pagination"
	"gymbeauty/pkg/response"

	"github.com/gin-gonic/gin"
)

type MemberHandler struct {
	memberService service.MemberService
}

func NewMemberHandler(memberService service.MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

func (h *MemberHandler) RegisterRoutes(router *gin.RouterGroup) {
	members := router.Group("/members", middleware.RequireRole("admin", "staff"))
	{
		members.GET("", h.List)
		members.POST("", h.Create)
		members.POST("/preview-id", h.PreviewCode)
		members.POST("/gym-info", h.UpsertGymInfo)
		members.POST("/beauty-health", h.UpsertHealthInfo)
		members.GET("/qr/:code", h.GetByQRCode)
		members.GET("/:id", h.Get)
		members.PUT("/:id", h.Update)
		members.DELETE("/:id", h.Delete)
		members.PUT("/:id/photo", h.UpdatePhoto)
		members.GET("/:id/gym-info", h.GetGymInfo)
		members.GET("/:id/beauty-health", h.GetHealthInfo)
	}
}

func memberID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid member ID"))
		return 0, false
	}
	return uint(id), true
}

// List returns members with optional name/phone/code search
// @Summary      List members
// @Tags         members
// @Security     BearerAuth
// @Produce      json
// @Param        page    query     int     false  "Page number"
// @Param        limit   query     int     false  "Items per page"
// @Param        search  query     string  false  "Search by name, phone or code"
// @Success      200     {object}  response.Response{data=[]model.Member}
// @Router       /api/members [get]
func (h *MemberHandler) List(c *gin.Context) {
	p := pagination.Parse(c)
	members, total, err := h.memberService.List(c.Request.Context(), p.Page, p.Limit, c.Query("search"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, members, p.Page, p.Limit, total))
}

// Create registers a member, generating a unique TGC code when none is given
// @Summary      Create member
// @Tags         members
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateMemberRequest  true  "New member"
// @Success      201      {object}  response.Response{data=model.Member}
// @Failure      400      {object}  response.Response
// @Router       /api/members [post]
func (h *MemberHandler) Create(c *gin.Context) {
	var req service.CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	member, err := h.memberService.Create(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicateCode):
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		case errors.Is(err, service.ErrCodeSpaceExhausted):
			c.JSON(http.StatusServiceUnavailable, response.Error(http.StatusServiceUnavailable, err.Error()))
		default:
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		}
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, member))
}

// PreviewCode mints an unused member code without saving anything
// @Summary      Preview member code
// @Description  Returns a code that is free right now; actual uniqueness is still decided at creation
// @Tags         members
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /api/members/preview-id [post]
func (h *MemberHandler) PreviewCode(c *gin.Context) {
	code, err := h.memberService.PreviewCode(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrCodeSpaceExhausted) {
			c.JSON(http.StatusServiceUnavailable, response.Error(http.StatusServiceUnavailable, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"qrCodeId": code}))
}

// Get returns one member by ID
// @Summary      Get member
// @Tags         members
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Member ID"
// @Success      200  {object}  response.Response{data=model.Member}
// @Failure      404  {object}  response.Response
// @Router       /api/members/{id} [get]
func (h *MemberHandler) Get(c *gin.Context) {
	id, ok := memberID(c)
	if !ok {
		return
	}
	member, err := h.memberService.Get(c.Request.Context(), id)
	if err != nil {
		respondMemberErr(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, member))
}

// GetByQRCode resolves a scanned code to a member
// @Summary      Get member by code
// @Tags         members
// @Security     BearerAuth
// @Produce      json
// @Param        code  path      string  true  "Member code"
// @Success      200   {object}  response.Response{data=model.Member}
// @Failure      404   {object}  response.Response
// @Router       /api/members/qr/{code} [get]
func (h *MemberHandler) GetByQRCode(c *gin.Context) {
	member, err := h.memberService.GetByQRCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondMemberErr(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, member))
}

// Update edits a member's profile
// @Summary      Update member
// @Tags         members
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int                          true  "Member ID"
// @Param        payload  body      service.UpdateMemberRequest  true  "Updated fields"
// @Success      200      {object}  response.Response{data=model.Member}
// @Failure      404      {object}  response.Response
// @Router       /api/members/{id} [put]
func (h *MemberHandler) Update(c *gin.Context) {
	id, ok := memberID(c)
	if !ok {
		return
	}
	var req service.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	member, err := h.memberService.Update(c.Request.Context(), id, req)
	if err != nil {
		respondMemberErr(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, member))
}

// UpdatePhoto replaces the member photo
// @Summary      Update member photo
// @Tags         members
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int                         true  "Member ID"
// @Param        payload  body      service.UpdatePhotoRequest  true  "Base64 photo"
// @Success      200      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/members/{id}/photo [put]
func (h *MemberHandler) UpdatePhoto(c *gin.Context) {
	id, ok := memberID(c)
	if !ok {
		return
	}
	var req service.UpdatePhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	if err := h.memberService.UpdatePhoto(c.Request.Context(), id, req.Photo); err != nil {
		respondMemberErr(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Photo updated"))
}

// Delete removes a member and their gym records
// @Summary      Delete member
// @Description  Deletes a member with their check-ins, payments and questionnaires. Blocked while beauty service records exist.
// @Tags         members
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Member ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/members/{id} [delete]
func (h *MemberHandler) Delete(c *gin.Context) {
	id, ok := memberID(c)
	if !ok {
		return
	}
	if err := h.memberService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrHasBeautyServices) {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
			return
		}
		respondMemberErr(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Member deleted"))
}

// GetGymInfo returns the gym questionnaire
// @Summary      Get gym info
// @Tags         members
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Member ID"
// @Success      200  {object}  response.Response{data=model.GymInfo}
// @Failure      404  {object}  response.Response
// @Router       /api/members/{id}/gym-info [get]
func (h *MemberHandler) GetGymInfo(c *gin.Context) {
	id, ok := memberID(c)
	if !ok {
		return
	}
	info, err := h.memberService.GetGymInfo(c.Request.Context(), id)
	if err != nil {
		respondMemberErr(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, info))
}

// UpsertGymInfo creates or replaces the gym questionnaire
// @Summary      Upsert gym info
// @Tags         members
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      model.GymInfo  true  "Questionnaire with memberId"
// @Success      200      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/members/gym-info [post]
func (h *MemberHandler) UpsertGymInfo(c *gin.Context) {
	var info model.GymInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	if info.MemberID == 0 {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "memberId is required"))
		return
	}

	if err := h.memberService.UpsertGymInfo(c.Request.Context(), info.MemberID, &info); err != nil {
		respondMemberErr(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, info))
}

// GetHealthInfo returns the salon health questionnaire
// @Summary      Get health info
// @Tags         members
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Member ID"
// @Success      200  {object}  response.Response{data=model.BeautyHealthInfo}
// @Failure      404  {object}  response.Response
// @Router       /api/members/{id}/beauty-health [get]
func (h *MemberHandler) GetHealthInfo(c *gin.Context) {
	id, ok := memberID(c)
	if !ok {
		return
	}
	info, err := h.memberService.GetHealthInfo(c.Request.Context(), id)
	if err != nil {
		respondMemberErr(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, info))
}

// UpsertHealthInfo creates or replaces the salon health questionnaire
// @Summary      Upsert beauty health info
// @Tags         members
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      model.BeautyHealthInfo  true  "Questionnaire with memberId"
// @Success      200      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/members/beauty-health [post]
func (h *MemberHandler) UpsertHealthInfo(c *gin.Context) {
	var info model.BeautyHealthInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	if info.MemberID == 0 {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "memberId is required"))
		return
	}

	if err := h.memberService.UpsertHealthInfo(c.Request.Context(), info.MemberID, &info); err != nil {
		respondMemberErr(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, info))
}

func respondMemberErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMemberNotFound), errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
	}
}
