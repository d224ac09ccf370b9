package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/unilink/unilink/internal/app/services"
)

// UniversityController serves the university and major reference lists
type UniversityController struct {
	universityService services.UniversityService
	logger            zerolog.Logger
}

// NewUniversityController creates a new UniversityController
func NewUniversityController(universityService services.UniversityService, logger zerolog.Logger) *UniversityController {
	return &UniversityController{
		universityService: universityService,
		logger:            logger,
	}
}

// GetUniversitiesNameList returns all universities
// @Summary List universities
// @Tags universities
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.NameResponse
// @Router /api/universities/get-universities-name-list [get]
func (c *UniversityController) GetUniversitiesNameList(ctx *gin.Context) {
	universities, err := c.universityService.GetUniversitiesNameList(ctx.Request.Context())
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, universities)
}

// GetMajorsNameList returns all majors
// @Summary List majors
// @Tags universities
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.NameResponse
// @Router /api/universities/get-majors-name-list [get]
func (c *UniversityController) GetMajorsNameList(ctx *gin.Context) {
	majors, err := c.universityService.GetMajorsNameList(ctx.Request.Context())
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, majors)
}
