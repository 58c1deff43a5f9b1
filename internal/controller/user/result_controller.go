package user

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/quizmind/quizmind-api/internal/controller"
	"github.com/quizmind/quizmind-api/internal/dto"
	"github.com/quizmind/quizmind-api/internal/middleware"
	"github.com/quizmind/quizmind-api/internal/service"
	"github.com/rs/zerolog/log"
)

type ResultController struct {
	scoringService service.ScoringService
}

func NewResultController(scoringService service.ScoringService) *ResultController {
	return &ResultController{scoringService: scoringService}
}

// SubmitResult godoc
// @Summary Submit answers for scoring
// @Description Scores the submission, ranks it against all prior results for the test, and persists the result.
// @Tags Results
// @Accept json
// @Produce json
// @Param submission body dto.ResultSubmitDTO true "Answers and timing"
// @Success 201 {object} dto.TestResultDetailDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid submission payload"
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /test-results [post]
func (c *ResultController) SubmitResult(ctx *gin.Context) {
	principal, ok := middleware.GetPrincipal(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Not authorized, no token"})
		return
	}

	var req dto.ResultSubmitDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	result, err := c.scoringService.SubmitResult(principal.ID, req, ctx.ClientIP())
	if err != nil {
		log.Error().Err(err).Uint("userID", principal.ID).Uint("testID", req.TestID).Msg("SubmitResult: service error")
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, result)
}

// GetMyResults godoc
// @Summary List own results
// @Description Paginated list of the authenticated user's results, newest first.
// @Tags Results
// @Produce json
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 10)"
// @Param test_id query int false "Filter by test"
// @Success 200 {object} dto.PaginatedResultsDTO
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /test-results/user [get]
func (c *ResultController) GetMyResults(ctx *gin.Context) {
	principal, ok := middleware.GetPrincipal(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Not authorized, no token"})
		return
	}

	page, limit := pagination(ctx)
	testID, err := optionalUintQuery(ctx, "test_id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid test_id format"})
		return
	}

	results, err := c.scoringService.ListUserResults(principal.ID, testID, page, limit)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, results)
}

// GetResultByID godoc
// @Summary Get one result with full detail
// @Description Returns a persisted result including per-answer question detail. Owner or admin only.
// @Tags Results
// @Produce json
// @Param result_id path int true "Result ID"
// @Success 200 {object} dto.TestResultDetailDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid Result ID format"
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Failure 403 {object} dto.ErrorResponse "Result belongs to another user"
// @Failure 404 {object} dto.ErrorResponse "Result not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /test-results/user/{result_id} [get]
func (c *ResultController) GetResultByID(ctx *gin.Context) {
	principal, ok := middleware.GetPrincipal(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Not authorized, no token"})
		return
	}

	resultID, err := strconv.ParseUint(ctx.Param("result_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Result ID format"})
		return
	}

	result, err := c.scoringService.GetResult(uint(resultID), principal.ID, principal.Role)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

func pagination(ctx *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}

func optionalUintQuery(ctx *gin.Context, key string) (*uint, error) {
	raw := ctx.Query(key)
	if raw == "" {
		return nil, nil
	}
	val, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, err
	}
	id := uint(val)
	return &id, nil
}
