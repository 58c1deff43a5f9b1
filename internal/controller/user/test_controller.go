package user

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/quizmind/quizmind-api/internal/controller"
	"github.com/quizmind/quizmind-api/internal/dto"
	"github.com/quizmind/quizmind-api/internal/service"
	"github.com/rs/zerolog/log"
)

type TestController struct {
	catalogService service.CatalogService
	scoringService service.ScoringService
}

func NewTestController(catalogService service.CatalogService, scoringService service.ScoringService) *TestController {
	return &TestController{catalogService: catalogService, scoringService: scoringService}
}

// GetAllTests godoc
// @Summary List active tests
// @Description Lists every active test with its question count.
// @Tags Tests
// @Produce json
// @Success 200 {array} dto.TestSummaryDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /tests [get]
func (c *TestController) GetAllTests(ctx *gin.Context) {
	tests, err := c.catalogService.GetAllTests()
	if err != nil {
		log.Error().Err(err).Msg("GetAllTests: service error")
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, tests)
}

// GetTestQuestions godoc
// @Summary Get a test for solving
// @Description Returns the test and its questions with the correct answers stripped.
// @Tags Tests
// @Produce json
// @Param test_id path int true "Test ID"
// @Success 200 {object} dto.SolvableTestDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid Test ID or inactive test"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /tests/{test_id}/questions [get]
func (c *TestController) GetTestQuestions(ctx *gin.Context) {
	testID, err := strconv.ParseUint(ctx.Param("test_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Test ID format"})
		return
	}

	solvable, err := c.catalogService.GetSolvableTest(uint(testID))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, solvable)
}

// QuickSubmit godoc
// @Summary Score a positional submission
// @Description Historic endpoint: scores answers aligned with question order and returns a summary without persisting a result.
// @Tags Tests
// @Accept json
// @Produce json
// @Param test_id path int true "Test ID"
// @Param submission body dto.QuickSubmitDTO true "Positional answers"
// @Success 200 {object} dto.QuickSubmitResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input or inactive test"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /tests/{test_id}/submit [post]
func (c *TestController) QuickSubmit(ctx *gin.Context) {
	testID, err := strconv.ParseUint(ctx.Param("test_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Test ID format"})
		return
	}

	var req dto.QuickSubmitDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	summary, err := c.scoringService.QuickSubmit(uint(testID), req)
	if err != nil {
		log.Warn().Err(err).Uint64("testID", testID).Msg("QuickSubmit: service error")
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, summary)
}
