package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/quizmind/quizmind-api/internal/controller"
	"github.com/quizmind/quizmind-api/internal/dto"
	"github.com/quizmind/quizmind-api/internal/service"
)

type AdminResultController struct {
	scoringService service.ScoringService
}

func NewAdminResultController(scoringService service.ScoringService) *AdminResultController {
	return &AdminResultController{scoringService: scoringService}
}

// ListResults godoc
// @Summary (Admin) List all test results
// @Description Paginated list of every result, optionally filtered by test or user.
// @Tags Admin - Results
// @Produce json
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 20)"
// @Param test_id query int false "Filter by test"
// @Param user_id query int false "Filter by user"
// @Success 200 {object} dto.PaginatedResultsDTO
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Failure 403 {object} dto.ErrorResponse "Role not permitted"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /admin/test-results [get]
func (c *AdminResultController) ListResults(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	testID, err := optionalUintQuery(ctx, "test_id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid test_id format"})
		return
	}
	userID, err := optionalUintQuery(ctx, "user_id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid user_id format"})
		return
	}

	results, err := c.scoringService.ListAllResults(testID, userID, page, limit)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, results)
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
