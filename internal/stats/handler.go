package stats

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	httperr "github.com/aevon-lab/diarystats/internal/core/errors"
	"github.com/aevon-lab/diarystats/internal/diary"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all stats API routes on the given router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.GET("/v1/stats/:username", s.HandleStats)
}

// statusClientClosedRequest is the nginx convention for a caller that went away.
const statusClientClosedRequest = 499

// HandleStats handles GET /v1/stats/:username
// Query parameters: year (optional, four digits), refresh (optional, bypasses the cache)
func (s *Service) HandleStats(c *gin.Context) {
	var uri struct {
		Username string `uri:"username" binding:"required"`
	}
	var query struct {
		Year    int  `form:"year" binding:"omitempty,min=1000,max=9999"`
		Refresh bool `form:"refresh"`
	}

	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid path parameters",
			Details:   err.Error(),
		})
		return
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid query parameters",
			Details:   err.Error(),
		})
		return
	}

	summarize := s.Summarize
	if query.Refresh {
		summarize = s.Refresh
	}

	report, err := summarize(c.Request.Context(), uri.Username, query.Year)
	if err != nil {
		status, body := errorResponse(err)
		if status >= http.StatusInternalServerError {
			slog.Error("[Stats] Request failed",
				"username", uri.Username,
				"year", query.Year,
				"status", status,
				"error", err,
			)
		}
		c.JSON(status, body)
		return
	}

	c.JSON(http.StatusOK, report)
}

// errorResponse maps a Summarize error to an HTTP status and body.
func errorResponse(err error) (int, httperr.ErrorResponse) {
	var fetchErr *diary.FetchError

	switch {
	case errors.Is(err, ErrInvalidQuery):
		return http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid stats query",
			Details:   err.Error(),
		}
	case errors.Is(err, diary.ErrPageLimit):
		return http.StatusBadGateway, httperr.ErrorResponse{
			ErrorType: httperr.HttpPageLimitError,
			Message:   "Diary is longer than the configured page limit",
			Details:   err.Error(),
		}
	case errors.Is(err, context.Canceled):
		return statusClientClosedRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpRequestCancelled,
			Message:   "Request cancelled before the stats were ready",
			Details:   err.Error(),
		}
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, httperr.ErrorResponse{
			ErrorType: httperr.HttpUpstreamTimeout,
			Message:   "Timed out reading the diary",
			Details:   err.Error(),
		}
	case errors.As(err, &fetchErr) && fetchErr.Status == http.StatusNotFound:
		return http.StatusNotFound, httperr.ErrorResponse{
			ErrorType: httperr.HttpUserNotFoundError,
			Message:   "User not found",
			Details:   err.Error(),
		}
	case fetchErr != nil:
		return http.StatusBadGateway, httperr.ErrorResponse{
			ErrorType: httperr.HttpUpstreamError,
			Message:   "Failed to fetch diary page",
			Details:   err.Error(),
		}
	default:
		return http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   "Failed to build stats",
			Details:   err.Error(),
		}
	}
}
