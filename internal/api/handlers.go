package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"linmod/app"
	"linmod/domain/core"
	apperrors "linmod/internal/errors"
	"linmod/ports"
)

func (s *Server) handleSimulate(c *gin.Context) {
	var req app.RunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(apperrors.InvalidInput(err.Error())))
		return
	}

	res, err := s.simService.Run(c.Request.Context(), req)
	if err != nil {
		c.JSON(statusFor(err), errorBody(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) handleSweep(c *gin.Context) {
	var req app.SweepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(apperrors.InvalidInput(err.Error())))
		return
	}

	res, err := s.sweepSvc.RunSweep(c.Request.Context(), req)
	if err != nil {
		c.JSON(statusFor(err), errorBody(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) handleListRuns(c *gin.Context) {
	if s.reader == nil {
		c.JSON(http.StatusServiceUnavailable,
			errorBody(apperrors.New(apperrors.CodeInternalError, "run ledger not configured")))
		return
	}

	filters := ports.RunFilters{Limit: 50}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			filters.Limit = n
		}
	}
	if v := c.Query("seed"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorBody(apperrors.InvalidInput("seed must be an integer")))
			return
		}
		filters.Seed = &seed
	}

	runs, err := s.reader.ListRuns(c.Request.Context(), filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorBody(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs, "count": len(runs)})
}

func (s *Server) handleGetRun(c *gin.Context) {
	if s.reader == nil {
		c.JSON(http.StatusServiceUnavailable,
			errorBody(apperrors.New(apperrors.CodeInternalError, "run ledger not configured")))
		return
	}

	id, err := core.ParseRunID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody(apperrors.InvalidInput(err.Error())))
		return
	}

	record, err := s.reader.GetRun(c.Request.Context(), id)
	if err != nil {
		c.JSON(statusFor(err), errorBody(err))
		return
	}
	c.JSON(http.StatusOK, record)
}

func (s *Server) handleReplay(c *gin.Context) {
	id, err := core.ParseRunID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody(apperrors.InvalidInput(err.Error())))
		return
	}

	res, err := s.simService.Replay(c.Request.Context(), id)
	if err != nil {
		c.JSON(statusFor(err), errorBody(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

// statusFor maps domain errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case core.IsInvalidParameterError(err), core.IsDegenerateSampleError(err):
		return http.StatusUnprocessableEntity
	case core.IsNotFoundError(err):
		return http.StatusNotFound
	case core.IsInconsistencyError(err), core.IsDeterminismError(err):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// errorBody builds the JSON error payload with a machine-readable code.
func errorBody(err error) gin.H {
	return gin.H{"error": err.Error(), "code": errorCode(err)}
}

// errorCode prefers the code carried by an AppError and otherwise derives one
// from the domain error family.
func errorCode(err error) string {
	if code := apperrors.GetCode(err); code != "" {
		return code
	}
	switch {
	case core.IsInvalidParameterError(err), core.IsDegenerateSampleError(err):
		return apperrors.CodeInvalidInput
	case core.IsNotFoundError(err):
		return apperrors.CodeNotFound
	default:
		return apperrors.CodeInternalError
	}
}
