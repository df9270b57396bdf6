package finance

import (
	"net/http"

	"go-uerp/internal/shared/apperror"
	"go-uerp/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("finance.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("finance.handler")
	}
	return &Handler{service: service, logger: l}
}

func getActorID(c *gin.Context) string {
	actorID := c.GetString("employee_id")
	if actorID == "" {
		actorID = c.GetString("user_id")
	}
	return actorID
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("finance request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) CreateFee(c *gin.Context) {
	campusID := c.GetString("campus_id")
	actorID := getActorID(c)

	var req CreateFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.CreateFee(c.Request.Context(), campusID, actorID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetAllFees(c *gin.Context) {
	campusID := c.GetString("campus_id")
	q := response.ParsePageQuery(c, response.DefaultLimit)

	var studentID *string
	if v := c.Query("student_id"); v != "" {
		studentID = &v
	}

	resp, total, err := h.service.GetFeePage(c.Request.Context(), campusID, studentID, q.Page, q.Limit)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	meta := response.NewPaginationMeta(total, q.Page, q.Limit)
	response.Success(c, http.StatusOK, resp, &meta)
}

func (h *Handler) GetFeeByID(c *gin.Context) {
	campusID := c.GetString("campus_id")

	resp, err := h.service.GetFeeByID(c.Request.Context(), campusID, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) DeleteFee(c *gin.Context) {
	campusID := c.GetString("campus_id")

	if err := h.service.DeleteFee(c.Request.Context(), campusID, c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) RecordPayment(c *gin.Context) {
	campusID := c.GetString("campus_id")
	actorID := getActorID(c)

	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.RecordPayment(c.Request.Context(), campusID, actorID, c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetPaymentsByFee(c *gin.Context) {
	campusID := c.GetString("campus_id")

	resp, err := h.service.GetPaymentsByFee(c.Request.Context(), campusID, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
