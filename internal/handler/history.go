package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/krishna-deora/Synthetic-Radio-Host/internal/dto"
	"github.com/krishna-deora/Synthetic-Radio-Host/internal/response"
	apperrors "github.com/krishna-deora/Synthetic-Radio-Host/pkg/errors"
)

func (h Handler) GetHistory(c *gin.Context) {
	var req dto.GetHistoryReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeInvalidParams, "Invalid parameters", err))
		return
	}

	items, err := h.Service.History(req)
	if err != nil {
		response.ErrorResponse(c, err)
		return
	}
	response.Success(c, items)
}

func (h Handler) DeleteHistory(c *gin.Context) {
	historyId := c.Param("id")
	if historyId == "" {
		response.ErrorResponse(c, apperrors.ErrInvalidParams)
		return
	}

	if err := h.Service.DeleteHistory(historyId); err != nil {
		response.ErrorResponse(c, err)
		return
	}
	response.Success(c, nil)
}
