package controller

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"cafeapi/model"
	"cafeapi/repository"
	"cafeapi/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"
)

const (
	msgAdded          = "Successfully added the cafe"
	msgPriceUpdated   = "The price has been successfully updated"
	msgNoLocation     = "Sorry, we don't have a cafe at that location."
	msgNoID           = "Sorry a cafe with that id was not found in the database."
	msgEmptyStore     = "Sorry, there are no cafes in the database yet."
	msgDuplicateName  = "Sorry, a cafe with that name already exists."
	msgMissingPrice   = "The new_price query parameter is required."
	msgInternalServer = "Something went wrong."
)

type CafeStore interface {
	ListAll(ctx context.Context) ([]model.Cafe, error)
	Random(ctx context.Context) (model.Cafe, error)
	FindByLocation(ctx context.Context, location string) ([]model.Cafe, error)
	Create(ctx context.Context, cafe model.Cafe) (model.Cafe, error)
	UpdatePrice(ctx context.Context, id uint, price string) (model.Cafe, error)
}

type CafeController struct {
	store CafeStore
	log   *zap.Logger
}

func NewCafeController(store CafeStore, log *zap.Logger) *CafeController {
	return &CafeController{
		store: store,
		log:   log,
	}
}

func (h *CafeController) Home(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", nil)
}

func (h *CafeController) GetRandomCafe(c *gin.Context) {
	cafe, err := h.store.Random(c.Request.Context())
	if err != nil {
		if errors.Is(err, repository.ErrEmptyCollection) {
			utils.RespondError(c, http.StatusInternalServerError, "Internal Server Error", msgEmptyStore)
			return
		}
		h.internalError(c, "random cafe", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cafe": cafe.ToRepresentation()})
}

func (h *CafeController) GetAllCafes(c *gin.Context) {
	cafes, err := h.store.ListAll(c.Request.Context())
	if err != nil {
		h.internalError(c, "list cafes", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cafes": model.ToRepresentations(cafes)})
}

func (h *CafeController) SearchCafes(c *gin.Context) {
	location := c.Query("loc")

	cafes, err := h.store.FindByLocation(c.Request.Context(), location)
	if err != nil {
		h.internalError(c, "search cafes", err)
		return
	}
	if len(cafes) == 0 {
		utils.RespondError(c, http.StatusNotFound, "Not Found", msgNoLocation)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cafes": model.ToRepresentations(cafes)})
}

func (h *CafeController) AddCafe(c *gin.Context) {
	var req AddCafeRequest
	if err := c.ShouldBindWith(&req, binding.Form); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}

	created, err := h.store.Create(c.Request.Context(), req.Cafe())
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrInvalidInput):
			utils.RespondError(c, http.StatusBadRequest, "Bad Request", err.Error())
		case errors.Is(err, repository.ErrConflict):
			utils.RespondError(c, http.StatusConflict, "Conflict", msgDuplicateName)
		default:
			h.internalError(c, "add cafe", err)
		}
		return
	}

	h.log.Info("cafe added", zap.Uint("id", created.ID), zap.String("name", created.Name))
	utils.RespondSuccess(c, http.StatusOK, msgAdded)
}

func (h *CafeController) UpdatePrice(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("cafe_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, "Not Found", msgNoID)
		return
	}

	price, ok := c.GetQuery("new_price")
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, "Bad Request", msgMissingPrice)
		return
	}

	if _, err := h.store.UpdatePrice(c.Request.Context(), uint(id), price); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.RespondError(c, http.StatusNotFound, "Not Found", msgNoID)
			return
		}
		h.internalError(c, "update price", err)
		return
	}

	utils.RespondSuccess(c, http.StatusOK, msgPriceUpdated)
}

func (h *CafeController) internalError(c *gin.Context, op string, err error) {
	h.log.Error("cafe request failed", zap.String("op", op), zap.Error(err))
	_ = c.Error(err)
	utils.RespondError(c, http.StatusInternalServerError, "Internal Server Error", msgInternalServer)
}
