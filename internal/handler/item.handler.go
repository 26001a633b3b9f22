package handler

import (
	"fmt"
	"net/http"

	"github.com/duccv/whereisit/internal/constant"
	"github.com/duccv/whereisit/internal/model"
	"github.com/duccv/whereisit/internal/repository"
	"github.com/duccv/whereisit/internal/validation"
	"github.com/gin-gonic/gin"
)

// ItemParams is the :id segment of the item routes. The value is not checked here:
// malformed ids surface as store errors.
type ItemParams struct {
	ID string `uri:"id" validate:"required"`
}

// MyItemsQuery is the query of GET /myItems. A missing email is kept nil and
// matches items without a contact email.
type MyItemsQuery struct {
	Email *string `form:"email"`
}

type ItemHandler struct {
	items repository.ItemRepository
}

func NewItemHandler(items repository.ItemRepository) *ItemHandler {
	return &ItemHandler{items: items}
}

// ListItems godoc
//
//	@Summary	List every lost item
//	@Tags		Items
//	@Produce	json
//	@Success	200	{array}		object
//	@Failure	401	{object}	response.ResponseData
//	@Failure	403	{object}	response.ResponseData
//	@Router		/allItems [get]
func (h *ItemHandler) ListItems(c *gin.Context) {
	items, err := h.items.FindAll(c.Request.Context())
	if err != nil {
		abortInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// CreateItem godoc
//
//	@Summary	Report a lost or found item
//	@Tags		Items
//	@Accept		json
//	@Produce	json
//	@Param		item	body		object	true	"item document"
//	@Success	200		{object}	model.InsertResult
//	@Failure	500		{object}	response.ResponseData
//	@Router		/allItems [post]
func (h *ItemHandler) CreateItem(c *gin.Context) {
	item, err := bindDocument(c)
	if err != nil {
		abortInternal(c, fmt.Errorf("decode item: %w", err))
		return
	}

	res, err := h.items.Insert(c.Request.Context(), item)
	if err != nil {
		abortInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetItem godoc
//
//	@Summary		Get one item
//	@Description	Returns the item or null. Supports If-None-Match.
//	@Tags			Items
//	@Produce		json
//	@Param			id	path		string	true	"item ObjectID"
//	@Success		200	{object}	object
//	@Success		304	{string}	string	"Not Modified"
//	@Failure		500	{object}	response.ResponseData
//	@Router			/allItems/{id} [get]
func (h *ItemHandler) GetItem(c *gin.Context) {
	params := validation.Params[ItemParams](c)

	item, err := h.items.FindByID(c.Request.Context(), params.ID)
	if err != nil {
		abortInternal(c, err)
		return
	}
	respondWithETag(c, item)
}

// UpdateItem godoc
//
//	@Summary		Update an item
//	@Description	Sets every posted field. status is only written when non-empty; _id is ignored.
//	@Tags			Items
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string	true	"item ObjectID"
//	@Param			item	body		object	true	"fields to set"
//	@Success		200		{object}	model.UpdateResult
//	@Failure		500		{object}	response.ResponseData
//	@Router			/allItems/{id} [put]
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	params := validation.Params[ItemParams](c)

	body, err := bindDocument(c)
	if err != nil {
		abortInternal(c, fmt.Errorf("decode item update: %w", err))
		return
	}

	status, set, ok := model.SplitStatus(body)
	if ok {
		set[model.ItemStatusField] = status
	}

	res, err := h.items.Update(c.Request.Context(), params.ID, set)
	if err != nil {
		abortInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// LatestItems godoc
//
//	@Summary	Six most recent items
//	@Tags		Items
//	@Produce	json
//	@Success	200	{array}	object
//	@Success	304	{string}	string	"Not Modified"
//	@Router		/latestItems [get]
func (h *ItemHandler) LatestItems(c *gin.Context) {
	items, err := h.items.FindLatest(c.Request.Context(), constant.LatestItemLimit)
	if err != nil {
		abortInternal(c, err)
		return
	}
	respondWithETag(c, items)
}

// MyItems godoc
//
//	@Summary	Items posted with a contact email
//	@Tags		Items
//	@Produce	json
//	@Param		email	query		string	false	"contact email"
//	@Success	200		{array}		object
//	@Failure	401		{object}	response.ResponseData
//	@Failure	403		{object}	response.ResponseData
//	@Router		/myItems [get]
func (h *ItemHandler) MyItems(c *gin.Context) {
	query := validation.Query[MyItemsQuery](c)

	items, err := h.items.FindByContactEmail(c.Request.Context(), query.Email)
	if err != nil {
		abortInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// DeleteItem godoc
//
//	@Summary	Delete an item
//	@Tags		Items
//	@Produce	json
//	@Param		id	path		string	true	"item ObjectID"
//	@Success	200	{object}	model.DeleteResult
//	@Failure	500	{object}	response.ResponseData
//	@Router		/myItems/{id} [delete]
func (h *ItemHandler) DeleteItem(c *gin.Context) {
	params := validation.Params[ItemParams](c)

	res, err := h.items.Delete(c.Request.Context(), params.ID)
	if err != nil {
		abortInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
