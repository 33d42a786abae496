package v1

import (
	"go-portfolio-backend/internal/delivery/http/response"
	"go-portfolio-backend/internal/domain"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ElementHandler struct {
	elementUC domain.ElementUsecase
}

func NewElementHandler(public *gin.RouterGroup, elementUC domain.ElementUsecase) {
	handler := &ElementHandler{elementUC: elementUC}

	elements := public.Group("/elements")
	{
		elements.GET("", handler.List)
		elements.GET("/:id", handler.Get)
		elements.GET("/related/:id", handler.Related)
	}
}

// ListElements godoc
// @Summary      List evaluation elements
// @Tags         elements
// @Produce      json
// @Success      200  {array}   domain.Element
// @Router       /elements [get]
func (h *ElementHandler) List(c *gin.Context) {
	elements, err := h.elementUC.ListElements(c)
	if err != nil {
		c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, elements)
}

// GetElement godoc
// @Summary      Get an evaluation element
// @Tags         elements
// @Produce      json
// @Param        id   path      int  true  "Element ID"
// @Success      200  {object}  domain.Element
// @Failure      400  {object}  response.ErrorBody
// @Failure      404  {object}  response.ErrorBody
// @Router       /elements/{id} [get]
func (h *ElementHandler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	element, err := h.elementUC.GetElement(c, id)
	if err != nil {
		c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, element)
}

// RelatedElements godoc
// @Summary      Elements shown next to an element
// @Description  Previous, next and next+1 by id. The first element's previous is the last one.
// @Tags         elements
// @Produce      json
// @Param        id   path      int  true  "Element ID"
// @Success      200  {array}   domain.Element
// @Failure      404  {object}  response.ErrorBody
// @Router       /elements/related/{id} [get]
func (h *ElementHandler) Related(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	related, err := h.elementUC.RelatedElements(c, id)
	if err != nil {
		c.Error(err)
		return
	}
	response.JSON(c, http.StatusOK, related)
}
