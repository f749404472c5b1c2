package handler

import (
	"github.com/branchstock/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

// ArticleHandler handles article endpoints
type ArticleHandler struct {
	BaseHandler
	articleService *catalog.ArticleService
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(articleService *catalog.ArticleService) *ArticleHandler {
	return &ArticleHandler{articleService: articleService}
}

// Create godoc
// @ID           createArticle
// @Summary      Create an article
// @Description  Add an article to a branch. Names are unique per branch.
// @Tags         articles
// @Accept       json
// @Produce      json
// @Param        request body catalog.CreateArticleRequest true "Article creation request"
// @Success      201 {object} dto.Response{data=catalog.ArticleResponse}
// @Failure      400 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Router       /articles [post]
func (h *ArticleHandler) Create(c *gin.Context) {
	var req catalog.CreateArticleRequest
	if !h.bindJSON(c, &req) {
		return
	}

	article, err := h.articleService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, article)
}

// List godoc
// @ID           listArticles
// @Summary      List articles
// @Description  List every article of every branch, ordered by name
// @Tags         articles
// @Produce      json
// @Success      200 {object} dto.Response{data=[]catalog.ArticleResponse}
// @Failure      500 {object} dto.Response
// @Router       /articles [get]
func (h *ArticleHandler) List(c *gin.Context) {
	articles, err := h.articleService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, articles)
}

// ListByBranch godoc
// @ID           listBranchArticles
// @Summary      List a branch's articles
// @Tags         articles
// @Produce      json
// @Param        id path string true "Branch ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]catalog.ArticleResponse}
// @Failure      400 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Router       /articles/branch/{id} [get]
func (h *ArticleHandler) ListByBranch(c *gin.Context) {
	branchID, ok := h.pathID(c)
	if !ok {
		return
	}

	articles, err := h.articleService.ListByBranch(c.Request.Context(), branchID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, articles)
}

// GetByID godoc
// @ID           getArticleById
// @Summary      Get article by ID
// @Tags         articles
// @Produce      json
// @Param        id path string true "Article ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalog.ArticleResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Router       /articles/{id} [get]
func (h *ArticleHandler) GetByID(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	article, err := h.articleService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, article)
}

// Update godoc
// @ID           updateArticle
// @Summary      Update an article
// @Description  Change an article's name, code, branch or description. Omitted fields keep their value.
// @Tags         articles
// @Accept       json
// @Produce      json
// @Param        id path string true "Article ID" format(uuid)
// @Param        request body catalog.UpdateArticleRequest true "Article update request"
// @Success      200 {object} dto.Response{data=catalog.ArticleResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Router       /articles/{id} [put]
func (h *ArticleHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req catalog.UpdateArticleRequest
	if !h.bindJSON(c, &req) {
		return
	}

	article, err := h.articleService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, article)
}

// Delete godoc
// @ID           deleteArticle
// @Summary      Delete an article
// @Description  Items and stock entries keep the article id
// @Tags         articles
// @Param        id path string true "Article ID" format(uuid)
// @Success      204
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Router       /articles/{id} [delete]
func (h *ArticleHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.articleService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
