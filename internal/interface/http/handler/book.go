package handler

import (
	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/bookstore-backend/internal/application/book"
	"github.com/xiebiao/bookstore-backend/internal/interface/http/dto"
	apperrors "github.com/xiebiao/bookstore-backend/pkg/errors"
	"github.com/xiebiao/bookstore-backend/pkg/response"
)

// BookHandler 图书HTTP处理器
// Handler只负责HTTP相关的事情：解析请求、调用应用层、返回响应
type BookHandler struct {
	listBooks  *appbook.ListBooksUseCase
	getBook    *appbook.GetBookUseCase
	createBook *appbook.CreateBookUseCase
	updateBook *appbook.UpdateBookUseCase
	deleteBook *appbook.DeleteBookUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	listBooks *appbook.ListBooksUseCase,
	getBook *appbook.GetBookUseCase,
	createBook *appbook.CreateBookUseCase,
	updateBook *appbook.UpdateBookUseCase,
	deleteBook *appbook.DeleteBookUseCase,
) *BookHandler {
	return &BookHandler{
		listBooks:  listBooks,
		getBook:    getBook,
		createBook: createBook,
		updateBook: updateBook,
		deleteBook: deleteBook,
	}
}

// ListBooks 图书列表
// @Summary      图书列表
// @Description  分页查询图书，支持按书名/作者模糊搜索和价格区间过滤
// @Tags         图书模块
// @Produce      json
// @Param        page          query  int     false  "页码（默认1）"
// @Param        itemsPerPage  query  int     false  "每页数量（默认10，也可用limit）"
// @Param        search        query  string  false  "书名或作者关键词"
// @Param        minPrice      query  int     false  "最低价格"
// @Param        maxPrice      query  string  false  "最高价格（Infinity表示不限）"
// @Success      200 {object} response.Response{data=response.PageData{documents=[]dto.BookResponse}}
// @Failure      400 {object} response.Response "参数错误"
// @Router       /books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	result, err := h.listBooks.Execute(c.Request.Context(), appbook.ListBooksRequest{
		Page:         c.Query("page"),
		ItemsPerPage: itemsPerPage(c),
		Search:       c.Query("search"),
		MinPrice:     c.Query("minPrice"),
		MaxPrice:     c.Query("maxPrice"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, dto.NewBookResponses(result.Books), result.Total, result.Page, result.ItemsPerPage)
}

// GetBook 图书详情
// @Summary      图书详情
// @Tags         图书模块
// @Produce      json
// @Param        id  path  int  true  "图书ID"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      400 {object} response.Response "ID非法"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	b, err := h.getBook.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewBookResponse(b))
}

// CreateBook 上架图书
// @Summary      上架图书
// @Tags         图书模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.BookRequest true "图书信息"
// @Success      201 {object} response.Response{data=dto.BookResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      401 {object} response.Response "未登录"
// @Failure      422 {object} response.Response "图书未创建"
// @Router       /books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	input, ok := bindBook(c)
	if !ok {
		return
	}

	b, err := h.createBook.Execute(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NewBookResponse(b))
}

// UpdateBook 全量更新图书
// @Summary      更新图书
// @Tags         图书模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path  int              true  "图书ID"
// @Param        request body  dto.BookRequest  true  "图书信息（全部字段）"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      401 {object} response.Response "未登录"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	input, ok := bindBook(c)
	if !ok {
		return
	}

	b, err := h.updateBook.Execute(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewBookResponse(b))
}

// DeleteBook 删除图书
// @Summary      删除图书
// @Tags         图书模块
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "图书ID"
// @Success      200 {object} response.Response{data=dto.DeleteBookResponse}
// @Failure      400 {object} response.Response "ID非法"
// @Failure      401 {object} response.Response "未登录"
// @Failure      404 {object} response.Response "图书不存在"
// @Failure      409 {object} response.Response "图书已被订购"
// @Router       /books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, err := h.deleteBook.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.DeleteBookResponse{ID: id})
}

// bindBook 解析请求体，JSON格式错误返回400
func bindBook(c *gin.Context) (appbook.BookInput, bool) {
	var req dto.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.ErrBindError.WithErr(err))
		return appbook.BookInput{}, false
	}
	return appbook.BookInput{
		Title:      req.Title,
		Writer:     req.Writer,
		CoverImage: req.CoverImage,
		Point:      req.Point,
		Tag:        req.Tag,
	}, true
}
