package handler

import (
	"github.com/gin-gonic/gin"
)

// itemsPerPage 每页数量，limit是itemsPerPage的别名
func itemsPerPage(c *gin.Context) string {
	if v := c.Query("itemsPerPage"); v != "" {
		return v
	}
	return c.Query("limit")
}
