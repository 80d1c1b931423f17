package book

import (
	"time"
)

// Book 图书实体(聚合根)
// 设计说明:
// 1. Point即价格(积分),非负整数
// 2. Tag为自由文本,客户端传入非字符串JSON时保存其原文
// 3. 删除为物理删除,没有软删除字段
type Book struct {
	ID         uint      `json:"id"`
	Title      string    `json:"title"`      // 书名
	Writer     string    `json:"writer"`     // 作者
	CoverImage string    `json:"coverImage"` // 封面图片URL
	Point      int64     `json:"point"`      // 价格
	Tag        string    `json:"tag"`        // 标签
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// NewBook 创建新图书(工厂方法)
// 调用方负责字段校验
func NewBook(title, writer, coverImage string, point int64, tag string) *Book {
	now := time.Now()
	return &Book{
		Title:      title,
		Writer:     writer,
		CoverImage: coverImage,
		Point:      point,
		Tag:        tag,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Replace 全字段更新(领域行为)
func (b *Book) Replace(title, writer, coverImage string, point int64, tag string) {
	b.Title = title
	b.Writer = writer
	b.CoverImage = coverImage
	b.Point = point
	b.Tag = tag
	b.UpdatedAt = time.Now()
}
