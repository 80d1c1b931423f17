package book

import (
	"encoding/json"

	"github.com/xiebiao/bookstore-backend/pkg/validate"
)

const tracerName = "book-usecase"

// BookInput 创建/更新图书的原始输入
// Point保留json.Number,Tag保留原始JSON,由validate统一校验
type BookInput struct {
	Title      string
	Writer     string
	CoverImage string
	Point      json.Number
	Tag        json.RawMessage
}

// bookFields 校验后的图书字段
type bookFields struct {
	title      string
	writer     string
	coverImage string
	point      int64
	tag        string
}

// validate 按字段顺序校验,返回第一个错误
func (in BookInput) validate() (bookFields, error) {
	var f bookFields

	for _, field := range []struct {
		name  string
		value string
	}{
		{"title", in.Title},
		{"writer", in.Writer},
		{"coverImage", in.CoverImage},
	} {
		if err := validate.Required(field.name, field.value); err != nil {
			return f, err
		}
	}

	point, err := validate.NonNegativeInt("point", in.Point)
	if err != nil {
		return f, err
	}

	tag, err := validate.Tag(in.Tag)
	if err != nil {
		return f, err
	}

	return bookFields{
		title:      in.Title,
		writer:     in.Writer,
		coverImage: in.CoverImage,
		point:      point,
		tag:        tag,
	}, nil
}
