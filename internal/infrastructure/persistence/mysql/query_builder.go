package mysql

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Predicate 一个WHERE条件及其绑定参数
// 条件之间用AND连接,参数按出现顺序使用?占位
type Predicate struct {
	SQL  string
	Args []interface{}
}

// SelectQuery 由同一组条件同时派生出分页查询和计数查询
type SelectQuery struct {
	Columns string      // SELECT的列
	From    string      // FROM子句(可包含JOIN)
	Where   []Predicate // AND连接的条件
	OrderBy string      // 为空时不排序
}

func (q SelectQuery) where() (string, []interface{}) {
	if len(q.Where) == 0 {
		return "", nil
	}

	parts := make([]string, 0, len(q.Where))
	args := make([]interface{}, 0, len(q.Where))
	for _, p := range q.Where {
		parts = append(parts, p.SQL)
		args = append(args, p.Args...)
	}
	return " WHERE " + strings.Join(parts, " AND "), args
}

// CountSQL 计数查询,参数与条件参数完全一致
func (q SelectQuery) CountSQL() (string, []interface{}) {
	where, args := q.where()
	return "SELECT COUNT(*) FROM " + q.From + where, args
}

// PageSQL 分页查询,参数为条件参数 + LIMIT + OFFSET
func (q SelectQuery) PageSQL(page, itemsPerPage int) (string, []interface{}) {
	where, args := q.where()

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(q.Columns)
	sb.WriteString(" FROM ")
	sb.WriteString(q.From)
	sb.WriteString(where)
	if q.OrderBy != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(q.OrderBy)
	}
	sb.WriteString(" LIMIT ? OFFSET ?")

	return sb.String(), append(args, itemsPerPage, (page-1)*itemsPerPage)
}

// BookFilter 图书列表过滤条件
type BookFilter struct {
	Search   string
	MinPrice int64
	MaxPrice int64
	HasMax   bool
}

// Predicates 生成过滤条件
// 1. 搜索词匹配书名或作者,双方都转小写,不依赖列的排序规则
// 2. MinPrice为0时不加下限
// 3. HasMax为false时不加上限
func (f BookFilter) Predicates() []Predicate {
	var preds []Predicate

	if f.Search != "" {
		pattern := "%" + escapeLike(strings.ToLower(f.Search)) + "%"
		preds = append(preds, Predicate{
			SQL:  "(LOWER(title) LIKE ? OR LOWER(writer) LIKE ?)",
			Args: []interface{}{pattern, pattern},
		})
	}

	if f.MinPrice > 0 {
		preds = append(preds, Predicate{SQL: "point >= ?", Args: []interface{}{f.MinPrice}})
	}

	if f.HasMax {
		preds = append(preds, Predicate{SQL: "point <= ?", Args: []interface{}{f.MaxPrice}})
	}

	return preds
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike 转义LIKE通配符,搜索词按字面匹配
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// queryPage 并发执行计数查询和分页查询
// 两条语句不在同一快照中,并发写入时total与当页数据可能有偏差
func queryPage[T any](ctx context.Context, db *gorm.DB, q SelectQuery, page, itemsPerPage int) ([]T, int64, error) {
	var (
		rows  []T
		total int64
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		sql, args := q.CountSQL()
		return db.WithContext(gctx).Raw(sql, args...).Scan(&total).Error
	})

	g.Go(func() error {
		sql, args := q.PageSQL(page, itemsPerPage)
		return db.WithContext(gctx).Raw(sql, args...).Scan(&rows).Error
	})

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
