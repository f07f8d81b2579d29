package repository

import "gorm.io/gorm"

// 单页上限，防止客户端一次拉取整个商品目录
const maxPageSize = 100

// pageWindow 归一化页码与页大小；pageSize<=0 表示不分页
func pageWindow(page, pageSize int) (limit, offset int) {
	if pageSize <= 0 {
		return -1, 0
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	if page < 1 {
		page = 1
	}
	return pageSize, (page - 1) * pageSize
}

func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if query == nil {
		return query
	}
	limit, offset := pageWindow(page, pageSize)
	if limit < 0 {
		return query
	}
	return query.Limit(limit).Offset(offset)
}
