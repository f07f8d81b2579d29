package cache

import "fmt"

// ProductKey 商品详情缓存键
func ProductKey(id uint) string {
	return fmt.Sprintf("catalog:product:%d", id)
}
