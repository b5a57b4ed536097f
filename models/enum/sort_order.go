package enum

// SortOrder 表示商品列表的排序方式
type SortOrder string

const (
	SortOrderName      SortOrder = "name"
	SortOrderPriceAsc  SortOrder = "price-asc"
	SortOrderPriceDesc SortOrder = "price-desc"
)
