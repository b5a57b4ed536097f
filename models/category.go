package models

// Category 代表目錄分類，目錄為扁平結構，沒有子分類
type Category struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// CategoryAll is the pseudo category that matches every product.
const CategoryAll = "all"
