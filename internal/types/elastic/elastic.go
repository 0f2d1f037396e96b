package elastic

// ProductDoc документ товара в поисковом индексе
type ProductDoc struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category"`
	Featured    bool   `json:"featured,omitempty"`
}
