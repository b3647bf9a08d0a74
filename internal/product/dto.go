package product

type ListProductsResponse struct {
	TraceID  string       `json:"traceId"`
	Category string       `json:"category,omitempty"`
	Products []ProductDTO `json:"products"`
}

type ProductDTO struct {
	TraceID      string   `json:"traceId,omitempty"`
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	DisplayName  string   `json:"displayName"`
	Variants     []string `json:"variants"`
	Category     string   `json:"category"`
	Price        float64  `json:"price"`
	PriceLabel   string   `json:"priceLabel"`
	Unit         string   `json:"unit"`
	PackageSizes []string `json:"packageSizes"`
}
