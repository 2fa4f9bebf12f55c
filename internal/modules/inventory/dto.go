package inventory

type CreateItemRequest struct {
	Name     string `json:"name" binding:"required"`
	Category string `json:"category" binding:"required"`
	Quantity int    `json:"quantity" binding:"gte=0"`
	Minimum  int    `json:"minimum" binding:"required,gt=0"`
	Unit     string `json:"unit"`
	Location string `json:"location"`
	Status   string `json:"status"`
}

// UpdateItemRequest is a partial update; nil fields stay unchanged.
type UpdateItemRequest struct {
	Name     *string `json:"name"`
	Category *string `json:"category"`
	Quantity *int    `json:"quantity" binding:"omitempty,gte=0"`
	Minimum  *int    `json:"minimum" binding:"omitempty,gt=0"`
	Unit     *string `json:"unit"`
	Location *string `json:"location"`
	Status   *string `json:"status"`
}

// MovementRequest adds (positive) or withdraws (negative) stock.
type MovementRequest struct {
	Delta int `json:"delta" binding:"required"`
}

type ListFilter struct {
	Q      string `form:"q"`
	Health string `form:"health"`
}
