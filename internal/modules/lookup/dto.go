package lookup

type CreateEntryRequest struct {
	Name string `json:"name" binding:"required"`
}
