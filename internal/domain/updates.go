package domain

// Update structs carry merge semantics: nil fields leave the stored value
// untouched.

type RestaurantUpdate struct {
	Name    *string `json:"name,omitempty"`
	Address *string `json:"address,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Email   *string `json:"email,omitempty"`
}

type FoodUpdate struct {
	Name        *string  `json:"name,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Category    *string  `json:"category,omitempty"`
	ImageURL    *string  `json:"image_url,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
	IsAvailable *bool    `json:"is_available,omitempty"`
}

type TableUpdate struct {
	Number     *int  `json:"number,omitempty"`
	Capacity   *int  `json:"capacity,omitempty"`
	IsOccupied *bool `json:"is_occupied,omitempty"`
}
