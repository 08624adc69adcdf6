package dto

type CreateBookRequest struct {
	Name   string  `json:"name" validate:"required"`
	Author string  `json:"author" validate:"required"`
	Price  float64 `json:"price" validate:"required,min=3"`
}

type UpdateBookRequest struct {
	Name   *string  `json:"name,omitempty" validate:"omitempty,min=1"`
	Author *string  `json:"author,omitempty" validate:"omitempty,min=1"`
	Price  *float64 `json:"price,omitempty" validate:"omitempty,min=3"`
}
