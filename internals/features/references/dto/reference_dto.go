package dto

type ReferenceCreateRequest struct {
	Code string `json:"code" validate:"required"`
	Name string `json:"name" validate:"required"`
}

type ReferenceUpdateRequest struct {
	Code *string `json:"code"`
	Name *string `json:"name"`
}
