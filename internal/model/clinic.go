package model

// Clinic represents a health facility mothers can book against. Deleting a
// clinic cascades to its appointments.
type Clinic struct {
	Base
	Name    string `json:"name" db:"name"`
	Address string `json:"address" db:"address"`
	Phone   string `json:"phone" db:"phone"`
}

// CreateClinicRequest represents clinic creation parameters
type CreateClinicRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
}

// UpdateClinicRequest represents clinic update parameters
type UpdateClinicRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
}
