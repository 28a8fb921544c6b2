// Package homes implements the listing resource: public search and lookup, and
// realtor-only create, update and delete guarded by an ownership check.
// It is the Go counterpart of the Nest.js HomeModule (controller + service + DTOs).
package homes

import (
	"fmt"
	"time"
)

// PropertyType mirrors the `property_type` enum in PostgreSQL.
type PropertyType string

const (
	PropertyTypeResidential PropertyType = "RESIDENTIAL"
	PropertyTypeCondo       PropertyType = "CONDO"
)

// ParsePropertyType converts a raw query value into a PropertyType.
func ParsePropertyType(s string) (PropertyType, error) {
	switch t := PropertyType(s); t {
	case PropertyTypeResidential, PropertyTypeCondo:
		return t, nil
	}
	return "", fmt.Errorf("unknown property type %q", s)
}

// HomeResponse is the listing view returned by every read endpoint.
// Image is the first image of the home; Images is only filled by GetHome.
type HomeResponse struct {
	ID                int          `json:"id" example:"1"`
	Address           string       `json:"address" example:"12 Main St"`
	City              string       `json:"city" example:"Toronto"`
	Price             float64      `json:"price" example:"350000"`
	LandSize          float64      `json:"land_size" example:"4400"`
	NumberOfBedrooms  int          `json:"number_of_bedrooms" example:"3"`
	NumberOfBathrooms float64      `json:"number_of_bathrooms" example:"2.5"`
	PropertyType      PropertyType `json:"property_type" example:"RESIDENTIAL"`
	ListedDate        time.Time    `json:"listed_date"`
	RealtorID         int          `json:"realtor_id" example:"42"`
	Image             *string      `json:"image,omitempty" example:"https://img.example.com/1.jpg"`
	Images            []string     `json:"images,omitempty"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

// ImageRequest is one image URL attached to a new home.
type ImageRequest struct {
	URL string `json:"url" validate:"required,url" example:"https://img.example.com/1.jpg"`
}

// CreateHomeRequest is the body of POST /home.
type CreateHomeRequest struct {
	Address           string         `json:"address" validate:"required" example:"12 Main St"`
	City              string         `json:"city" validate:"required" example:"Toronto"`
	Price             float64        `json:"price" validate:"gt=0" example:"350000"`
	LandSize          float64        `json:"land_size" validate:"gt=0" example:"4400"`
	NumberOfBedrooms  int            `json:"number_of_bedrooms" validate:"gte=0" example:"3"`
	NumberOfBathrooms float64        `json:"number_of_bathrooms" validate:"gte=0" example:"2.5"`
	PropertyType      PropertyType   `json:"property_type" validate:"required,oneof=RESIDENTIAL CONDO" example:"RESIDENTIAL"`
	Images            []ImageRequest `json:"images" validate:"dive"`
}

// UpdateHomeRequest is the body of PUT /home/{id}. Nil fields are left unchanged.
type UpdateHomeRequest struct {
	Address           *string       `json:"address,omitempty" validate:"omitempty,min=1"`
	City              *string       `json:"city,omitempty" validate:"omitempty,min=1"`
	Price             *float64      `json:"price,omitempty" validate:"omitempty,gt=0"`
	LandSize          *float64      `json:"land_size,omitempty" validate:"omitempty,gt=0"`
	NumberOfBedrooms  *int          `json:"number_of_bedrooms,omitempty" validate:"omitempty,gte=0"`
	NumberOfBathrooms *float64      `json:"number_of_bathrooms,omitempty" validate:"omitempty,gte=0"`
	PropertyType      *PropertyType `json:"property_type,omitempty" validate:"omitempty,oneof=RESIDENTIAL CONDO"`
}

// Realtor is the owning realtor of a home.
type Realtor struct {
	ID    int    `json:"id" example:"42"`
	Name  string `json:"name" example:"Rita Realtor"`
	Email string `json:"email" example:"rita@example.com"`
	Phone string `json:"phone" example:"555 555-0123"`
}
