package models

import "github.com/m04kA/DrivingSchool-BookingService/internal/domain"

// LocationResponse ответ с данными локации
type LocationResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Street      string `json:"street,omitempty"`
	HouseNumber string `json:"houseNumber,omitempty"`
	PostalCode  string `json:"postalCode,omitempty"`
	City        string `json:"city,omitempty"`
	Address     string `json:"address"`
}

// LocationListResponse ответ со списком локаций
type LocationListResponse struct {
	Locations []LocationResponse `json:"locations"`
}

// FromDomainLocation конвертирует domain модель в DTO
func FromDomainLocation(l *domain.Location) *LocationResponse {
	if l == nil {
		return nil
	}

	return &LocationResponse{
		ID:          l.ID,
		Name:        l.Name,
		Street:      l.Street,
		HouseNumber: l.HouseNumber,
		PostalCode:  l.PostalCode,
		City:        l.City,
		Address:     l.Address(),
	}
}

// FromDomainLocationList конвертирует список domain моделей в DTO
func FromDomainLocationList(locations []*domain.Location) *LocationListResponse {
	resp := &LocationListResponse{
		Locations: make([]LocationResponse, 0, len(locations)),
	}

	for _, l := range locations {
		if lResp := FromDomainLocation(l); lResp != nil {
			resp.Locations = append(resp.Locations, *lResp)
		}
	}

	return resp
}
