package domain

import "fmt"

// Location represents a pickup point from the school's catalog
type Location struct {
	ID          int64
	Name        string
	Street      string
	HouseNumber string
	PostalCode  string
	City        string
}

// Address formats the location address, falling back to the name when the address is empty
func (l *Location) Address() string {
	if l.Street == "" {
		return l.Name
	}
	return fmt.Sprintf("%s %s, %s %s", l.Street, l.HouseNumber, l.PostalCode, l.City)
}
