package entity

import "time"

// Department dependencia interna de la corporación que supervisa convenios.
type Department struct {
	ID        string
	Name      string
	Code      string
	Status    string // active, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
