package models

import "time"

type Contact struct {
	ID                string
	Name              string
	Email             string
	Phone             string
	Address           string
	CompanyName       string
	DateOfBirth       string
	DateOfAnniversary string
	Categories        []string
	CreatedAt         time.Time
}
