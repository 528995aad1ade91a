package model

import (
	"bytes"
	"encoding/json"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
)

type Cafe struct {
	ID           uint    `json:"id" gorm:"column:id;primaryKey"`
	Name         string  `json:"name" gorm:"column:name;type:varchar(250);unique;not null"`
	MapURL       string  `json:"map_url" gorm:"column:map_url;type:varchar(500);not null"`
	ImgURL       string  `json:"img_url" gorm:"column:img_url;type:varchar(500);not null"`
	Location     string  `json:"location" gorm:"column:location;type:varchar(250);not null"`
	Seats        string  `json:"seats" gorm:"column:seats;type:varchar(250);not null"`
	HasToilet    bool    `json:"has_toilet" gorm:"column:has_toilet;not null"`
	HasWifi      bool    `json:"has_wifi" gorm:"column:has_wifi;not null"`
	HasSockets   bool    `json:"has_sockets" gorm:"column:has_sockets;not null"`
	CanTakeCalls bool    `json:"can_take_calls" gorm:"column:can_take_calls;not null"`
	CoffeePrice  *string `json:"coffee_price" gorm:"column:coffee_price;type:varchar(250)"`
}

func (Cafe) TableName() string {
	return "cafe"
}

// Validate checks presence of the required columns and the column length limits.
func (c Cafe) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Name, validation.Required, validation.RuneLength(1, 250)),
		validation.Field(&c.MapURL, validation.Required, validation.RuneLength(1, 500)),
		validation.Field(&c.ImgURL, validation.Required, validation.RuneLength(1, 500)),
		validation.Field(&c.Location, validation.Required, validation.RuneLength(1, 250)),
		validation.Field(&c.Seats, validation.Required, validation.RuneLength(1, 250)),
		validation.Field(&c.CoffeePrice, validation.RuneLength(0, 250)),
	)
}

// Field is one column of a cafe representation.
type Field struct {
	Name  string
	Value any
}

// Representation is the flat view of a cafe used in API responses. Fields
// keep the table declaration order.
type Representation []Field

// ToRepresentation lists every column of the cafe table with its value.
func (c Cafe) ToRepresentation() Representation {
	var price any
	if c.CoffeePrice != nil {
		price = *c.CoffeePrice
	}

	return Representation{
		{Name: "id", Value: c.ID},
		{Name: "name", Value: c.Name},
		{Name: "map_url", Value: c.MapURL},
		{Name: "img_url", Value: c.ImgURL},
		{Name: "location", Value: c.Location},
		{Name: "seats", Value: c.Seats},
		{Name: "has_toilet", Value: c.HasToilet},
		{Name: "has_wifi", Value: c.HasWifi},
		{Name: "has_sockets", Value: c.HasSockets},
		{Name: "can_take_calls", Value: c.CanTakeCalls},
		{Name: "coffee_price", Value: price},
	}
}

func ToRepresentations(cafes []Cafe) []Representation {
	reps := make([]Representation, len(cafes))
	for i, cafe := range cafes {
		reps[i] = cafe.ToRepresentation()
	}
	return reps
}

func (r Representation) Map() map[string]any {
	m := make(map[string]any, len(r))
	for _, f := range r {
		m[f.Name] = f.Value
	}
	return m
}

func (r Representation) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ParseFlag reads an amenity form field. Checkbox values ("on") and the usual
// truthy spellings are true; absent, empty or anything else is false.
func ParseFlag(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "on", "true", "t", "1", "yes", "y":
		return true
	default:
		return false
	}
}
