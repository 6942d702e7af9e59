package dish

import "time"

// Type categorizes a dish within the catalog.
type Type string

const (
	TypeEntree Type = "entree"
	TypeSide   Type = "side"
	TypeOther  Type = "other"
)

// Valid reports whether t is one of the known dish types.
func (t Type) Valid() bool {
	switch t {
	case TypeEntree, TypeSide, TypeOther:
		return true
	}
	return false
}

// Dish is a named food item in the household catalog.
type Dish struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      Type      `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Update carries a partial dish update; nil fields are left unchanged.
type Update struct {
	Name *string
	Type *Type
}
