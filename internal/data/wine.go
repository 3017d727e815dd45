package data

// Wine represents a single document in the "wines" collection.
// Every field but ID is a pointer so an absent value stays absent and a
// zero value ("" or 0) is kept.
type Wine struct {
	ID          string   `json:"_id,omitempty"`
	Name        *string  `json:"name,omitempty"`
	Year        *int     `json:"year,omitempty"`
	Country     *string  `json:"country,omitempty"`
	Description *string  `json:"description,omitempty"`
	Image       *string  `json:"image,omitempty"`
	Price       *float64 `json:"price,omitempty"`
}
