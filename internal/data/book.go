// Package data provides the record types and the typed models that read and
// write them through the document store.
package data

// Book represents a single document in the "books" collection. Text fields
// are pointers so an empty string sent by a client is stored as such, while
// a field the client left out stays absent.
type Book struct {
	ID          string  `json:"_id,omitempty"`         // Identifier assigned by the store
	Title       *string `json:"title,omitempty"`       // Title of the book
	Author      *string `json:"author,omitempty"`      // Author's name
	Image       *string `json:"image,omitempty"`       // Cover image URL
	ReleaseDate *string `json:"releaseDate,omitempty"` // Release date as sent by the client
}
