package data

import (
	"context"
	"errors"
	"fmt"
)

// ResetResult holds the records created by Reset.
type ResetResult struct {
	Books []Book
	Wines []Wine
}

// Records returns the created books followed by the created wines.
func (r ResetResult) Records() []any {
	out := make([]any, 0, len(r.Books)+len(r.Wines))
	for _, b := range r.Books {
		out = append(out, b)
	}
	for _, w := range r.Wines {
		out = append(out, w)
	}
	return out
}

// Reset clears both collections and reloads the seed data, in this order:
// remove all books, insert the book seeds, remove all wines, insert the wine
// seeds. Each step starts after the previous one returns. A failed step does
// not stop the later ones and nothing is rolled back; the failures are
// returned joined.
func (m Models) Reset(ctx context.Context) (ResetResult, error) {
	var result ResetResult

	seeds, err := LoadSeeds()
	if err != nil {
		return result, fmt.Errorf("load seeds: %w", err)
	}

	var errs []error
	if _, err := m.Books.DeleteAll(ctx); err != nil {
		errs = append(errs, fmt.Errorf("remove books: %w", err))
	}
	if result.Books, err = m.Books.InsertMany(ctx, seeds.Books); err != nil {
		errs = append(errs, fmt.Errorf("create books: %w", err))
	}
	if _, err := m.Wines.DeleteAll(ctx); err != nil {
		errs = append(errs, fmt.Errorf("remove wines: %w", err))
	}
	if result.Wines, err = m.Wines.InsertMany(ctx, seeds.Wines); err != nil {
		errs = append(errs, fmt.Errorf("create wines: %w", err))
	}
	return result, errors.Join(errs...)
}
