package data

import (
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed seeds/*.yaml
var seedFS embed.FS

// Seeds is the fixed initial dataset reloaded by Reset.
type Seeds struct {
	Books []Book
	Wines []Wine
}

// LoadSeeds returns the embedded seed data. The files are parsed once.
var LoadSeeds = sync.OnceValues(func() (Seeds, error) {
	var seeds Seeds
	var err error
	if seeds.Books, err = loadSeedFile[Book]("seeds/books.yaml"); err != nil {
		return Seeds{}, err
	}
	if seeds.Wines, err = loadSeedFile[Wine]("seeds/wines.yaml"); err != nil {
		return Seeds{}, err
	}
	return seeds, nil
})

func loadSeedFile[R any](name string) ([]R, error) {
	b, err := seedFS.ReadFile(name)
	if err != nil {
		return nil, err
	}
	var entries []map[string]any
	if err := yaml.Unmarshal(b, &entries); err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	recs := make([]R, 0, len(entries))
	for i, entry := range entries {
		rec, err := Decode[R](entry)
		if err != nil {
			return nil, fmt.Errorf("%s entry %d: %w", name, i, err)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}
