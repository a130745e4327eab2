package category

import (
	_ "embed"
	"fmt"

	toml "github.com/pelletier/go-toml/v2"
)

//go:embed defaults.toml
var defaultsTOML []byte

type defaultEntry struct {
	Name  string `toml:"name"`
	Color string `toml:"color"`
	Icon  string `toml:"icon"`
}

type defaultSet struct {
	Income  []defaultEntry `toml:"income"`
	Expense []defaultEntry `toml:"expense"`
}

// Defaults returns the starter categories for ownerID, incomes first.
func Defaults(ownerID string) ([]*Category, error) {
	return parseDefaults(defaultsTOML, ownerID)
}

func parseDefaults(data []byte, ownerID string) ([]*Category, error) {
	var set defaultSet
	if err := toml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("decode default categories: %w", err)
	}

	out := make([]*Category, 0, len(set.Income)+len(set.Expense))

	add := func(entries []defaultEntry, dir Direction) {
		for _, e := range entries {
			out = append(out, &Category{
				OwnerID:   ownerID,
				Name:      e.Name,
				Direction: dir,
				Color:     e.Color,
				Icon:      e.Icon,
			})
		}
	}

	add(set.Income, DirectionIncome)
	add(set.Expense, DirectionExpense)

	return out, nil
}
