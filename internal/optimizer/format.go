package optimizer

import (
	"fmt"
	"strings"

	"github.com/guttosm/budget-service/internal/domain/model"
)

// Labeler renders one "item x count" fragment of a description.
type Labeler func(name string, count int) string

// DefaultLabeler renders "<name> <count>개".
func DefaultLabeler(name string, count int) string {
	return fmt.Sprintf("%s %d개", name, count)
}

// Format collapses picks into distinct items with counts, in the order each
// item was first picked. A nil labeler uses DefaultLabeler.
func Format(picks []model.MenuItem, labeler Labeler) model.Combination {
	if labeler == nil {
		labeler = DefaultLabeler
	}

	items := make([]model.CombinationItem, 0, len(picks))
	index := make(map[string]int, len(picks))
	for _, p := range picks {
		if i, ok := index[p.ID]; ok {
			items[i].Count++
			continue
		}
		index[p.ID] = len(items)
		items = append(items, model.CombinationItem{
			ID:       p.ID,
			Name:     p.Name,
			Price:    p.Price,
			Category: p.Category,
			Count:    1,
		})
	}

	total := 0
	labels := make([]string, len(items))
	for i, it := range items {
		total += it.Subtotal()
		labels[i] = labeler(it.Name, it.Count)
	}

	return model.Combination{
		Items:       items,
		TotalPrice:  total,
		Description: strings.Join(labels, ", "),
	}
}
