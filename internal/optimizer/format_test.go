package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/budget-service/internal/domain/model"
)

func TestFormat(t *testing.T) {
	americano := model.MenuItem{ID: "a", Name: "아메리카노", Price: 4000, Category: "커피"}
	cookie := model.MenuItem{ID: "c", Name: "쿠키", Price: 2500, Category: "디저트"}

	combo := Format([]model.MenuItem{cookie, americano, cookie}, nil)

	require.Len(t, combo.Items, 2)
	assert.Equal(t, model.CombinationItem{ID: "c", Name: "쿠키", Price: 2500, Category: "디저트", Count: 2}, combo.Items[0])
	assert.Equal(t, model.CombinationItem{ID: "a", Name: "아메리카노", Price: 4000, Category: "커피", Count: 1}, combo.Items[1])
	assert.Equal(t, 9000, combo.TotalPrice)
	assert.Equal(t, "쿠키 2개, 아메리카노 1개", combo.Description)
}

func TestFormat_Idempotent(t *testing.T) {
	in := picks("x", "y", "x")

	assert.Equal(t, Format(in, nil), Format(in, nil))
}

func TestFormat_CustomLabeler(t *testing.T) {
	combo := Format(picks("x", "x"), func(name string, count int) string {
		return name + "*" + string(rune('0'+count))
	})

	assert.Equal(t, "x*2", combo.Description)
}

func TestFormat_Empty(t *testing.T) {
	combo := Format(nil, nil)

	assert.Empty(t, combo.Items)
	assert.Zero(t, combo.TotalPrice)
	assert.Empty(t, combo.Description)
}

func TestFormat_NumericIDsKeepFirstPickOrder(t *testing.T) {
	tea := model.MenuItem{ID: "10", Name: "Tea", Price: 3000}
	bagel := model.MenuItem{ID: "2", Name: "Bagel", Price: 3500}

	combo := Format([]model.MenuItem{tea, bagel, tea}, nil)

	require.Len(t, combo.Items, 2)
	assert.Equal(t, "10", combo.Items[0].ID)
	assert.Equal(t, "2", combo.Items[1].ID)
	assert.Equal(t, "Tea 2개, Bagel 1개", combo.Description)
}
