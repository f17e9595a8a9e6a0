package model

import "time"

// BudgetStatus summarises spending against the monthly budget.
//
// @Description Monthly budget status
// @Example {"total_budget": 50000, "spent": 12000, "remaining": 38000, "percent_used": 24, "year": 2026, "month": 10}
type BudgetStatus struct {
	TotalBudget int     `json:"total_budget" example:"50000"`
	Spent       int     `json:"spent" example:"12000"`
	Remaining   int     `json:"remaining" example:"38000"`
	PercentUsed float64 `json:"percent_used" example:"24"`
	Year        int     `json:"year" example:"2026"`
	Month       int     `json:"month" example:"10"`
}

// NewBudgetStatus computes the status for a budget and amount spent.
// PercentUsed is capped at 100; Remaining may go negative when overspent.
func NewBudgetStatus(budget, spent, year, month int) BudgetStatus {
	percent := 0.0
	if budget > 0 {
		percent = float64(spent) / float64(budget) * 100
		if percent > 100 {
			percent = 100
		}
	}
	return BudgetStatus{
		TotalBudget: budget,
		Spent:       spent,
		Remaining:   budget - spent,
		PercentUsed: percent,
		Year:        year,
		Month:       month,
	}
}

// MonthRange returns the half-open [start, end) interval covering the given
// month in loc.
func MonthRange(year, month int, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 1, 0)
}

// CategoryStat aggregates purchases of one category.
type CategoryStat struct {
	Category string `json:"category" example:"Coffee"`
	Count    int    `json:"count" example:"3"`
	Total    int    `json:"total" example:"12000"`
}

// MenuStat aggregates purchases of one menu item.
type MenuStat struct {
	MenuID   string `json:"menu_id"`
	MenuName string `json:"menu_name" example:"Americano"`
	Count    int    `json:"count" example:"3"`
	Total    int    `json:"total" example:"12000"`
}

// Statistics summarises a user's purchase history.
//
// @Description Purchase statistics
type Statistics struct {
	TotalSpent int            `json:"total_spent" example:"42000"`
	TotalItems int            `json:"total_items" example:"11"`
	Categories []CategoryStat `json:"categories"`
	TopMenus   []MenuStat     `json:"top_menus"`
}
