package dto

import "github.com/guttosm/budget-service/internal/domain/model"

// CalculateResponse is returned by the stateless calculator.
//
// @Description Combinations for an explicit target and catalog
type CalculateResponse struct {
	Target       int                 `json:"target" example:"8000"`
	Exact        bool                `json:"exact" example:"true"`
	Combinations []model.Combination `json:"combinations"`
} // @name CalculateResponse

// RecommendationResponse is returned for the caller's remaining budget.
//
// @Description Combinations that use up the remaining monthly budget
type RecommendationResponse struct {
	Budget       model.BudgetStatus  `json:"budget"`
	Exact        bool                `json:"exact" example:"false"`
	Combinations []model.Combination `json:"combinations"`
} // @name RecommendationResponse

// ImportMenusResponse reports the result of a bulk import.
type ImportMenusResponse struct {
	Imported int              `json:"imported" example:"12"`
	Menus    []model.MenuItem `json:"menus"`
} // @name ImportMenusResponse
