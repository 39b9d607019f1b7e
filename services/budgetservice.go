package services

import (
	"context"
	"math"
	"time"

	"taskboard/model"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	QuartersPerYear = 4
	WeeksPerYear    = 52

	budgetCollection = "budgets"
	budgetDoc        = "organization"
)

// normalizeBudgetInput treats negative and non-finite values as absent
// rather than erroring.
func normalizeBudgetInput(v *float64) *float64 {
	if v == nil || *v < 0 || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return nil
	}
	return v
}

// ComputeBudgetValues fills in whichever of the weekly/quarterly/yearly
// budgets were not supplied, using 4 quarters and 52 weeks per year. With a
// single input the yearly figure is derived first and the rest follow from
// it; with two inputs the missing one is derived from the coarser-grained
// value, so an explicit quarterly beats a weekly when computing the year.
// All three present pass through untouched apart from rounding, even when
// mutually inconsistent. Returns nil when nothing usable was supplied.
func ComputeBudgetValues(weekly, quarterly, yearly *float64) *model.Budget {
	weekly = normalizeBudgetInput(weekly)
	quarterly = normalizeBudgetInput(quarterly)
	yearly = normalizeBudgetInput(yearly)

	var w, q, y float64

	switch {
	case weekly == nil && quarterly == nil && yearly == nil:
		return nil

	case weekly != nil && quarterly != nil && yearly != nil:
		w, q, y = *weekly, *quarterly, *yearly

	case quarterly != nil && weekly != nil: // yearly missing
		w, q = *weekly, *quarterly
		y = q * QuartersPerYear

	case quarterly != nil && yearly != nil: // weekly missing
		q, y = *quarterly, *yearly
		w = y / WeeksPerYear

	case weekly != nil && yearly != nil: // quarterly missing
		w, y = *weekly, *yearly
		q = y / QuartersPerYear

	case quarterly != nil:
		q = *quarterly
		y = q * QuartersPerYear
		w = y / WeeksPerYear

	case weekly != nil:
		w = *weekly
		y = w * WeeksPerYear
		q = y / QuartersPerYear

	default: // yearly only
		y = *yearly
		q = y / QuartersPerYear
		w = y / WeeksPerYear
	}

	return &model.Budget{
		WeeklyBudget:    math.Round(w),
		QuarterlyBudget: math.Round(q),
		YearlyBudget:    math.Round(y),
	}
}

// GetBudget reads the organization budget document. A missing document is
// an all-zero budget, not an error.
func GetBudget(ctx context.Context, firestoreClient *firestore.Client) (*model.Budget, error) {
	doc, err := firestoreClient.Collection(budgetCollection).Doc(budgetDoc).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return &model.Budget{}, nil
		}
		return nil, err
	}

	var budget model.Budget
	if err := doc.DataTo(&budget); err != nil {
		return nil, err
	}
	return &budget, nil
}

// SaveBudget stores the organization budget document.
func SaveBudget(ctx context.Context, firestoreClient *firestore.Client, budget *model.Budget) error {
	budget.UpdatedAt = time.Now()
	_, err := firestoreClient.Collection(budgetCollection).Doc(budgetDoc).Set(ctx, budget)
	return err
}
