package calculator

import (
	"fmt"
	"math"
	"time"

	"github.com/mmynk/tipsplit/internal/models"
)

// TipSplit is the result of splitting a bill plus tip among people.
type TipSplit struct {
	TipAmount       float64
	TotalAmount     float64
	PerPersonAmount float64
}

// CalculateTip computes the tip, total and per-person share of a bill.
// Based on: tip = bill × tip% / 100, total = bill + tip, per person = total / people.
// With zero people the per-person share is left at zero.
func CalculateTip(bill, tipPercent float64, people int) (TipSplit, error) {
	if math.IsNaN(bill) || math.IsInf(bill, 0) || bill < 0 {
		return TipSplit{}, fmt.Errorf("bill must be a non-negative amount")
	}
	if math.IsNaN(tipPercent) || math.IsInf(tipPercent, 0) || tipPercent < 0 {
		return TipSplit{}, fmt.Errorf("tip must be a non-negative percentage")
	}
	if people < 0 {
		return TipSplit{}, fmt.Errorf("people cannot be negative")
	}

	tip := bill * tipPercent / 100
	split := TipSplit{
		TipAmount:   tip,
		TotalAmount: bill + tip,
	}
	if people > 0 {
		split.PerPersonAmount = split.TotalAmount / float64(people)
	}
	return split, nil
}

// Round2 rounds an amount to cents for display.
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// NewSavedCalculation runs CalculateTip and captures the inputs and derived
// amounts for storage.
func NewSavedCalculation(userID, name string, bill, tipPercent float64, people int, now time.Time) (models.SavedCalculation, error) {
	split, err := CalculateTip(bill, tipPercent, people)
	if err != nil {
		return models.SavedCalculation{}, err
	}
	return models.SavedCalculation{
		UserID:          userID,
		Name:            name,
		Bill:            bill,
		Tip:             tipPercent,
		People:          people,
		TipAmount:       split.TipAmount,
		TotalAmount:     split.TotalAmount,
		PerPersonAmount: split.PerPersonAmount,
		CreatedAt:       now.UTC().Format(time.RFC3339),
	}, nil
}
