package service

import (
	"context"
	"math"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/tipsplit/pkg/api"
)

func TestCalculateIsPublic(t *testing.T) {
	env := setupTestServer(t)

	resp, err := env.calcs.Calculate(context.Background(), connect.NewRequest(&api.CalculateRequest{
		Bill:   120,
		Tip:    20,
		People: 3,
	}))
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	if math.Abs(resp.Msg.TipAmount-24) > 0.01 || math.Abs(resp.Msg.TotalAmount-144) > 0.01 || math.Abs(resp.Msg.PerPersonAmount-48) > 0.01 {
		t.Errorf("unexpected split: %+v", resp.Msg)
	}

	_, err = env.calcs.Calculate(context.Background(), connect.NewRequest(&api.CalculateRequest{Bill: -5, Tip: 10, People: 2}))
	assertCode(t, err, connect.CodeInvalidArgument)
}

func TestSaveAndListCalculations(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	ana := env.register(t, "ana@example.com", "Ana")
	bo := env.register(t, "bo@example.com", "Bo")

	saved, err := env.calcs.SaveCalculation(ctx, withToken(&api.SaveCalculationRequest{
		Name:   "Team lunch",
		Bill:   80,
		Tip:    15,
		People: 4,
	}, ana))
	if err != nil {
		t.Fatalf("SaveCalculation failed: %v", err)
	}
	calc := saved.Msg.Calculation
	if calc.ID == "" || calc.Name != "Team lunch" {
		t.Fatalf("unexpected saved calculation: %+v", calc)
	}
	if math.Abs(calc.TotalAmount-92) > 0.01 || math.Abs(calc.PerPersonAmount-23) > 0.01 {
		t.Errorf("unexpected derived amounts: %+v", calc)
	}
	if _, err := time.Parse(time.RFC3339, calc.CreatedAt); err != nil {
		t.Errorf("createdAt %q is not RFC 3339: %v", calc.CreatedAt, err)
	}

	if _, err := env.calcs.SaveCalculation(ctx, withToken(&api.SaveCalculationRequest{
		Name: "Bo's dinner", Bill: 50, Tip: 10, People: 2,
	}, bo)); err != nil {
		t.Fatalf("SaveCalculation (bo) failed: %v", err)
	}

	list, err := env.calcs.ListCalculations(ctx, withToken(&api.ListCalculationsRequest{}, ana))
	if err != nil {
		t.Fatalf("ListCalculations failed: %v", err)
	}
	if len(list.Msg.Calculations) != 1 || list.Msg.Calculations[0].ID != calc.ID {
		t.Errorf("expected only ana's calculation, got %+v", list.Msg.Calculations)
	}
}

func TestSaveCalculationValidation(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	token := env.register(t, "ana@example.com", "Ana")

	_, err := env.calcs.SaveCalculation(ctx, connect.NewRequest(&api.SaveCalculationRequest{Name: "x", Bill: 10, Tip: 10, People: 1}))
	assertCode(t, err, connect.CodeUnauthenticated)

	_, err = env.calcs.SaveCalculation(ctx, withToken(&api.SaveCalculationRequest{Name: "", Bill: 10, Tip: 10, People: 1}, token))
	assertCode(t, err, connect.CodeInvalidArgument)

	_, err = env.calcs.SaveCalculation(ctx, withToken(&api.SaveCalculationRequest{Name: "neg", Bill: 10, Tip: -1, People: 1}, token))
	assertCode(t, err, connect.CodeInvalidArgument)
}

func TestDeleteCalculationChecksOwner(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	ana := env.register(t, "ana@example.com", "Ana")
	bo := env.register(t, "bo@example.com", "Bo")

	saved, err := env.calcs.SaveCalculation(ctx, withToken(&api.SaveCalculationRequest{
		Name: "Team lunch", Bill: 80, Tip: 15, People: 4,
	}, ana))
	if err != nil {
		t.Fatalf("SaveCalculation failed: %v", err)
	}
	id := saved.Msg.Calculation.ID

	_, err = env.calcs.DeleteCalculation(ctx, withToken(&api.DeleteCalculationRequest{ID: id}, bo))
	assertCode(t, err, connect.CodeNotFound)

	_, err = env.calcs.DeleteCalculation(ctx, withToken(&api.DeleteCalculationRequest{ID: "missing"}, ana))
	assertCode(t, err, connect.CodeNotFound)

	if _, err := env.calcs.DeleteCalculation(ctx, withToken(&api.DeleteCalculationRequest{ID: id}, ana)); err != nil {
		t.Fatalf("DeleteCalculation failed: %v", err)
	}

	list, err := env.calcs.ListCalculations(ctx, withToken(&api.ListCalculationsRequest{}, ana))
	if err != nil {
		t.Fatalf("ListCalculations failed: %v", err)
	}
	if len(list.Msg.Calculations) != 0 {
		t.Errorf("expected no calculations after delete, got %+v", list.Msg.Calculations)
	}
}
