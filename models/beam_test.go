package models

import (
	"testing"
)

func TestDeriveQuantities(t *testing.T) {
	d := Delivery{GoodPieces: 30, DamagedPieces: 5, PricePerPiece: 10}
	d.DeriveQuantities(2)

	if d.MetersUsed != 70 {
		t.Errorf("meters_used: expected 70 got %v", d.MetersUsed)
	}
	// damaged pieces consume meters but earn nothing
	if d.TotalAmount != 300 {
		t.Errorf("total_amount: expected 300 got %v", d.TotalAmount)
	}
}

func TestBeamTotals(t *testing.T) {
	beam := Beam{TotalBeamMeters: 1000, MetersPerPiece: 3}
	deliveries := []Delivery{
		{GoodPieces: 30, DamagedPieces: 5, MetersUsed: 105, TotalAmount: 300},
		{GoodPieces: 10, DamagedPieces: 0, MetersUsed: 30, TotalAmount: 100},
	}

	totals := beam.Totals(deliveries)
	if totals.TotalGood != 40 || totals.TotalDamaged != 5 {
		t.Errorf("piece totals: got good=%d damaged=%d", totals.TotalGood, totals.TotalDamaged)
	}
	if totals.TotalMetersUsed != 135 {
		t.Errorf("total_meters_used: expected 135 got %v", totals.TotalMetersUsed)
	}
	if totals.TotalAmount != 400 {
		t.Errorf("total_amount: expected 400 got %v", totals.TotalAmount)
	}
	if totals.RemainingMeters != 865 {
		t.Errorf("remaining_meters: expected 865 got %v", totals.RemainingMeters)
	}
	// 865 / 3 = 288.33 truncates, never rounds up
	if totals.EstimatedPiecesRemaining != 288 {
		t.Errorf("estimated_pieces_remaining: expected 288 got %d", totals.EstimatedPiecesRemaining)
	}
	if totals.MeterUsagePercentage != 13.5 {
		t.Errorf("meter_usage_percentage: expected 13.5 got %v", totals.MeterUsagePercentage)
	}
}

func TestBeamTotalsNoDeliveries(t *testing.T) {
	beam := Beam{TotalBeamMeters: 500, MetersPerPiece: 2}
	totals := beam.Totals(nil)

	if totals.TotalGood != 0 || totals.TotalDamaged != 0 || totals.TotalMetersUsed != 0 || totals.TotalAmount != 0 {
		t.Errorf("expected zero sums, got %+v", totals)
	}
	if totals.RemainingMeters != 500 {
		t.Errorf("remaining_meters: expected 500 got %v", totals.RemainingMeters)
	}
	if totals.EstimatedPiecesRemaining != 250 {
		t.Errorf("estimated_pieces_remaining: expected 250 got %d", totals.EstimatedPiecesRemaining)
	}
	if totals.MeterUsagePercentage != 0 {
		t.Errorf("meter_usage_percentage: expected 0 got %v", totals.MeterUsagePercentage)
	}
}

func TestBeamTotalsZeroGuards(t *testing.T) {
	beam := Beam{TotalBeamMeters: 0, MetersPerPiece: 0}
	totals := beam.Totals([]Delivery{{GoodPieces: 1, MetersUsed: 2, TotalAmount: 10}})

	if totals.EstimatedPiecesRemaining != 0 {
		t.Errorf("estimated_pieces_remaining: expected 0 got %d", totals.EstimatedPiecesRemaining)
	}
	if totals.MeterUsagePercentage != 0 {
		t.Errorf("meter_usage_percentage: expected 0 got %v", totals.MeterUsagePercentage)
	}
}

func TestShouldComplete(t *testing.T) {
	beam := Beam{TotalBeamMeters: 140, Status: BeamStatusActive}

	if beam.ShouldComplete(139.9) {
		t.Error("should not complete below capacity")
	}
	if !beam.ShouldComplete(140) {
		t.Error("should complete at exact capacity")
	}
	if !beam.ShouldComplete(150) {
		t.Error("should complete past capacity")
	}

	beam.Status = BeamStatusCompleted
	if beam.ShouldComplete(150) {
		t.Error("completed beam must stay completed")
	}
}
