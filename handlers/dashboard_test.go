package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"thari.in/powerloom/models"
)

func TestGetDashboardOverview(t *testing.T) {
	db := setupTestDB(t)
	workshopA := seedWorkshop(t, db, "Unit A")
	workshopB := seedWorkshop(t, db, "Unit B")
	machineA := seedMachine(t, db, workshopA.ID, 1)
	machineB := seedMachine(t, db, workshopB.ID, 1)
	customer1 := seedCustomer(t, db, "Saree Traders")
	customer2 := seedCustomer(t, db, "Dhoti House")

	beamA := seedBeam(t, db, machineA, customer1.ID, "B-100", 1000, 2)
	beamB := seedBeam(t, db, machineB, customer2.ID, "B-200", 1000, 2)
	seedDelivery(t, db, beamA, "2026-08-10", 30, 5, 10)
	seedDelivery(t, db, beamB, "2026-08-12", 20, 0, 15)
	// outside the queried range
	seedDelivery(t, db, beamA, "2026-07-01", 99, 9, 10)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/overview?start_date=2026-08-01&end_date=2026-08-31", nil)
	w := httptest.NewRecorder()
	GetDashboardOverview(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}

	resp := decodeJSON(t, w.Body.Bytes())
	if resp["active_beams"].(float64) != 2 {
		t.Errorf("active_beams: got %v", resp["active_beams"])
	}
	if resp["total_pieces_this_month"].(float64) != 50 {
		t.Errorf("total_pieces_this_month: got %v", resp["total_pieces_this_month"])
	}
	if resp["total_damaged_this_month"].(float64) != 5 {
		t.Errorf("total_damaged_this_month: got %v", resp["total_damaged_this_month"])
	}
	// 30*10 + 20*15
	if resp["pending_amount_this_month"].(float64) != 600 {
		t.Errorf("pending_amount_this_month: got %v", resp["pending_amount_this_month"])
	}

	workshopRows := resp["workshop_production"].([]interface{})
	if len(workshopRows) != 2 {
		t.Fatalf("expected 2 workshop rows got %d", len(workshopRows))
	}
	first := workshopRows[0].(map[string]interface{})
	if first["workshop_name"] != "Unit A" || first["total_pieces"].(float64) != 30 {
		t.Errorf("workshop row: got %v", first)
	}

	customerRows := resp["customer_summary"].([]interface{})
	if len(customerRows) != 2 {
		t.Fatalf("expected 2 customer rows got %d", len(customerRows))
	}
	// ordered by name, Dhoti House first
	dhoti := customerRows[0].(map[string]interface{})
	if dhoti["customer_name"] != "Dhoti House" || dhoti["total_amount"].(float64) != 300 {
		t.Errorf("customer row: got %v", dhoti)
	}
}

func TestGetDashboardOverviewFabricFilter(t *testing.T) {
	db := setupTestDB(t)
	workshop := seedWorkshop(t, db, "Unit A")
	machine1 := seedMachine(t, db, workshop.ID, 1)
	machine2 := seedMachine(t, db, workshop.ID, 2)
	customer := seedCustomer(t, db, "Saree Traders")

	cotton := seedBeam(t, db, machine1, customer.ID, "B-100", 1000, 2)
	silk := seedBeam(t, db, machine2, customer.ID, "B-200", 1000, 2)
	db.Model(&models.Beam{}).Where("id = ?", silk.ID).Update("fabric_type", "silk")

	seedDelivery(t, db, cotton, "2026-08-10", 30, 0, 10)
	seedDelivery(t, db, silk, "2026-08-10", 20, 0, 10)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/overview?start_date=2026-08-01&end_date=2026-08-31&fabric_type=silk", nil)
	w := httptest.NewRecorder()
	GetDashboardOverview(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}

	resp := decodeJSON(t, w.Body.Bytes())
	if resp["total_pieces_this_month"].(float64) != 20 {
		t.Errorf("fabric filter leaked: got %v pieces", resp["total_pieces_this_month"])
	}
}

func TestGetFabricDistribution(t *testing.T) {
	db := setupTestDB(t)
	workshop := seedWorkshop(t, db, "Unit A")
	machine1 := seedMachine(t, db, workshop.ID, 1)
	machine2 := seedMachine(t, db, workshop.ID, 2)
	customer := seedCustomer(t, db, "Saree Traders")

	cotton := seedBeam(t, db, machine1, customer.ID, "B-100", 1000, 2)
	silk := seedBeam(t, db, machine2, customer.ID, "B-200", 1000, 2)
	db.Model(&models.Beam{}).Where("id = ?", silk.ID).Update("fabric_type", "silk")
	seedDelivery(t, db, cotton, "2026-08-10", 30, 5, 10)

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/fabric-distribution", nil)
	w := httptest.NewRecorder()
	GetFabricDistribution(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}

	resp := decodeJSON(t, w.Body.Bytes())
	rows := resp["data"].([]interface{})
	if len(rows) != 2 {
		t.Fatalf("expected 2 fabric rows got %d", len(rows))
	}
	cottonRow := rows[0].(map[string]interface{})
	if cottonRow["name"] != "cotton" || cottonRow["value"].(float64) != 35 || cottonRow["beams"].(float64) != 1 {
		t.Errorf("cotton row: got %v", cottonRow)
	}
	// a beam with no deliveries still counts
	silkRow := rows[1].(map[string]interface{})
	if silkRow["name"] != "silk" || silkRow["value"].(float64) != 0 || silkRow["beams"].(float64) != 1 {
		t.Errorf("silk row: got %v", silkRow)
	}
}

func TestGetProductionTrendPivot(t *testing.T) {
	db := setupTestDB(t)
	workshopA := seedWorkshop(t, db, "Unit A")
	workshopB := seedWorkshop(t, db, "Unit B")
	machineA := seedMachine(t, db, workshopA.ID, 1)
	machineB := seedMachine(t, db, workshopB.ID, 1)
	customer := seedCustomer(t, db, "Saree Traders")
	beamA := seedBeam(t, db, machineA, customer.ID, "B-100", 1000, 2)
	beamB := seedBeam(t, db, machineB, customer.ID, "B-200", 1000, 2)

	today := nowDate()
	seedDelivery(t, db, beamA, today, 10, 0, 10)
	seedDelivery(t, db, beamB, today, 5, 1, 10)

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/production-trend?days=7", nil)
	w := httptest.NewRecorder()
	GetProductionTrend(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}

	resp := decodeJSON(t, w.Body.Bytes())
	workshops := resp["workshops"].([]interface{})
	if len(workshops) != 2 {
		t.Fatalf("expected 2 workshop series got %v", workshops)
	}
	data := resp["data"].([]interface{})
	if len(data) != 1 {
		t.Fatalf("expected 1 day of data got %d", len(data))
	}
	point := data[0].(map[string]interface{})
	if point["date"] != today {
		t.Errorf("date: got %v", point["date"])
	}
	if point["Unit A"].(float64) != 10 || point["Unit B"].(float64) != 6 {
		t.Errorf("series values: got %v", point)
	}
}

func TestGetMachineQualitySkipsIdleMachines(t *testing.T) {
	db := setupTestDB(t)
	workshop := seedWorkshop(t, db, "Unit A")
	busy := seedMachine(t, db, workshop.ID, 1)
	idle := seedMachine(t, db, workshop.ID, 2)
	customer := seedCustomer(t, db, "Saree Traders")
	beam := seedBeam(t, db, busy, customer.ID, "B-100", 1000, 2)
	seedBeam(t, db, idle, customer.ID, "B-200", 1000, 2)
	seedDelivery(t, db, beam, "2026-08-10", 30, 5, 10)

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/machine-quality", nil)
	w := httptest.NewRecorder()
	GetMachineQuality(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}

	resp := decodeJSON(t, w.Body.Bytes())
	rows := resp["data"].([]interface{})
	if len(rows) != 1 {
		t.Fatalf("expected 1 machine with output got %d", len(rows))
	}
	row := rows[0].(map[string]interface{})
	if row["machine_name"] != "Unit A M1" {
		t.Errorf("machine_name: got %v", row["machine_name"])
	}
	if row["good_pieces"].(float64) != 30 || row["damaged_pieces"].(float64) != 5 {
		t.Errorf("quality split: got %v", row)
	}
}

func TestGetWorkshopMachineProduction(t *testing.T) {
	db := setupTestDB(t)
	workshop := seedWorkshop(t, db, "Unit A")
	machine1 := seedMachine(t, db, workshop.ID, 1)
	machine2 := seedMachine(t, db, workshop.ID, 2)
	customer := seedCustomer(t, db, "Saree Traders")
	beam1 := seedBeam(t, db, machine1, customer.ID, "B-100", 1000, 2)
	finished := seedBeam(t, db, machine2, customer.ID, "B-200", 1000, 2)
	seedDelivery(t, db, beam1, "2026-08-10", 30, 5, 10)
	seedDelivery(t, db, finished, "2026-08-10", 99, 0, 10)
	db.Model(&models.Beam{}).Where("id = ?", finished.ID).
		Updates(map[string]interface{}{"status": models.BeamStatusCompleted, "end_date": "2026-08-20"})

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/workshop-machine-production", nil)
	w := httptest.NewRecorder()
	GetWorkshopMachineProduction(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}

	resp := decodeJSON(t, w.Body.Bytes())
	groups := resp["data"].([]interface{})
	if len(groups) != 1 {
		t.Fatalf("expected 1 workshop group got %d", len(groups))
	}
	group := groups[0].(map[string]interface{})
	machines := group["machines"].([]interface{})
	// only the machine with an active beam appears
	if len(machines) != 1 {
		t.Fatalf("expected 1 machine got %d", len(machines))
	}
	m := machines[0].(map[string]interface{})
	if m["machine_number"].(float64) != 1 || m["production"].(float64) != 35 {
		t.Errorf("machine row: got %v", m)
	}
}
