package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestEnvOr(t *testing.T) {
	t.Setenv("SIM_TEST_KEY", "set")
	if got := envOr("SIM_TEST_KEY", "fallback"); got != "set" {
		t.Errorf("Expected 'set', got %s", got)
	}
	if got := envOr("SIM_TEST_MISSING", "fallback"); got != "fallback" {
		t.Errorf("Expected 'fallback', got %s", got)
	}
}

func TestAuthorizedPost_SetsHeaders(t *testing.T) {
	authToken = "test-token"
	defer func() { authToken = "" }()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			t.Errorf("Missing or wrong Authorization header: %s", r.Header.Get("Authorization"))
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Wrong Content-Type: %s", r.Header.Get("Content-Type"))
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	resp, err := authorizedPost(server.URL, []byte(`{}`))
	if err != nil {
		t.Fatalf("authorizedPost failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("Expected 201, got %d", resp.StatusCode)
	}
}

func TestCreateVehicle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/vehicles" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		var v Vehicle
		if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
			t.Fatalf("Bad vehicle payload: %v", err)
		}
		if v.Make == "" || v.Model == "" {
			t.Error("Vehicle missing make or model")
		}
		if v.Year < 2015 || v.Year > 2024 {
			t.Errorf("Year out of expected range: %d", v.Year)
		}
		if v.CurrentMileage < 20000 || v.CurrentMileage >= 110000 {
			t.Errorf("Mileage out of expected range: %d", v.CurrentMileage)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"id": "abc123"})
	}))
	defer server.Close()

	id, vehicle, err := createVehicle(server.URL)
	if err != nil {
		t.Fatalf("createVehicle failed: %v", err)
	}
	if id != "abc123" {
		t.Errorf("Expected id 'abc123', got %s", id)
	}
	if _, ok := modelsByMake[vehicle.Make]; !ok {
		t.Errorf("Unknown make: %s", vehicle.Make)
	}
}

func TestCreateHistory_RecordsDescendInMileage(t *testing.T) {
	var mileages []int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/records" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		var rec ServiceRecord
		if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
			t.Fatalf("Bad record payload: %v", err)
		}
		if rec.VehicleID != "veh-1" {
			t.Errorf("Wrong vehicle id: %s", rec.VehicleID)
		}
		if _, ok := typicalCostCents[rec.Type]; !ok {
			t.Errorf("Unexpected record type: %s", rec.Type)
		}
		if len(rec.ServiceDate) != 10 {
			t.Errorf("Service date not YYYY-MM-DD: %s", rec.ServiceDate)
		}
		mileages = append(mileages, rec.Mileage)
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	vehicle := Vehicle{Make: "Honda", Model: "Civic", Year: 2020, CurrentMileage: 60000}
	if err := createHistory(server.URL, "veh-1", vehicle, 5); err != nil {
		t.Fatalf("createHistory failed: %v", err)
	}
	if len(mileages) == 0 {
		t.Fatal("No records posted")
	}
	for i := 1; i < len(mileages); i++ {
		if mileages[i] >= mileages[i-1] {
			t.Errorf("Mileage not strictly decreasing: %v", mileages)
		}
	}
	if mileages[0] >= vehicle.CurrentMileage {
		t.Errorf("First record mileage %d not below current %d", mileages[0], vehicle.CurrentMileage)
	}
}
