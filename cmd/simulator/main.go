package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
)

// Vehicle mirrors the API's vehicle payload.
type Vehicle struct {
	Nickname       string `json:"nickname,omitempty"`
	Make           string `json:"make"`
	Model          string `json:"model"`
	Year           int    `json:"year"`
	CurrentMileage int    `json:"current_mileage"`
}

// ServiceRecord mirrors the API's service record payload.
type ServiceRecord struct {
	VehicleID   string `json:"vehicle_id"`
	Type        string `json:"type"`
	ServiceDate string `json:"service_date"` // YYYY-MM-DD
	Mileage     int    `json:"mileage"`
	CostCents   int64  `json:"cost_cents,omitempty"`
	ShopName    string `json:"shop_name,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

var makes = []string{"Honda", "Toyota", "Ford", "Chevrolet", "BMW", "Subaru"}
var modelsByMake = map[string][]string{
	"Honda":     {"Civic", "Accord", "CR-V"},
	"Toyota":    {"Camry", "Corolla", "RAV4"},
	"Ford":      {"F-150", "Focus", "Escape"},
	"Chevrolet": {"Silverado", "Malibu", "Equinox"},
	"BMW":       {"328i", "X5", "530i"},
	"Subaru":    {"Outback", "Forester", "Impreza"},
}
var nicknames = []string{"Daily", "Weekend Car", "The Truck", "Commuter", ""}
var shops = []string{"Quick Lube", "Main St Auto", "Dealership", "Joe's Garage", ""}

// Types that show up in realistic histories, weighted towards oil changes.
var recordTypes = []string{
	"oil_change", "oil_change", "oil_change",
	"tire_rotation", "tire_rotation",
	"air_filter", "cabin_filter", "inspection", "brake_pads", "other",
}

var typicalCostCents = map[string][2]int64{
	"oil_change":    {4500, 9500},
	"tire_rotation": {2000, 5000},
	"air_filter":    {2500, 6000},
	"cabin_filter":  {2500, 6000},
	"inspection":    {1500, 4000},
	"brake_pads":    {25000, 60000},
	"other":         {5000, 40000},
}

var authToken string

func authorizedPost(url string, body []byte) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}
	client := &http.Client{Timeout: 10 * time.Second}
	return client.Do(req)
}

// login registers (or re-uses) the simulator user and stores the token.
func login(apiURL string) error {
	creds := map[string]string{
		"username": envOr("SIM_USERNAME", "simulator"),
		"email":    "simulator@example.com",
		"password": envOr("SIM_PASSWORD", "simulator-pass"),
		"role":     "mechanic",
	}
	body, _ := json.Marshal(creds)

	resp, err := authorizedPost(apiURL+"/api/auth/register", body)
	if err != nil {
		return err
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	// Conflict just means the user already exists; fall through to login.

	resp, err = authorizedPost(apiURL+"/api/auth/login", body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("login failed with status %d", resp.StatusCode)
	}
	var loginResp struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&loginResp); err != nil {
		return err
	}
	authToken = loginResp.Token
	return nil
}

func createVehicle(apiURL string) (string, Vehicle, error) {
	mk := makes[rand.Intn(len(makes))]
	vehicle := Vehicle{
		Nickname:       nicknames[rand.Intn(len(nicknames))],
		Make:           mk,
		Model:          modelsByMake[mk][rand.Intn(len(modelsByMake[mk]))],
		Year:           2015 + rand.Intn(10),
		CurrentMileage: 20000 + rand.Intn(90000),
	}
	body, _ := json.Marshal(vehicle)
	resp, err := authorizedPost(apiURL+"/api/vehicles", body)
	if err != nil {
		return "", vehicle, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return "", vehicle, fmt.Errorf("create vehicle failed with status %d", resp.StatusCode)
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", vehicle, err
	}
	return created.ID, vehicle, nil
}

// createHistory posts a plausible service history: records walk backwards
// from the current mileage with a few weeks between services.
func createHistory(apiURL, vehicleID string, vehicle Vehicle, count int) error {
	mileage := vehicle.CurrentMileage
	date := time.Now().UTC()
	for i := 0; i < count; i++ {
		mileage -= 1000 + rand.Intn(5000)
		if mileage < 0 {
			break
		}
		date = date.AddDate(0, 0, -(20 + rand.Intn(80)))
		typ := recordTypes[rand.Intn(len(recordTypes))]
		costRange := typicalCostCents[typ]
		record := ServiceRecord{
			VehicleID:   vehicleID,
			Type:        typ,
			ServiceDate: date.Format("2006-01-02"),
			Mileage:     mileage,
			CostCents:   costRange[0] + rand.Int63n(costRange[1]-costRange[0]),
			ShopName:    shops[rand.Intn(len(shops))],
		}
		body, _ := json.Marshal(record)
		resp, err := authorizedPost(apiURL+"/api/records", body)
		if err != nil {
			return err
		}
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		if resp.StatusCode != http.StatusCreated {
			return fmt.Errorf("create record failed with status %d", resp.StatusCode)
		}
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	apiURL := envOr("API_URL", "http://localhost:8080")
	vehicleCount, _ := strconv.Atoi(envOr("SIM_VEHICLES", "5"))
	recordsPerVehicle, _ := strconv.Atoi(envOr("SIM_RECORDS", "8"))

	if err := login(apiURL); err != nil {
		log.WithError(err).Fatal("simulator login failed")
	}
	log.WithField("api", apiURL).Info("seeding demo fleet")

	for i := 0; i < vehicleCount; i++ {
		id, vehicle, err := createVehicle(apiURL)
		if err != nil {
			log.WithError(err).Error("failed to create vehicle")
			continue
		}
		log.WithFields(log.Fields{
			"id":      id,
			"vehicle": fmt.Sprintf("%d %s %s", vehicle.Year, vehicle.Make, vehicle.Model),
			"mileage": vehicle.CurrentMileage,
		}).Info("created vehicle")

		if err := createHistory(apiURL, id, vehicle, recordsPerVehicle); err != nil {
			log.WithError(err).WithField("vehicle_id", id).Error("failed to create history")
		}
	}
	log.Info("done")
}
