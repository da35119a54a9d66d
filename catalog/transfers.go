package catalog

import (
	"encoding/json"
	"strings"

	"github.com/poiesic/mergen/core"
)

type rawTransfer struct {
	ServiceCode string `json:"service_code"`
	OperatorID  string `json:"operator_id"`
	Route       struct {
		FromCode          string `json:"from_code"`
		FromName          string `json:"from_name"`
		ToAreaCode        string `json:"to_area_code"`
		ToAreaName        string `json:"to_area_name"`
		EstimatedDuration int    `json:"estimated_duration"`
	} `json:"route"`
	VehicleInfo struct {
		Category string     `json:"category"`
		MaxPax   int        `json:"max_pax"`
		Features stringList `json:"features"`
	} `json:"vehicle_info"`
	TotalPrice    amount `json:"total_price"`
	Price         amount `json:"price"`
	Currency      string `json:"currency"`
	HotelCoverage int    `json:"hotel_coverage"`
}

// LoadTransfers reads the transfer catalog at path.
func LoadTransfers(path string, opts ...Option) ([]*core.TransferRoute, LoadStats, error) {
	o := buildOptions("transfers", opts)

	records, err := readRecords(path, "transfer_routes", o.logger)
	if err != nil {
		return nil, LoadStats{}, err
	}

	var stats LoadStats
	routes := make([]*core.TransferRoute, 0, len(records))
	for i, record := range records {
		var raw rawTransfer
		if err := json.Unmarshal(record, &raw); err != nil {
			o.logger.Warn("skipping unreadable transfer", "index", i, "err", err)
			stats.Skipped++
			continue
		}

		route, backfilled := normalizeTransfer(&raw)
		if err := core.ValidateTransferRoute(route); err != nil {
			o.logger.Warn("skipping invalid transfer", "index", i, "code", route.ServiceCode, "err", err)
			stats.Skipped++
			continue
		}
		if backfilled {
			stats.Backfilled++
		}
		routes = append(routes, route)
	}

	stats.Loaded = len(routes)
	o.logger.Info("transfer catalog loaded", "path", path, "loaded", stats.Loaded, "skipped", stats.Skipped, "backfilled", stats.Backfilled)
	return routes, stats, nil
}

func normalizeTransfer(raw *rawTransfer) (*core.TransferRoute, bool) {
	fare, backfilled := price(raw.TotalPrice, raw.Price)

	currency := strings.ToUpper(strings.TrimSpace(raw.Currency))
	if currency == "" {
		currency = core.DefaultCurrency
	}

	areaName := strings.TrimSpace(raw.Route.ToAreaName)
	areaCode := strings.TrimSpace(raw.Route.ToAreaCode)
	if areaName == "" && areaCode != "" {
		areaName = areaCode
		backfilled = true
	}

	duration := raw.Route.EstimatedDuration
	if duration < 0 {
		duration = 0
		backfilled = true
	}

	return &core.TransferRoute{
		ServiceCode:     strings.TrimSpace(raw.ServiceCode),
		OperatorID:      strings.TrimSpace(raw.OperatorID),
		FromCode:        strings.ToUpper(strings.TrimSpace(raw.Route.FromCode)),
		FromName:        strings.TrimSpace(raw.Route.FromName),
		ToAreaCode:      areaCode,
		ToAreaName:      areaName,
		DurationMinutes: duration,
		Vehicle: core.Vehicle{
			Category: strings.ToUpper(strings.TrimSpace(raw.VehicleInfo.Category)),
			MaxPax:   raw.VehicleInfo.MaxPax,
			Features: dedupe(raw.VehicleInfo.Features),
		},
		Price:         fare,
		Currency:      currency,
		HotelCoverage: raw.HotelCoverage,
	}, backfilled
}
