// Command seed imports places from an XLSX workbook into the database.
//
// Usage:
//
//	seed -file places.xlsx [-sheet Sheet1]
//
// Expected columns: name, location, category, price, has_wifi, latitude,
// longitude, description, image_url. The first row is treated as a header.
package main

import (
	"flag"
	"strconv"
	"strings"

	"github.com/ekaraca/mekanbul-backend/config"
	"github.com/ekaraca/mekanbul-backend/internal/app/model"
	"github.com/ekaraca/mekanbul-backend/internal/app/repository"
	"github.com/ekaraca/mekanbul-backend/internal/db"
	"github.com/ekaraca/mekanbul-backend/pkg/logger"
	"github.com/xuri/excelize/v2"
)

const insertBatchSize = 100

func main() {
	filePath := flag.String("file", "", "path to the XLSX workbook")
	sheetName := flag.String("sheet", "", "sheet to read (defaults to the first sheet)")
	flag.Parse()

	logger.Initialize(logger.Config{Level: "info", Format: "console", EnableColor: true})

	if *filePath == "" {
		logger.Fatal("Missing -file argument", nil)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to connect to database", err)
	}
	defer db.Close()
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	workbook, err := excelize.OpenFile(*filePath)
	if err != nil {
		logger.Fatal("Failed to open workbook", err, map[string]interface{}{
			"file": *filePath,
		})
	}
	defer workbook.Close()

	sheet := *sheetName
	if sheet == "" {
		sheet = workbook.GetSheetName(0)
	}

	rows, err := workbook.GetRows(sheet)
	if err != nil {
		logger.Fatal("Failed to read sheet", err, map[string]interface{}{
			"sheet": sheet,
		})
	}
	if len(rows) < 2 {
		logger.Fatal("Sheet has no data rows", nil, map[string]interface{}{
			"sheet": sheet,
		})
	}

	places, skipped := parseRows(rows[1:])

	repo := repository.NewPlaceRepository(db.GetDB())
	if err := repo.BulkCreate(places, insertBatchSize); err != nil {
		logger.Fatal("Failed to insert places", err)
	}

	logger.Info("Seed finished", map[string]interface{}{
		"inserted": len(places),
		"skipped":  skipped,
	})
}

func parseRows(rows [][]string) (places []model.Place, skipped int) {
	for i, row := range rows {
		place, err := parseRow(row)
		if err != nil {
			skipped++
			logger.Warn("Skipping row", map[string]interface{}{
				"row":    i + 2, // 1-based, after the header
				"reason": err.Error(),
			})
			continue
		}
		places = append(places, *place)
	}
	return places, skipped
}

func parseRow(row []string) (*model.Place, error) {
	name := cell(row, 0)
	location := cell(row, 1)
	category := model.PlaceCategory(strings.ToLower(cell(row, 2)))

	if name == "" || location == "" {
		return nil, errMissingField
	}
	if !category.Valid() {
		return nil, errBadCategory
	}

	price := model.PriceTier(strings.ToLower(cell(row, 3)))
	if price == "" {
		price = model.PriceMedium
	} else if !price.Valid() {
		return nil, errBadPrice
	}

	place := &model.Place{
		Name:        name,
		Location:    location,
		Category:    category,
		Price:       price,
		Description: cell(row, 7),
		ImageURL:    cell(row, 8),
	}

	if raw := cell(row, 4); raw != "" {
		hasWifi, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, errBadWifi
		}
		place.HasWifi = hasWifi
	}

	if latRaw, lngRaw := cell(row, 5), cell(row, 6); latRaw != "" && lngRaw != "" {
		lat, latErr := strconv.ParseFloat(latRaw, 64)
		lng, lngErr := strconv.ParseFloat(lngRaw, 64)
		if latErr != nil || lngErr != nil {
			return nil, errBadCoordinates
		}
		place.Latitude = &lat
		place.Longitude = &lng
	}

	return place, nil
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

var (
	errMissingField   = &rowError{"name and location are required"}
	errBadCategory    = &rowError{"unknown category"}
	errBadPrice       = &rowError{"unknown price tier"}
	errBadWifi        = &rowError{"has_wifi must be true or false"}
	errBadCoordinates = &rowError{"latitude and longitude must be numbers"}
)

type rowError struct{ msg string }

func (e *rowError) Error() string { return e.msg }
