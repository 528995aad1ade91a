package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"cafeapi/model"
	"cafeapi/repository"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Creator is the part of the storage gateway the importer needs.
type Creator interface {
	Create(ctx context.Context, cafe model.Cafe) (model.Cafe, error)
}

// Result counts what happened to the data rows of a sheet.
type Result struct {
	Created int
	Skipped int
	Invalid int
}

// columns maps accepted header titles to cafe fields. Headers are matched
// case-insensitively after trimming.
var columns = map[string]string{
	"name":           "name",
	"map_url":        "map_url",
	"img_url":        "img_url",
	"location":       "location",
	"loc":            "location",
	"seats":          "seats",
	"has_toilet":     "has_toilet",
	"toilet":         "has_toilet",
	"has_wifi":       "has_wifi",
	"wifi":           "has_wifi",
	"has_sockets":    "has_sockets",
	"sockets":        "has_sockets",
	"can_take_calls": "can_take_calls",
	"calls":          "can_take_calls",
	"coffee_price":   "coffee_price",
}

type Importer struct {
	store Creator
	log   *zap.Logger
}

func NewImporter(store Creator, log *zap.Logger) *Importer {
	return &Importer{store: store, log: log}
}

// ImportWorkbook creates one cafe per data row of sheet. An empty sheet name
// selects the first sheet. Duplicate names are skipped and rows that fail
// validation are counted as invalid; any other store error stops the import.
func (i *Importer) ImportWorkbook(ctx context.Context, r io.Reader, sheet string) (Result, error) {
	var res Result

	xl, err := excelize.OpenReader(r)
	if err != nil {
		return res, fmt.Errorf("excelize.OpenReader -> %w", err)
	}
	defer xl.Close()

	if sheet == "" {
		sheets := xl.GetSheetList()
		if len(sheets) == 0 {
			return res, errors.New("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := xl.GetRows(sheet)
	if err != nil {
		return res, fmt.Errorf("xl.GetRows -> %w", err)
	}
	if len(rows) == 0 {
		return res, fmt.Errorf("sheet %q is empty", sheet)
	}

	header := headerIndex(rows[0])
	if _, ok := header["name"]; !ok {
		return res, fmt.Errorf("sheet %q has no name column", sheet)
	}

	for n, row := range rows[1:] {
		if blank(row) {
			continue
		}
		rowNum := n + 2

		_, err := i.store.Create(ctx, rowCafe(header, row))
		switch {
		case err == nil:
			res.Created++
		case errors.Is(err, repository.ErrConflict):
			res.Skipped++
			i.log.Debug("duplicate cafe skipped", zap.Int("row", rowNum))
		case errors.Is(err, repository.ErrInvalidInput):
			res.Invalid++
			i.log.Warn("invalid cafe row", zap.Int("row", rowNum), zap.Error(err))
		default:
			return res, fmt.Errorf("row %d: i.store.Create -> %w", rowNum, err)
		}
	}

	return res, nil
}

func headerIndex(titles []string) map[string]int {
	idx := make(map[string]int, len(titles))
	for col, title := range titles {
		field, ok := columns[strings.ToLower(strings.TrimSpace(title))]
		if !ok {
			continue
		}
		if _, seen := idx[field]; !seen {
			idx[field] = col
		}
	}
	return idx
}

func rowCafe(header map[string]int, row []string) model.Cafe {
	cell := func(field string) (string, bool) {
		col, ok := header[field]
		if !ok || col >= len(row) {
			return "", false
		}
		return strings.TrimSpace(row[col]), true
	}
	text := func(field string) string {
		v, _ := cell(field)
		return v
	}

	cafe := model.Cafe{
		Name:         text("name"),
		MapURL:       text("map_url"),
		ImgURL:       text("img_url"),
		Location:     text("location"),
		Seats:        text("seats"),
		HasToilet:    model.ParseFlag(text("has_toilet")),
		HasWifi:      model.ParseFlag(text("has_wifi")),
		HasSockets:   model.ParseFlag(text("has_sockets")),
		CanTakeCalls: model.ParseFlag(text("can_take_calls")),
	}
	if price, ok := cell("coffee_price"); ok && price != "" {
		cafe.CoffeePrice = &price
	}
	return cafe
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
