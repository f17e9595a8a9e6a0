package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/guttosm/budget-service/internal/domain/dto"
)

// loadCatalog reads catalog items from a .json or .csv file.
func loadCatalog(path string) ([]dto.CatalogItemRequest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return decodeJSONCatalog(f)
	case ".csv":
		return decodeCSVCatalog(f)
	default:
		return nil, fmt.Errorf("unsupported catalog format %q (want .json or .csv)", ext)
	}
}

// decodeJSONCatalog accepts either a bare array of items or an object with a
// "catalog" array, the shape of the calculate request body.
func decodeJSONCatalog(r io.Reader) ([]dto.CatalogItemRequest, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var items []dto.CatalogItemRequest
	if err := json.Unmarshal(data, &items); err != nil {
		var wrapped struct {
			Catalog []dto.CatalogItemRequest `json:"catalog"`
		}
		if werr := json.Unmarshal(data, &wrapped); werr != nil {
			return nil, fmt.Errorf("decode catalog: %w", err)
		}
		items = wrapped.Catalog
	}
	return fillIDs(items), nil
}

// decodeCSVCatalog reads rows with a header naming at least "name" and
// "price". "id" and "category" columns are optional.
func decodeCSVCatalog(r io.Reader) ([]dto.CatalogItemRequest, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read catalog header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"name", "price"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("catalog header is missing %q", required)
		}
	}

	field := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var items []dto.CatalogItemRequest
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read catalog: %w", err)
		}
		price, err := strconv.Atoi(field(row, "price"))
		if err != nil {
			return nil, fmt.Errorf("catalog line %d: invalid price %q", line, field(row, "price"))
		}
		items = append(items, dto.CatalogItemRequest{
			ID:       field(row, "id"),
			Name:     field(row, "name"),
			Price:    price,
			Category: field(row, "category"),
		})
	}
	return fillIDs(items), nil
}

// fillIDs uses the item name as its id when the file gives none.
func fillIDs(items []dto.CatalogItemRequest) []dto.CatalogItemRequest {
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = items[i].Name
		}
	}
	return items
}
