package catalog

import (
	"fmt"
	"math"
	"strings"

	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/domain/model"
)

// NewAsset validates and normalises a catalog entry.
func NewAsset(typ, name string, price float64) (model.Asset, error) {
	typ = strings.TrimSpace(typ)
	name = strings.TrimSpace(name)
	switch {
	case typ == "":
		return model.Asset{}, model.NewValidationError("", model.FieldType, "type is required")
	case name == "":
		return model.Asset{}, model.NewValidationError("", model.FieldName, "name is required")
	case math.IsNaN(price) || math.IsInf(price, 0) || price < 0:
		return model.Asset{}, model.NewValidationError("", model.FieldPrice, "price must be zero or more")
	}
	return model.Asset{Type: typ, Name: name, Price: price}, nil
}

// AddAsset appends an asset to its type bucket, creating the bucket if
// needed.
func AddAsset(cat model.Catalog, typ, name string, price float64) (model.Asset, error) {
	a, err := NewAsset(typ, name, price)
	if err != nil {
		return model.Asset{}, err
	}
	cat.Add(a)
	return a, nil
}

// FindAsset returns the asset at index within typ.
func FindAsset(cat model.Catalog, typ string, index int) (model.Asset, error) {
	list, ok := cat[typ]
	if !ok || index < 0 || index >= len(list) {
		return model.Asset{}, &model.NotFoundError{Kind: "asset", ID: fmt.Sprintf("%s/%d", typ, index)}
	}
	return list[index], nil
}

// RemoveAsset deletes the asset at index within typ and drops the type once
// it is empty.
func RemoveAsset(cat model.Catalog, typ string, index int) (model.Asset, error) {
	a, err := FindAsset(cat, typ, index)
	if err != nil {
		return model.Asset{}, err
	}
	list := cat[typ]
	list = append(list[:index], list[index+1:]...)
	if len(list) == 0 {
		delete(cat, typ)
	} else {
		cat[typ] = list
	}
	return a, nil
}
