package storage

import (
	"encoding/json"
	"fmt"

	"github.com/sahassanai123-cmyk/shrimp-bill-system/internal/domain/model"
)

// encodeState renders the three documents. Nil collections are written as
// empty ones so a saved state always reloads complete.
func encodeState(st *model.State) (map[string][]byte, error) {
	farms := st.Farms
	if farms == nil {
		farms = model.Farms{}
	}
	assets := st.Assets
	if assets == nil {
		assets = model.Catalog{}
	}
	bills := st.Bills
	if bills == nil {
		bills = []model.Bill{}
	}

	docs := make(map[string][]byte, len(Keys))
	for key, v := range map[string]any{KeyFarms: farms, KeyAssets: assets, KeyBills: bills} {
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", key, err)
		}
		docs[key] = data
	}
	return docs, nil
}

// decodeState parses whichever documents are present.
func decodeState(docs map[string][]byte) (*model.State, error) {
	st := &model.State{}
	if data, ok := docs[KeyFarms]; ok {
		if err := json.Unmarshal(data, &st.Farms); err != nil {
			return nil, &model.FormatError{Source: KeyFarms, Err: err}
		}
	}
	if data, ok := docs[KeyAssets]; ok {
		if err := json.Unmarshal(data, &st.Assets); err != nil {
			return nil, &model.FormatError{Source: KeyAssets, Err: err}
		}
	}
	if data, ok := docs[KeyBills]; ok {
		if err := json.Unmarshal(data, &st.Bills); err != nil {
			return nil, &model.FormatError{Source: KeyBills, Err: err}
		}
	}
	return st, nil
}
