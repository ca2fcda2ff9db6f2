package store

import (
	"encoding/json"
	"os"
	"time"

	"MoneyGrowth/internal/model"
)

// LoadState reads the portfolio state from a JSON file. Returns a zero
// state if the file doesn't exist.
func LoadState(filePath string) (*model.PortfolioState, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &model.PortfolioState{Holdings: map[string]model.Holding{}}, nil
		}
		return nil, err
	}
	var state model.PortfolioState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	if state.Holdings == nil {
		state.Holdings = map[string]model.Holding{}
	}
	return &state, nil
}

// SaveState writes the portfolio state to a JSON file.
func SaveState(filePath string, state *model.PortfolioState) error {
	state.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, data, 0644)
}
