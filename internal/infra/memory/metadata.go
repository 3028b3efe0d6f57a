package memory

import (
	"context"

	"stage-game-service/internal/domain"
)

// StaticMetadata serves reward metadata from a fixed map.
type StaticMetadata struct {
	data map[string]domain.GameData
}

func NewStaticMetadata(data map[string]domain.GameData) *StaticMetadata {
	return &StaticMetadata{data: data}
}

func (m *StaticMetadata) GetGameData(_ context.Context, gameID string) (domain.GameData, error) {
	if data, ok := m.data[gameID]; ok {
		return data, nil
	}
	return domain.GameData{}, domain.ErrGameDataNotFound
}
