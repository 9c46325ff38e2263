package mocks

import (
	"context"

	"github.com/maynagashev/vocabvault/internal/dictionary"
	"github.com/maynagashev/vocabvault/internal/models"
	"github.com/stretchr/testify/mock"
)

// DictionaryClient - мок dictionary.Client.
type DictionaryClient struct {
	mock.Mock
}

var _ dictionary.Client = (*DictionaryClient)(nil)

func (m *DictionaryClient) Lookup(ctx context.Context, word string) (models.Definitions, error) {
	args := m.Called(ctx, word)
	defs, _ := args.Get(0).(models.Definitions)
	return defs, args.Error(1)
}
