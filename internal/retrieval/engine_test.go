package retrieval

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	embedding_mocks "yoga-rag/internal/embedding/mocks"
	"yoga-rag/internal/vectorstore"
	vectorstore_mocks "yoga-rag/internal/vectorstore/mocks"
)

func TestEngine_Retrieve(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockEmbedder := embedding_mocks.NewMockProvider(ctrl)
	mockIndex := vectorstore_mocks.NewMockVectorIndex(ctrl)

	queryVector := []float32{0.1, 0.2, 0.3}
	passages := []vectorstore.Passage{
		{Content: "Yoga is a practice.", Score: 0.1},
		{Content: "Asanas are postures.", Score: 0.4},
	}

	mockEmbedder.EXPECT().
		EmbedTexts(gomock.Any(), []string{"What is Yoga?"}).
		Return([][]float32{queryVector}, nil)
	mockIndex.EXPECT().
		Search(gomock.Any(), queryVector, 3).
		Return(passages, nil)

	engine := NewEngine(mockEmbedder, mockIndex, 3)
	got, err := engine.Retrieve(context.Background(), "What is Yoga?")
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("Retrieve() returned %d passages, want 2", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Score < got[i-1].Score {
			t.Errorf("Retrieve() results not sorted by non-decreasing distance at %d", i)
		}
	}
}

func TestEngine_Retrieve_EmbeddingFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockEmbedder := embedding_mocks.NewMockProvider(ctrl)
	mockIndex := vectorstore_mocks.NewMockVectorIndex(ctrl)

	mockEmbedder.EXPECT().
		EmbedTexts(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("embedding service down"))

	engine := NewEngine(mockEmbedder, mockIndex, 3)
	_, err := engine.Retrieve(context.Background(), "What is Yoga?")
	if err == nil {
		t.Fatal("Retrieve() expected error when embedding fails, got nil")
	}
}

func TestEngine_Retrieve_SearchFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockEmbedder := embedding_mocks.NewMockProvider(ctrl)
	mockIndex := vectorstore_mocks.NewMockVectorIndex(ctrl)

	mockEmbedder.EXPECT().
		EmbedTexts(gomock.Any(), gomock.Any()).
		Return([][]float32{{0.1}}, nil)
	mockIndex.EXPECT().
		Search(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("index unavailable"))

	engine := NewEngine(mockEmbedder, mockIndex, 3)
	_, err := engine.Retrieve(context.Background(), "What is Yoga?")
	if err == nil {
		t.Fatal("Retrieve() expected error when search fails, got nil")
	}
}

func TestEngine_Retrieve_EmptyIndex(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockEmbedder := embedding_mocks.NewMockProvider(ctrl)
	mockIndex := vectorstore_mocks.NewMockVectorIndex(ctrl)

	mockEmbedder.EXPECT().
		EmbedTexts(gomock.Any(), gomock.Any()).
		Return([][]float32{{0.1}}, nil)
	mockIndex.EXPECT().
		Search(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]vectorstore.Passage{}, nil)

	engine := NewEngine(mockEmbedder, mockIndex, 3)
	got, err := engine.Retrieve(context.Background(), "What is Yoga?")
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Retrieve() on empty index returned %d passages, want 0", len(got))
	}
}
