package classifier

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubBioClassifier_ReturnsConfiguredProbability(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	stub := NewStubBioClassifier(0.8, logger)

	p, err := stub.Classify(context.Background(), "Send me CashApp for blessing $$$")
	require.NoError(t, err)
	assert.Equal(t, 0.8, p)

	// Deterministic: same answer for any text, including empty.
	p2, err := stub.Classify(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, p, p2)
}
