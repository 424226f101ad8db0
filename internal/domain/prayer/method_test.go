package prayer

import (
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/ID-Brains/islam-station/pkg/errors"
)

func TestParseMethod(t *testing.T) {
	for _, m := range methodOrder {
		parsed, err := ParseMethod(string(m))
		require.NoError(t, err)
		require.Equal(t, m, parsed)
	}

	parsed, err := ParseMethod("")
	require.NoError(t, err)
	require.Equal(t, DefaultMethod, parsed)

	_, err = ParseMethod("NotAMethod")
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, apperrors.CodeUnknownMethod))
}

func TestRegistryShape(t *testing.T) {
	require.Len(t, methodParams, 10)

	for m, p := range methodParams {
		require.NotEmpty(t, p.Name, "method %s", m)
		require.Greater(t, p.FajrAngle, 0.0, "method %s", m)

		// Exactly one of isha angle or isha interval is configured.
		angleBased := p.IshaAngle > 0
		intervalBased := p.IshaIntervalMin > 0
		require.NotEqual(t, angleBased, intervalBased, "method %s must be either angle or interval based", m)
	}

	require.Equal(t, 4.0, methodParams[Jafari].MaghribAngle)
	require.Equal(t, 90, methodParams[UmmAlQura].IshaIntervalMin)
	require.Equal(t, 90, methodParams[Qatar].IshaIntervalMin)
}

func TestMethodsListingOrder(t *testing.T) {
	infos := Methods()
	require.Len(t, infos, len(methodOrder))
	for i, m := range methodOrder {
		require.Equal(t, string(m), infos[i].Code)
	}
}
