package assert

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsTrue(t *testing.T) {
	require.NotPanics(t, func() { IsTrue(true, "unused") })
	require.PanicsWithError(t, "bad depth 3", func() { IsTrue(false, "bad depth %d", 3) })
}
