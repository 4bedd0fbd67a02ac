package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func set(codes ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		s[code] = struct{}{}
	}
	return s
}

func TestTopoOrder_AcyclicRespectsPredecessors(t *testing.T) {
	courses := set("CS 1110", "CS 2110", "CS 3110", "MATH 1910")
	preds := map[string]map[string]struct{}{
		"CS 2110": set("CS 1110"),
		"CS 3110": set("CS 2110", "MATH 1910"),
	}

	order := TopoOrder(courses, preds)

	require.Len(t, order, 4)
	pos := make(map[string]int, len(order))
	for i, code := range order {
		pos[code] = i
	}
	assert.Less(t, pos["CS 1110"], pos["CS 2110"])
	assert.Less(t, pos["CS 2110"], pos["CS 3110"])
	assert.Less(t, pos["MATH 1910"], pos["CS 3110"])
}

func TestTopoOrder_Deterministic(t *testing.T) {
	courses := set("CS 1110", "CS 2110", "CS 2112", "MATH 1910")
	preds := map[string]map[string]struct{}{
		"CS 2110": set("CS 1110"),
		"CS 2112": set("CS 1110"),
	}

	first := TopoOrder(courses, preds)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, TopoOrder(courses, preds))
	}
	assert.Equal(t, []string{"CS 1110", "MATH 1910", "CS 2110", "CS 2112"}, first)
}

func TestTopoOrder_CycleStillComplete(t *testing.T) {
	courses := set("CS 1110", "CS 2110", "CS 3110")
	preds := map[string]map[string]struct{}{
		"CS 2110": set("CS 3110"),
		"CS 3110": set("CS 2110"),
	}

	order := TopoOrder(courses, preds)

	// Completeness survives the cycle; the cyclic pair is appended sorted.
	assert.Equal(t, []string{"CS 1110", "CS 2110", "CS 3110"}, order)
}

func TestTopoOrder_ExternalPredecessorsIgnored(t *testing.T) {
	courses := set("CS 4820")
	preds := map[string]map[string]struct{}{
		"CS 4820": set("CS 2110", "CS 2800"),
	}

	order := TopoOrder(courses, preds)

	assert.Equal(t, []string{"CS 4820"}, order)
}

func TestTopoOrder_Empty(t *testing.T) {
	assert.Empty(t, TopoOrder(map[string]struct{}{}, nil))
}
