package cache

import (
	"testing"

	"espprc/pkg/domain"
)

func buildTestGraph(t *testing.T, edgeCost float64) *domain.Graph {
	t.Helper()
	nodes := []domain.Node{
		{ID: 0},
		{ID: 1, Demand: 5},
		{ID: 2},
	}
	adjacency := [][]domain.Edge{
		{{From: 0, To: 1, Cost: edgeCost, RoutingTime: 3}},
		{{From: 1, To: 2, Cost: edgeCost, RoutingTime: 4}},
		{},
	}
	g, err := domain.Construct(nodes, adjacency)
	if err != nil {
		t.Fatalf("Construct() error = %v", err)
	}
	return g
}

func TestGraphHash(t *testing.T) {
	t.Run("nil graph", func(t *testing.T) {
		hash := GraphHash(nil)
		if hash != "" {
			t.Errorf("GraphHash(nil) = %v, want empty string", hash)
		}
	})

	t.Run("same graph produces same hash", func(t *testing.T) {
		g := buildTestGraph(t, 1)

		hash1 := GraphHash(g)
		hash2 := GraphHash(g)

		if hash1 != hash2 {
			t.Errorf("same graph should produce same hash: %v != %v", hash1, hash2)
		}
	})

	t.Run("different costs produce different hashes", func(t *testing.T) {
		g1 := buildTestGraph(t, 1)
		g2 := buildTestGraph(t, 2)

		hash1 := GraphHash(g1)
		hash2 := GraphHash(g2)

		if hash1 == hash2 {
			t.Error("different graphs should produce different hashes")
		}
	})

	t.Run("revised cost changes the hash", func(t *testing.T) {
		g := buildTestGraph(t, 1)
		before := GraphHash(g)

		g.ReviseCosts([]float64{0.5, 0, 0})
		after := GraphHash(g)

		if before == after {
			t.Error("ReviseCosts should change the graph hash")
		}
	})
}

func TestDualHash(t *testing.T) {
	d1 := []float64{1, 2, 3}
	d2 := []float64{1, 2, 3}
	d3 := []float64{1, 2, 4}

	if DualHash(d1) != DualHash(d2) {
		t.Error("identical dual vectors should hash identically")
	}
	if DualHash(d1) == DualHash(d3) {
		t.Error("different dual vectors should hash differently")
	}
}

func TestBuildSolveKey(t *testing.T) {
	key := BuildSolveKey("abc123", "def456", "")
	expected := "solve:abc123:def456"
	if key != expected {
		t.Errorf("BuildSolveKey() = %v, want %v", key, expected)
	}
}

func TestBuildSolveKey_WithBranch(t *testing.T) {
	key := BuildSolveKey("abc123", "def456", BranchSignature(1, 2, 1))
	expected := "solve:abc123:def456:b:1:2:1"
	if key != expected {
		t.Errorf("BuildSolveKey() = %v, want %v", key, expected)
	}
}

func TestBranchSignature(t *testing.T) {
	if got, want := BranchSignature(0, 3, 0), "b:0:3:0"; got != want {
		t.Errorf("BranchSignature() = %v, want %v", got, want)
	}
}

func TestQuickHash(t *testing.T) {
	data := []byte("test data")
	hash := QuickHash(data)

	if len(hash) != 64 { // SHA256 hex = 64 chars
		t.Errorf("QuickHash length = %d, want 64", len(hash))
	}

	hash2 := QuickHash(data)
	if hash != hash2 {
		t.Error("same data should produce same hash")
	}
}

func TestShortHash(t *testing.T) {
	data := []byte("test data")
	hash := ShortHash(data)

	if len(hash) != 16 {
		t.Errorf("ShortHash length = %d, want 16", len(hash))
	}
}
