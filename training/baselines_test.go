package training

import "testing"

func TestUniformPolicySumsToOne(t *testing.T) {
	p := NewUniformPolicy(4)
	probs := p.Predict(ZeroEncodedState([]int{1}))
	if len(probs) != 4 {
		t.Fatalf("expected 4 probabilities, got %d", len(probs))
	}
	var sum float32
	for _, v := range probs {
		sum += v
	}
	if sum < 0.999 || sum > 1.001 {
		t.Fatalf("expected probabilities to sum to 1.0, got %v", sum)
	}
}

func TestUniformPolicyZeroActions(t *testing.T) {
	p := NewUniformPolicy(0)
	if probs := p.Predict(ZeroEncodedState([]int{1})); probs != nil {
		t.Fatalf("expected nil for zero action space, got %v", probs)
	}
}

func TestZeroValueAllZero(t *testing.T) {
	v := NewZeroValue(3)
	values := v.Predict(ZeroEncodedState([]int{1}))
	if len(values) != 3 {
		t.Fatalf("expected 3 values, got %d", len(values))
	}
	for _, val := range values {
		if val != 0 {
			t.Fatal("expected all values to be zero")
		}
	}
}

func TestUniformPolicyZeroValueCombined(t *testing.T) {
	n := NewUniformPolicyZeroValue(5, 2)
	policy, value := n.Predict(ZeroEncodedState([]int{1}))
	if len(policy) != 5 || len(value) != 2 {
		t.Fatalf("expected policy len 5 and value len 2, got %d and %d", len(policy), len(value))
	}
}

func TestPredictBatchMatchesPredict(t *testing.T) {
	p := NewUniformPolicy(3)
	states := []EncodedState{ZeroEncodedState([]int{1}), ZeroEncodedState([]int{1})}
	batch := p.PredictBatch(states)
	if len(batch) != 2 {
		t.Fatalf("expected 2 results, got %d", len(batch))
	}
	for _, probs := range batch {
		if len(probs) != 3 {
			t.Fatalf("expected 3 probabilities per result, got %d", len(probs))
		}
	}
}
