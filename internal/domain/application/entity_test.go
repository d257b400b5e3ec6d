package application

import "testing"

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusProposed, StatusAccepted, true},
		{StatusProposed, StatusRejected, true},
		{StatusProposed, StatusProposed, false},
		{StatusAccepted, StatusRejected, false},
		{StatusAccepted, StatusAccepted, false},
		{StatusRejected, StatusAccepted, false},
		{StatusRejected, StatusProposed, false},
	}

	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestStatusTerminal(t *testing.T) {
	if StatusProposed.Terminal() {
		t.Errorf("proposed must not be terminal")
	}
	if !StatusAccepted.Terminal() || !StatusRejected.Terminal() {
		t.Errorf("accepted and rejected must be terminal")
	}
}
