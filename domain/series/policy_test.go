package series

import (
	"errors"
	"testing"
)

func TestParsePolicy_MethodTags(t *testing.T) {
	cases := []struct {
		tag  string
		want FillPolicy
	}{
		{"none", NoFill()},
		{"previous", CarryPrevious()},
		{"next", CarryNext()},
		{"nearest", Interpolate(KernelNearest)},
		{"linear", Interpolate(KernelLinear)},
		{"spline", Interpolate(KernelSpline)},
		{"pchip", Interpolate(KernelPchip)},
		{"cubic", Interpolate(KernelCubic)},
	}

	for _, tc := range cases {
		got, err := ParsePolicy(tc.tag)
		if err != nil {
			t.Fatalf("ParsePolicy(%q) failed: %v", tc.tag, err)
		}
		if got != tc.want {
			t.Errorf("ParsePolicy(%q) = %v, want %v", tc.tag, got, tc.want)
		}
	}
}

func TestParsePolicy_CaseInsensitive(t *testing.T) {
	for _, tag := range []string{"Linear", "LINEAR", "  PcHiP "} {
		policy, err := ParsePolicy(tag)
		if err != nil {
			t.Fatalf("ParsePolicy(%q) failed: %v", tag, err)
		}
		if !policy.IsInterpolation() {
			t.Errorf("ParsePolicy(%q) should select an interpolation policy", tag)
		}
	}
}

func TestParsePolicy_NumericScalar(t *testing.T) {
	policy, err := ParsePolicy(3.5)
	if err != nil {
		t.Fatalf("ParsePolicy(3.5) failed: %v", err)
	}
	if policy != Constant(3.5) {
		t.Errorf("ParsePolicy(3.5) = %v, want Constant(3.5)", policy)
	}

	policy, err = ParsePolicy(0)
	if err != nil {
		t.Fatalf("ParsePolicy(0) failed: %v", err)
	}
	if policy != Constant(0) {
		t.Errorf("ParsePolicy(0) = %v, want Constant(0)", policy)
	}
}

func TestParsePolicy_NumericStringIsNotAScalar(t *testing.T) {
	// A string is always a method tag; "3.5" must not become a constant fill.
	_, err := ParsePolicy("3.5")
	var invalidMethod *InvalidMethodError
	if !errors.As(err, &invalidMethod) {
		t.Fatalf("expected InvalidMethodError for %q, got %v", "3.5", err)
	}
}

func TestParsePolicy_UnknownTag(t *testing.T) {
	_, err := ParsePolicy("bogus")
	var invalidMethod *InvalidMethodError
	if !errors.As(err, &invalidMethod) {
		t.Fatalf("expected InvalidMethodError, got %v", err)
	}
	if invalidMethod.Method != "bogus" {
		t.Errorf("InvalidMethodError should carry the offending tag, got %q", invalidMethod.Method)
	}
}

func TestParsePolicy_Passthrough(t *testing.T) {
	want := Interpolate(KernelCubic)
	got, err := ParsePolicy(want)
	if err != nil {
		t.Fatalf("ParsePolicy(FillPolicy) failed: %v", err)
	}
	if got != want {
		t.Errorf("ParsePolicy(FillPolicy) = %v, want %v", got, want)
	}
}

func TestFillPolicy_String(t *testing.T) {
	cases := map[string]FillPolicy{
		"none":          NoFill(),
		"previous":      CarryPrevious(),
		"next":          CarryNext(),
		"constant(1.5)": Constant(1.5),
		"pchip":         Interpolate(KernelPchip),
	}
	for want, policy := range cases {
		if got := policy.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}
