package auth

import "testing"

func TestRequirement_SatisfiedBy(t *testing.T) {
	tests := []struct {
		name      string
		required  Requirement
		available []string
		expected  bool
	}{
		{
			name:      "empty requirement always passes",
			required:  nil,
			available: nil,
			expected:  true,
		},
		{
			name:      "single action present",
			required:  RequireAny("VerifyMeNin"),
			available: []string{"VerifyMeNin"},
			expected:  true,
		},
		{
			name:      "single action absent",
			required:  RequireAny("MonoCac"),
			available: []string{"VerifyMeNin"},
			expected:  false,
		},
		{
			name:      "either alternative satisfies",
			required:  RequireAny("VerifyMeAccount", "VasBillPayment"),
			available: []string{"VasBillPayment"},
			expected:  true,
		},
		{
			name:      "no alternative present",
			required:  RequireAny("VerifyMeAccount", "VasBillPayment"),
			available: []string{"VerifyMeNin", "VerifyMeBvn"},
			expected:  false,
		},
		{
			name:      "empty inventory fails any requirement",
			required:  RequireAny("VerifyMeNin"),
			available: []string{},
			expected:  false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.required.SatisfiedBy(tc.available); got != tc.expected {
				t.Errorf("SatisfiedBy(%v) = %v, expected %v", tc.available, got, tc.expected)
			}
		})
	}
}
