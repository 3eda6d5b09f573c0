package identity

import "testing"

func TestResolve(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  string
	}{
		{
			name:  "known ledger record",
			email: "cchalfant@leafsoftwaresolutions.com",
			want:  "554976db892eff514c1bc35fbd736983",
		},
		{
			name:  "empty string",
			email: "",
			want:  "d41d8cd98f00b204e9800998ecf8427e",
		},
		{
			name:  "case sensitive input",
			email: "CChalfant@leafsoftwaresolutions.com",
			want:  "c1aaaabef8eb3ee82ce6a08dd3eeade5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.email); got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.email, got, tt.want)
			}
		})
	}
}

func TestResolve_Deterministic(t *testing.T) {
	emails := []string{
		"a@example.com",
		"b@example.com",
		"cchalfant@leafsoftwaresolutions.com",
	}

	seen := make(map[string]string)
	for _, email := range emails {
		first := Resolve(email)
		if second := Resolve(email); second != first {
			t.Errorf("Resolve(%q) not deterministic: %q != %q", email, first, second)
		}
		if prev, dup := seen[first]; dup {
			t.Errorf("collision: %q and %q both resolve to %q", prev, email, first)
		}
		seen[first] = email
	}
}
