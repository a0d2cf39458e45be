package common

import "testing"

func TestIDCT(t *testing.T) {
	tests := []struct {
		name string
		coef [64]int32
		want byte
	}{
		{
			name: "all coefficients zero decodes to mid-gray",
			want: 128,
		},
		{
			name: "DC-only block level-shifts uniformly",
			want: 129,
		},
	}
	tests[1].coef[0] = 8

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out [64]byte
			IDCT(tt.coef[:], out[:], 8)
			for i, v := range out {
				if v != tt.want {
					t.Fatalf("out[%d] = %d, want %d", i, v, tt.want)
				}
			}
		})
	}
}
