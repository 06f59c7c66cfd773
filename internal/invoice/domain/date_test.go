package domain

import "testing"

func TestNormalizeDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "2024-3-5", want: "2024-03-05"},
		{in: "2024-03-05", want: "2024-03-05"},
		{in: " 2024/12/31 ", want: "2024-12-31"},
		{in: "2024-03-05T23:59:59-08:00", want: "2024-03-05"},
		{in: "2024-03-05T00:00:00Z", want: "2024-03-05"},
		{in: "2024-03-05 10:00", want: "2024-03-05"},
		{in: "2024.3.5", want: "2024-03-05"},
		{in: "2024-03-05T10:30:00.123+05:00", want: "2024-03-05"},
		{in: "2024-03-05 garbage", want: ""},
		{in: "2024-03/05", want: ""},
		{in: "2024.03-05", want: ""},
		{in: "3/5/2024", want: "2024-03-05"},
		{in: "March 5, 2024", want: "2024-03-05"},
		{in: "Mar 5, 2024", want: "2024-03-05"},
		{in: "5 March 2024", want: "2024-03-05"},
		{in: "2024-02-29", want: "2024-02-29"},
		{in: "2023-02-29", want: ""},
		{in: "2024-13-45", want: ""},
		{in: "2024-00-10", want: ""},
		{in: "not-a-date", want: ""},
		{in: "", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			if got := NormalizeDate(tc.in); got != tc.want {
				t.Fatalf("NormalizeDate(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalizeDateIsStableOnOutput(t *testing.T) {
	for _, in := range []string{"2024-3-5", "March 5, 2024", "bogus"} {
		once := NormalizeDate(in)
		if twice := NormalizeDate(once); twice != once {
			t.Fatalf("NormalizeDate not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}
