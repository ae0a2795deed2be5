package verdict

import (
	"math"
	"testing"
)

func TestClassify_Boundaries(t *testing.T) {
	cases := []struct {
		p    float64
		want Band
	}{
		{1.0, VerySuspicious},
		{0.85, VerySuspicious},
		{0.8499999, Suspicious},
		{0.65, Suspicious},
		{0.6499999, NeedsReview},
		{0.45, NeedsReview},
		{0.4499999, LikelySafe},
		{0.0, LikelySafe},
		{-0.2, LikelySafe},
		{1.7, VerySuspicious},
		{math.NaN(), LikelySafe},
	}
	for _, c := range cases {
		if got := Classify(c.p); got != c.want {
			t.Errorf("Classify(%v) = %v, want %v", c.p, got, c.want)
		}
	}
}

func TestClassify_Monotone(t *testing.T) {
	prev := Classify(0)
	for i := 1; i <= 1000; i++ {
		b := Classify(float64(i) / 1000)
		if b < prev {
			t.Fatalf("band decreased at p=%v", float64(i)/1000)
		}
		prev = b
	}
}

func TestBandStrings(t *testing.T) {
	want := map[Band]string{
		VerySuspicious: "Very Suspicious",
		Suspicious:     "Suspicious",
		NeedsReview:    "Uncertain - needs review",
		LikelySafe:     "Likely Safe",
	}
	for b, s := range want {
		if b.String() != s {
			t.Errorf("%d.String() = %q", b, b.String())
		}
		if b.Advice() == "" || b.Key() == "unknown" {
			t.Errorf("%v missing advice or key", b)
		}
	}
	if !VerySuspicious.Risky() || !Suspicious.Risky() || NeedsReview.Risky() || LikelySafe.Risky() {
		t.Fatal("Risky covers exactly the top two bands")
	}
}

func TestPercentAndClamp(t *testing.T) {
	if got := Percent(0.87354); got != "87.35%" {
		t.Fatalf("Percent = %q", got)
	}
	if got := Percent(1.2); got != "100.00%" {
		t.Fatalf("Percent(1.2) = %q", got)
	}
	if Clamp(-1) != 0 || Clamp(math.NaN()) != 0 || Clamp(0.5) != 0.5 {
		t.Fatal("Clamp")
	}
}
