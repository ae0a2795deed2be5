package pipeline

import (
	"fmt"
	"strings"
)

// ClassMetrics are precision/recall/F1 for one label (or an average row)
type ClassMetrics struct {
	Label     string  `json:"label"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
	Support   int     `json:"support"`
}

// Report is the held-out evaluation of a training run
type Report struct {
	Accuracy    float64        `json:"accuracy"`
	Classes     []ClassMetrics `json:"classes"`
	MacroAvg    ClassMetrics   `json:"macro_avg"`
	WeightedAvg ClassMetrics   `json:"weighted_avg"`

	TrainSize  int  `json:"train_size"`
	TestSize   int  `json:"test_size"`
	Features   int  `json:"features"`
	Iterations int  `json:"iterations"`
	Converged  bool `json:"converged"`
}

// Evaluate scores predictions against truth for the given labels in order
// Undefined ratios (no predicted or no true rows) score 0
func Evaluate(truth, pred, labels []string) Report {
	var correct int
	for i := range truth {
		if truth[i] == pred[i] {
			correct++
		}
	}
	rep := Report{TestSize: len(truth)}
	if len(truth) > 0 {
		rep.Accuracy = float64(correct) / float64(len(truth))
	}

	rep.MacroAvg.Label = "macro avg"
	rep.WeightedAvg.Label = "weighted avg"
	for _, l := range labels {
		var tp, fp, fn int
		for i := range truth {
			switch {
			case truth[i] == l && pred[i] == l:
				tp++
			case truth[i] != l && pred[i] == l:
				fp++
			case truth[i] == l && pred[i] != l:
				fn++
			}
		}
		m := ClassMetrics{
			Label:     l,
			Precision: ratio(tp, tp+fp),
			Recall:    ratio(tp, tp+fn),
			Support:   tp + fn,
		}
		if s := m.Precision + m.Recall; s > 0 {
			m.F1 = 2 * m.Precision * m.Recall / s
		}
		rep.Classes = append(rep.Classes, m)

		w := float64(m.Support)
		rep.MacroAvg.Precision += m.Precision
		rep.MacroAvg.Recall += m.Recall
		rep.MacroAvg.F1 += m.F1
		rep.WeightedAvg.Precision += w * m.Precision
		rep.WeightedAvg.Recall += w * m.Recall
		rep.WeightedAvg.F1 += w * m.F1
		rep.MacroAvg.Support += m.Support
		rep.WeightedAvg.Support += m.Support
	}
	if k := float64(len(labels)); k > 0 {
		rep.MacroAvg.Precision /= k
		rep.MacroAvg.Recall /= k
		rep.MacroAvg.F1 /= k
	}
	if s := float64(rep.WeightedAvg.Support); s > 0 {
		rep.WeightedAvg.Precision /= s
		rep.WeightedAvg.Recall /= s
		rep.WeightedAvg.F1 /= s
	}
	return rep
}

func ratio(a, b int) float64 {
	if b == 0 {
		return 0
	}
	return float64(a) / float64(b)
}

// String renders a classification report table
func (r Report) String() string {
	width := len(r.WeightedAvg.Label)
	for _, c := range r.Classes {
		width = max(width, len(c.Label))
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%*s %9s %9s %9s %9s\n\n", width, "", "precision", "recall", "f1-score", "support")
	row := func(m ClassMetrics) {
		fmt.Fprintf(&b, "%*s %9.2f %9.2f %9.2f %9d\n", width, m.Label, m.Precision, m.Recall, m.F1, m.Support)
	}
	for _, c := range r.Classes {
		row(c)
	}
	b.WriteByte('\n')
	fmt.Fprintf(&b, "%*s %9s %9s %9.2f %9d\n", width, "accuracy", "", "", r.Accuracy, r.TestSize)
	row(r.MacroAvg)
	row(r.WeightedAvg)
	return b.String()
}
