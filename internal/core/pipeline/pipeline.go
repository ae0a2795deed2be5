// Package pipeline trains and evaluates the extractor + classifier pair as one unit
package pipeline

import (
	"context"

	"phishguard/internal/core/corpus"
	"phishguard/internal/core/logreg"
	"phishguard/internal/core/model"
	"phishguard/internal/core/textvec"
	perr "phishguard/internal/platform/errors"
)

// Train splits ds, fits on the train partition only, and scores the held-out partition
// The returned artifact is not persisted; callers hand it to model.Save
func Train(ctx context.Context, ds *corpus.Dataset, opts Options) (*model.Artifact, Report, error) {
	if err := opts.Validate(); err != nil {
		return nil, Report{}, err
	}
	switch {
	case ds == nil:
		return nil, Report{}, perr.InvalidArgf("pipeline: nil dataset")
	case len(ds.Texts) != len(ds.Labels):
		return nil, Report{}, perr.InvalidArgf("pipeline: %d texts but %d labels", len(ds.Texts), len(ds.Labels))
	}
	trainIdx, testIdx, err := StratifiedSplit(ds.Labels, opts.TestSize, opts.Seed)
	if err != nil {
		return nil, Report{}, err
	}
	if err := ctx.Err(); err != nil {
		return nil, Report{}, err
	}

	trainX, trainY := pick(ds, trainIdx)
	testX, testY := pick(ds, testIdx)

	vec, err := textvec.New(opts.Features)
	if err != nil {
		return nil, Report{}, err
	}
	xs, err := vec.FitTransform(trainX)
	if err != nil {
		return nil, Report{}, err
	}
	if err := ctx.Err(); err != nil {
		return nil, Report{}, err
	}

	clf, info, err := logreg.Fit(ctx, xs, trainY, opts.Classifier)
	if err != nil {
		return nil, Report{}, err
	}
	if err := ctx.Err(); err != nil {
		return nil, Report{}, err
	}

	testVecs, err := vec.TransformAll(testX)
	if err != nil {
		return nil, Report{}, err
	}
	pred := make([]string, len(testVecs))
	for i, v := range testVecs {
		if pred[i], err = clf.Predict(v); err != nil {
			return nil, Report{}, err
		}
	}

	rep := Evaluate(testY, pred, clf.Classes())
	rep.TrainSize = len(trainIdx)
	rep.Features = vec.Dim()
	rep.Iterations = info.Iterations
	rep.Converged = info.Converged

	art, err := model.New(vec, clf, model.Info{
		TrainSize:  rep.TrainSize,
		TestSize:   rep.TestSize,
		Accuracy:   rep.Accuracy,
		Iterations: info.Iterations,
		Converged:  info.Converged,
	})
	if err != nil {
		return nil, Report{}, err
	}
	return art, rep, nil
}

func pick(ds *corpus.Dataset, idx []int) (texts, labels []string) {
	texts = make([]string, len(idx))
	labels = make([]string, len(idx))
	for i, j := range idx {
		texts[i] = ds.Texts[j]
		labels[i] = ds.Labels[j]
	}
	return texts, labels
}
