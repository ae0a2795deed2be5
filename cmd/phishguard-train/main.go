// Command phishguard-train fits the phishing classifier and writes the model artifact
package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"phishguard/internal/core/corpus"
	"phishguard/internal/core/model"
	"phishguard/internal/core/pipeline"
	"phishguard/internal/core/version"
	"phishguard/internal/modkit"
	"phishguard/internal/platform/config"
	perr "phishguard/internal/platform/errors"
	"phishguard/internal/platform/logger"
	"phishguard/internal/platform/store"
	corpusmod "phishguard/internal/services/corpus/module"
)

const service = "phishguard-train"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	l := logger.Named("train")
	err := run(ctx, os.Args[1:], config.New(), os.Stderr, l)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		stop()
		l.Fatal().Err(err).Int("code", int(perr.CodeOf(err))).Msg("training failed")
	}
}

type options struct {
	data    string
	pg      bool
	importP bool
	model   string
	recipe   string
	testSize float64
	version  bool
}

func parseFlags(args []string, env config.Conf, stderr io.Writer) (options, error) {
	tc := env.Prefix("CORE_TRAIN_")
	var o options
	fs := flag.NewFlagSet(service, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.data, "data", tc.MayString("DATA", "data/emails.csv"), "labelled csv with text and label columns")
	fromPG := strings.EqualFold(tc.MayEnum("SOURCE", "csv", "csv", "pg"), "pg")
	fs.BoolVar(&o.pg, "pg", fromPG, "read the corpus from postgres (SERVICE_PGSQL_URL) instead of -data")
	fs.BoolVar(&o.importP, "import", false, "copy the -data csv into the postgres corpus table before training")
	fs.StringVar(&o.model, "model", env.Prefix("CORE_MODEL_").MayString("PATH", model.DefaultPath), "artifact output path")
	fs.StringVar(&o.recipe, "recipe", tc.MayString("RECIPE", ""), "optional yaml training recipe")
	fs.Float64Var(&o.testSize, "test-size", tc.MayFloat64("TEST_SIZE", 0), "held-out fraction; 0 keeps the recipe value")
	fs.BoolVar(&o.version, "version", false, "print build info and exit")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if o.pg && o.importP {
		return o, perr.InvalidArgf("-pg and -import are exclusive; -import already trains on the csv")
	}
	return o, nil
}

func run(ctx context.Context, args []string, env config.Conf, stderr io.Writer, l *logger.Logger) error {
	o, err := parseFlags(args, env, stderr)
	if err != nil {
		return err
	}
	if o.version {
		l.Info().Interface("build", version.Info(service)).Msg("version")
		return nil
	}

	opts := pipeline.DefaultOptions()
	if o.recipe != "" {
		if opts, err = pipeline.LoadOptions(o.recipe); err != nil {
			return err
		}
		l.Info().Str("recipe", o.recipe).Msg("loaded training recipe")
	}
	if o.testSize != 0 {
		opts.TestSize = o.testSize
	}

	ds, err := loadCorpus(ctx, o, env, l)
	if err != nil {
		return err
	}
	l.Info().
		Int("rows", ds.Len()).
		Int("dropped", ds.Dropped).
		Interface("labels", ds.Counts()).
		Msg("corpus loaded")

	start := time.Now()
	art, rep, err := pipeline.Train(ctx, ds, opts)
	if err != nil {
		return err
	}
	l.Info().
		Float64("accuracy", rep.Accuracy).
		Int("train", rep.TrainSize).
		Int("test", rep.TestSize).
		Int("features", rep.Features).
		Int("iterations", rep.Iterations).
		Bool("converged", rep.Converged).
		Dur("took", time.Since(start)).
		Msg("model trained")
	if !rep.Converged {
		l.Warn().Int("max_iter", opts.Classifier.MaxIter).Msg("solver hit the iteration cap before converging")
	}
	if _, err := io.WriteString(stderr, rep.String()); err != nil {
		return err
	}

	if err := model.Save(art, o.model); err != nil {
		return err
	}
	l.Info().Str("path", o.model).Str("model_id", art.ID.String()).Msg("model saved")
	return nil
}

// loadCorpus reads the csv, or postgres with -pg, and with -import mirrors the csv into postgres
func loadCorpus(ctx context.Context, o options, env config.Conf, l *logger.Logger) (*corpus.Dataset, error) {
	if !o.pg && !o.importP {
		return corpus.LoadFile(o.data)
	}

	cfg := store.FromEnv(service, env.Prefix("SERVICE_"))
	if !cfg.PG.Enabled {
		return nil, perr.InvalidArgf("postgres corpus requested but SERVICE_PGSQL_URL is unset")
	}
	st, err := store.Open(ctx, cfg, store.WithLogger(*l))
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "open postgres")
	}
	defer func() {
		if err := st.Close(ctx); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	mod := corpusmod.New(modkit.Deps{Log: *l, Cfg: env, PG: st.PG}, corpusmod.FromConfig(env))
	ports := mod.Ports().(corpusmod.Ports)

	if o.importP {
		ds, err := corpus.LoadFile(o.data)
		if err != nil {
			return nil, err
		}
		n, err := ports.Importer.Import(ctx, ds)
		if err != nil {
			return nil, err
		}
		l.Info().Int("rows", n).Str("from", o.data).Msg("imported csv into postgres")
		return ds, nil
	}

	if n, err := ports.Service.Count(ctx); err == nil {
		l.Debug().Int64("rows", n).Msg("corpus table size")
	}
	return ports.Loader.Load(ctx)
}
