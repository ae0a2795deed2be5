// Command phishguard-predict scores one email from a flag or standard input
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"phishguard/internal/core/model"
	"phishguard/internal/core/predict"
	"phishguard/internal/core/verdict"
	"phishguard/internal/core/version"
	"phishguard/internal/platform/config"
	perr "phishguard/internal/platform/errors"
	"phishguard/internal/platform/logger"
)

const service = "phishguard-predict"

func main() {
	err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr, config.New())
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		l := logger.Named("predict")
		l.Error().Err(err).Int("code", int(perr.CodeOf(err))).Msg("prediction failed")
		os.Exit(1)
	}
}

type options struct {
	email   string
	model   string
	json    bool
	version bool
}

func parseFlags(args []string, env config.Conf, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet(service, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.email, "email", "", "email text to classify; read from stdin when omitted")
	fs.StringVar(&o.model, "model", env.Prefix("CORE_MODEL_").MayString("PATH", model.DefaultPath), "artifact path")
	fs.BoolVar(&o.json, "json", false, "print the result as JSON")
	fs.BoolVar(&o.version, "version", false, "print build info and exit")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if fs.NArg() > 0 {
		return o, perr.InvalidArgf("unexpected arguments %v", fs.Args())
	}
	return o, nil
}

// jsonResult is the -json output
type jsonResult struct {
	Verdict     string             `json:"verdict"`
	Band        string             `json:"band"`
	Probability float64            `json:"probability"`
	Percent     string             `json:"percent"`
	Classes     map[string]float64 `json:"classes"`
	ModelID     string             `json:"model_id"`
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer, env config.Conf) error {
	o, err := parseFlags(args, env, stderr)
	if err != nil {
		return err
	}
	if o.version {
		_, err := fmt.Fprintln(stdout, version.Info(service))
		return err
	}

	// load the model before prompting so a missing artifact fails fast
	svc, err := predict.Open(o.model)
	if err != nil {
		return err
	}

	text := o.email
	if text == "" {
		if !o.json {
			fmt.Fprintln(stderr, "Paste the email text below. Press Ctrl+D when done:")
		}
		b, err := io.ReadAll(stdin)
		if err != nil {
			return perr.Wrap(err, perr.ErrorCodeInvalidArgument, "read stdin")
		}
		text = string(b)
	}

	res, err := svc.Predict(text)
	if err != nil {
		return err
	}
	p := verdict.Clamp(res.Probability)

	if o.json {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(jsonResult{
			Verdict:     res.Verdict.String(),
			Band:        res.Verdict.Key(),
			Probability: p,
			Percent:     verdict.Percent(p),
			Classes:     res.Probabilities,
			ModelID:     res.ModelID.String(),
		})
	}

	_, err = fmt.Fprintf(stdout, "\n=== RESULT ===\nVerdict: %s\nProbability of phishing: %s\n", res.Verdict, verdict.Percent(p))
	return err
}
