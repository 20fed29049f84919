package main

import (
	"crypto/tls"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rajkumar-bhange/api-testing-demo/apihelper"
	"github.com/rajkumar-bhange/api-testing-demo/apitests"
	"github.com/rajkumar-bhange/api-testing-demo/config"
	"github.com/rajkumar-bhange/api-testing-demo/framework"
	"github.com/rajkumar-bhange/api-testing-demo/report"
	"github.com/rajkumar-bhange/api-testing-demo/transport"

	"github.com/spf13/afero"
)

func main() {
	os.Exit(run(os.Args, os.Stdout))
}

func run(args []string, output io.Writer) int {
	var params commandParams
	if !params.Read(args[1:], output) {
		return 0
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(output, err)
		return 1
	}
	if params.transport != "" {
		cfg.Transport = params.transport
	}
	if params.retries >= 0 {
		cfg.Retries = params.retries
	}
	if params.workers >= 0 {
		cfg.Workers = params.workers
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(output, err)
		return 1
	}

	var suites []apitests.Suite
	if params.command == commandSuite {
		suite, err := apitests.FindSuite(params.suiteName)
		if err != nil {
			fmt.Fprintf(output, "%s; available suites are: %v\n", err, apitests.SuiteNames())
			return 1
		}
		suites = append(suites, suite)
	}

	mainDebugLogger := framework.NullLogger()
	if params.debugAll {
		mainDebugLogger = log.New(output, "", log.LstdFlags)
	}

	tr, closeTransport, err := newTransport(cfg, mainDebugLogger)
	if err != nil {
		fmt.Fprintln(output, err)
		return 1
	}
	defer closeTransport()

	fmt.Fprintln(output)
	framework.PrintFilterDescription(output, params.filters)
	fmt.Fprintf(output, "Running test suite (transport: %s, retries: %d, workers: %s)\n",
		cfg.Transport, cfg.Retries, describeWorkers(cfg.Workers))

	testLogger := &ConsoleTestLogger{
		Output:               output,
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}
	env := apitests.Environment{
		Transport:          tr,
		JSONPlaceholderURL: cfg.JSONPlaceholderURL,
		RestCountriesURL:   cfg.RestCountriesURL,
		HTTPBinURL:         cfg.HTTPBinURL,
	}
	results := apitests.RunTestSuite(env, suites, params.filters.AsFilter, testLogger, apitests.RunOptions{
		RunOptions: framework.RunOptions{Retries: cfg.Retries},
		Workers:    cfg.Workers,
	})

	fmt.Fprintln(output)
	printResults(output, results)
	if !results.OK() {
		fmt.Fprintln(output)
		fmt.Fprintln(output, "To rerun only the failed tests:")
		fmt.Fprintf(output, "  %s\n", rerunCommand(args[0], params, results.Failures))
	}

	if err := writeReport(cfg, params, results, output); err != nil {
		fmt.Fprintf(output, "Could not generate report: %s\n", err)
		fmt.Fprintf(output, "You can manually open %s/index.html in your browser.\n", cfg.ReportDir)
	}

	if !results.OK() {
		return 1
	}
	return 0
}

func newTransport(cfg *config.Config, logger framework.Logger) (apihelper.Transport, func(), error) {
	if cfg.Transport == config.TransportPlaywright {
		if err := transport.InstallPlaywright(true); err != nil {
			return nil, nil, err
		}
		pw, err := transport.NewPlaywright(transport.PlaywrightOptions{
			BaseURL:           cfg.JSONPlaceholderURL,
			Timeout:           cfg.RequestTimeout(),
			IgnoreHTTPSErrors: cfg.IgnoreHTTPSErrors,
		}, framework.PrefixedLogger(logger, "[playwright] "))
		if err != nil {
			return nil, nil, err
		}
		return pw, func() { _ = pw.Close() }, nil
	}
	client := &http.Client{Timeout: cfg.RequestTimeout()}
	if cfg.IgnoreHTTPSErrors {
		rt := http.DefaultTransport.(*http.Transport).Clone()
		rt.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
		client.Transport = rt
	}
	return transport.NewHTTP("", client, framework.PrefixedLogger(logger, "[http] ")), func() {}, nil
}

func describeWorkers(n int) string {
	if n == 0 {
		return "all suites"
	}
	return fmt.Sprint(n)
}

func writeReport(cfg *config.Config, params commandParams, results framework.Results, output io.Writer) error {
	fs := afero.NewOsFs()
	writer := report.NewResultWriter(fs, cfg.ResultsDir)
	if err := writer.Clean(); err != nil {
		return err
	}
	if _, err := writer.Write(results); err != nil {
		return err
	}
	indexPath, err := report.Generate(fs, cfg.ResultsDir, cfg.ReportDir)
	if err != nil {
		return err
	}
	fmt.Fprintf(output, "Report written to %s\n", indexPath)

	if params.command == commandUI {
		server, err := report.Serve(fs, cfg.ReportDir, params.uiPort, framework.NullLogger())
		if err != nil {
			return err
		}
		defer server.Close()
		fmt.Fprintf(output, "Serving report at %s (press Ctrl+C to stop)\n", server.URL())
		if !params.noOpen {
			if err := report.Open(server.URL() + "/"); err != nil {
				return err
			}
		}
		interrupts := make(chan os.Signal, 1)
		signal.Notify(interrupts, os.Interrupt, syscall.SIGTERM)
		<-interrupts
		return nil
	}

	if params.noOpen || cfg.CI {
		return nil
	}
	fmt.Fprintln(output, "Opening report in browser...")
	return report.Open(indexPath)
}
