package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/verityhq/verity/packages/apiassert"
	"github.com/verityhq/verity/packages/expect"
	httpkit "github.com/verityhq/verity/packages/http"
	"github.com/verityhq/verity/packages/schema"
)

var (
	checkMethod      string
	checkStatus      int
	checkContentType string
	checkMaxTime     time.Duration
	checkSchemaFile  string
	checkSecurity    bool
	checkCache       []string
	checkTimeout     time.Duration
	checkInsecure    bool
)

var checkCmd = &cobra.Command{
	Use:   "check <url>",
	Short: "Assert a live endpoint's response",
	Long: `Issue a request and run response assertions against the result.

Examples:
  verity check https://api.example.com/health
  verity check https://api.example.com/users --status 200 --max-time 500ms
  verity check https://api.example.com/users --schema user-list.json --security-headers`,
	Args: cobra.ExactArgs(1),
	RunE: checkCommand,
}

func init() {
	checkCmd.Flags().StringVarP(&checkMethod, "method", "X", "GET", "HTTP method")
	checkCmd.Flags().IntVar(&checkStatus, "status", 200, "expected status code")
	checkCmd.Flags().StringVar(&checkContentType, "content-type", "", "expected Content-Type substring")
	checkCmd.Flags().DurationVar(&checkMaxTime, "max-time", 0, "response time ceiling")
	checkCmd.Flags().StringVar(&checkSchemaFile, "schema", "", "schema file (JSON or YAML) to validate the body against")
	checkCmd.Flags().BoolVar(&checkSecurity, "security-headers", false, "require the standard security headers")
	checkCmd.Flags().StringSliceVar(&checkCache, "cache-directive", nil, "required Cache-Control directives")
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 30*time.Second, "request timeout")
	checkCmd.Flags().BoolVar(&checkInsecure, "insecure", false, "skip TLS certificate validation")
}

func checkCommand(cmd *cobra.Command, args []string) error {
	url := args[0]
	out := cmd.OutOrStdout()

	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	client := httpkit.NewClient(
		httpkit.WithTimeout(checkTimeout),
		httpkit.WithValidateSSL(!checkInsecure),
	)
	// Soft mode so every check runs and the summary shows all mismatches.
	x := expect.New(
		expect.WithSoftMode(true),
		expect.WithRequester(client),
	)

	resp, err := client.Request(cmd.Context(), strings.ToUpper(checkMethod), url)
	if err != nil {
		fmt.Fprintf(out, "  %s %s %s\n", red("✗"), url, red(fmt.Sprintf("(%v)", err)))
		return fmt.Errorf("endpoint unreachable")
	}
	fmt.Fprintf(out, "%s %s %s %s\n", strings.ToUpper(checkMethod), url,
		resp.Status, cyan(fmt.Sprintf("(%dms)", resp.DurationMs())))

	want := apiassert.Expectation{
		StatusCode:  checkStatus,
		ContentType: checkContentType,
		MaxDuration: checkMaxTime,
	}
	if checkSchemaFile != "" {
		node, err := schema.LoadFile(checkSchemaFile)
		if err != nil {
			return err
		}
		want.ValidateJSON = true
		want.Schema = node
	}

	if err := x.Response(resp, want); err != nil {
		return err
	}
	if checkSecurity {
		if err := x.SecurityHeaders(resp); err != nil {
			return err
		}
	}
	if len(checkCache) > 0 {
		if err := x.CachingHeaders(resp, checkCache); err != nil {
			return err
		}
	}

	if err := x.AssertAllSoftAssertionsPassed(); err != nil {
		for _, f := range x.GetSoftAssertionFailures() {
			fmt.Fprintf(out, "  %s %s\n", red("✗"), f.Message)
		}
		return fmt.Errorf("check failed")
	}

	fmt.Fprintf(out, "  %s all checks passed\n", green("✓"))
	return nil
}
