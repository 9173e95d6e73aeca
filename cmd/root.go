package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/brogergvhs/manhuafast/internal/sourceerr"
)

var (
	flagIgnoreConfig bool
	flagDebug        bool

	// site
	flagPrimary  string
	flagFallback string
	flagShape    string

	// headers/auth
	flagCookie           string
	flagCookieFile       string
	flagUserAgent        string
	flagCloudflareBypass bool
)

// Version is set at build time with -ldflags "-X .../cmd.Version=...".
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:           "manhuafast",
	Version:       Version,
	Short:         "Browse ManhuaFast series, chapters and chapter details from the terminal",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&flagDebug, "debug", false, "enable debug logging")
	pf.BoolVar(&flagIgnoreConfig, "ignore-config", false, "ignore config and use only CLI flags")

	pf.StringVar(&flagPrimary, "primary", "", "primary site base URL (default https://manhuafast.net)")
	pf.StringVar(&flagFallback, "fallback", "", "mirror site base URL used when the primary fails")
	pf.StringVar(&flagShape, "shape", "", "chapter shape: web or post")

	pf.StringVar(&flagCookie, "cookie", "", "cookie string, e.g. \"key=value; other=123\"")
	pf.StringVar(&flagCookieFile, "cookie-file", "", "path to a text file with cookies (one header line)")
	pf.StringVar(&flagUserAgent, "user-agent", "", "override User-Agent")
	pf.BoolVar(&flagCloudflareBypass, "cloudflare-bypass", false, "use a browser-like TLS fingerprint")
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		reportError(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// reportError prints the challenge signal on its own line so wrappers can
// match it, followed by what the user has to do.
func reportError(w io.Writer, err error) {
	var se *sourceerr.Error
	if errors.As(err, &se) && se.Kind == sourceerr.KindChallenge {
		fmt.Fprintln(w, sourceerr.ChallengeSignal)
		fmt.Fprintf(w, "The site asked for a browser check. Open %s in a browser, pass the check,\n", se.URL)
		fmt.Fprintln(w, "then export its cookies to a file and run again with --cookie-file.")
		return
	}
	fmt.Fprintln(w, "Error:", err)
}
