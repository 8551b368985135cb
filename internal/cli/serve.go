package cli

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/Alrudin/fromto/pkg/errors"
	"github.com/Alrudin/fromto/pkg/mermaid"
)

// defaultAddr is the listen address used when --addr is not given.
const defaultAddr = ":8177"

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr      string
	threshold int
	labels    string
}

// serveCommand creates the serve command for viewing the diagram in a
// browser.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: defaultAddr, threshold: mermaid.DefaultCollapseThreshold}

	cmd := &cobra.Command{
		Use:   "serve [input]",
		Short: "Serve the rendered flowchart over HTTP",
		Long: `Serve the rendered flowchart over HTTP.

The input file is re-read on every request, so edits show up on refresh.

Routes:
  GET /          HTML page rendering the diagram with mermaid.js
  GET /diagram   Raw Mermaid source as text/plain

Example:
  fromto serve flows.csv --addr :8177`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), inputPath(args), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().IntVar(&opts.threshold, "threshold", opts.threshold, "collapse host groups larger than this into one node")
	cmd.Flags().StringVar(&opts.labels, "labels", "", "TOML file with function label overrides")

	return cmd
}

// pageTemplate renders the diagram with mermaid.js so the browser shows the
// chart instead of its source.
var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>fromto</title>
</head>
<body>
  <pre class="mermaid">
{{.}}
  </pre>
  <script type="module">
    import mermaid from "https://cdn.jsdelivr.net/npm/mermaid@11/dist/mermaid.esm.min.mjs";
    mermaid.initialize({ startOnLoad: true });
  </script>
</body>
</html>
`))

// runServe starts the HTTP server and blocks until ctx is cancelled or the
// listener fails.
func (c *CLI) runServe(ctx context.Context, input string, opts *serveOpts) error {
	bopts, err := c.buildOptions(opts.labels, opts.threshold)
	if err != nil {
		return err
	}

	// Fail fast on unreadable or empty input; later edits are picked up per
	// request.
	if _, err := c.buildFromFile(input, bopts); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           c.router(input, bopts),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	c.Logger.Infof("Serving %s on %s", input, opts.addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "shutdown server")
		}
		return ctx.Err()
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return errors.Wrap(errors.ErrCodeInternal, err, "serve on %s", opts.addr)
		}
		return nil
	}
}

// router builds the chi router serving the diagram routes.
func (c *CLI) router(input string, bopts mermaid.Options) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(c.requestLogger)

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		res, err := c.buildFromFile(input, bopts)
		if err != nil {
			http.Error(w, errors.UserMessage(err), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := pageTemplate.Execute(w, res.Text); err != nil {
			c.Logger.Warnf("render page: %v", err)
		}
	})

	r.Get("/diagram", func(w http.ResponseWriter, req *http.Request) {
		res, err := c.buildFromFile(input, bopts)
		if err != nil {
			http.Error(w, errors.UserMessage(err), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintln(w, res.Text)
	})

	return r
}

// requestLogger logs each request through the CLI logger at debug level.
func (c *CLI) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, req)
		c.Logger.Debugf("%s %s (%s)", req.Method, req.URL.Path, time.Since(start).Round(time.Millisecond))
	})
}

// buildFromFile reads flows from input and builds the diagram in one shot.
func (c *CLI) buildFromFile(input string, opts mermaid.Options) (mermaid.Result, error) {
	flows, err := c.loadFlows(input)
	if err != nil {
		return mermaid.Result{}, err
	}
	return mermaid.Build(flows, opts)
}
