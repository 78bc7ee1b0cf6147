package webserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dialectlab/retain/internal/reporting"
	"github.com/dialectlab/retain/internal/resultstore"
	"github.com/dialectlab/retain/internal/webapi"
)

// registerRoutes sets up API, report, and index routes on the given mux.
func registerRoutes(mux *http.ServeMux, store *resultstore.Store) {
	webapi.RegisterRoutes(mux, webapi.NewResultStore(store))

	mux.HandleFunc("GET /report/{id}", handleReport(store))
	mux.HandleFunc("GET /{$}", handleIndex(store))
}

// handleReport renders a stored run as a standalone HTML report.
func handleReport(store *resultstore.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		run, err := store.Get(id)
		if err != nil {
			if errors.Is(err, resultstore.ErrRunNotFound) {
				http.Error(w, "run not found", http.StatusNotFound)
			} else {
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
			return
		}

		page, err := reporting.HTML(run)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(page) //nolint:errcheck
	}
}

// handleIndex lists stored runs with links to their reports.
func handleIndex(store *resultstore.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		runs, err := store.List()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, indexHeader)
		if len(runs) == 0 {
			fmt.Fprint(w, "<p>No runs recorded yet. Start one with <code>retain run</code>.</p>\n")
		} else {
			fmt.Fprint(w, "<table><tr><th>Run</th><th>Timestamp</th><th>Tests</th><th>Avg Retention</th></tr>\n")
			for _, run := range runs {
				fmt.Fprintf(w, "<tr><td><a href=\"/report/%s\">%s</a></td><td>%s</td><td>%d</td><td>%.1f%%</td></tr>\n",
					run.RunID, run.RunID,
					run.Timestamp.Format("2006-01-02 15:04"),
					run.Summary.TotalTests,
					run.Summary.AverageRetentionRate*100)
			}
			fmt.Fprint(w, "</table>\n")
		}
		fmt.Fprint(w, indexFooter)
	}
}

const indexHeader = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>retain runs</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 50rem; margin: 2rem auto; padding: 0 1rem; }
table { border-collapse: collapse; }
th, td { border: 1px solid #cbd5e1; padding: 0.4rem 0.8rem; text-align: left; }
</style>
</head>
<body>
<h1>Retention Benchmark Runs</h1>
`

const indexFooter = `</body>
</html>
`
