// Package query serves GET /api/query_result.
package query

import (
	"net/http"

	"github.com/rs/zerolog"

	"fava_bridge/pkg/api/respond"
	"fava_bridge/pkg/core/scrape"
	"fava_bridge/pkg/core/upstream"
)

// fallbackError substitutes for an upstream failure that carries no
// message of its own.
const fallbackError = "Something went wrong"

// Handler holds dependencies for the query endpoint.
type Handler struct {
	Upstream *upstream.Client
	Log      zerolog.Logger
}

// NewHandler creates a query handler.
func NewHandler(client *upstream.Client, log zerolog.Logger) *Handler {
	return &Handler{Upstream: client, Log: log}
}

// Params are the accepted query parameters. Account, Filter and Time are
// accepted for client compatibility but not forwarded; an empty value
// means unset.
type Params struct {
	QueryString string
	Account     string
	Filter      string
	Time        string
}

func paramsFromRequest(r *http.Request) Params {
	q := r.URL.Query()
	return Params{
		QueryString: q.Get("query_string"),
		Account:     q.Get("account"),
		Filter:      q.Get("filter"),
		Time:        q.Get("time"),
	}
}

// Handle fetches the query result from the upstream, scrapes its table
// into records and wraps the outcome in the response envelope.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	params := paramsFromRequest(r)
	if params.QueryString == "" {
		respond.Fail(w, "query_string is required")
		return
	}

	env, err := h.Upstream.FetchQueryTable(r.Context(), params.QueryString)
	if err != nil {
		h.Log.Error().Err(err).Str("query", params.QueryString).Msg("query fetch failed")
		respond.Fail(w, err.Error())
		return
	}

	if !env.Success {
		msg := fallbackError
		if env.Error != nil {
			msg = *env.Error
		}
		respond.Fail(w, msg)
		return
	}

	// Fava omits data entirely when the query matches no rows.
	if env.Data == nil {
		respond.OK(w, []scrape.Record{})
		return
	}

	records, err := scrape.ExtractTable(env.Data.Table)
	if err != nil {
		h.Log.Error().Err(err).Msg("table extraction failed")
		respond.Fail(w, err.Error())
		return
	}
	respond.OK(w, records)
}
