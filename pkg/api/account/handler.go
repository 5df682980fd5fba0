// Package account serves GET /api/account/{name}.
package account

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"fava_bridge/pkg/api/respond"
	"fava_bridge/pkg/core/scrape"
	"fava_bridge/pkg/core/upstream"
)

const routePrefix = "/api/account/"

// Handler holds dependencies for the account ledger endpoint.
type Handler struct {
	Upstream  *upstream.Client
	Selectors scrape.Selectors
	Currency  string
	Log       zerolog.Logger
}

// NewHandler creates an account handler.
func NewHandler(client *upstream.Client, sel scrape.Selectors, currency string, log zerolog.Logger) *Handler {
	return &Handler{Upstream: client, Selectors: sel, Currency: currency, Log: log}
}

// Handle fetches an account journal page and returns its normalized
// transactions. negate= flips the sign of every amount; absent or empty
// means false.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	name := strings.Trim(strings.TrimPrefix(r.URL.Path, routePrefix), "/")
	if name == "" {
		respond.Fail(w, "account name is required")
		return
	}

	negate := false
	if raw := r.URL.Query().Get("negate"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			respond.Fail(w, fmt.Sprintf("negate must be a boolean, got %q", raw))
			return
		}
		negate = v
	}

	page, err := h.Upstream.FetchAccountPage(r.Context(), name)
	if err != nil {
		h.Log.Error().Err(err).Str("account", name).Msg("account fetch failed")
		respond.Fail(w, err.Error())
		return
	}

	txs, err := scrape.ExtractLedger(page, h.Selectors, h.Currency, negate)
	if err != nil {
		h.Log.Error().Err(err).Str("account", name).Msg("ledger extraction failed")
		respond.Fail(w, err.Error())
		return
	}
	respond.OK(w, txs)
}
