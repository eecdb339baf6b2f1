package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/emicklei/go-restful/v3"
	"github.com/rs/zerolog/log"

	"github.com/kopischke/mdsearch/internal/attr"
	"github.com/kopischke/mdsearch/internal/engine"
	"github.com/kopischke/mdsearch/internal/query"
)

// Finder runs metadata searches; satisfied by *query.Executor.
type Finder interface {
	Find(ctx context.Context, req query.Request) ([]map[string]any, error)
}

// Pinger checks engine reachability; satisfied by *engine.Postgres.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	finder Finder
	pinger Pinger
}

func NewHandler(finder Finder, pinger Pinger) *Handler {
	return &Handler{
		finder: finder,
		pinger: pinger,
	}
}

// Find handles POST /query/v1/find
func (h *Handler) Find(req *restful.Request, resp *restful.Response) {
	var findReq FindRequest
	if err := req.ReadEntity(&findReq); err != nil {
		writeError(resp, http.StatusBadRequest, err)
		return
	}

	if findReq.Predicate == "" {
		writeError(resp, http.StatusBadRequest, errors.New("predicate is required"))
		return
	}

	scopes := make([]engine.Scope, 0, len(findReq.Scopes))
	for _, s := range findReq.Scopes {
		scope := engine.Scope(s)
		if !engine.KnownScope(scope) {
			writeError(resp, http.StatusBadRequest, fmt.Errorf("unknown scope %q", s))
			return
		}
		scopes = append(scopes, scope)
	}

	ctx := req.Request.Context()

	items, err := h.finder.Find(ctx, query.Request{
		Predicate:      findReq.Predicate,
		Scopes:         scopes,
		Attributes:     findReq.Attributes,
		SortAttributes: findReq.SortAttributes,
		MaxResults:     findReq.MaxResults,
	})
	if err != nil {
		if errors.Is(err, query.ErrBadQuery) {
			writeError(resp, http.StatusBadRequest, err)
			return
		}
		log.Error().Err(err).Str("predicate", findReq.Predicate).Msg("Find failed")
		writeError(resp, http.StatusInternalServerError, err)
		return
	}

	response := FindResponse{
		Predicate: findReq.Predicate,
		Items:     items,
		Count:     len(items),
	}

	resp.WriteEntity(response)
}

// Attributes handles GET /query/v1/attributes
func (h *Handler) Attributes(req *restful.Request, resp *restful.Response) {
	keys := attr.Keys()
	infos := make([]AttributeInfo, 0, len(keys))
	for _, key := range keys {
		kind, _ := attr.KindOf(key)
		infos = append(infos, AttributeInfo{Key: key, Kind: string(kind)})
	}

	resp.WriteEntity(AttributesResponse{Attributes: infos})
}

// Health handles GET /query/v1/health
func (h *Handler) Health(req *restful.Request, resp *restful.Response) {
	if err := h.pinger.Ping(req.Request.Context()); err != nil {
		log.Error().Err(err).Msg("Health check failed")
		resp.WriteHeaderAndEntity(http.StatusServiceUnavailable, HealthResponse{Status: "degraded"})
		return
	}
	resp.WriteEntity(HealthResponse{Status: "ok"})
}

func writeError(resp *restful.Response, status int, err error) {
	resp.WriteHeaderAndEntity(status, ErrorResponse{Error: err.Error()})
}
