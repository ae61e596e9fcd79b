// Package transport exposes the runes query API over HTTP.
package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/goodnatureofminers/blockinsight7000-runes/internal/runes/model"
	"github.com/gorilla/mux"
	graphql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"go.uber.org/zap"
)

// Handler serves read-only runes data for one network.
type Handler struct {
	reader  Reader
	network model.Network
	version string
	schema  *graphql.Schema
	logger  *zap.Logger
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type operationsResponse struct {
	Transactions []model.TokenOperation `json:"transactions"`
	Pagination   pagination             `json:"pagination"`
}

// NewHandler returns a Handler instance.
func NewHandler(reader Reader, network model.Network, version string, logger *zap.Logger) (*Handler, error) {
	if reader == nil {
		return nil, errors.New("reader is required")
	}
	if network == "" {
		return nil, errors.New("network is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("network", string(network)))

	schema, err := newGraphQLSchema(&queryResolver{
		reader:  reader,
		network: network,
		logger:  logger.Named("graphql"),
	})
	if err != nil {
		return nil, fmt.Errorf("parse graphql schema: %w", err)
	}

	return &Handler{
		reader:  reader,
		network: network,
		version: version,
		schema:  schema,
		logger:  logger.Named("rest"),
	}, nil
}

// Router registers all routes on a new router.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", h.HandleHealth).Methods(http.MethodGet)
	r.HandleFunc("/blocks/{height}", h.HandleBlockByHeight).Methods(http.MethodGet)
	r.HandleFunc("/transactions/{txid}", h.HandleTransaction).Methods(http.MethodGet)
	r.HandleFunc("/runes/transactions", h.HandleTokenOperations).Methods(http.MethodGet)
	r.HandleFunc("/stats", h.HandleStats).Methods(http.MethodGet)
	r.Handle("/graphql", &relay.Handler{Schema: h.schema}).Methods(http.MethodPost)

	return r
}

// HandleHealth reports liveness and the build version.
func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: h.version})
}

// HandleBlockByHeight returns a single block; 404 when the height is not stored.
func (h *Handler) HandleBlockByHeight(w http.ResponseWriter, r *http.Request) {
	height, err := strconv.ParseUint(mux.Vars(r)["height"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid height")
		return
	}

	block, ok, err := h.reader.BlockByHeight(r.Context(), h.network, height)
	if err != nil {
		h.logger.Error("query block", zap.Uint64("height", height), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "query failed")
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "block not found")
		return
	}

	writeJSON(w, http.StatusOK, block)
}

// HandleTransaction returns a single transaction by txid.
func (h *Handler) HandleTransaction(w http.ResponseWriter, r *http.Request) {
	txid := mux.Vars(r)["txid"]
	if txid == "" {
		writeError(w, http.StatusBadRequest, "missing txid")
		return
	}

	tx, ok, err := h.reader.TransactionByID(r.Context(), h.network, txid)
	if err != nil {
		h.logger.Error("query transaction", zap.String("txid", txid), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "query failed")
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "transaction not found")
		return
	}

	writeJSON(w, http.StatusOK, tx)
}

// HandleTokenOperations returns runes operations newest first, paged by limit and offset.
func (h *Handler) HandleTokenOperations(w http.ResponseWriter, r *http.Request) {
	page, err := parsePageSpec(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ops, err := h.reader.TokenOperations(r.Context(), h.network, page.Limit, page.Offset)
	if err != nil {
		h.logger.Error("query token operations", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "query failed")
		return
	}
	if ops == nil {
		ops = []model.TokenOperation{}
	}

	writeJSON(w, http.StatusOK, operationsResponse{
		Transactions: ops,
		Pagination:   pagination{pageSpec: page, Count: len(ops)},
	})
}

// HandleStats returns indexing progress.
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.reader.Stats(r.Context(), h.network)
	if err != nil {
		h.logger.Error("query stats", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "query failed")
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func writeJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}
