package transactions

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"connectrpc.com/connect"
	"github.com/rs/zerolog/log"

	leagueapi "github.com/mcdev12/lhsffl/go/clients/league_api_client"
	"github.com/mcdev12/lhsffl/go/internal/models"
	"github.com/mcdev12/lhsffl/go/internal/tradetree"
	"github.com/mcdev12/lhsffl/go/internal/viewstate"
)

const (
	// TradeTreeServiceName is the fully-qualified name of the trade tree service
	TradeTreeServiceName = "lhsffl.transactions.v1.TradeTreeService"

	// GetTradeTreeProcedure is the connect procedure for GetTradeTree
	GetTradeTreeProcedure = "/" + TradeTreeServiceName + "/GetTradeTree"

	// GetTradeTreesProcedure is the connect procedure for GetTradeTrees
	GetTradeTreesProcedure = "/" + TradeTreeServiceName + "/GetTradeTrees"
)

// TradeTreeApp defines what the service layer needs from the trade tree application
type TradeTreeApp interface {
	GetTradeTree(ctx context.Context, transactionID int) (*tradetree.TradeTree, error)
	GetTradeTrees(ctx context.Context, transactionIDs []int) ([]tradetree.TradeTree, error)
	LoadTradeTreeView(ctx context.Context, transactionID int) viewstate.State[tradetree.TradeTree]
	GetTeamTradeCards(ctx context.Context, teamID int, focus models.RosterID) ([]TradeCard, error)
}

type GetTradeTreeRequest struct {
	TransactionID int `json:"transaction_id"`
}

type GetTradeTreeResponse struct {
	Tree tradetree.TradeTree `json:"tree"`
}

type GetTradeTreesRequest struct {
	TransactionIDs []int `json:"transaction_ids"`
}

type GetTradeTreesResponse struct {
	Trees []tradetree.TradeTree `json:"trees"`
}

// Service exposes the trade tree over connect and plain REST
type Service struct {
	app TradeTreeApp
}

// NewService creates a new trade tree service
func NewService(app TradeTreeApp) *Service {
	return &Service{
		app: app,
	}
}

// GetTradeTree returns the derived tree for one origin transaction
func (s *Service) GetTradeTree(ctx context.Context, req *connect.Request[GetTradeTreeRequest]) (*connect.Response[GetTradeTreeResponse], error) {
	tree, err := s.app.GetTradeTree(ctx, req.Msg.TransactionID)
	if err != nil {
		return nil, connect.NewError(connectCode(err), err)
	}

	return connect.NewResponse(&GetTradeTreeResponse{
		Tree: *tree,
	}), nil
}

// GetTradeTrees returns the derived trees for several origin transactions
func (s *Service) GetTradeTrees(ctx context.Context, req *connect.Request[GetTradeTreesRequest]) (*connect.Response[GetTradeTreesResponse], error) {
	if len(req.Msg.TransactionIDs) == 0 {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("transaction_ids is required"))
	}

	trees, err := s.app.GetTradeTrees(ctx, req.Msg.TransactionIDs)
	if err != nil {
		return nil, connect.NewError(connectCode(err), err)
	}

	return connect.NewResponse(&GetTradeTreesResponse{
		Trees: trees,
	}), nil
}

// Handler returns the connect handler for the service and the path to mount it on
func (s *Service) Handler(opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(JSONCodec{})}, opts...)

	mux := http.NewServeMux()
	mux.Handle(GetTradeTreeProcedure, connect.NewUnaryHandler(GetTradeTreeProcedure, s.GetTradeTree, opts...))
	mux.Handle(GetTradeTreesProcedure, connect.NewUnaryHandler(GetTradeTreesProcedure, s.GetTradeTrees, opts...))
	return "/" + TradeTreeServiceName + "/", mux
}

// RegisterREST mounts the JSON endpoints used by the web client
func (s *Service) RegisterREST(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/transactions/{id}/trade-tree", s.handleTradeTree)
	mux.HandleFunc("GET /api/teams/{id}/trades", s.handleTeamTrades)
}

func (s *Service) handleTradeTree(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, viewstate.Failed[tradetree.TradeTree](ErrInvalidTransactionID))
		return
	}

	state := s.app.LoadTradeTreeView(r.Context(), id)
	status := http.StatusOK
	if state.Status() == viewstate.StatusError {
		status = httpStatus(state.Err())
	}
	writeJSON(w, status, state)
}

func (s *Service) handleTeamTrades(w http.ResponseWriter, r *http.Request) {
	teamID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, viewstate.Failed[[]TradeCard](ErrInvalidTeamID))
		return
	}

	var focus models.RosterID
	if raw := r.URL.Query().Get("focus"); raw != "" {
		focus, err = models.ParseRosterID(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, viewstate.Failed[[]TradeCard](err))
			return
		}
	}

	cards, err := s.app.GetTeamTradeCards(r.Context(), teamID, focus)
	if err != nil {
		writeJSON(w, httpStatus(err), viewstate.Failed[[]TradeCard](err))
		return
	}
	writeJSON(w, http.StatusOK, viewstate.Ready(cards))
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("Failed to write response")
	}
}

func isInvalid(err error) bool {
	return errors.Is(err, ErrInvalidTransactionID) || errors.Is(err, ErrInvalidTeamID)
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUnsuccessful) ||
		errors.Is(err, leagueapi.ErrUnsuccessful)
}

func connectCode(err error) connect.Code {
	switch {
	case isInvalid(err):
		return connect.CodeInvalidArgument
	case isNotFound(err):
		return connect.CodeNotFound
	case errors.Is(err, context.Canceled):
		return connect.CodeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return connect.CodeDeadlineExceeded
	default:
		return connect.CodeUnavailable
	}
}

func httpStatus(err error) int {
	switch {
	case isInvalid(err):
		return http.StatusBadRequest
	case isNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}
