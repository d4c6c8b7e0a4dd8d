package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/finexa/finexa-server/internal/handlers/v1/account"
	"github.com/finexa/finexa-server/internal/handlers/v1/budget"
	"github.com/finexa/finexa-server/internal/handlers/v1/receipt"
	"github.com/finexa/finexa-server/internal/handlers/v1/status"
	"github.com/finexa/finexa-server/internal/handlers/v1/transaction"
	"github.com/finexa/finexa-server/internal/handlers/v1/user"
	"github.com/finexa/finexa-server/internal/insights"
	"github.com/finexa/finexa-server/internal/logging"
	"github.com/finexa/finexa-server/internal/operator"
	"github.com/finexa/finexa-server/internal/service"
)

type Rest struct {
	Logger   *logrus.Logger
	Port     string
	Operator *operator.OperatorDelegator
	Service  *service.Service
	Scanner  *insights.Client

	server *http.Server
}

func (r *Rest) Serve() {
	mux := http.NewServeMux()

	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, newStatusHandler()))

	apiMux := http.NewServeMux()
	humaAPI := humago.New(apiMux, huma.DefaultConfig("Finexa API", "1.0.0"))

	account.NewCreateAccountHandler(r.Operator).Register(humaAPI)
	account.NewListAccountsHandler(r.Service.Account).Register(humaAPI)
	account.NewGetAccountHandler(r.Service.Account).Register(humaAPI)
	account.NewSetDefaultAccountHandler(r.Operator).Register(humaAPI)

	transaction.NewCreateTransactionHandler(r.Operator).Register(humaAPI)
	transaction.NewUpdateTransactionHandler(r.Operator).Register(humaAPI)
	transaction.NewDeleteTransactionsHandler(r.Operator).Register(humaAPI)
	transaction.NewGetTransactionHandler(r.Service.Transaction).Register(humaAPI)
	transaction.NewListTransactionsHandler(r.Service.Transaction).Register(humaAPI)

	budget.NewGetBudgetHandler(r.Service.Budget).Register(humaAPI)
	budget.NewUpsertBudgetHandler(r.Operator).Register(humaAPI)

	user.NewSyncUserHandler(r.Operator).Register(humaAPI)

	if r.Scanner != nil {
		receipt.NewScanReceiptHandler(r.Scanner).Register(humaAPI)
	}

	// Everything except /status flows through the request logger so
	// handlers can record timings and counts on the request's LogData.
	mux.Handle("/", logging.RequestLogger(r.Logger, apiMux))

	r.server = &http.Server{
		Addr:              ":" + r.Port,
		Handler:           mux,
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	r.Logger.Info("HttpServer.Serve.listening")
	err := r.server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
	}
	r.Logger.Info("HttpServer.Serve.shutting down")
}

// Shutdown drains in-flight requests and stops the listener.
func (r *Rest) Shutdown(ctx context.Context) error {
	if r.server == nil {
		return nil
	}
	return r.server.Shutdown(ctx)
}

func newStatusHandler() func(http.ResponseWriter, *http.Request, *logging.LogData) error {
	statusHandler := status.NewHandler()
	return statusHandler.Handler
}
