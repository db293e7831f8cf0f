package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/css-ra/tnrange-cli/internal/report"
)

var servePort int

// requestParam is one entry of the generic CLI request envelope.
type requestParam struct {
	Type  string   `json:"type"`
	Name  string   `json:"name"`
	Value []string `json:"value"`
}

type teleNumbersRequest struct {
	Params  []requestParam    `json:"params"`
	Devices []json.RawMessage `json:"devices"`
}

type attachment struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type teleNumbersResponse struct {
	Message     string       `json:"message"`
	UserMessage string       `json:"userMessage"`
	Filename    string       `json:"filename"`
	Data        []attachment `json:"data"`
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the TN range report server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		exec, err := initExecutor(ctx)
		if err != nil {
			return err
		}
		defer exec.Close()

		builder := report.NewBuilder(exec, builderOptions())
		mux := newServeMux(builder, reportLayout(), cfg.Report.Timeout())

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: mux,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func newServeMux(builder *report.Builder, layout report.Layout, timeout time.Duration) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	mux.HandleFunc("POST /api/telenumbers", func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.NewString()
		log := zap.L().With(zap.String("request_id", reqID))

		var req teleNumbersRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}

		var dialPlanIDs, customerNames []string
		for _, param := range req.Params {
			if param.Type != "json" {
				continue
			}
			switch param.Name {
			case "dialplanId":
				dialPlanIDs = param.Value
			case "customerName":
				customerNames = param.Value
			}
		}
		if len(dialPlanIDs) == 0 && len(customerNames) == 0 {
			http.Error(w, `{"error":"dialplanId or customerName is required"}`, http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		refs, err := builder.ResolveDialPlans(ctx, dialPlanIDs, customerNames)
		if err != nil {
			log.Error("dial plan resolution failed", zap.Error(err))
			http.Error(w, `{"error":"dial plan resolution failed"}`, http.StatusBadGateway)
			return
		}
		ids := make([]string, 0, len(refs))
		for _, ref := range refs {
			ids = append(ids, ref.DialPlanID)
		}

		rep, err := builder.Build(ctx, ids)
		if err != nil {
			log.Error("report build failed", zap.Error(err))
			http.Error(w, `{"error":"report build failed"}`, http.StatusBadGateway)
			return
		}
		encoded, err := report.Encode(rep, layout)
		if err != nil {
			log.Error("report encode failed", zap.Error(err))
			http.Error(w, `{"error":"report encode failed"}`, http.StatusBadGateway)
			return
		}

		log.Info("report complete",
			zap.Strings("dial_plan_ids", ids),
			zap.Int("tn_ranges", len(rep.TNRanges)),
			zap.Int("cnam", len(rep.CNAM)),
			zap.Int("toll_free", len(rep.TollFree)))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(teleNumbersResponse{
			Message:     "BVoIP Tele Number data completed",
			UserMessage: "BVoIP Tele Number Ranges report load completed",
			Filename:    report.Filename(time.Now()),
			Data: []attachment{
				{Type: "application/vnd.ms-excel", Value: encoded},
			},
		})
	})

	return mux
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
