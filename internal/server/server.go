package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	authdomain "github.com/smallbiznis/saletrack/internal/auth/domain"
	catalogdomain "github.com/smallbiznis/saletrack/internal/catalog/domain"
	"github.com/smallbiznis/saletrack/internal/config"
	customerdomain "github.com/smallbiznis/saletrack/internal/customer/domain"
	invoicedomain "github.com/smallbiznis/saletrack/internal/invoice/domain"
	"github.com/smallbiznis/saletrack/internal/observability"
	obslogger "github.com/smallbiznis/saletrack/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/saletrack/internal/observability/metrics"
	obstracing "github.com/smallbiznis/saletrack/internal/observability/tracing"
	productdomain "github.com/smallbiznis/saletrack/internal/product/domain"
	"github.com/smallbiznis/saletrack/internal/ratelimit"
	reportdomain "github.com/smallbiznis/saletrack/internal/report/domain"
	transactiondomain "github.com/smallbiznis/saletrack/internal/transaction/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics, gatherer prometheus.Gatherer) *gin.Engine {
	if !obsCfg.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(obslogger.MiddlewareConfig{
		Logger:          log.Named("http"),
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	return r
}

func run(lc fx.Lifecycle, cfg config.Config, log *zap.Logger, s *Server) {
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           s.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("http server stopped", zap.Error(err))
				}
			}()
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine      *gin.Engine
	cfg         config.Config
	authsvc     authdomain.Service
	productSvc  productdomain.Service
	customerSvc customerdomain.Service
	txSvc       transactiondomain.Service
	invoiceSvc  invoicedomain.Service
	catalogSvc  catalogdomain.Service
	reportSvc   reportdomain.Service

	loginLimiter *ratelimit.LoginLimiter
}

type ServerParams struct {
	fx.In

	Gin         *gin.Engine
	Cfg         config.Config
	Authsvc     authdomain.Service
	ProductSvc  productdomain.Service
	CustomerSvc customerdomain.Service
	TxSvc       transactiondomain.Service
	InvoiceSvc  invoicedomain.Service
	CatalogSvc  catalogdomain.Service
	ReportSvc   reportdomain.Service

	LoginLimiter *ratelimit.LoginLimiter `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:      p.Gin,
		cfg:         p.Cfg,
		authsvc:     p.Authsvc,
		productSvc:  p.ProductSvc,
		customerSvc: p.CustomerSvc,
		txSvc:       p.TxSvc,
		invoiceSvc:  p.InvoiceSvc,
		catalogSvc:  p.CatalogSvc,
		reportSvc:   p.ReportSvc,

		loginLimiter: p.LoginLimiter,
	}

	svc.registerAuthRoutes()
	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAuthRoutes() {
	auth := s.engine.Group("/auth")

	auth.POST("/register", s.Register)
	auth.POST("/login", s.Login)
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")
	if s.cfg.AuthEnabled {
		api.Use(s.AuthRequired())
	}

	// -------- Products --------
	api.GET("/products", s.ListProducts)
	api.POST("/products", s.CreateProduct)
	api.GET("/products/:id", s.GetProductByID)
	api.PUT("/products/:id", s.UpdateProduct)
	api.POST("/products/import/analyze", s.AnalyzeImport)
	api.POST("/products/import", s.ImportProducts)
	api.GET("/products/export", s.ExportProducts)

	// -------- Customers --------
	api.GET("/customers", s.ListCustomers)
	api.POST("/customers", s.CreateCustomer)
	api.GET("/customers/:id", s.GetCustomerByID)

	// -------- Sales --------
	api.GET("/sales", s.ListSales)
	api.POST("/sales", s.RecordSale)
	api.POST("/sales/checkout", s.Checkout)
	api.GET("/sales/:id/pdf", s.SalePDF)

	// -------- Purchases --------
	api.GET("/purchases", s.ListPurchases)
	api.POST("/purchases", s.RecordPurchase)

	// -------- Bills --------
	api.GET("/bills", s.ListBills)
	api.GET("/bills/:number", s.GetBill)
	api.GET("/bills/:number/html", s.BillHTML)
	api.GET("/bills/:number/pdf", s.BillPDF)
	api.POST("/bills/:number/send", s.SendBill)

	// -------- Reports --------
	api.GET("/reports/dashboard", s.Dashboard)
	api.GET("/reports/csv", s.ReportCSV)
}
