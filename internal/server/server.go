package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/utilitech/utilicore/internal/account"
	accountdomain "github.com/utilitech/utilicore/internal/account/domain"
	"github.com/utilitech/utilicore/internal/auth"
	authdomain "github.com/utilitech/utilicore/internal/auth/domain"
	"github.com/utilitech/utilicore/internal/authorization"
	"github.com/utilitech/utilicore/internal/billing"
	billingdomain "github.com/utilitech/utilicore/internal/billing/domain"
	"github.com/utilitech/utilicore/internal/config"
	"github.com/utilitech/utilicore/internal/invoice"
	invoicedomain "github.com/utilitech/utilicore/internal/invoice/domain"
	"github.com/utilitech/utilicore/internal/observability"
	obsmiddleware "github.com/utilitech/utilicore/internal/observability/logger"
	obsmetrics "github.com/utilitech/utilicore/internal/observability/metrics"
	obstracing "github.com/utilitech/utilicore/internal/observability/tracing"
	"github.com/utilitech/utilicore/internal/payment"
	paymentdomain "github.com/utilitech/utilicore/internal/payment/domain"
	"github.com/utilitech/utilicore/internal/plan"
	plandomain "github.com/utilitech/utilicore/internal/plan/domain"
	"github.com/utilitech/utilicore/internal/profile"
	profiledomain "github.com/utilitech/utilicore/internal/profile/domain"
	"github.com/utilitech/utilicore/internal/reporting"
	reportingdomain "github.com/utilitech/utilicore/internal/reporting/domain"
	serviceunit "github.com/utilitech/utilicore/internal/service"
	servicedomain "github.com/utilitech/utilicore/internal/service/domain"
	"github.com/utilitech/utilicore/internal/subscription"
	subscriptiondomain "github.com/utilitech/utilicore/internal/subscription/domain"
	"github.com/utilitech/utilicore/internal/sysconfig"
	sysconfigdomain "github.com/utilitech/utilicore/internal/sysconfig/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	authorization.Module,
	auth.Module,
	profile.Module,
	account.Module,
	plan.Module,
	serviceunit.Module,
	subscription.Module,
	invoice.Module,
	billing.Module,
	payment.Module,
	reporting.Module,
	sysconfig.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{Debug: obsCfg.Debug()}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
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
	engine          *gin.Engine
	cfg             config.Config
	db              *gorm.DB
	genID           *snowflake.Node
	authsvc         authdomain.Service
	authzsvc        authorization.Service
	profileSvc      profiledomain.Service
	accountSvc      accountdomain.Service
	planSvc         plandomain.Service
	serviceSvc      servicedomain.Manager
	subscriptionSvc subscriptiondomain.Service
	invoiceSvc      invoicedomain.Service
	billingSvc      billingdomain.Service
	paymentSvc      paymentdomain.Service
	reportingSvc    reportingdomain.Service
	sysconfigSvc    sysconfigdomain.Service
}

type ServerParams struct {
	fx.In

	Gin             *gin.Engine
	Cfg             config.Config
	DB              *gorm.DB
	GenID           *snowflake.Node
	Authsvc         authdomain.Service
	AuthzSvc        authorization.Service
	ProfileSvc      profiledomain.Service
	AccountSvc      accountdomain.Service
	PlanSvc         plandomain.Service
	ServiceSvc      servicedomain.Manager
	SubscriptionSvc subscriptiondomain.Service
	InvoiceSvc      invoicedomain.Service
	BillingSvc      billingdomain.Service
	PaymentSvc      paymentdomain.Service
	ReportingSvc    reportingdomain.Service
	SysconfigSvc    sysconfigdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		db:              p.DB,
		genID:           p.GenID,
		authsvc:         p.Authsvc,
		authzsvc:        p.AuthzSvc,
		profileSvc:      p.ProfileSvc,
		accountSvc:      p.AccountSvc,
		planSvc:         p.PlanSvc,
		serviceSvc:      p.ServiceSvc,
		subscriptionSvc: p.SubscriptionSvc,
		invoiceSvc:      p.InvoiceSvc,
		billingSvc:      p.BillingSvc,
		paymentSvc:      p.PaymentSvc,
		reportingSvc:    p.ReportingSvc,
		sysconfigSvc:    p.SysconfigSvc,
	}

	svc.registerAuthRoutes()
	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAuthRoutes() {
	authGroup := s.engine.Group("/auth")

	authGroup.POST("/register", s.Register)
	authGroup.POST("/login", s.Login)
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/", s.AuthRequired())

	// -------- Users --------
	api.GET("/users", s.Authorized(authorization.ObjectUser, authorization.ActionManage), s.ListUsers)
	api.GET("/users/me", s.Me)
	api.GET("/users/me/profile-info", s.MyProfileInfo)
	// Profile details are open to any authenticated caller; only the user
	// listing itself is restricted.
	api.GET("/users/:id/profile-details", s.UserProfileDetails)

	// -------- Profiles --------
	api.GET("/profiles", s.Authorized(authorization.ObjectProfile, authorization.ActionView), s.ListProfiles)
	api.POST("/profiles", s.Authorized(authorization.ObjectProfile, authorization.ActionCreate), s.CreateProfile)
	api.GET("/profiles/:id", s.Authorized(authorization.ObjectProfile, authorization.ActionView), s.GetProfileByID)
	api.PUT("/profiles/:id", s.Authorized(authorization.ObjectProfile, authorization.ActionUpdate), s.UpdateProfile)

	// -------- Accounts --------
	api.GET("/accounts", s.Authorized(authorization.ObjectAccount, authorization.ActionView), s.ListAccounts)
	api.POST("/accounts", s.Authorized(authorization.ObjectAccount, authorization.ActionCreate), s.CreateAccount)
	api.GET("/accounts/:id", s.Authorized(authorization.ObjectAccount, authorization.ActionView), s.GetAccountByID)

	// -------- Plans --------
	api.GET("/plans", s.Authorized(authorization.ObjectPlan, authorization.ActionView), s.ListPlans)
	api.POST("/plans", s.Authorized(authorization.ObjectPlan, authorization.ActionCreate), s.CreatePlan)
	api.GET("/plans/:id", s.Authorized(authorization.ObjectPlan, authorization.ActionView), s.GetPlanByID)
	api.PUT("/plans/:id", s.Authorized(authorization.ObjectPlan, authorization.ActionUpdate), s.UpdatePlan)

	// -------- Services --------
	api.GET("/services", s.Authorized(authorization.ObjectService, authorization.ActionView), s.ListServices)
	api.POST("/services", s.Authorized(authorization.ObjectService, authorization.ActionCreate), s.CreateService)
	api.GET("/services/:id", s.Authorized(authorization.ObjectService, authorization.ActionView), s.GetServiceByID)
	api.PUT("/services/:id", s.Authorized(authorization.ObjectService, authorization.ActionUpdate), s.UpdateService)

	// -------- Subscriptions --------
	api.GET("/subscriptions/self", s.Authorized(authorization.ObjectSubscription, authorization.ActionView), s.ListSelfSubscriptions)
	api.GET("/subscriptions/users", s.Authorized(authorization.ObjectSubscription, authorization.ActionView), s.ListUserSubscriptions)
	api.GET("/subscriptions/:id/details", s.Authorized(authorization.ObjectSubscription, authorization.ActionView), s.SubscriptionDetails)
	api.POST("/subscriptions/:id/deactivate", s.Authorized(authorization.ObjectSubscription, authorization.ActionManage), s.DeactivateSubscription)
	api.POST("/subscriptions/change-plan", s.Authorized(authorization.ObjectSubscription, authorization.ActionManage), s.ChangeSubscriptionPlan)
	api.GET("/subscriptions/available-plans/:current_plan_id", s.Authorized(authorization.ObjectSubscription, authorization.ActionView), s.AvailablePlans)
	api.GET("/subscriptions/addon-plans/:service_type", s.Authorized(authorization.ObjectSubscription, authorization.ActionView), s.AddonPlans)
	api.POST("/subscriptions/activate-addon", s.Authorized(authorization.ObjectSubscription, authorization.ActionManage), s.ActivateAddon)
	api.POST("/subscriptions/deactivate-addon", s.Authorized(authorization.ObjectSubscription, authorization.ActionManage), s.DeactivateAddon)

	// -------- Invoices --------
	api.GET("/invoices", s.Authorized(authorization.ObjectInvoice, authorization.ActionView), s.ListInvoices)
	api.POST("/invoices", s.Authorized(authorization.ObjectInvoice, authorization.ActionCreate), s.CreateInvoice)
	api.GET("/invoices/:id", s.Authorized(authorization.ObjectInvoice, authorization.ActionView), s.GetInvoiceByID)

	// -------- Billing --------
	api.GET("/billing/cycles", s.Authorized(authorization.ObjectBilling, authorization.ActionView), s.ListBillCycles)
	api.GET("/billing/schedules", s.Authorized(authorization.ObjectBilling, authorization.ActionView), s.ListBillSchedules)
	api.POST("/billing/schedules", s.Authorized(authorization.ObjectBilling, authorization.ActionCreate), s.CreateBillSchedule)
	api.PUT("/billing/schedules/:id/status", s.Authorized(authorization.ObjectBilling, authorization.ActionCreate), s.UpdateBillScheduleStatus)
	api.GET("/billing/runs", s.Authorized(authorization.ObjectBilling, authorization.ActionView), s.ListBillRuns)
	api.PUT("/billing/runs/:id/status", s.Authorized(authorization.ObjectBilling, authorization.ActionCreate), s.UpdateBillRunStatus)
	api.GET("/billing/accounts", s.Authorized(authorization.ObjectBilling, authorization.ActionView), s.ListBilledAccounts)
	api.PUT("/billing/accounts/:id/approve", s.Authorized(authorization.ObjectBilling, authorization.ActionApprove), s.ApproveBilledAccount)

	// -------- Payments --------
	api.GET("/payments", s.Authorized(authorization.ObjectPayment, authorization.ActionView), s.ListPayments)

	// -------- Reporting --------
	api.GET("/dashboard/stats", s.Authorized(authorization.ObjectDashboard, authorization.ActionView), s.DashboardStats)
	api.GET("/alerts/due-payments", s.Authorized(authorization.ObjectDashboard, authorization.ActionView), s.DuePaymentAlerts)
	api.GET("/reports/monthly-revenue", s.Authorized(authorization.ObjectReport, authorization.ActionView), s.MonthlyRevenue)

	// -------- System config --------
	api.GET("/system/config", s.Authorized(authorization.ObjectSystemConfig, authorization.ActionView), s.GetSystemConfig)
	api.PUT("/system/config", s.Authorized(authorization.ObjectSystemConfig, authorization.ActionManage), s.UpdateSystemConfig)
}
