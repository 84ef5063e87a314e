package routes

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"

	_ "escrowpay/docs" // This will be auto-generated
	"escrowpay/internal/adapter/http/handlers"
	repository2 "escrowpay/internal/adapter/persistence/repository"
	"escrowpay/internal/infrastructure/database"
	"escrowpay/internal/infrastructure/notifications"
	"escrowpay/internal/infrastructure/payments"
	"escrowpay/internal/infrastructure/scheduler"
	"escrowpay/internal/usecase"
	"escrowpay/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const PORT = 8080

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	err := router.Run(":" + strconv.Itoa(PORT))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	ddb := database.ConnectDynamoDB()

	ledgerRepo := repository2.NewNotificationLedgerDynamoRepository(ddb)
	paymentRepo := repository2.NewPaymentDynamoRepository(ddb)
	escrowRepo := repository2.NewEscrowDynamoRepository(ddb)
	auditSink := repository2.NewAuditEventDynamoRepository(ddb)
	notificationSink := notifications.NewLogNotificationSink()

	var provider interfaces.IPaymentProvider
	gateway, err := payments.NewMercadoPagoGateway(os.Getenv("MERCADOPAGO_ACCESS_TOKEN"), os.Getenv("PROVIDER_WEBHOOK_SECRET"))
	if err != nil {
		log.Printf("Payment provider gateway not configured: %v", err)
	} else {
		provider = gateway
	}

	processor := usecase.NewNotificationProcessor(ledgerRepo, paymentRepo, escrowRepo, auditSink, notificationSink)
	webhookUseCase := usecase.NewWebhookUseCase(ledgerRepo, provider, processor)
	paymentUseCase := usecase.NewPaymentUseCase(paymentRepo, escrowRepo, provider, auditSink, notificationSink)
	reconciliationUseCase := usecase.NewReconciliationUseCase(ledgerRepo, processor, auditSink, notificationSink, operatorIDsFromEnv())

	scheduler.NewReconciliationScheduler(reconciliationUseCase).Start(context.Background())

	webhookHandler := handlers.NewWebhookHandler(webhookUseCase)
	paymentHandler := handlers.NewPaymentHandler(paymentUseCase)

	// Rotas publicas
	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addPaymentRoutes(v1, webhookHandler, paymentHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}

func operatorIDsFromEnv() []string {
	raw := os.Getenv("ESCALATION_OPERATOR_IDS")
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	operators := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			operators = append(operators, v)
		}
	}
	return operators
}
